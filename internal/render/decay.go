// Package render computes the time-decayed visual weights of a segment
// list. All functions are pure over (segments, now), so callers can
// recompute at any cadence — per animation frame, per second, or not at
// all while hidden — without accumulating drift.
package render

import (
	"fsd/internal/models"
	"math"
)

// decayTau controls how fast old segments shrink: weight(tau) = 1/e,
// which puts the half-life near 30 seconds.
const decayTau = 43.3

// MergeColor is the background segments fade toward as they age.
var MergeColor = models.RGB{R: 0xEF, G: 0xEF, B: 0xF8}

// SegmentWeight is one bar segment: Flex is a proportional width (the sum
// is not normalized), Blend the color saturation in [0,1].
type SegmentWeight struct {
	Color string  `json:"color"`
	Flex  float64 `json:"flex"`
	Blend float64 `json:"blend"`
}

// Weight is the decay factor for a segment of the given age in seconds.
// Weight(0) == 1 and it decreases strictly with age.
func Weight(ageSeconds float64) float64 {
	return math.Exp(-ageSeconds / decayTau)
}

// midpointAge returns the age in seconds of an interval's temporal center,
// so a long segment's weight reflects its middle rather than either edge.
func midpointAge(start, end, now int64) float64 {
	mid := float64(start+end) / 2
	return (float64(now) - mid) / 1000
}

// Render converts a segment list into decayed bar weights. Non-positive
// durations are skipped.
func Render(segments []models.Segment, now int64) []SegmentWeight {
	out := make([]SegmentWeight, 0, len(segments))
	for _, seg := range segments {
		end := seg.EffectiveEnd(now)
		duration := end - seg.Start
		if duration <= 0 {
			continue
		}

		w := Weight(midpointAge(seg.Start, end, now))
		out = append(out, SegmentWeight{
			Color: seg.Color,
			Flex:  float64(duration) * w,
			Blend: math.Max(0, math.Min(1, w)),
		})
	}
	return out
}

// Blend linearly interpolates a category color toward MergeColor: t=1 is
// full saturation, t=0 fully faded.
func Blend(c models.RGB, t float64) models.RGB {
	t = math.Max(0, math.Min(1, t))
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*t + float64(b)*(1-t)))
	}
	return models.RGB{
		R: mix(c.R, MergeColor.R),
		G: mix(c.G, MergeColor.G),
		B: mix(c.B, MergeColor.B),
	}
}

// MarkerPosition answers where on the decayed bar the instant
// now - thresholdSeconds sits, as a percentage from the oldest edge.
// A segment straddling the cutoff is split, each half weighted by its own
// midpoint age. Returns false when total weight is zero or the position
// would sit on either edge.
func MarkerPosition(segments []models.Segment, now int64, thresholdSeconds float64) (float64, bool) {
	cutoff := now - int64(thresholdSeconds*1000)

	var totalFlex, recentFlex float64
	for _, seg := range segments {
		start := seg.Start
		end := seg.EffectiveEnd(now)
		if end <= start {
			continue
		}

		switch {
		case end <= cutoff:
			totalFlex += float64(end-start) * Weight(midpointAge(start, end, now))
		case start >= cutoff:
			f := float64(end-start) * Weight(midpointAge(start, end, now))
			totalFlex += f
			recentFlex += f
		default:
			totalFlex += float64(cutoff-start) * Weight(midpointAge(start, cutoff, now))

			f := float64(end-cutoff) * Weight(midpointAge(cutoff, end, now))
			totalFlex += f
			recentFlex += f
		}
	}

	if totalFlex == 0 {
		return 0, false
	}
	pos := (1 - recentFlex/totalFlex) * 100
	if pos <= 0 || pos >= 100 {
		return 0, false
	}
	return pos, true
}

// MarkerThreshold is one labeled age marker shown on the bar.
type MarkerThreshold struct {
	Label   string  `json:"label"`
	Seconds float64 `json:"seconds"`
}

// MarkerThresholds is the fixed marker table, newest first.
var MarkerThresholds = []MarkerThreshold{
	{Label: "30s", Seconds: 30},
	{Label: "1m", Seconds: 60},
	{Label: "5m", Seconds: 300},
	{Label: "15m", Seconds: 900},
	{Label: "30m", Seconds: 1800},
	{Label: "1h", Seconds: 3600},
}
