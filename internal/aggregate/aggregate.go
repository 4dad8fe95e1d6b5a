// Package aggregate turns a session's segment list into totals and the
// immutable finalized record. Everything here is a pure function of its
// inputs; now is passed in, never read from the clock.
package aggregate

import (
	"fsd/internal/models"
	"sort"
	"time"

	"github.com/google/uuid"
)

type Analytics struct {
	TotalMs         int64               `json:"totalMs"`
	CategorySummary map[string]int64    `json:"categorySummary"`
	PerDomain       []models.DomainStat `json:"perDomain"`
}

// Aggregate computes per-category and per-domain totals over a segment list.
// Segments without a domain or with a non-positive duration contribute
// nothing. PerDomain is sorted by total descending; ties keep first-seen
// order. A domain's color is the last color seen for it.
func Aggregate(segments []models.Segment, now int64) Analytics {
	out := Analytics{CategorySummary: make(map[string]int64)}

	index := make(map[string]int)
	for _, seg := range segments {
		if seg.Domain == "" {
			continue
		}
		ms := seg.DurationMs(now)
		if ms <= 0 {
			continue
		}

		out.TotalMs += ms
		out.CategorySummary[seg.Color] += ms

		i, ok := index[seg.Domain]
		if !ok {
			i = len(out.PerDomain)
			index[seg.Domain] = i
			out.PerDomain = append(out.PerDomain, models.DomainStat{Domain: seg.Domain})
		}
		out.PerDomain[i].TotalMs += ms
		out.PerDomain[i].VisitCount++
		out.PerDomain[i].Color = seg.Color
	}

	sort.SliceStable(out.PerDomain, func(a, b int) bool {
		return out.PerDomain[a].TotalMs > out.PerDomain[b].TotalMs
	})

	return out
}

// BuildReport finalizes a live snapshot into a Session record. Open segments
// are closed at now; the record is complete and never mutated afterwards.
func BuildReport(snap models.LiveSnapshot, deviceID string, now int64) *models.Session {
	segments := make([]models.Segment, len(snap.Segments))
	for i, seg := range snap.Segments {
		seg.End = seg.EffectiveEnd(now)
		segments[i] = seg
	}

	a := Aggregate(segments, now)

	return &models.Session{
		ID:              uuid.NewString(),
		DeviceID:        deviceID,
		SessionStart:    snap.StartTime,
		SessionEnd:      now,
		TotalMs:         a.TotalMs,
		CategorySummary: a.CategorySummary,
		PerDomain:       a.PerDomain,
		Segments:        segments,
		CreatedAt:       time.UnixMilli(now).UTC().Format(time.RFC3339),
	}
}
