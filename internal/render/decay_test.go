package render

import (
	"fsd/internal/models"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeight_ZeroAgeIsOne(t *testing.T) {
	assert.Equal(t, 1.0, Weight(0))
}

func TestWeight_TauIsOneOverE(t *testing.T) {
	assert.InDelta(t, 1/math.E, Weight(43.3), 1e-9)
}

func TestWeight_StrictlyDecreasing(t *testing.T) {
	prev := Weight(0)
	for age := 10.0; age <= 3600; age += 10 {
		w := Weight(age)
		assert.Less(t, w, prev)
		prev = w
	}
}

func TestRender_FlexAndBlend(t *testing.T) {
	now := int64(100_000)
	segs := []models.Segment{
		{Color: "green", Domain: "a.com", Start: 0, End: 10_000},
		{Color: "red", Domain: "b.com", Start: 90_000},
	}

	out := Render(segs, now)
	require.Len(t, out, 2)

	// First segment: midpoint at 5s, age 95s.
	w0 := Weight(95)
	assert.InDelta(t, 10_000*w0, out[0].Flex, 1e-6)
	assert.InDelta(t, w0, out[0].Blend, 1e-9)

	// Open second segment: end substituted with now, midpoint age 5s.
	w1 := Weight(5)
	assert.InDelta(t, 10_000*w1, out[1].Flex, 1e-6)

	// The recent segment renders wider than the old one of equal duration.
	assert.Greater(t, out[1].Flex, out[0].Flex)
}

func TestRender_SkipsNonPositiveDurations(t *testing.T) {
	segs := []models.Segment{
		{Color: "green", Start: 5000, End: 5000},
	}
	assert.Empty(t, Render(segs, 10_000))
}

func TestBlend_FullSaturation(t *testing.T) {
	c := models.RGB{R: 0x59, G: 0x5A, B: 0x96}
	assert.Equal(t, c, Blend(c, 1))
}

func TestBlend_FullyFadedIsMergeColor(t *testing.T) {
	c := models.RGB{R: 0x59, G: 0x5A, B: 0x96}
	assert.Equal(t, MergeColor, Blend(c, 0))
}

func TestBlend_Midpoint(t *testing.T) {
	c := models.RGB{R: 0, G: 0, B: 0}
	mid := Blend(c, 0.5)
	assert.Equal(t, uint8(math.Round(float64(MergeColor.R)/2)), mid.R)
	assert.Equal(t, uint8(math.Round(float64(MergeColor.G)/2)), mid.G)
	assert.Equal(t, uint8(math.Round(float64(MergeColor.B)/2)), mid.B)
}

func TestBlend_ClampsT(t *testing.T) {
	c := models.RGB{R: 10, G: 20, B: 30}
	assert.Equal(t, c, Blend(c, 2))
	assert.Equal(t, MergeColor, Blend(c, -1))
}

// --- MarkerPosition tests ---

func TestMarkerPosition_AllNewerThanThreshold(t *testing.T) {
	now := int64(100_000)
	segs := []models.Segment{
		{Color: "green", Start: now - 10_000, End: now},
	}
	// Threshold of 60s: the whole bar is recent, marker would sit at 0.
	_, ok := MarkerPosition(segs, now, 60)
	assert.False(t, ok)
}

func TestMarkerPosition_AllOlderThanThreshold(t *testing.T) {
	now := int64(1_000_000)
	segs := []models.Segment{
		{Color: "green", Start: now - 600_000, End: now - 120_000},
	}
	// Threshold of 30s: everything is older, marker would sit at 100.
	_, ok := MarkerPosition(segs, now, 30)
	assert.False(t, ok)
}

func TestMarkerPosition_EmptySegments(t *testing.T) {
	_, ok := MarkerPosition(nil, 1000, 30)
	assert.False(t, ok)
}

func TestMarkerPosition_StraddlingSegmentSplit(t *testing.T) {
	now := int64(200_000)
	// One segment covering the last 120s; the 60s cutoff falls inside it.
	segs := []models.Segment{
		{Color: "green", Start: now - 120_000, End: now},
	}

	pos, ok := MarkerPosition(segs, now, 60)
	require.True(t, ok)
	assert.Greater(t, pos, 0.0)
	assert.Less(t, pos, 100.0)

	// The older half decays more, so it takes up less than half the bar.
	assert.Less(t, pos, 50.0)
}

func TestMarkerPosition_BoundarySegments(t *testing.T) {
	now := int64(500_000)
	cutoffAge := 60.0
	segs := []models.Segment{
		{Color: "green", Start: now - 120_000, End: now - 60_000},
		{Color: "red", Start: now - 60_000, End: now},
	}

	pos, ok := MarkerPosition(segs, now, cutoffAge)
	require.True(t, ok)

	oldFlex := 60_000 * Weight(90)
	newFlex := 60_000 * Weight(30)
	want := (1 - newFlex/(oldFlex+newFlex)) * 100
	assert.InDelta(t, want, pos, 1e-6)
}

func TestMarkerThresholds_Table(t *testing.T) {
	require.Len(t, MarkerThresholds, 6)
	assert.Equal(t, "30s", MarkerThresholds[0].Label)
	assert.Equal(t, 30.0, MarkerThresholds[0].Seconds)
	assert.Equal(t, "1h", MarkerThresholds[5].Label)
	assert.Equal(t, 3600.0, MarkerThresholds[5].Seconds)

	for i := 1; i < len(MarkerThresholds); i++ {
		assert.Greater(t, MarkerThresholds[i].Seconds, MarkerThresholds[i-1].Seconds)
	}
}
