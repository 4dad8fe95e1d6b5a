package classify

import (
	"fsd/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordClassify_Green(t *testing.T) {
	cat, ok := KeywordClassify("Linear Algebra Lecture 12")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryGreen, cat)
}

func TestKeywordClassify_Red(t *testing.T) {
	cat, ok := KeywordClassify("Minecraft speedrun")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryRed, cat)
}

func TestKeywordClassify_Entertainment(t *testing.T) {
	cat, ok := KeywordClassify("Top 10 Entertainment News This Week")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryRed, cat)
}

func TestKeywordClassify_RedBeforeGreen(t *testing.T) {
	// Contains both "gameplay" (red) and "tutorial" (green).
	cat, ok := KeywordClassify("Gameplay tutorial for beginners")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryRed, cat)
}

func TestKeywordClassify_CaseInsensitive(t *testing.T) {
	cat, ok := KeywordClassify("MACHINE LEARNING CRASH COURSE")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryGreen, cat)
}

func TestKeywordClassify_NoMatch(t *testing.T) {
	_, ok := KeywordClassify("qqq zzz")
	assert.False(t, ok)
}
