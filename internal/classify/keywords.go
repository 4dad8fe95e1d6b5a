package classify

import (
	"fsd/internal/models"
	"strings"
)

var greenKeywords = []string{
	"tutorial", "lecture", "explained", "how to", "learn", "course",
	"university", "professor", "calculus", "chemistry", "biology",
	"history of", "programming", "algorithm", "math", "physics",
	"documentation", "lesson", "study guide", "textbook", "science",
	"engineering", "medicine", "anatomy", "economics", "linguistics",
	"machine learning", "data science", "research", "analysis",
	"introduction to", "overview of", "mit ", "stanford ", "harvard ",
	"crash course", "full course", "complete guide",
}

var redKeywords = []string{
	"gaming", "funny", "fails", "reaction", "vlog", "challenge",
	"meme", "prank", "compilation", "minecraft", "fortnite",
	"stream highlights", "unboxing", "roast", "best moments",
	"highlights reel", "let's play", "gameplay", "entertainment",
}

// KeywordClassify scans a title for category keywords, case-insensitive.
// Red is checked before green, so a title containing both classifies red.
// Returns false when no keyword matches — the domain-level result stands.
func KeywordClassify(title string) (string, bool) {
	lower := strings.ToLower(title)
	for _, kw := range redKeywords {
		if strings.Contains(lower, kw) {
			return models.CategoryRed, true
		}
	}
	for _, kw := range greenKeywords {
		if strings.Contains(lower, kw) {
			return models.CategoryGreen, true
		}
	}
	return "", false
}
