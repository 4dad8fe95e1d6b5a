package models

import (
	"fmt"
	"strings"
)

// Built-in category ids. The list of categories is user-editable, but these
// four always exist as wire values: gray is the sentinel for unmatched domains.
const (
	CategoryRed    = "red"
	CategoryGreen  = "green"
	CategoryYellow = "yellow"
	CategoryGray   = "gray"
)

// RGB is a category display color, serialized as "#RRGGBB".
type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.Hex() + `"`), nil
}

func (c *RGB) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseHexColor(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{r, g, b}, nil
}

// GrayColor is the render color for the sentinel category.
var GrayColor = RGB{0xB5, 0xA0, 0xCE}

type Category struct {
	ID      string   `json:"id" validate:"required"`
	Name    string   `json:"name" validate:"required"`
	Color   RGB      `json:"color"`
	Domains []string `json:"domains"`
}

// Matches reports whether domain falls under any of the category's
// patterns: exact match, or a subdomain of the pattern.
func (c *Category) Matches(domain string) bool {
	for _, d := range c.Domains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}

// ColorFor returns the display color of a category id, gray when unknown.
func ColorFor(id string, cats []Category) RGB {
	for i := range cats {
		if cats[i].ID == id {
			return cats[i].Color
		}
	}
	return GrayColor
}

// DefaultCategories is the out-of-the-box rule table. List order is match
// priority: the first category whose pattern matches wins.
func DefaultCategories() []Category {
	return []Category{
		{
			ID: CategoryRed, Name: "Distractions", Color: RGB{0x59, 0x5A, 0x96},
			Domains: []string{
				"youtube.com", "reddit.com", "twitter.com", "x.com",
				"tiktok.com", "instagram.com", "facebook.com", "twitch.tv",
				"netflix.com", "hulu.com", "disneyplus.com",
			},
		},
		{
			ID: CategoryGreen, Name: "On-Task", Color: RGB{0xA4, 0xA5, 0xC7},
			Domains: []string{
				"docs.google.com", "notion.so", "quizlet.com", "khanacademy.org",
				"coursera.org", "edx.org", "canvas.instructure.com",
				"scholar.google.com", "github.com", "stackoverflow.com",
				"wolframalpha.com", "desmos.com", "overleaf.com",
			},
		},
		{
			ID: CategoryYellow, Name: "Utility", Color: RGB{0xD2, 0xC8, 0xE3},
			Domains: []string{
				"mail.google.com", "gmail.com", "calendar.google.com",
				"outlook.com", "drive.google.com", "slack.com", "discord.com",
				"zoom.us", "meet.google.com", "google.com", "wikipedia.org",
			},
		},
	}
}
