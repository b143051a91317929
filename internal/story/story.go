// Package story holds the presentation-layer configuration the
// viewer consumes alongside the generated slides: theme colors,
// slide timing, and a fallback preview deck. The renderer itself
// lives outside this repository.
package story

import (
	"time"

	"github.com/wrapview/wrapview/internal/slides"
)

// Theme carries the renderer's color palette and timing knobs.
type Theme struct {
	Colors Colors `json:"colors"`
	Timing Timing `json:"timing"`
}

type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Tertiary   string `json:"tertiary"`
	Quaternary string `json:"quaternary"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

type Timing struct {
	SlideDurationMS int `json:"slideDuration"`
}

// Config is the full story payload: window bounds, slides, and
// theme.
type Config struct {
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Slides    []slides.Slide `json:"slides"`
	Theme     Theme          `json:"theme"`
}

// DefaultTheme is the stock palette.
var DefaultTheme = Theme{
	Colors: Colors{
		Primary:    "#d44f8c",
		Secondary:  "#ff8fb2",
		Tertiary:   "#ffb3c6",
		Quaternary: "#ffd7e0",
		Background: "#FFF0F3",
		Text:       "#333333",
	},
	Timing: Timing{SlideDurationMS: 5000},
}

// Fallback returns the preview config shown before an export is
// uploaded. today must be passed in by the caller; this package
// never reads the wall clock.
func Fallback(today time.Time) Config {
	return Config{
		StartDate: "2024-06-01",
		EndDate:   today.UTC().Format("2006-01-02"),
		Slides: []slides.Slide{
			{
				ID: "preview-text", Title: "Basic Text Card", Type: "text",
				Content: "Upload a chat export to build your Summer Wrapped.",
			},
			{
				ID: "preview-stat", Title: "Stat Card", Type: "stat",
				Content: "1,234", Subtext: "This is a stat card ✨",
			},
			{
				ID: "preview-pie", Title: "Pie Chart Card", Type: "pie",
				Subtext: "Distribution example",
				Items: []slides.Item{
					{Name: "Category A", Value: 400},
					{Name: "Category B", Value: 300},
					{Name: "Category C", Value: 200},
				},
			},
		},
		Theme: DefaultTheme,
	}
}

// DaysBetween counts whole days between two YYYY-MM-DD dates in
// UTC, rounding partial days up. Order of arguments does not
// matter.
func DaysBetween(startDate, endDate string) int {
	start, err1 := time.Parse("2006-01-02", startDate)
	end, err2 := time.Parse("2006-01-02", endDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// FormatDate renders a YYYY-MM-DD date as "June 10, 2024" in
// the given display location. Window math never uses this; it
// is display-only.
func FormatDate(dateStr string, loc *time.Location) string {
	t, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return dateStr
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("January 2, 2006")
}
