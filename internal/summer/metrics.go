// Package summer computes "Summer Wrapped" usage metrics over
// normalized conversation threads: a fixed June 1 – Aug 31 UTC
// window of one resolved year.
package summer

import (
	"time"

	"github.com/wrapview/wrapview/internal/nlp"
)

// Options tunes Compute. Year pins the window year instead of
// auto-selecting; Aliases are case-insensitive terms boosted in
// keyword ranking. Now is the caller's notion of "today", used
// only as the fallback year when the export holds no timestamped
// messages; Compute itself never reads the wall clock.
type Options struct {
	Year    int
	Aliases []string
	Now     time.Time
}

// Stat is one name/value pair in a ranked distribution.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// BusiestDay is the day with the most user prompts. All is the
// all-role message count, the secondary tie-break.
type BusiestDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	All   int    `json:"all"`
}

// WeekBucket is one Monday-aligned week of user prompt volume.
type WeekBucket struct {
	Activity string `json:"activity"`
	Count    int    `json:"count"`
}

// ThreadSummary describes the longest conversation in the
// window, counting turns across all roles.
type ThreadSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Turns int    `json:"turns"`
}

// Accomplishment is one mined achievement, most recent first.
type Accomplishment struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// Persona is the shareable vibe snapshot.
type Persona struct {
	Blurb string   `json:"blurb"`
	Tags  []string `json:"tags"`
}

// Metrics is the aggregate result handed to the slide builder.
// Immutable once produced.
type Metrics struct {
	Year             int               `json:"year"`
	StartISO         string            `json:"startISO"`
	EndISO           string            `json:"endISO"`
	TotalPrompts     int               `json:"totalPrompts"`
	TotalAssistant   int               `json:"totalAssistant"`
	UniqueDays       int               `json:"uniqueDays"`
	LongestStreak    int               `json:"longestStreak"`
	BusiestDay       *BusiestDay       `json:"busiestDay"`
	Topics           []Stat            `json:"topics"`
	WeekBuckets      []WeekBucket      `json:"weekBuckets"`
	Keywords         []nlp.Keyword     `json:"keywords"`
	Emotions         nlp.EmotionReport `json:"emotions"`
	LongestThread    *ThreadSummary    `json:"longestThread"`
	TimeSavedMinutes int               `json:"timeSavedMinutes"`
	Accomplishments  []Accomplishment  `json:"accomplishments"`
	Persona          Persona           `json:"persona"`
	Roast            string            `json:"roast"`
}

// Window returns the summer bounds for a year: June 1 00:00:00
// UTC through Aug 31 23:59:59.999 UTC, inclusive.
func Window(year int) (start, end time.Time) {
	start = time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.August, 31, 23, 59, 59,
		999*int(time.Millisecond), time.UTC)
	return start, end
}

const dayFormat = "2006-01-02"

// emptyMetrics is the well-defined zero shape for the no-data
// and no-summer-data degeneracies. Never an error.
func emptyMetrics(year int) Metrics {
	start, end := Window(year)
	return Metrics{
		Year:     year,
		StartISO: start.Format(dayFormat),
		EndISO:   end.Format(dayFormat),
		Persona:  Persona{Blurb: "No summer data found."},
	}
}
