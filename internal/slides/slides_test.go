package slides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrapview/wrapview/internal/nlp"
	"github.com/wrapview/wrapview/internal/summer"
)

func fullMetrics() summer.Metrics {
	return summer.Metrics{
		Year:           2024,
		StartISO:       "2024-06-01",
		EndISO:         "2024-08-31",
		TotalPrompts:   42,
		TotalAssistant: 40,
		UniqueDays:     10,
		LongestStreak:  4,
		BusiestDay:     &summer.BusiestDay{Date: "2024-06-10", Count: 9, All: 17},
		Topics: []summer.Stat{
			{Name: "Coding/Debugging", Value: 30},
			{Name: "Writing/Comms", Value: 12},
		},
		WeekBuckets: []summer.WeekBucket{
			{Activity: "Week of 06-03", Count: 12},
			{Activity: "Week of 06-10", Count: 30},
		},
		Keywords: []nlp.Keyword{{Name: "pandas", Value: 9}},
		Emotions: nlp.EmotionReport{
			DailyScores: []nlp.DayScore{{Date: "2024-06-10", Score: 2}},
			PanicCount:  3,
			LOLCount:    1,
		},
		LongestThread:    &summer.ThreadSummary{ID: "c9", Title: "Deep dive", Turns: 31},
		TimeSavedMinutes: 95,
		Accomplishments: []summer.Accomplishment{
			{Date: "2024-06-12", Label: "shipped the thing"},
		},
		Persona: summer.Persona{
			Blurb: "You leaned Coding/Debugging with a side of Writing/Comms this summer.",
			Tags:  []string{"42 prompts", "4-day streak", "Coding/Debugging"},
		},
		Roast: "You hit the panic button 3 times.",
	}
}

func slideIDs(out []Slide) []string {
	ids := make([]string, len(out))
	for i, s := range out {
		ids[i] = s.ID
	}
	return ids
}

func findSlide(t *testing.T, out []Slide, id string) Slide {
	t.Helper()
	for _, s := range out {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("slide %q not found in %v", id, slideIDs(out))
	return Slide{}
}

func TestBuild_FullDeck(t *testing.T) {
	out := Build(fullMetrics())
	assert.Equal(t, []string{
		"cover", "prompts", "active-days", "streak", "busiest",
		"topics-pie", "topics-list", "keywords-pie", "keywords-list",
		"weekly", "thread", "time-saved", "wins", "mood",
		"persona", "roast", "outro",
	}, slideIDs(out))
}

func TestBuild_ConditionalSlidesOmitted(t *testing.T) {
	m := fullMetrics()
	m.BusiestDay = nil
	m.Keywords = nil
	m.WeekBuckets = nil
	m.LongestThread = nil
	m.TimeSavedMinutes = 0
	m.Accomplishments = nil
	m.Emotions = nlp.EmotionReport{}
	m.Roast = ""

	ids := slideIDs(Build(m))
	assert.Equal(t, []string{
		"cover", "prompts", "active-days", "streak",
		"topics-pie", "topics-list", "persona", "outro",
	}, ids)
}

func TestBuild_Formatting(t *testing.T) {
	out := Build(fullMetrics())

	cover := findSlide(t, out, "cover")
	assert.Equal(t, "full-cover", cover.Type)
	assert.Equal(t, "Jun 1–Aug 31, 2024", cover.Subtext)

	busiest := findSlide(t, out, "busiest")
	assert.Equal(t, "9 prompts", busiest.Content)
	assert.Equal(t, "on Mon, Jun 10", busiest.Subtext)

	streak := findSlide(t, out, "streak")
	assert.Equal(t, "4 days", streak.Content)

	saved := findSlide(t, out, "time-saved")
	assert.Equal(t, "1h 35m", saved.Content)

	weekly := findSlide(t, out, "weekly")
	require.Len(t, weekly.ChartData, 2)
	assert.Contains(t, weekly.Content, "Jun 1, 2024")

	thread := findSlide(t, out, "thread")
	require.Len(t, thread.Items, 1)
	assert.Equal(t, "Deep dive", thread.Items[0].Name)
	assert.Equal(t, "— 31 turns", thread.Items[0].Count)

	persona := findSlide(t, out, "persona")
	assert.Contains(t, persona.Content, "#42 prompts")
}

func TestBuild_SingularPluralization(t *testing.T) {
	m := fullMetrics()
	m.LongestStreak = 1
	m.BusiestDay = &summer.BusiestDay{Date: "2024-06-10", Count: 1, All: 1}

	out := Build(m)
	assert.Equal(t, "1 day", findSlide(t, out, "streak").Content)
	assert.Equal(t, "1 prompt", findSlide(t, out, "busiest").Content)
}

func TestBuild_EmptyStateTopicsFallback(t *testing.T) {
	out := Build(summer.Metrics{
		Year: 2025, StartISO: "2025-06-01", EndISO: "2025-08-31",
		Persona: summer.Persona{Blurb: "No summer data found."},
	})

	pie := findSlide(t, out, "topics-pie")
	assert.Equal(t, []Item{{Name: "General", Value: 1}}, pie.Items)

	cover := findSlide(t, out, "cover")
	assert.Contains(t, cover.Content, "didn't find summer prompts")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{5, "5 min"},
		{59, "59 min"},
		{60, "1 hour"},
		{120, "2 hours"},
		{95, "1h 35m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMinutes(tt.in))
	}
}
