// Package slides projects summer metrics into an ordered list
// of presentation-agnostic slide descriptors. The renderer
// interprets Type; this package only populates it.
package slides

import (
	"fmt"
	"time"

	"github.com/wrapview/wrapview/internal/nlp"
	"github.com/wrapview/wrapview/internal/summer"
)

// Slide is one presentation-layer descriptor. Optional fields
// are omitted from JSON when empty.
type Slide struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Type      string              `json:"type"`
	Content   string              `json:"content,omitempty"`
	Subtext   string              `json:"subtext,omitempty"`
	Items     []Item              `json:"items,omitempty"`
	ChartData []summer.WeekBucket `json:"chartData,omitempty"`
	MoodData  []nlp.DayScore      `json:"moodData,omitempty"`
	Image     string              `json:"image,omitempty"`
	VideoURL  string              `json:"videoUrl,omitempty"`
}

// Item is one entry on a list or pie slide. Count carries
// display text for lists; Value carries weights for pies.
type Item struct {
	Name  string `json:"name"`
	Count string `json:"count,omitempty"`
	Value int    `json:"value,omitempty"`
}

const coverImage = "https://images.pexels.com/photos/3052361/pexels-photo-3052361.jpeg"

// Build projects metrics into the fixed slide sequence. Slides
// backed by an empty metric are omitted; ordering is otherwise
// deterministic. Pure formatting, no computation.
func Build(m summer.Metrics) []Slide {
	out := []Slide{
		coverSlide(m),
		statSlide("prompts", "Total Prompts",
			fmt.Sprintf("%d", m.TotalPrompts),
			"You + your assistant, "+subrange(m)),
		statSlide("active-days", "Active Days",
			fmt.Sprintf("%d", m.UniqueDays),
			"Days you showed up this summer"),
		statSlide("streak", "Longest Streak",
			fmt.Sprintf("%d %s", m.LongestStreak, plural(m.LongestStreak, "day")),
			"Consecutive days you showed up"),
	}

	if m.BusiestDay != nil {
		out = append(out, statSlide("busiest", "Busiest Day",
			fmt.Sprintf("%d %s", m.BusiestDay.Count,
				plural(m.BusiestDay.Count, "prompt")),
			"on "+formatWeekdayDate(m.BusiestDay.Date)))
	}

	out = append(out, topicsPie(m), topicsList(m))

	if len(m.Keywords) > 0 {
		out = append(out, keywordsPie(m), keywordsList(m))
	}
	if len(m.WeekBuckets) > 0 {
		out = append(out, Slide{
			ID:        "weekly",
			Title:     "Weekly Activity",
			Type:      "chart",
			ChartData: m.WeekBuckets,
			Content: fmt.Sprintf("Your prompt volume by week (%s → %s)",
				formatLongDate(m.StartISO), formatLongDate(m.EndISO)),
		})
	}
	if m.LongestThread != nil {
		out = append(out, Slide{
			ID:    "thread",
			Title: "Deepest Dive",
			Type:  "list",
			Items: []Item{{
				Name: m.LongestThread.Title,
				Count: fmt.Sprintf("— %d %s", m.LongestThread.Turns,
					plural(m.LongestThread.Turns, "turn")),
			}},
			Subtext: "Your longest summer thread",
		})
	}
	if m.TimeSavedMinutes > 0 {
		out = append(out, statSlide("time-saved", "Time Saved",
			formatMinutes(m.TimeSavedMinutes),
			"A rough estimate, capped per day"))
	}
	if len(m.Accomplishments) > 0 {
		items := make([]Item, len(m.Accomplishments))
		for i, a := range m.Accomplishments {
			items[i] = Item{
				Name:  a.Label,
				Count: "— " + formatShortDate(a.Date),
			}
		}
		out = append(out, Slide{
			ID:      "wins",
			Title:   "Things You Shipped",
			Type:    "list",
			Items:   items,
			Subtext: "Mined from your own words",
		})
	}
	if len(m.Emotions.DailyScores) > 0 {
		out = append(out, Slide{
			ID:       "mood",
			Title:    "Mood Over the Summer",
			Type:     "chart",
			MoodData: m.Emotions.DailyScores,
			Content: fmt.Sprintf("%d panic %s, %d laugh %s",
				m.Emotions.PanicCount, plural(m.Emotions.PanicCount, "moment"),
				m.Emotions.LOLCount, plural(m.Emotions.LOLCount, "moment")),
		})
	}

	out = append(out, personaSlide(m))
	if m.Roast != "" {
		out = append(out, Slide{
			ID:      "roast",
			Title:   "The Roast",
			Type:    "text",
			Content: m.Roast,
			Subtext: "With love, from your own chat history",
		})
	}
	out = append(out, Slide{
		ID:      "outro",
		Title:   "Nice work ✨",
		Type:    "text",
		Content: "Export this as a clip or keep iterating with more inputs.",
		Subtext: "All processing stayed on your machine.",
	})
	return out
}

func coverSlide(m summer.Metrics) Slide {
	content := "We didn't find summer prompts in your export."
	if m.TotalPrompts > 0 {
		content = "A quick look at how you used your assistant this summer."
	}
	return Slide{
		ID:      "cover",
		Title:   "Your Summer Wrapped",
		Type:    "full-cover",
		Image:   coverImage,
		Content: content,
		Subtext: subrange(m),
	}
}

func topicsPie(m summer.Metrics) Slide {
	items := topicItems(m.Topics, len(m.Topics))
	return Slide{
		ID:      "topics-pie",
		Title:   "What You Worked On",
		Type:    "pie",
		Subtext: "Topic distribution",
		Items:   items,
	}
}

func topicsList(m summer.Metrics) Slide {
	const maxListed = 6
	items := make([]Item, 0, maxListed)
	for _, t := range m.Topics {
		items = append(items, Item{
			Name:  t.Name,
			Count: fmt.Sprintf("— %dx", t.Value),
		})
		if len(items) == maxListed {
			break
		}
	}
	if len(items) == 0 {
		items = []Item{{Name: nlp.GeneralTopic, Count: "— 1x"}}
	}
	return Slide{
		ID:      "topics-list",
		Title:   "Top Topics",
		Type:    "list",
		Items:   items,
		Subtext: "Based on your summer prompts",
	}
}

func keywordsPie(m summer.Metrics) Slide {
	items := make([]Item, len(m.Keywords))
	for i, k := range m.Keywords {
		items[i] = Item{Name: k.Name, Value: k.Value}
	}
	return Slide{
		ID:      "keywords-pie",
		Title:   "Most-used Keywords",
		Type:    "pie",
		Subtext: "What you brought up the most",
		Items:   items,
	}
}

func keywordsList(m summer.Metrics) Slide {
	const maxListed = 10
	items := make([]Item, 0, maxListed)
	for _, k := range m.Keywords {
		items = append(items, Item{
			Name:  k.Name,
			Count: fmt.Sprintf("— %dx", k.Value),
		})
		if len(items) == maxListed {
			break
		}
	}
	return Slide{
		ID:      "keywords-list",
		Title:   "Top Keywords",
		Type:    "list",
		Items:   items,
		Subtext: "Based on your summer prompts",
	}
}

func personaSlide(m summer.Metrics) Slide {
	content := m.Persona.Blurb
	for i, tag := range m.Persona.Tags {
		if i == 0 {
			content += "\n\n"
		} else {
			content += "  "
		}
		content += "#" + tag
	}
	return Slide{
		ID:      "persona",
		Title:   "Your Summer Persona",
		Type:    "text",
		Content: content,
		Subtext: "Shareable vibe snapshot",
	}
}

func topicItems(topics []summer.Stat, n int) []Item {
	if len(topics) == 0 {
		return []Item{{Name: nlp.GeneralTopic, Value: 1}}
	}
	items := make([]Item, 0, n)
	for _, t := range topics[:n] {
		items = append(items, Item{Name: t.Name, Value: t.Value})
	}
	return items
}

func statSlide(id, title, content, subtext string) Slide {
	return Slide{
		ID: id, Title: title, Type: "stat",
		Content: content, Subtext: subtext,
	}
}

// subrange renders "Jun 1–Aug 31, 2024" for the window bounds.
func subrange(m summer.Metrics) string {
	return fmt.Sprintf("%s–%s, %d",
		formatShortDate(m.StartISO), formatShortDate(m.EndISO), m.Year)
}

func parseDay(isoYMD string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", isoYMD)
	return t, err == nil
}

// formatShortDate renders "Jun 1".
func formatShortDate(isoYMD string) string {
	t, ok := parseDay(isoYMD)
	if !ok {
		return isoYMD
	}
	return t.Format("Jan 2")
}

// formatLongDate renders "Jun 1, 2024".
func formatLongDate(isoYMD string) string {
	t, ok := parseDay(isoYMD)
	if !ok {
		return isoYMD
	}
	return t.Format("Jan 2, 2006")
}

// formatWeekdayDate renders "Mon, Jun 10".
func formatWeekdayDate(isoYMD string) string {
	t, ok := parseDay(isoYMD)
	if !ok {
		return isoYMD
	}
	return t.Format("Mon, Jan 2")
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	rem := minutes % 60
	if rem == 0 {
		return fmt.Sprintf("%d %s", hours, plural(hours, "hour"))
	}
	return fmt.Sprintf("%dh %dm", hours, rem)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
