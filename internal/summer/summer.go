package summer

import (
	"sort"
	"strings"
	"time"

	"github.com/wrapview/wrapview/internal/nlp"
	"github.com/wrapview/wrapview/internal/parser"
)

// taggedMessage is a flattened message annotated with its
// thread of origin.
type taggedMessage struct {
	parser.Message
	threadID    string
	threadTitle string
}

// Compute derives the summer metrics for the given threads.
// It never fails: no data, no in-window data, and no topics all
// resolve to explicit zero/empty values with descriptive text.
func Compute(threads []parser.Thread, opts Options) Metrics {
	all := flatten(threads)
	if len(all) == 0 {
		return emptyMetrics(resolveEmptyYear(opts))
	}

	year := resolveYear(all, opts)
	start, end := Window(year)

	var inWindow []taggedMessage
	for _, m := range all {
		if !m.CreatedAt.Before(start) && !m.CreatedAt.After(end) {
			inWindow = append(inWindow, m)
		}
	}
	if len(inWindow) == 0 {
		return emptyMetrics(year)
	}

	var user []taggedMessage
	assistantCount := 0
	for _, m := range inWindow {
		switch m.Role {
		case parser.RoleUser:
			user = append(user, m)
		case parser.RoleAssistant:
			assistantCount++
		}
	}

	daily := bucketDaily(inWindow)
	topics := topicDistribution(user)

	m := Metrics{
		Year:             year,
		StartISO:         start.Format(dayFormat),
		EndISO:           end.Format(dayFormat),
		TotalPrompts:     len(user),
		TotalAssistant:   assistantCount,
		UniqueDays:       len(daily),
		LongestStreak:    longestStreak(daily),
		BusiestDay:       busiestDay(daily),
		Topics:           topics,
		WeekBuckets:      weekBuckets(user),
		Keywords:         extractKeywords(user, opts.Aliases),
		Emotions:         analyzeEmotions(user),
		LongestThread:    longestThread(inWindow),
		TimeSavedMinutes: timeSaved(user),
		Accomplishments:  mineAccomplishments(user),
	}
	m.Persona = buildPersona(topics, m.TotalPrompts, m.LongestStreak)
	m.Roast = buildRoast(topics, m.LongestStreak,
		m.Emotions.PanicCount, m.Emotions.LOLCount)
	return m
}

// flatten tags every timestamped message with its thread id and
// title, dropping messages without a parseable timestamp.
func flatten(threads []parser.Thread) []taggedMessage {
	var out []taggedMessage
	for _, t := range threads {
		title := t.Title
		if title == "" {
			title = "Conversation"
		}
		for _, m := range t.Messages {
			if m.CreatedAt.IsZero() {
				continue
			}
			out = append(out, taggedMessage{
				Message:     m,
				threadID:    t.ID,
				threadTitle: title,
			})
		}
	}
	return out
}

// resolveEmptyYear picks the window year when the export has no
// timestamped messages at all.
func resolveEmptyYear(opts Options) int {
	if opts.Year != 0 {
		return opts.Year
	}
	return opts.Now.UTC().Year()
}

// resolveYear picks the window year: a pinned option wins,
// otherwise the year with the most June–August messages (ties
// to the earliest year), otherwise the earliest message's year.
func resolveYear(all []taggedMessage, opts Options) int {
	if opts.Year != 0 {
		return opts.Year
	}

	counts := make(map[int]int)
	for _, m := range all {
		month := m.CreatedAt.UTC().Month()
		if month >= time.June && month <= time.August {
			counts[m.CreatedAt.UTC().Year()]++
		}
	}
	if len(counts) > 0 {
		best, bestCount := 0, -1
		for year, count := range counts {
			if count > bestCount ||
				(count == bestCount && year < best) {
				best, bestCount = year, count
			}
		}
		return best
	}

	earliest := all[0].CreatedAt
	for _, m := range all[1:] {
		if m.CreatedAt.Before(earliest) {
			earliest = m.CreatedAt
		}
	}
	return earliest.UTC().Year()
}

type dayCount struct {
	user int
	all  int
}

// bucketDaily groups window messages by UTC calendar day.
func bucketDaily(msgs []taggedMessage) map[string]dayCount {
	daily := make(map[string]dayCount)
	for _, m := range msgs {
		key := m.CreatedAt.UTC().Format(dayFormat)
		c := daily[key]
		c.all++
		if m.Role == parser.RoleUser {
			c.user++
		}
		daily[key] = c
	}
	return daily
}

// busiestDay picks the day with the most user prompts, ties
// broken by all-role count, then earliest date.
func busiestDay(daily map[string]dayCount) *BusiestDay {
	var best *BusiestDay
	for _, day := range sortedDays(daily) {
		c := daily[day]
		if best == nil || c.user > best.Count ||
			(c.user == best.Count && c.all > best.All) {
			best = &BusiestDay{Date: day, Count: c.user, All: c.all}
		}
	}
	return best
}

// longestStreak counts the longest run of consecutive calendar
// days each having at least one user message. Days with only
// assistant traffic reset the run.
func longestStreak(daily map[string]dayCount) int {
	longest, current := 0, 0
	var prev time.Time
	for _, day := range sortedDays(daily) {
		if daily[day].user == 0 {
			prev = time.Time{}
			current = 0
			continue
		}
		cur, _ := time.Parse(dayFormat, day)
		if !prev.IsZero() && cur.Sub(prev) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
		prev = cur
	}
	return longest
}

func sortedDays(daily map[string]dayCount) []string {
	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// weekBuckets assigns each user message to the Monday-aligned
// UTC week containing it, labeled by that Monday's month-day.
func weekBuckets(user []taggedMessage) []WeekBucket {
	counts := make(map[string]int)
	for _, m := range user {
		t := m.CreatedAt.UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		delta := (int(day.Weekday()) + 6) % 7 // days since Monday
		monday := day.AddDate(0, 0, -delta)
		counts["Week of "+monday.Format("01-02")]++
	}

	buckets := make([]WeekBucket, 0, len(counts))
	for label, count := range counts {
		buckets = append(buckets, WeekBucket{Activity: label, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Activity < buckets[j].Activity
	})
	return buckets
}

// topicDistribution classifies each user message and ranks the
// labels by count descending, stable in first-seen order.
func topicDistribution(user []taggedMessage) []Stat {
	counts := make(map[string]int)
	var order []string
	for _, m := range user {
		for _, label := range nlp.Classify(nlp.Tokenize(m.Text)) {
			if counts[label] == 0 {
				order = append(order, label)
			}
			counts[label]++
		}
	}

	topics := make([]Stat, 0, len(order))
	for _, label := range order {
		topics = append(topics, Stat{Name: label, Value: counts[label]})
	}
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Value > topics[j].Value
	})
	return topics
}

func extractKeywords(user []taggedMessage, aliases []string) []nlp.Keyword {
	boost := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		boost[strings.ToLower(a)] = true
	}
	texts := make([]string, len(user))
	for i, m := range user {
		texts[i] = m.Text
	}
	return nlp.ExtractKeywords(texts, nlp.KeywordOptions{
		TopN:  nlp.DefaultTopN,
		Boost: boost,
	})
}

func analyzeEmotions(user []taggedMessage) nlp.EmotionReport {
	dated := make([]nlp.DatedText, len(user))
	for i, m := range user {
		dated[i] = nlp.DatedText{
			Day:  m.CreatedAt.UTC().Format(dayFormat),
			Text: m.Text,
		}
	}
	return nlp.AnalyzeEmotions(dated)
}

// longestThread reports the thread with the most in-window
// turns across all roles, ties broken by first-seen order.
func longestThread(msgs []taggedMessage) *ThreadSummary {
	turns := make(map[string]*ThreadSummary)
	var order []string
	for _, m := range msgs {
		s, ok := turns[m.threadID]
		if !ok {
			s = &ThreadSummary{ID: m.threadID, Title: m.threadTitle}
			turns[m.threadID] = s
			order = append(order, m.threadID)
		}
		s.Turns++
	}

	var best *ThreadSummary
	for _, id := range order {
		if best == nil || turns[id].Turns > best.Turns {
			best = turns[id]
		}
	}
	return best
}
