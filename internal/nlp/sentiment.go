package nlp

import (
	"regexp"
	"sort"
)

// Positive and Negative are the sentiment lexicons. Each token
// occurrence moves a message's score by +/-1.
var (
	Positive = wordSet(
		"win", "great", "awesome", "love", "nice", "yay", "cool",
		"clean", "works", "fixed", "pass", "haha", "lol", "lmao",
		"hehe", "woot", "nailed")
	Negative = wordSet(
		"panic", "anxious", "anxiety", "worried", "stressed",
		"stress", "urgent", "help", "broken", "fail", "wtf",
		"ugh", "omg", "crash", "stuck", "blocked", "deadlines")
)

// PanicPatterns and LevityPatterns detect distress/urgency and
// laughter/amusement phrasing. Each list counts at most once per
// message no matter how many patterns match.
var (
	PanicPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)panic|freak(ing)? out|meltdown|help me`),
		regexp.MustCompile(`(?i)urgent|deadline|blocked|stuck`),
		regexp.MustCompile(`(?i)asap|right now|immediately`),
	}
	LevityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)lol|lmao|haha|hehe`),
		regexp.MustCompile(`(?i)this is (so )?funny|i can't believe`),
		regexp.MustCompile(`😂|😅|🤣`),
	}
)

// DayScore is one calendar day's accumulated sentiment.
type DayScore struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// EmotionReport summarizes lexical sentiment over a message set.
type EmotionReport struct {
	DailyScores []DayScore `json:"dailyScores"`
	PanicCount  int        `json:"panicCount"`
	LOLCount    int        `json:"lolCount"`
}

// DatedText pairs a message's raw text with its UTC calendar
// day (YYYY-MM-DD).
type DatedText struct {
	Day  string
	Text string
}

// AnalyzeEmotions scores each message against the sentiment
// lexicons, accumulates per-day totals, and counts panic and
// levity pattern hits. DailyScores come back sorted by date
// ascending.
func AnalyzeEmotions(messages []DatedText) EmotionReport {
	daily := make(map[string]int)
	var report EmotionReport

	for _, m := range messages {
		daily[m.Day] += ScoreTokens(Tokenize(m.Text))
		if MatchesPanic(m.Text) {
			report.PanicCount++
		}
		if MatchesLevity(m.Text) {
			report.LOLCount++
		}
	}

	report.DailyScores = make([]DayScore, 0, len(daily))
	for date, score := range daily {
		report.DailyScores = append(report.DailyScores,
			DayScore{Date: date, Score: score})
	}
	sort.Slice(report.DailyScores, func(i, j int) bool {
		return report.DailyScores[i].Date < report.DailyScores[j].Date
	})
	return report
}

// ScoreTokens sums +1 per positive-lexicon token and -1 per
// negative-lexicon token.
func ScoreTokens(tokens []string) int {
	score := 0
	for _, tok := range tokens {
		if Positive[tok] {
			score++
		}
		if Negative[tok] {
			score--
		}
	}
	return score
}

// MatchesPanic reports whether text hits any distress/urgency
// pattern.
func MatchesPanic(text string) bool {
	return matchesAny(PanicPatterns, text)
}

// MatchesLevity reports whether text hits any laughter pattern.
func MatchesLevity(text string) bool {
	return matchesAny(LevityPatterns, text)
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
