package summer

import (
	"github.com/wrapview/wrapview/internal/nlp"
)

const (
	// generalMinutes is the base estimate for uncategorized
	// prompts.
	generalMinutes = 4
	// longMessageTokens is the token count above which a prompt
	// earns the long-message bonus.
	longMessageTokens = 40
	longMessageBonus  = 3
	urgencyBonus      = 2
	// dailyCapMinutes bounds any single day's contribution to
	// the total.
	dailyCapMinutes = 60
)

// topicMinutes is the base minutes-saved estimate per prompt,
// keyed by its best-matching topic.
var topicMinutes = map[string]int{
	"Coding/Debugging": 12,
	"Data/Analysis":    10,
	"Research":         9,
	"Writing/Comms":    8,
	"Math/Stats":       7,
	nlp.GeneralTopic:   generalMinutes,
}

// timeSaved estimates total minutes saved across the window.
// Each user message contributes base minutes from its best
// topic plus bonuses for length and urgency; per-day sums are
// capped before the final total so no single day dominates.
func timeSaved(user []taggedMessage) int {
	perDay := make(map[string]int)
	for _, m := range user {
		tokens := nlp.Tokenize(m.Text)
		topic := nlp.Classify(tokens)[0]
		minutes, ok := topicMinutes[topic]
		if !ok {
			minutes = generalMinutes
		}
		if len(tokens) > longMessageTokens {
			minutes += longMessageBonus
		}
		if nlp.MatchesPanic(m.Text) {
			minutes += urgencyBonus
		}
		perDay[m.CreatedAt.UTC().Format(dayFormat)] += minutes
	}

	total := 0
	for _, minutes := range perDay {
		if minutes > dailyCapMinutes {
			minutes = dailyCapMinutes
		}
		total += minutes
	}
	return total
}
