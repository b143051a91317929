package summer

import (
	"regexp"
	"sort"
	"strings"
)

const (
	accomplishmentLabelLen = 80
	maxAccomplishments     = 6
)

// accomplishmentPatterns detect achievement phrasing in user
// prompts. Evaluated in order; one hit is enough.
var accomplishmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bshipped\b|\bship it\b`),
	regexp.MustCompile(`(?i)\bmerged\b|\blanded\b`),
	regexp.MustCompile(`(?i)\bfixed (the|my|it)\b|finally works`),
	regexp.MustCompile(`(?i)\bdeployed\b|went live`),
	regexp.MustCompile(`(?i)\bapproved\b|\bsigned off\b`),
	regexp.MustCompile(`(?i)got (the|an) offer|offer accepted`),
	regexp.MustCompile(`(?i)passed (the |my )?(test|tests|interview|review|oa)\b`),
	regexp.MustCompile(`(?i)demo went|presented (the|my)\b`),
}

// mineAccomplishments scans user messages for achievement
// phrasing, deduplicates by truncated label, and returns the
// most recent hits first, capped at maxAccomplishments.
func mineAccomplishments(user []taggedMessage) []Accomplishment {
	var hits []taggedMessage
	for _, m := range user {
		if matchesAccomplishment(m.Text) {
			hits = append(hits, m)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].CreatedAt.After(hits[j].CreatedAt)
	})

	seen := make(map[string]bool)
	var out []Accomplishment
	for _, m := range hits {
		label := accomplishmentLabel(m.Text)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, Accomplishment{
			Date:  m.CreatedAt.UTC().Format(dayFormat),
			Label: label,
		})
		if len(out) == maxAccomplishments {
			break
		}
	}
	return out
}

func matchesAccomplishment(text string) bool {
	for _, p := range accomplishmentPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// accomplishmentLabel collapses whitespace and truncates the
// text to a stable dedup key.
func accomplishmentLabel(text string) string {
	label := strings.Join(strings.Fields(text), " ")
	if len(label) > accomplishmentLabelLen {
		label = label[:accomplishmentLabelLen] + "..."
	}
	return label
}
