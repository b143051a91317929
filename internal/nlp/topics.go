package nlp

// TopicRule labels a message when any of its tokens appears in
// the rule's key set.
type TopicRule struct {
	Label string
	Keys  map[string]bool
}

// GeneralTopic is the catch-all label for messages matching no
// rule.
const GeneralTopic = "General"

// TopicRules is the default rule table, evaluated in order.
// Static configuration; treat as immutable.
var TopicRules = []TopicRule{
	{Label: "Coding/Debugging", Keys: wordSet(
		"code", "bug", "error", "python", "pandas", "sql", "js",
		"react", "api")},
	{Label: "Writing/Comms", Keys: wordSet(
		"email", "draft", "rewrite", "tone", "summary", "bullet",
		"outline")},
	{Label: "Data/Analysis", Keys: wordSet(
		"data", "table", "chart", "plot", "csv", "query",
		"metrics", "regression")},
	{Label: "Research", Keys: wordSet(
		"paper", "cite", "source", "evidence", "policy", "report")},
	{Label: "Math/Stats", Keys: wordSet(
		"probability", "matrix", "algebra", "stat", "mean",
		"variance")},
}

// Classify returns the topic labels matching the token stream,
// in rule-table order. A message may match several labels; zero
// matches yield GeneralTopic alone.
func Classify(tokens []string) []string {
	return ClassifyWith(TopicRules, tokens)
}

// ClassifyWith is Classify against a caller-supplied rule table.
func ClassifyWith(rules []TopicRule, tokens []string) []string {
	present := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		present[tok] = true
	}

	var labels []string
	for _, rule := range rules {
		for key := range rule.Keys {
			if present[key] {
				labels = append(labels, rule.Label)
				break
			}
		}
	}
	if len(labels) == 0 {
		return []string{GeneralTopic}
	}
	return labels
}
