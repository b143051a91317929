package nlp

import "sort"

// Keyword is one ranked term with its accumulated weight.
type Keyword struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

const (
	// minKeywordLen drops single-character noise tokens.
	minKeywordLen = 2
	// aliasWeight is the per-occurrence weight for boosted
	// terms. Regular tokens count 1.
	aliasWeight = 5
	// DefaultTopN is the keyword list length when the caller
	// does not override it.
	DefaultTopN = 12
)

// StopWords is the default exclusion list for keyword
// extraction. Treat as immutable.
var StopWords = wordSet(
	"the", "a", "an", "and", "or", "but", "of", "to", "in", "on",
	"for", "with", "without", "by", "as", "is", "are", "was",
	"were", "be", "been", "being", "it", "its", "at", "from",
	"this", "that", "i", "you", "we", "they", "he", "she", "them",
	"my", "our", "your", "me", "us", "about", "into", "over",
	"under", "up", "down", "out", "not", "no", "yes", "ok",
	"okay", "thanks", "thank", "pls", "please", "hey", "hi",
	"hello",
)

// KeywordOptions tunes ExtractKeywords. Zero values fall back
// to DefaultTopN and StopWords. Boost terms must already be
// lowercase.
type KeywordOptions struct {
	TopN  int
	Boost map[string]bool
	Stop  map[string]bool
}

// ExtractKeywords builds a ranked term-frequency list over the
// given texts. Each occurrence contributes weight 1, or
// aliasWeight when the token is in the boost set. Output is
// sorted by weight descending, ties by token ascending, so the
// result depends only on the multiset of input texts.
func ExtractKeywords(texts []string, opts KeywordOptions) []Keyword {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	stop := opts.Stop
	if stop == nil {
		stop = StopWords
	}

	freq := make(map[string]int)
	for _, text := range texts {
		for _, tok := range Tokenize(text) {
			if len(tok) < minKeywordLen || stop[tok] {
				continue
			}
			if opts.Boost[tok] {
				freq[tok] += aliasWeight
			} else {
				freq[tok]++
			}
		}
	}

	ranked := make([]Keyword, 0, len(freq))
	for name, value := range freq {
		ranked = append(ranked, Keyword{Name: name, Value: value})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
