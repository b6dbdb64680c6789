package matching

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/textproc"
)

// Keyword extraction thresholds. A token is a candidate keyword only if it is
// longer than two characters and occurs more than once in the job
// description: singletons are usually filler, not requirements.
const (
	minKeywordLength  = 3
	minKeywordCount   = 2
	DefaultMissingCap = 10
)

// MissingKeywords extracts the salient keywords of a job description and
// returns those absent from the matched-text pool, most frequent first,
// capped at limit. The pool is whatever text the caller considers covered;
// the match endpoint passes the concatenated top-ranked item texts.
func MissingKeywords(jobDescription, matchedPool string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMissingCap
	}

	freq := make(map[string]int)
	for _, tok := range textproc.Tokenize(jobDescription) {
		if len(tok) < minKeywordLength {
			continue
		}
		freq[tok]++
	}

	poolTokens := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(matchedPool)) {
		poolTokens[strings.Trim(tok, ".,;:!?()\"'")] = true
	}

	type keyword struct {
		token string
		count int
	}
	var missing []keyword
	for tok, count := range freq {
		if count < minKeywordCount {
			continue
		}
		if poolTokens[tok] {
			continue
		}
		missing = append(missing, keyword{token: tok, count: count})
	}

	// Descending frequency; alphabetical within equal counts so the result is
	// deterministic across identical requests.
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].count != missing[j].count {
			return missing[i].count > missing[j].count
		}
		return missing[i].token < missing[j].token
	})

	if len(missing) > limit {
		missing = missing[:limit]
	}
	result := make([]string, len(missing))
	for i, kw := range missing {
		result[i] = kw.token
	}
	return result
}
