// Package dedupe finds duplicate or near-duplicate resume bullet points.
//
// The default detector uses token-set fuzzy matching, which is deterministic
// and needs no network. An LLM-backed detector is available for semantic
// duplicates that share few tokens.
package dedupe

import (
	"context"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultThreshold is the similarity score (0-100) at or above which two
// bullets count as duplicates.
const DefaultThreshold = 85

// Pair is one detected duplicate pair. Indices refer to the input slice.
type Pair struct {
	IndexA int     `json:"indexA"`
	IndexB int     `json:"indexB"`
	TextA  string  `json:"textA"`
	TextB  string  `json:"textB"`
	Score  float64 `json:"score"`
}

// Detector reports duplicate pairs among a set of bullet points.
type Detector interface {
	Detect(ctx context.Context, bullets []string) ([]Pair, error)
}

// FuzzyDetector compares every pair of bullets with a token-set ratio, which
// ignores word order and repeated tokens. Identical strings score 100.
type FuzzyDetector struct {
	// Threshold is the minimum score to report; zero means DefaultThreshold.
	Threshold int
}

func (d *FuzzyDetector) threshold() int {
	if d.Threshold <= 0 {
		return DefaultThreshold
	}
	return d.Threshold
}

// Detect runs the pairwise comparison. With fewer than two bullets there is
// nothing to compare.
func (d *FuzzyDetector) Detect(_ context.Context, bullets []string) ([]Pair, error) {
	if len(bullets) < 2 {
		return nil, nil
	}

	threshold := d.threshold()
	var pairs []Pair
	for i := 0; i < len(bullets); i++ {
		for j := i + 1; j < len(bullets); j++ {
			score := fuzzy.TokenSetRatio(bullets[i], bullets[j])
			if score >= threshold {
				pairs = append(pairs, Pair{
					IndexA: i,
					IndexB: j,
					TextA:  bullets[i],
					TextB:  bullets[j],
					Score:  float64(score),
				})
			}
		}
	}
	return pairs, nil
}
