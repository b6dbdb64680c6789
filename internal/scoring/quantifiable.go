package scoring

import "regexp"

// quantifiableRe matches numeric evidence: a number with an optional decimal
// fraction and optional trailing percent sign, or a dollar amount.
var quantifiableRe = regexp.MustCompile(`\d+(\.\d+)?%?|\$\d+`)

// QuantifiableScore returns 1.0 if the raw (non-preprocessed) text contains
// at least one quantifiable metric, else 0.0. It is a presence flag, not a
// count: additional metrics do not raise the score. The caller must pass raw
// text because preprocessing strips digits.
func QuantifiableScore(rawText string) float64 {
	if quantifiableRe.MatchString(rawText) {
		return 1.0
	}
	return 0.0
}
