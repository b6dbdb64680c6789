package scoring

import (
	"strings"

	"gonum.org/v1/gonum/floats"
)

// tfidfCosine builds a two-document TF-IDF representation over docA and docB
// (space-separated token strings) and returns the cosine similarity of the
// two document vectors. Smoothed IDF with add-one is used so that terms
// appearing in both documents still carry weight.
//
// Degenerate inputs (no shared vocabulary, zero-length vectors) return 0.0
// rather than an error: the callers treat "nothing to compare" as a zero
// score, not a fault.
func tfidfCosine(docA, docB string) float64 {
	tokensA := strings.Fields(docA)
	tokensB := strings.Fields(docB)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	// Vocabulary over exactly these two documents.
	vocab := make(map[string]int)
	for _, tok := range tokensA {
		if _, ok := vocab[tok]; !ok {
			vocab[tok] = len(vocab)
		}
	}
	for _, tok := range tokensB {
		if _, ok := vocab[tok]; !ok {
			vocab[tok] = len(vocab)
		}
	}
	if len(vocab) == 0 {
		return 0.0
	}

	vecA := termFrequencies(tokensA, vocab)
	vecB := termFrequencies(tokensB, vocab)

	// Smoothed IDF over n=2 documents: idf = ln((1+n)/(1+df)) + 1.
	for _, idx := range vocab {
		df := 0
		if vecA[idx] > 0 {
			df++
		}
		if vecB[idx] > 0 {
			df++
		}
		idf := idfSmoothed(df)
		vecA[idx] *= idf
		vecB[idx] *= idf
	}

	normA := floats.Norm(vecA, 2)
	normB := floats.Norm(vecB, 2)
	if normA == 0 || normB == 0 {
		return 0.0
	}

	sim := floats.Dot(vecA, vecB) / (normA * normB)
	// Guard against floating point drift outside [0,1].
	if sim < 0 {
		return 0.0
	}
	if sim > 1 {
		return 1.0
	}
	return sim
}

func termFrequencies(tokens []string, vocab map[string]int) []float64 {
	vec := make([]float64, len(vocab))
	for _, tok := range tokens {
		if idx, ok := vocab[tok]; ok {
			vec[idx]++
		}
	}
	return vec
}

// idfSmoothed computes ln((1+n)/(1+df)) + 1 for n=2 documents.
func idfSmoothed(df int) float64 {
	switch df {
	case 1:
		// ln(3/2) + 1
		return 1.4054651081081644
	default:
		// Term present in both documents: ln(3/3) + 1.
		return 1.0
	}
}
