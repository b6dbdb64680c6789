// Package matching ranks stored resume items against a job-description
// embedding and reports job-description keywords the resume pool is missing.
package matching

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DefaultTopN is the number of matches returned when the caller does not ask
// for a specific count.
const DefaultTopN = 10

// Candidate is one stored resume item considered for ranking. Embedding is
// the serialized JSON array persisted next to the item text.
type Candidate struct {
	ID        string
	Kind      string
	Text      string
	Embedding string
}

// Match is a ranked candidate with its cosine similarity to the query.
type Match struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Rank scores every candidate against the query embedding and returns the
// topN matches sorted by descending similarity, plus the IDs of candidates
// that were excluded because their stored embedding was missing, unparsable
// or of the wrong dimension. Exclusion is explicit so callers can tell "no
// embedding" apart from "dissimilar". The sort is stable: ties keep the
// candidates' insertion order, so identical requests rank identically.
func Rank(query []float32, candidates []Candidate, topN int) ([]Match, []string) {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(query) == 0 || len(candidates) == 0 {
		return nil, nil
	}

	dim := len(query)
	var skipped []string
	kept := make([]Candidate, 0, len(candidates))
	rows := make([]float64, 0, len(candidates)*dim)

	for _, cand := range candidates {
		vec, ok := decodeEmbedding(cand.Embedding, dim)
		if !ok {
			skipped = append(skipped, cand.ID)
			continue
		}
		kept = append(kept, cand)
		rows = append(rows, vec...)
	}
	if len(kept) == 0 {
		return nil, skipped
	}

	// One batched matrix-vector product instead of a per-item loop: rows are
	// L2-normalized up front, so the product yields cosine similarities.
	queryVec := make([]float64, dim)
	for i, v := range query {
		queryVec[i] = float64(v)
	}
	normalize(queryVec)
	for i := 0; i < len(kept); i++ {
		normalize(rows[i*dim : (i+1)*dim])
	}

	matrix := mat.NewDense(len(kept), dim, rows)
	scores := mat.NewVecDense(len(kept), nil)
	scores.MulVec(matrix, mat.NewVecDense(dim, queryVec))

	matches := make([]Match, len(kept))
	for i, cand := range kept {
		matches[i] = Match{ID: cand.ID, Kind: cand.Kind, Text: cand.Text, Score: scores.AtVec(i)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches, skipped
}

// decodeEmbedding parses a stored JSON embedding and checks its dimension.
func decodeEmbedding(stored string, dim int) ([]float64, bool) {
	if stored == "" {
		return nil, false
	}
	var vec []float64
	if err := json.Unmarshal([]byte(stored), &vec); err != nil {
		return nil, false
	}
	if len(vec) != dim {
		return nil, false
	}
	return vec, true
}

// normalize scales v to unit length in place. Zero vectors are left as-is;
// they score 0 against everything.
func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}
