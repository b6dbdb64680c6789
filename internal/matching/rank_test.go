package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_OrdersByCosineSimilarity(t *testing.T) {
	query := []float32{1, 0, 0}
	candidates := []Candidate{
		{ID: "skill-1", Kind: "skill", Text: "orthogonal", Embedding: "[0, 1, 0]"},
		{ID: "skill-2", Kind: "skill", Text: "aligned", Embedding: "[2, 0, 0]"},
		{ID: "skill-3", Kind: "skill", Text: "diagonal", Embedding: "[1, 1, 0]"},
	}

	matches, skipped := Rank(query, candidates, 10)

	require.Len(t, matches, 3)
	assert.Empty(t, skipped)
	assert.Equal(t, "skill-2", matches[0].ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	assert.Equal(t, "skill-3", matches[1].ID)
	assert.Equal(t, "skill-1", matches[2].ID)
	assert.InDelta(t, 0.0, matches[2].Score, 1e-9)
}

func TestRank_Stable(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "a", Kind: "skill", Text: "first", Embedding: "[1, 0]"},
		{ID: "b", Kind: "skill", Text: "second", Embedding: "[1, 0]"},
		{ID: "c", Kind: "accomplishment", Text: "third", Embedding: "[1, 0]"},
	}

	first, _ := Rank(query, candidates, 10)
	second, _ := Rank(query, candidates, 10)

	require.Len(t, first, 3)
	assert.Equal(t, first, second, "repeated identical requests must rank identically")
	assert.Equal(t, "a", first[0].ID, "ties keep insertion order")
	assert.Equal(t, "b", first[1].ID)
	assert.Equal(t, "c", first[2].ID)
}

func TestRank_ExcludesUnparsableEmbeddings(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "good", Kind: "skill", Text: "ok", Embedding: "[1, 0]"},
		{ID: "empty", Kind: "skill", Text: "missing", Embedding: ""},
		{ID: "garbage", Kind: "skill", Text: "bad json", Embedding: "{nope"},
		{ID: "short", Kind: "skill", Text: "wrong dim", Embedding: "[1]"},
	}

	matches, skipped := Rank(query, candidates, 10)

	require.Len(t, matches, 1)
	assert.Equal(t, "good", matches[0].ID)
	assert.ElementsMatch(t, []string{"empty", "garbage", "short"}, skipped)
}

func TestRank_TopN(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "a", Kind: "skill", Text: "a", Embedding: "[1, 0]"},
		{ID: "b", Kind: "skill", Text: "b", Embedding: "[0.9, 0.1]"},
		{ID: "c", Kind: "skill", Text: "c", Embedding: "[0.5, 0.5]"},
	}

	matches, _ := Rank(query, candidates, 2)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].ID)
}

func TestRank_EmptyInputs(t *testing.T) {
	matches, skipped := Rank(nil, []Candidate{{ID: "a", Embedding: "[1]"}}, 5)
	assert.Nil(t, matches)
	assert.Nil(t, skipped)

	matches, skipped = Rank([]float32{1}, nil, 5)
	assert.Nil(t, matches)
	assert.Nil(t, skipped)
}

func TestRank_TagsKind(t *testing.T) {
	query := []float32{1}
	candidates := []Candidate{
		{ID: "project-9", Kind: "project", Text: "built a thing", Embedding: "[1]"},
	}
	matches, _ := Rank(query, candidates, 1)
	require.Len(t, matches, 1)
	assert.Equal(t, "project", matches[0].Kind)
}

func TestMissingKeywords(t *testing.T) {
	jd := "Kubernetes experience required. Kubernetes and Terraform deployments. Terraform modules. Go services."
	pool := "Managed Terraform modules for production"

	missing := MissingKeywords(jd, pool, 10)

	assert.Contains(t, missing, "kubernetes")
	assert.NotContains(t, missing, "terraform", "tokens present in the pool are never missing")
	assert.NotContains(t, missing, "go", "short tokens are excluded")
	assert.NotContains(t, missing, "services", "singletons are not keywords")
}

func TestMissingKeywords_FrequencyOrderAndCap(t *testing.T) {
	jd := "alpha alpha alpha beta beta gamma gamma delta delta"
	missing := MissingKeywords(jd, "", 2)

	require.Len(t, missing, 2)
	assert.Equal(t, "alpha", missing[0])
	// beta, delta and gamma all occur twice; alphabetical tie-break.
	assert.Equal(t, "beta", missing[1])
}

func TestMissingKeywords_NeverReturnsPoolToken(t *testing.T) {
	jd := "python python sql sql docker docker"
	pool := "Python and SQL and Docker"
	assert.Empty(t, MissingKeywords(jd, pool, 10))
}
