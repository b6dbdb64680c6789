package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryWeights_SumTo100(t *testing.T) {
	sum := 0
	for _, w := range CategoryWeights {
		sum += w
	}
	assert.Equal(t, 100, sum)
}

func TestExtractCategoryKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		expected string
	}{
		{
			name:     "keeps matching tokens with repetition",
			text:     "python developer python sql postgres",
			keywords: []string{"python", "sql"},
			expected: "python python sql",
		},
		{
			name:     "no matches",
			text:     "java kotlin",
			keywords: []string{"python"},
			expected: "",
		},
		{
			name:     "empty text",
			text:     "",
			keywords: []string{"python"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCategoryKeywords(tt.text, tt.keywords))
		})
	}
}

func TestCategoryScoreFor_EmptyExtractionShortCircuits(t *testing.T) {
	// Resume has no tool keywords, so the score is 0 without TF-IDF.
	score := CategoryScoreFor("python developer", "aws git jira", toolKeywords)
	assert.Equal(t, 0.0, score)
}

func TestCategoryScoreFor_IdenticalKeywordSets(t *testing.T) {
	score := CategoryScoreFor("python sql", "python sql", hardSkillKeywords)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestCategoryScoreFor_PartialOverlap(t *testing.T) {
	score := CategoryScoreFor("python sql", "python", hardSkillKeywords)
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)
}

func TestQuantifiableScore(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
	}{
		{"Improved by 12.5%", 1.0},
		{"Improved significantly", 0.0},
		{"Saved $500 per month", 1.0},
		{"Grew team from 3 to 12", 1.0},
		{"", 0.0},
		{"percent and dollars without digits %$", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuantifiableScore(tt.text))
		})
	}
}

func TestCalculate_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"python aws leadership developed 25%", "python aws leadership developed"},
		{"unrelated text entirely", "different words altogether"},
	}

	for _, pair := range pairs {
		result := Calculate(pair[0], pair[1])
		assert.GreaterOrEqual(t, result.OverallScore, 0)
		assert.LessOrEqual(t, result.OverallScore, 100)
		require.Len(t, result.Breakdown, 5)
		for cat, cs := range result.Breakdown {
			assert.GreaterOrEqual(t, cs.Score, 0, cat)
			assert.LessOrEqual(t, cs.Score, 100, cat)
			assert.GreaterOrEqual(t, cs.Weight, 0, cat)
			assert.LessOrEqual(t, cs.Weight, 100, cat)
			assert.GreaterOrEqual(t, cs.Contribution, 0, cat)
			assert.LessOrEqual(t, cs.Contribution, 100, cat)
		}
	}
}

func TestCalculate_EndToEnd(t *testing.T) {
	resume := "Python developer, led team, increased revenue by 25%"
	jd := "Seeking Python developer with leadership experience"

	result := Calculate(resume, jd)

	require.Contains(t, result.Breakdown, CategoryHardSkills)
	assert.Greater(t, result.Breakdown[CategoryHardSkills].Score, 0, "python should match")
	assert.Equal(t, 100, result.Breakdown[CategoryQuantifiable].Score, "25% is a quantifiable metric")
	assert.Greater(t, result.OverallScore, 0)
}

func TestCalculate_NoKeywordsScoresZeroCategory(t *testing.T) {
	result := Calculate("gardening and cooking", "python developer with aws")
	assert.Equal(t, 0, result.Breakdown[CategoryHardSkills].Score)
	assert.Equal(t, 0, result.Breakdown[CategoryTools].Score)
}

func TestTFIDFCosine_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, tfidfCosine("", ""))
	assert.Equal(t, 0.0, tfidfCosine("python", ""))
	assert.Equal(t, 0.0, tfidfCosine("python", "sql"))
}
