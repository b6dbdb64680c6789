package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and strips punctuation",
			input:    "Python, Django & React!",
			expected: "python django react",
		},
		{
			name:     "digits are removed",
			input:    "increased revenue by 25% in 2023",
			expected: "increased revenue",
		},
		{
			name:     "stopwords are removed",
			input:    "worked with a team of engineers on the platform",
			expected: "worked team engineers platform",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only stopwords",
			input:    "the and of with",
			expected: "",
		},
		{
			name:     "collapses whitespace",
			input:    "go\t\tdeveloper\n  remote",
			expected: "go developer remote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestTokenize_PreservesRepetition(t *testing.T) {
	tokens := Tokenize("python python sql")
	assert.Equal(t, []string{"python", "python", "sql"}, tokens)
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("the"))
	assert.True(t, IsStopWord("with"))
	assert.False(t, IsStopWord("python"))
}
