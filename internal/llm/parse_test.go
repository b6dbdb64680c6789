package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "direct JSON array",
			content: `["Led migration to Kubernetes", "Cut deploy time by 40%"]`,
			want:    []string{"Led migration to Kubernetes", "Cut deploy time by 40%"},
		},
		{
			name:    "object with suggestions key",
			content: `{"suggestions": ["Mention Terraform", "Quantify the cost savings"]}`,
			want:    []string{"Mention Terraform", "Quantify the cost savings"},
		},
		{
			name:    "fenced json block",
			content: "Here you go:\n```json\n[\"Add AWS experience\", \"Highlight mentoring\"]\n```\nHope that helps!",
			want:    []string{"Add AWS experience", "Highlight mentoring"},
		},
		{
			name:    "fenced block without language tag",
			content: "```\n[\"Single suggestion\"]\n```",
			want:    []string{"Single suggestion"},
		},
		{
			name:    "bracket literal with surrounding whitespace",
			content: "  [\"Tighten the summary\", \"Drop the objective section\"]  ",
			want:    []string{"Tighten the summary", "Drop the objective section"},
		},
		{
			name:    "bulleted lines fallback",
			content: "- Emphasize Go experience\n* Add CI/CD keywords\n• Mention on-call rotation",
			want:    []string{"Emphasize Go experience", "Add CI/CD keywords", "Mention on-call rotation"},
		},
		{
			name:    "numbered lines fallback",
			content: "1. Lead with impact\n2. Use active verbs",
			want:    []string{"Lead with impact", "Use active verbs"},
		},
		{
			name:    "lines fallback drops near-empty lines",
			content: "- ok\n- A real suggestion here",
			want:    []string{"A real suggestion here"},
		},
		{
			name:    "empty input",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseList(tt.content))
		})
	}
}

func TestParseListPrefersEarlierStrategies(t *testing.T) {
	// The whole reply is a valid array, so the line fallback must not run
	// even though it would also produce output.
	content := `["one item only"]`
	got := ParseList(content)
	assert.Equal(t, []string{"one item only"}, got)
}

func TestExtractFenced(t *testing.T) {
	t.Run("no fence", func(t *testing.T) {
		_, ok := extractFenced("plain text")
		assert.False(t, ok)
	})

	t.Run("unterminated fence", func(t *testing.T) {
		_, ok := extractFenced("```json\n[1, 2")
		assert.False(t, ok)
	})

	t.Run("content on opening line is kept", func(t *testing.T) {
		inner, ok := extractFenced("```[\"a\"]\n```")
		assert.True(t, ok)
		assert.Equal(t, `["a"]`, inner)
	})
}
