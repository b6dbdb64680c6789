package dedupe

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
)

const systemPrompt = "You are a resume consistency checker. Always respond with valid JSON."

// LLMDetector asks a language model which bullets are duplicates or very
// similar in meaning. It catches semantic duplicates that token matching
// misses ("managed a team of five" vs "supervised 5 direct reports").
type LLMDetector struct {
	Client llm.Client
	Model  string
}

// Detect returns the pairs formed by the bullets the model flagged. The model
// replies with a flat list of duplicate texts; every flagged bullet is paired
// with each later flagged bullet, and the score is reported as 100 since the
// model gives a verdict, not a distance.
func (d *LLMDetector) Detect(ctx context.Context, bullets []string) ([]Pair, error) {
	if len(bullets) < 2 {
		return nil, nil
	}

	content, err := d.Client.Complete(ctx, llm.CompletionRequest{
		Model: d.Model,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(bullets)},
		},
		Temperature: 0.2,
		MaxTokens:   200,
	})
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}

	flagged := indicesOf(llm.ParseList(content), bullets)
	var pairs []Pair
	for i := 0; i < len(flagged); i++ {
		for j := i + 1; j < len(flagged); j++ {
			a, b := flagged[i], flagged[j]
			pairs = append(pairs, Pair{
				IndexA: a,
				IndexB: b,
				TextA:  bullets[a],
				TextB:  bullets[b],
				Score:  100,
			})
		}
	}
	return pairs, nil
}

func buildPrompt(bullets []string) string {
	var b strings.Builder
	b.WriteString("Determine which of the following bullet points are duplicates or very similar in meaning.\n\n")
	b.WriteString("Bullet points:\n")
	b.WriteString(strings.Join(bullets, "\n"))
	b.WriteString("\n\nReturn only a JSON array of strings containing the duplicate or very similar ones. ")
	b.WriteString("If none, return an empty array [].")
	return b.String()
}

// indicesOf maps flagged texts back to input positions, in input order,
// ignoring texts the model made up.
func indicesOf(flagged []string, bullets []string) []int {
	wanted := make(map[string]bool, len(flagged))
	for _, text := range flagged {
		wanted[strings.ToLower(strings.TrimSpace(text))] = true
	}

	var indices []int
	for i, bullet := range bullets {
		if wanted[strings.ToLower(strings.TrimSpace(bullet))] {
			indices = append(indices, i)
		}
	}
	return indices
}
