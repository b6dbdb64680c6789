// Package suggest asks a language model which of the stored resume items are
// most relevant to a job description. The model returns verbatim item texts;
// anything it invents that does not map back to a stored item is dropped.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
)

// Item is one stored resume entry offered to the model as a candidate.
type Item struct {
	ID   string
	Kind string
	Text string
}

// Suggestion is an item the model judged relevant to the job description.
type Suggestion struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Request carries everything needed for one suggestion call.
type Request struct {
	JobDescription string
	Items          []Item
	Model          string
}

const systemPrompt = "You are a helpful resume matcher. Always respond with valid JSON."

// Suggest returns the stored items the model selected as most relevant,
// preserving the model's ranking order. Items the model returned that do not
// match a stored text are silently discarded, as are repeats.
func Suggest(ctx context.Context, client llm.Client, req Request) ([]Suggestion, error) {
	if len(req.Items) == 0 {
		return nil, nil
	}

	content, err := client.Complete(ctx, llm.CompletionRequest{
		Model: req.Model,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: 0.3,
		MaxTokens:   512,
	})
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}

	return matchBack(llm.ParseList(content), req.Items), nil
}

func buildPrompt(req Request) string {
	var skills, accomplishments []string
	for _, item := range req.Items {
		if item.Kind == "skills" {
			skills = append(skills, item.Text)
		} else {
			accomplishments = append(accomplishments, item.Text)
		}
	}

	var b strings.Builder
	b.WriteString("You are an AI assistant helping a job seeker match their resume to a job description.\n\n")
	b.WriteString("Job Description:\n")
	b.WriteString(strings.TrimSpace(req.JobDescription))
	b.WriteString("\n\nYour Task:\n")
	b.WriteString("1. Identify the most relevant skills and accomplishments from the user's data that match this job.\n")
	b.WriteString("2. Return only the exact text (no explanation) of the top 8-12 most relevant items.\n")
	b.WriteString("3. Do not include duplicates.\n")
	b.WriteString("4. If no relevant items found, return an empty list.\n\n")
	b.WriteString("User Data:\n")
	b.WriteString("- Skills: " + strings.Join(skills, ", ") + "\n")
	b.WriteString("- Accomplishments: " + strings.Join(accomplishments, ", ") + "\n\n")
	b.WriteString("Output:\n")
	b.WriteString(`Return a JSON array of strings, e.g., ["Python", "Docker", "Led team of 5"].` + "\n")
	b.WriteString("IMPORTANT: Return ONLY the JSON array, no other text.")
	return b.String()
}

// matchBack maps the model's verbatim texts onto the stored items, keeping the
// model's order and dropping anything unrecognized.
func matchBack(texts []string, items []Item) []Suggestion {
	byText := make(map[string]Item, len(items))
	for _, item := range items {
		byText[normalize(item.Text)] = item
	}

	var suggestions []Suggestion
	seen := make(map[string]bool)
	for _, text := range texts {
		item, ok := byText[normalize(text)]
		if !ok || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		suggestions = append(suggestions, Suggestion{ID: item.ID, Kind: item.Kind, Text: item.Text})
	}
	return suggestions
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
