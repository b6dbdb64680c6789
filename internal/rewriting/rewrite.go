// Package rewriting rephrases individual resume bullet points against a
// target job using a language model.
package rewriting

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
)

// BulletRequest describes one bullet-improvement call. Bullet is the only
// required field; the rest give the model context to target.
type BulletRequest struct {
	Bullet         string `json:"bulletPoint"`
	JobTitle       string `json:"jobTitle"`
	Industry       string `json:"industry"`
	JobDescription string `json:"jobDescription"`
	Model          string `json:"model"`
}

const systemPrompt = "You are a professional resume writer."

// ImproveBullet asks the model to rewrite the bullet so it better matches the
// job, and returns the rewritten text with surrounding whitespace and quotes
// stripped. Models often quote the bullet back; the quotes are not content.
func ImproveBullet(ctx context.Context, client llm.Client, req BulletRequest) (string, error) {
	content, err := client.Complete(ctx, llm.CompletionRequest{
		Model: req.Model,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: 0.5,
		MaxTokens:   150,
	})
	if err != nil {
		return "", fmt.Errorf("bullet rewrite failed: %w", err)
	}

	improved := strings.TrimSpace(content)
	improved = strings.Trim(improved, `"'`)
	improved = strings.TrimSpace(improved)
	if improved == "" {
		return "", fmt.Errorf("model returned an empty rewrite")
	}
	return improved, nil
}

func buildPrompt(req BulletRequest) string {
	var b strings.Builder
	b.WriteString("Rewrite the following resume bullet point to better match the job description and industry.\n\n")
	b.WriteString("Job Title: " + req.JobTitle + "\n")
	b.WriteString("Industry: " + req.Industry + "\n")
	b.WriteString("Job Description:\n")
	b.WriteString(strings.TrimSpace(req.JobDescription))
	b.WriteString("\n\nOriginal bullet:\n")
	b.WriteString(`"` + req.Bullet + `"` + "\n\n")
	b.WriteString("Rewrite to make it more relevant, concise, and ATS-friendly. ")
	b.WriteString("Keep the meaning but use keywords from the job description. ")
	b.WriteString("Return only the rewritten bullet point.")
	return b.String()
}
