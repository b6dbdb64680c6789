package rewriting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/llm"
)

type scriptedClient struct {
	reply   string
	err     error
	lastReq llm.CompletionRequest
}

func (s *scriptedClient) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	s.lastReq = req
	return s.reply, s.err
}

func (s *scriptedClient) ListModels(context.Context) ([]llm.ModelInfo, error) {
	return nil, errors.New("not implemented")
}

func (s *scriptedClient) Close() error { return nil }

func TestImproveBullet(t *testing.T) {
	client := &scriptedClient{reply: "  Shipped a Go microservice handling 10k RPS  "}

	got, err := ImproveBullet(context.Background(), client, BulletRequest{
		Bullet:         "Worked on backend services",
		JobTitle:       "Senior Backend Engineer",
		Industry:       "Fintech",
		JobDescription: "Looking for Go experience at scale",
	})
	require.NoError(t, err)
	assert.Equal(t, "Shipped a Go microservice handling 10k RPS", got)

	req := client.lastReq
	assert.Equal(t, float32(0.5), req.Temperature)
	assert.Equal(t, 150, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Contains(t, req.Messages[1].Content, "Senior Backend Engineer")
	assert.Contains(t, req.Messages[1].Content, `"Worked on backend services"`)
}

func TestImproveBulletStripsQuotes(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"double quotes", `"Improved deploy pipeline"`, "Improved deploy pipeline"},
		{"single quotes", `'Improved deploy pipeline'`, "Improved deploy pipeline"},
		{"quotes inside whitespace", "  \"Improved deploy pipeline\"\n", "Improved deploy pipeline"},
		{"interior quotes kept", `Built "zero downtime" deploys`, `Built "zero downtime" deploys`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedClient{reply: tt.reply}
			got, err := ImproveBullet(context.Background(), client, BulletRequest{Bullet: "x"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImproveBulletEmptyReply(t *testing.T) {
	client := &scriptedClient{reply: "   "}

	_, err := ImproveBullet(context.Background(), client, BulletRequest{Bullet: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty rewrite")
}

func TestImproveBulletPropagatesClientError(t *testing.T) {
	client := &scriptedClient{err: errors.New("timeout")}

	_, err := ImproveBullet(context.Background(), client, BulletRequest{Bullet: "x"})
	require.Error(t, err)
}
