package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/matching"
	"github.com/jonathan/resume-builder/internal/suggest"
)

type matchRequest struct {
	JobDescription string `json:"jobDescription"`
	TopN           int    `json:"topN"`
	Suggest        bool   `json:"suggest"`
	Model          string `json:"model"`
}

type matchResponse struct {
	Matches         []matching.Match     `json:"matches"`
	MissingKeywords []string             `json:"missing_keywords"`
	Suggestions     []suggest.Suggestion `json:"suggestions,omitempty"`
	Skipped         []string             `json:"skipped,omitempty"`
}

// handleMatch embeds the job description, ranks every stored item against it,
// and reports the top matches plus keywords the resume does not cover. Items
// with unusable stored embeddings are excluded and reported, not fatal.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Field 'jobDescription' is required")
		return
	}
	if req.TopN <= 0 {
		req.TopN = matching.DefaultTopN
	}

	query, err := s.embedder.Encode(r.Context(), req.JobDescription)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to embed job description")
		s.errorResponse(w, HTTPStatus(err), "Failed to embed job description")
		return
	}

	var (
		candidates  []matching.Candidate
		suggestPool []suggest.Item
	)
	for _, kind := range db.Kinds() {
		items, err := s.store.ListItems(r.Context(), kind)
		if err != nil {
			s.logger.Error().Err(err).Str("kind", string(kind)).Msg("list failed")
			s.errorResponse(w, HTTPStatus(err), "Failed to load stored items")
			return
		}
		for _, item := range items {
			candidates = append(candidates, matching.Candidate{
				ID:        item.PublicID(),
				Kind:      item.Kind.WireName(),
				Text:      item.Text,
				Embedding: item.Embedding,
			})
			if kind == db.KindSkill || kind == db.KindAccomplishment {
				suggestPool = append(suggestPool, suggest.Item{
					ID:   item.PublicID(),
					Kind: item.Kind.WireName(),
					Text: item.Text,
				})
			}
		}
	}

	matches, skipped := matching.Rank(query, candidates, req.TopN)
	if len(skipped) > 0 {
		s.logger.Warn().Strs("skipped", skipped).Msg("excluded items with unusable embeddings")
	}

	var pool strings.Builder
	for _, match := range matches {
		pool.WriteString(match.Text)
		pool.WriteString(" ")
	}
	missing := matching.MissingKeywords(req.JobDescription, pool.String(), matching.DefaultMissingCap)

	resp := matchResponse{
		Matches:         matches,
		MissingKeywords: missing,
		Skipped:         skipped,
	}

	if req.Suggest {
		suggestions, err := suggest.Suggest(r.Context(), s.llmClient, suggest.Request{
			JobDescription: req.JobDescription,
			Items:          suggestPool,
			Model:          req.Model,
		})
		if err != nil {
			s.logger.Error().Err(err).Msg("suggestion call failed")
			s.errorResponse(w, HTTPStatus(err), "Failed to get suggestions")
			return
		}
		resp.Suggestions = suggestions
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
