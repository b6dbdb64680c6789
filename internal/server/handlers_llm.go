package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/dedupe"
	"github.com/jonathan/resume-builder/internal/rewriting"
)

// handleImproveBullet rewrites one bullet point against a target job.
func (s *Server) handleImproveBullet(w http.ResponseWriter, r *http.Request) {
	var req rewriting.BulletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Bullet) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Field 'bulletPoint' is required")
		return
	}

	improved, err := rewriting.ImproveBullet(r.Context(), s.llmClient, req)
	if err != nil {
		s.logger.Error().Err(err).Msg("bullet rewrite failed")
		s.errorResponse(w, HTTPStatus(err), "Failed to improve bullet")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"improvedBullet": improved})
}

type checkDuplicatesRequest struct {
	BulletPoints []string `json:"bulletPoints"`
	Threshold    int      `json:"threshold"`
	UseLLM       bool     `json:"use_llm"`
	Model        string   `json:"model"`
}

// handleCheckDuplicates reports duplicate pairs among the submitted bullets.
// The fuzzy detector is the default; use_llm switches to the model-backed one
// for semantic duplicates.
func (s *Server) handleCheckDuplicates(w http.ResponseWriter, r *http.Request) {
	var req checkDuplicatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(req.BulletPoints) < 2 {
		s.jsonResponse(w, http.StatusOK, map[string]any{"duplicates": []dedupe.Pair{}})
		return
	}

	var detector dedupe.Detector = &dedupe.FuzzyDetector{Threshold: req.Threshold}
	if req.UseLLM {
		detector = &dedupe.LLMDetector{Client: s.llmClient, Model: req.Model}
	}

	pairs, err := detector.Detect(r.Context(), req.BulletPoints)
	if err != nil {
		s.logger.Error().Err(err).Msg("duplicate check failed")
		s.errorResponse(w, HTTPStatus(err), "Failed to check duplicates")
		return
	}
	if pairs == nil {
		pairs = []dedupe.Pair{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"duplicates": pairs})
}

// handleModels lists the models the completion provider serves, through the
// on-disk TTL cache.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.catalog.Models(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("model listing failed")
		s.errorResponse(w, HTTPStatus(err), "Failed to fetch models")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"models":        models,
		"default_model": s.defaultModel,
	})
}
