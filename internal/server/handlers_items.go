package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/db"
)

// handleSaveResume upserts the singleton saved-resume document. The content
// is stored verbatim, so the only requirement is that it is valid JSON.
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if !json.Valid(body) {
		s.errorResponse(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if err := s.store.SaveDocument(r.Context(), string(body)); err != nil {
		s.logger.Error().Err(err).Msg("failed to save resume document")
		s.errorResponse(w, HTTPStatus(err), "Failed to save resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

// handleGetResume returns the saved resume document.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	content, err := s.store.GetDocument(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get resume document")
		s.errorResponse(w, HTTPStatus(err), "Failed to load resume")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

type createItemRequest struct {
	Text             string `json:"text"`
	WorkExperienceID *int   `json:"work_experience_id"`
}

// handleCreateItem stores a new item of the path's kind. The embedding is
// computed before the insert so a row never exists without its vector.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	kind, ok := db.KindFromWireName(r.PathValue("kind"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown item kind: "+r.PathValue("kind"))
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		s.errorResponse(w, http.StatusBadRequest, "Field 'text' is required")
		return
	}
	if req.WorkExperienceID != nil && kind != db.KindAccomplishment {
		s.errorResponse(w, http.StatusBadRequest, "Only accomplishments can reference a work experience")
		return
	}

	vector, err := s.embedder.Encode(r.Context(), req.Text)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("embedding failed")
		s.errorResponse(w, HTTPStatus(err), "Failed to compute embedding")
		return
	}
	encoded, err := json.Marshal(vector)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to encode embedding")
		return
	}

	item, err := s.store.InsertItem(r.Context(), kind, req.Text, string(encoded), req.WorkExperienceID)
	if err != nil {
		status := HTTPStatus(err)
		if status >= 500 {
			s.logger.Error().Err(err).Str("kind", string(kind)).Msg("insert failed")
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, item)
}

// handleListItems lists every stored item of the path's kind.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	kind, ok := db.KindFromWireName(r.PathValue("kind"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown item kind: "+r.PathValue("kind"))
		return
	}

	items, err := s.store.ListItems(r.Context(), kind)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("list failed")
		s.errorResponse(w, HTTPStatus(err), "Failed to list items")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

// handleDeleteItem removes one item. Deleting an experience also removes its
// linked accomplishments.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	kind, ok := db.KindFromWireName(r.PathValue("kind"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown item kind: "+r.PathValue("kind"))
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := s.store.DeleteItem(r.Context(), kind, id); err != nil {
		status := HTTPStatus(err)
		if status >= 500 {
			s.logger.Error().Err(err).Str("kind", string(kind)).Int("id", id).Msg("delete failed")
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
