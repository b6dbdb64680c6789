package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-builder/internal/scoring"
)

type scoreRequest struct {
	ResumeText         string `json:"resumeText"`
	JobDescriptionText string `json:"jobDescriptionText"`
}

// handleScore computes the weighted category match score between a resume and
// a job description. Purely local computation, no external calls.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.ResumeText == "" || req.JobDescriptionText == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing resume or job description text")
		return
	}

	s.jsonResponse(w, http.StatusOK, scoring.Calculate(req.ResumeText, req.JobDescriptionText))
}
