package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/resume-builder/internal/atsgen"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// handleExportPDF validates the payload, renders the HTML resume, and streams
// back the PDF produced by the converter.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateResumePayload(body); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			s.errorResponse(w, http.StatusBadRequest, validationErr.Error())
		} else {
			s.errorResponse(w, http.StatusBadRequest, "Request body must be valid JSON")
		}
		return
	}

	var doc rendering.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume payload")
		return
	}

	html, err := rendering.RenderHTML(doc)
	if err != nil {
		s.logger.Error().Err(err).Msg("resume rendering failed")
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render resume")
		return
	}

	pdf, err := s.converter.Convert(r.Context(), html)
	if err != nil {
		s.logger.Error().Err(err).Msg("PDF conversion failed")
		s.errorResponse(w, HTTPStatus(err), "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleGenerateATS renders the plain-text single-column resume.
func (s *Server) handleGenerateATS(w http.ResponseWriter, r *http.Request) {
	var resume atsgen.Resume
	if err := json.NewDecoder(r.Body).Decode(&resume); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if resume.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Field 'name' is required")
		return
	}

	text := atsgen.Generate(resume)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.txt"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
