package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/embedding"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/pdfexport"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Upstream failures (embedding server, LLM, PDF converter) map to 502: the
// request was fine, the dependency was not.
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		duplicateErr  *db.DuplicateError
		notFoundErr   *db.NotFoundError
		embedErr      *embedding.Error
		llmErr        *llm.Error
		pdfErr        *pdfexport.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &duplicateErr):
		return http.StatusConflict
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &embedErr), errors.As(err, &llmErr), errors.As(err, &pdfErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
