// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/embedding"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/pdfexport"
)

// Store is the storage surface the handlers need. *db.Store satisfies it;
// tests swap in a stub.
type Store interface {
	ListItems(ctx context.Context, kind db.Kind) ([]db.Item, error)
	InsertItem(ctx context.Context, kind db.Kind, text, embedding string, parentID *int) (db.Item, error)
	DeleteItem(ctx context.Context, kind db.Kind, id int) error
	SaveDocument(ctx context.Context, content string) error
	GetDocument(ctx context.Context) (string, error)
}

// Embedder turns text into a vector.
type Embedder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
}

// Converter turns rendered HTML into a PDF.
type Converter interface {
	Convert(ctx context.Context, html []byte) ([]byte, error)
}

// ModelLister serves the available model listing.
type ModelLister interface {
	Models(ctx context.Context) ([]llm.ModelInfo, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger

	store     Store
	embedder  Embedder
	llmClient llm.Client
	catalog   ModelLister
	converter Converter

	defaultModel string

	closeStore func()
	closeLLM   func() error
}

// New creates a server with real dependencies wired from the configuration.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	embedder := embedding.New(embedding.Config{
		BaseURL:        cfg.EmbeddingURL,
		Model:          cfg.EmbeddingModel,
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
	})

	llmClient, err := llm.NewClient(ctx, &llm.Config{
		Provider:       llm.Provider(cfg.LLMProvider),
		BaseURL:        cfg.LLMURL,
		APIKey:         cfg.GeminiAPIKey,
		DefaultModel:   cfg.DefaultModel,
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		logger:       logger,
		store:        store,
		embedder:     embedder,
		llmClient:    llmClient,
		catalog:      llm.NewCatalog(llmClient, cfg.ModelCacheDir, llm.DefaultCacheTTL),
		converter:    pdfexport.NewConverter(cfg.StirlingURL, 0),
		defaultModel: cfg.DefaultModel,
		closeStore:   store.Close,
		closeLLM:     llmClient.Close,
	}

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // PDF conversion and LLM calls are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /resume", s.handleSaveResume)
	mux.HandleFunc("GET /resume", s.handleGetResume)

	// Item CRUD. The literal /api/match and /api/models patterns win over
	// /api/{kind} in the 1.22 mux, so those names never reach the kind lookup.
	mux.HandleFunc("POST /api/{kind}", s.handleCreateItem)
	mux.HandleFunc("GET /api/{kind}", s.handleListItems)
	mux.HandleFunc("DELETE /api/{kind}/{id}", s.handleDeleteItem)

	mux.HandleFunc("POST /api/match", s.handleMatch)
	mux.HandleFunc("POST /calculate-score", s.handleScore)

	mux.HandleFunc("POST /improve-bullet", s.handleImproveBullet)
	mux.HandleFunc("POST /check-duplicates", s.handleCheckDuplicates)
	mux.HandleFunc("GET /api/models", s.handleModels)

	mux.HandleFunc("POST /api/export-pdf", s.handleExportPDF)
	mux.HandleFunc("POST /generate-ats-resume", s.handleGenerateATS)

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.closeLLM != nil {
		_ = s.closeLLM()
	}
	if s.closeStore != nil {
		s.closeStore()
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging tags each request with an ID and logs one access line.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
