// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/24mcab48-rohan/jarvis/pkg/core/api"
	"github.com/24mcab48-rohan/jarvis/pkg/core/services"
	"github.com/24mcab48-rohan/jarvis/pkg/core/state"
	"github.com/24mcab48-rohan/jarvis/pkg/observability/logging"
	"github.com/24mcab48-rohan/jarvis/pkg/vectorstore"
)

// RetrievalOptions carries the configured retrieval parameters into the ask
// handler.
type RetrievalOptions struct {
	TopK            int
	MaxContextChars int
}

// Handler implements the HTTP adapter.
type Handler struct {
	logger    *logging.Logger
	mux       *http.ServeMux
	sessions  state.SessionStore
	ingest    *services.IngestService
	assembler *services.Assembler
	answerer  *services.AnswerService
	retrieval RetrievalOptions
}

// New creates a new HTTP handler.
func New(logger *logging.Logger, sessions state.SessionStore, ingest *services.IngestService, assembler *services.Assembler, answerer *services.AnswerService, retrieval RetrievalOptions) *Handler {
	h := &Handler{
		logger:    logger,
		mux:       http.NewServeMux(),
		sessions:  sessions,
		ingest:    ingest,
		assembler: assembler,
		answerer:  answerer,
		retrieval: retrieval,
	}

	h.mux.HandleFunc("GET /health", h.handleHealth)

	// Documents API
	h.mux.HandleFunc("POST /v1/documents", h.handleUploadDocuments)

	// Sessions API
	h.mux.HandleFunc("POST /v1/sessions", h.handleCreateSession)
	h.mux.HandleFunc("GET /v1/sessions/{id}", h.handleGetSession)
	h.mux.HandleFunc("DELETE /v1/sessions/{id}", h.handleDeleteSession)
	h.mux.HandleFunc("GET /v1/sessions/{id}/history", h.handleHistory)
	h.mux.HandleFunc("POST /v1/sessions/{id}/ask", h.handleAsk)

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Request",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	h.mux.ServeHTTP(w, r)
}

// handleHealth handles health check requests.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeError writes an error response.
func (h *Handler) writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"type":    errType,
			"message": message,
		},
	})
}

// writeProviderError maps pipeline errors to HTTP statuses.
func (h *Handler) writeProviderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vectorstore.ErrEmptyIndex):
		h.writeError(w, http.StatusConflict, "empty_index",
			"No documents indexed yet. Upload documents first.")
	case errors.Is(err, api.ErrContentRejected):
		h.writeError(w, http.StatusUnprocessableEntity, "content_rejected", err.Error())
	case errors.Is(err, api.ErrEmbeddingUnavailable):
		h.writeError(w, http.StatusBadGateway, "embedding_unavailable", err.Error())
	case errors.Is(err, api.ErrGenerationUnavailable):
		h.writeError(w, http.StatusBadGateway, "generation_unavailable", err.Error())
	case errors.Is(err, vectorstore.ErrUnavailable):
		h.writeError(w, http.StatusBadGateway, "store_unavailable", err.Error())
	default:
		h.writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// generateID generates a unique ID with a prefix.
func generateID(prefix string) string {
	b := make([]byte, 16)
	rand.Read(b)
	return prefix + hex.EncodeToString(b)
}
