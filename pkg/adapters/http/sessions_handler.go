// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/24mcab48-rohan/jarvis/pkg/core/schema"
	"github.com/24mcab48-rohan/jarvis/pkg/core/state"
)

// handleCreateSession handles POST /v1/sessions.
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	session := &state.Session{
		ID:        generateID("sess_"),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.sessions.CreateSession(r.Context(), session); err != nil {
		h.logger.Error("Failed to create session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create session")
		return
	}

	h.logger.Info("Session created", "session_id", session.ID)
	writeJSON(w, http.StatusCreated, sessionToSchema(session))
}

// handleGetSession handles GET /v1/sessions/{id}.
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToSchema(session))
}

// handleDeleteSession handles DELETE /v1/sessions/{id}. Deleting a session
// discards its history; the indexed documents are untouched.
func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if err := h.sessions.DeleteSession(r.Context(), sessionID); err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.logger.Info("Session deleted", "session_id", sessionID)
	writeJSON(w, http.StatusOK, schema.DeleteSessionResponse{
		ID:      sessionID,
		Object:  "session.deleted",
		Deleted: true,
	})
}

// handleHistory handles GET /v1/sessions/{id}/history.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	turns, err := h.sessions.History(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	data := make([]schema.Turn, 0, len(turns))
	for _, t := range turns {
		data = append(data, schema.Turn{
			Question:  t.Question,
			Answer:    t.Answer,
			CreatedAt: t.CreatedAt.Unix(),
		})
	}
	writeJSON(w, http.StatusOK, schema.HistoryResponse{
		Object: "list",
		Data:   data,
	})
}

// handleAsk handles POST /v1/sessions/{id}/ask. It runs the full answer
// path: embed the question, retrieve the nearest chunks, assemble the
// context, generate, and record the turn. A turn is appended to the history
// only after generation succeeds, so a failed ask leaves the session
// unchanged.
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var req schema.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "question is required")
		return
	}

	if _, err := h.sessions.GetSession(r.Context(), sessionID); err != nil {
		h.writeSessionError(w, err)
		return
	}

	topK := h.retrieval.TopK
	if req.TopK > 0 {
		topK = req.TopK
	}

	retrieved, err := h.assembler.Assemble(r.Context(), question, topK, h.retrieval.MaxContextChars)
	if err != nil {
		h.logger.Error("Context assembly failed", "session_id", sessionID, "error", err)
		h.writeProviderError(w, err)
		return
	}

	history, err := h.sessions.History(r.Context(), sessionID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	answer, err := h.answerer.Answer(r.Context(), question, retrieved, history)
	if err != nil {
		h.logger.Error("Generation failed", "session_id", sessionID, "error", err)
		h.writeProviderError(w, err)
		return
	}

	turn := state.Turn{
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now(),
	}
	if err := h.sessions.AppendTurn(r.Context(), sessionID, turn); err != nil {
		h.writeSessionError(w, err)
		return
	}

	sources := make([]schema.SourceAttribution, 0, len(retrieved.Sources))
	for _, s := range retrieved.Sources {
		sources = append(sources, schema.SourceAttribution{
			Source:     s.Source,
			ChunkIndex: s.ChunkIndex,
			Score:      s.Score,
		})
	}

	h.logger.Info("Question answered",
		"session_id", sessionID,
		"sources", len(sources))
	writeJSON(w, http.StatusOK, schema.AskResponse{
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Sources:   sources,
	})
}

// writeSessionError maps session store errors, distinguishing a missing
// session from an internal failure.
func (h *Handler) writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, state.ErrSessionNotFound) {
		h.writeError(w, http.StatusNotFound, "session_not_found", "Session not found")
		return
	}
	h.logger.Error("Session store error", "error", err)
	h.writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
}

func sessionToSchema(s *state.Session) schema.Session {
	return schema.Session{
		ID:        s.ID,
		Object:    "session",
		CreatedAt: s.CreatedAt.Unix(),
		UpdatedAt: s.UpdatedAt.Unix(),
	}
}
