// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/24mcab48-rohan/jarvis/pkg/core/state"
)

// Store is an in-memory implementation of SessionStore. The mutex guards
// against concurrent requests from different sessions; turns within one
// session are appended in request order.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*state.Session
	history  map[string][]state.Turn
}

// New creates a new in-memory session store.
func New() *Store {
	return &Store{
		sessions: make(map[string]*state.Session),
		history:  make(map[string][]state.Turn),
	}
}

// CreateSession registers a new session.
func (s *Store) CreateSession(ctx context.Context, session *state.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}

	s.sessions[session.ID] = session
	return nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*state.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, state.ErrSessionNotFound
	}

	return session, nil
}

// DeleteSession removes a session and its history.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		return state.ErrSessionNotFound
	}

	delete(s.sessions, sessionID)
	delete(s.history, sessionID)
	return nil
}

// AppendTurn appends one (question, answer) pair to the session's history.
func (s *Store) AppendTurn(ctx context.Context, sessionID string, turn state.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return state.ErrSessionNotFound
	}

	s.history[sessionID] = append(s.history[sessionID], turn)
	session.UpdatedAt = time.Now()
	return nil
}

// History returns the session's turns in chronological order. The returned
// slice is a copy; callers may not mutate stored history.
func (s *Store) History(ctx context.Context, sessionID string) ([]state.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.sessions[sessionID]; !exists {
		return nil, state.ErrSessionNotFound
	}

	turns := s.history[sessionID]
	out := make([]state.Turn, len(turns))
	copy(out, turns)
	return out, nil
}
