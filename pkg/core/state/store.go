// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session ID is unknown or the
// session has been deleted.
var ErrSessionNotFound = errors.New("session not found")

// Session is one user's chat session. Its history lives only as long as the
// session; nothing is persisted.
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Turn is one (question, answer) pair in a session's conversation history.
type Turn struct {
	Question  string
	Answer    string
	CreatedAt time.Time
}

// SessionStore holds per-session conversation history. Sessions are fully
// isolated from each other; history is append-only within a session and
// discarded when the session is deleted.
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// AppendTurn appends a completed (question, answer) pair to the
	// session's history.
	AppendTurn(ctx context.Context, sessionID string, turn Turn) error

	// History returns the session's turns in chronological order.
	History(ctx context.Context, sessionID string) ([]Turn, error)
}
