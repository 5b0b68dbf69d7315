// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/24mcab48-rohan/jarvis/pkg/core/state"
)

func makeSession(id string) *state.Session {
	now := time.Now()
	return &state.Session{ID: id, CreatedAt: now, UpdatedAt: now}
}

func TestCreateAndGetSession(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateSession(ctx, makeSession("sess-1")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.ID != "sess-1" {
		t.Errorf("expected ID %q, got %q", "sess-1", got.ID)
	}
}

func TestCreateSession_Duplicate(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateSession(ctx, makeSession("sess-dup")); err != nil {
		t.Fatalf("first CreateSession: %v", err)
	}
	if err := s.CreateSession(ctx, makeSession("sess-dup")); err == nil {
		t.Error("expected error on duplicate session, got nil")
	}
}

func TestGetSession_NotFound(t *testing.T) {
	s := New()
	_, err := s.GetSession(context.Background(), "missing")
	if !errors.Is(err, state.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAppendTurnAndHistory(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateSession(ctx, makeSession("sess-h")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	turns := []state.Turn{
		{Question: "q1", Answer: "a1", CreatedAt: time.Now()},
		{Question: "q2", Answer: "a2", CreatedAt: time.Now()},
	}
	for _, turn := range turns {
		if err := s.AppendTurn(ctx, "sess-h", turn); err != nil {
			t.Fatalf("AppendTurn: %v", err)
		}
	}

	got, err := s.History(ctx, "sess-h")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got))
	}
	if got[0].Question != "q1" || got[1].Question != "q2" {
		t.Errorf("history out of order: %v", got)
	}
}

func TestAppendTurn_UnknownSession(t *testing.T) {
	s := New()
	err := s.AppendTurn(context.Background(), "missing", state.Turn{Question: "q"})
	if !errors.Is(err, state.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestHistory_IsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateSession(ctx, makeSession("sess-c")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := s.AppendTurn(ctx, "sess-c", state.Turn{Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("AppendTurn: %v", err)
	}

	first, _ := s.History(ctx, "sess-c")
	first[0].Answer = "mutated"

	second, _ := s.History(ctx, "sess-c")
	if second[0].Answer != "a" {
		t.Error("History returned a reference to internal state")
	}
}

func TestDeleteSession_DiscardsHistory(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateSession(ctx, makeSession("sess-d")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := s.AppendTurn(ctx, "sess-d", state.Turn{Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("AppendTurn: %v", err)
	}
	if err := s.DeleteSession(ctx, "sess-d"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}

	if _, err := s.History(ctx, "sess-d"); !errors.Is(err, state.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
