// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"context"
	"testing"
)

type fake interface{ Name() string }

type fakeImpl struct{ name string }

func (f *fakeImpl) Name() string { return f.name }

func TestRegisterAndNew(t *testing.T) {
	r := NewRegistry[fake]("test_backend")
	r.Register("a", func(ctx context.Context, params map[string]string) (fake, error) {
		return &fakeImpl{name: params["id"]}, nil
	})

	got, err := r.New(context.Background(), "a", map[string]string{"id": "x"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got.Name() != "x" {
		t.Errorf("expected name %q, got %q", "x", got.Name())
	}
}

func TestNew_Unknown(t *testing.T) {
	r := NewRegistry[fake]("test_backend")
	if _, err := r.New(context.Background(), "nope", nil); err == nil {
		t.Error("expected error for unknown provider, got nil")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	r := NewRegistry[fake]("test_backend")
	f := func(ctx context.Context, params map[string]string) (fake, error) {
		return &fakeImpl{}, nil
	}
	r.Register("dup", f)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	r.Register("dup", f)
}

func TestAvailable_Sorted(t *testing.T) {
	r := NewRegistry[fake]("test_backend")
	f := func(ctx context.Context, params map[string]string) (fake, error) {
		return &fakeImpl{}, nil
	}
	r.Register("b", f)
	r.Register("a", f)

	names := r.Available()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected sorted [a b], got %v", names)
	}
}
