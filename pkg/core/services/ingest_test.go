// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/24mcab48-rohan/jarvis/pkg/core/api"
	"github.com/24mcab48-rohan/jarvis/pkg/extractor"
	"github.com/24mcab48-rohan/jarvis/pkg/observability/logging"
	"github.com/24mcab48-rohan/jarvis/pkg/vectorstore"
)

func textFile(name string, words int) UploadedFile {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = fmt.Sprintf("word%d", i)
	}
	return UploadedFile{Filename: name, Content: []byte(strings.Join(parts, " "))}
}

func newIngest(embedder api.EmbeddingClient, backend vectorstore.Backend, size, overlap int) *IngestService {
	return NewIngestService(embedder, backend, logging.Discard(), size, overlap)
}

func TestIngestFiles_Success(t *testing.T) {
	backend := vectorstore.NewMemoryBackend()
	svc := newIngest(api.NewMockEmbeddingClient(8), backend, 10, 2)

	results := svc.IngestFiles(context.Background(), []UploadedFile{textFile("a.txt", 25)})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	// 25 words, size 10, overlap 2: step 8 -> chunks at 0, 8, 16; the
	// third window reaches the end of the text.
	if r.Chunks != 3 {
		t.Errorf("expected 3 chunks, got %d", r.Chunks)
	}
	if backend.Len() != 3 {
		t.Errorf("expected 3 records in store, got %d", backend.Len())
	}
}

// A corrupt file in the middle of a batch is reported but never aborts the
// files around it.
func TestIngestFiles_PartialBatchFailure(t *testing.T) {
	backend := vectorstore.NewMemoryBackend()
	svc := newIngest(api.NewMockEmbeddingClient(8), backend, 10, 0)

	files := []UploadedFile{
		textFile("first.txt", 5),
		{Filename: "corrupt.pdf", Content: []byte("not a pdf")},
		textFile("third.txt", 5),
	}
	results := svc.IngestFiles(context.Background(), files)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("healthy files failed: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil {
		t.Error("expected error for corrupt file")
	}
	if backend.Len() != 2 {
		t.Errorf("expected 2 records from the 2 healthy files, got %d", backend.Len())
	}
}

func TestIngestFiles_UnsupportedFormat(t *testing.T) {
	svc := newIngest(api.NewMockEmbeddingClient(8), vectorstore.NewMemoryBackend(), 10, 0)

	results := svc.IngestFiles(context.Background(), []UploadedFile{
		{Filename: "image.png", Content: []byte{0x89, 0x50}},
	})
	if !errors.Is(results[0].Err, extractor.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", results[0].Err)
	}
}

// An empty document is a warning, not a failure: zero chunks, nil error.
func TestIngestFiles_EmptyDocument(t *testing.T) {
	backend := vectorstore.NewMemoryBackend()
	svc := newIngest(api.NewMockEmbeddingClient(8), backend, 10, 0)

	results := svc.IngestFiles(context.Background(), []UploadedFile{
		{Filename: "empty.txt", Content: []byte("   \n ")},
	})
	if results[0].Err != nil {
		t.Errorf("empty document should not fail: %v", results[0].Err)
	}
	if results[0].Chunks != 0 || backend.Len() != 0 {
		t.Errorf("expected zero chunks, got %d (store %d)", results[0].Chunks, backend.Len())
	}
}

// Embedding failure aborts the whole file: no record may be upserted without
// its vector.
func TestIngestFiles_EmbeddingFailureWritesNothing(t *testing.T) {
	backend := vectorstore.NewMemoryBackend()
	embedder := api.NewMockEmbeddingClient(8)
	embedder.Err = api.ErrEmbeddingUnavailable
	svc := newIngest(embedder, backend, 10, 0)

	results := svc.IngestFiles(context.Background(), []UploadedFile{textFile("a.txt", 50)})
	if !errors.Is(results[0].Err, api.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", results[0].Err)
	}
	if backend.Len() != 0 {
		t.Errorf("expected nothing upserted after embed failure, got %d records", backend.Len())
	}
}

// Re-ingesting the same file overwrites its records instead of duplicating
// them (deterministic IDs).
func TestIngestFiles_ReingestOverwrites(t *testing.T) {
	backend := vectorstore.NewMemoryBackend()
	svc := newIngest(api.NewMockEmbeddingClient(8), backend, 10, 0)
	ctx := context.Background()

	svc.IngestFiles(ctx, []UploadedFile{textFile("a.txt", 15)})
	svc.IngestFiles(ctx, []UploadedFile{textFile("a.txt", 15)})

	if backend.Len() != 2 {
		t.Errorf("expected 2 records after re-ingest, got %d", backend.Len())
	}
}

// Large documents are embedded in bounded batches.
func TestIngestFiles_EmbedBatchBound(t *testing.T) {
	backend := vectorstore.NewMemoryBackend()
	embedder := api.NewMockEmbeddingClient(8)
	// size 1, overlap 0: one chunk per word
	svc := newIngest(embedder, backend, 1, 0)

	results := svc.IngestFiles(context.Background(), []UploadedFile{textFile("big.txt", 450)})
	if results[0].Err != nil {
		t.Fatalf("ingest: %v", results[0].Err)
	}
	if results[0].Chunks != 450 {
		t.Fatalf("expected 450 chunks, got %d", results[0].Chunks)
	}
	if len(embedder.Calls) != 3 {
		t.Fatalf("expected 3 embed batches for 450 chunks, got %d", len(embedder.Calls))
	}
	for i, call := range embedder.Calls {
		if len(call) > embedBatchSize {
			t.Errorf("batch %d has %d inputs, exceeds %d", i, len(call), embedBatchSize)
		}
	}
}
