// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package vectorstore

import (
	"context"
	"errors"

	"github.com/24mcab48-rohan/jarvis/pkg/provider"
)

// Providers is the registry of vector store backend implementations.
// Import implementation packages with blank imports to register them:
//
//	import _ "github.com/24mcab48-rohan/jarvis/pkg/vectorstore/milvus"
var Providers = provider.NewRegistry[Backend]("vector_store")

// ErrEmptyIndex is returned by Query when the index holds no records yet.
// Callers surface it as "upload documents first" rather than as a provider
// failure.
var ErrEmptyIndex = errors.New("vector index is empty")

// ErrUnavailable marks transient vector store provider failures. Wrapped
// errors carry the underlying cause.
var ErrUnavailable = errors.New("vector store unavailable")

// Record is an indexed (chunk text, embedding, metadata) triple as persisted
// in the store. ID is derived from the source filename and chunk index, so
// records are never duplicated on re-ingest.
type Record struct {
	ID         string
	Source     string
	ChunkIndex int
	Content    string
	Vector     []float32
}

// SearchResult is a single hit from a similarity query, ordered by
// descending score among its siblings.
type SearchResult struct {
	Source     string
	ChunkIndex int
	Content    string
	Score      float64
}

// Backend is the narrow gateway to a vector database. Implementations must
// return results in descending similarity order and must distinguish an
// empty index (ErrEmptyIndex) from a transient failure (ErrUnavailable).
type Backend interface {
	// Upsert writes records by ID, overwriting records that already exist.
	Upsert(ctx context.Context, records []Record) error

	// Query returns the topK records nearest to the query vector, at most
	// topK results, fewer when the store holds fewer records.
	Query(ctx context.Context, vector []float32, topK int) ([]SearchResult, error)

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}
