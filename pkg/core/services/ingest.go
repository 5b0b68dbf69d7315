// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package services

import (
	"context"
	"fmt"

	"github.com/24mcab48-rohan/jarvis/pkg/core/api"
	"github.com/24mcab48-rohan/jarvis/pkg/extractor"
	"github.com/24mcab48-rohan/jarvis/pkg/observability/logging"
	"github.com/24mcab48-rohan/jarvis/pkg/vectorstore"
)

// embedBatchSize bounds the number of texts sent to the embedding provider
// in one request.
const embedBatchSize = 200

// UploadedFile is one document submitted for indexing. The raw bytes are
// discarded once the file has been chunked.
type UploadedFile struct {
	Filename string
	Content  []byte
}

// FileResult is the per-file outcome of an ingest batch. Err is nil on
// success; Chunks is the number of records written (zero for an empty
// document, which is a success).
type FileResult struct {
	Filename string
	Chunks   int
	Err      error
}

// IngestService runs the write path: extract text, chunk it, embed the
// chunks, and upsert the records into the vector store. Files are processed
// sequentially; one unparseable file never aborts the rest of the batch.
type IngestService struct {
	embedder     api.EmbeddingClient
	backend      vectorstore.Backend
	logger       *logging.Logger
	chunkSize    int
	chunkOverlap int
}

// NewIngestService creates an IngestService. Chunking parameters are assumed
// already validated at startup.
func NewIngestService(embedder api.EmbeddingClient, backend vectorstore.Backend, logger *logging.Logger, chunkSize, chunkOverlap int) *IngestService {
	return &IngestService{
		embedder:     embedder,
		backend:      backend,
		logger:       logger,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// IngestFiles indexes each file in turn and reports a per-file outcome.
// Every file is attempted regardless of earlier failures.
func (s *IngestService) IngestFiles(ctx context.Context, files []UploadedFile) []FileResult {
	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		chunks, err := s.ingestOne(ctx, f)
		if err != nil {
			s.logger.Warn("File ingest failed", "filename", f.Filename, "error", err)
		} else {
			s.logger.Info("File ingested", "filename", f.Filename, "chunks", chunks)
		}
		results = append(results, FileResult{Filename: f.Filename, Chunks: chunks, Err: err})
	}
	return results
}

// ingestOne indexes a single file. Embedding happens before any write, so a
// provider failure leaves nothing half-indexed: either every chunk of the
// file gets its vector and is upserted, or none is.
func (s *IngestService) ingestOne(ctx context.Context, f UploadedFile) (int, error) {
	text, err := extractor.ExtractText(f.Content, f.Filename)
	if err != nil {
		return 0, fmt.Errorf("extract %s: %w", f.Filename, err)
	}

	chunks, err := vectorstore.ChunkWords(text, f.Filename, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return 0, fmt.Errorf("chunk %s: %w", f.Filename, err)
	}
	if len(chunks) == 0 {
		s.logger.Warn("Document produced no text", "filename", f.Filename)
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := s.embedder.Embed(ctx, texts[start:end])
		if err != nil {
			return 0, fmt.Errorf("embed %s: %w", f.Filename, err)
		}
		vectors = append(vectors, batch...)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embed %s: %w: got %d vectors for %d chunks",
			f.Filename, api.ErrEmbeddingUnavailable, len(vectors), len(chunks))
	}

	records := make([]vectorstore.Record, len(chunks))
	for i, c := range chunks {
		records[i] = vectorstore.Record{
			ID:         c.ID(),
			Source:     c.Source,
			ChunkIndex: c.Index,
			Content:    c.Text,
			Vector:     vectors[i],
		}
	}

	if err := s.backend.Upsert(ctx, records); err != nil {
		return 0, fmt.Errorf("upsert %s: %w", f.Filename, err)
	}

	return len(chunks), nil
}
