// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/24mcab48-rohan/jarvis/pkg/core/api"
	"github.com/24mcab48-rohan/jarvis/pkg/observability/logging"
	"github.com/24mcab48-rohan/jarvis/pkg/vectorstore"
)

const contextSeparator = "\n---\n"

// Attribution names the origin of one chunk included in an assembled
// context block.
type Attribution struct {
	Source     string  `json:"source"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
}

// Context is the retrieved-text assembly handed to the language model
// alongside the question.
type Context struct {
	Text    string
	Sources []Attribution
}

// Assembler turns a question into a bounded context block: it embeds the
// question, queries the vector store for the nearest chunks, and
// concatenates them with source attribution. Pure given the embedding and
// store contents; no randomness.
type Assembler struct {
	embedder api.EmbeddingClient
	backend  vectorstore.Backend
	logger   *logging.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(embedder api.EmbeddingClient, backend vectorstore.Backend, logger *logging.Logger) *Assembler {
	return &Assembler{embedder: embedder, backend: backend, logger: logger}
}

// Assemble retrieves the k chunks nearest to the question and joins them in
// descending-similarity order, each prefixed with its source filename.
// A chunk whose addition would push the block past maxContextChars is
// dropped whole; chunks are never split mid-text. An empty index surfaces
// vectorstore.ErrEmptyIndex so callers can tell "no documents yet" from a
// provider failure.
func (a *Assembler) Assemble(ctx context.Context, question string, k, maxContextChars int) (Context, error) {
	vectors, err := a.embedder.Embed(ctx, []string{question})
	if err != nil {
		return Context{}, fmt.Errorf("embed question: %w", err)
	}
	if len(vectors) != 1 {
		return Context{}, fmt.Errorf("embed question: %w: got %d vectors", api.ErrEmbeddingUnavailable, len(vectors))
	}

	results, err := a.backend.Query(ctx, vectors[0], k)
	if err != nil {
		return Context{}, fmt.Errorf("query store: %w", err)
	}
	if len(results) == 0 {
		return Context{}, fmt.Errorf("query store: %w", vectorstore.ErrEmptyIndex)
	}

	var sb strings.Builder
	var sources []Attribution
	for _, r := range results {
		entry := fmt.Sprintf("[Source: %s]\n%s", r.Source, r.Content)
		needed := len(entry)
		if sb.Len() > 0 {
			needed += len(contextSeparator)
		}
		if sb.Len()+needed > maxContextChars {
			a.logger.Debug("Context budget reached, dropping remaining chunks",
				"included", len(sources), "retrieved", len(results))
			break
		}
		if sb.Len() > 0 {
			sb.WriteString(contextSeparator)
		}
		sb.WriteString(entry)
		sources = append(sources, Attribution{
			Source:     r.Source,
			ChunkIndex: r.ChunkIndex,
			Score:      r.Score,
		})
	}

	return Context{Text: sb.String(), Sources: sources}, nil
}
