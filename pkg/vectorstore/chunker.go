// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package vectorstore

import (
	"fmt"
	"strings"
)

// DefaultChunkSize is the default chunk size in words.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default overlap between consecutive chunks in words.
const DefaultChunkOverlap = 150

// Chunk is a contiguous word window of a document's text. Every chunk except
// possibly the last holds exactly the configured number of words, and
// consecutive chunks share exactly the configured overlap.
type Chunk struct {
	Text      string
	Source    string
	Index     int
	StartWord int
	EndWord   int // exclusive
}

// ID returns the deterministic record identifier for this chunk, derived
// from the source filename and chunk index. Re-ingesting the same file
// produces the same IDs, so stale records are overwritten rather than
// duplicated.
func (c Chunk) ID() string {
	return fmt.Sprintf("%s_chunk_%d", c.Source, c.Index)
}

// ChunkWords splits text into overlapping word-count windows. size and
// overlap are in words; overlap must satisfy 0 <= overlap < size, otherwise
// a configuration error is returned (an overlap >= size would never advance).
// Empty or whitespace-only text yields zero chunks and no error. The final
// chunk may be shorter than size and is always emitted.
func ChunkWords(text, source string, size, overlap int) ([]Chunk, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid chunking config: size %d must be positive", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("invalid chunking config: overlap %d must be in [0, %d)", overlap, size)
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	step := size - overlap
	var chunks []Chunk
	for start := 0; start < len(words); start += step {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, Chunk{
			Text:      strings.Join(words[start:end], " "),
			Source:    source,
			Index:     len(chunks),
			StartWord: start,
			EndWord:   end,
		})
		if end == len(words) {
			break
		}
	}

	return chunks, nil
}
