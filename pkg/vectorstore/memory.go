// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

func init() {
	Providers.Register("memory", func(ctx context.Context, params map[string]string) (Backend, error) {
		return NewMemoryBackend(), nil
	})
}

// MemoryBackend is a brute-force cosine-similarity Backend used when no
// hosted vector database is configured, and as the unit-test backend.
// Records are kept per-ID so upserts overwrite in place.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string // insertion order, for deterministic tie-breaking
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string]Record)}
}

// Upsert stores records by ID, replacing existing ones. All vectors in one
// store must share a dimension; a mismatch is rejected before any write.
func (m *MemoryBackend) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dim := m.dimensionLocked()
	if dim == 0 {
		dim = len(records[0].Vector)
	}
	for _, r := range records {
		if len(r.Vector) != dim {
			return fmt.Errorf("record %s: vector dimension %d, store expects %d", r.ID, len(r.Vector), dim)
		}
	}

	for _, r := range records {
		if _, exists := m.records[r.ID]; !exists {
			m.order = append(m.order, r.ID)
		}
		m.records[r.ID] = r
	}
	return nil
}

// Query returns up to topK records ordered by descending cosine similarity.
// Ties are broken by insertion order so identical inputs always yield an
// identical result sequence.
func (m *MemoryBackend) Query(ctx context.Context, vector []float32, topK int) ([]SearchResult, error) {
	if topK <= 0 {
		topK = 10
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.records) == 0 {
		return nil, ErrEmptyIndex
	}
	if dim := m.dimensionLocked(); len(vector) != dim {
		return nil, fmt.Errorf("query vector dimension %d, store expects %d", len(vector), dim)
	}

	scored := make([]SearchResult, 0, len(m.records))
	for _, id := range m.order {
		r := m.records[id]
		scored = append(scored, SearchResult{
			Source:     r.Source,
			ChunkIndex: r.ChunkIndex,
			Content:    r.Content,
			Score:      cosine(vector, r.Vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryBackend) Close(ctx context.Context) error {
	return nil
}

// Len reports the number of stored records.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func (m *MemoryBackend) dimensionLocked() int {
	for _, id := range m.order {
		return len(m.records[id].Vector)
	}
	return 0
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
