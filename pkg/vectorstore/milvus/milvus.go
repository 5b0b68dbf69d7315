// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package milvus

import (
	"context"
	"fmt"

	"github.com/24mcab48-rohan/jarvis/pkg/vectorstore"
	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

func init() {
	vectorstore.Providers.Register("milvus", func(ctx context.Context, params map[string]string) (vectorstore.Backend, error) {
		dim := 0
		fmt.Sscanf(params["dimensions"], "%d", &dim)
		return NewBackend(ctx, params["address"], params["index_name"], dim)
	})
}

const (
	fieldRecordID   = "record_id"
	fieldSource     = "source"
	fieldChunkIndex = "chunk_index"
	fieldContent    = "content"
	fieldEmbedding  = "embedding"

	maxContentLength  = 65535
	maxRecordIDLength = 512
	maxSourceLength   = 256

	// upsertBatchSize bounds a single Milvus write; larger ingests are
	// split into consecutive batches.
	upsertBatchSize = 200
)

// Backend implements vectorstore.Backend on a Milvus deployment. All records
// for a deployment live in one collection named by the configured index name.
type Backend struct {
	client     milvusclient.Client
	collection string
	dimensions int
}

// NewBackend connects to Milvus and ensures the collection for indexName
// exists, creating it with an HNSW/COSINE index on first use.
func NewBackend(ctx context.Context, address, indexName string, dimensions int) (*Backend, error) {
	c, err := milvusclient.NewClient(ctx, milvusclient.Config{
		Address: address,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s: %v", vectorstore.ErrUnavailable, address, err)
	}

	b := &Backend{client: c, collection: indexName, dimensions: dimensions}
	if err := b.ensureCollection(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return b, nil
}

// ensureCollection creates the collection, its index, and loads it when the
// collection does not exist yet.
func (b *Backend) ensureCollection(ctx context.Context) error {
	exists, err := b.client.HasCollection(ctx, b.collection)
	if err != nil {
		return fmt.Errorf("%w: check collection %s: %v", vectorstore.ErrUnavailable, b.collection, err)
	}
	if exists {
		return nil
	}

	schema := entity.NewSchema().
		WithName(b.collection).
		WithField(entity.NewField().
			WithName(fieldRecordID).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(int64(maxRecordIDLength)).
			WithIsPrimaryKey(true)).
		WithField(entity.NewField().
			WithName(fieldSource).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(int64(maxSourceLength))).
		WithField(entity.NewField().
			WithName(fieldChunkIndex).
			WithDataType(entity.FieldTypeInt64)).
		WithField(entity.NewField().
			WithName(fieldContent).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(int64(maxContentLength))).
		WithField(entity.NewField().
			WithName(fieldEmbedding).
			WithDataType(entity.FieldTypeFloatVector).
			WithDim(int64(b.dimensions)))

	if err := b.client.CreateCollection(ctx, schema, 1); err != nil {
		return fmt.Errorf("%w: create collection %s: %v", vectorstore.ErrUnavailable, b.collection, err)
	}

	idx, err := entity.NewIndexHNSW(entity.COSINE, 16, 200)
	if err != nil {
		return fmt.Errorf("create HNSW index params: %w", err)
	}
	if err := b.client.CreateIndex(ctx, b.collection, fieldEmbedding, idx, false); err != nil {
		return fmt.Errorf("%w: create index on %s: %v", vectorstore.ErrUnavailable, b.collection, err)
	}
	if err := b.client.LoadCollection(ctx, b.collection, false); err != nil {
		return fmt.Errorf("%w: load collection %s: %v", vectorstore.ErrUnavailable, b.collection, err)
	}

	return nil
}

// Upsert writes records by primary key in batches of upsertBatchSize.
// Existing records with the same ID are overwritten.
func (b *Backend) Upsert(ctx context.Context, records []vectorstore.Record) error {
	for start := 0; start < len(records); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := b.upsertBatch(ctx, records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) upsertBatch(ctx context.Context, records []vectorstore.Record) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, len(records))
	sources := make([]string, len(records))
	chunkIndexes := make([]int64, len(records))
	contents := make([]string, len(records))
	vectors := make([][]float32, len(records))

	for i, r := range records {
		ids[i] = r.ID
		sources[i] = r.Source
		chunkIndexes[i] = int64(r.ChunkIndex)
		content := r.Content
		if len(content) > maxContentLength {
			content = content[:maxContentLength]
		}
		contents[i] = content
		vectors[i] = r.Vector
	}

	dim := len(vectors[0])
	_, err := b.client.Upsert(ctx, b.collection, "",
		entity.NewColumnVarChar(fieldRecordID, ids),
		entity.NewColumnVarChar(fieldSource, sources),
		entity.NewColumnInt64(fieldChunkIndex, chunkIndexes),
		entity.NewColumnVarChar(fieldContent, contents),
		entity.NewColumnFloatVector(fieldEmbedding, dim, vectors),
	)
	if err != nil {
		return fmt.Errorf("%w: upsert into %s: %v", vectorstore.ErrUnavailable, b.collection, err)
	}

	if err := b.client.Flush(ctx, b.collection, false); err != nil {
		return fmt.Errorf("%w: flush %s: %v", vectorstore.ErrUnavailable, b.collection, err)
	}

	return nil
}

// Query performs a top-K cosine similarity search. An index with no records
// yields vectorstore.ErrEmptyIndex, not a provider error.
func (b *Backend) Query(ctx context.Context, vector []float32, topK int) ([]vectorstore.SearchResult, error) {
	if topK <= 0 {
		topK = 10
	}

	exists, err := b.client.HasCollection(ctx, b.collection)
	if err != nil {
		return nil, fmt.Errorf("%w: check collection %s: %v", vectorstore.ErrUnavailable, b.collection, err)
	}
	if !exists {
		return nil, vectorstore.ErrEmptyIndex
	}

	sp, err := entity.NewIndexHNSWSearchParam(64)
	if err != nil {
		return nil, fmt.Errorf("create search params: %w", err)
	}

	results, err := b.client.Search(
		ctx,
		b.collection,
		nil,
		"",
		[]string{fieldRecordID, fieldSource, fieldChunkIndex, fieldContent},
		[]entity.Vector{entity.FloatVector(vector)},
		fieldEmbedding,
		entity.COSINE,
		topK,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %v", vectorstore.ErrUnavailable, b.collection, err)
	}

	if len(results) == 0 {
		return nil, vectorstore.ErrEmptyIndex
	}

	sr := results[0]
	if sr.Err != nil {
		return nil, fmt.Errorf("%w: search result: %v", vectorstore.ErrUnavailable, sr.Err)
	}
	if sr.ResultCount == 0 {
		return nil, vectorstore.ErrEmptyIndex
	}

	sourceCol := sr.Fields.GetColumn(fieldSource)
	chunkIndexCol := sr.Fields.GetColumn(fieldChunkIndex)
	contentCol := sr.Fields.GetColumn(fieldContent)

	out := make([]vectorstore.SearchResult, 0, sr.ResultCount)
	for i := 0; i < sr.ResultCount; i++ {
		source, _ := sourceCol.GetAsString(i)
		chunkIndex, _ := chunkIndexCol.GetAsInt64(i)
		content, _ := contentCol.GetAsString(i)

		out = append(out, vectorstore.SearchResult{
			Source:     source,
			ChunkIndex: int(chunkIndex),
			Content:    content,
			Score:      float64(sr.Scores[i]),
		})
	}

	return out, nil
}

// Close releases the Milvus client connection.
func (b *Backend) Close(ctx context.Context) error {
	return b.client.Close()
}
