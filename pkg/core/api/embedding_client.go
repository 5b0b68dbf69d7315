// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// EmbeddingClient converts a batch of texts into fixed-dimension vectors,
// one vector per input, in input order.
type EmbeddingClient interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// OpenAIEmbeddingClient implements EmbeddingClient against any
// OpenAI-compatible embeddings endpoint. It verifies that the provider
// returned exactly one vector per input and that every vector has the
// configured dimensions, so the ingest pipeline can rely on a strict
// chunk/vector correspondence.
type OpenAIEmbeddingClient struct {
	client     openai.Client
	model      string
	dimensions int
}

// NewOpenAIEmbeddingClient creates an embedding client with its own base URL
// and API key.
func NewOpenAIEmbeddingClient(baseURL, apiKey, model string, dimensions int) *OpenAIEmbeddingClient {
	opts := []option.RequestOption{}

	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		opts = append(opts, option.WithAPIKey("dummy"))
	}

	return &OpenAIEmbeddingClient{
		client:     openai.NewClient(opts...),
		model:      model,
		dimensions: dimensions,
	}
}

// Embed generates embeddings for the given inputs in a single batched
// request. Any provider failure or shape mismatch maps to
// ErrEmbeddingUnavailable so the caller aborts the whole batch.
func (c *OpenAIEmbeddingClient) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	var input openai.EmbeddingNewParamsInputUnion
	if len(inputs) == 1 {
		input = openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(inputs[0]),
		}
	} else {
		input = openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: inputs,
		}
	}

	params := openai.EmbeddingNewParams{
		Model:      openai.EmbeddingModel(c.model),
		Input:      input,
		Dimensions: openai.Int(int64(c.dimensions)),
	}

	resp, err := c.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("%w: got %d vectors for %d inputs", ErrEmbeddingUnavailable, len(resp.Data), len(inputs))
	}

	results := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		if len(d.Embedding) != c.dimensions {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, expected %d", ErrEmbeddingUnavailable, i, len(d.Embedding), c.dimensions)
		}
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		results[i] = vec
	}

	return results, nil
}
