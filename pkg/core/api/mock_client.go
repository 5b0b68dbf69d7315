// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"hash/fnv"
)

// MockEmbeddingClient is a deterministic EmbeddingClient for tests. Each
// input maps to a fixed-dimension vector derived from a hash of its text,
// so equal texts embed equally and different texts (almost always) differ.
type MockEmbeddingClient struct {
	Dimensions int
	// Err, when set, is returned from every Embed call.
	Err error
	// Calls records every batch passed to Embed.
	Calls [][]string
}

// NewMockEmbeddingClient creates a mock with the given dimensions.
func NewMockEmbeddingClient(dimensions int) *MockEmbeddingClient {
	return &MockEmbeddingClient{Dimensions: dimensions}
}

// Embed implements EmbeddingClient.
func (m *MockEmbeddingClient) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	m.Calls = append(m.Calls, inputs)
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float32, len(inputs))
	for i, text := range inputs {
		out[i] = hashVector(text, m.Dimensions)
	}
	return out, nil
}

func hashVector(text string, dim int) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()
	vec := make([]float32, dim)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int64(seed>>33)) / float32(1<<31)
	}
	return vec
}

// MockChatClient is a ChatClient for tests. It echoes the last user message
// unless a canned response or error is configured.
type MockChatClient struct {
	Response string
	Err      error
	// Requests records every request passed to Generate.
	Requests []*GenerateRequest
}

// Generate implements ChatClient.
func (m *MockChatClient) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}

	last := ""
	for _, msg := range req.Messages {
		if msg.Role == "user" {
			last = msg.Content
		}
	}
	return fmt.Sprintf("Mock answer to: %s", last), nil
}
