// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// ChatMessage is one turn of the prompt handed to the generation provider.
// Role is "system", "user", or "assistant".
type ChatMessage struct {
	Role    string
	Content string
}

// GenerateRequest carries an assembled prompt plus generation parameters.
type GenerateRequest struct {
	Messages        []ChatMessage
	MaxOutputTokens int
	Temperature     float64
}

// ChatClient generates an answer for an assembled prompt.
type ChatClient interface {
	Generate(ctx context.Context, req *GenerateRequest) (string, error)
}

// OpenAIChatClient implements ChatClient using the official OpenAI Go SDK.
// Works with OpenAI, Ollama, vLLM, and other OpenAI-compatible backends.
type OpenAIChatClient struct {
	client openai.Client
	model  string
}

// NewOpenAIChatClient creates a chat client. The baseURL parameter allows
// connecting to OpenAI-compatible backends; apiKey is optional for local
// backends that don't require authentication.
func NewOpenAIChatClient(baseURL, apiKey, model string) *OpenAIChatClient {
	opts := []option.RequestOption{}

	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		opts = append(opts, option.WithAPIKey("dummy"))
	}

	return &OpenAIChatClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Generate sends the prompt and returns the model's reply. A completion cut
// off by the provider's safety filter maps to ErrContentRejected; transport
// and provider errors map to ErrGenerationUnavailable. No retries.
func (c *OpenAIChatClient) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(msg.Content))
		case "user":
			messages = append(messages, openai.UserMessage(msg.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			return "", fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.model),
		Messages: messages,
	}
	if req.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxOutputTokens))
	}
	params.Temperature = openai.Float(req.Temperature)

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: provider returned no choices", ErrGenerationUnavailable)
	}

	choice := completion.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", fmt.Errorf("%w: %s", ErrContentRejected, choice.Message.Content)
	}

	return choice.Message.Content, nil
}
