// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package services

import (
	"context"
	"fmt"

	"github.com/24mcab48-rohan/jarvis/pkg/core/api"
	"github.com/24mcab48-rohan/jarvis/pkg/core/state"
)

// answerInstructions is the fixed prefix of every generation prompt.
const answerInstructions = `Use the context below to answer the question. Provide a comprehensive answer based on the context provided.
If the specific information isn't in the context, you can say: "This specific information isn't covered in the uploaded notes, but based on the context provided..."`

// AnswerService builds the final prompt from the assembled context, the
// recent conversation history, and the question, then delegates generation
// to the chat provider. Provider failures are surfaced, never retried.
type AnswerService struct {
	chat            api.ChatClient
	historyTurns    int
	maxOutputTokens int
	temperature     float64
}

// NewAnswerService creates an AnswerService. historyTurns bounds how many of
// the most recent turns enter the prompt.
func NewAnswerService(chat api.ChatClient, historyTurns, maxOutputTokens int, temperature float64) *AnswerService {
	return &AnswerService{
		chat:            chat,
		historyTurns:    historyTurns,
		maxOutputTokens: maxOutputTokens,
		temperature:     temperature,
	}
}

// Answer generates a reply to question given the retrieved context and the
// session's history.
func (s *AnswerService) Answer(ctx context.Context, question string, retrieved Context, history []state.Turn) (string, error) {
	if len(history) > s.historyTurns {
		history = history[len(history)-s.historyTurns:]
	}

	messages := make([]api.ChatMessage, 0, 2+2*len(history))
	messages = append(messages, api.ChatMessage{Role: "system", Content: answerInstructions})
	for _, turn := range history {
		messages = append(messages,
			api.ChatMessage{Role: "user", Content: turn.Question},
			api.ChatMessage{Role: "assistant", Content: turn.Answer},
		)
	}
	messages = append(messages, api.ChatMessage{
		Role:    "user",
		Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", retrieved.Text, question),
	})

	return s.chat.Generate(ctx, &api.GenerateRequest{
		Messages:        messages,
		MaxOutputTokens: s.maxOutputTokens,
		Temperature:     s.temperature,
	})
}
