// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the JSON types of the HTTP API.
package schema

// Session is a chat session as returned by the API.
type Session struct {
	ID        string `json:"id"`
	Object    string `json:"object"` // "session"
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// DeleteSessionResponse confirms a session deletion.
type DeleteSessionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"` // "session.deleted"
	Deleted bool   `json:"deleted"`
}

// Turn is one (question, answer) pair of a session's history.
type Turn struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedAt int64  `json:"created_at"`
}

// HistoryResponse lists a session's turns in chronological order.
type HistoryResponse struct {
	Object string `json:"object"` // "list"
	Data   []Turn `json:"data"`
}

// AskRequest is the body of POST /v1/sessions/{id}/ask.
type AskRequest struct {
	Question string `json:"question"`
	// TopK optionally overrides the configured retrieval depth.
	TopK int `json:"top_k,omitempty"`
}

// SourceAttribution names a retrieved chunk that contributed to an answer.
type SourceAttribution struct {
	Source     string  `json:"source"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
}

// AskResponse carries the generated answer and the sources behind it.
type AskResponse struct {
	SessionID string              `json:"session_id"`
	Question  string              `json:"question"`
	Answer    string              `json:"answer"`
	Sources   []SourceAttribution `json:"sources"`
}

// FileOutcome is the per-file result of an upload batch. Error is empty on
// success; a failed file never aborts the files around it.
type FileOutcome struct {
	Filename string `json:"filename"`
	Status   string `json:"status"` // "indexed" or "failed"
	Chunks   int    `json:"chunks"`
	Error    string `json:"error,omitempty"`
}

// UploadResponse summarizes an upload batch.
type UploadResponse struct {
	Object string        `json:"object"` // "list"
	Data   []FileOutcome `json:"data"`
}
