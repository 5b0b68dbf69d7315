// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Chat        ChatConfig        `yaml:"chat"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

// ChatConfig contains answer generation configuration
type ChatConfig struct {
	Endpoint        string  `yaml:"endpoint"` // e.g. "https://api.openai.com/v1"
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"`
	HistoryTurns    int     `yaml:"history_turns"` // most recent turns included in the prompt
}

// EmbeddingConfig contains embedding service configuration
type EmbeddingConfig struct {
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`      // e.g. "all-MiniLM-L6-v2"
	Dimensions int    `yaml:"dimensions"` // default 384
}

// VectorStoreConfig contains vector store backend configuration
type VectorStoreConfig struct {
	Type          string `yaml:"type"`           // "memory" (default) or "milvus"
	MilvusAddress string `yaml:"milvus_address"` // e.g. "localhost:19530"
	IndexName     string `yaml:"index_name"`     // logical index for all records
}

// ChunkingConfig controls the document-to-chunk pipeline. Units are words.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// RetrievalConfig controls context assembly for questions.
type RetrievalConfig struct {
	TopK            int `yaml:"top_k"`
	MaxContextChars int `yaml:"max_context_chars"`
}

// Load loads configuration from a YAML file on top of the defaults, then
// applies environment variable overrides. Unmarshalling into a pre-filled
// struct keeps explicit zero values from the file (overlap 0, temperature 0)
// instead of re-defaulting them. The result is not yet validated; callers
// must call Validate before use.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Default returns configuration built from environment variables and
// defaults only.
func Default() *Config {
	cfg := defaults()
	applyEnvOverrides(cfg)
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Chat.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_ENDPOINT"); v != "" {
		cfg.Chat.Endpoint = v
	}

	if v := os.Getenv("EMBEDDING_ENDPOINT"); v != "" {
		cfg.Embedding.Endpoint = v
	}
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}

	if v := os.Getenv("MILVUS_ADDRESS"); v != "" {
		cfg.VectorStore.MilvusAddress = v
		cfg.VectorStore.Type = "milvus"
	}
	if v := os.Getenv("INDEX_NAME"); v != "" {
		cfg.VectorStore.IndexName = v
	}
}

// defaults returns the base configuration. Load unmarshals the file on top
// of it, so every field a file omits keeps its default while explicit
// zeroes survive.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 60 * time.Second,
		},
		Chat: ChatConfig{
			MaxOutputTokens: 4096,
			Temperature:     0.7,
			HistoryTurns:    6,
		},
		Embedding: EmbeddingConfig{
			Model:      "all-MiniLM-L6-v2",
			Dimensions: 384,
		},
		VectorStore: VectorStoreConfig{
			Type:      "memory",
			IndexName: "jarvis-index",
		},
		Chunking: ChunkingConfig{
			Size:    800,
			Overlap: 150,
		},
		Retrieval: RetrievalConfig{
			TopK:            5,
			MaxContextChars: 6000,
		},
	}
}

// Validate rejects configurations that would misbehave at runtime. A
// validation failure is fatal at startup; nothing else is.
func (c *Config) Validate() error {
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("chunking.size must be positive, got %d", c.Chunking.Size)
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("chunking.overlap must be in [0, %d), got %d", c.Chunking.Size, c.Chunking.Overlap)
	}
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding.dimensions must be positive, got %d", c.Embedding.Dimensions)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.Retrieval.MaxContextChars <= 0 {
		return fmt.Errorf("retrieval.max_context_chars must be positive, got %d", c.Retrieval.MaxContextChars)
	}
	if c.VectorStore.Type == "milvus" && c.VectorStore.MilvusAddress == "" {
		return fmt.Errorf("vector_store.milvus_address is required when type is milvus")
	}
	if c.Embedding.Endpoint == "" {
		return fmt.Errorf("embedding.endpoint is required")
	}
	if c.Chat.Endpoint == "" {
		return fmt.Errorf("chat.endpoint is required")
	}
	if c.Chat.Model == "" {
		return fmt.Errorf("chat.model is required")
	}
	return nil
}
