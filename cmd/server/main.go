// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	httpAdapter "github.com/24mcab48-rohan/jarvis/pkg/adapters/http"
	"github.com/24mcab48-rohan/jarvis/pkg/core/api"
	"github.com/24mcab48-rohan/jarvis/pkg/core/config"
	"github.com/24mcab48-rohan/jarvis/pkg/core/services"
	"github.com/24mcab48-rohan/jarvis/pkg/observability/logging"
	"github.com/24mcab48-rohan/jarvis/pkg/storage/memory"
	"github.com/24mcab48-rohan/jarvis/pkg/vectorstore"
	_ "github.com/24mcab48-rohan/jarvis/pkg/vectorstore/milvus"
)

var (
	// Version is set via ldflags during build
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	port := flag.Int("port", 8080, "HTTP port to listen on")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("Jarvis Server\nVersion: %s\nBuild Time: %s\n", Version, BuildTime)
		os.Exit(0)
	}

	logger := logging.New(logging.Config{
		Level:  "info",
		Format: "json",
	})
	logger.Info("Starting Jarvis Server",
		"version", Version,
		"build_time", BuildTime)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *port != 8080 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize session storage
	sessions := memory.New()
	logger.Info("Initialized in-memory session store")

	// Initialize vector store backend
	initCtx := context.Background()
	backend, err := vectorstore.Providers.New(initCtx, cfg.VectorStore.Type, map[string]string{
		"address":    cfg.VectorStore.MilvusAddress,
		"index_name": cfg.VectorStore.IndexName,
		"dimensions": strconv.Itoa(cfg.Embedding.Dimensions),
	})
	if err != nil {
		logger.Error("Failed to initialize vector store backend",
			"type", cfg.VectorStore.Type,
			"error", err)
		os.Exit(1)
	}
	defer backend.Close(context.Background())
	logger.Info("Initialized vector store backend", "type", cfg.VectorStore.Type)

	// Initialize provider clients
	embedder := api.NewOpenAIEmbeddingClient(
		cfg.Embedding.Endpoint,
		cfg.Embedding.APIKey,
		cfg.Embedding.Model,
		cfg.Embedding.Dimensions,
	)
	logger.Info("Initialized embedding client",
		"endpoint", cfg.Embedding.Endpoint,
		"model", cfg.Embedding.Model,
		"dimensions", cfg.Embedding.Dimensions)

	chat := api.NewOpenAIChatClient(cfg.Chat.Endpoint, cfg.Chat.APIKey, cfg.Chat.Model)
	logger.Info("Initialized chat client",
		"endpoint", cfg.Chat.Endpoint,
		"model", cfg.Chat.Model)

	// Initialize services
	ingest := services.NewIngestService(embedder, backend, logger, cfg.Chunking.Size, cfg.Chunking.Overlap)
	assembler := services.NewAssembler(embedder, backend, logger)
	answerer := services.NewAnswerService(chat, cfg.Chat.HistoryTurns, cfg.Chat.MaxOutputTokens, cfg.Chat.Temperature)

	// Initialize HTTP adapter
	handler := httpAdapter.New(logger, sessions, ingest, assembler, answerer, httpAdapter.RetrievalOptions{
		TopK:            cfg.Retrieval.TopK,
		MaxContextChars: cfg.Retrieval.MaxContextChars,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
