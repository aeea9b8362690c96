// Package main boots the emotional companion service and wires
// application dependencies.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/arialabs/aria/internal/chat"
	"github.com/arialabs/aria/internal/config"
	"github.com/arialabs/aria/internal/conversation"
	"github.com/arialabs/aria/internal/emotion"
	"github.com/arialabs/aria/internal/memory"
	"github.com/arialabs/aria/internal/models"
	"github.com/arialabs/aria/internal/persona"
	"github.com/arialabs/aria/internal/repository"
	"github.com/arialabs/aria/internal/server"
	"github.com/arialabs/aria/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "reason", err.Error())
	}

	cfg := config.Load()
	slog.Info("configuration loaded", "chat_provider", cfg.ChatProvider, "chat_model", cfg.ChatModel, "embedding_model", cfg.EmbeddingModel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	embedder, err := memory.NewGenAIEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel)
	if err != nil {
		log.Fatalf("failed to create embedder: %v", err)
	}

	chatModel, err := models.New(ctx, cfg.ChatProvider, cfg.ChatModel, cfg.ChatAPIKey, cfg.ChatBaseURL)
	if err != nil {
		log.Fatalf("failed to create chat model: %v", err)
	}

	characterPersona, err := persona.Load(cfg.PersonaFile)
	if err != nil {
		log.Fatalf("failed to load persona: %v", err)
	}
	slog.Info("persona loaded", "name", characterPersona.Name, "patterns", len(characterPersona.ResponsePatterns))

	tracker := conversation.NewTracker(storage.NewFileStateStore(cfg.StatePath()), cfg.WindowSize)

	chatService := chat.NewService(
		emotion.NewClassifier(chatModel),
		embedder,
		memory.NewService(embedder, store.Memories),
		models.NewGenerator(chatModel),
		tracker,
		storage.NewMemoryLog(cfg.MemoryLogPath()),
		characterPersona,
		chat.Options{
			TopK:          cfg.TopK,
			EmotionWeight: cfg.EmotionWeight,
			HalfLife:      time.Duration(cfg.RecencyHalfLifeHr * float64(time.Hour)),
		},
	)

	srv := server.New(chatService)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.SetupRouter(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown failed", "error", err.Error())
		}
	}

	slog.Info("server shutdown complete")
}
