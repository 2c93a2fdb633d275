// Package main provides the HTTP server for WhatsThePlan.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/whatstheplan/whatstheplan-go/internal/config"
	"github.com/whatstheplan/whatstheplan-go/internal/db"
	"github.com/whatstheplan/whatstheplan-go/internal/llm"
	"github.com/whatstheplan/whatstheplan-go/internal/metrics"
	"github.com/whatstheplan/whatstheplan-go/internal/pipeline"
	"github.com/whatstheplan/whatstheplan-go/internal/search"
	"github.com/whatstheplan/whatstheplan-go/internal/server"
	"github.com/whatstheplan/whatstheplan-go/web"
)

func main() {
	cfg := config.Load()

	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	slog.SetDefault(logger)
	defer func() {
		if err := closeLog(); err != nil {
			slog.Error("failed to close log file", "error", err)
		}
	}()

	slog.Info("starting whatstheplan-server",
		"provider", cfg.LLMProvider, "model", cfg.LLMModel, "port", cfg.ServerPort)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	dbClient, err := db.NewClient(ctx, db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger)
	if err != nil {
		cancel()
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := dbClient.InitSchema(ctx); err != nil {
		cancel()
		slog.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}
	cancel()
	defer func() {
		if err := dbClient.Close(context.Background()); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	model, err := llm.NewModel(cfg)
	if err != nil {
		slog.Error("failed to create LLM client", "error", err)
		os.Exit(1)
	}
	slog.Info("language model ready", "model", model.Model())

	searcher, err := search.NewTavilyClient(cfg.TavilyAPIKey, cfg.TavilyEndpoint, search.Params{
		MaxResults:    cfg.TavilyMaxResults,
		SearchDepth:   cfg.TavilySearchDepth,
		IncludeAnswer: cfg.TavilyIncludeAnswer,
	})
	if err != nil {
		slog.Error("failed to create search client", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()

	pipe, err := pipeline.New(model, searcher, dbClient, pipeline.Options{
		MaxRetries: cfg.MaxRetries,
		NumQueries: cfg.RewriterNumQueries,
	}, logger, collector)
	if err != nil {
		slog.Error("failed to create pipeline", "error", err)
		os.Exit(1)
	}

	static, err := web.Static()
	if err != nil {
		slog.Error("failed to load embedded frontend", "error", err)
		os.Exit(1)
	}

	srv := server.New(pipe, dbClient, collector, cfg, logger, static)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
