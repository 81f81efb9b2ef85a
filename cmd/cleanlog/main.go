// Package main provides the entry point for the cleanlog MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sanitrack/cleanlog-go/internal/artifact"
	"github.com/sanitrack/cleanlog-go/internal/config"
	"github.com/sanitrack/cleanlog-go/internal/db"
	"github.com/sanitrack/cleanlog-go/internal/server"
	"github.com/sanitrack/cleanlog-go/internal/tools"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()

	// Dual output: stderr text + file JSON. stdout belongs to the MCP
	// transport.
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("cleanlog starting",
		"version", version,
		"surrealdb_url", cfg.SurrealDBURL,
		"artifact_dir", cfg.ArtifactDir,
		"artifact_ttl", cfg.ArtifactTTL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	dbClient, err := db.NewClient(ctx, db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		logger.Info("closing database connection")
		_ = dbClient.Close(ctx)
	}()

	if err := dbClient.InitSchema(ctx); err != nil {
		logger.Error("failed to initialize database schema", "error", err)
		os.Exit(1)
	}

	// One artifact store per process; its deletion timers outlive any
	// single job.
	artifacts, err := artifact.NewStore(cfg.ArtifactDir, cfg.ArtifactTTL,
		artifact.LocatorMode(cfg.LocatorMode), logger)
	if err != nil {
		logger.Error("failed to create artifact store", "error", err)
		os.Exit(1)
	}
	defer artifacts.Close()

	// Clear leftovers from a prior abnormal termination before serving.
	if err := artifacts.Sweep(); err != nil {
		logger.Warn("startup artifact sweep failed", "error", err)
	}

	srv := server.New(version, logger)
	srv.Setup()

	deps := &tools.Dependencies{
		Store:     dbClient,
		Artifacts: artifacts,
		Logger:    logger,
	}
	tools.RegisterAll(srv.MCPServer(), deps, cfg)
	logger.Info("tools registered", "count", 4)

	logger.Info("server ready, awaiting connections")

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
