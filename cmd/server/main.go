package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prepdeck/prepdeck/internal/api"
	"github.com/prepdeck/prepdeck/internal/auth"
	"github.com/prepdeck/prepdeck/internal/config"
	"github.com/prepdeck/prepdeck/internal/db"
	"github.com/prepdeck/prepdeck/internal/logger"
	"github.com/prepdeck/prepdeck/internal/repository/sqlite"
	"github.com/prepdeck/prepdeck/internal/services"
	"github.com/prepdeck/prepdeck/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("PrepDeck Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("token_ttl_hours=%d", cfg.TokenTTLHours)
	log.Debug("completion_worker_count=%d", cfg.CompletionWorkerCount)
	log.Debug("completion_queue_size=%d", cfg.CompletionQueueSize)
	log.Debug("due_card_limit=%d", cfg.DueCardLimit)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	completionPool := worker.NewPool(cfg.CompletionWorkerCount, cfg.CompletionQueueSize)

	problemCards := sqlite.NewProblemCardRepository(database.DB)
	roadmapCards := sqlite.NewRoadmapCardRepository(database.DB)

	srv := &api.Server{
		UserService:    services.NewUserService(sqlite.NewUserRepository(database.DB)),
		ProblemService: services.NewProblemService(sqlite.NewProblemRepository(database.DB)),
		RoadmapService: services.NewRoadmapService(sqlite.NewRoadmapStepRepository(database.DB)),
		ProblemReviews: services.NewReviewService(problemCards, "problem"),
		RoadmapReviews: services.NewReviewService(roadmapCards, "roadmap_step"),
		CompletionPool: completionPool,
		Tokens:         auth.New(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour),
		DB:             database.DB,
		DueCardLimit:   cfg.DueCardLimit,
	}

	ctx, cancel := context.WithCancel(context.Background())
	completionPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping completion pool")
	cancel()
	completionPool.Stop()

	log.Info("===========================================")
	log.Info("PrepDeck Server Stopped")
	log.Info("===========================================")
}
