package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/contentflow/internal/api"
	"github.com/timmy/contentflow/internal/api/handler"
	"github.com/timmy/contentflow/internal/config"
	"github.com/timmy/contentflow/internal/logger"
	"github.com/timmy/contentflow/internal/repository"
	"github.com/timmy/contentflow/internal/service"
	"github.com/timmy/contentflow/internal/studio"
)

func main() {
	log := logger.NewDefault()
	logger.SetDefaultLogger(log)
	defer logger.Sync()

	// Support CONFIG_PATH environment variable for production deployments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	var recorder service.GenerationRecorder
	var generations handler.GenerationLister
	if cfg.Database.Enabled {
		db, err := repository.InitDB(&cfg.Database)
		if err != nil {
			logger.Fatal("Failed to initialize database: %v", err)
		}
		defer repository.Close(db)

		repo := repository.NewGenerationLogRepository(db)
		recorder = repo
		generations = repo
	} else {
		logger.Warn("Database disabled, generation log is off")
	}

	generator, err := newGenerator(&cfg.AI)
	if err != nil {
		logger.Fatal("Failed to initialize generator: %v", err)
	}

	ideaService := service.NewIdeaService(generator, recorder, &service.IdeaServiceConfig{
		APIKey: cfg.AI.ResolveAPIKey,
		KeyEnv: cfg.AI.APIKeyEnv,
	})
	if cfg.AI.ResolveAPIKey() == "" {
		logger.Warn("%s is not set; generation requests will fail until it is", cfg.AI.APIKeyEnv)
	}

	sessions := studio.NewSessions(ideaService)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Run(sweepCtx, cfg.Session.SweepInterval, cfg.Session.IdleTimeout)

	router, err := api.SetupRouter(cfg, api.Dependencies{
		Ideas:       ideaService,
		Provider:    ideaService.Provider(),
		Sessions:    sessions,
		Generations: generations,
	})
	if err != nil {
		logger.Fatal("Failed to set up router: %v", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.WithFields(logger.Fields{
			"port":               cfg.Server.Port,
			"mode":               cfg.Server.Mode,
			logger.FieldProvider: generator.Provider(),
			logger.FieldModel:    generator.Model(),
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func newGenerator(cfg *config.AIConfig) (service.Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return service.NewGeminiGenerator(&service.GeminiConfig{
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		}), nil
	case config.ProviderOpenAI:
		return service.NewOpenAIGenerator(&service.OpenAIConfig{
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported ai.provider %q", cfg.Provider)
	}
}
