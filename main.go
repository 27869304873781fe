package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Soohyeuk/ChefPanda/config"
	"github.com/Soohyeuk/ChefPanda/handlers/api"
	"github.com/Soohyeuk/ChefPanda/logger"
	"github.com/Soohyeuk/ChefPanda/repository/sqlite"
	"github.com/Soohyeuk/ChefPanda/services/recipes"
	"github.com/Soohyeuk/ChefPanda/services/scraper"
	"github.com/Soohyeuk/ChefPanda/storage"
	"github.com/Soohyeuk/ChefPanda/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Init(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := sqlite.InitDB(cfg.Database.Path, cfg.Database.MaxConnections)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo, err := sqlite.NewRepository(db)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	directory := youtube.NewClient(youtube.Config{
		APIKey:  cfg.YouTube.APIKey,
		BaseURL: cfg.YouTube.BaseURL,
		Timeout: cfg.YouTube.RequestTimeout,
	})

	transcripts := youtube.NewTranscriptClient(youtube.TranscriptConfig{
		BaseURL: cfg.YouTube.TimedTextURL,
		Timeout: cfg.YouTube.RequestTimeout,
	})

	recipeService := recipes.NewService(recipes.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.RequestTimeout,
	})

	scraperOpts := []scraper.Option{scraper.WithRepository(repo)}
	if cfg.Backup.Enabled {
		spaces, err := storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: cfg.Backup.AccessKey,
			SecretKey: cfg.Backup.SecretKey,
			Region:    cfg.Backup.Region,
			Endpoint:  cfg.Backup.Endpoint,
			Bucket:    cfg.Backup.Bucket,
		})
		if err != nil {
			log.Fatalf("Failed to initialize backup storage: %v", err)
		}
		scraperOpts = append(scraperOpts, scraper.WithBackup(spaces))
	}

	scraperService := scraper.NewService(
		directory,
		transcripts,
		recipeService,
		scraper.Config{
			DefaultLanguage: cfg.Scrape.DefaultLanguage,
			QueryLimit:      cfg.Scrape.QueryLimit,
			ChannelLimit:    cfg.Scrape.ChannelLimit,
			Retry: scraper.RetryPolicy{
				MaxAttempts: cfg.Scrape.FetchAttempts,
				Delay:       cfg.Scrape.FetchRetryDelay,
			},
			Workers: cfg.Scrape.Workers,
		},
		scraperOpts...,
	)

	server := api.NewServer(cfg,
		api.WithServices(scraperService, repo),
		api.WithLogger(appLogger),
	)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	<-shutdownChan

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Graceful shutdown failed")
	}
	appLogger.Info("Server stopped")
}
