package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go4it/highlights/internal/ai"
	"github.com/go4it/highlights/internal/api"
	"github.com/go4it/highlights/internal/config"
	"github.com/go4it/highlights/internal/database"
	"github.com/go4it/highlights/internal/generator"
	"github.com/go4it/highlights/internal/media"
	"github.com/go4it/highlights/internal/storage"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := database.NewDB(database.Config{
		Type:       cfg.Database.Type,
		Host:       cfg.Database.Host,
		Port:       cfg.Database.Port,
		User:       cfg.Database.User,
		Password:   cfg.DBPassword,
		Name:       cfg.Database.Name,
		SQLitePath: cfg.Database.SQLitePath,
	})
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	log.Printf("Running database migrations from %s", cfg.Database.MigrationsPath)
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	videoRepo := database.NewVideoRepository(db)
	configRepo := database.NewConfigRepository(db)
	highlightRepo := database.NewHighlightRepository(db)

	ctx := context.Background()
	if err := generator.EnsureDefaultConfigs(ctx, configRepo); err != nil {
		log.Fatal("Failed to seed default configs: ", err)
	}

	aiConfig := ai.NewConfig(cfg.OpenAIAPIKey)
	aiConfig.Model = cfg.OpenAI.Model
	aiConfig.RequestTimeout = cfg.AnalysisTimeout()
	aiConfig.MaxRetries = cfg.OpenAI.MaxRetries
	analyzer, err := ai.NewOpenAIAnalyzer(aiConfig)
	if err != nil {
		log.Fatal("Failed to initialize analyzer: ", err)
	}

	extractor, err := media.NewFFmpegExtractor(cfg.Media.WorkDir, cfg.ExtractionTimeout())
	if err != nil {
		log.Fatal("Failed to initialize extractor: ", err)
	}

	clips, err := newClipStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize clip storage: ", err)
	}

	runner := generator.NewRunner(videoRepo, configRepo, highlightRepo, analyzer, extractor, clips,
		generator.RunnerConfig{AnalysisTimeout: cfg.AnalysisTimeout()})
	catalog := generator.NewCatalog(configRepo)
	batch := generator.NewBatch(runner, catalog, videoRepo,
		generator.BatchConfig{Workers: cfg.Generator.Workers})

	if !cfg.Generator.ScheduleDisabled {
		scheduler := generator.NewScheduler(batch, generator.SchedulerConfig{
			Interval: cfg.ScheduleInterval(),
			Actor:    cfg.Generator.Actor,
		})
		scheduler.Start()
		defer scheduler.Stop()
	}

	app := &api.App{
		Pipeline:   batch,
		Configs:    configRepo,
		Highlights: highlightRepo,
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(app),
	}

	go func() {
		log.Printf("Server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	if err := server.Shutdown(context.Background()); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func newClipStore(ctx context.Context, cfg *config.Config) (storage.ClipStore, error) {
	switch cfg.Storage.Backend {
	case "gcs":
		return storage.NewGCSClipStore(ctx, cfg.GCSBucket, cfg.Storage.GCSPrefix)
	default:
		return storage.NewLocalClipStore(cfg.Storage.UploadDir)
	}
}
