package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go4it/highlights/internal/ai"
	"github.com/go4it/highlights/internal/config"
	"github.com/go4it/highlights/internal/database"
	"github.com/go4it/highlights/internal/generator"
	"github.com/go4it/highlights/internal/media"
	"github.com/go4it/highlights/internal/storage"
)

// One-shot highlight generation: a single video with -video, or a full
// backlog sweep without it.
func main() {
	var (
		videoID = flag.String("video", "", "Video ID to generate highlights for (default: whole backlog)")
		actor   = flag.String("actor", "cli", "Actor recorded on created highlights")
	)
	flag.Parse()

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
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

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

	if *videoID != "" {
		outcome := batch.ForceGenerate(ctx, *videoID, *actor)
		fmt.Println(outcome.Message)
		if !outcome.Success {
			os.Exit(1)
		}
		return
	}

	outcome := batch.ProcessBacklog(ctx, *actor)
	fmt.Println(outcome.Message)
	if !outcome.Success {
		os.Exit(1)
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
