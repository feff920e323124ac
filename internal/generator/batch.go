package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/go4it/highlights/internal/models"
)

// BatchOutcome summarizes one backlog sweep. VideosProcessed counts every
// video a run was attempted for, whether or not the run succeeded.
type BatchOutcome struct {
	Success           bool   `json:"success"`
	VideosProcessed   int    `json:"videosProcessed"`
	HighlightsCreated int    `json:"highlightsCreated"`
	Message           string `json:"message"`
	Err               error  `json:"-"`
}

type BatchConfig struct {
	Workers int
}

// Batch sweeps the unanalyzed backlog through the runner with a bounded
// worker pool. Per-video locks keep a manual trigger from racing a sweep
// over the same video.
type Batch struct {
	runner  *Runner
	catalog *Catalog
	videos  VideoStore
	workers int
	locks   *videoLocks
}

func NewBatch(runner *Runner, catalog *Catalog, videos VideoStore, config BatchConfig) *Batch {
	if config.Workers <= 0 {
		config.Workers = 2
	}

	return &Batch{
		runner:  runner,
		catalog: catalog,
		videos:  videos,
		workers: config.Workers,
		locks:   newVideoLocks(),
	}
}

func (b *Batch) ProcessBacklog(ctx context.Context, actor string) BatchOutcome {
	configs, err := b.catalog.ActiveConfigs(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
		return failedBatch("Failed to load generator configs", err)
	}
	if len(configs) == 0 {
		return BatchOutcome{Success: true, Message: "No active highlight generator configurations found"}
	}

	backlog, err := b.videos.ListUnanalyzed(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
		return failedBatch("Failed to load unanalyzed videos", err)
	}
	if len(backlog) == 0 {
		return BatchOutcome{Success: true, Message: "No unanalyzed videos found"}
	}

	log.Printf("[GEN] Processing %d unanalyzed videos against %d active configs", len(backlog), len(configs))

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		processed int
		created   int
		failed    int
		skipped   int
	)
	sem := make(chan struct{}, b.workers)

	for _, video := range backlog {
		config := MatchConfig(configs, video.SportType)
		if config == nil {
			log.Printf("[GEN] No config matches video %s (sport %s), leaving unanalyzed",
				video.ID, sportOrUnspecified(video.SportType))
			skipped++
			continue
		}

		wg.Add(1)
		go func(video *models.Video, config *models.GeneratorConfig) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcome := b.processOne(ctx, video, config, actor)

			mu.Lock()
			defer mu.Unlock()
			processed++
			if outcome.Success {
				created += outcome.HighlightCount
			} else {
				failed++
			}
		}(video, config)
	}
	wg.Wait()

	if skipped > 0 {
		log.Printf("[GEN] Skipped %d videos with no matching config", skipped)
	}

	message := fmt.Sprintf("Processed %d videos, created %d highlights", processed, created)
	if failed > 0 {
		message = fmt.Sprintf("%s (%d videos failed)", message, failed)
	}

	return BatchOutcome{
		Success:           true,
		VideosProcessed:   processed,
		HighlightsCreated: created,
		Message:           message,
	}
}

// processOne runs a single backlog video under its per-video lock and flips
// the analyzed flag on success. Failures are logged, never propagated: one
// bad video must not sink the sweep.
func (b *Batch) processOne(ctx context.Context, video *models.Video, config *models.GeneratorConfig, actor string) RunOutcome {
	unlock := b.locks.acquire(video.ID)
	defer unlock()

	outcome := b.runner.RunForVideo(ctx, video.ID, config.ID, actor)
	if !outcome.Success {
		log.Printf("[GEN] Run failed for video %s: %s", video.ID, outcome.Message)
		return outcome
	}

	if err := b.videos.MarkAnalyzed(ctx, video.ID); err != nil {
		log.Printf("[GEN] Failed to mark video %s analyzed: %v", video.ID, err)
	}
	return outcome
}

// ForceGenerate runs one video on demand, resolving the config through the
// catalog. Works on already-analyzed videos too.
func (b *Batch) ForceGenerate(ctx context.Context, videoID, actor string) RunOutcome {
	video, err := b.videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return failedRun(fmt.Sprintf("Video %s not found", videoID), err)
		}
		return failedRun("Failed to load video", fmt.Errorf("%w: %v", ErrPersistenceFailed, err))
	}

	config, err := b.catalog.BestMatch(ctx, video.SportType)
	if err != nil {
		return failedRun("Failed to load generator configs", fmt.Errorf("%w: %v", ErrPersistenceFailed, err))
	}
	if config == nil {
		msg := fmt.Sprintf("No suitable configuration found for sport type: %s", sportOrUnspecified(video.SportType))
		return failedRun(msg, fmt.Errorf("%w: no config for sport %q", ErrConfigNotFound, video.SportType))
	}

	unlock := b.locks.acquire(videoID)
	defer unlock()

	outcome := b.runner.RunForVideo(ctx, videoID, config.ID, actor)
	if outcome.Success {
		if err := b.videos.MarkAnalyzed(ctx, videoID); err != nil {
			log.Printf("[GEN] Failed to mark video %s analyzed: %v", videoID, err)
		}
	}
	return outcome
}

func failedBatch(message string, err error) BatchOutcome {
	return BatchOutcome{Success: false, Message: message, Err: err}
}

// videoLocks hands out one mutex per video id so concurrent paths that touch
// the same video serialize while unrelated videos proceed in parallel.
type videoLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newVideoLocks() *videoLocks {
	return &videoLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *videoLocks) acquire(id string) func() {
	l.mu.Lock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
