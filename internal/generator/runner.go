package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go4it/highlights/internal/ai"
	"github.com/go4it/highlights/internal/media"
	"github.com/go4it/highlights/internal/storage"
)

// RunOutcome reports one video's run. Err carries the sentinel-wrapped cause
// on failure and is never serialized to callers.
type RunOutcome struct {
	Success        bool     `json:"success"`
	HighlightCount int      `json:"highlightCount"`
	Message        string   `json:"message"`
	HighlightIDs   []string `json:"highlightIds"`
	Err            error    `json:"-"`
}

type RunnerConfig struct {
	AnalysisTimeout time.Duration
}

// Runner drives a single video through policy validation, analysis, the
// quality gate, extraction and persistence.
type Runner struct {
	videos          VideoStore
	configs         ConfigStore
	highlights      HighlightStore
	analyzer        ai.Analyzer
	extractor       media.Extractor
	clips           storage.ClipStore
	analysisTimeout time.Duration
}

func NewRunner(
	videos VideoStore,
	configs ConfigStore,
	highlights HighlightStore,
	analyzer ai.Analyzer,
	extractor media.Extractor,
	clips storage.ClipStore,
	config RunnerConfig,
) *Runner {
	if config.AnalysisTimeout <= 0 {
		config.AnalysisTimeout = 60 * time.Second
	}

	return &Runner{
		videos:          videos,
		configs:         configs,
		highlights:      highlights,
		analyzer:        analyzer,
		extractor:       extractor,
		clips:           clips,
		analysisTimeout: config.AnalysisTimeout,
	}
}

func (r *Runner) RunForVideo(ctx context.Context, videoID, configID, actor string) RunOutcome {
	log.Printf("[GEN] Generating highlights for video %s using config %s", videoID, configID)

	video, err := r.videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return failedRun(fmt.Sprintf("Video %s not found", videoID), err)
		}
		return failedRun("Failed to load video", fmt.Errorf("%w: %v", ErrPersistenceFailed, err))
	}

	config, err := r.configs.GetByID(ctx, configID)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return failedRun(fmt.Sprintf("Generator config %s not found", configID), err)
		}
		return failedRun("Failed to load generator config", fmt.Errorf("%w: %v", ErrPersistenceFailed, err))
	}

	// Guards callers that bypass the catalog with an incompatible pairing.
	if !config.Matches(video.SportType) {
		err := fmt.Errorf("%w: config is for %s but video is %s",
			ErrConfigMismatch, config.SportType, sportOrUnspecified(video.SportType))
		return failedRun(err.Error(), err)
	}

	analysisCtx, cancel := context.WithTimeout(ctx, r.analysisTimeout)
	candidates, err := r.analyzer.AnalyzeVideo(analysisCtx, video, config)
	cancel()
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
		return failedRun(fmt.Sprintf("Failed to analyze video: %v", err), err)
	}

	// Duration bounds are enforced here regardless of what the adapter
	// returned, then the quality gate runs over what survives.
	accepted := FilterQuality(
		FilterDuration(candidates, config.MinDuration, config.MaxDuration),
		config.QualityThreshold,
	)

	if len(accepted) == 0 {
		return RunOutcome{
			Success:      true,
			Message:      "No highlights meeting the quality threshold were detected",
			HighlightIDs: []string{},
		}
	}

	log.Printf("[GEN] %d of %d candidates accepted for video %s (threshold %.0f)",
		len(accepted), len(candidates), video.ID, config.QualityThreshold)

	highlightIDs := make([]string, 0, len(accepted))
	for _, candidate := range accepted {
		id, err := r.materialize(ctx, video.ID, actor, candidate, video.FilePath)
		if err != nil {
			// Candidate-level failure: the siblings still get their shot.
			log.Printf("[GEN] Skipping candidate %q for video %s: %v", candidate.Title, video.ID, err)
			continue
		}
		highlightIDs = append(highlightIDs, id)
	}

	if err := r.configs.UpdateLastRun(ctx, config.ID, time.Now()); err != nil {
		log.Printf("[GEN] Failed to update lastRun for config %s: %v", config.ID, err)
	}

	return RunOutcome{
		Success:        true,
		HighlightCount: len(highlightIDs),
		Message:        fmt.Sprintf("Successfully generated %d highlights", len(highlightIDs)),
		HighlightIDs:   highlightIDs,
	}
}

// materialize cuts, stores and persists one accepted candidate.
func (r *Runner) materialize(ctx context.Context, videoID, actor string, candidate ai.CandidateHighlight, sourcePath string) (string, error) {
	extraction, err := r.extractor.Extract(ctx, sourcePath, candidate.StartTime, candidate.EndTime, candidate.Title)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	clipPath, err := r.clips.Store(ctx, extraction.ClipPath, storage.CategoryHighlights)
	if err != nil {
		return "", fmt.Errorf("%w: storing clip: %v", ErrExtractionFailed, err)
	}

	thumbnailPath, err := r.clips.Store(ctx, extraction.ThumbnailPath, storage.CategoryThumbnails)
	if err != nil {
		return "", fmt.Errorf("%w: storing thumbnail: %v", ErrExtractionFailed, err)
	}

	highlight := BuildHighlight(videoID, actor, candidate, clipPath, thumbnailPath)
	id, err := r.highlights.Insert(ctx, highlight)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	return id, nil
}

func failedRun(message string, err error) RunOutcome {
	return RunOutcome{
		Success:      false,
		Message:      message,
		HighlightIDs: []string{},
		Err:          err,
	}
}

func sportOrUnspecified(sportType string) string {
	if sportType == "" {
		return "unspecified"
	}
	return sportType
}
