package ai

import (
	"context"
	"time"

	"github.com/go4it/highlights/internal/models"
)

// Analyzer locates candidate highlight moments in a video. Implementations
// wrap an external content-analysis capability; callers must treat the result
// as untrusted and re-check duration bounds before acting on it.
type Analyzer interface {
	AnalyzeVideo(ctx context.Context, video *models.Video, config *models.GeneratorConfig) ([]CandidateHighlight, error)
}

type Config struct {
	APIKey         string
	Model          string
	RequestTimeout time.Duration
	MaxRetries     int
}

func NewConfig(apiKey string) *Config {
	return &Config{
		APIKey:         apiKey,
		Model:          defaultModel,
		RequestTimeout: 60 * time.Second,
		MaxRetries:     3,
	}
}
