package generator

import (
	"context"
	"time"

	"github.com/go4it/highlights/internal/models"
)

// VideoStore is the slice of the persistence layer the pipeline reads videos
// from. The only mutation it performs is flipping the analyzed flag.
type VideoStore interface {
	GetByID(ctx context.Context, id string) (*models.Video, error)
	ListUnanalyzed(ctx context.Context) ([]*models.Video, error)
	MarkAnalyzed(ctx context.Context, id string) error
}

// ConfigStore persists generator configurations. ListActive must return
// configs in a stable order (earliest created first) so that best-match
// selection is deterministic.
type ConfigStore interface {
	GetByID(ctx context.Context, id string) (*models.GeneratorConfig, error)
	List(ctx context.Context) ([]*models.GeneratorConfig, error)
	ListActive(ctx context.Context) ([]*models.GeneratorConfig, error)
	Insert(ctx context.Context, config *models.GeneratorConfig) error
	UpdateLastRun(ctx context.Context, id string, lastRun time.Time) error
}

// HighlightStore persists accepted highlight records.
type HighlightStore interface {
	Insert(ctx context.Context, highlight *models.Highlight) (string, error)
	ListByVideo(ctx context.Context, videoID string) ([]*models.Highlight, error)
}
