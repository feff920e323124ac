package models

import (
	"time"

	"github.com/google/uuid"
)

// SportTypeAny marks a generator config as the generic fallback that matches
// videos of every sport, including videos with no sport tag at all.
const SportTypeAny = "any"

// GeneratorConfig is a named analysis policy. Configs are deactivated rather
// than deleted so past runs stay attributable.
type GeneratorConfig struct {
	ID                    string
	Name                  string
	Description           string
	SportType             string
	HighlightTypes        []string
	MinDuration           float64
	MaxDuration           float64
	QualityThreshold      float64
	MaxHighlightsPerVideo int
	Active                bool
	CreatedAt             time.Time
	LastRun               *time.Time
}

func NewGeneratorConfig(name, description, sportType string) *GeneratorConfig {
	return &GeneratorConfig{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		SportType:   sportType,
		Active:      true,
		CreatedAt:   time.Now(),
	}
}

// Matches reports whether this config may be applied to a video with the
// given sport type. The "any" config matches everything.
func (c *GeneratorConfig) Matches(sportType string) bool {
	return c.SportType == SportTypeAny || c.SportType == sportType
}
