package generator

import (
	"context"
	"fmt"

	"github.com/go4it/highlights/internal/models"
)

// Catalog answers "which policy applies to this video". Selection is
// deterministic: within a tier the earliest-created active config wins,
// which ListActive guarantees by ordering.
type Catalog struct {
	configs ConfigStore
}

func NewCatalog(configs ConfigStore) *Catalog {
	return &Catalog{configs: configs}
}

func (c *Catalog) ActiveConfigs(ctx context.Context) ([]*models.GeneratorConfig, error) {
	configs, err := c.configs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active configs: %w", err)
	}
	return configs, nil
}

// BestMatch prefers an exact sport-type match, then the "any" fallback, then
// nothing (nil, nil). A video without a sport tag only matches "any".
func (c *Catalog) BestMatch(ctx context.Context, sportType string) (*models.GeneratorConfig, error) {
	configs, err := c.ActiveConfigs(ctx)
	if err != nil {
		return nil, err
	}
	return MatchConfig(configs, sportType), nil
}

// MatchConfig applies the tiered selection over an already-ordered config
// list. Exported so the batch orchestrator can resolve configs for a whole
// backlog from a single listing.
func MatchConfig(configs []*models.GeneratorConfig, sportType string) *models.GeneratorConfig {
	if sportType != "" && sportType != models.SportTypeAny {
		for _, config := range configs {
			if config.SportType == sportType {
				return config
			}
		}
	}
	for _, config := range configs {
		if config.SportType == models.SportTypeAny {
			return config
		}
	}
	return nil
}
