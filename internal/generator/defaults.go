package generator

import (
	"context"
	"fmt"
	"log"

	"github.com/go4it/highlights/internal/models"
)

// EnsureDefaultConfigs seeds the catalog with a starter policy per sport on
// first boot. A non-empty store is left alone, deactivated configs included.
func EnsureDefaultConfigs(ctx context.Context, configs ConfigStore) error {
	existing, err := configs.List(ctx)
	if err != nil {
		return fmt.Errorf("listing configs: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Printf("[GEN] Seeding default generator configs")

	for _, config := range defaultConfigs() {
		if err := configs.Insert(ctx, config); err != nil {
			return fmt.Errorf("seeding config %q: %w", config.Name, err)
		}
	}
	return nil
}

func defaultConfigs() []*models.GeneratorConfig {
	basketball := models.NewGeneratorConfig(
		"Basketball Highlights",
		"Automatically generate basketball highlights focusing on scoring plays and defensive stops",
		"basketball",
	)
	basketball.HighlightTypes = []string{"scoring", "defense", "skills", "teamwork"}
	basketball.MinDuration = 5
	basketball.MaxDuration = 15
	basketball.QualityThreshold = 70
	basketball.MaxHighlightsPerVideo = 5

	football := models.NewGeneratorConfig(
		"Football Highlights",
		"Automatically generate football highlights focusing on touchdowns and big plays",
		"football",
	)
	football.HighlightTypes = []string{"scoring", "big plays", "defense", "special teams"}
	football.MinDuration = 8
	football.MaxDuration = 20
	football.QualityThreshold = 75
	football.MaxHighlightsPerVideo = 5

	soccer := models.NewGeneratorConfig(
		"Soccer Highlights",
		"Automatically generate soccer highlights focusing on goals and key saves",
		"soccer",
	)
	soccer.HighlightTypes = []string{"goals", "saves", "skills", "passes", "defense"}
	soccer.MinDuration = 6
	soccer.MaxDuration = 15
	soccer.QualityThreshold = 70
	soccer.MaxHighlightsPerVideo = 6

	generic := models.NewGeneratorConfig(
		"Generic Sports Highlights",
		"Catch-all configuration for sports without a dedicated profile",
		models.SportTypeAny,
	)
	generic.HighlightTypes = []string{"scoring", "skills", "excitement", "teamwork"}
	generic.MinDuration = 5
	generic.MaxDuration = 20
	generic.QualityThreshold = 75
	generic.MaxHighlightsPerVideo = 4

	return []*models.GeneratorConfig{basketball, football, soccer, generic}
}
