package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go4it/highlights/internal/models"
)

func TestEnsureDefaultConfigsSeedsEmptyStore(t *testing.T) {
	store := newFakeConfigStore()

	require.NoError(t, EnsureDefaultConfigs(context.Background(), store))

	configs, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 4)

	sports := make(map[string]*models.GeneratorConfig)
	for _, config := range configs {
		sports[config.SportType] = config
		assert.True(t, config.Active)
		assert.NotEmpty(t, config.ID)
		assert.NotEmpty(t, config.HighlightTypes)
	}

	require.Contains(t, sports, "basketball")
	require.Contains(t, sports, "football")
	require.Contains(t, sports, "soccer")
	require.Contains(t, sports, models.SportTypeAny)

	assert.Equal(t, 70.0, sports["basketball"].QualityThreshold)
	assert.Equal(t, 15.0, sports["basketball"].MaxDuration)
	assert.Equal(t, 75.0, sports["football"].QualityThreshold)
	assert.Equal(t, 6, sports["soccer"].MaxHighlightsPerVideo)
	assert.Equal(t, 4, sports[models.SportTypeAny].MaxHighlightsPerVideo)
}

func TestEnsureDefaultConfigsLeavesExistingAlone(t *testing.T) {
	custom := models.NewGeneratorConfig("Custom", "", "basketball")
	custom.Active = false
	store := newFakeConfigStore(custom)

	require.NoError(t, EnsureDefaultConfigs(context.Background(), store))

	configs, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1, "a non-empty store must not be reseeded")
	assert.Equal(t, "Custom", configs[0].Name)
}
