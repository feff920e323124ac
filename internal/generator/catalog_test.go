package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go4it/highlights/internal/models"
)

func namedConfig(name, sportType string, createdAt time.Time) *models.GeneratorConfig {
	config := models.NewGeneratorConfig(name, "", sportType)
	config.CreatedAt = createdAt
	return config
}

func TestMatchConfigPrefersExactSport(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	generic := namedConfig("generic", models.SportTypeAny, base)
	basketball := namedConfig("basketball", "basketball", base.Add(time.Hour))

	// Generic sorts first but the exact tier still wins.
	match := MatchConfig([]*models.GeneratorConfig{generic, basketball}, "basketball")
	require.NotNil(t, match)
	assert.Equal(t, "basketball", match.SportType)
}

func TestMatchConfigFallsBackToAny(t *testing.T) {
	base := time.Now()
	configs := []*models.GeneratorConfig{
		namedConfig("basketball", "basketball", base),
		namedConfig("generic", models.SportTypeAny, base),
	}

	match := MatchConfig(configs, "golf")
	require.NotNil(t, match)
	assert.Equal(t, models.SportTypeAny, match.SportType)
}

func TestMatchConfigNoMatch(t *testing.T) {
	configs := []*models.GeneratorConfig{
		namedConfig("basketball", "basketball", time.Now()),
	}

	assert.Nil(t, MatchConfig(configs, "golf"))
	assert.Nil(t, MatchConfig(configs, ""))
	assert.Nil(t, MatchConfig(nil, "basketball"))
}

func TestMatchConfigUntaggedVideoOnlyMatchesAny(t *testing.T) {
	base := time.Now()
	configs := []*models.GeneratorConfig{
		namedConfig("basketball", "basketball", base),
		namedConfig("generic", models.SportTypeAny, base),
	}

	match := MatchConfig(configs, "")
	require.NotNil(t, match)
	assert.Equal(t, models.SportTypeAny, match.SportType)
}

func TestMatchConfigDeterministicWithinTier(t *testing.T) {
	base := time.Now()
	first := namedConfig("first", "basketball", base)
	second := namedConfig("second", "basketball", base.Add(time.Minute))

	// The store returns earliest-created first; selection must honor that
	// ordering on every call.
	configs := []*models.GeneratorConfig{first, second}
	for i := 0; i < 10; i++ {
		match := MatchConfig(configs, "basketball")
		require.NotNil(t, match)
		assert.Equal(t, "first", match.Name)
	}
}

func TestBestMatchUsesActiveConfigsOnly(t *testing.T) {
	inactive := namedConfig("retired", "basketball", time.Now())
	inactive.Active = false
	generic := namedConfig("generic", models.SportTypeAny, time.Now())

	catalog := NewCatalog(newFakeConfigStore(inactive, generic))

	match, err := catalog.BestMatch(context.Background(), "basketball")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "generic", match.Name)
}
