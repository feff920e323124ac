package database

import (
	"context"
	"testing"
	"time"

	"github.com/go4it/highlights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHighlight(videoID string, start float64, score float64) *models.Highlight {
	return &models.Highlight{
		VideoID:          videoID,
		Title:            "Fast break dunk",
		Description:      "Steal leading to a dunk",
		StartTime:        start,
		EndTime:          start + 5,
		ClipPath:         "/uploads/highlights/dunk.mp4",
		ThumbnailPath:    "/uploads/thumbnails/dunk.jpg",
		CreatedBy:        "system",
		AIGenerated:      true,
		Tags:             []string{"dunk", "fast break"},
		QualityScore:     score,
		PrimarySkill:     "finishing",
		SkillLevel:       88,
		GameContext:      "3rd quarter",
		AnalysisNotes:    "clean steal at midcourt",
		Featured:         score >= 85,
		HomePageEligible: score >= 90,
		CreatedAt:        time.Now(),
	}
}

func TestHighlightRepositoryRoundTrip(t *testing.T) {
	repo := NewHighlightRepository(newTestDB(t))
	ctx := context.Background()

	highlight := testHighlight("video-1", 30, 95)
	id, err := repo.Insert(ctx, highlight)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, highlight.ID)

	listed, err := repo.ListByVideo(ctx, "video-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	got := listed[0]
	assert.Equal(t, "Fast break dunk", got.Title)
	assert.Equal(t, []string{"dunk", "fast break"}, got.Tags)
	assert.Equal(t, 95.0, got.QualityScore)
	assert.True(t, got.AIGenerated)
	assert.True(t, got.Featured)
	assert.True(t, got.HomePageEligible)
	assert.Equal(t, "clean steal at midcourt", got.AnalysisNotes)
}

func TestHighlightRepositoryListByVideoOrdersByStart(t *testing.T) {
	repo := NewHighlightRepository(newTestDB(t))
	ctx := context.Background()

	late := testHighlight("video-1", 60, 80)
	early := testHighlight("video-1", 10, 80)
	other := testHighlight("video-2", 5, 80)

	for _, h := range []*models.Highlight{late, early, other} {
		_, err := repo.Insert(ctx, h)
		require.NoError(t, err)
	}

	listed, err := repo.ListByVideo(ctx, "video-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 10.0, listed[0].StartTime)
	assert.Equal(t, 60.0, listed[1].StartTime)
}

func TestHighlightRepositoryListFeatured(t *testing.T) {
	repo := NewHighlightRepository(newTestDB(t))
	ctx := context.Background()

	for _, score := range []float64{95, 70, 87} {
		_, err := repo.Insert(ctx, testHighlight("video-1", score, score))
		require.NoError(t, err)
	}

	featured, err := repo.ListFeatured(ctx, 10)
	require.NoError(t, err)
	require.Len(t, featured, 2, "only the 85+ records are featured")
	assert.Equal(t, 95.0, featured[0].QualityScore, "best first")
	assert.Equal(t, 87.0, featured[1].QualityScore)
}
