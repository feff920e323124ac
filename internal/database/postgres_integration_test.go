//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/go4it/highlights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("highlights_test"),
		postgres.WithUsername("highlights_test"),
		postgres.WithPassword("highlights_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	db, err := NewDB(Config{
		Type:     "postgres",
		Host:     host,
		Port:     port.Int(),
		User:     "highlights_test",
		Password: "highlights_test_password",
		Name:     "highlights_test",
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func TestPostgresPipelinePersistence(t *testing.T) {
	db := setupPostgresDB(t)
	ctx := context.Background()

	videos := NewVideoRepository(db)
	configs := NewConfigRepository(db)
	highlights := NewHighlightRepository(db)

	video := models.NewVideo("Varsity game", "", "basketball", "/videos/game.mp4", 120)
	require.NoError(t, videos.Insert(ctx, video))

	config := models.NewGeneratorConfig("Basketball Highlights", "", "basketball")
	config.HighlightTypes = []string{"scoring", "defense"}
	config.MinDuration = 5
	config.MaxDuration = 15
	config.QualityThreshold = 70
	config.MaxHighlightsPerVideo = 5
	require.NoError(t, configs.Insert(ctx, config))

	id, err := highlights.Insert(ctx, testHighlight(video.ID, 30, 95))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	listed, err := highlights.ListByVideo(ctx, video.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"dunk", "fast break"}, listed[0].Tags)

	require.NoError(t, videos.MarkAnalyzed(ctx, video.ID))
	backlog, err := videos.ListUnanalyzed(ctx)
	require.NoError(t, err)
	assert.Empty(t, backlog)

	require.NoError(t, configs.UpdateLastRun(ctx, config.ID, time.Now()))
	got, err := configs.GetByID(ctx, config.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastRun)
}
