package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go4it/highlights/internal/generator"
	"github.com/go4it/highlights/internal/models"
)

type ConfigRepository struct {
	db *DB
}

func NewConfigRepository(db *DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

const configColumns = `id, name, description, sport_type, highlight_types,
	min_duration, max_duration, quality_threshold, max_highlights_per_video,
	active, created_at, last_run`

func (r *ConfigRepository) Insert(ctx context.Context, config *models.GeneratorConfig) error {
	highlightTypes, err := json.Marshal(config.HighlightTypes)
	if err != nil {
		return fmt.Errorf("failed to marshal highlight types: %w", err)
	}

	query := r.db.rebind(`
		INSERT INTO generator_configs (` + configColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.db.conn.ExecContext(ctx, query,
		config.ID,
		config.Name,
		config.Description,
		config.SportType,
		string(highlightTypes),
		config.MinDuration,
		config.MaxDuration,
		config.QualityThreshold,
		config.MaxHighlightsPerVideo,
		config.Active,
		config.CreatedAt,
		config.LastRun,
	)
	if err != nil {
		return fmt.Errorf("failed to insert config: %w", err)
	}
	return nil
}

func (r *ConfigRepository) GetByID(ctx context.Context, id string) (*models.GeneratorConfig, error) {
	query := r.db.rebind(`SELECT ` + configColumns + ` FROM generator_configs WHERE id = ?`)

	config, err := scanConfig(r.db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("config %s: %w", id, generator.ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return config, nil
}

func (r *ConfigRepository) List(ctx context.Context) ([]*models.GeneratorConfig, error) {
	query := `SELECT ` + configColumns + ` FROM generator_configs ORDER BY created_at, id`
	return r.queryConfigs(ctx, query)
}

// ListActive orders by creation time with the id as a tiebreaker, which makes
// best-match selection stable across restarts.
func (r *ConfigRepository) ListActive(ctx context.Context) ([]*models.GeneratorConfig, error) {
	query := r.db.rebind(`SELECT ` + configColumns + `
		FROM generator_configs WHERE active = ? ORDER BY created_at, id`)
	return r.queryConfigs(ctx, query, true)
}

func (r *ConfigRepository) UpdateLastRun(ctx context.Context, id string, lastRun time.Time) error {
	query := r.db.rebind(`UPDATE generator_configs SET last_run = ? WHERE id = ?`)

	result, err := r.db.conn.ExecContext(ctx, query, lastRun, id)
	if err != nil {
		return fmt.Errorf("failed to update last run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("config %s: %w", id, generator.ErrConfigNotFound)
	}
	return nil
}

// Deactivate retires a config without deleting it, so highlights created
// under it stay attributable.
func (r *ConfigRepository) Deactivate(ctx context.Context, id string) error {
	query := r.db.rebind(`UPDATE generator_configs SET active = ? WHERE id = ?`)

	result, err := r.db.conn.ExecContext(ctx, query, false, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate config: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("config %s: %w", id, generator.ErrConfigNotFound)
	}
	return nil
}

func (r *ConfigRepository) queryConfigs(ctx context.Context, query string, args ...any) ([]*models.GeneratorConfig, error) {
	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}
	defer rows.Close()

	var configs []*models.GeneratorConfig
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan config: %w", err)
		}
		configs = append(configs, config)
	}
	return configs, rows.Err()
}

func scanConfig(row rowScanner) (*models.GeneratorConfig, error) {
	var config models.GeneratorConfig
	var description sql.NullString
	var highlightTypes string
	var lastRun sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.Name,
		&description,
		&config.SportType,
		&highlightTypes,
		&config.MinDuration,
		&config.MaxDuration,
		&config.QualityThreshold,
		&config.MaxHighlightsPerVideo,
		&config.Active,
		&config.CreatedAt,
		&lastRun,
	)
	if err != nil {
		return nil, err
	}

	config.Description = description.String
	if lastRun.Valid {
		config.LastRun = &lastRun.Time
	}
	if err := json.Unmarshal([]byte(highlightTypes), &config.HighlightTypes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal highlight types: %w", err)
	}
	return &config, nil
}
