package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/go4it/highlights/internal/models"
)

type HighlightRepository struct {
	db *DB
}

func NewHighlightRepository(db *DB) *HighlightRepository {
	return &HighlightRepository{db: db}
}

const highlightColumns = `id, video_id, title, description, start_time, end_time,
	clip_path, thumbnail_path, created_by, ai_generated, tags, quality_score,
	primary_skill, skill_level, game_context, analysis_notes, featured,
	home_page_eligible, created_at`

// Insert assigns the id and returns it. The caller's struct is updated too.
func (r *HighlightRepository) Insert(ctx context.Context, highlight *models.Highlight) (string, error) {
	if highlight.ID == "" {
		highlight.ID = uuid.New().String()
	}

	tags, err := json.Marshal(highlight.Tags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := r.db.rebind(`
		INSERT INTO video_highlights (` + highlightColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.db.conn.ExecContext(ctx, query,
		highlight.ID,
		highlight.VideoID,
		highlight.Title,
		highlight.Description,
		highlight.StartTime,
		highlight.EndTime,
		highlight.ClipPath,
		highlight.ThumbnailPath,
		highlight.CreatedBy,
		highlight.AIGenerated,
		string(tags),
		highlight.QualityScore,
		highlight.PrimarySkill,
		highlight.SkillLevel,
		highlight.GameContext,
		highlight.AnalysisNotes,
		highlight.Featured,
		highlight.HomePageEligible,
		highlight.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert highlight: %w", err)
	}
	return highlight.ID, nil
}

func (r *HighlightRepository) ListByVideo(ctx context.Context, videoID string) ([]*models.Highlight, error) {
	query := r.db.rebind(`SELECT ` + highlightColumns + `
		FROM video_highlights WHERE video_id = ? ORDER BY start_time`)

	rows, err := r.db.conn.QueryContext(ctx, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list highlights: %w", err)
	}
	defer rows.Close()

	var highlights []*models.Highlight
	for rows.Next() {
		highlight, err := scanHighlight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan highlight: %w", err)
		}
		highlights = append(highlights, highlight)
	}
	return highlights, rows.Err()
}

// ListFeatured serves the curation surface: best first.
func (r *HighlightRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Highlight, error) {
	if limit <= 0 {
		limit = 20
	}

	query := r.db.rebind(`SELECT ` + highlightColumns + `
		FROM video_highlights WHERE featured = ? ORDER BY quality_score DESC LIMIT ?`)

	rows, err := r.db.conn.QueryContext(ctx, query, true, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured highlights: %w", err)
	}
	defer rows.Close()

	var highlights []*models.Highlight
	for rows.Next() {
		highlight, err := scanHighlight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan highlight: %w", err)
		}
		highlights = append(highlights, highlight)
	}
	return highlights, rows.Err()
}

func scanHighlight(row rowScanner) (*models.Highlight, error) {
	var h models.Highlight
	var description, thumbnailPath, createdBy, primarySkill, gameContext, analysisNotes sql.NullString
	var tags string

	err := row.Scan(
		&h.ID,
		&h.VideoID,
		&h.Title,
		&description,
		&h.StartTime,
		&h.EndTime,
		&h.ClipPath,
		&thumbnailPath,
		&createdBy,
		&h.AIGenerated,
		&tags,
		&h.QualityScore,
		&primarySkill,
		&h.SkillLevel,
		&gameContext,
		&analysisNotes,
		&h.Featured,
		&h.HomePageEligible,
		&h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.Description = description.String
	h.ThumbnailPath = thumbnailPath.String
	h.CreatedBy = createdBy.String
	h.PrimarySkill = primarySkill.String
	h.GameContext = gameContext.String
	h.AnalysisNotes = analysisNotes.String
	if err := json.Unmarshal([]byte(tags), &h.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	return &h, nil
}
