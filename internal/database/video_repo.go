package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go4it/highlights/internal/generator"
	"github.com/go4it/highlights/internal/models"
)

type VideoRepository struct {
	db *DB
}

func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Insert(ctx context.Context, video *models.Video) error {
	query := r.db.rebind(`
		INSERT INTO videos (id, title, description, sport_type, duration, file_path, upload_time, analyzed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.conn.ExecContext(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.SportType,
		video.Duration,
		video.FilePath,
		video.UploadTime,
		video.Analyzed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	query := r.db.rebind(`
		SELECT id, title, description, sport_type, duration, file_path, upload_time, analyzed
		FROM videos WHERE id = ?`)

	video, err := scanVideo(r.db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("video %s: %w", id, generator.ErrVideoNotFound)
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

func (r *VideoRepository) List(ctx context.Context) ([]*models.Video, error) {
	query := `
		SELECT id, title, description, sport_type, duration, file_path, upload_time, analyzed
		FROM videos ORDER BY upload_time DESC`

	return r.queryVideos(ctx, query)
}

// ListUnanalyzed returns the backlog oldest-first so long-waiting videos get
// picked up ahead of fresh uploads.
func (r *VideoRepository) ListUnanalyzed(ctx context.Context) ([]*models.Video, error) {
	query := r.db.rebind(`
		SELECT id, title, description, sport_type, duration, file_path, upload_time, analyzed
		FROM videos WHERE analyzed = ? ORDER BY upload_time ASC`)

	return r.queryVideos(ctx, query, false)
}

func (r *VideoRepository) MarkAnalyzed(ctx context.Context, id string) error {
	query := r.db.rebind(`UPDATE videos SET analyzed = ? WHERE id = ?`)

	result, err := r.db.conn.ExecContext(ctx, query, true, id)
	if err != nil {
		return fmt.Errorf("failed to mark video analyzed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("video %s: %w", id, generator.ErrVideoNotFound)
	}
	return nil
}

func (r *VideoRepository) queryVideos(ctx context.Context, query string, args ...any) ([]*models.Video, error) {
	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*models.Video, error) {
	var video models.Video
	var description, sportType sql.NullString

	err := row.Scan(
		&video.ID,
		&video.Title,
		&description,
		&sportType,
		&video.Duration,
		&video.FilePath,
		&video.UploadTime,
		&video.Analyzed,
	)
	if err != nil {
		return nil, err
	}

	video.Description = description.String
	video.SportType = sportType.String
	return &video, nil
}
