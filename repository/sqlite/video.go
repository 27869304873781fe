package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Soohyeuk/ChefPanda/errors"
	"github.com/Soohyeuk/ChefPanda/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

func (r *Repository) Save(ctx context.Context, record *models.VideoRecord) error {
	const op = "SQLiteRepository.Save"

	for i := 0; i < 3; i++ { // Simple retry for lock contention
		err := r.save(ctx, record)
		if err == nil {
			return nil
		}
		if !isLockError(err) {
			return errors.Internal(op, err, "Failed to save video record")
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}
	return errors.Internal(op, nil, "Failed after retries")
}

func (r *Repository) save(ctx context.Context, record *models.VideoRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO videos (id, video_id, title, language_code, is_generated,
			source_mode, transcript, recipe, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			title = excluded.title,
			language_code = excluded.language_code,
			is_generated = excluded.is_generated,
			source_mode = excluded.source_mode,
			transcript = excluded.transcript,
			recipe = excluded.recipe,
			updated_at = excluded.updated_at`,
		record.ID,
		record.VideoID,
		record.Title,
		record.LanguageCode,
		record.IsGenerated,
		record.SourceMode,
		record.Transcript,
		record.RecipeJSON,
		record.CreatedAt,
		record.UpdatedAt,
	)
	return err
}

func (r *Repository) FindByVideoID(ctx context.Context, videoID string) (*models.VideoRecord, error) {
	const op = "SQLiteRepository.FindByVideoID"

	record := &models.VideoRecord{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, video_id, title, language_code, is_generated,
			source_mode, transcript, recipe, created_at, updated_at
		FROM videos WHERE video_id = ?`, videoID).Scan(
		&record.ID,
		&record.VideoID,
		&record.Title,
		&record.LanguageCode,
		&record.IsGenerated,
		&record.SourceMode,
		&record.Transcript,
		&record.RecipeJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Video record not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query video record")
	}

	return record, nil
}

func isLockError(err error) bool {
	return strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "busy")
}
