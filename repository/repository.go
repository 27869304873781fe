package repository

import (
	"context"

	"github.com/Soohyeuk/ChefPanda/models"
)

type VideoRepository interface {
	// Save upserts the record for one processed video, keyed by video ID.
	Save(ctx context.Context, record *models.VideoRecord) error

	// FindByVideoID returns the stored record for a video.
	FindByVideoID(ctx context.Context, videoID string) (*models.VideoRecord, error)
}
