package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Soohyeuk/ChefPanda/errors"
	"github.com/Soohyeuk/ChefPanda/models"
	"github.com/Soohyeuk/ChefPanda/repository"
	"github.com/Soohyeuk/ChefPanda/services/recipes"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RecipeBackup writes a best-effort copy of each generated recipe to
// external storage.
type RecipeBackup interface {
	SaveRecipe(ctx context.Context, videoID string, recipe *models.Recipe) error
}

type service struct {
	directory Directory
	provider  TranscriptProvider
	recipes   recipes.Service
	repo      repository.VideoRepository
	backup    RecipeBackup
	config    Config
	logger    *logrus.Logger
}

type Option func(*service)

// WithRepository persists each completed video record.
func WithRepository(repo repository.VideoRepository) Option {
	return func(s *service) {
		s.repo = repo
	}
}

// WithBackup copies generated recipes to external storage.
func WithBackup(backup RecipeBackup) Option {
	return func(s *service) {
		s.backup = backup
	}
}

func NewService(
	directory Directory,
	provider TranscriptProvider,
	recipeService recipes.Service,
	config Config,
	opts ...Option,
) Service {
	s := &service{
		directory: directory,
		provider:  provider,
		recipes:   recipeService,
		config:    config,
		logger:    logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) ResolveHandle(ctx context.Context, handle string) (string, error) {
	const op = "ScraperService.ResolveHandle"

	if handle == "" {
		return "", errors.Config(op, nil, "handle is required")
	}

	return s.directory.ChannelIDByHandle(ctx, handle)
}

func (s *service) Scrape(ctx context.Context, req Request) ([]Result, error) {
	logger := s.logger.WithFields(logrus.Fields{
		"mode":     string(req.Mode),
		"language": req.Language,
	})

	if req.Language == "" {
		req.Language = s.config.DefaultLanguage
	}

	videos, err := s.locate(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.WithField("videos", len(videos)).Info("Resolved video list")

	// Results are indexed by input position so a worker pool cannot
	// reorder the batch; failed videos leave a nil slot.
	slots := make([]*Result, len(videos))

	workers := s.config.Workers
	if workers <= 1 || len(videos) <= 1 {
		for i, video := range videos {
			slots[i] = s.processVideo(ctx, req, video)
		}
	} else {
		s.processConcurrently(ctx, req, videos, slots, workers)
	}

	results := make([]Result, 0, len(videos))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}

	logger.WithFields(logrus.Fields{
		"processed": len(results),
		"skipped":   len(videos) - len(results),
	}).Info("Batch complete")

	return results, nil
}

// locate resolves the batch's video list. No retry at this layer: a single
// failed call propagates immediately and aborts the batch.
func (s *service) locate(ctx context.Context, req Request) ([]models.VideoReference, error) {
	const op = "ScraperService.locate"

	if req.Argument == "" {
		return nil, errors.Config(op, nil, "argument is required")
	}

	switch req.Mode {
	case ModeID:
		return s.directory.Video(ctx, req.Argument)
	case ModeQuery:
		limit := req.Limit
		if limit <= 0 {
			limit = s.config.QueryLimit
		}
		return s.directory.Search(ctx, req.Argument, limit)
	case ModeChannel:
		limit := req.Limit
		if limit <= 0 {
			limit = s.config.ChannelLimit
		}
		return s.directory.ChannelVideos(ctx, req.Argument, limit)
	default:
		return nil, errors.InvalidInput(op, nil, fmt.Sprintf("invalid mode: %s", req.Mode))
	}
}

// processVideo runs one video through fetch, normalize, and optional
// extraction. Returns nil when the video is excluded; the failure is
// logged, never propagated.
func (s *service) processVideo(ctx context.Context, req Request, video models.VideoReference) *Result {
	logger := s.logger.WithFields(logrus.Fields{
		"video_id": video.ID,
		"title":    video.Title,
	})

	transcript, err := s.fetchTranscript(ctx, video.ID, req.Language)
	if err != nil {
		logger.WithError(err).Warn("Skipping video: transcript unavailable")
		return nil
	}

	record := models.Normalize(transcript, video.Title)

	result := &Result{
		Video:      video,
		Transcript: record,
	}

	if req.ExtractRecipes {
		recipe, err := s.recipes.Generate(ctx, record.Text)
		if err != nil {
			logger.WithError(err).Warn("Skipping video: recipe extraction failed")
			return nil
		}
		result.Recipe = recipe
	}

	s.store(ctx, req, result)

	return result
}

// fetchTranscript applies the retry policy around the transcript provider.
// Each video gets its own attempt budget.
func (s *service) fetchTranscript(ctx context.Context, videoID, language string) (*models.Transcript, error) {
	const op = "ScraperService.fetchTranscript"
	policy := s.config.Retry.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if attempt > 1 && policy.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Unavailable(op, ctx.Err(), "transcript fetch cancelled")
			case <-time.After(policy.Delay):
			}
		}

		transcript, err := s.provider.Fetch(ctx, videoID, language)
		if err == nil {
			return transcript, nil
		}

		lastErr = err
		s.logger.WithFields(logrus.Fields{
			"video_id": videoID,
			"attempt":  attempt,
			"max":      policy.MaxAttempts,
		}).WithError(err).Debug("Transcript fetch attempt failed")
	}

	return nil, errors.Unavailable(op, lastErr,
		fmt.Sprintf("transcript unavailable for video %s after %d attempts", videoID, policy.MaxAttempts))
}

func (s *service) processConcurrently(
	ctx context.Context,
	req Request,
	videos []models.VideoReference,
	slots []*Result,
	workers int,
) {
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, video := range videos {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, video models.VideoReference) {
			defer wg.Done()
			defer func() { <-sem }()
			slots[i] = s.processVideo(ctx, req, video)
		}(i, video)
	}

	wg.Wait()
}

// store persists the completed record and backs up the recipe. Both are
// best effort: a storage failure never excludes the video from the batch.
func (s *service) store(ctx context.Context, req Request, result *Result) {
	if s.repo != nil {
		now := time.Now()
		record := &models.VideoRecord{
			ID:           uuid.New().String(),
			VideoID:      result.Video.ID,
			Title:        result.Video.Title,
			LanguageCode: result.Transcript.LanguageCode,
			IsGenerated:  result.Transcript.IsGenerated,
			SourceMode:   string(req.Mode),
			Transcript:   result.Transcript.Text,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if result.Recipe != nil {
			if encoded, err := json.Marshal(result.Recipe); err == nil {
				record.RecipeJSON = string(encoded)
			}
		}

		if err := s.repo.Save(ctx, record); err != nil {
			s.logger.WithError(err).WithField("video_id", result.Video.ID).
				Error("Failed to persist video record")
		}
	}

	if s.backup != nil && result.Recipe != nil {
		if err := s.backup.SaveRecipe(ctx, result.Video.ID, result.Recipe); err != nil {
			s.logger.WithError(err).WithField("video_id", result.Video.ID).
				Warn("Failed to back up recipe")
		}
	}
}
