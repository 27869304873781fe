package api

import (
	"net/http"

	"github.com/Soohyeuk/ChefPanda/config"
	"github.com/Soohyeuk/ChefPanda/errors"
	"github.com/Soohyeuk/ChefPanda/repository"
	"github.com/Soohyeuk/ChefPanda/services/scraper"
	"github.com/Soohyeuk/ChefPanda/validation"
	"github.com/sirupsen/logrus"
)

type ScrapeHandler struct {
	service   scraper.Service
	repo      repository.VideoRepository
	validator *validation.Validator
	cfg       *config.Config
	logger    *logrus.Logger
}

func NewScrapeHandler(
	service scraper.Service,
	repo repository.VideoRepository,
	validator *validation.Validator,
	cfg *config.Config,
) *ScrapeHandler {
	return &ScrapeHandler{
		service:   service,
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		logger:    logrus.StandardLogger(),
	}
}

type scrapeChannelRequest struct {
	Handle   string `json:"handle"`
	Language string `json:"language"`
	Quantity int    `json:"quantity"`
	// TranscriptsOnly skips recipe extraction and returns normalized
	// transcripts instead.
	TranscriptsOnly bool `json:"transcripts_only"`
}

type scrapeQueryRequest struct {
	Query           string `json:"query"`
	Language        string `json:"language"`
	Quantity        int    `json:"quantity"`
	TranscriptsOnly bool   `json:"transcripts_only"`
}

type scrapeVideoRequest struct {
	ID              string `json:"id"`
	Language        string `json:"language"`
	TranscriptsOnly bool   `json:"transcripts_only"`
}

// HandleScrapeChannel handles POST /api/v1/scrape/channel
func (h *ScrapeHandler) HandleScrapeChannel(w http.ResponseWriter, r *http.Request) {
	const op = "ScrapeHandler.HandleScrapeChannel"
	logger := h.logger.WithContext(r.Context())

	var req scrapeChannelRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.validator.Handle(req.Handle); err != nil {
		respondError(w, r, err)
		return
	}
	language, err := h.validator.Language(req.Language)
	if err != nil {
		respondError(w, r, err)
		return
	}
	limit, err := h.validator.Limit(req.Quantity, h.cfg.Scrape.ChannelLimit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	channelID, err := h.service.ResolveHandle(r.Context(), req.Handle)
	if err != nil {
		logger.WithError(err).WithField("handle", req.Handle).Error("Handle resolution failed")
		respondError(w, r, err)
		return
	}

	results, err := h.service.Scrape(r.Context(), scraper.Request{
		Mode:           scraper.ModeChannel,
		Argument:       channelID,
		Language:       language,
		Limit:          limit,
		ExtractRecipes: !req.TranscriptsOnly,
	})
	if err != nil {
		logger.WithError(err).Error("Channel scrape failed")
		respondError(w, r, err)
		return
	}

	if len(results) == 0 {
		respondError(w, r, errors.NotFound(op, nil, "No recipes could be generated from the videos"))
		return
	}

	respondJSON(w, r, http.StatusOK, results)
}

// HandleScrapeQuery handles POST /api/v1/scrape/query
func (h *ScrapeHandler) HandleScrapeQuery(w http.ResponseWriter, r *http.Request) {
	const op = "ScrapeHandler.HandleScrapeQuery"
	logger := h.logger.WithContext(r.Context())

	var req scrapeQueryRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.validator.Query(req.Query); err != nil {
		respondError(w, r, err)
		return
	}
	language, err := h.validator.Language(req.Language)
	if err != nil {
		respondError(w, r, err)
		return
	}
	limit, err := h.validator.Limit(req.Quantity, h.cfg.Scrape.QueryLimit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	results, err := h.service.Scrape(r.Context(), scraper.Request{
		Mode:           scraper.ModeQuery,
		Argument:       req.Query,
		Language:       language,
		Limit:          limit,
		ExtractRecipes: !req.TranscriptsOnly,
	})
	if err != nil {
		logger.WithError(err).Error("Query scrape failed")
		respondError(w, r, err)
		return
	}

	if len(results) == 0 {
		respondError(w, r, errors.NotFound(op, nil, "No videos found for query"))
		return
	}

	respondJSON(w, r, http.StatusOK, results)
}

// HandleScrapeVideo handles POST /api/v1/scrape/video
func (h *ScrapeHandler) HandleScrapeVideo(w http.ResponseWriter, r *http.Request) {
	const op = "ScrapeHandler.HandleScrapeVideo"
	logger := h.logger.WithContext(r.Context())

	var req scrapeVideoRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	videoID, err := h.validator.VideoArg(req.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	language, err := h.validator.Language(req.Language)
	if err != nil {
		respondError(w, r, err)
		return
	}

	results, err := h.service.Scrape(r.Context(), scraper.Request{
		Mode:           scraper.ModeID,
		Argument:       videoID,
		Language:       language,
		ExtractRecipes: !req.TranscriptsOnly,
	})
	if err != nil {
		logger.WithError(err).WithField("video_id", videoID).Error("Video scrape failed")
		respondError(w, r, err)
		return
	}

	if len(results) == 0 {
		respondError(w, r, errors.NotFound(op, nil, "Video not found or no transcript available"))
		return
	}

	respondJSON(w, r, http.StatusOK, results[0])
}

// HandleGetVideo handles GET /api/v1/videos/{id}
func (h *ScrapeHandler) HandleGetVideo(w http.ResponseWriter, r *http.Request) {
	const op = "ScrapeHandler.HandleGetVideo"

	if h.repo == nil {
		respondError(w, r, errors.Internal(op, nil, "Persistence is not configured"))
		return
	}

	videoID, err := h.validator.VideoArg(r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	record, err := h.repo.FindByVideoID(r.Context(), videoID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, record)
}
