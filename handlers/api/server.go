package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/Soohyeuk/ChefPanda/config"
	"github.com/Soohyeuk/ChefPanda/middleware"
	"github.com/Soohyeuk/ChefPanda/repository"
	"github.com/Soohyeuk/ChefPanda/services/scraper"
	"github.com/Soohyeuk/ChefPanda/validation"
	"github.com/sirupsen/logrus"
)

type Server struct {
	scrape    *ScrapeHandler
	config    *config.Config
	logger    *logrus.Logger
	server    *http.Server
	startTime time.Time
}

type ServerOption func(*Server)

// NewServer creates a new API server with the provided services and options
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	s := &Server{
		config:    cfg,
		logger:    logrus.StandardLogger(),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// WithServices sets up the handlers with the provided services
func WithServices(scrapeSvc scraper.Service, repo repository.VideoRepository) ServerOption {
	return func(s *Server) {
		validator := validation.NewValidator(s.config)
		s.scrape = NewScrapeHandler(scrapeSvc, repo, validator, s.config)
	}
}

// WithLogger sets a custom logger for the server
func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
		if s.scrape != nil {
			s.scrape.logger = logger
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithField("port", s.config.ServerPort).Info("Starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// routes sets up all the routes for the API
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	s.addV1Routes(mux)

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.middleware(mux)
}

// addV1Routes adds all the v1 API routes
func (s *Server) addV1Routes(mux *http.ServeMux) {
	const v1Prefix = "/api/v1"

	// Scraping endpoints
	mux.HandleFunc("POST "+v1Prefix+"/scrape/channel", s.scrape.HandleScrapeChannel)
	mux.HandleFunc("POST "+v1Prefix+"/scrape/query", s.scrape.HandleScrapeQuery)
	mux.HandleFunc("POST "+v1Prefix+"/scrape/video", s.scrape.HandleScrapeVideo)

	// Stored results
	mux.HandleFunc("GET "+v1Prefix+"/videos/{id}", s.scrape.HandleGetVideo)

	// Metadata
	mux.HandleFunc("GET "+v1Prefix+"/languages", s.handleLanguages)
	mux.HandleFunc("GET "+v1Prefix+"/recipes/format", s.handleRecipeFormat)
}

// middleware sets up the middleware chain
func (s *Server) middleware(handler http.Handler) http.Handler {
	var rateLimiter middleware.RateLimiter
	if s.config.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(
			s.config.RateLimit.RequestsPerMinute,
			s.config.RateLimit.BurstSize,
		)
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.CORS(s.config.CORS),
		middleware.Timeout(s.config.RequestTimeout),
	}

	if rateLimiter != nil {
		middlewares = append(middlewares, rateLimiter.Middleware)
	}

	return middleware.Chain(handler, middlewares...)
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":              "ok",
		"timestamp":           time.Now().UTC(),
		"version":             s.config.Version,
		"uptime":              time.Since(s.startTime).String(),
		"youtube_key_present": s.config.YouTube.APIKey != "",
		"openai_key_present":  s.config.OpenAI.APIKey != "",
	}

	if s.config.Debug {
		status["debug"] = true
		status["goroutines"] = runtime.NumGoroutine()
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		status["memory"] = map[string]interface{}{
			"allocated": m.Alloc,
			"total":     m.TotalAlloc,
			"system":    m.Sys,
			"gc_cycles": m.NumGC,
		}
	}

	respondJSON(w, r, http.StatusOK, status)
}

// handleLanguages lists the transcript languages accepted by the scrape
// endpoints and the default used when none is given.
func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"default":   s.config.Scrape.DefaultLanguage,
		"supported": s.config.Scrape.Languages,
	})
}

// handleRecipeFormat describes the JSON shape of extracted recipes.
func (s *Server) handleRecipeFormat(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"title":     "string",
		"servings":  "string",
		"prep_time": "string",
		"cook_time": "string",
		"ingredients": []map[string]string{
			{"name": "string", "quantity": "string"},
		},
		"steps": []map[string]string{
			{"step_number": "integer", "description": "string"},
		},
		"nutritional_info": map[string]string{"calories": "number"},
	})
}
