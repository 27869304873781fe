package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server settings
	ServerPort   string        `json:"server_port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
	Debug        bool          `json:"debug"`

	// Application paths
	LogDir string `json:"log_dir"`

	// Application version
	Version string `json:"version"`

	// Request and shutdown timeouts
	RequestTimeout  time.Duration `json:"request_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// CORS Configuration
	CORS CORSConfig `json:"cors"`

	// Rate Limiting
	RateLimit RateLimitConfig `json:"rate_limit"`

	// Database settings
	Database DatabaseConfig `json:"database"`

	// Upstream services
	YouTube YouTubeConfig `json:"youtube"`
	OpenAI  OpenAIConfig  `json:"openai"`

	// Pipeline behavior
	Scrape ScrapeConfig `json:"scrape"`

	// Optional recipe backup to S3-compatible storage
	Backup BackupConfig `json:"backup"`
}

type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `json:"enabled"`
	RequestsPerMinute int  `json:"requests_per_minute"`
	BurstSize         int  `json:"burst_size"`
}

type DatabaseConfig struct {
	Path           string `json:"path"`
	MaxConnections int    `json:"max_connections"`
}

type YouTubeConfig struct {
	APIKey         string        `json:"-"`
	BaseURL        string        `json:"base_url"`
	TimedTextURL   string        `json:"timedtext_url"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

type OpenAIConfig struct {
	APIKey         string        `json:"-"`
	BaseURL        string        `json:"base_url"`
	Model          string        `json:"model"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

type ScrapeConfig struct {
	DefaultLanguage string        `json:"default_language"`
	QueryLimit      int           `json:"query_limit"`
	ChannelLimit    int           `json:"channel_limit"`
	FetchAttempts   int           `json:"fetch_attempts"`
	FetchRetryDelay time.Duration `json:"fetch_retry_delay"`
	Workers         int           `json:"workers"`
	Languages       []string      `json:"languages"`
}

type BackupConfig struct {
	Enabled   bool   `json:"enabled"`
	AccessKey string `json:"-"`
	SecretKey string `json:"-"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	Bucket    string `json:"bucket"`
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		Debug:        getEnvAsBool("DEBUG", false),

		LogDir: getEnv("LOG_DIR", "/var/log/chefpanda"),

		Version: getEnv("VERSION", "1.0.0"),

		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Minute),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		CORS: CORSConfig{
			Enabled:        getEnvAsBool("CORS_ENABLED", true),
			AllowedOrigins: getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsStringSlice(
				"CORS_ALLOWED_METHODS",
				[]string{"GET", "POST", "OPTIONS"},
			),
			AllowedHeaders:   getEnvAsStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
			ExposedHeaders:   getEnvAsStringSlice("CORS_EXPOSED_HEADERS", []string{}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},

		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 10),
		},

		Database: DatabaseConfig{
			Path:           getEnv("DB_PATH", "/var/lib/chefpanda/data.db"),
			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 10),
		},

		YouTube: YouTubeConfig{
			APIKey:         os.Getenv("YOUTUBE_API_KEY"),
			BaseURL:        getEnv("YOUTUBE_API_URL", "https://www.googleapis.com/youtube/v3"),
			TimedTextURL:   getEnv("YOUTUBE_TIMEDTEXT_URL", "https://video.google.com/timedtext"),
			RequestTimeout: getEnvAsDuration("YOUTUBE_REQUEST_TIMEOUT", 30*time.Second),
		},

		OpenAI: OpenAIConfig{
			APIKey:         os.Getenv("OPENAI_API_KEY"),
			BaseURL:        getEnv("OPENAI_API_URL", "https://api.openai.com/v1"),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			RequestTimeout: getEnvAsDuration("OPENAI_REQUEST_TIMEOUT", 2*time.Minute),
		},

		Scrape: ScrapeConfig{
			DefaultLanguage: getEnv("SCRAPE_LANGUAGE", "en"),
			QueryLimit:      getEnvAsInt("SCRAPE_QUERY_LIMIT", 50),
			ChannelLimit:    getEnvAsInt("SCRAPE_CHANNEL_LIMIT", 200),
			FetchAttempts:   getEnvAsInt("SCRAPE_FETCH_ATTEMPTS", 4),
			FetchRetryDelay: getEnvAsDuration("SCRAPE_FETCH_RETRY_DELAY", 0),
			Workers:         getEnvAsInt("SCRAPE_WORKERS", 1),
			Languages: getEnvAsStringSlice("SCRAPE_LANGUAGES",
				[]string{"en", "es", "fr", "de", "it", "pt", "ja", "ko", "zh"}),
		},

		Backup: BackupConfig{
			Enabled:   getEnvAsBool("BACKUP_ENABLED", false),
			AccessKey: os.Getenv("BACKUP_ACCESS_KEY"),
			SecretKey: os.Getenv("BACKUP_SECRET_KEY"),
			Region:    getEnv("BACKUP_REGION", "nyc3"),
			Endpoint:  getEnv("BACKUP_ENDPOINT", ""),
			Bucket:    getEnv("BACKUP_BUCKET", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validateCredentials(c); err != nil {
		return err
	}
	if err := validatePaths(c); err != nil {
		return err
	}
	if err := validateTimeouts(c); err != nil {
		return err
	}
	return validateScrape(c)
}

func validateCredentials(c *Config) error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY environment variable not set")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if c.Backup.Enabled {
		if c.Backup.AccessKey == "" || c.Backup.SecretKey == "" || c.Backup.Bucket == "" {
			return fmt.Errorf("backup enabled but access key, secret key, or bucket missing")
		}
	}
	return nil
}

func validatePaths(c *Config) error {
	paths := []struct {
		path string
		name string
	}{
		{c.LogDir, "log directory"},
		{filepath.Dir(c.Database.Path), "database directory"},
	}

	for _, p := range paths {
		if err := os.MkdirAll(p.path, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p.name, err)
		}
	}

	return nil
}

func validateTimeouts(c *Config) error {
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	return nil
}

func validateScrape(c *Config) error {
	if c.Scrape.FetchAttempts < 1 {
		return fmt.Errorf("fetch attempts must be at least 1")
	}
	if c.Scrape.Workers < 1 {
		return fmt.Errorf("scrape workers must be at least 1")
	}
	if c.Scrape.QueryLimit <= 0 || c.Scrape.ChannelLimit <= 0 {
		return fmt.Errorf("scrape limits must be positive")
	}
	return nil
}

// Helper functions for reading environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			return strings.Split(value, ",")
		}
	}
	return defaultValue
}
