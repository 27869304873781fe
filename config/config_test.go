package config

import (
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("YOUTUBE_API_KEY", "yt-test-key")
	t.Setenv("OPENAI_API_KEY", "oa-test-key")
	t.Setenv("LOG_DIR", filepath.Join(dir, "logs"))
	t.Setenv("DB_PATH", filepath.Join(dir, "data.db"))
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %s, want 8080", cfg.ServerPort)
	}
	if cfg.Scrape.QueryLimit != 50 {
		t.Errorf("QueryLimit = %d, want 50", cfg.Scrape.QueryLimit)
	}
	if cfg.Scrape.ChannelLimit != 200 {
		t.Errorf("ChannelLimit = %d, want 200", cfg.Scrape.ChannelLimit)
	}
	if cfg.Scrape.FetchAttempts != 4 {
		t.Errorf("FetchAttempts = %d, want 4", cfg.Scrape.FetchAttempts)
	}
	if cfg.Scrape.FetchRetryDelay != 0 {
		t.Errorf("FetchRetryDelay = %v, want 0", cfg.Scrape.FetchRetryDelay)
	}
	if cfg.Scrape.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Scrape.Workers)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("OpenAI model = %s, want gpt-4o-mini", cfg.OpenAI.Model)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing youtube key", "YOUTUBE_API_KEY"},
		{"missing openai key", "OPENAI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			if _, err := Load(); err == nil {
				t.Error("Load() succeeded with missing credential")
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCRAPE_FETCH_ATTEMPTS", "2")
	t.Setenv("SCRAPE_FETCH_RETRY_DELAY", "500ms")
	t.Setenv("SCRAPE_LANGUAGES", "en,fr")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Scrape.FetchAttempts != 2 {
		t.Errorf("FetchAttempts = %d, want 2", cfg.Scrape.FetchAttempts)
	}
	if cfg.Scrape.FetchRetryDelay != 500*time.Millisecond {
		t.Errorf("FetchRetryDelay = %v, want 500ms", cfg.Scrape.FetchRetryDelay)
	}
	if len(cfg.Scrape.Languages) != 2 || cfg.Scrape.Languages[1] != "fr" {
		t.Errorf("Languages = %v, want [en fr]", cfg.Scrape.Languages)
	}
}

func TestValidateScrape(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCRAPE_FETCH_ATTEMPTS", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded with zero fetch attempts")
	}
}
