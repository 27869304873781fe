package scraper

import (
	"context"
	"time"

	"github.com/Soohyeuk/ChefPanda/models"
)

// Mode selects how the video list is resolved.
type Mode string

const (
	ModeID      Mode = "id"
	ModeQuery   Mode = "query"
	ModeChannel Mode = "channel_id"
)

// Service drives the locate -> fetch -> normalize -> extract pipeline
// across a batch of videos.
type Service interface {
	// ResolveHandle turns a channel handle into a channel ID for ModeChannel.
	ResolveHandle(ctx context.Context, handle string) (string, error)

	// Scrape processes the batch described by req. Locator failures abort
	// the batch; per-video fetch and extraction failures only exclude that
	// video. An empty result with a nil error is a valid outcome.
	Scrape(ctx context.Context, req Request) ([]Result, error)
}

// Directory is the video directory lookup capability the locator needs.
type Directory interface {
	Search(ctx context.Context, query string, limit int) ([]models.VideoReference, error)
	ChannelVideos(ctx context.Context, channelID string, limit int) ([]models.VideoReference, error)
	Video(ctx context.Context, videoID string) ([]models.VideoReference, error)
	ChannelIDByHandle(ctx context.Context, handle string) (string, error)
}

// TranscriptProvider fetches the timed snippet sequence for one video.
// A single call is one attempt; the service applies the retry policy.
type TranscriptProvider interface {
	Fetch(ctx context.Context, videoID, language string) (*models.Transcript, error)
}

// Request describes one batch invocation.
type Request struct {
	Mode           Mode
	Argument       string
	Language       string
	Limit          int
	ExtractRecipes bool
}

// Result is the output for one video that completed every requested stage.
type Result struct {
	Video      models.VideoReference        `json:"video"`
	Transcript *models.NormalizedTranscript `json:"transcript"`
	Recipe     *models.Recipe               `json:"recipe,omitempty"`
}

type Config struct {
	DefaultLanguage string
	QueryLimit      int
	ChannelLimit    int
	Retry           RetryPolicy
	Workers         int
}

// RetryPolicy bounds transcript fetch attempts per video. The delay between
// attempts is explicit and configurable; the historical behavior is
// immediate retries (zero delay).
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 4
	}
	return p
}
