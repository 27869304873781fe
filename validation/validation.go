package validation

import (
	"fmt"
	"strings"

	"github.com/Soohyeuk/ChefPanda/config"
	"github.com/Soohyeuk/ChefPanda/errors"
	"github.com/mjlefevre/yt-words-go/transcript"
)

type Validator struct {
	config *config.Config
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// VideoArg normalizes a video argument to a bare video ID. Both raw IDs
// and full YouTube URLs are accepted.
func (v *Validator) VideoArg(arg string) (string, error) {
	const op = "Validator.VideoArg"

	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", errors.InvalidInput(op, nil, "video ID is required")
	}

	videoID := transcript.ExtractVideoID(arg)
	if videoID == "" {
		return "", errors.InvalidInput(op, nil, fmt.Sprintf("invalid YouTube URL or video ID: %s", arg))
	}

	return videoID, nil
}

// Handle validates a channel handle. The leading "@" is optional.
func (v *Validator) Handle(handle string) error {
	const op = "Validator.Handle"

	handle = strings.TrimSpace(handle)
	if strings.TrimPrefix(handle, "@") == "" {
		return errors.InvalidInput(op, nil, "channel handle is required")
	}
	if strings.ContainsAny(handle, " \t/") {
		return errors.InvalidInput(op, nil, fmt.Sprintf("invalid channel handle: %s", handle))
	}

	return nil
}

// Query validates a free-text search query.
func (v *Validator) Query(query string) error {
	const op = "Validator.Query"

	if strings.TrimSpace(query) == "" {
		return errors.InvalidInput(op, nil, "query is required")
	}

	return nil
}

// Language resolves a language code against the supported set, falling
// back to the configured default when empty.
func (v *Validator) Language(code string) (string, error) {
	const op = "Validator.Language"

	code = strings.TrimSpace(strings.ToLower(code))
	if code == "" {
		return v.config.Scrape.DefaultLanguage, nil
	}

	for _, supported := range v.config.Scrape.Languages {
		if code == supported {
			return code, nil
		}
	}

	return "", errors.InvalidInput(op, nil, fmt.Sprintf("unsupported language: %s", code))
}

// Limit clamps a requested batch size to (0, max], with 0 meaning the
// caller's default.
func (v *Validator) Limit(requested, max int) (int, error) {
	const op = "Validator.Limit"

	if requested < 0 {
		return 0, errors.InvalidInput(op, nil, "quantity must not be negative")
	}
	if requested > max {
		return max, nil
	}

	return requested, nil
}
