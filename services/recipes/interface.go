package recipes

import (
	"context"
	"time"

	"github.com/Soohyeuk/ChefPanda/models"
)

// Service derives a structured recipe from flattened transcript text via a
// single generative-model call.
type Service interface {
	Generate(ctx context.Context, transcript string) (*models.Recipe, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}
