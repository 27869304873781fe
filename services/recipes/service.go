package recipes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Soohyeuk/ChefPanda/errors"
	"github.com/Soohyeuk/ChefPanda/models"
	"github.com/sirupsen/logrus"
)

type service struct {
	client *openAIClient
	logger *logrus.Logger
}

func NewService(cfg Config) Service {
	return &service{
		client: newOpenAIClient(cfg),
		logger: logrus.StandardLogger(),
	}
}

// Generate sends the flattened transcript to the model and validates the
// structured response. One attempt only: generative failures are not
// retried, unlike transcript fetches.
func (s *service) Generate(ctx context.Context, transcript string) (*models.Recipe, error) {
	const op = "RecipeService.Generate"
	logger := s.logger.WithField("operation", op)

	prompt := fmt.Sprintf(extractionPromptTemplate, transcript)

	content, err := s.client.complete(ctx, systemPrompt, prompt)
	if err != nil {
		logger.WithError(err).Error("Recipe generation call failed")
		return nil, errors.Extraction(op, err, "Recipe generation failed")
	}

	var recipe models.Recipe
	if err := json.Unmarshal([]byte(stripFences(content)), &recipe); err != nil {
		logger.WithError(err).Error("Recipe response is not valid JSON")
		return nil, errors.Extraction(op, err, "Recipe response is not valid JSON")
	}

	if err := recipe.Validate(); err != nil {
		logger.WithError(err).Error("Recipe response failed validation")
		return nil, errors.Extraction(op, err, "Recipe response failed validation")
	}

	logger.WithFields(logrus.Fields{
		"title":       recipe.Title,
		"ingredients": len(recipe.Ingredients),
		"steps":       len(recipe.Steps),
	}).Info("Recipe generated")

	return &recipe, nil
}
