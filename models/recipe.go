package models

import "fmt"

type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

type InstructionStep struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
}

// Recipe is the structured object produced by the extraction stage. It is
// never mutated after construction.
type Recipe struct {
	Title           string             `json:"title"`
	Ingredients     []Ingredient       `json:"ingredients"`
	Steps           []InstructionStep  `json:"steps"`
	Servings        string             `json:"servings,omitempty"`
	PrepTime        string             `json:"prep_time,omitempty"`
	CookTime        string             `json:"cook_time,omitempty"`
	NutritionalInfo map[string]float64 `json:"nutritional_info,omitempty"`
}

// Validate checks the recipe against the expected shape. Step numbers must
// be positive and unique; they are ordering keys, not necessarily contiguous.
func (r *Recipe) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("recipe title is required")
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("recipe has no ingredients")
	}
	if len(r.Steps) == 0 {
		return fmt.Errorf("recipe has no steps")
	}

	for _, ing := range r.Ingredients {
		if ing.Name == "" {
			return fmt.Errorf("ingredient name is required")
		}
	}

	seen := make(map[int]bool, len(r.Steps))
	for _, step := range r.Steps {
		if step.StepNumber <= 0 {
			return fmt.Errorf("step number must be positive, got %d", step.StepNumber)
		}
		if seen[step.StepNumber] {
			return fmt.Errorf("duplicate step number %d", step.StepNumber)
		}
		seen[step.StepNumber] = true
		if step.Description == "" {
			return fmt.Errorf("step %d has no description", step.StepNumber)
		}
	}

	return nil
}
