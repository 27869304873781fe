package models

import "time"

// VideoRecord is the persisted form of one successfully processed video:
// its normalized transcript plus the generated recipe, if any.
type VideoRecord struct {
	ID           string    `json:"id"`
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	LanguageCode string    `json:"language_code"`
	IsGenerated  bool      `json:"is_generated"`
	SourceMode   string    `json:"source_mode"`
	Transcript   string    `json:"transcript,omitempty"`
	RecipeJSON   string    `json:"recipe,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
