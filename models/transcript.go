package models

import "strings"

// VideoReference identifies one video produced by the locator stage.
type VideoReference struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TranscriptSnippet is a single timed caption unit.
type TranscriptSnippet struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the ordered snippet sequence for one video. Snippets are
// ordered by non-decreasing Start.
type Transcript struct {
	VideoID      string              `json:"video_id"`
	LanguageCode string              `json:"language_code"`
	IsGenerated  bool                `json:"is_generated"`
	Snippets     []TranscriptSnippet `json:"snippets"`
}

// NormalizedTranscript is the flattened, model-ready form of a transcript,
// stripped of per-snippet timing.
type NormalizedTranscript struct {
	Title        string `json:"title"`
	VideoID      string `json:"video_id"`
	IsGenerated  bool   `json:"is_generated"`
	LanguageCode string `json:"language_code"`
	Text         string `json:"text"`
}

// Normalize flattens a transcript into a single text record. Snippet texts
// are joined in snippet order with ". " after each one, including the last.
// The trailing separator matches the historical output format.
func Normalize(t *Transcript, title string) *NormalizedTranscript {
	var sb strings.Builder
	for _, snippet := range t.Snippets {
		sb.WriteString(snippet.Text)
		sb.WriteString(". ")
	}

	return &NormalizedTranscript{
		Title:        title,
		VideoID:      t.VideoID,
		IsGenerated:  t.IsGenerated,
		LanguageCode: t.LanguageCode,
		Text:         sb.String(),
	}
}
