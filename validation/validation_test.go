package validation

import (
	"testing"

	"github.com/Soohyeuk/ChefPanda/config"
)

func newTestValidator() *Validator {
	return NewValidator(&config.Config{
		Scrape: config.ScrapeConfig{
			DefaultLanguage: "en",
			Languages:       []string{"en", "es", "fr"},
		},
	})
}

func TestVideoArg(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{
			name: "raw video ID",
			arg:  "dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch URL",
			arg:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "short URL",
			arg:  "https://youtu.be/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name:    "empty",
			arg:     "",
			wantErr: true,
		},
		{
			name:    "garbage",
			arg:     "not a video!",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.VideoArg(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VideoArg() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("VideoArg() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandle(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name    string
		handle  string
		wantErr bool
	}{
		{"with at prefix", "@TryToEat", false},
		{"without at prefix", "TryToEat", false},
		{"empty", "", true},
		{"just at", "@", true},
		{"contains space", "@Try ToEat", true},
		{"contains slash", "@Try/ToEat", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Handle(tt.handle)
			if (err != nil) != tt.wantErr {
				t.Errorf("Handle(%q) error = %v, wantErr %v", tt.handle, err, tt.wantErr)
			}
		})
	}
}

func TestLanguage(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name    string
		code    string
		want    string
		wantErr bool
	}{
		{"supported", "es", "es", false},
		{"uppercase normalized", "ES", "es", false},
		{"empty falls back to default", "", "en", false},
		{"unsupported", "xx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.Language(tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Language(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Language(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestLimit(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name      string
		requested int
		max       int
		want      int
		wantErr   bool
	}{
		{"within bounds", 10, 50, 10, false},
		{"zero means default", 0, 50, 0, false},
		{"clamped to max", 500, 50, 50, false},
		{"negative rejected", -1, 50, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.Limit(tt.requested, tt.max)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Limit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Limit() = %d, want %d", got, tt.want)
			}
		})
	}
}
