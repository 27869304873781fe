package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := InvalidInput("test.Op", nil, "bad argument")
	if err.Error() != "bad argument" {
		t.Errorf("expected 'bad argument', got '%s'", err.Error())
	}

	wrapped := Internal("test.Op", fmt.Errorf("disk full"), "save failed")
	expected := "save failed: disk full"
	if wrapped.Error() != expected {
		t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Unavailable("test.Op", cause, "transcript fetch failed")

	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestConstructorKindsAndCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		kind Kind
		code int
	}{
		{"config", Config("op", nil, "missing key"), KindConfig, http.StatusInternalServerError},
		{"invalid input", InvalidInput("op", nil, "bad mode"), KindInvalidInput, http.StatusBadRequest},
		{"not found", NotFound("op", nil, "no channel"), KindNotFound, http.StatusNotFound},
		{"unavailable", Unavailable("op", nil, "no transcript"), KindUnavailable, http.StatusBadGateway},
		{"extraction", Extraction("op", nil, "bad payload"), KindExtraction, http.StatusBadGateway},
		{"internal", Internal("op", nil, "oops"), KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if tt.err.Code != tt.code {
				t.Errorf("code = %d, want %d", tt.err.Code, tt.code)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{
			name:     "matching kind",
			err:      Unavailable("op", nil, "no transcript"),
			kind:     KindUnavailable,
			expected: true,
		},
		{
			name:     "different kind",
			err:      Unavailable("op", nil, "no transcript"),
			kind:     KindExtraction,
			expected: false,
		},
		{
			name:     "wrapped app error",
			err:      fmt.Errorf("outer: %w", NotFound("op", nil, "gone")),
			kind:     KindNotFound,
			expected: true,
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("standard error"),
			kind:     KindInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsKind(tt.err, tt.kind); got != tt.expected {
				t.Errorf("IsKind() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NotFound("op", nil, "gone")) {
		t.Error("IsNotFound() = false for not found error")
	}
	if IsNotFound(Internal("op", nil, "oops")) {
		t.Error("IsNotFound() = true for internal error")
	}
}
