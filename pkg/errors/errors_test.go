package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeParse, "invalid version: %s", "1.x")

	if err.Code != ErrCodeParse {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeParse)
	}

	if err.Message != "invalid version: 1.x" {
		t.Errorf("Message = %v, want %v", err.Message, "invalid version: 1.x")
	}

	expected := "PARSE_ERROR: invalid version: 1.x"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(ErrCodeNetwork, cause, "fetch origin")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeIO, "test"),
			code:     ErrCodeIO,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeIO, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeParse, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("scan: %w", New(ErrCodeParse, "bad")),
			code:     ErrCodeParse,
			expected: true,
		},
		{
			name:     "http error",
			err:      &HTTPError{StatusCode: http.StatusNotFound, URL: "https://example.com/a"},
			code:     ErrCodeHTTP,
			expected: true,
		},
		{
			name:     "rate limited",
			err:      fmt.Errorf("get: %w", &HTTPError{StatusCode: http.StatusTooManyRequests}),
			code:     ErrCodeRateLimited,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeParse, "test"), ErrCodeParse},
		{"http error", &HTTPError{StatusCode: 500}, ErrCodeHTTP},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %v, want %v", got, "friendly message")
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %v, want %v", got, "plain error")
	}
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{StatusCode: http.StatusNotFound, URL: "https://raw.example.com/o/r/main/a.csproj"}
	want := "GET https://raw.example.com/o/r/main/a.csproj: 404 Not Found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := fmt.Errorf("fetch: %w", err)
	if got := StatusCode(wrapped); got != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, want 404", got)
	}
	if got := StatusCode(errors.New("x")); got != 0 {
		t.Errorf("StatusCode() = %d, want 0", got)
	}
}
