// Package provider implements the language-model capability boundary.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nayeemhs/uniassist/internal/domain"
)

// Generator produces a completion for a system prompt and an ordered list of
// conversation turns.
type Generator interface {
	Generate(ctx context.Context, systemPrompt string, turns []domain.Turn) (string, error)
}

// Error is a typed failure from the model provider. StatusCode carries the
// HTTP status when one was received; Status carries the API status string
// (e.g. "RESOURCE_EXHAUSTED") when the provider returned one.
type Error struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider error %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

// Kind categorizes provider failures for user-facing messaging.
type Kind int

const (
	// KindUnknown is any failure that does not match a known category.
	KindUnknown Kind = iota
	// KindRateLimited indicates quota exhaustion or request throttling.
	KindRateLimited
	// KindAuthFailed indicates an invalid or rejected API key.
	KindAuthFailed
	// KindModelUnavailable indicates the requested model does not exist.
	KindModelUnavailable
)

// maxDetailChars bounds how much raw error detail reaches the user for
// unclassified failures.
const maxDetailChars = 100

// Classify maps a provider failure to its Kind. Structured status codes are
// checked first; substring matching on the error text is the fallback layer
// for errors that never reached the API or lost their structure.
func Classify(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		switch perr.StatusCode {
		case 429:
			return KindRateLimited
		case 401, 403:
			return KindAuthFailed
		case 404:
			return KindModelUnavailable
		}
	}

	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "429"), strings.Contains(text, "quota"), strings.Contains(text, "rate limit"):
		return KindRateLimited
	case strings.Contains(text, "401"), strings.Contains(text, "403"), strings.Contains(text, "invalid"):
		return KindAuthFailed
	case strings.Contains(text, "404"), strings.Contains(text, "not found"):
		return KindModelUnavailable
	default:
		return KindUnknown
	}
}

// UserMessage returns the fixed user-safe message for a provider failure.
// Raw error detail is only embedded (truncated) for unclassified failures.
func UserMessage(err error) string {
	switch Classify(err) {
	case KindRateLimited:
		return "I'm receiving too many requests right now. Please wait a moment and try again."
	case KindAuthFailed:
		return "The assistant is misconfigured and cannot reach the language model. Please contact support."
	case KindModelUnavailable:
		return "The language model is currently unavailable. Please try again later."
	default:
		return fmt.Sprintf("I apologize, but I'm having trouble processing your request right now. (%s)", truncate(err.Error(), maxDetailChars))
	}
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
