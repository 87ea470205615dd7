package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrorKind classifies a generation failure. The orchestrator never
// branches on the kind; it is kept for logging and for callers that do.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMissingCredential
	KindInvalidCredential
	KindRateLimited
	KindTimeout
	KindQuotaExceeded
	KindEmptyResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

// Error is a generation failure with a message suitable for direct display
// in the chat transcript.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// classify normalizes an error from the model call into the fixed
// taxonomy. Classification is by deadline check plus message markers; the
// upstream SDK does not expose stable error types for all of these.
func classify(err error) *Error {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, "Request timed out. Please try again.", err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API_KEY_INVALID"),
		strings.Contains(msg, "API key not valid"),
		strings.Contains(msg, "401"),
		strings.Contains(msg, "UNAUTHENTICATED"):
		return newError(KindInvalidCredential,
			"Invalid API key. Please check your GEMINI_API_KEY configuration.", err)
	case strings.Contains(msg, "quota"),
		strings.Contains(msg, "QUOTA_EXCEEDED"):
		return newError(KindQuotaExceeded,
			"API quota exceeded. Please check your usage limits.", err)
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return newError(KindRateLimited,
			"Rate limit exceeded. Please try again in a moment.", err)
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline exceeded"):
		return newError(KindTimeout, "Request timed out. Please try again.", err)
	}

	return newError(KindUnknown,
		"Failed to generate response. Please try again later.", err)
}
