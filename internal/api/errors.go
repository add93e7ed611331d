package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Error is the single error type every client method returns. Message is a
// human-readable string extracted from the server's structured error payload,
// falling back to the transport error text or an operation-specific default.
type Error struct {
	Status  int // HTTP status, 0 for transport failures
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports whether the server answered 404.
func (e *Error) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// extractMessage picks a displayable message from a server error body.
// Priority: detail field, message field, error field, first element of a bare
// error array, then the fallback.
func extractMessage(body []byte, fallback string) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fallback
	}

	if strings.HasPrefix(trimmed, "{") {
		var payload struct {
			Detail  string `json:"detail"`
			Message string `json:"message"`
			Err     string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			for _, candidate := range []string{payload.Detail, payload.Message, payload.Err} {
				if strings.TrimSpace(candidate) != "" {
					return candidate
				}
			}
		}
		return fallback
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal(body, &items); err == nil && len(items) > 0 && strings.TrimSpace(items[0]) != "" {
			return items[0]
		}
	}

	return fallback
}

// transportMessage wraps a transport-level failure, preferring the underlying
// error text over the fallback.
func transportMessage(err error, fallback string) string {
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		return err.Error()
	}
	return fallback
}
