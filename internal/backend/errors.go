package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Error is a non-2xx response from the backend
type Error struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the server-supplied error text, empty when none was sent
	Message string
	// Body is the raw response body, truncated
	Body string
}

func (e *Error) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	if detail == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, detail)
}

// Unauthorized reports whether the backend rejected the credentials or token
func (e *Error) Unauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 422
}

// MessageOf returns the server-supplied message carried by err, or ""
func MessageOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	return ""
}

// IsUnauthorized reports whether err is an authentication rejection
func IsUnauthorized(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Unauthorized()
}

// errorMessage extracts the message from an error body. The backend uses
// "error"; its JWT layer uses "msg".
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, s := range []string{payload.Error, payload.Message, payload.Msg} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
