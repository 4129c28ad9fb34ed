package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Error is the normalized failure carried out of the HTTP layer. Status is
// zero when the request never reached the backend (dial failure, timeout,
// cancelled context).
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s: %v", e.Message, e.cause)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// IsNotFound reports whether the backend answered 404.
func (e *Error) IsNotFound() bool { return e.Status == 404 }

// errorBody matches the backend's error payload. Detail is usually a plain
// string; validation failures carry a structured list instead.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

func decodeError(status int, body []byte) *Error {
	msg := fallbackMessage(status)

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case len(eb.Detail) > 0:
			var s string
			if json.Unmarshal(eb.Detail, &s) == nil && s != "" {
				msg = s
			} else if len(bytes.TrimSpace(eb.Detail)) > 0 {
				msg = string(eb.Detail)
			}
		case eb.Message != "":
			msg = eb.Message
		}
	}

	return &Error{Status: status, Message: msg}
}

func fallbackMessage(status int) string {
	switch status {
	case 400:
		return "invalid request"
	case 401:
		return "not authenticated"
	case 403:
		return "access denied"
	case 404:
		return "not found"
	default:
		return fmt.Sprintf("request failed with status %d", status)
	}
}
