package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadRequest         = errors.New("bad request")
	ErrNotFound           = errors.New("not found")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// mapStatus picks the sentinel for an HTTP status code.
func mapStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrUnavailable
	case status >= 400:
		return ErrBadRequest
	default:
		return ErrUnexpectedResponse
	}
}

// newAPIError decodes an error body. The API answers in several shapes:
//
//	{"detail": "..."}                      authentication failures
//	{"message": "...", "success": false}   handled failures
//	{"error": "..."}                       bad query parameters
//	{"non_field_errors": ["..."]}          serializer-level validation
//	{"email": ["..."], "password": [...]}  field validation
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Err: mapStatus(status)}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return e
	}

	for _, key := range []string{"detail", "message", "error"} {
		if s, ok := raw[key].(string); ok && s != "" {
			e.Message = s
			break
		}
	}

	fields := make(map[string][]string)
	for key, v := range raw {
		switch key {
		case "detail", "message", "error", "success", "code":
			continue
		}
		if msgs := flattenMessages(v); len(msgs) > 0 {
			fields[key] = msgs
		}
	}
	if len(fields) > 0 {
		e.Fields = fields
	}

	if e.Message == "" {
		e.Message = fieldSummary(fields)
	}
	return e
}

func flattenMessages(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, flattenMessages(item)...)
		}
		return out
	case map[string]any:
		var out []string
		for _, item := range t {
			out = append(out, flattenMessages(item)...)
		}
		sort.Strings(out)
		return out
	default:
		return nil
	}
}

// fieldSummary prefers non_field_errors, then lists the rest by key.
func fieldSummary(fields map[string][]string) string {
	if msgs, ok := fields["non_field_errors"]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fields[k], " "))
	}
	return strings.Join(parts, "; ")
}
