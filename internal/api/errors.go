// Package api implements the HTTP client for the PlanbookAI REST gateway,
// including the error taxonomy every call site relies on.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// KindUnknown covers failures with no better classification.
	KindUnknown Kind = iota
	// KindNetwork means no HTTP response was received at all.
	KindNetwork
	// KindUnauthorized is a 401; it destroys the session.
	KindUnauthorized
	// KindValidation is a 4xx carrying a structured detail payload.
	KindValidation
	// KindNotFound is a 404 from the gateway or a local-store lookup miss.
	KindNotFound
)

// Error is the single error type surfaced for failed gateway calls.
// Detail is always a display-ready string, never a raw payload.
type Error struct {
	// StatusCode is the HTTP status, or 0 when no response arrived.
	StatusCode int
	// Detail is the human-readable message for the failure.
	Detail string
	// Kind classifies the failure.
	Kind Kind

	cause error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return "unknown gateway error"
}

func (e *Error) Unwrap() error { return e.cause }

// errKind reports whether err is an *Error of the given kind.
func errKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// IsUnauthorized reports whether err is a 401 gateway failure.
func IsUnauthorized(err error) bool { return errKind(err, KindUnauthorized) }

// IsValidation reports whether err is a 4xx failure with structured detail.
func IsValidation(err error) bool { return errKind(err, KindValidation) }

// IsNotFound reports whether err is a 404 gateway failure.
func IsNotFound(err error) bool { return errKind(err, KindNotFound) }

// IsNetwork reports whether err means no response was received.
func IsNetwork(err error) bool { return errKind(err, KindNetwork) }

// genericDetail is the fallback phrase when a structured payload carries
// no usable message.
const genericDetail = "Lỗi xác thực dữ liệu"

// NormalizeDetail coerces a gateway "detail" payload into a single
// human-readable string. The gateway may send a plain string, an array of
// validation entries with a "msg" field, or a nested object; arrays are
// joined, objects prefer "msg" then "message", and anything else falls
// back to a generic localized phrase.
func NormalizeDetail(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return detailString(v)
}

func detailString(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case []any:
		parts := make([]string, 0, len(d))
		for _, item := range d {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
				continue
			}
			if m, ok := item.(map[string]any); ok {
				if msg, ok := m["msg"].(string); ok && msg != "" {
					parts = append(parts, msg)
					continue
				}
			}
			parts = append(parts, genericDetail)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if msg, ok := d["msg"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := d["message"].(string); ok && msg != "" {
			return msg
		}
		return genericDetail
	default:
		return genericDetail
	}
}

// newStatusError builds the Error for a non-2xx response.
func newStatusError(status int, body []byte) *Error {
	detail := ""
	hasStructured := false
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		detail = NormalizeDetail(envelope.Detail)
		hasStructured = true
	}

	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 400 && status < 500 && hasStructured:
		kind = KindValidation
	}

	return &Error{StatusCode: status, Detail: detail, Kind: kind}
}
