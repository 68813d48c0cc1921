// ABOUTME: Typed error taxonomy for backend responses
// ABOUTME: Distinguishes auth, validation, server, and transport failures

package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure
type Kind int

const (
	KindNetwork Kind = iota
	KindUnauthorized
	KindForbidden
	KindValidation
	KindServer
)

// String returns a short label for the kind
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the error type returned for any failed backend call
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	// Fields holds per-field validation messages when Kind is KindValidation
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return "backend error"
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
