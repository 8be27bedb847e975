package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the outcome taxonomy - match with errors.Is().
// Handlers map these to HTTP status codes; nothing below the handler
// layer knows about HTTP.
var (
	ErrValidation       = errors.New("validation failed")       // 400
	ErrUnauthorized     = errors.New("unauthorized")            // 401
	ErrForbidden        = errors.New("forbidden")               // 403
	ErrNotFound         = errors.New("not found")               // 404
	ErrConflict         = errors.New("already exists")          // 409
	ErrStoreUnavailable = errors.New("store unavailable")       // 500
)

// ValidationError reports the request fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for a set of missing fields.
func NewValidationError(missing ...string) *ValidationError {
	fields := make(map[string]string, len(missing))
	for _, f := range missing {
		fields[f] = "is required"
	}
	return &ValidationError{Fields: fields}
}

// ConflictError represents a unique-constraint conflict with details
// about the existing resource.
type ConflictError struct {
	Message      string
	ResourceType string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
