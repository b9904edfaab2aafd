// Package errors provides standardized error handling for console actions.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Client-detected, pre-network. Actions carrying one of these are
	// blocked before any request is dispatched.
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeNoFormSelected    ErrorCode = "NO_FORM_SELECTED"
	ErrCodeMediaStageInvalid ErrorCode = "MEDIA_STAGE_INVALID"

	// Transport and backend failures.
	ErrCodeNetworkError     ErrorCode = "NETWORK_ERROR"
	ErrCodeServerError      ErrorCode = "SERVER_ERROR"
	ErrCodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"

	// Screen-level failures.
	ErrCodeAggregateLoadFailed ErrorCode = "AGGREGATE_LOAD_FAILED"
	ErrCodeCatalogInvalid      ErrorCode = "CATALOG_INVALID"
	ErrCodeCacheError          ErrorCode = "CACHE_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a pre-network validation error for a named field.
// No request may be dispatched once one of these is raised.
func NewValidationError(field, reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   fmt.Sprintf("field: %s, reason: %s", field, reason),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewNoFormSelectedError creates a validation error for parameter operations
// attempted while no form is selected.
func NewNoFormSelectedError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoFormSelected,
		Message:   "No form is selected",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMediaStageInvalidError creates a validation error for an unknown media slot.
func NewMediaStageInvalidError(slot string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMediaStageInvalid,
		Message:   "Unknown media slot",
		Details:   fmt.Sprintf("slot: %s", slot),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkError creates a retryable transport-level error.
func NewNetworkError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkError,
		Message:   "Backend is unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewServerError creates an error for a non-2xx backend response.
func NewServerError(status int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeServerError,
		Message:   "Backend returned an error response",
		Details:   fmt.Sprintf("status: %d, body: %s", status, body),
		Retryable: status >= 500,
		Metadata:  map[string]interface{}{"status": status},
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError creates a non-retryable not-found error.
func NewResourceNotFoundError(resource, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResourceNotFound,
		Message:   "Resource not found",
		Details:   fmt.Sprintf("resource: %s, id: %s", resource, id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAggregateLoadFailedError creates the single terminal error for a failed
// screen load. Any failing sub-fetch collapses the whole aggregate into this;
// partial views are never surfaced.
func NewAggregateLoadFailedError(screen string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAggregateLoadFailed,
		Message:   "Error fetching details.",
		Details:   fmt.Sprintf("screen: %s, error: %s", screen, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCatalogInvalidError creates an error for offer documents that fail
// schema validation on ingest.
func NewCatalogInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogInvalid,
		Message:   "Offer catalog failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheError creates a retryable cache access error.
func NewCacheError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheError,
		Message:   "Cache access failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf returns the error code carried by err, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsValidation reports whether err was detected client-side before any
// network call.
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case ErrCodeValidationFailed, ErrCodeNoFormSelected, ErrCodeMediaStageInvalid:
		return true
	}
	return false
}

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	return CodeOf(err) == ErrCodeNetworkError
}

// IsServer reports whether err is a non-2xx backend response.
func IsServer(err error) bool {
	return CodeOf(err) == ErrCodeServerError
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeResourceNotFound
}

// UserMessage maps an error to the operator-facing notice. Validation errors
// surface their own message inline; network and server failures share one
// generic message and are never distinguished to the operator.
func UserMessage(err error) string {
	var se *StandardError
	if !errors.As(err, &se) {
		return "Something went wrong."
	}
	if IsValidation(se) {
		if se.Details != "" {
			return fmt.Sprintf("%s (%s)", se.Message, se.Details)
		}
		return se.Message
	}
	if se.Code == ErrCodeAggregateLoadFailed {
		return se.Message
	}
	return "Something went wrong."
}
