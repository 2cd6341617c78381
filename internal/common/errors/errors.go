// Package errors provides standardized error handling across the chatbot
// service.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeRulesInvalid ErrorCode = "RULES_INVALID"

	ErrCodeClassifierUnavailable ErrorCode = "CLASSIFIER_UNAVAILABLE"
	ErrCodeClassifierTimeout     ErrorCode = "CLASSIFIER_TIMEOUT"

	ErrCodeUserFetchFailed   ErrorCode = "USER_FETCH_FAILED"
	ErrCodeUserDataMalformed ErrorCode = "USER_DATA_MALFORMED"

	ErrCodeActionRejected        ErrorCode = "ACTION_REJECTED"
	ErrCodeActionTransportFailed ErrorCode = "ACTION_TRANSPORT_FAILED"

	ErrCodeRequestInvalid ErrorCode = "REQUEST_INVALID"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewRulesInvalidError creates a non-retryable rule table error.
func NewRulesInvalidError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRulesInvalid,
		Message:   "Rule tables failed validation",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewClassifierUnavailableError creates a retryable classifier error.
func NewClassifierUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassifierUnavailable,
		Message:   "Intent classifier service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewClassifierTimeoutError creates a retryable classifier timeout error.
func NewClassifierTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeClassifierTimeout,
		Message:   "Intent classifier timeout",
		Details:   "prediction call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserFetchFailedError creates a retryable backend fetch error.
func NewUserFetchFailedError(userID int64, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserFetchFailed,
		Message:   "Failed to fetch user data from backend",
		Details:   fmt.Sprintf("userId: %d, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserDataMalformedError creates a non-retryable decode error.
func NewUserDataMalformedError(userID int64, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserDataMalformed,
		Message:   "Backend returned malformed user data",
		Details:   fmt.Sprintf("userId: %d, error: %s", userID, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewActionRejectedError creates a non-retryable backend rejection error.
func NewActionRejectedError(action, reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActionRejected,
		Message:   "Backend rejected the action",
		Details:   fmt.Sprintf("action: %s, reason: %s", action, reason),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewActionTransportFailedError creates a retryable dispatch transport error.
func NewActionTransportFailedError(action string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeActionTransportFailed,
		Message:   "Failed to reach backend for action dispatch",
		Details:   fmt.Sprintf("action: %s, error: %s", action, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestInvalidError creates a non-retryable request validation error.
func NewRequestInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestInvalid,
		Message:   "Request payload validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "User data cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeClassifierUnavailable,
		ErrCodeUserFetchFailed,
		ErrCodeActionTransportFailed,
		ErrCodeCacheUnavailable:
		return 3

	case ErrCodeClassifierTimeout:
		return 2

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CLASSIFIER"):
		return "CLASSIFIER"
	case strings.Contains(codeStr, "USER"):
		return "USER_DATA"
	case strings.Contains(codeStr, "ACTION"):
		return "ACTION"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "RULES") || strings.Contains(codeStr, "REQUEST"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
