package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"rules invalid", NewRulesInvalidError(cause), ErrCodeRulesInvalid, false},
		{"classifier unavailable", NewClassifierUnavailableError(cause), ErrCodeClassifierUnavailable, true},
		{"classifier timeout", NewClassifierTimeoutError(), ErrCodeClassifierTimeout, true},
		{"user fetch failed", NewUserFetchFailedError(42, cause), ErrCodeUserFetchFailed, true},
		{"user data malformed", NewUserDataMalformedError(42, cause), ErrCodeUserDataMalformed, false},
		{"action rejected", NewActionRejectedError("cancel_booking", "already completed"), ErrCodeActionRejected, false},
		{"action transport failed", NewActionTransportFailedError("cancel_booking", cause), ErrCodeActionTransportFailed, true},
		{"request invalid", NewRequestInvalidError("message is required"), ErrCodeRequestInvalid, false},
		{"cache unavailable", NewCacheUnavailableError(cause), ErrCodeCacheUnavailable, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.NotEmpty(t, tt.err.Message)
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestUserFetchFailedDetails(t *testing.T) {
	err := NewUserFetchFailedError(42, fmt.Errorf("backend returned status 503"))
	assert.Contains(t, err.Details, "userId: 42")
	assert.Contains(t, err.Details, "status 503")
}

func TestRetryPolicy(t *testing.T) {
	tests := []struct {
		code  ErrorCode
		count int
	}{
		{ErrCodeClassifierUnavailable, 3},
		{ErrCodeUserFetchFailed, 3},
		{ErrCodeActionTransportFailed, 3},
		{ErrCodeCacheUnavailable, 3},
		{ErrCodeClassifierTimeout, 2},
		{ErrCodeRulesInvalid, 0},
		{ErrCodeActionRejected, 0},
		{ErrCodeRequestInvalid, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.count, GetRetryCount(tt.code))
			assert.Equal(t, tt.count > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeClassifierUnavailable, "CLASSIFIER"},
		{ErrCodeClassifierTimeout, "CLASSIFIER"},
		{ErrCodeUserFetchFailed, "USER_DATA"},
		{ErrCodeUserDataMalformed, "USER_DATA"},
		{ErrCodeActionRejected, "ACTION"},
		{ErrCodeActionTransportFailed, "ACTION"},
		{ErrCodeCacheUnavailable, "CACHE"},
		{ErrCodeRulesInvalid, "VALIDATION"},
		{ErrCodeRequestInvalid, "VALIDATION"},
		{ErrorCode("SOMETHING_ELSE"), "OTHER"},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCategory(tt.code))
		})
	}
}
