package graph

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   error
	}{
		{
			name:       "unauthorised",
			statusCode: http.StatusUnauthorized,
			expected:   ErrUnauthorised,
		},
		{
			name:       "forbidden",
			statusCode: http.StatusForbidden,
			expected:   ErrForbidden,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			expected:   ErrNotFound,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			expected:   ErrRateLimited,
		},
		{
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			expected:   ErrBadRequest,
		},
		{
			name:       "internal server error",
			statusCode: http.StatusInternalServerError,
			expected:   ErrServerError,
		},
		{
			name:       "service unavailable",
			statusCode: http.StatusServiceUnavailable,
			expected:   ErrServerError,
		},
		{
			name:       "success returns nil",
			statusCode: http.StatusOK,
			expected:   nil,
		},
		{
			name:       "created returns nil",
			statusCode: http.StatusCreated,
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapError(tt.statusCode)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsUnauthorised(t *testing.T) {
	assert.True(t, IsUnauthorised(ErrUnauthorised))
	assert.True(t, IsUnauthorised(fmt.Errorf("sync window: %w", ErrUnauthorised)))
	assert.False(t, IsUnauthorised(ErrForbidden))
	assert.False(t, IsUnauthorised(nil))
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(http.StatusTooManyRequests))
	assert.False(t, IsRateLimited(http.StatusOK))
	assert.False(t, IsRateLimited(http.StatusUnauthorized))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("delete event: %w", ErrNotFound)))
	assert.False(t, IsNotFound(ErrUnauthorised))
	assert.False(t, IsNotFound(nil))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "rate limited is retryable",
			err:      ErrRateLimited,
			expected: true,
		},
		{
			name:     "server error is retryable",
			err:      ErrServerError,
			expected: true,
		},
		{
			name:     "wrapped rate limit is retryable",
			err:      fmt.Errorf("list events: %w", ErrRateLimited),
			expected: true,
		},
		{
			name:     "unauthorised is not retryable",
			err:      ErrUnauthorised,
			expected: false,
		},
		{
			name:     "not found is not retryable",
			err:      ErrNotFound,
			expected: false,
		},
		{
			name:     "nil is not retryable",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsRetryable(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
