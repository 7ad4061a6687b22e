package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))
	assert.NoError(t, WrapErrorf(nil, "ignored %d", 1))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("portal_config.urls", []string{}, "at least one portal URL is required")

	assert.Equal(t, "validation failed for field 'portal_config.urls': at least one portal URL is required (value: [])", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHTTPError(t *testing.T) {
	err := NewHTTPErrorWithURL(http.StatusServiceUnavailable, "maintenance", "https://example.com/GEN.html")
	assert.Equal(t, "HTTP 503 error for 'https://example.com/GEN.html': maintenance", err.Error())

	noURL := &HTTPError{StatusCode: http.StatusNotFound, Message: "missing"}
	assert.Equal(t, "HTTP 404 error: missing", noURL.Error())
}

func TestFetchError(t *testing.T) {
	cause := NewNetworkError("https://example.com", "HTTP request failed", errors.New("connection refused"))
	err := WrapError(NewFetchError("https://example.com", cause), "aggregation aborted")

	assert.True(t, IsFetchError(err))
	assert.False(t, IsFetchError(cause))

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.Equal(t, "connection refused", GetRootCause(err).Error())
}

func TestStateSaveError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(NewStateSaveError("state.json", cause), "run failed")

	var saveErr *StateSaveError
	assert.True(t, errors.As(err, &saveErr))
	assert.Equal(t, "state.json", saveErr.Location)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "run failed: failed to save state to 'state.json': disk full", err.Error())
}
