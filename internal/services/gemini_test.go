package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"jobfit/resume-analyzer/internal/models"
)

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind models.ProviderErrorKind
	}{
		{"deadline exceeded", context.DeadlineExceeded, models.ProviderErrTimeout},
		{"401 unauthorized", genai.APIError{Code: 401}, models.ProviderErrAuth},
		{"403 forbidden", genai.APIError{Code: 403}, models.ProviderErrAuth},
		{"429 rate limited", genai.APIError{Code: 429}, models.ProviderErrRateLimit},
		{"500 server error", genai.APIError{Code: 500}, models.ProviderErrUnavailable},
		{"503 overloaded", genai.APIError{Code: 503}, models.ProviderErrUnavailable},
		{"plain network error", errors.New("dial tcp: connection refused"), models.ProviderErrUnavailable},
		{"wrapped api error", fmt.Errorf("generate: %w", genai.APIError{Code: 429}), models.ProviderErrRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyProviderError(tt.err)

			var provErr *models.ProviderError
			require.True(t, errors.As(err, &provErr))
			assert.Equal(t, tt.kind, provErr.Kind)
		})
	}
}

func TestClassifyProviderError_Nil(t *testing.T) {
	assert.NoError(t, classifyProviderError(nil))
}

func TestProviderError_Retryable(t *testing.T) {
	retryable := map[models.ProviderErrorKind]bool{
		models.ProviderErrAuth:        false,
		models.ProviderErrMalformed:   false,
		models.ProviderErrTimeout:     false,
		models.ProviderErrRateLimit:   true,
		models.ProviderErrUnavailable: true,
	}

	for kind, want := range retryable {
		err := &models.ProviderError{Kind: kind}
		assert.Equal(t, want, err.Retryable(), "kind %s", kind)
	}
}
