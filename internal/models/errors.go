package models

import (
	"errors"
	"fmt"
)

// ErrEmptyJobDescription and ErrEmptyResume block the provider call before it
// is issued; both are recoverable by the user filling in the missing field.
var (
	ErrEmptyJobDescription = errors.New("job description must not be empty")
	ErrEmptyResume         = errors.New("resume text must not be empty")
)

// ProviderErrorKind classifies failures of the external model provider so the
// handler can report each one distinctly.
type ProviderErrorKind string

const (
	ProviderErrAuth        ProviderErrorKind = "auth"
	ProviderErrRateLimit   ProviderErrorKind = "rate_limit"
	ProviderErrTimeout     ProviderErrorKind = "timeout"
	ProviderErrUnavailable ProviderErrorKind = "unavailable"
	ProviderErrMalformed   ProviderErrorKind = "malformed_response"
)

// ProviderError wraps a failed interaction with the model provider.
type ProviderError struct {
	Kind ProviderErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("provider error (%s)", e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient enough to retry.
// Auth rejections and malformed payloads will not improve on retry.
func (e *ProviderError) Retryable() bool {
	return e.Kind == ProviderErrRateLimit || e.Kind == ProviderErrUnavailable
}
