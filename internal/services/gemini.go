package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"

	"jobfit/resume-analyzer/internal/models"
)

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey, modelName string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: "text-embedding-004",
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", classifyProviderError(err)
	}

	if resp == nil {
		return "", &models.ProviderError{
			Kind: models.ProviderErrMalformed,
			Err:  fmt.Errorf("nil response from provider"),
		}
	}

	text := resp.Text()
	if text == "" {
		return "", &models.ProviderError{
			Kind: models.ProviderErrMalformed,
			Err:  fmt.Errorf("no text content in response"),
		}
	}

	return text, nil
}

// GenerateTextWithRetry implements GeminiService. Only transient failures
// (rate limit, unavailability) are retried; auth rejections and malformed
// payloads fail immediately.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.GenerateText(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}

		lastErr = err

		var provErr *models.ProviderError
		if errors.As(err, &provErr) && !provErr.Retryable() {
			return "", err
		}

		select {
		case <-ctx.Done():
			return "", classifyProviderError(ctx.Err())
		default:
		}

		if attempt < maxRetries {
			log.Printf("⚠️ Attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, classifyProviderError(err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, &models.ProviderError{
			Kind: models.ProviderErrMalformed,
			Err:  fmt.Errorf("empty embedding result"),
		}
	}

	return result.Embeddings[0].Values, nil
}

// classifyProviderError maps a raw provider failure to a ProviderError so each
// failure mode surfaces distinctly to the user.
func classifyProviderError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &models.ProviderError{Kind: models.ProviderErrTimeout, Err: err}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return &models.ProviderError{Kind: models.ProviderErrAuth, Err: err}
		case apiErr.Code == 429:
			return &models.ProviderError{Kind: models.ProviderErrRateLimit, Err: err}
		default:
			return &models.ProviderError{Kind: models.ProviderErrUnavailable, Err: err}
		}
	}

	// Network, DNS and other transport failures.
	return &models.ProviderError{Kind: models.ProviderErrUnavailable, Err: err}
}
