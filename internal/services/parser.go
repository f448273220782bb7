package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"jobfit/resume-analyzer/internal/models"
)

// ParseAnalysisReport extracts the JSON contract from the provider's raw text
// and validates it. It is a pure function so it can be tested independently of
// the network call; unparseable input fails with a malformed-response error.
func ParseAnalysisReport(raw string) (*models.AnalysisReport, error) {
	jsonStr := extractJSON(raw)

	var report models.AnalysisReport
	if err := json.Unmarshal([]byte(jsonStr), &report); err != nil {
		return nil, &models.ProviderError{
			Kind: models.ProviderErrMalformed,
			Err:  fmt.Errorf("failed to unmarshal analysis JSON: %w", err),
		}
	}

	if err := validateReport(&report); err != nil {
		return nil, &models.ProviderError{
			Kind: models.ProviderErrMalformed,
			Err:  err,
		}
	}

	return &report, nil
}

func validateReport(r *models.AnalysisReport) error {
	if r.RelevanceScore < 0 || r.RelevanceScore > 100 {
		return fmt.Errorf("relevance_score %d out of range 0-100", r.RelevanceScore)
	}
	if r.SkillsMatch < 0 || r.SkillsMatch > 100 {
		return fmt.Errorf("skills_match %d out of range 0-100", r.SkillsMatch)
	}
	if r.RecommendationScore < 0 || r.RecommendationScore > 100 {
		return fmt.Errorf("recommendation_score %d out of range 0-100", r.RecommendationScore)
	}
	if r.RecommendationSummary == "" {
		return fmt.Errorf("recommendation_summary is empty")
	}
	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object boundaries
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
