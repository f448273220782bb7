package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfit/resume-analyzer/internal/models"
)

const wellFormedResponse = `{
	"relevance_score": 45,
	"skills_match": 33,
	"years_experience": "3 years",
	"education_level": "Medium",
	"matched_skills": ["Docker"],
	"missing_skills": ["Go", "Kubernetes"],
	"recommendation_summary": "The candidate covers containers but lacks Go and Kubernetes. Not recommended for a senior role without upskilling.",
	"uses_action_verbs": true,
	"has_quantifiable_results": false,
	"recommendation_score": 40
}`

func TestParseAnalysisReport_WellFormed(t *testing.T) {
	report, err := ParseAnalysisReport(wellFormedResponse)
	require.NoError(t, err)

	assert.Equal(t, 45, report.RelevanceScore)
	assert.Equal(t, 33, report.SkillsMatch)
	assert.Equal(t, "3 years", report.YearsExperience)
	assert.Equal(t, "Medium", report.EducationLevel)
	assert.Equal(t, models.SkillList{"Docker"}, report.MatchedSkills)
	assert.Equal(t, models.SkillList{"Go", "Kubernetes"}, report.MissingSkills)
	assert.True(t, report.UsesActionVerbs)
	assert.False(t, report.HasQuantifiableResult)
	assert.Equal(t, 40, report.RecommendationScore)
}

func TestParseAnalysisReport_MarkdownFenced(t *testing.T) {
	raw := "```json\n" + wellFormedResponse + "\n```"

	report, err := ParseAnalysisReport(raw)
	require.NoError(t, err)
	assert.Equal(t, 45, report.RelevanceScore)
}

func TestParseAnalysisReport_SurroundingProse(t *testing.T) {
	raw := "Here is the evaluation you asked for:\n" + wellFormedResponse + "\nLet me know if you need more."

	report, err := ParseAnalysisReport(raw)
	require.NoError(t, err)
	assert.Equal(t, 40, report.RecommendationScore)
}

func TestParseAnalysisReport_NotJSON(t *testing.T) {
	report, err := ParseAnalysisReport("I could not produce a structured answer, sorry.")
	assert.Nil(t, report)

	var provErr *models.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, models.ProviderErrMalformed, provErr.Kind)
}

func TestParseAnalysisReport_ScoreOutOfRange(t *testing.T) {
	raw := `{"relevance_score": 450, "skills_match": 10, "recommendation_score": 10, "recommendation_summary": "x"}`

	_, err := ParseAnalysisReport(raw)
	var provErr *models.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, models.ProviderErrMalformed, provErr.Kind)
	assert.Contains(t, err.Error(), "relevance_score")
}

func TestParseAnalysisReport_MissingSummary(t *testing.T) {
	raw := `{"relevance_score": 50, "skills_match": 50, "recommendation_score": 50}`

	_, err := ParseAnalysisReport(raw)
	var provErr *models.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, models.ProviderErrMalformed, provErr.Kind)
}

func TestVerdictBands(t *testing.T) {
	tests := []struct {
		score   int
		verdict string
	}{
		{95, "Highly Recommended"},
		{80, "Highly Recommended"},
		{79, "Worth Considering"},
		{60, "Worth Considering"},
		{59, "Not Recommended"},
		{0, "Not Recommended"},
	}

	for _, tt := range tests {
		report := &models.AnalysisReport{RecommendationScore: tt.score}
		assert.Equal(t, tt.verdict, report.Verdict(), "score %d", tt.score)
	}
}
