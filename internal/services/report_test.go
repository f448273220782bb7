package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"jobfit/resume-analyzer/internal/models"
)

func completedAnalysis() *models.Analysis {
	return &models.Analysis{
		ID:                    uuid.New(),
		Status:                models.StatusCompleted,
		RelevanceScore:        45,
		SkillsMatch:           33,
		YearsExperience:       "3 years",
		EducationLevel:        "Medium",
		MatchedSkills:         models.SkillList{"Docker"},
		MissingSkills:         models.SkillList{"Go", "Kubernetes"},
		RecommendationSummary: "Covers containers but lacks Go and Kubernetes.",
		UsesActionVerbs:       true,
		HasQuantifiableResult: false,
		RecommendationScore:   40,
		WordCountStatus:       "Too Short (7 words)",
		RepetitionStatus:      "Low",
	}
}

func TestBuildReport_ContainsAllSections(t *testing.T) {
	report := BuildReport(completedAnalysis())

	assert.Contains(t, report, "FINAL ASSESSMENT: Not Recommended (40%)")
	assert.Contains(t, report, "- AI Relevance Score: 45%")
	assert.Contains(t, report, "- Skills Match: 33%")
	assert.Contains(t, report, "- Years of Experience: 3 years")
	assert.Contains(t, report, "- Education Level: Medium")
	assert.Contains(t, report, "Covers containers but lacks Go and Kubernetes.")
	assert.Contains(t, report, "- Word Count: Too Short (7 words)")
	assert.Contains(t, report, "- Keyword Repetition: Low")
	assert.Contains(t, report, "- Uses Action Verbs: Yes")
	assert.Contains(t, report, "- Shows Quantifiable Results: No")
	assert.Contains(t, report, "• Docker")
	assert.Contains(t, report, "• Go")
	assert.Contains(t, report, "• Kubernetes")
}

func TestBuildReport_ByteIdenticalForSameRecord(t *testing.T) {
	analysis := completedAnalysis()

	first := BuildReport(analysis)
	second := BuildReport(analysis)

	assert.Equal(t, []byte(first), []byte(second))
}

func TestBuildReport_EmptySkillLists(t *testing.T) {
	analysis := completedAnalysis()
	analysis.MatchedSkills = nil
	analysis.MissingSkills = nil

	report := BuildReport(analysis)
	assert.Contains(t, report, "• None identified")
}

func TestBuildReport_MissingOptionalFields(t *testing.T) {
	analysis := completedAnalysis()
	analysis.YearsExperience = ""
	analysis.EducationLevel = ""

	report := BuildReport(analysis)
	assert.Contains(t, report, "- Years of Experience: N/A")
	assert.Contains(t, report, "- Education Level: N/A")
}
