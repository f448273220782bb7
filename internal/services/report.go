package services

import (
	"fmt"
	"strings"

	"jobfit/resume-analyzer/internal/models"
)

// BuildReport renders the downloadable plain-text report for a completed
// analysis. The output is a pure function of the record, so downloading the
// same analysis twice yields byte-identical files.
func BuildReport(a *models.Analysis) string {
	report := a.Report()

	var b strings.Builder

	b.WriteString("RESUME ANALYSIS REPORT\n")
	b.WriteString("================================\n\n")

	fmt.Fprintf(&b, "FINAL ASSESSMENT: %s (%d%%)\n\n", report.Verdict(), report.RecommendationScore)

	b.WriteString("KEY METRICS:\n")
	fmt.Fprintf(&b, "- AI Relevance Score: %d%%\n", report.RelevanceScore)
	fmt.Fprintf(&b, "- Skills Match: %d%%\n", report.SkillsMatch)
	fmt.Fprintf(&b, "- Years of Experience: %s\n", valueOrNA(report.YearsExperience))
	fmt.Fprintf(&b, "- Education Level: %s\n\n", valueOrNA(report.EducationLevel))

	b.WriteString("PROFESSIONAL ASSESSMENT:\n")
	b.WriteString(report.RecommendationSummary)
	b.WriteString("\n\n")

	b.WriteString("RESUME QUALITY ANALYSIS:\n")
	fmt.Fprintf(&b, "- Word Count: %s\n", valueOrNA(a.WordCountStatus))
	fmt.Fprintf(&b, "- Keyword Repetition: %s\n", valueOrNA(a.RepetitionStatus))
	fmt.Fprintf(&b, "- Uses Action Verbs: %s\n", yesNo(report.UsesActionVerbs))
	fmt.Fprintf(&b, "- Shows Quantifiable Results: %s\n\n", yesNo(report.HasQuantifiableResult))

	b.WriteString("MATCHED SKILLS:\n")
	b.WriteString(bulletList(report.MatchedSkills))
	b.WriteString("\n")

	b.WriteString("MISSING CRITICAL SKILLS:\n")
	b.WriteString(bulletList(report.MissingSkills))
	b.WriteString("\n")

	b.WriteString("---\n")
	b.WriteString("Generated by Resume Analyzer\n")

	return b.String()
}

func bulletList(skills []string) string {
	if len(skills) == 0 {
		return "• None identified\n"
	}

	var b strings.Builder
	for _, skill := range skills {
		fmt.Fprintf(&b, "• %s\n", skill)
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func valueOrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
