package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt creates the analysis prompt. Both inputs are
// embedded verbatim; the template itself is deterministic.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert HR Analyst. Your task is to analyze a candidate's RESUME against a JOB DESCRIPTION.
Provide a detailed evaluation in a structured JSON format.

ANALYSIS INSTRUCTIONS:
1. Skills Analysis:
   - First, identify all the skills explicitly required in the JOB DESCRIPTION.
   - Then, check the RESUME to see which of those required skills are present. Use semantic understanding (e.g., "Analytical Thinking" should match "Analytical Skills").
   - Create two lists: matched_skills and missing_skills.
2. Skills Match Percentage (skills_match):
   - Calculate this as: (Number of Matched Skills / Total Number of Required Skills) * 100. Round to the nearest whole number.
3. Years of Experience (years_experience):
   - Calculate the total years of professional experience from the resume.
   - If specific work dates are not present, estimate the experience based on the graduation date. For a recent graduate, it should be "Fresher" or less than 1 year.
4. Education Level (education_level):
   - Compare the candidate's education with the job requirements.
   - Classify as 'High' (perfect match), 'Medium' (related field or acceptable alternative), or 'Low' (does not meet requirements).
5. Relevance and Recommendation Scores:
   - relevance_score (0-100): Overall match considering skills, experience, and education.
   - recommendation_score (0-100): Your final confidence in recommending the candidate for an interview.
6. Recommendation Summary (recommendation_summary):
   - Write a concise, actionable two-sentence summary for the hiring manager, explaining your recommendation.
7. Resume Quality:
   - uses_action_verbs: whether the resume uses strong action verbs.
   - has_quantifiable_results: whether the resume contains quantifiable results.

RESUME:
%s

JOB DESCRIPTION:
%s

RETURN ONLY a raw JSON object in the following exact format:
{
    "relevance_score": 85,
    "skills_match": 75,
    "years_experience": "3 years",
    "education_level": "High",
    "matched_skills": ["Python", "SQL", "Data Analysis", "Problem Solving"],
    "missing_skills": ["Machine Learning", "Cloud Computing", "Tableau"],
    "recommendation_summary": "The candidate is a strong fit with solid foundational skills in Python and SQL. While they lack advanced ML expertise, they are a quick learner and recommended for an interview.",
    "uses_action_verbs": true,
    "has_quantifiable_results": false,
    "recommendation_score": 80
}`, resumeText, jobDescription)
}

// BuildSimilarityQuery creates the text used to embed a job description for
// the similarity index.
func (pb *PromptBuilder) BuildSimilarityQuery(jobDescription string) string {
	return fmt.Sprintf("Job requirements and qualifications: %s", jobDescription)
}
