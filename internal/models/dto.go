package models

type AnalyzeRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
	ResumeText     string `json:"resume_text" validate:"required"`
}

type AnalyzeResponse struct {
	ID               string          `json:"id"`
	Status           string          `json:"status"`
	Report           *AnalysisReport `json:"report,omitempty"`
	Verdict          string          `json:"verdict,omitempty"`
	WordCountStatus  string          `json:"word_count_status,omitempty"`
	RepetitionStatus string          `json:"repetition_status,omitempty"`
	RawResponse      string          `json:"raw_response,omitempty"`
}

type AnalysisSummary struct {
	ID                  string `json:"id"`
	Verdict             string `json:"verdict"`
	RelevanceScore      int    `json:"relevance_score"`
	RecommendationScore int    `json:"recommendation_score"`
	CreatedAt           string `json:"created_at"`
}

type SimilarAnalysis struct {
	ID    string  `json:"id"`
	Score float32 `json:"score"`
}

type ExtractResponse struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
}
