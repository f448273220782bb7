package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
)

// SkillList stores a list of skills as a JSON column.
type SkillList []string

func (s SkillList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skill list: %w", err)
	}
	return string(data), nil
}

func (s *SkillList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported skill list column type %T", value)
	}

	if len(data) == 0 {
		*s = nil
		return nil
	}

	return json.Unmarshal(data, s)
}

// AnalysisReport is the structured result parsed from the model's response.
// Field set mirrors the JSON contract requested by the analysis prompt.
type AnalysisReport struct {
	RelevanceScore        int       `json:"relevance_score"`
	SkillsMatch           int       `json:"skills_match"`
	YearsExperience       string    `json:"years_experience"`
	EducationLevel        string    `json:"education_level"`
	MatchedSkills         SkillList `json:"matched_skills"`
	MissingSkills         SkillList `json:"missing_skills"`
	RecommendationSummary string    `json:"recommendation_summary"`
	UsesActionVerbs       bool      `json:"uses_action_verbs"`
	HasQuantifiableResult bool      `json:"has_quantifiable_results"`
	RecommendationScore   int       `json:"recommendation_score"`
}

// Verdict maps the recommendation score to a human-readable verdict label.
func (r *AnalysisReport) Verdict() string {
	switch {
	case r.RecommendationScore >= 80:
		return "Highly Recommended"
	case r.RecommendationScore >= 60:
		return "Worth Considering"
	default:
		return "Not Recommended"
	}
}

type Analysis struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobDescription string         `gorm:"type:text" json:"job_description"`
	ResumeText     string         `gorm:"type:text" json:"resume_text"`
	Status         AnalysisStatus `gorm:"not null;default:'completed'" json:"status"`

	// RawResponse is the provider's text exactly as returned, aside from
	// surrounding whitespace trimming. Display and export read from the
	// parsed fields, never by re-mutating this.
	RawResponse string `gorm:"type:text" json:"raw_response"`

	RelevanceScore        int       `json:"relevance_score"`
	SkillsMatch           int       `json:"skills_match"`
	YearsExperience       string    `gorm:"type:text" json:"years_experience"`
	EducationLevel        string    `gorm:"type:text" json:"education_level"`
	MatchedSkills         SkillList `gorm:"type:jsonb" json:"matched_skills"`
	MissingSkills         SkillList `gorm:"type:jsonb" json:"missing_skills"`
	RecommendationSummary string    `gorm:"type:text" json:"recommendation_summary"`
	UsesActionVerbs       bool      `json:"uses_action_verbs"`
	HasQuantifiableResult bool      `json:"has_quantifiable_results"`
	RecommendationScore   int       `json:"recommendation_score"`

	// Local quality heuristics, computed without a provider call.
	WordCountStatus  string `gorm:"type:text" json:"word_count_status"`
	RepetitionStatus string `gorm:"type:text" json:"repetition_status"`

	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// Report returns the structured fields of a completed analysis.
func (a *Analysis) Report() *AnalysisReport {
	return &AnalysisReport{
		RelevanceScore:        a.RelevanceScore,
		SkillsMatch:           a.SkillsMatch,
		YearsExperience:       a.YearsExperience,
		EducationLevel:        a.EducationLevel,
		MatchedSkills:         a.MatchedSkills,
		MissingSkills:         a.MissingSkills,
		RecommendationSummary: a.RecommendationSummary,
		UsesActionVerbs:       a.UsesActionVerbs,
		HasQuantifiableResult: a.HasQuantifiableResult,
		RecommendationScore:   a.RecommendationScore,
	}
}
