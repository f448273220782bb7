package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobfit/resume-analyzer/internal/models"
	"jobfit/resume-analyzer/internal/repositories"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Analysis, error)
	FindSimilar(ctx context.Context, analysisID uuid.UUID, limit int) ([]models.SimilarAnalysis, error)
}

type analyzerService struct {
	analysisRepo  repositories.AnalysisRepository
	geminiService GeminiService
	similarity    SimilarityService
	promptBuilder *PromptBuilder
	timeout       time.Duration
	maxRetries    int
	temperature   float32
}

func NewAnalyzerService(
	analysisRepo repositories.AnalysisRepository,
	geminiService GeminiService,
	similarity SimilarityService,
	timeout time.Duration,
	maxRetries int,
	temperature float32,
) AnalyzerService {
	return &analyzerService{
		analysisRepo:  analysisRepo,
		geminiService: geminiService,
		similarity:    similarity,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
		maxRetries:    maxRetries,
		temperature:   temperature,
	}
}

// Analyze runs one synchronous analysis: validate inputs, call the provider,
// parse the JSON contract, compute local quality heuristics and persist the
// record. Empty inputs are rejected before any provider call.
func (s *analyzerService) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Analysis, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, models.ErrEmptyJobDescription
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, models.ErrEmptyResume
	}

	prompt := s.promptBuilder.BuildResumeAnalysisPrompt(req.ResumeText, req.JobDescription)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log.Printf("🤖 Requesting analysis from provider (prompt: %d characters)", len(prompt))

	raw, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, s.temperature, s.maxRetries)
	if err != nil {
		s.recordFailure(req, "", err)
		return nil, err
	}

	raw = strings.TrimSpace(raw)

	report, err := ParseAnalysisReport(raw)
	if err != nil {
		s.recordFailure(req, raw, err)
		return nil, err
	}

	analysis := &models.Analysis{
		ID:                    uuid.New(),
		JobDescription:        req.JobDescription,
		ResumeText:            req.ResumeText,
		Status:                models.StatusCompleted,
		RawResponse:           raw,
		RelevanceScore:        report.RelevanceScore,
		SkillsMatch:           report.SkillsMatch,
		YearsExperience:       report.YearsExperience,
		EducationLevel:        report.EducationLevel,
		MatchedSkills:         report.MatchedSkills,
		MissingSkills:         report.MissingSkills,
		RecommendationSummary: report.RecommendationSummary,
		UsesActionVerbs:       report.UsesActionVerbs,
		HasQuantifiableResult: report.HasQuantifiableResult,
		RecommendationScore:   report.RecommendationScore,
		WordCountStatus:       WordCountStatus(req.ResumeText),
		RepetitionStatus:      RepetitionStatus(req.ResumeText),
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}

	if err := s.analysisRepo.Create(analysis); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	s.indexForSimilarity(ctx, analysis)

	log.Printf("✅ Analysis %s completed (recommendation: %d%%)", analysis.ID, analysis.RecommendationScore)
	return analysis, nil
}

// FindSimilar returns prior analyses whose job descriptions are close to the
// given analysis's job description.
func (s *analyzerService) FindSimilar(ctx context.Context, analysisID uuid.UUID, limit int) ([]models.SimilarAnalysis, error) {
	if !s.similarity.Enabled() {
		return nil, fmt.Errorf("similarity search is not configured")
	}

	analysis, err := s.analysisRepo.FindByID(analysisID)
	if err != nil {
		return nil, err
	}

	query := s.promptBuilder.BuildSimilarityQuery(analysis.JobDescription)
	embedding, err := s.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	matches, err := s.similarity.FindSimilar(ctx, embedding, analysisID, limit)
	if err != nil {
		return nil, err
	}

	results := make([]models.SimilarAnalysis, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.SimilarAnalysis{
			ID:    m.AnalysisID,
			Score: m.Score,
		})
	}

	return results, nil
}

// recordFailure keeps failed attempts in the history with the raw response,
// when one exists, for debugging. Persistence errors here are only logged; the
// original failure is what the caller reports.
func (s *analyzerService) recordFailure(req models.AnalyzeRequest, raw string, cause error) {
	analysis := &models.Analysis{
		ID:             uuid.New(),
		JobDescription: req.JobDescription,
		ResumeText:     req.ResumeText,
		Status:         models.StatusFailed,
		RawResponse:    raw,
		ErrorMessage:   cause.Error(),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.analysisRepo.Create(analysis); err != nil {
		log.Printf("⚠️ Failed to record failed analysis: %v", err)
	}
}

// indexForSimilarity is best effort: the analysis already succeeded, so an
// indexing failure is logged and skipped.
func (s *analyzerService) indexForSimilarity(ctx context.Context, analysis *models.Analysis) {
	if !s.similarity.Enabled() {
		return
	}

	query := s.promptBuilder.BuildSimilarityQuery(analysis.JobDescription)
	embedding, err := s.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️ Failed to embed job description for %s: %v", analysis.ID, err)
		return
	}

	if err := s.similarity.IndexAnalysis(ctx, analysis.ID, embedding); err != nil {
		log.Printf("⚠️ Failed to index analysis %s: %v", analysis.ID, err)
	}
}
