package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfit/resume-analyzer/internal/models"
	"jobfit/resume-analyzer/internal/services"
)

type mockAnalyzer struct {
	analysis *models.Analysis
	err      error
	calls    int

	similar    []models.SimilarAnalysis
	similarErr error
}

func (m *mockAnalyzer) Analyze(_ context.Context, _ models.AnalyzeRequest) (*models.Analysis, error) {
	m.calls++
	return m.analysis, m.err
}

func (m *mockAnalyzer) FindSimilar(_ context.Context, _ uuid.UUID, _ int) ([]models.SimilarAnalysis, error) {
	return m.similar, m.similarErr
}

type memRepo struct {
	records map[uuid.UUID]*models.Analysis
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[uuid.UUID]*models.Analysis)}
}

func (r *memRepo) Create(analysis *models.Analysis) error {
	stored := *analysis
	r.records[analysis.ID] = &stored
	return nil
}

func (r *memRepo) FindByID(id uuid.UUID) (*models.Analysis, error) {
	analysis, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("analysis not found")
	}
	return analysis, nil
}

func (r *memRepo) ListRecent(limit int) ([]models.Analysis, error) {
	var out []models.Analysis
	for _, a := range r.records {
		if a.Status == models.StatusCompleted && len(out) < limit {
			out = append(out, *a)
		}
	}
	return out, nil
}

func completedAnalysis() *models.Analysis {
	return &models.Analysis{
		ID:                    uuid.New(),
		Status:                models.StatusCompleted,
		RawResponse:           `{"relevance_score": 45}`,
		RelevanceScore:        45,
		SkillsMatch:           33,
		YearsExperience:       "3 years",
		EducationLevel:        "Medium",
		MatchedSkills:         models.SkillList{"Docker"},
		MissingSkills:         models.SkillList{"Go", "Kubernetes"},
		RecommendationSummary: "Covers containers but lacks Go and Kubernetes.",
		RecommendationScore:   40,
		WordCountStatus:       "Too Short (7 words)",
		RepetitionStatus:      "Low",
	}
}

func newTestApp(analyzer services.AnalyzerService, repo *memRepo) *fiber.App {
	app := fiber.New()

	analyzeHandler := NewAnalyzeHandler(analyzer)
	resultHandler := NewResultHandler(repo, analyzer)
	reportHandler := NewReportHandler(repo)

	api := app.Group("/api/v1")
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/analyses", resultHandler.HandleListAnalyses)
	api.Get("/analyses/:id", resultHandler.HandleGetResult)
	api.Get("/analyses/:id/similar", resultHandler.HandleFindSimilar)
	api.Get("/analyses/:id/report", reportHandler.HandleDownloadReport)

	return app
}

func postAnalyze(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHandleAnalyze_MissingFields(t *testing.T) {
	analyzer := &mockAnalyzer{}
	app := newTestApp(analyzer, newMemRepo())

	resp := postAnalyze(t, app, `{"job_description": "Senior Backend Engineer"}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "input_validation", body["code"])
	assert.Zero(t, analyzer.calls, "no provider call on invalid input")
}

func TestHandleAnalyze_WhitespaceOnlyInput(t *testing.T) {
	analyzer := &mockAnalyzer{err: models.ErrEmptyResume}
	app := newTestApp(analyzer, newMemRepo())

	resp := postAnalyze(t, app, `{"job_description": "jd", "resume_text": "   "}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "input_validation", body["code"])
}

func TestHandleAnalyze_InvalidPayload(t *testing.T) {
	analyzer := &mockAnalyzer{}
	app := newTestApp(analyzer, newMemRepo())

	resp := postAnalyze(t, app, `{not json`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "invalid_payload", body["code"])
	assert.Zero(t, analyzer.calls)
}

func TestHandleAnalyze_Success(t *testing.T) {
	analysis := completedAnalysis()
	analyzer := &mockAnalyzer{analysis: analysis}
	app := newTestApp(analyzer, newMemRepo())

	resp := postAnalyze(t, app, `{"job_description": "Senior Backend Engineer, 5+ years Go, Kubernetes", "resume_text": "3 years experience with Python and Docker"}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, analysis.ID.String(), body["id"])
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, "Not Recommended", body["verdict"])
	// The displayed raw response equals the provider's output untouched.
	assert.Equal(t, analysis.RawResponse, body["raw_response"])
}

func TestHandleAnalyze_ProviderErrorMapping(t *testing.T) {
	tests := []struct {
		kind       models.ProviderErrorKind
		wantStatus int
	}{
		{models.ProviderErrTimeout, fiber.StatusGatewayTimeout},
		{models.ProviderErrRateLimit, fiber.StatusServiceUnavailable},
		{models.ProviderErrAuth, fiber.StatusBadGateway},
		{models.ProviderErrUnavailable, fiber.StatusBadGateway},
		{models.ProviderErrMalformed, fiber.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			analyzer := &mockAnalyzer{err: &models.ProviderError{Kind: tt.kind}}
			app := newTestApp(analyzer, newMemRepo())

			resp := postAnalyze(t, app, `{"job_description": "jd", "resume_text": "resume"}`)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, string(tt.kind), body["code"])
			assert.Nil(t, body["report"], "no stale or partial result on failure")
		})
	}
}

func TestHandleGetResult_InvalidID(t *testing.T) {
	app := newTestApp(&mockAnalyzer{}, newMemRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/not-a-uuid", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetResult_NotFound(t *testing.T) {
	app := newTestApp(&mockAnalyzer{}, newMemRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleGetResult_Completed(t *testing.T) {
	repo := newMemRepo()
	analysis := completedAnalysis()
	require.NoError(t, repo.Create(analysis))

	app := newTestApp(&mockAnalyzer{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+analysis.ID.String(), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, analysis.ID.String(), body["id"])
	assert.Equal(t, analysis.RawResponse, body["raw_response"])
}

func TestHandleGetResult_Failed(t *testing.T) {
	repo := newMemRepo()
	analysis := &models.Analysis{
		ID:           uuid.New(),
		Status:       models.StatusFailed,
		ErrorMessage: "provider error (timeout)",
	}
	require.NoError(t, repo.Create(analysis))

	app := newTestApp(&mockAnalyzer{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+analysis.ID.String(), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, "provider error (timeout)", body["error"])
	assert.Nil(t, body["report"])
}

func TestHandleDownloadReport_ByteIdentical(t *testing.T) {
	repo := newMemRepo()
	analysis := completedAnalysis()
	require.NoError(t, repo.Create(analysis))

	app := newTestApp(&mockAnalyzer{}, repo)

	download := func() []byte {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+analysis.ID.String()+"/report", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return body
	}

	first := download()
	second := download()

	assert.Equal(t, services.BuildReport(analysis), string(first))
	assert.Equal(t, first, second)
}

func TestHandleDownloadReport_FailedAnalysis(t *testing.T) {
	repo := newMemRepo()
	analysis := &models.Analysis{ID: uuid.New(), Status: models.StatusFailed}
	require.NoError(t, repo.Create(analysis))

	app := newTestApp(&mockAnalyzer{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+analysis.ID.String()+"/report", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestHandleListAnalyses(t *testing.T) {
	repo := newMemRepo()
	require.NoError(t, repo.Create(completedAnalysis()))
	require.NoError(t, repo.Create(completedAnalysis()))

	app := newTestApp(&mockAnalyzer{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	analyses, ok := body["analyses"].([]interface{})
	require.True(t, ok)
	assert.Len(t, analyses, 2)
}

func TestHandleFindSimilar(t *testing.T) {
	analyzer := &mockAnalyzer{
		similar: []models.SimilarAnalysis{{ID: uuid.NewString(), Score: 0.92}},
	}
	app := newTestApp(analyzer, newMemRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+uuid.NewString()+"/similar", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	similar, ok := body["similar"].([]interface{})
	require.True(t, ok)
	assert.Len(t, similar, 1)
}
