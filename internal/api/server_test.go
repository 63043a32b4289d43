package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/visibi/brand-monitor/internal/history"
	"github.com/visibi/brand-monitor/internal/llm"
	"github.com/visibi/brand-monitor/internal/models"
	"github.com/visibi/brand-monitor/internal/monitoring"
)

// MockAnalyzer is a mock implementation of monitoring.Analyzer
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResponse, error) {
	args := m.Called(ctx, req)
	response, _ := args.Get(0).(*models.AnalysisResponse)
	return response, args.Error(1)
}

func (m *MockAnalyzer) Preview(ctx context.Context, req models.PreviewRequest) (*models.PreviewData, error) {
	args := m.Called(ctx, req)
	preview, _ := args.Get(0).(*models.PreviewData)
	return preview, args.Error(1)
}

func (m *MockAnalyzer) GetMetrics() string {
	return `{"analyses_run": 2}`
}

// MockForms is a mock implementation of Forms
type MockForms struct {
	mock.Mock
}

func (m *MockForms) Join(ctx context.Context, req models.WaitlistRequest) (*models.WaitlistEntry, error) {
	args := m.Called(ctx, req)
	entry, _ := args.Get(0).(*models.WaitlistEntry)
	return entry, args.Error(1)
}

func (m *MockForms) RequestAnalysis(ctx context.Context, req models.BrandAnalysisRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockForms) Contact(ctx context.Context, req models.ContactRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockForms) Stats() (models.WaitlistStats, error) {
	args := m.Called()
	return args.Get(0).(models.WaitlistStats), args.Error(1)
}

// MockRunner is a mock implementation of scheduler.Runner
type MockRunner struct {
	mock.Mock
	done chan struct{}
}

func (m *MockRunner) RunScheduled() error {
	defer close(m.done)
	return m.Called().Error(0)
}

type testServer struct {
	analyzer *MockAnalyzer
	forms    *MockForms
	history  *history.MemoryStore
	handler  http.Handler
}

func newTestServer() *testServer {
	ts := &testServer{
		analyzer: &MockAnalyzer{},
		forms:    &MockForms{},
		history:  history.NewMemoryStore(),
	}
	ts.handler = NewServer(ts.analyzer, ts.history, ts.forms, nil).Handler()
	return ts
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer()
	rec := ts.do(http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "0.1.0", body.Version)
	assert.False(t, body.Timestamp.IsZero())
}

func TestHandleRootAndMetrics(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"0.1.0"`)

	rec = ts.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"analyses_run": 2}`, rec.Body.String())
}

func TestHandleAnalyze(t *testing.T) {
	ts := newTestServer()
	expected := &models.AnalysisResponse{ID: "abc", BrandName: "Slack", URL: "https://slack.com", QueriesAnalyzed: 5}
	ts.analyzer.On("Analyze", mock.Anything, models.AnalyzeRequest{URL: "https://slack.com", CustomKeywords: []string{"chat"}}).
		Return(expected, nil)

	rec := ts.do(http.MethodPost, "/api/brands/analyze", `{"url":"https://slack.com","custom_keywords":["chat"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Slack", body.BrandName)
	assert.Equal(t, 5, body.QueriesAnalyzed)
}

func TestHandleAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{
			name:       "Validation",
			err:        (&models.AnalyzeRequest{}).Validate(),
			wantStatus: http.StatusBadRequest,
			wantKind:   KindValidation,
		},
		{
			name:       "Provider unavailable",
			err:        &monitoring.QueryError{Query: "q", Err: llm.ErrProviderUnavailable},
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   KindProviderUnavailable,
		},
		{
			name:       "Provider error",
			err:        &monitoring.QueryError{Query: "q", Err: &llm.ProviderError{StatusCode: 429, Message: "rate limited"}},
			wantStatus: http.StatusBadGateway,
			wantKind:   KindProviderError,
		},
		{
			name:       "Deadline",
			err:        fmt.Errorf("completion: %w", context.DeadlineExceeded),
			wantStatus: http.StatusBadGateway,
			wantKind:   KindProviderError,
		},
		{
			name:       "Internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()
			ts.analyzer.On("Analyze", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := ts.do(http.MethodPost, "/api/brands/analyze", `{"url":"https://slack.com"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantKind, decodeError(t, rec).Kind)
		})
	}
}

func TestHandleAnalyze_Timeout(t *testing.T) {
	ts := newTestServer()
	ts.handler = NewServer(ts.analyzer, ts.history, ts.forms, nil).
		WithAnalyzeTimeout(20 * time.Millisecond).
		Handler()

	var hasDeadline bool
	ts.analyzer.On("Analyze", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, hasDeadline = ctx.Deadline()
			<-ctx.Done()
		}).
		Return(nil, context.DeadlineExceeded)

	rec := ts.do(http.MethodPost, "/api/brands/analyze", `{"url":"https://slack.com"}`)

	assert.True(t, hasDeadline)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, KindProviderError, decodeError(t, rec).Kind)
}

func TestHandleAnalyze_MalformedBody(t *testing.T) {
	ts := newTestServer()
	rec := ts.do(http.MethodPost, "/api/brands/analyze", `{"url":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, KindValidation, body.Kind)
	assert.Contains(t, body.Detail, "invalid request body")
	ts.analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestHandleHistory(t *testing.T) {
	ts := newTestServer()
	for _, brand := range []string{"Slack", "Notion", "Linear"} {
		ts.history.Append(models.AnalysisResponse{BrandName: brand})
	}

	rec := ts.do(http.MethodGet, "/api/brands/history?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalCount)
	require.Len(t, body.Analyses, 2)
	assert.Equal(t, "Linear", body.Analyses[0].BrandName)

	rec = ts.do(http.MethodGet, "/api/brands/history?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodDelete, "/api/brands/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared ClearHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cleared))
	assert.Equal(t, 3, cleared.ItemsDeleted)

	rec = ts.do(http.MethodGet, "/api/brands/history", "")
	assert.JSONEq(t, `{"analyses":[],"total_count":0}`, rec.Body.String())
}

func TestHandleWaitlist(t *testing.T) {
	ts := newTestServer()
	preview := &models.PreviewData{BrandName: "Slack", Visibility: 66.7}
	ts.forms.On("Join", mock.Anything, models.WaitlistRequest{Email: "me@example.com", BrandURL: "https://slack.com"}).
		Return(&models.WaitlistEntry{Email: "me@example.com", Status: models.WaitlistSent, PreviewData: preview}, nil)

	rec := ts.do(http.MethodPost, "/api/waitlist", `{"email":"me@example.com","brand_url":"https://slack.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body WaitlistResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.WaitlistSent, body.Status)
	assert.Equal(t, 66.7, body.Preview.Visibility)
}

func TestHandleWaitlistStats(t *testing.T) {
	ts := newTestServer()
	ts.forms.On("Stats").Return(models.WaitlistStats{Total: 3, Pending: 1, Sent: 2}, nil)

	rec := ts.do(http.MethodGet, "/api/waitlist/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":3,"pending":1,"sent":2,"error":0}`, rec.Body.String())
}

func TestHandleForms(t *testing.T) {
	ts := newTestServer()
	ts.forms.On("RequestAnalysis", mock.Anything, mock.AnythingOfType("models.BrandAnalysisRequest")).Return(nil)
	ts.forms.On("Contact", mock.Anything, mock.AnythingOfType("models.ContactRequest")).
		Return((&models.ContactRequest{Email: "ada@example.com"}).Validate())

	rec := ts.do(http.MethodPost, "/api/brand-analysis", `{"email":"me@example.com","brand_url":"https://slack.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Brand analysis request received")

	rec = ts.do(http.MethodPost, "/api/send-email", `{"email":"ada@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, KindValidation, body.Kind)
	assert.Contains(t, body.Detail, "name is required")
	assert.Contains(t, body.Detail, "message is required")
}

func TestCORS(t *testing.T) {
	ts := newTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/api/brands/analyze", nil)
	req.Header.Set("Origin", "https://app.visibi.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.visibi.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = ts.do(http.MethodGet, "/health", "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer()
	rec := ts.do(http.MethodGet, "/api/brands/analyze", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleTrigger(t *testing.T) {
	runner := &MockRunner{done: make(chan struct{})}
	runner.On("RunScheduled").Return(nil).Once()

	handler := NewServer(&MockAnalyzer{}, history.NewMemoryStore(), &MockForms{}, runner).Handler()

	req := httptest.NewRequest(http.MethodPost, "/trigger", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	<-runner.done
	runner.AssertExpectations(t)
}

func TestTriggerDisabledWithoutRunner(t *testing.T) {
	ts := newTestServer()
	rec := ts.do(http.MethodPost, "/trigger", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
