package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/brand"
	"github.com/visibi/brand-monitor/internal/config"
	"github.com/visibi/brand-monitor/internal/history"
	"github.com/visibi/brand-monitor/internal/llm"
	"github.com/visibi/brand-monitor/internal/models"
	"github.com/visibi/brand-monitor/internal/notifications"
	"github.com/visibi/brand-monitor/internal/sentiment"
	"github.com/visibi/brand-monitor/internal/storage"
	"golang.org/x/sync/errgroup"
)

// scheduledRunTimeout bounds a whole scheduled run across all brands
const scheduledRunTimeout = 30 * time.Minute

// QueryError reports the monitoring query whose completion failed
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q failed: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Service runs brand analyses against the chat completion provider
type Service struct {
	config     *config.Config
	identifier BrandIdentifier
	completer  llm.ChatCompleter
	aggregator *sentiment.Aggregator
	history    history.Store
	storage    storage.StorageInterface
	notifier   notifications.ReportSender
	metrics    *Metrics
	mu         sync.RWMutex
}

// Ensure Service implements Analyzer
var _ Analyzer = (*Service)(nil)

// Metrics holds monitoring metrics
type Metrics struct {
	AnalysesRun        int            `json:"analyses_run"`
	PreviewsRun        int            `json:"previews_run"`
	ScheduledRuns      int            `json:"scheduled_runs"`
	QueriesRun         int            `json:"queries_run"`
	TotalTokens        int            `json:"total_tokens"`
	EstimatedCost      float64        `json:"estimated_cost"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	ErrorCount         int            `json:"error_count"`
	LastRun            time.Time      `json:"last_run"`
	LastRunDuration    string         `json:"last_run_duration"`
}

// NewService creates a new monitoring service. storage and notifier may be
// nil when scheduled runs are not used.
func NewService(
	cfg *config.Config,
	identifier BrandIdentifier,
	completer llm.ChatCompleter,
	history history.Store,
	storage storage.StorageInterface,
	notifier notifications.ReportSender,
) *Service {
	pricing := sentiment.Pricing{
		InputPerMillion:  cfg.InputCostPerMillion,
		OutputPerMillion: cfg.OutputCostPerMillion,
	}

	return &Service{
		config:     cfg,
		identifier: identifier,
		completer:  completer,
		aggregator: sentiment.NewAggregator(completer.Model(), pricing),
		history:    history,
		storage:    storage,
		notifier:   notifier,
		metrics: &Metrics{
			SentimentBreakdown: make(map[string]int),
		},
	}
}

func (s *Service) concurrency() int {
	if s.config.QueryConcurrency < 1 {
		return 1
	}
	return s.config.QueryConcurrency
}

// monitoringQueries returns req.Queries verbatim when given, otherwise the
// generated queries followed by competitor comparisons
func monitoringQueries(brandName string, req models.AnalyzeRequest) []string {
	if len(req.Queries) > 0 {
		return req.Queries
	}

	queries := brand.Generate(brandName, req.CustomKeywords, nil)
	return append(queries, brand.GenerateComparisons(brandName, req.Competitors)...)
}

// Analyze runs every monitoring query for the brand behind req.URL. The first
// failing query cancels the rest and fails the whole analysis.
func (s *Service) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	identity := s.identifier.Identify(ctx, req.URL)
	queries := monitoringQueries(identity.Name, req)

	logrus.WithFields(logrus.Fields{
		"brand":   identity.Name,
		"url":     req.URL,
		"queries": len(queries),
	}).Info("Starting brand analysis")

	analyses, usage, err := s.runQueries(ctx, identity.Name, queries)
	if err != nil {
		s.recordError()
		logrus.Errorf("Analysis of %s failed: %v", req.URL, err)
		return nil, err
	}

	summary, usageMetrics := s.aggregator.Aggregate(identity.Name, analyses, usage)

	response := &models.AnalysisResponse{
		ID:              uuid.NewString(),
		BrandName:       identity.Name,
		URL:             req.URL,
		Description:     identity.Description,
		Timestamp:       time.Now(),
		QueriesAnalyzed: len(queries),
		Analysis:        analyses,
		Summary:         summary,
		Usage:           usageMetrics,
	}

	if s.history != nil {
		s.history.Append(*response)
	}
	s.updateMetrics(response, time.Since(start))

	logrus.WithFields(logrus.Fields{
		"brand":      identity.Name,
		"mentions":   summary.MentionsCount,
		"visibility": summary.Visibility,
		"duration":   time.Since(start).String(),
	}).Info("Brand analysis completed")

	return response, nil
}

func (s *Service) runQueries(ctx context.Context, brandName string, queries []string) ([]models.QueryAnalysis, models.TokenUsage, error) {
	analyses := make([]models.QueryAnalysis, len(queries))
	usages := make([]models.TokenUsage, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())

	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			completion, err := s.completer.Complete(gctx, query)
			if err != nil {
				return &QueryError{Query: query, Err: err}
			}

			analyses[i] = models.QueryAnalysis{
				Query:     query,
				Response:  completion.Text,
				Sentiment: sentiment.Score(completion.Text, brandName),
			}
			usages[i] = completion.Usage
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, models.TokenUsage{}, err
	}

	var total models.TokenUsage
	for _, usage := range usages {
		total = total.Add(usage)
	}
	return analyses, total, nil
}

// notMentioned stands in for a preview query whose completion failed
func notMentioned(query string) models.QueryAnalysis {
	return models.QueryAnalysis{
		Query: query,
		Sentiment: models.SentimentResult{
			Mentioned:  false,
			Sentiment:  models.SentimentNotMentioned,
			Confidence: 1.0,
			Position:   -1,
		},
	}
}

// Preview runs an abbreviated analysis. Failing queries are replaced by a
// not-mentioned stub; only cancellation of ctx fails the preview.
func (s *Service) Preview(ctx context.Context, req models.PreviewRequest) (*models.PreviewData, error) {
	identity := s.identifier.Identify(ctx, req.BrandURL)

	queries := brand.Generate(identity.Name, req.CustomKeywords, req.CustomQueries)
	if limit := s.config.PreviewQueryLimit; limit > 0 && len(queries) > limit {
		queries = queries[:limit]
	}

	analyses := make([]models.QueryAnalysis, len(queries))
	usages := make([]models.TokenUsage, len(queries))

	var g errgroup.Group
	g.SetLimit(s.concurrency())

	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			completion, err := s.completer.Complete(ctx, query)
			if err != nil {
				logrus.Warnf("Preview query %q for %s failed: %v", query, identity.Name, err)
				analyses[i] = notMentioned(query)
				return nil
			}

			analyses[i] = models.QueryAnalysis{
				Query:     query,
				Response:  completion.Text,
				Sentiment: sentiment.Score(completion.Text, identity.Name),
			}
			usages[i] = completion.Usage
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var usage models.TokenUsage
	for _, u := range usages {
		usage = usage.Add(u)
	}
	summary, usageMetrics := s.aggregator.Aggregate(identity.Name, analyses, usage)

	preview := &models.PreviewData{
		BrandName:  identity.Name,
		Sentiment:  summary.OverallSentiment,
		Mentions:   summary.MentionsCount,
		Citations:  summary.CitationsCount,
		Visibility: sentiment.RoundVisibility(summary.Visibility),
	}

	if sample, ok := sampleAnalysis(analyses); ok {
		preview.SampleQuery = sample.Query
		preview.SampleResponse = sample.Response
	}

	for _, analysis := range analyses {
		preview.CitationURLs = append(preview.CitationURLs, models.QueryMention{
			Query:     analysis.Query,
			Mentioned: analysis.Sentiment.Mentioned,
		})
	}

	s.mu.Lock()
	s.metrics.PreviewsRun++
	s.metrics.QueriesRun += len(queries)
	s.metrics.TotalTokens += usageMetrics.TotalTokens
	s.metrics.EstimatedCost += usageMetrics.EstimatedCost
	s.mu.Unlock()

	return preview, nil
}

// sampleAnalysis picks the first mentioned analysis, else the first one
func sampleAnalysis(analyses []models.QueryAnalysis) (models.QueryAnalysis, bool) {
	if len(analyses) == 0 {
		return models.QueryAnalysis{}, false
	}
	for _, analysis := range analyses {
		if analysis.Sentiment.Mentioned {
			return analysis, true
		}
	}
	return analyses[0], true
}

// RunScheduled analyzes every monitored brand, stores the report and sends it
// through the notifier. A failing brand is recorded in the report.
func (s *Service) RunScheduled() error {
	if len(s.config.MonitoredBrands) == 0 {
		logrus.Info("No monitored brands configured, skipping scheduled run")
		return nil
	}

	start := time.Now()
	logrus.Infof("Starting scheduled run for %d brands", len(s.config.MonitoredBrands))

	ctx, cancel := context.WithTimeout(context.Background(), scheduledRunTimeout)
	defer cancel()

	report := &models.Report{
		GeneratedAt: time.Now(),
		Period:      s.reportPeriod(),
		Failures:    make(map[string]string),
	}

	for _, url := range s.config.MonitoredBrands {
		analysis, err := s.Analyze(ctx, models.AnalyzeRequest{URL: url})
		if err != nil {
			report.Failures[url] = err.Error()
			continue
		}
		report.Analyses = append(report.Analyses, *analysis)
	}

	if err := s.storeReport(report); err != nil {
		logrus.Errorf("Failed to store report: %v", err)
		return err
	}

	s.mu.Lock()
	s.metrics.ScheduledRuns++
	s.mu.Unlock()

	if s.notifier != nil {
		if err := s.notifier.SendReport(report); err != nil {
			logrus.Errorf("Failed to send report: %v", err)
			return err
		}
	}

	logrus.Infof("Scheduled run completed in %v: %d analyzed, %d failed",
		time.Since(start), len(report.Analyses), len(report.Failures))
	return nil
}

func (s *Service) reportPeriod() string {
	switch s.config.ReportSchedule {
	case "daily", "weekly":
		return s.config.ReportSchedule
	default:
		return "manual"
	}
}

func (s *Service) storeReport(report *models.Report) error {
	if s.storage == nil {
		return nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	filename := fmt.Sprintf("reports/report-%s.json", report.GeneratedAt.Format("2006-01-02-15-04-05"))
	return s.storage.Store(filename, data)
}

func (s *Service) updateMetrics(response *models.AnalysisResponse, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.AnalysesRun++
	s.metrics.QueriesRun += response.QueriesAnalyzed
	s.metrics.TotalTokens += response.Usage.TotalTokens
	s.metrics.EstimatedCost += response.Usage.EstimatedCost
	s.metrics.SentimentBreakdown[string(response.Summary.OverallSentiment)]++
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
}

func (s *Service) recordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.ErrorCount++
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
