package monitoring

import (
	"context"

	"github.com/visibi/brand-monitor/internal/models"
)

// BrandIdentifier resolves the brand behind a URL
type BrandIdentifier interface {
	Identify(ctx context.Context, url string) models.BrandIdentity
}

// Analyzer defines the contract for brand analysis services
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResponse, error)
	Preview(ctx context.Context, req models.PreviewRequest) (*models.PreviewData, error)
	GetMetrics() string
}
