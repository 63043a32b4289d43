package sentiment

import (
	"strconv"

	"github.com/visibi/brand-monitor/internal/models"
)

// Pricing is the USD cost per million tokens for one model.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// DefaultPricing matches gpt-4o-mini list prices.
var DefaultPricing = Pricing{InputPerMillion: 0.150, OutputPerMillion: 0.600}

// Cost estimates the USD cost of usage, rounded to 6 decimals.
func (p Pricing) Cost(promptTokens, completionTokens int) float64 {
	cost := float64(promptTokens)/1_000_000*p.InputPerMillion +
		float64(completionTokens)/1_000_000*p.OutputPerMillion
	return roundTo(cost, 6)
}

// Aggregator turns per-query results into summary and usage metrics.
type Aggregator struct {
	Model   string
	Pricing Pricing
}

// NewAggregator creates an aggregator reporting usage for model
func NewAggregator(model string, pricing Pricing) *Aggregator {
	return &Aggregator{Model: model, Pricing: pricing}
}

// Aggregate summarises analyses for brandName. An empty slice is valid and
// yields zeroed metrics with a NEUTRAL overall sentiment.
func (a *Aggregator) Aggregate(brandName string, analyses []models.QueryAnalysis, usage models.TokenUsage) (models.SummaryMetrics, models.UsageMetrics) {
	summary := models.SummaryMetrics{TotalQueries: len(analyses)}

	var confidenceSum float64
	for _, analysis := range analyses {
		result := analysis.Sentiment

		// Citations are counted from the raw text regardless of the mention verdict
		summary.CitationsCount += CountOccurrences(analysis.Response, brandName)

		if result.Mentioned {
			summary.MentionsCount++
			confidenceSum += result.Confidence
		}

		switch result.Sentiment {
		case models.SentimentPositive:
			summary.Positive++
		case models.SentimentNegative:
			summary.Negative++
		case models.SentimentNeutral:
			summary.Neutral++
		}
	}

	summary.OverallSentiment = verdict(summary.Positive, summary.Negative)

	if summary.TotalQueries > 0 {
		summary.Visibility = float64(summary.MentionsCount) / float64(summary.TotalQueries) * 100
	}

	if summary.MentionsCount > 0 {
		summary.AverageConfidence = roundTo(confidenceSum/float64(summary.MentionsCount), 2)
	}

	return summary, a.Usage(usage)
}

// Usage prices raw token counts.
func (a *Aggregator) Usage(usage models.TokenUsage) models.UsageMetrics {
	return models.UsageMetrics{
		Model:            a.Model,
		TotalTokens:      usage.PromptTokens + usage.CompletionTokens,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		EstimatedCost:    a.Pricing.Cost(usage.PromptTokens, usage.CompletionTokens),
	}
}

// roundTo rounds the exact binary value, sending ties to the even digit
func roundTo(value float64, places int) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(value, 'f', places, 64), 64)
	return rounded
}

// RoundVisibility rounds a visibility percentage to one decimal place.
func RoundVisibility(visibility float64) float64 {
	return roundTo(visibility, 1)
}
