package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/brand"
	"github.com/visibi/brand-monitor/internal/config"
	"github.com/visibi/brand-monitor/internal/history"
	"github.com/visibi/brand-monitor/internal/llm"
	"github.com/visibi/brand-monitor/internal/models"
	"github.com/visibi/brand-monitor/internal/monitoring"
	"github.com/visibi/brand-monitor/internal/sentiment"
	"github.com/visibi/brand-monitor/internal/storage"
)

const outputDir = "test_output"

// sampleResponses are answered to the default queries, in order
var sampleResponses = []string{
	"Slack is a great tool. I use Slack every day and Slack's interface is intuitive.",
	"For team communication, there are many options available.",
	"Slack offers excellent features. Many companies rely on Slack for remote work.",
	"Microsoft Teams is also popular.",
	"Slack, Slack, and more Slack - it's everywhere in the tech industry!",
}

// CannedCompleter answers known prompts without calling a provider
type CannedCompleter struct {
	responses map[string]string
}

func (c *CannedCompleter) GetName() string {
	return "canned"
}

func (c *CannedCompleter) Model() string {
	return "gpt-4o-mini"
}

func (c *CannedCompleter) Complete(ctx context.Context, prompt string) (llm.Completion, error) {
	text, ok := c.responses[prompt]
	if !ok {
		return llm.Completion{}, fmt.Errorf("no canned response for %q", prompt)
	}

	usage := models.TokenUsage{PromptTokens: len(strings.Fields(prompt)) * 2, CompletionTokens: len(strings.Fields(text)) * 2}
	usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	return llm.Completion{Text: text, Usage: usage}, nil
}

// TerminalReportSender prints reports to the terminal
type TerminalReportSender struct{}

func (t *TerminalReportSender) SendReport(report *models.Report) error {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("📊 CITATIONS vs MENTIONS")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("🕒 Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	for _, analysis := range report.Analyses {
		fmt.Printf("\nBrand: %s (%s)\n", analysis.BrandName, analysis.URL)
		fmt.Printf("Total Queries: %d\n", analysis.QueriesAnalyzed)

		for i, qa := range analysis.Analysis {
			fmt.Printf("\n   %d. %s\n", i+1, qa.Query)
			fmt.Printf("      Response: %s\n", truncate(qa.Response, 60))
			fmt.Printf("      Brand Mentioned: %t | Occurrences: %d | Sentiment: %s\n",
				qa.Sentiment.Mentioned, sentiment.CountOccurrences(qa.Response, analysis.BrandName), qa.Sentiment.Sentiment)
		}

		fmt.Println("\n" + strings.Repeat("-", 70))
		fmt.Printf("Mentions:   %d (responses where the brand appeared)\n", analysis.Summary.MentionsCount)
		fmt.Printf("Citations:  %d (total brand occurrences across all responses)\n", analysis.Summary.CitationsCount)
		fmt.Printf("Visibility: %.1f%%\n", analysis.Summary.Visibility)
		fmt.Printf("Sentiment:  %s (confidence %.2f)\n", analysis.Summary.OverallSentiment, analysis.Summary.AverageConfidence)
		fmt.Printf("Usage:      %d tokens, estimated $%.6f\n", analysis.Usage.TotalTokens, analysis.Usage.EstimatedCost)
	}

	for url, reason := range report.Failures {
		fmt.Printf("\n⚠️  %s failed: %s\n", url, reason)
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	return nil
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}

func main() {
	fmt.Println("🤖 VISIBI - Test Report Generator")
	fmt.Println("=================================")

	logrus.SetLevel(logrus.WarnLevel)

	cfg := &config.Config{
		QueryConcurrency:     2,
		PreviewQueryLimit:    10,
		InputCostPerMillion:  sentiment.DefaultPricing.InputPerMillion,
		OutputCostPerMillion: sentiment.DefaultPricing.OutputPerMillion,
		MonitoredBrands:      []string{"https://slack.com"},
		ReportSchedule:       "off",
	}

	// URL derivation only, no network access
	identifier := brand.NewIdentifier(nil, 0)

	queries := brand.Generate(brand.DeriveNameFromURL(cfg.MonitoredBrands[0]), nil, nil)
	responses := make(map[string]string, len(queries))
	for i, query := range queries {
		responses[query] = sampleResponses[i%len(sampleResponses)]
	}

	fileStorage, err := storage.NewFileStorage(outputDir)
	if err != nil {
		fmt.Printf("❌ Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	service := monitoring.NewService(cfg, identifier, &CannedCompleter{responses: responses},
		history.NewMemoryStore(), fileStorage, &TerminalReportSender{})

	fmt.Printf("\n📊 Running a canned analysis of %s...\n", cfg.MonitoredBrands[0])

	if err := service.RunScheduled(); err != nil {
		fmt.Printf("❌ Error generating report: %v\n", err)
		os.Exit(1)
	}

	reports, err := fileStorage.List("reports/")
	if err == nil && len(reports) > 0 {
		fmt.Printf("\n💾 Report saved to: %s/%s\n", outputDir, reports[len(reports)-1])
	}

	fmt.Println("\n✅ Test report generation completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Check the 'test_output' directory for the saved JSON report")
	fmt.Println("   • Run 'go test ./internal/...' for the full test suite")
	fmt.Println("   • Set OPENAI_API_KEY and run the server with 'go run ./cmd/visibi'")
}
