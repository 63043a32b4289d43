package models

import "time"

// Sentiment is the verdict for a single response or a whole analysis
type Sentiment string

const (
	SentimentPositive     Sentiment = "POSITIVE"
	SentimentNegative     Sentiment = "NEGATIVE"
	SentimentNeutral      Sentiment = "NEUTRAL"
	SentimentNotMentioned Sentiment = "NOT_MENTIONED"
)

// BrandIdentity is the brand derived for one analysis request
type BrandIdentity struct {
	Name        string `json:"brand_name"`
	SourceURL   string `json:"url"`
	Description string `json:"description,omitempty"`
}

// SentimentResult is the keyword score of one response for one brand
type SentimentResult struct {
	Mentioned          bool      `json:"mentioned"`
	Sentiment          Sentiment `json:"sentiment"`
	Confidence         float64   `json:"confidence"`
	Position           int       `json:"position"` // rune offset of the first match, -1 if absent
	PositiveIndicators int       `json:"positive_indicators"`
	NegativeIndicators int       `json:"negative_indicators"`
}

// QueryAnalysis pairs an executed monitoring query with its response and score
type QueryAnalysis struct {
	Query     string          `json:"query"`
	Response  string          `json:"response"`
	Sentiment SentimentResult `json:"sentiment_analysis"`
}

// TokenUsage is the token count reported by the LLM provider
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add returns the element-wise sum of two usages
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
	}
}

// SummaryMetrics aggregates every QueryAnalysis of a run
type SummaryMetrics struct {
	TotalQueries      int       `json:"total_queries"`
	MentionsCount     int       `json:"mentions_count"`
	CitationsCount    int       `json:"citations_count"`
	Visibility        float64   `json:"visibility"` // percentage of queries mentioning the brand
	Positive          int       `json:"positive"`
	Negative          int       `json:"negative"`
	Neutral           int       `json:"neutral"`
	OverallSentiment  Sentiment `json:"overall_sentiment"`
	AverageConfidence float64   `json:"average_confidence"`
}

// UsageMetrics is the token usage and cost estimate of a run
type UsageMetrics struct {
	Model            string  `json:"model"`
	TotalTokens      int     `json:"total_tokens"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	EstimatedCost    float64 `json:"estimated_cost"` // USD
}

// AnalysisResponse is the full result of an Analyze call
type AnalysisResponse struct {
	ID              string          `json:"id"`
	BrandName       string          `json:"brand_name"`
	URL             string          `json:"url"`
	Description     string          `json:"description,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	QueriesAnalyzed int             `json:"queries_analyzed"`
	Analysis        []QueryAnalysis `json:"analysis"`
	Summary         SummaryMetrics  `json:"summary"`
	Usage           UsageMetrics    `json:"usage"`
}

// QueryMention records whether one preview query mentioned the brand
type QueryMention struct {
	Query     string `json:"query"`
	Mentioned bool   `json:"mentioned"`
}

// PreviewData is the abbreviated analysis attached to a waitlist entry
type PreviewData struct {
	BrandName      string         `json:"brand_name"`
	Sentiment      Sentiment      `json:"sentiment"`
	Mentions       int            `json:"mentions"`
	Citations      int            `json:"citations"`
	Visibility     float64        `json:"visibility"` // one decimal place
	SampleQuery    string         `json:"sample_query,omitempty"`
	SampleResponse string         `json:"sample_response,omitempty"`
	CitationURLs   []QueryMention `json:"citation_urls,omitempty"`
}

// WaitlistStatus tracks whether the confirmation e-mail went out
type WaitlistStatus string

const (
	WaitlistPending WaitlistStatus = "pending"
	WaitlistSent    WaitlistStatus = "sent"
	WaitlistError   WaitlistStatus = "error"
)

// WaitlistEntry is one persisted waitlist submission
type WaitlistEntry struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	BrandURL    string         `json:"brand_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Status      WaitlistStatus `json:"status"`
	PreviewData *PreviewData   `json:"preview_data,omitempty"`
}

// WaitlistStats counts entries by status
type WaitlistStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Sent    int `json:"sent"`
	Error   int `json:"error"`
}

// Report is the result of a scheduled monitoring run
type Report struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Period      string             `json:"period"` // "daily", "weekly" or "manual"
	Analyses    []AnalysisResponse `json:"analyses"`
	Failures    map[string]string  `json:"failures,omitempty"` // brand URL -> error
}

// AnalyzeRequest is the input of a full brand analysis
type AnalyzeRequest struct {
	URL            string   `json:"url" validate:"required"`
	Queries        []string `json:"queries,omitempty"`
	CustomKeywords []string `json:"custom_keywords,omitempty"`
	Competitors    []string `json:"competitors,omitempty"`
}

// WaitlistRequest is a waitlist sign-up with an optional query customisation
type WaitlistRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	BrandURL       string   `json:"brand_url" validate:"required"`
	CustomQueries  []string `json:"custom_queries,omitempty"`
	CustomKeywords []string `json:"custom_keywords,omitempty"`
}

// BrandAnalysisRequest asks for a full report to be prepared offline
type BrandAnalysisRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	BrandURL       string   `json:"brand_url" validate:"required"`
	CustomQueries  []string `json:"custom_queries,omitempty"`
	CustomKeywords []string `json:"custom_keywords,omitempty"`
}

// ContactRequest is a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Company string `json:"company"`
	Email   string `json:"email" validate:"required,email"`
	Topic   string `json:"topic"`
	Message string `json:"message" validate:"required"`
}

// PreviewRequest is the input of an abbreviated preview analysis
type PreviewRequest struct {
	BrandURL       string   `json:"brand_url"`
	CustomQueries  []string `json:"custom_queries,omitempty"`
	CustomKeywords []string `json:"custom_keywords,omitempty"`
}

// PreviewRequest returns the preview input of a waitlist sign-up
func (r WaitlistRequest) PreviewRequest() PreviewRequest {
	return PreviewRequest{
		BrandURL:       r.BrandURL,
		CustomQueries:  r.CustomQueries,
		CustomKeywords: r.CustomKeywords,
	}
}
