package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Version is reported by the root and health endpoints.
const Version = "0.1.0"

// AppName is the display name used in logs and responses
const AppName = "VISIBI - AI Brand Monitor"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// LLM provider configuration
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	MaxTokens      int
	Temperature    float64
	RequestTimeout time.Duration

	// Analysis configuration
	PageFetchTimeout     time.Duration
	QueryConcurrency     int
	PreviewQueryLimit    int
	InputCostPerMillion  float64
	OutputCostPerMillion float64

	// Storage configuration
	StorageBackend   string // "file" or "azure"
	DataDir          string
	StorageAccount   string
	StorageContainer string

	// Notification configuration
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	FromEmail       string
	AdminEmail      string
	TeamsWebhookURL string

	// Scheduled monitoring
	MonitoredBrands []string
	ReportSchedule  string // "off", "daily" or "weekly"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		MaxTokens:      getIntEnv("MAX_TOKENS", 500),
		Temperature:    getFloatEnv("TEMPERATURE", 0.7),
		RequestTimeout: time.Duration(getIntEnv("REQUEST_TIMEOUT", 30)) * time.Second,

		PageFetchTimeout:     time.Duration(getIntEnv("PAGE_FETCH_TIMEOUT", 5)) * time.Second,
		QueryConcurrency:     getIntEnv("QUERY_CONCURRENCY", 4),
		PreviewQueryLimit:    getIntEnv("PREVIEW_QUERY_LIMIT", 10),
		InputCostPerMillion:  getFloatEnv("INPUT_COST_PER_MILLION", 0.150),
		OutputCostPerMillion: getFloatEnv("OUTPUT_COST_PER_MILLION", 0.600),

		StorageBackend:   getEnv("STORAGE_BACKEND", "file"),
		DataDir:          getEnv("DATA_DIR", "data"),
		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "visibi"),

		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getIntEnv("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USER", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		FromEmail:       getEnv("FROM_EMAIL", ""),
		AdminEmail:      getEnv("ADMIN_EMAIL", ""),
		TeamsWebhookURL: getEnv("TEAMS_WEBHOOK_URL", ""),

		MonitoredBrands: getSliceEnv("MONITORED_BRANDS", nil),
		ReportSchedule:  getEnv("REPORT_SCHEDULE", "off"),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.ReportSchedule {
	case "off", "daily", "weekly":
	default:
		return fmt.Errorf("REPORT_SCHEDULE must be 'off', 'daily' or 'weekly'")
	}

	switch c.StorageBackend {
	case "file":
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required when STORAGE_BACKEND is 'file'")
		}
	case "azure":
		if c.StorageAccount == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT is required when STORAGE_BACKEND is 'azure'")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be 'file' or 'azure'")
	}

	if c.QueryConcurrency < 1 {
		return fmt.Errorf("QUERY_CONCURRENCY must be at least 1")
	}

	if c.PreviewQueryLimit < 1 {
		return fmt.Errorf("PREVIEW_QUERY_LIMIT must be at least 1")
	}

	if c.InputCostPerMillion < 0 || c.OutputCostPerMillion < 0 {
		return fmt.Errorf("token prices cannot be negative")
	}

	return nil
}

// SMTPConfigured reports whether every setting needed to send real e-mail is present.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != "" && c.FromEmail != ""
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}
	return defaultValue
}
