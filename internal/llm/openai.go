package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/models"
)

// ErrProviderUnavailable is returned when no API key or client is configured.
var ErrProviderUnavailable = errors.New("chat completion provider is not configured")

// ProviderError is a non-2xx reply from the chat completion API
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("chat completion API returned status %d: %s", e.StatusCode, e.Message)
}

// OpenAIConfig configures an OpenAIClient
type OpenAIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// OpenAIClient implements ChatCompleter against the OpenAI chat completions API
type OpenAIClient struct {
	config OpenAIConfig
	client *resty.Client
}

// Ensure OpenAIClient implements ChatCompleter
var _ ChatCompleter = (*OpenAIClient)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage models.TokenUsage `json:"usage"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewOpenAIClient creates a new OpenAI chat completion client
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &OpenAIClient{
		config: cfg,
		client: resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetTimeout(cfg.Timeout).
			SetAuthToken(cfg.APIKey).
			SetHeader("Content-Type", "application/json").
			SetHeader("User-Agent", "VISIBI-Brand-Monitor/1.0"),
	}
}

func (c *OpenAIClient) GetName() string {
	return "openai"
}

func (c *OpenAIClient) Model() string {
	return c.config.Model
}

func (c *OpenAIClient) IsEnabled() bool {
	return c.config.APIKey != ""
}

// Complete sends prompt as a single user message
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (Completion, error) {
	if !c.IsEnabled() {
		return Completion{}, ErrProviderUnavailable
	}

	var result chatResponse
	var apiErr apiErrorBody

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       c.config.Model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			MaxTokens:   c.config.MaxTokens,
			Temperature: c.config.Temperature,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/chat/completions")

	if err != nil {
		return Completion{}, fmt.Errorf("failed to call chat completion API: %w", err)
	}

	if resp.IsError() {
		message := apiErr.Error.Message
		if message == "" {
			message = string(resp.Body())
		}
		return Completion{}, &ProviderError{StatusCode: resp.StatusCode(), Message: message}
	}

	if len(result.Choices) == 0 {
		return Completion{}, fmt.Errorf("chat completion API returned no choices")
	}

	logrus.WithFields(logrus.Fields{
		"model":             c.config.Model,
		"prompt_tokens":     result.Usage.PromptTokens,
		"completion_tokens": result.Usage.CompletionTokens,
	}).Debug("Chat completion finished")

	return Completion{
		Text:  result.Choices[0].Message.Content,
		Usage: result.Usage,
	}, nil
}
