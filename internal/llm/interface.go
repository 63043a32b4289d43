// Package llm talks to the chat completion provider that answers monitoring queries.
package llm

import (
	"context"

	"github.com/visibi/brand-monitor/internal/models"
)

// Completion is the text and token usage of one chat completion
type Completion struct {
	Text  string
	Usage models.TokenUsage
}

// ChatCompleter defines the contract for chat completion providers
type ChatCompleter interface {
	GetName() string
	Model() string
	Complete(ctx context.Context, prompt string) (Completion, error)
}
