package models

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestWaitlistRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     WaitlistRequest
		wantErr bool
	}{
		{name: "Valid", req: WaitlistRequest{Email: "me@example.com", BrandURL: "https://slack.com"}},
		{name: "Malformed email", req: WaitlistRequest{Email: "not-an-email", BrandURL: "https://slack.com"}, wantErr: true},
		{name: "Missing URL", req: WaitlistRequest{Email: "me@example.com"}, wantErr: true},
		{name: "Missing email", req: WaitlistRequest{BrandURL: "https://slack.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				var validationErrs validator.ValidationErrors
				assert.True(t, errors.As(err, &validationErrs))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyzeRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AnalyzeRequest{URL: "https://slack.com"}).Validate())
	assert.Error(t, (&AnalyzeRequest{}).Validate())
}

func TestContactRequest_Validate(t *testing.T) {
	valid := ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "Hello"}
	assert.NoError(t, valid.Validate())

	missingMessage := valid
	missingMessage.Message = ""
	assert.Error(t, missingMessage.Validate())
}

func TestTokenUsage_Add(t *testing.T) {
	total := TokenUsage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3}.
		Add(TokenUsage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30})
	assert.Equal(t, TokenUsage{PromptTokens: 11, CompletionTokens: 22, TotalTokens: 33}, total)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	err := (&WaitlistRequest{BrandURL: "https://slack.com"}).Validate()

	var validationErrs validator.ValidationErrors
	if assert.True(t, errors.As(err, &validationErrs)) {
		assert.Equal(t, "email", validationErrs[0].Field())
		assert.Equal(t, "required", validationErrs[0].Tag())
	}
}
