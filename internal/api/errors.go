package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/visibi/brand-monitor/internal/llm"
)

// Error kinds returned in ErrorResponse.Kind
const (
	KindValidation          = "validation_error"
	KindProviderUnavailable = "provider_unavailable"
	KindProviderError       = "provider_error"
	KindInternal            = "internal_error"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// ErrBadRequest indicates a malformed request body or parameter
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// classify maps an error to its HTTP status and response body
func classify(err error) (int, ErrorResponse) {
	var validationErrs validator.ValidationErrors
	var badRequest *ErrBadRequest
	var providerErr *llm.ProviderError

	switch {
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, ErrorResponse{Kind: KindValidation, Detail: validationDetail(validationErrs)}
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, ErrorResponse{Kind: KindValidation, Detail: badRequest.Message}
	case errors.Is(err, llm.ErrProviderUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Kind: KindProviderUnavailable, Detail: err.Error()}
	case errors.As(err, &providerErr), errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway, ErrorResponse{Kind: KindProviderError, Detail: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Kind: KindInternal, Detail: err.Error()}
	}
}

func validationDetail(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fe.Field()+" is required")
		case "email":
			messages = append(messages, fe.Field()+" must be a valid email address")
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(messages, "; ")
}
