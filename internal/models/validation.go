package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the WaitlistRequest using the validator.
func (r *WaitlistRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the BrandAnalysisRequest using the validator.
func (r *BrandAnalysisRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ContactRequest using the validator.
func (r *ContactRequest) Validate() error {
	return validate.Struct(r)
}
