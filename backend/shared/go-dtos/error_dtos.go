// backend/shared/go-dtos/error_dtos.go
package dtos

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail is a shared DTO for structured validation error responses.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewValidationErrorDetails flattens a validator error into response details.
// Errors that did not come from the validator yield nil.
func NewValidationErrorDetails(err error) []ValidationErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]ValidationErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationErrorDetail{
			Field:   fe.Field(),
			Message: "failed '" + fe.Tag() + "' validation",
			Code:    fe.Tag(),
		})
	}
	return out
}
