// backend/shared/go-utils/errors.go
package utils

import (
	"errors"
	"net/http"
)

// ErrRowVersionConflict is returned when an optimistic update keeps losing
// to concurrent writers.
var ErrRowVersionConflict = errors.New("row_version_conflict")

// AppError carries the HTTP mapping of a service failure up to the controller.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{StatusCode: status, Code: code, Message: message, Err: err}
}

// HandleAppError writes err as a JSON error body. Errors that are not an
// *AppError become a generic 500.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}
	RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
}
