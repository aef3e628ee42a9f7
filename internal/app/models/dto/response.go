package dto

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// APIResponse represents the standard envelope for API endpoints
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2026-03-10T12:01:05.123Z"`
}

// NewAPIResponse creates a success envelope around a payload
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

// HandleValidationError converts a validator error into an ErrorDetail
func HandleValidationError(err error) *ErrorDetail {
	errorDetail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			details = append(details, fieldError.Field()+" failed on the '"+fieldError.Tag()+"' rule")
		}
		return errorDetail.WithDetails(details)
	}

	return errorDetail.WithDetails(err.Error())
}
