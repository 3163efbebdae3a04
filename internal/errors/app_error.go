package errors

import (
	"fmt"
	"net/http"
	"strings"

	"joke-sheet/internal/schema"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindConfiguration  Kind = "configurationError"
	KindPayloadMissing Kind = "payloadMissing"
	KindValidation     Kind = "validationError"
	KindSink           Kind = "sinkError"
)

// AppError represents an application error
type AppError struct {
	Kind       Kind
	Message    string
	StatusCode int
	Violations []schema.Violation
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewConfigurationError reports missing deployment configuration. Each item is
// rendered with the missingConfig template.
func NewConfigurationError(items []string, err error) *AppError {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, schema.Render(schema.MissingConfig, schema.MessageContext{Label: item}))
	}
	message := strings.Join(lines, "\n")
	if message == "" {
		message = "Palvelun asetukset ovat virheelliset"
	}
	return &AppError{
		Kind:       KindConfiguration,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

// NewPayloadMissingError reports a request without a body.
func NewPayloadMissingError() *AppError {
	return &AppError{
		Kind:       KindPayloadMissing,
		Message:    "Pyynnön runko puuttuu",
		StatusCode: http.StatusBadRequest,
	}
}

// NewValidationError carries every violation found in the payload.
func NewValidationError(violations []schema.Violation) *AppError {
	message := fmt.Sprintf("Lomakkeessa on %d virhettä", len(violations))
	if len(violations) == 1 {
		message = violations[0].Message
	}
	return &AppError{
		Kind:       KindValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Violations: violations,
	}
}

// NewSinkError reports a failed append. The message is what the caller sees.
func NewSinkError(message string, err error) *AppError {
	return &AppError{
		Kind:       KindSink,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}
