package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"joke-sheet/internal/models"
)

// Result is opaque metadata describing where a row was written.
type Result struct {
	Location string
}

// RowSink appends one row per call. Implementations do not retry.
type RowSink interface {
	Append(ctx context.Context, row models.Row) (Result, error)
}

// ErrorKind classifies sink failures.
type ErrorKind string

const (
	AuthenticationFailed ErrorKind = "authenticationFailed"
	ConfigurationMissing ErrorKind = "configurationMissing"
	TransportFailed      ErrorKind = "transportFailed"
)

// Error is returned by every sink when an append fails.
type Error struct {
	Kind    ErrorKind
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s append failed (%s): %v", e.Backend, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the underlying failure text, without the sink prefix.
func (e *Error) Message() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

// classifyAWSError maps AWS API error codes onto sink error kinds.
func classifyAWSError(err error) ErrorKind {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return TransportFailed
	}
	switch apiErr.ErrorCode() {
	case "AccessDeniedException", "AccessDenied", "UnrecognizedClientException",
		"InvalidClientTokenId", "ExpiredTokenException", "InvalidSignatureException":
		return AuthenticationFailed
	case "ResourceNotFoundException", "AWS.SimpleQueueService.NonExistentQueue", "QueueDoesNotExist":
		return ConfigurationMissing
	default:
		return TransportFailed
	}
}

func stringPtr(s string) *string {
	return &s
}
