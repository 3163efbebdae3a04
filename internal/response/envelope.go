package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	apperrors "joke-sheet/internal/errors"
	"joke-sheet/internal/schema"
)

const (
	// SuccessMarker is the body payload of a successful submission.
	SuccessMarker = "OK"

	AllowedHeaders = "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token"
)

// Body is the JSON body returned to the caller.
type Body struct {
	Data       string             `json:"data,omitempty"`
	Error      apperrors.Kind     `json:"error,omitempty"`
	Message    string             `json:"message,omitempty"`
	Errors     []string           `json:"errors,omitempty"`
	Violations []schema.Violation `json:"violations,omitempty"`
}

// Envelope is the transport-agnostic result of one invocation.
type Envelope struct {
	StatusCode int
	Headers    map[string]string
	Body       Body
}

// Headers returns the CORS and content headers sent with every response.
func Headers() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Allow-Headers":     AllowedHeaders,
		"Content-Type":                     "application/json",
	}
}

// Success builds the 200 envelope.
func Success() Envelope {
	return Envelope{
		StatusCode: http.StatusOK,
		Headers:    Headers(),
		Body:       Body{Data: SuccessMarker},
	}
}

// Failure builds the error envelope. Errors that are not *AppError are reported
// with a generic message so no internal detail reaches the caller.
func Failure(err error) Envelope {
	var appErr *apperrors.AppError
	if !stderrors.As(err, &appErr) {
		return Envelope{
			StatusCode: http.StatusBadRequest,
			Headers:    Headers(),
			Body:       Body{Message: "Pyyntö epäonnistui"},
		}
	}

	body := Body{
		Error:   appErr.Kind,
		Message: appErr.Message,
	}
	if appErr.Kind == apperrors.KindValidation {
		body.Violations = appErr.Violations
		body.Errors = make([]string, 0, len(appErr.Violations))
		for _, v := range appErr.Violations {
			body.Errors = append(body.Errors, v.Message)
		}
	}

	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusBadRequest
	}
	return Envelope{
		StatusCode: status,
		Headers:    Headers(),
		Body:       body,
	}
}

// JSON returns the serialized body.
func (e Envelope) JSON() string {
	payload, err := json.Marshal(e.Body)
	if err != nil {
		return `{"message":"Pyyntö epäonnistui"}`
	}
	return string(payload)
}

// APIGatewayV2 converts the envelope into an HTTP API Lambda response.
func (e Envelope) APIGatewayV2() events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: e.StatusCode,
		Headers:    e.Headers,
		Body:       e.JSON(),
	}
}
