package channel

import (
	"encoding/json"
	"fmt"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeChannelNotFound = "CHANNEL_NOT_FOUND"
	CodeNotImplemented  = "NOT_IMPLEMENTED"
	CodeUnavailable     = "UNAVAILABLE"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse is the payload of an error envelope.
type ErrorResponse struct {
	// Details carries additional context, e.g. the failing probe.
	Details map[string]any `json:"details,omitempty"`

	// Code is a machine-readable error identifier (e.g. "UNAVAILABLE").
	Code string `json:"code"`

	// Message is a human-readable error description.
	Message string `json:"message"`

	// Status is an HTTP-like status (e.g. 404, 503).
	Status int `json:"status"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ToJSON serializes the ErrorResponse as an error envelope.
// Returns nil if serialization fails (which should never happen for this simple type).
func (e ErrorResponse) ToJSON() []byte {
	data, err := json.Marshal(errorEnvelope{Error: e})
	if err != nil {
		return nil
	}
	return data
}

// NewBadRequestError creates an error response for malformed calls.
func NewBadRequestError(message string) ErrorResponse {
	return ErrorResponse{Code: CodeBadRequest, Message: message, Status: 400}
}

// NewChannelNotFoundError creates an error response for unknown channel names.
func NewChannelNotFoundError(name string) ErrorResponse {
	return ErrorResponse{Code: CodeChannelNotFound, Message: "unknown channel: " + name, Status: 404}
}

// NewNotImplementedError creates an error response for unknown methods.
func NewNotImplementedError(message string) ErrorResponse {
	return ErrorResponse{Code: CodeNotImplemented, Message: message, Status: 501}
}

// NewUnavailableError creates an error response for a missing OS version.
func NewUnavailableError(message string) ErrorResponse {
	return ErrorResponse{Code: CodeUnavailable, Message: message, Status: 503}
}

// NewInternalError creates an error response for unexpected failures.
func NewInternalError(message string) ErrorResponse {
	return ErrorResponse{Code: CodeInternal, Message: message, Status: 500}
}

// NewPanicError creates an error response for recovered panics.
func NewPanicError(panicValue any) ErrorResponse {
	var msg string
	if err, ok := panicValue.(error); ok {
		msg = err.Error()
	} else if s, ok := panicValue.(string); ok {
		msg = s
	} else {
		msg = "panic recovered"
	}
	resp := NewInternalError("panic: " + msg)
	resp.Details = map[string]any{"type": entities.ErrorTypePanic}
	return resp
}

// FromError converts any handler error into an ErrorResponse.
func FromError(err error) ErrorResponse {
	detail := errors.ToErrorDetail(err)

	var resp ErrorResponse
	switch detail.Type {
	case entities.ErrorTypeUnavailable:
		resp = NewUnavailableError(detail.Message)
	case entities.ErrorTypeNotImplemented:
		resp = NewNotImplementedError(detail.Message)
	case entities.ErrorTypeValidation:
		resp = NewBadRequestError(detail.Message)
	default:
		resp = NewInternalError(detail.Message)
	}

	resp.Details = make(map[string]any, len(detail.Details)+2)
	for k, v := range detail.Details {
		resp.Details[k] = v
	}
	resp.Details["type"] = detail.Type
	if detail.Code != "" {
		resp.Details["reason"] = detail.Code
	}
	return resp
}

// ToErrorDetail converts the response back into a domain ErrorDetail.
func (e ErrorResponse) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{
		Message: e.Message,
		Type:    typeForCode(e.Code),
		Code:    e.Code,
	}
	if t, ok := e.Details["type"].(string); ok && t != "" {
		detail.Type = t
	}
	if len(e.Details) > 0 {
		detail.Details = e.Details
	}
	return detail
}

func typeForCode(code string) string {
	switch code {
	case CodeUnavailable:
		return entities.ErrorTypeUnavailable
	case CodeNotImplemented:
		return entities.ErrorTypeNotImplemented
	case CodeBadRequest:
		return entities.ErrorTypeValidation
	case CodeChannelNotFound:
		return entities.ErrorTypeRegistration
	default:
		return entities.ErrorTypeInternal
	}
}
