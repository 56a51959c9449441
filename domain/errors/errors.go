// Package errors provides domain-specific error types for the plugin.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// ErrEmptyVersion is returned by probes that ran but found no version.
var ErrEmptyVersion = stdErrors.New("empty version string")

// ErrUnknownPlatform is returned when no platform label could be determined.
var ErrUnknownPlatform = stdErrors.New("unknown platform label")

// DetailedError is implemented by errors that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    entities.ErrorTypeInternal,
	}
}

// VersionUnavailableError means the OS refused to report its version.
// It is the only failure of the version reporter.
type VersionUnavailableError struct {
	Err    error
	Source string // Probe that failed, if known
}

func (e *VersionUnavailableError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("os version unavailable (%s): %v", e.Source, e.Err)
	}
	return fmt.Sprintf("os version unavailable: %v", e.Err)
}

func (e *VersionUnavailableError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *VersionUnavailableError) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{Message: e.Error(), Type: entities.ErrorTypeUnavailable, Code: "os_version"}
	if e.Source != "" {
		detail.Details = map[string]any{"source": e.Source}
	}
	return detail
}

// MethodNotImplementedError is returned in strict dispatch mode for
// method names the channel does not know.
type MethodNotImplementedError struct {
	Channel string
	Method  string
}

func (e *MethodNotImplementedError) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("method %q not implemented on channel %q", e.Method, e.Channel)
	}
	return fmt.Sprintf("method %q not implemented", e.Method)
}

// ToErrorDetail implements DetailedError.
func (e *MethodNotImplementedError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message: e.Error(),
		Type:    entities.ErrorTypeNotImplemented,
		Code:    e.Method,
	}
}

// RegistrationError represents a failure binding a channel to a handler.
type RegistrationError struct {
	Err     error
	Channel string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register channel %q: %v", e.Channel, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *RegistrationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: entities.ErrorTypeRegistration, Code: e.Channel}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: entities.ErrorTypeConfig, Code: e.Field}
}

// CodecError represents a malformed call payload.
type CodecError struct {
	Err       error
	Operation string // "decode" or "encode"
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("method call %s failed: %v", e.Operation, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *CodecError) ToErrorDetail() *entities.ErrorDetail {
	typ := entities.ErrorTypeValidation
	if e.Operation == "encode" {
		typ = entities.ErrorTypeInternal
	}
	return &entities.ErrorDetail{Message: e.Error(), Type: typ, Code: "codec_" + e.Operation}
}
