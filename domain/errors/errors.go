// Package errors provides domain-specific error types for the runtime.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/kaleidort/kaleidort/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by error types that can describe themselves
// as a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
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
		Type:    "internal",
	}
}

// NotFoundError is returned when an intrinsic name is unknown or not allowed.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown intrinsic: %s", e.Name)
}

// ToErrorDetail implements DetailedError.
func (e *NotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "not_found", Code: e.Name, IsNotFound: true}
}

// ArityError is returned when an intrinsic is called with the wrong number of arguments.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("intrinsic %s expects %d argument(s), got %d", e.Name, e.Want, e.Got)
}

// ToErrorDetail implements DetailedError.
func (e *ArityError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "arity", Code: e.Name}
}

// IntrinsicError represents a failure inside an intrinsic, including recovered panics.
type IntrinsicError struct {
	Err   error
	Name  string
	Panic bool
}

func (e *IntrinsicError) Error() string {
	if e.Panic {
		return fmt.Sprintf("intrinsic %s panicked: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("intrinsic %s failed: %v", e.Name, e.Err)
}

func (e *IntrinsicError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *IntrinsicError) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{Message: e.Error(), Type: "intrinsic", Code: e.Name}
	if e.Panic {
		detail.Type = "panic"
	}
	return detail
}

// WriteError records a failed write to one of the intrinsic output streams.
type WriteError struct {
	Err    error
	Stream string // "stdout" or "stderr"
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write to %s failed: %v", e.Stream, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *WriteError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "write", Code: e.Stream}
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
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stdErrors.As(err, &nf)
}
