package buildrt

import (
	"errors"
	"fmt"
)

// UninitializedFieldError reports that the build method found a field that
// was never set and has no default.
type UninitializedFieldError struct {
	Field string
}

// NewUninitializedFieldError creates an UninitializedFieldError for field.
func NewUninitializedFieldError(field string) UninitializedFieldError {
	return UninitializedFieldError{Field: field}
}

func (e UninitializedFieldError) Error() string {
	return fmt.Sprintf("`%s` must be initialized", e.Field)
}

// ValidationError is a validation failure carrying a message.
type ValidationError struct {
	Message string
}

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubfieldBuildError wraps the failure of a nested builder.
type SubfieldBuildError struct {
	Field string
	Err   error
}

// NewSubfieldBuildError wraps err as the failure of the builder of field.
func NewSubfieldBuildError(field string, err error) *SubfieldBuildError {
	return &SubfieldBuildError{Field: field, Err: err}
}

func (e *SubfieldBuildError) Error() string {
	return fmt.Sprintf("in %s: %v", e.Field, e.Err)
}

func (e *SubfieldBuildError) Unwrap() error {
	return e.Err
}

// FieldPath returns the dotted path of nested fields down to the innermost
// failure, e.g. "Limits.MaxConns" for an uninitialized field of a sub-builder.
func FieldPath(err error) string {
	var (
		path   string
		sub    *SubfieldBuildError
		uninit UninitializedFieldError
	)

	for err != nil {
		if errors.As(err, &sub) {
			path = joinField(path, sub.Field)
			err = sub.Err

			continue
		}

		if errors.As(err, &uninit) {
			path = joinField(path, uninit.Field)
		}

		break
	}

	return path
}

func joinField(path, field string) string {
	if path == "" {
		return field
	}

	return path + "." + field
}
