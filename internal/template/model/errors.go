package model

import "fmt"

// DescriptionErrorKind categorizes descriptor errors.
type DescriptionErrorKind int

const (
	// DescriptionMalformed indicates invalid syntax or an invalid field value.
	DescriptionMalformed DescriptionErrorKind = iota
	// DescriptionMissingField indicates a required field is absent.
	DescriptionMissingField
)

// DescriptionError represents a .scaffold.toml parsing error.
type DescriptionError struct {
	// Kind categorizes the error.
	Kind DescriptionErrorKind
	// Field is the dotted path of the offending field (if applicable).
	Field string
	// Message is the error message.
	Message string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *DescriptionError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s [field: %s]", msg, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", DescriptorFile, msg, e.Cause)
	}
	return fmt.Sprintf("%s %s", DescriptorFile, msg)
}

// Unwrap returns the underlying cause error.
func (e *DescriptionError) Unwrap() error {
	return e.Cause
}

func newDescriptionError(kind DescriptionErrorKind, field, message string, cause error) *DescriptionError {
	return &DescriptionError{
		Kind:    kind,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}
