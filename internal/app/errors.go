package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ConfigurationFailed indicates invalid options, configuration or
	// template patterns.
	ConfigurationFailed AppErrorType = iota
	// TemplateFetchFailed indicates the template could not be fetched.
	TemplateFetchFailed
	// ResolutionFailed indicates parameter resolution failed.
	ResolutionFailed
	// MaterializationFailed indicates the target tree could not be generated.
	MaterializationFailed
	// ValidationFailed indicates invalid input to a template management
	// command.
	ValidationFailed
)

// String returns the stage label of the error type.
func (t AppErrorType) String() string {
	switch t {
	case ConfigurationFailed:
		return "configuration"
	case TemplateFetchFailed:
		return "fetch"
	case ResolutionFailed:
		return "parameters"
	case MaterializationFailed:
		return "generate"
	case ValidationFailed:
		return "validation"
	default:
		return fmt.Sprintf("AppErrorType(%d)", int(t))
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(message string, cause error) *AppError {
	return NewAppError(ConfigurationFailed, message, cause)
}

// NewTemplateFetchError creates a template fetch error.
func NewTemplateFetchError(message string, cause error) *AppError {
	return NewAppError(TemplateFetchFailed, message, cause)
}

// NewResolutionError creates a parameter resolution error.
func NewResolutionError(message string, cause error) *AppError {
	return NewAppError(ResolutionFailed, message, cause)
}

// NewMaterializationError creates a materialization error.
func NewMaterializationError(message string, cause error) *AppError {
	return NewAppError(MaterializationFailed, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}
