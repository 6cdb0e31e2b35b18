package provider

import "fmt"

// ProviderErrorType represents the type of provider error.
type ProviderErrorType int

const (
	// ProviderFetchFailed indicates the template could not be fetched.
	ProviderFetchFailed ProviderErrorType = iota
	// ProviderNotFound indicates the template was not found at the source.
	ProviderNotFound
	// ProviderInvalidLocation indicates the location, subpath or ref is unusable.
	ProviderInvalidLocation
	// ProviderInvalidTemplate indicates the template structure is invalid.
	ProviderInvalidTemplate
)

// String returns the string representation of the error type.
func (t ProviderErrorType) String() string {
	switch t {
	case ProviderFetchFailed:
		return "FetchFailed"
	case ProviderNotFound:
		return "NotFound"
	case ProviderInvalidLocation:
		return "InvalidLocation"
	case ProviderInvalidTemplate:
		return "InvalidTemplate"
	default:
		return "Unknown"
	}
}

// ProviderError represents a provider-specific error.
type ProviderError struct {
	// Type is the error type classification.
	Type ProviderErrorType
	// Message is the human-readable error message.
	Message string
	// Provider is the provider name (e.g., "git", "local").
	Provider string
	// Location is the template location that caused the error.
	Location string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s template %s: %s: %v", e.Provider, e.Location, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s template %s: %s", e.Provider, e.Location, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new ProviderError.
func NewProviderError(typ ProviderErrorType, provider, location, message string, cause error) *ProviderError {
	return &ProviderError{
		Type:     typ,
		Message:  message,
		Provider: provider,
		Location: location,
		Cause:    cause,
	}
}

// NewFetchError creates a fetch failed error.
func NewFetchError(provider, location string, cause error) *ProviderError {
	return NewProviderError(ProviderFetchFailed, provider, location, "failed to fetch template", cause)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(provider, location string) *ProviderError {
	return NewProviderError(ProviderNotFound, provider, location, "template not found", nil)
}

// NewInvalidLocationError creates an invalid location error.
func NewInvalidLocationError(provider, location string, cause error) *ProviderError {
	return NewProviderError(ProviderInvalidLocation, provider, location, "invalid template location", cause)
}

// NewInvalidTemplateError creates an invalid template error.
func NewInvalidTemplateError(provider, location, message string, cause error) *ProviderError {
	return NewProviderError(ProviderInvalidTemplate, provider, location, message, cause)
}
