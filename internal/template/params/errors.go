package params

import "fmt"

// ResolverErrorKind categorizes resolver errors.
type ResolverErrorKind int

const (
	// InvalidCliParam indicates a malformed seeded value or parameters file.
	InvalidCliParam ResolverErrorKind = iota
	// PromptFailed indicates the prompter returned an error.
	PromptFailed
	// MissingValues indicates a parameter cannot be given a valid value,
	// e.g. a select without values or an empty project name.
	MissingValues
)

func (k ResolverErrorKind) String() string {
	switch k {
	case InvalidCliParam:
		return "invalid parameter"
	case PromptFailed:
		return "prompt failed"
	case MissingValues:
		return "missing values"
	default:
		return fmt.Sprintf("ResolverErrorKind(%d)", int(k))
	}
}

// ResolverError represents a parameter resolution error.
type ResolverError struct {
	// Kind categorizes the error.
	Kind ResolverErrorKind
	// Parameter is the parameter name (if applicable).
	Parameter string
	// Message is the error message.
	Message string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *ResolverError) Error() string {
	msg := e.Message
	if e.Parameter != "" {
		msg = fmt.Sprintf("%s (parameter: %s)", msg, e.Parameter)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *ResolverError) Unwrap() error {
	return e.Cause
}

func newResolverError(kind ResolverErrorKind, parameter, message string, cause error) *ResolverError {
	return &ResolverError{
		Kind:      kind,
		Parameter: parameter,
		Message:   message,
		Cause:     cause,
	}
}
