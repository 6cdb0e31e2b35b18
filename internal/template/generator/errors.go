package generator

import (
	"errors"
	"fmt"

	"github.com/tacogips/scaffold/internal/hook"
)

// ErrorType categorizes generator errors.
type ErrorType int

const (
	// DirectoryExists indicates the target exists and the policy is Fail.
	DirectoryExists ErrorType = iota
	// IOError indicates a filesystem operation failed. See GeneratorError.Op.
	IOError
	// InvalidEncoding indicates a templated file is not valid UTF-8.
	InvalidEncoding
	// TemplateRenderError indicates rendering failed. See GeneratorError.Stage.
	TemplateRenderError
	// HookFailure indicates a hook could not be started or exited non-zero.
	HookFailure
	// PatternCompileError indicates an invalid glob pattern.
	PatternCompileError
	// InvalidOptions indicates Materialize was called with unusable options.
	InvalidOptions
)

func (t ErrorType) String() string {
	switch t {
	case DirectoryExists:
		return "directory exists"
	case IOError:
		return "io error"
	case InvalidEncoding:
		return "invalid encoding"
	case TemplateRenderError:
		return "template render error"
	case HookFailure:
		return "hook failure"
	case PatternCompileError:
		return "pattern compile error"
	case InvalidOptions:
		return "invalid options"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(t))
	}
}

// Category names the failing stage reported to the user.
type Category string

const (
	CategoryRender        Category = "render"
	CategoryHook          Category = "hook"
	CategoryFilesystem    Category = "filesystem"
	CategoryConfiguration Category = "configuration"
)

// Category maps the error type to the stage reported on exit.
func (t ErrorType) Category() Category {
	switch t {
	case TemplateRenderError, InvalidEncoding:
		return CategoryRender
	case HookFailure:
		return CategoryHook
	case DirectoryExists, IOError:
		return CategoryFilesystem
	default:
		return CategoryConfiguration
	}
}

// IOOp names the filesystem operation behind an IOError.
type IOOp string

const (
	OpCreate IOOp = "create"
	OpRemove IOOp = "remove"
	OpOpen   IOOp = "open"
	OpWrite  IOOp = "write"
	OpChmod  IOOp = "chmod"
)

// RenderStage names what was being rendered when a TemplateRenderError occurred.
type RenderStage string

const (
	RenderContent RenderStage = "content"
	RenderPath    RenderStage = "path"
	RenderHook    RenderStage = "hook"
	RenderNotes   RenderStage = "notes"
)

// GeneratorError is the single error type returned by Materialize.
type GeneratorError struct {
	// Type categorizes the error.
	Type ErrorType
	// Op is set for IOError.
	Op IOOp
	// Stage is set for TemplateRenderError.
	Stage RenderStage
	// Path is the template-relative or target path involved (if applicable).
	Path string
	// Command is the hook command line (HookFailure, hook render errors).
	Command string
	// ExitCode is the hook exit status, or -1 when it never ran.
	ExitCode int
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	var msg string
	switch e.Type {
	case DirectoryExists:
		msg = fmt.Sprintf("target directory %s already exists (use force or append)", e.Path)
	case IOError:
		msg = fmt.Sprintf("cannot %s %s", e.Op, e.Path)
	case InvalidEncoding:
		msg = fmt.Sprintf("%s is not valid UTF-8; add it to template.disable_templating to copy it verbatim", e.Path)
	case TemplateRenderError:
		if e.Command != "" {
			msg = fmt.Sprintf("cannot render %s %q", e.Stage, e.Command)
		} else {
			msg = fmt.Sprintf("cannot render %s of %s", e.Stage, e.Path)
		}
	case HookFailure:
		if e.ExitCode >= 0 {
			msg = fmt.Sprintf("hook %q failed with exit status %d", e.Command, e.ExitCode)
		} else {
			msg = fmt.Sprintf("hook %q failed", e.Command)
		}
	default:
		msg = e.Type.String()
		if e.Path != "" {
			msg += " " + e.Path
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// Category returns the stage reported to the user. A hook command that
// cannot be split into words is a template authoring mistake and is
// reported as configuration.
func (e *GeneratorError) Category() Category {
	if e.Type == HookFailure {
		var splitErr *hook.SplitError
		if errors.Is(e.Cause, hook.ErrEmptyCommand) || errors.As(e.Cause, &splitErr) {
			return CategoryConfiguration
		}
	}
	return e.Type.Category()
}

func newIOError(op IOOp, path string, cause error) *GeneratorError {
	return &GeneratorError{Type: IOError, Op: op, Path: path, ExitCode: -1, Cause: cause}
}

func newRenderError(stage RenderStage, path string, cause error) *GeneratorError {
	return &GeneratorError{Type: TemplateRenderError, Stage: stage, Path: path, ExitCode: -1, Cause: cause}
}

func newGeneratorError(typ ErrorType, path string, cause error) *GeneratorError {
	return &GeneratorError{Type: typ, Path: path, ExitCode: -1, Cause: cause}
}
