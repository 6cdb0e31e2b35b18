// Package render binds parameter sets to the pongo2 template engine.
package render

import (
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/tacogips/scaffold/internal/template/model"
)

// Renderer renders a text span against a parameter set.
type Renderer interface {
	// Render renders text. name identifies the span in error messages.
	Render(name, text string, params model.ParameterSet) (string, error)
}

// Error is returned when a span fails to parse or execute.
type Error struct {
	// Name identifies the rendered span (file path, hook, notes).
	Name string
	// Cause is the engine error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("cannot render template %s: %v", e.Name, e.Cause)
}

// Unwrap returns the engine error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Engine is the pongo2-backed Renderer. Undefined variables render empty.
type Engine struct {
	set *pongo2.TemplateSet
}

var registerOnce sync.Once

// New creates an Engine. baseDir is where {% include %} looks up files;
// an empty baseDir resolves includes against the working directory.
func New(baseDir string) (*Engine, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(baseDir)
	if err != nil {
		return nil, fmt.Errorf("render: create loader: %w", err)
	}

	registerOnce.Do(func() {
		pongo2.SetAutoescape(false)
		registerFilters()
	})

	return &Engine{set: pongo2.NewSet("scaffold", loader)}, nil
}

// Render implements Renderer.
func (e *Engine) Render(name, text string, params model.ParameterSet) (string, error) {
	tpl, err := e.set.FromString(text)
	if err != nil {
		return "", &Error{Name: name, Cause: err}
	}

	out, err := tpl.Execute(pongo2.Context(params.Bindings()))
	if err != nil {
		return "", &Error{Name: name, Cause: err}
	}
	return out, nil
}

// Compile parses text without executing it. It reports syntax errors
// only; undefined variables are not detected.
func (e *Engine) Compile(name, text string) error {
	if _, err := e.set.FromString(text); err != nil {
		return &Error{Name: name, Cause: err}
	}
	return nil
}
