// Package provider obtains a local template tree from a template location.
package provider

import (
	"context"

	"github.com/tacogips/scaffold/internal/template/model"
)

// Provider abstracts template source locations (local directory, git repository).
type Provider interface {
	// Fetch makes the template available locally and parses its descriptor.
	Fetch(ctx context.Context, ref model.TemplateRef) (*model.Template, error)

	// Name returns the provider name (e.g., "git", "local").
	Name() string
}
