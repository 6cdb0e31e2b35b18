package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tacogips/scaffold/internal/debug"
	"github.com/tacogips/scaffold/internal/template/model"
)

// LocalProvider implements Provider for local filesystem templates.
type LocalProvider struct {
	// BaseDir is the base directory for resolving relative paths.
	// If empty, uses current working directory.
	BaseDir string
}

// NewLocalProvider creates a new local filesystem provider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// NewLocalProviderWithBase creates a new local provider with a base directory.
func NewLocalProviderWithBase(baseDir string) *LocalProvider {
	return &LocalProvider{
		BaseDir: baseDir,
	}
}

// Name returns the provider name.
func (p *LocalProvider) Name() string {
	return "local"
}

// Fetch resolves the template directory and parses its descriptor.
// A git ref is rejected because a plain directory has no revisions.
func (p *LocalProvider) Fetch(ctx context.Context, ref model.TemplateRef) (*model.Template, error) {
	debug.Debug("[local] Starting fetch for: %s (subpath: %q)", ref.Location, ref.Path)

	if ref.Ref != "" {
		return nil, NewInvalidLocationError(p.Name(), ref.Location,
			errors.New("a git ref can only be used with a git repository location"))
	}
	if ref.Location == "" {
		return nil, NewInvalidLocationError(p.Name(), ref.Location, errors.New("path cannot be empty"))
	}

	root, err := p.resolvePath(ref.Location)
	if err != nil {
		return nil, NewFetchError(p.Name(), ref.Location, err)
	}

	root, err = joinSubpath(root, ref.Path)
	if err != nil {
		return nil, NewInvalidLocationError(p.Name(), ref.Location, err)
	}
	debug.Debug("[local] Template root: %s", root)

	return loadTemplate(p.Name(), ref, root)
}

// resolvePath resolves a path to an absolute path.
// Relative paths are resolved against BaseDir or the working directory.
func (p *LocalProvider) resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	baseDir := p.BaseDir
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		baseDir = cwd
	}

	return filepath.Abs(filepath.Join(baseDir, path))
}
