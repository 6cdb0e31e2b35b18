package provider

import (
	"fmt"

	"github.com/tacogips/scaffold/internal/hook"
	"github.com/tacogips/scaffold/internal/template/model"
)

// ProviderConfig configures provider construction.
type ProviderConfig struct {
	// BaseDir is the base directory for resolving local paths.
	BaseDir string
	// CacheDir is where git clones are kept.
	CacheDir string
	// Runner spawns git for git locations.
	Runner hook.Runner
	// PrivateKeyPath is the SSH identity for git clones.
	PrivateKeyPath string
}

// Resolve builds the template reference for a location and the provider
// able to fetch it.
func Resolve(location, subpath, gitRef string, config ProviderConfig) (model.TemplateRef, Provider, error) {
	if location == "" {
		return model.TemplateRef{}, nil, fmt.Errorf("template location cannot be empty")
	}

	if IsGitLocation(location) {
		return model.TemplateRef{
			Provider: "git",
			Location: location,
			Path:     subpath,
			Ref:      gitRef,
		}, &GitProvider{CacheDir: config.CacheDir, Runner: config.Runner, PrivateKeyPath: config.PrivateKeyPath}, nil
	}

	return model.TemplateRef{
		Provider: "local",
		Location: location,
		Path:     subpath,
		Ref:      gitRef,
	}, NewLocalProviderWithBase(config.BaseDir), nil
}
