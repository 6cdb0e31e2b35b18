package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/kballard/go-shellquote"

	"github.com/tacogips/scaffold/internal/debug"
	"github.com/tacogips/scaffold/internal/hook"
	"github.com/tacogips/scaffold/internal/template/model"
)

// GitProvider clones template repositories with the git command line.
type GitProvider struct {
	// CacheDir holds one clone per location. Empty means the user cache
	// directory.
	CacheDir string
	// Runner spawns git. Nil means hook.NewExecRunner.
	Runner hook.Runner
	// PrivateKeyPath is the SSH identity used for the clone. Empty means
	// the user's ssh configuration and agent. Passphrase-protected keys are
	// unlocked by ssh itself.
	PrivateKeyPath string
}

// NewGitProvider creates a git provider cloning under cacheDir.
func NewGitProvider(cacheDir string, runner hook.Runner) *GitProvider {
	return &GitProvider{CacheDir: cacheDir, Runner: runner}
}

// Name returns the provider name.
func (p *GitProvider) Name() string {
	return "git"
}

// DefaultCacheDir returns the directory clones are kept in.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "scaffold")
}

// CloneDir returns the clone directory for a location.
func (p *GitProvider) CloneDir(location string) string {
	sum := sha256.Sum256([]byte(location))
	return filepath.Join(p.cacheDir(), hex.EncodeToString(sum[:]))
}

func (p *GitProvider) cacheDir() string {
	if p.CacheDir != "" {
		return p.CacheDir
	}
	return DefaultCacheDir()
}

func (p *GitProvider) runner() hook.Runner {
	if p.Runner != nil {
		return p.Runner
	}
	return hook.NewExecRunner()
}

// Fetch clones the repository into a fresh cache directory, checks out
// ref when set and parses the descriptor below the subpath.
func (p *GitProvider) Fetch(ctx context.Context, ref model.TemplateRef) (*model.Template, error) {
	debug.Debug("[git] Starting fetch for: %s (ref: %q, subpath: %q)", ref.Location, ref.Ref, ref.Path)

	if err := ValidateSubpath(ref.Path); err != nil {
		return nil, NewInvalidLocationError(p.Name(), ref.Location, err)
	}

	dir := p.CloneDir(ref.Location)
	if err := os.RemoveAll(dir); err != nil {
		return nil, NewFetchError(p.Name(), ref.Location, fmt.Errorf("remove stale clone: %w", err))
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return nil, NewFetchError(p.Name(), ref.Location, fmt.Errorf("create cache directory: %w", err))
	}

	args := []string{"git", "clone", "--quiet"}
	if p.PrivateKeyPath != "" {
		if _, err := os.Stat(p.PrivateKeyPath); err != nil {
			return nil, NewFetchError(p.Name(), ref.Location, fmt.Errorf("private key: %w", err))
		}
		args = append(args, "--config", "core.sshCommand="+sshCommand(p.PrivateKeyPath))
	}
	args = append(args, "--", ref.Location, dir)

	debug.Debug("[git] Cloning into %s", dir)
	clone := shellquote.Join(args...)
	if err := p.runner().Run(ctx, clone, filepath.Dir(dir)); err != nil {
		return nil, NewFetchError(p.Name(), ref.Location, err)
	}

	if ref.Ref != "" {
		debug.Debug("[git] Checking out %s", ref.Ref)
		checkout := shellquote.Join("git", "-c", "advice.detachedHead=false", "checkout", "--quiet", ref.Ref, "--")
		if err := p.runner().Run(ctx, checkout, dir); err != nil {
			return nil, NewFetchError(p.Name(), ref.Location, fmt.Errorf("checkout %s: %w", ref.Ref, err))
		}
	}

	root, err := joinSubpath(dir, ref.Path)
	if err != nil {
		return nil, NewInvalidLocationError(p.Name(), ref.Location, err)
	}

	return loadTemplate(p.Name(), ref, root)
}

// sshCommand is the ssh invocation git uses to authenticate with keyPath
// only.
func sshCommand(keyPath string) string {
	return shellquote.Join("ssh", "-i", keyPath, "-o", "IdentitiesOnly=yes")
}
