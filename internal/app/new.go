package app

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tacogips/scaffold/internal/debug"
)

//go:embed all:_scaffolds
var scaffoldsFS embed.FS

const scaffoldsRoot = "_scaffolds"

// NewTemplateOptions holds options for creating a new template.
type NewTemplateOptions struct {
	// Path is the destination directory for the new template.
	Path string
	// Type is the starter type to use (e.g., "default", "go").
	Type string
	// Force overwrites existing files if true.
	Force bool
	// Fs is the destination filesystem. Nil means the OS filesystem.
	Fs afero.Fs
}

// NewTemplateResult holds the result of template creation.
type NewTemplateResult struct {
	// Path is the created template directory path.
	Path string
	// FilesCreated is the number of files created.
	FilesCreated int
	// Files is the list of created file paths, relative to Path.
	Files []string
}

// AvailableScaffoldTypes returns the list of available starter types.
func AvailableScaffoldTypes() ([]string, error) {
	entries, err := scaffoldsFS.ReadDir(scaffoldsRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaffolds directory: %w", err)
	}

	var types []string
	for _, entry := range entries {
		if entry.IsDir() {
			types = append(types, entry.Name())
		}
	}
	return types, nil
}

// NewTemplate writes a starter template tree. Its files are copied as-is;
// template expressions are left for the generation run.
func NewTemplate(ctx context.Context, opts NewTemplateOptions) (*NewTemplateResult, error) {
	debug.DebugSection("[app] NewTemplate workflow start")
	debug.DebugValue("[app] Target path", opts.Path)
	debug.DebugValue("[app] Scaffold type", opts.Type)
	debug.DebugValue("[app] Force overwrite", opts.Force)

	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	scaffoldPath := path.Join(scaffoldsRoot, opts.Type)
	if _, err := scaffoldsFS.ReadDir(scaffoldPath); err != nil {
		availableTypes, _ := AvailableScaffoldTypes()
		return nil, NewValidationError(
			fmt.Sprintf("unknown scaffold type: %s (available: %v)", opts.Type, availableTypes),
			err,
		)
	}

	absPath, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, NewValidationError("failed to resolve target path", err)
	}

	if info, err := fsys.Stat(absPath); err == nil {
		if !info.IsDir() {
			return nil, NewValidationError(
				fmt.Sprintf("target path exists and is not a directory: %s", absPath),
				nil,
			)
		}
		empty, err := afero.IsEmpty(fsys, absPath)
		if err != nil {
			return nil, NewValidationError("failed to read target directory", err)
		}
		if !empty && !opts.Force {
			return nil, NewValidationError(
				fmt.Sprintf("target directory is not empty: %s (use --force to overwrite)", absPath),
				nil,
			)
		}
	}

	if err := fsys.MkdirAll(absPath, 0755); err != nil {
		return nil, NewValidationError("failed to create target directory", err)
	}

	result := &NewTemplateResult{
		Path:  absPath,
		Files: []string{},
	}

	err = fs.WalkDir(scaffoldsFS, scaffoldPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := p[len(scaffoldPath):]
		if rel == "" {
			return nil
		}
		rel = rel[1:]
		targetPath := filepath.Join(absPath, filepath.FromSlash(rel))

		if d.IsDir() {
			return fsys.MkdirAll(targetPath, 0755)
		}

		content, err := scaffoldsFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read scaffold file %s: %w", p, err)
		}
		if err := afero.WriteFile(fsys, targetPath, content, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		result.FilesCreated++
		result.Files = append(result.Files, rel)
		debug.DebugValue("[app] Created file", targetPath)
		return nil
	})
	if err != nil {
		return nil, NewValidationError("failed to copy scaffold files", err)
	}

	debug.Debug("[app] NewTemplate workflow completed")
	debug.DebugValue("[app] Files created", result.FilesCreated)
	return result, nil
}
