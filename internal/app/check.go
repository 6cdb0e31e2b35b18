package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/tacogips/scaffold/internal/debug"
	"github.com/tacogips/scaffold/internal/template/generator"
	"github.com/tacogips/scaffold/internal/template/model"
	"github.com/tacogips/scaffold/internal/template/provider"
	"github.com/tacogips/scaffold/internal/template/render"
)

// CheckTemplateOptions holds options for template validation.
type CheckTemplateOptions struct {
	// Path is the template directory to check.
	Path string
	// Subpath selects a directory inside Path.
	Subpath string
}

// CheckResult holds the results of template validation.
type CheckResult struct {
	// FilesChecked is the number of files checked.
	FilesChecked int
	// FilesWithErrors is the number of files with validation errors.
	FilesWithErrors int
	// Errors is the list of validation errors found.
	Errors []CheckError
}

// CheckError represents a validation error in a template.
type CheckError struct {
	// File is the template-relative path, or the descriptor for hooks
	// and notes.
	File string
	// Stage tells what was being parsed: content, path, hook or notes.
	Stage generator.RenderStage
	// Message is the error message.
	Message string
}

// CheckTemplate parses every templated part of a local template without
// generating anything: file contents, path components, hook command lines
// and notes. Excluded entries are skipped the way generation skips them.
func CheckTemplate(ctx context.Context, opts CheckTemplateOptions) (*CheckResult, error) {
	debug.DebugSection("[app] CheckTemplate workflow start")

	tmpl, err := provider.NewLocalProvider().Fetch(ctx, model.TemplateRef{
		Provider: "local",
		Location: opts.Path,
		Path:     opts.Subpath,
	})
	if err != nil {
		return nil, NewValidationError("failed to load template", err)
	}
	desc := tmpl.Description

	exclude, err := generator.CompileMatcher(desc.Template.Exclude)
	if err != nil {
		return nil, NewValidationError("invalid exclude pattern", err)
	}
	disable, err := generator.CompileMatcher(desc.Template.DisableTemplating)
	if err != nil {
		return nil, NewValidationError("invalid disable_templating pattern", err)
	}

	engine, err := render.New(tmpl.RootPath)
	if err != nil {
		return nil, NewValidationError("failed to create renderer", err)
	}

	result := &CheckResult{Errors: []CheckError{}}
	report := func(file string, stage generator.RenderStage, err error) {
		result.Errors = append(result.Errors, CheckError{File: file, Stage: stage, Message: err.Error()})
	}

	for _, command := range append(append([]string{}, desc.Hooks.Pre...), desc.Hooks.Post...) {
		if err := engine.Compile(command, command); err != nil {
			report(model.DescriptorFile, generator.RenderHook, err)
		}
	}
	if desc.Template.Notes != nil {
		if err := engine.Compile("notes", *desc.Template.Notes); err != nil {
			report(model.DescriptorFile, generator.RenderNotes, err)
		}
	}

	fsys := afero.NewOsFs()
	err = afero.Walk(fsys, tmpl.RootPath, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(tmpl.RootPath, path)
		if err != nil || rel == "." {
			return err
		}
		slashRel := filepath.ToSlash(rel)

		switch {
		case slashRel == model.DescriptorFile:
			return nil
		case filepath.Base(rel) == model.VCSDir, exclude.Matches(slashRel):
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		failedBefore := len(result.Errors)
		if err := engine.Compile(slashRel, filepath.Base(rel)); err != nil {
			report(slashRel, generator.RenderPath, err)
		}
		if info.IsDir() {
			return nil
		}

		result.FilesChecked++
		if !disable.Matches(slashRel) {
			content, err := afero.ReadFile(fsys, path)
			if err != nil {
				return err
			}
			switch {
			case !utf8.Valid(content):
				result.Errors = append(result.Errors, CheckError{
					File:    slashRel,
					Stage:   generator.RenderContent,
					Message: "file is not valid UTF-8; add it to disable_templating",
				})
			default:
				if err := engine.Compile(slashRel, string(content)); err != nil {
					report(slashRel, generator.RenderContent, err)
				}
			}
		}
		if len(result.Errors) > failedBefore {
			result.FilesWithErrors++
		}
		return nil
	})
	if err != nil {
		return nil, NewValidationError("failed to walk template", err)
	}

	debug.DebugValue("[app] Files checked", result.FilesChecked)
	debug.DebugValue("[app] Errors", len(result.Errors))
	return result, nil
}

// Valid reports whether no errors were found.
func (r *CheckResult) Valid() bool {
	return len(r.Errors) == 0
}

// Summary returns a one-line description of the result.
func (r *CheckResult) Summary() string {
	summary := pluralize(r.FilesChecked, "file") + " checked"
	if !r.Valid() {
		summary += ", " + pluralize(len(r.Errors), "error")
	}
	return summary
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
