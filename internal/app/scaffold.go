package app

import (
	"context"
	"time"

	"github.com/spf13/afero"

	"github.com/tacogips/scaffold/internal/config"
	"github.com/tacogips/scaffold/internal/debug"
	"github.com/tacogips/scaffold/internal/hook"
	"github.com/tacogips/scaffold/internal/template/generator"
	"github.com/tacogips/scaffold/internal/template/model"
	"github.com/tacogips/scaffold/internal/template/params"
	"github.com/tacogips/scaffold/internal/template/provider"
	"github.com/tacogips/scaffold/internal/template/render"
)

// ScaffoldOptions holds options for generating a project from a template.
type ScaffoldOptions struct {
	// Location is a local directory or a git URL.
	Location string
	// Subpath selects a directory inside the fetched source.
	Subpath string
	// GitRef is the branch, tag or commit to check out. Git sources only.
	GitRef string
	// PrivateKeyPath is the SSH identity used to clone git sources.
	PrivateKeyPath string
	// ProjectName overrides the "name" parameter.
	ProjectName string
	// TargetDir is the directory to generate into. Empty means
	// <working directory>/<name>.
	TargetDir string
	// Force replaces an existing target. Force wins over Append.
	Force bool
	// Append merges into an existing target, keeping existing files.
	Append bool
	// Params are seeded values, applied over the configured defaults.
	Params model.ParameterSet

	// Config is the user configuration. Nil means config.DefaultConfig().
	Config *config.Config
	// Prompter asks for missing parameters. Nil means defaults only.
	Prompter params.Prompter
	// Runner spawns hooks and git. Nil means a hook.ExecRunner.
	Runner hook.Runner
	// Fs is the filesystem the project is generated into. Nil means the OS
	// filesystem. The template is always read from the OS filesystem, and
	// hooks run on the OS with the target path as working directory.
	Fs afero.Fs
	// Observer receives progress events. May be nil.
	Observer generator.Observer
}

// ScaffoldResult holds the result of a generation.
type ScaffoldResult struct {
	// Template is the fetched template.
	Template *model.Template
	// Result describes the generated tree.
	*generator.Result
}

// Scaffold fetches the template, resolves its parameters and materializes
// the target tree.
func Scaffold(ctx context.Context, opts ScaffoldOptions) (*ScaffoldResult, error) {
	debug.DebugSection("[app] Scaffold workflow start")
	defer debug.Duration("scaffold", time.Now())

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	tmpl, err := fetchTemplate(ctx, opts, cfg)
	if err != nil {
		return nil, err
	}

	seeded := cfg.SeededParameters()
	seeded.Merge(opts.Params)

	resolved, err := params.NewResolver(opts.Prompter).Resolve(ctx, tmpl.Description.Parameters, seeded, opts.ProjectName)
	if err != nil {
		return nil, NewResolutionError("failed to resolve parameters", err)
	}

	return materialize(ctx, opts, cfg, tmpl, resolved)
}

// ScaffoldWithParameters generates without prompting. opts.ProjectName
// is required. values override opts.Params and configured defaults;
// declared parameters left unset render empty.
func ScaffoldWithParameters(ctx context.Context, opts ScaffoldOptions, values model.ParameterSet) (*ScaffoldResult, error) {
	debug.DebugSection("[app] ScaffoldWithParameters workflow start")
	defer debug.Duration("scaffold", time.Now())

	if opts.ProjectName == "" {
		return nil, NewConfigurationError("project name must be set", nil)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	tmpl, err := fetchTemplate(ctx, opts, cfg)
	if err != nil {
		return nil, err
	}

	resolved := cfg.SeededParameters()
	resolved.Merge(opts.Params)
	resolved.Merge(values)
	resolved.Set(model.ParamName, model.StringValue(opts.ProjectName))

	return materialize(ctx, opts, cfg, tmpl, resolved)
}

func fetchTemplate(ctx context.Context, opts ScaffoldOptions, cfg *config.Config) (*model.Template, error) {
	debug.DebugValue("[app] Location", opts.Location)
	debug.DebugValue("[app] Subpath", opts.Subpath)
	debug.DebugValue("[app] Git ref", opts.GitRef)

	ref, prov, err := provider.Resolve(opts.Location, opts.Subpath, opts.GitRef, provider.ProviderConfig{
		CacheDir:       cfg.Cache.Directory,
		Runner:         opts.Runner,
		PrivateKeyPath: opts.PrivateKeyPath,
	})
	if err != nil {
		return nil, NewConfigurationError("invalid template location", err)
	}

	tmpl, err := prov.Fetch(ctx, ref)
	if err != nil {
		return nil, NewTemplateFetchError("failed to fetch template", err)
	}
	debug.DebugValue("[app] Template root", tmpl.RootPath)
	return tmpl, nil
}

func materialize(ctx context.Context, opts ScaffoldOptions, cfg *config.Config, tmpl *model.Template, resolved model.ParameterSet) (*ScaffoldResult, error) {
	desc := tmpl.Description

	patterns := append(append([]string{}, desc.Template.Exclude...), cfg.Templates.IgnorePatterns...)
	exclude, err := generator.CompileMatcher(patterns)
	if err != nil {
		return nil, NewConfigurationError("invalid exclude pattern", err)
	}
	disable, err := generator.CompileMatcher(desc.Template.DisableTemplating)
	if err != nil {
		return nil, NewConfigurationError("invalid disable_templating pattern", err)
	}

	renderer, err := render.New(tmpl.RootPath)
	if err != nil {
		return nil, NewConfigurationError("failed to create renderer", err)
	}

	gen := generator.NewGenerator(renderer, opts.Runner, opts.Fs)
	result, err := gen.Materialize(ctx, generator.Options{
		TemplateRoot:      tmpl.RootPath,
		Source:            afero.NewReadOnlyFs(afero.NewOsFs()),
		Params:            resolved,
		TargetRoot:        opts.TargetDir,
		Policy:            model.PolicyFromFlags(opts.Force, opts.Append),
		HooksPre:          desc.Hooks.Pre,
		HooksPost:         desc.Hooks.Post,
		Exclude:           exclude,
		DisableTemplating: disable,
		Notes:             desc.Template.Notes,
		Observer:          opts.Observer,
	})
	if err != nil {
		return nil, NewMaterializationError("failed to generate project", err)
	}

	debug.Debug("[app] Scaffold workflow completed")
	debug.DebugValue("[app] Files written", result.FilesWritten)
	return &ScaffoldResult{Template: tmpl, Result: result}, nil
}
