package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/tacogips/scaffold/internal/debug"
	"github.com/tacogips/scaffold/internal/hook"
	"github.com/tacogips/scaffold/internal/template/model"
	"github.com/tacogips/scaffold/internal/template/render"
)

// Generator materializes template trees.
type Generator interface {
	// Materialize turns the template tree at opts.TemplateRoot into a
	// target tree. The first error aborts the run; nothing already written
	// is rolled back.
	Materialize(ctx context.Context, opts Options) (*Result, error)
}

// Options configures one materialization run.
type Options struct {
	// TemplateRoot is the directory holding the template tree.
	TemplateRoot string

	// Source is the filesystem TemplateRoot is read from. Nil means the
	// generator's filesystem.
	Source afero.Fs

	// Params holds the resolved parameters. It must bind "name" to a
	// non-empty string. It is not modified.
	Params model.ParameterSet

	// TargetRoot is the directory to generate into. Empty means
	// Cwd/<name>.
	TargetRoot string

	// Cwd is the base of the default target. Empty means the process
	// working directory.
	Cwd string

	// Policy decides what happens to existing target entries.
	Policy model.ConflictPolicy

	// HooksPre and HooksPost are command lines run in the target directory.
	HooksPre  []string
	HooksPost []string

	// Exclude prunes matching entries. DisableTemplating marks files whose
	// content is copied verbatim. Nil matchers match nothing.
	Exclude           *Matcher
	DisableTemplating *Matcher

	// Notes is rendered into Result.Notes when non-nil.
	Notes *string

	// Observer receives progress events. May be nil.
	Observer Observer
}

// Result describes a successful run.
type Result struct {
	// TargetDir is the canonical target directory.
	TargetDir string
	// Params is the parameter set used for rendering, including "target_dir".
	Params model.ParameterSet
	// DirsCreated counts directories created below TargetDir.
	DirsCreated int
	// FilesWritten counts written files.
	FilesWritten int
	// FilesSkipped counts existing files kept because of the append policy.
	FilesSkipped int
	// Files lists written files relative to TargetDir, in traversal order.
	Files []string
	// Notes is the rendered post-generation notes, empty when undeclared.
	Notes string
	// HooksRun counts executed pre and post hooks.
	HooksRun int
}

// DefaultGenerator implements Generator.
type DefaultGenerator struct {
	renderer render.Renderer
	runner   hook.Runner
	fs       afero.Fs
}

// NewGenerator creates a new DefaultGenerator. A nil runner uses
// hook.NewExecRunner; a nil fs uses the OS filesystem.
func NewGenerator(r render.Renderer, runner hook.Runner, fs afero.Fs) Generator {
	if runner == nil {
		runner = hook.NewExecRunner()
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &DefaultGenerator{renderer: r, runner: runner, fs: fs}
}

// run carries the state flowing through the stages of one call.
type run struct {
	g        *DefaultGenerator
	opts     Options
	writer   Writer
	src      afero.Fs
	params   model.ParameterSet
	target   string
	dirs     []model.SourceEntry
	files    []model.SourceEntry
	result   *Result
	observer Observer
}

// Materialize implements Generator.
func (g *DefaultGenerator) Materialize(ctx context.Context, opts Options) (*Result, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if g.renderer == nil {
		return nil, newGeneratorError(InvalidOptions, "", errors.New("renderer is nil"))
	}

	start := time.Now()
	defer debug.Duration("materialize", start)

	debug.Debug("[generator] Starting materialization: template=%s, target=%q, policy=%s",
		opts.TemplateRoot, opts.TargetRoot, opts.Policy)

	r := &run{
		g:        g,
		opts:     opts,
		writer:   NewFileWriter(g.fs),
		src:      opts.Source,
		params:   opts.Params.Clone(),
		result:   &Result{Files: []string{}},
		observer: opts.Observer,
	}
	if r.src == nil {
		r.src = g.fs
	}
	debug.DebugValue("[generator] Parameters", r.params.Keys())

	stages := []struct {
		stage Stage
		fn    func(context.Context) error
	}{
		{StageResolveTarget, r.resolveTarget},
		{StagePreHooks, r.preHooks},
		{StageTraverse, r.traverse},
		{StageDirectories, r.directories},
		{StageFiles, r.writeFiles},
		{StageNotes, r.notes},
		{StagePostHooks, r.postHooks},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		debug.Debug("[generator] Stage: %s", s.stage)
		if err := s.fn(ctx); err != nil {
			debug.Debug("[generator] Stage %s failed: %v", s.stage, err)
			return nil, err
		}
	}

	r.result.TargetDir = r.target
	r.result.Params = r.params

	debug.Debug("[generator] Materialization complete: dirs=%d, written=%d, skipped=%d, hooks=%d",
		r.result.DirsCreated, r.result.FilesWritten, r.result.FilesSkipped, r.result.HooksRun)
	return r.result, nil
}

func (r *run) emit(e Event) {
	if r.observer != nil {
		r.observer.OnEvent(e)
	}
}

// resolveTarget creates or reuses the target directory and binds
// "target_dir" before anything is rendered.
func (r *run) resolveTarget(_ context.Context) error {
	target := r.opts.TargetRoot
	if target == "" {
		name, err := r.params.Name()
		if err != nil {
			return newGeneratorError(InvalidOptions, "", err)
		}
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return newGeneratorError(InvalidOptions, name,
				fmt.Errorf("project name %q cannot be used as a directory name", name))
		}
		cwd := r.opts.Cwd
		if cwd == "" {
			if cwd, err = os.Getwd(); err != nil {
				return newIOError(OpOpen, ".", err)
			}
		}
		target = filepath.Join(cwd, name)
	}

	r.emit(Event{Kind: EventStageStarted, Stage: StageResolveTarget, Path: target})

	if r.writer.Exists(target) {
		switch r.opts.Policy {
		case model.PolicyForce:
			debug.Debug("[generator] Target exists, removing: %s", target)
			if err := r.writer.RemoveAll(target); err != nil {
				return err
			}
			if err := r.writer.CreateDir(target); err != nil {
				return err
			}
		case model.PolicyAppend:
			debug.Debug("[generator] Target exists, appending: %s", target)
			if !r.writer.IsDir(target) {
				return newIOError(OpCreate, target, fmt.Errorf("%s is not a directory", target))
			}
		default:
			return newGeneratorError(DirectoryExists, target, nil)
		}
	} else if err := r.writer.CreateDir(target); err != nil {
		return err
	}

	canonical, err := canonicalize(r.g.fs, target)
	if err != nil {
		return newIOError(OpOpen, target, err)
	}

	r.target = canonical
	r.params.Set(model.ParamTargetDir, model.StringValue(canonical))
	debug.Debug("[generator] Target directory: %s", canonical)
	return nil
}

func (r *run) preHooks(ctx context.Context) error {
	return r.runHooks(ctx, StagePreHooks, r.opts.HooksPre)
}

func (r *run) postHooks(ctx context.Context) error {
	return r.runHooks(ctx, StagePostHooks, r.opts.HooksPost)
}

// traverse lists the template tree in lexical pre-order, skipping the
// descriptor, version control metadata and excluded entries.
func (r *run) traverse(_ context.Context) error {
	root := r.opts.TemplateRoot

	return afero.Walk(r.src, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return newIOError(OpOpen, path, err)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return newIOError(OpOpen, path, err)
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if skip, reason := r.skipped(rel); skip {
			debug.Debug("[generator] Skipping %s (%s)", rel, reason)
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if resolved, statErr := r.src.Stat(path); statErr == nil {
				info = resolved
			}
		}

		entry := model.SourceEntry{RelativePath: rel, Mode: info.Mode().Perm()}
		if info.IsDir() {
			entry.Kind = model.EntryDirectory
			r.dirs = append(r.dirs, entry)
		} else {
			entry.Kind = model.EntryFile
			r.files = append(r.files, entry)
		}
		return nil
	})
}

func (r *run) skipped(rel string) (bool, string) {
	if rel == model.DescriptorFile {
		return true, "descriptor"
	}
	for _, component := range strings.Split(rel, "/") {
		if component == model.VCSDir {
			return true, "version control"
		}
	}
	if r.opts.Exclude.Matches(rel) {
		return true, "excluded"
	}
	return false, ""
}

// directories creates every traversed directory, parents first.
func (r *run) directories(ctx context.Context) error {
	if len(r.dirs) == 0 {
		return nil
	}
	r.emit(Event{Kind: EventStageStarted, Stage: StageDirectories})

	for _, entry := range r.dirs {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := RenderFilename(r.g.renderer, entry.RelativePath, r.params)
		if err != nil {
			return newRenderError(RenderPath, entry.RelativePath, err)
		}
		dest := filepath.Join(r.target, rel)

		if r.writer.Exists(dest) {
			switch r.opts.Policy {
			case model.PolicyAppend:
				debug.Debug("[generator] Directory exists, keeping: %s", dest)
				continue
			case model.PolicyForce:
				if err := r.writer.RemoveAll(dest); err != nil {
					return err
				}
			}
		}

		if err := r.writer.CreateDir(dest); err != nil {
			return err
		}
		r.result.DirsCreated++
		r.emit(Event{Kind: EventDirectoryCreated, Stage: StageDirectories, Path: rel})
	}
	return nil
}

// writeFiles renders and writes every traversed file.
func (r *run) writeFiles(ctx context.Context) error {
	if len(r.files) == 0 {
		return nil
	}
	r.emit(Event{Kind: EventStageStarted, Stage: StageFiles})

	processor := NewFileProcessor(r.g.renderer, r.opts.DisableTemplating)

	for _, entry := range r.files {
		if err := ctx.Err(); err != nil {
			return err
		}

		src := filepath.Join(r.opts.TemplateRoot, filepath.FromSlash(entry.RelativePath))
		raw, err := afero.ReadFile(r.src, src)
		if err != nil {
			return newIOError(OpOpen, src, err)
		}
		entry.RawBytes = raw

		rel, err := RenderFilename(r.g.renderer, entry.RelativePath, r.params)
		if err != nil {
			return newRenderError(RenderPath, entry.RelativePath, err)
		}
		dest := filepath.Join(r.target, rel)

		if r.opts.Policy == model.PolicyAppend && r.writer.Exists(dest) {
			debug.Debug("[generator] File exists, keeping: %s", dest)
			r.result.FilesSkipped++
			r.emit(Event{Kind: EventFileSkipped, Stage: StageFiles, Path: rel})
			continue
		}

		content, err := processor.Process(entry, r.params)
		if err != nil {
			return err
		}

		if err := r.writer.WriteFile(dest, content, entry.Mode); err != nil {
			return err
		}
		r.result.FilesWritten++
		r.result.Files = append(r.result.Files, filepath.ToSlash(rel))
		r.emit(Event{Kind: EventFileWritten, Stage: StageFiles, Path: rel})
	}
	return nil
}

func (r *run) notes(_ context.Context) error {
	if r.opts.Notes == nil {
		return nil
	}
	r.emit(Event{Kind: EventStageStarted, Stage: StageNotes})

	out, err := r.g.renderer.Render("notes", *r.opts.Notes, r.params)
	if err != nil {
		return newRenderError(RenderNotes, model.DescriptorFile, err)
	}
	r.result.Notes = out
	return nil
}

// validateOptions validates Options.
func validateOptions(opts Options) error {
	if opts.TemplateRoot == "" {
		return newGeneratorError(InvalidOptions, "", errors.New("template root cannot be empty"))
	}
	if opts.Params == nil {
		return newGeneratorError(InvalidOptions, "", errors.New("parameters cannot be nil"))
	}
	if _, err := opts.Params.Name(); err != nil {
		return newGeneratorError(InvalidOptions, "", err)
	}
	return nil
}
