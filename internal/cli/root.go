package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tacogips/scaffold/internal/app"
	"github.com/tacogips/scaffold/internal/build"
	"github.com/tacogips/scaffold/internal/config"
	"github.com/tacogips/scaffold/internal/debug"
	"github.com/tacogips/scaffold/internal/hook"
	"github.com/tacogips/scaffold/internal/template/model"
	"github.com/tacogips/scaffold/internal/template/params"
)

var buildInfo = build.Read()

// Version information, overridable by the main package.
var (
	Version   = buildInfo.Version
	GitCommit = buildInfo.GitCommit
	BuildDate = buildInfo.BuildDate
)

// rootOptions holds the flags of the root command.
type rootOptions struct {
	subpath    string
	gitRef     string
	privateKey string
	name       string
	targetDir  string
	force      bool
	append     bool
	params     []string
	paramsFile string
	noInput    bool

	noColor    bool
	quiet      bool
	debug      bool
	configPath string
}

// session carries what every command needs once flags are parsed.
type session struct {
	opts rootOptions
	cfg  *config.Config
	out  *Output

	// interactive reports whether prompts can be shown. Nil means stdin
	// is checked for a terminal.
	interactive func() bool
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

func newRootCommand() (*cobra.Command, *session) {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:   "scaffold <template>",
		Short: "Generate a project from a template directory",
		Long: `scaffold generates a project from a template tree.

The template is a local directory or a git repository containing a
.scaffold.toml descriptor. Parameters declared in the descriptor are
asked for interactively (or seeded with --param and --params-file), then
every file and path is rendered into the target directory.

Examples:
  scaffold ./templates/service
  scaffold ./templates/service --name billing --param lang=go
  scaffold https://github.com/acme/templates.git --path service --git_ref v1.2.0
  scaffold ./templates/service --name billing --append --no-input
  scaffold git@github.com:acme/templates.git -k ~/.ssh/deploy_key --path service`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
		RunE: s.runScaffold,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&s.opts.subpath, FlagPath, "r", "", DescPath)
	flags.StringVarP(&s.opts.gitRef, FlagGitRef, "t", "", DescGitRef)
	flags.StringVarP(&s.opts.privateKey, FlagPrivateKey, "k", "", DescPrivateKey)
	flags.StringVarP(&s.opts.name, FlagName, "n", "", DescName)
	flags.StringVarP(&s.opts.targetDir, FlagTargetDir, "d", "", DescTargetDir)
	flags.BoolVarP(&s.opts.force, FlagForce, "f", false, DescForce)
	flags.BoolVarP(&s.opts.append, FlagAppend, "a", false, DescAppend)
	flags.StringArrayVar(&s.opts.params, FlagParam, nil, DescParam)
	flags.StringVar(&s.opts.paramsFile, FlagParamsFile, "", DescParamsFile)
	flags.BoolVar(&s.opts.noInput, FlagNoInput, false, DescNoInput)

	persistent := rootCmd.PersistentFlags()
	persistent.BoolVar(&s.opts.noColor, FlagNoColor, false, DescNoColor)
	persistent.BoolVarP(&s.opts.quiet, FlagQuiet, "q", false, DescQuiet)
	persistent.BoolVar(&s.opts.debug, FlagDebug, false, DescDebug)
	persistent.StringVar(&s.opts.configPath, FlagConfig, "", DescConfig)

	rootCmd.AddCommand(newTemplateCommand(s))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd, s
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, s := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		s.output().Error(err)
		stop()
		os.Exit(1)
	}
}

// setup loads the configuration and applies the output flags.
func (s *session) setup(cmd *cobra.Command) error {
	debug.SetDebug(s.opts.debug)
	debug.SetNoColor(s.opts.noColor)

	loader := config.NewLoader()
	var err error
	if s.opts.configPath != "" {
		s.cfg, err = loader.Load(s.opts.configPath)
	} else {
		s.cfg, err = loader.LoadOrDefault(config.DefaultConfigPath())
	}
	if err != nil {
		return err
	}

	if s.cfg.Output.Debug && !s.opts.debug {
		debug.SetDebug(true)
	}
	color := s.cfg.Output.Color && !s.opts.noColor
	debug.SetNoColor(!color)

	out := NewOutput(color, s.cfg.Output.Quiet || s.opts.quiet)
	if w := cmd.OutOrStdout(); w != os.Stdout {
		out.Out = w
		out.Markdown = false
	}
	out.Err = cmd.ErrOrStderr()
	s.out = out

	debug.DebugSection("[cli] Configuration")
	debug.DebugValue("[cli] Cache directory", s.cfg.Cache.Directory)
	debug.DebugValue("[cli] Interactive", s.cfg.Prompt.Interactive)
	return nil
}

// output returns the configured Output, or a plain one when setup did
// not get that far.
func (s *session) output() *Output {
	if s.out != nil {
		return s.out
	}
	return NewOutput(!s.opts.noColor, false)
}

func (s *session) runScaffold(cmd *cobra.Command, args []string) error {
	if s.opts.gitRef != "" {
		if err := ValidateGitRef(s.opts.gitRef); err != nil {
			return app.NewConfigurationError("invalid --"+FlagGitRef, err)
		}
	}

	seeded, err := s.seededParams()
	if err != nil {
		return err
	}

	runner := &hook.ExecRunner{Stdout: s.out.Out, Stderr: s.out.Err}
	if s.out.Quiet {
		runner.Stdout = io.Discard
	}

	result, err := app.Scaffold(cmd.Context(), app.ScaffoldOptions{
		Location:       args[0],
		Subpath:        s.opts.subpath,
		GitRef:         s.opts.gitRef,
		PrivateKeyPath: s.opts.privateKey,
		ProjectName:    s.opts.name,
		TargetDir:      s.opts.targetDir,
		Force:          s.opts.force,
		Append:         s.opts.append,
		Params:         seeded,
		Config:         s.cfg,
		Prompter:       s.prompter(),
		Runner:         runner,
		Observer:       s.out,
	})
	if err != nil {
		return err
	}

	name, _ := result.Params.Name()
	s.out.Success(fmt.Sprintf("Your project %s is ready at %s", name, result.TargetDir))
	if result.FilesSkipped > 0 {
		s.out.Info(fmt.Sprintf("  Kept %d existing file(s)", result.FilesSkipped))
	}
	s.out.Notes(result.Notes)
	return nil
}

// seededParams merges --params-file values under --param values.
func (s *session) seededParams() (model.ParameterSet, error) {
	seeded := model.NewParameterSet()
	if s.opts.paramsFile != "" {
		fromFile, err := params.LoadParamsFile(s.opts.paramsFile)
		if err != nil {
			return nil, err
		}
		seeded.Merge(fromFile)
	}

	fromFlags, err := params.ParseSeeded(s.opts.params)
	if err != nil {
		return nil, err
	}
	seeded.Merge(fromFlags)
	return seeded, nil
}

func (s *session) prompter() params.Prompter {
	interactive := s.interactive
	if interactive == nil {
		interactive = func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		}
	}
	if s.opts.noInput || !s.cfg.Prompt.Interactive || !interactive() {
		debug.Debug("[cli] Prompting disabled, using defaults")
		return params.NonInteractivePrompter{}
	}
	return NewSurveyPrompter()
}
