package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/scaffold/internal/app"
)

type templateNewOptions struct {
	typ   string
	force bool
}

type templateCheckOptions struct {
	subpath string
}

func newTemplateCommand(s *session) *cobra.Command {
	templateCmd := &cobra.Command{
		Use:   "template",
		Short: "Template authoring commands",
		Long: `Create and validate templates.

The template command group provides utilities for template authors, such
as creating a starter template and checking template syntax.`,
	}

	var newOpts templateNewOptions
	templateNewCmd := &cobra.Command{
		Use:   "new [PATH]",
		Short: "Create a new template from a starter",
		Long: `Create a new template directory from a built-in starter.

The starter contains a .scaffold.toml descriptor with example parameters
and a few templated files. If PATH is not specified, the template is
created in ./my-template.

Examples:
  scaffold template new
  scaffold template new ./my-template
  scaffold template new ./my-go-app --type go
  scaffold template new --force ./existing-dir`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runTemplateNew(cmd, args, newOpts)
		},
	}
	templateNewCmd.Flags().StringVarP(&newOpts.typ, "type", "t", "default", "Starter type to use (e.g., default, go)")
	templateNewCmd.Flags().BoolVarP(&newOpts.force, "force", "f", false, "Write into a non-empty directory")

	var checkOpts templateCheckOptions
	templateCheckCmd := &cobra.Command{
		Use:   "check [PATH]",
		Short: "Validate a template for syntax errors",
		Long: `Parse every templated part of a template without generating anything.

File contents, file and directory names, hook command lines and notes
are parsed. Files listed in disable_templating are skipped, excluded
entries are ignored, and non UTF-8 files that would fail generation are
reported. If PATH is not specified, the current directory is checked.

Examples:
  scaffold template check
  scaffold template check ./templates --path service`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runTemplateCheck(cmd, args, checkOpts)
		},
	}
	templateCheckCmd.Flags().StringVarP(&checkOpts.subpath, FlagPath, "r", "", DescPath)

	templateCmd.AddCommand(templateNewCmd)
	templateCmd.AddCommand(templateCheckCmd)
	return templateCmd
}

func (s *session) runTemplateNew(cmd *cobra.Command, args []string, opts templateNewOptions) error {
	path := "./my-template"
	if len(args) > 0 {
		path = args[0]
	}

	s.out.Info(fmt.Sprintf("Creating new template at: %s", path))
	s.out.Info(fmt.Sprintf("Starter type: %s", opts.typ))
	if opts.force {
		s.out.Warning("Force mode: existing files will be overwritten")
	}

	result, err := app.NewTemplate(cmd.Context(), app.NewTemplateOptions{
		Path:  path,
		Type:  opts.typ,
		Force: opts.force,
	})
	if err != nil {
		return err
	}

	s.out.Header("Template Created")
	s.out.Success(fmt.Sprintf("Created at: %s", result.Path))
	for _, file := range result.Files {
		s.out.Info("  " + file)
	}

	s.out.Separator()
	s.out.Info("Next steps:")
	s.out.Info(fmt.Sprintf("  1. Edit %s/.scaffold.toml to declare your parameters", path))
	s.out.Info("  2. Add template files using {{ parameter }} expressions")
	s.out.Info(fmt.Sprintf("  3. Run 'scaffold template check %s' to validate", path))
	return nil
}

func (s *session) runTemplateCheck(cmd *cobra.Command, args []string, opts templateCheckOptions) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	s.out.Info(fmt.Sprintf("Checking template in: %s", path))

	result, err := app.CheckTemplate(cmd.Context(), app.CheckTemplateOptions{
		Path:    path,
		Subpath: opts.subpath,
	})
	if err != nil {
		return err
	}

	if result.Valid() {
		s.out.Success(result.Summary())
		return nil
	}

	s.out.Header("Errors Found")
	for _, checkErr := range result.Errors {
		s.out.ErrorLine(fmt.Sprintf("%s (%s) - %s", checkErr.File, checkErr.Stage, checkErr.Message))
	}
	s.out.Separator()
	return app.NewValidationError(
		fmt.Sprintf("template check failed: %s, %d file(s) with errors", result.Summary(), result.FilesWithErrors),
		nil,
	)
}
