package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/scaffold/internal/config"
	"github.com/tacogips/scaffold/internal/template/generator"
	"github.com/tacogips/scaffold/internal/template/model"
)

type recordedRun struct {
	command string
	cwd     string
}

type recordingRunner struct {
	runs []recordedRun
}

func (r *recordingRunner) Run(_ context.Context, commandLine, cwd string) error {
	r.runs = append(r.runs, recordedRun{command: commandLine, cwd: cwd})
	return nil
}

const serviceDescriptor = `
[template]
exclude = ["./build"]
notes = "cd {{ target_dir }}"

[parameters.lang]
message = "Language?"
type = "select"
values = ["go", "rust"]

[parameters.port]
message = "Port?"
type = "integer"
default = 8080

[hooks]
post = ["echo {{ name }}"]
`

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func newServiceTemplate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		model.DescriptorFile:      serviceDescriptor,
		"{{name}}.{{lang}}.txt":   "{{ name }} listens on {{ port }}",
		"build/artifact":          "never copied",
		".DS_Store":               "junk",
		"docs/{{ author }}.md":    "by {{ author }}",
	})
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestScaffold_LocalTemplate(t *testing.T) {
	tmplRoot := newServiceTemplate(t)
	target := filepath.Join(t.TempDir(), "out")
	runner := &recordingRunner{}

	cfg := config.DefaultConfig()
	cfg.Defaults.Parameters["author"] = "ada"

	result, err := Scaffold(context.Background(), ScaffoldOptions{
		Location:    tmplRoot,
		ProjectName: "svc",
		TargetDir:   target,
		Config:      cfg,
		Runner:      runner,
	})
	require.NoError(t, err)

	assert.Equal(t, "svc listens on 8080", readFile(t, filepath.Join(target, "svc.go.txt")))
	assert.Equal(t, "by ada", readFile(t, filepath.Join(target, "docs", "ada.md")))
	assert.NoFileExists(t, filepath.Join(target, "build", "artifact"))
	assert.NoFileExists(t, filepath.Join(target, ".DS_Store"), "configured ignore patterns apply")
	assert.NoFileExists(t, filepath.Join(target, model.DescriptorFile))

	assert.Equal(t, "cd "+result.TargetDir, result.Notes)
	assert.Equal(t, tmplRoot, result.Template.RootPath)
	require.Len(t, runner.runs, 1)
	assert.Equal(t, "echo svc", runner.runs[0].command)
	assert.Equal(t, result.TargetDir, runner.runs[0].cwd)
}

func TestScaffold_SeededParamsOverrideConfig(t *testing.T) {
	tmplRoot := newServiceTemplate(t)
	target := filepath.Join(t.TempDir(), "out")

	cfg := config.DefaultConfig()
	cfg.Defaults.Parameters["author"] = "ada"

	_, err := Scaffold(context.Background(), ScaffoldOptions{
		Location:    tmplRoot,
		ProjectName: "svc",
		TargetDir:   target,
		Config:      cfg,
		Params:      model.ParameterSet{"author": model.StringValue("grace"), "lang": model.StringValue("rust")},
		Runner:      &recordingRunner{},
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(target, "docs", "grace.md"))
	assert.FileExists(t, filepath.Join(target, "svc.rust.txt"))
}

func TestScaffold_MemMapFs(t *testing.T) {
	tmplRoot := newServiceTemplate(t)
	fs := afero.NewMemMapFs()

	result, err := Scaffold(context.Background(), ScaffoldOptions{
		Location:    tmplRoot,
		ProjectName: "svc",
		TargetDir:   "/work/svc",
		Runner:      &recordingRunner{},
		Fs:          fs,
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/work/svc/svc.go.txt")
	require.NoError(t, err)
	assert.Equal(t, "svc listens on 8080", string(data))
	assert.Contains(t, result.Files, "svc.go.txt")
	assert.NoDirExists(t, "/work/svc")
}

func TestScaffoldWithParameters(t *testing.T) {
	tmplRoot := newServiceTemplate(t)
	target := filepath.Join(t.TempDir(), "out")

	result, err := ScaffoldWithParameters(context.Background(), ScaffoldOptions{
		Location:    tmplRoot,
		ProjectName: "api",
		TargetDir:   target,
		Params:      model.ParameterSet{"lang": model.StringValue("go"), "port": model.StringValue("1")},
		Runner:      &recordingRunner{},
	}, model.ParameterSet{
		"port":   model.IntegerValue(9000),
		"author": model.StringValue("lin"),
		"name":   model.StringValue("ignored"),
	})
	require.NoError(t, err)

	assert.Equal(t, "api listens on 9000", readFile(t, filepath.Join(target, "api.go.txt")))
	name, err := result.Params.Name()
	require.NoError(t, err)
	assert.Equal(t, "api", name)
}

func TestScaffoldWithParameters_RequiresName(t *testing.T) {
	_, err := ScaffoldWithParameters(context.Background(), ScaffoldOptions{
		Location: newServiceTemplate(t),
	}, model.NewParameterSet())
	require.Error(t, err)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ConfigurationFailed, appErr.Type)
}

func TestScaffold_ErrorTypes(t *testing.T) {
	existing := t.TempDir()

	tests := []struct {
		name  string
		setup func(t *testing.T) ScaffoldOptions
		want  AppErrorType
	}{
		{
			name: "missing template",
			setup: func(t *testing.T) ScaffoldOptions {
				return ScaffoldOptions{Location: filepath.Join(t.TempDir(), "nope"), ProjectName: "x"}
			},
			want: TemplateFetchFailed,
		},
		{
			name: "empty location",
			setup: func(t *testing.T) ScaffoldOptions {
				return ScaffoldOptions{ProjectName: "x"}
			},
			want: ConfigurationFailed,
		},
		{
			name: "bad exclude pattern",
			setup: func(t *testing.T) ScaffoldOptions {
				root := t.TempDir()
				writeTree(t, root, map[string]string{model.DescriptorFile: "[template]\nexclude = [\"[a\"]\n"})
				return ScaffoldOptions{Location: root, ProjectName: "x", TargetDir: filepath.Join(t.TempDir(), "x")}
			},
			want: ConfigurationFailed,
		},
		{
			name: "required parameter without default",
			setup: func(t *testing.T) ScaffoldOptions {
				root := t.TempDir()
				writeTree(t, root, map[string]string{
					model.DescriptorFile: "[parameters.owner]\nmessage = \"Owner?\"\ntype = \"string\"\nrequired = true\n",
				})
				return ScaffoldOptions{Location: root, ProjectName: "x"}
			},
			want: ResolutionFailed,
		},
		{
			name: "existing target",
			setup: func(t *testing.T) ScaffoldOptions {
				return ScaffoldOptions{Location: newServiceTemplate(t), ProjectName: "x", TargetDir: existing}
			},
			want: MaterializationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.setup(t)
			opts.Runner = &recordingRunner{}

			_, err := Scaffold(context.Background(), opts)
			require.Error(t, err)

			var appErr *AppError
			require.True(t, errors.As(err, &appErr), "got %T: %v", err, err)
			assert.Equal(t, tt.want, appErr.Type)
		})
	}
}

func TestScaffold_ExistingTargetKeepsGeneratorError(t *testing.T) {
	_, err := Scaffold(context.Background(), ScaffoldOptions{
		Location:    newServiceTemplate(t),
		ProjectName: "x",
		TargetDir:   t.TempDir(),
		Runner:      &recordingRunner{},
	})

	var genErr *generator.GeneratorError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, generator.DirectoryExists, genErr.Type)
	assert.Equal(t, generator.CategoryFilesystem, genErr.Category())
}

func TestScaffold_ForceAndAppend(t *testing.T) {
	tmplRoot := newServiceTemplate(t)
	target := filepath.Join(t.TempDir(), "out")
	base := ScaffoldOptions{Location: tmplRoot, ProjectName: "svc", TargetDir: target, Runner: &recordingRunner{}}

	_, err := Scaffold(context.Background(), base)
	require.NoError(t, err)
	writeTree(t, target, map[string]string{"svc.go.txt": "edited", "extra.txt": "mine"})

	appendOpts := base
	appendOpts.Append = true
	result, err := Scaffold(context.Background(), appendOpts)
	require.NoError(t, err)
	assert.Equal(t, "edited", readFile(t, filepath.Join(target, "svc.go.txt")))
	assert.Equal(t, 0, result.FilesWritten)

	forceOpts := base
	forceOpts.Force = true
	_, err = Scaffold(context.Background(), forceOpts)
	require.NoError(t, err)
	assert.Equal(t, "svc listens on 8080", readFile(t, filepath.Join(target, "svc.go.txt")))
	assert.NoFileExists(t, filepath.Join(target, "extra.txt"))
}
