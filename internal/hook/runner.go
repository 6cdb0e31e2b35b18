// Package hook runs lifecycle commands declared by a template.
//
// A command line is split into words with POSIX shell quoting rules and
// executed directly, without a shell, in an explicit working directory.
// The caller's process working directory is never changed.
package hook

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/tacogips/scaffold/internal/debug"
)

// Runner executes one command line in a working directory.
type Runner interface {
	Run(ctx context.Context, commandLine, cwd string) error
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Stdout and Stderr receive the child's output. Nil means the
	// parent's stdout and stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Env is appended to the parent's environment.
	Env []string
}

// NewExecRunner returns a runner that inherits the parent's stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Split breaks a command line into words. Quoting and escaping follow
// POSIX shell rules; no expansion is performed.
func Split(commandLine string) ([]string, error) {
	words, err := shellquote.Split(commandLine)
	if err != nil {
		return nil, &SplitError{Command: commandLine, Cause: err}
	}
	if len(words) == 0 {
		return nil, ErrEmptyCommand
	}
	return words, nil
}

// Run splits commandLine and runs it in cwd. A non-zero exit yields an
// *ExitError; a failure to start yields a *SpawnError.
func (r *ExecRunner) Run(ctx context.Context, commandLine, cwd string) error {
	argv, err := Split(commandLine)
	if err != nil {
		return err
	}

	log := debug.Logger("hook")
	log.Debug().Str("command", commandLine).Strs("argv", argv).Str("cwd", cwd).Msg("running hook")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = cwd
	cmd.Stdout = orDefault(r.Stdout, os.Stdout)

	var stderr bytes.Buffer
	cmd.Stderr = io.MultiWriter(orDefault(r.Stderr, os.Stderr), &tail{buf: &stderr, max: stderrTail})
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{
				Command:  commandLine,
				Argv:     argv,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return &SpawnError{Command: commandLine, Argv: argv, Cause: err}
	}
	return nil
}

func orDefault(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}

const stderrTail = 4096

// tail keeps at most max trailing bytes of what is written to it.
type tail struct {
	buf *bytes.Buffer
	max int
}

func (t *tail) Write(p []byte) (int, error) {
	n := len(p)
	t.buf.Write(p)
	if over := t.buf.Len() - t.max; over > 0 {
		t.buf.Next(over)
	}
	return n, nil
}
