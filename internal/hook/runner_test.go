package hook

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr error
	}{
		{"simple", "git init", []string{"git", "init"}, nil},
		{"double quotes", `echo "hello world"`, []string{"echo", "hello world"}, nil},
		{"single quotes", `touch 'a b.txt'`, []string{"touch", "a b.txt"}, nil},
		{"escaped space", `touch a\ b`, []string{"touch", "a b"}, nil},
		{"no expansion", "echo $HOME", []string{"echo", "$HOME"}, nil},
		{"empty", "", nil, ErrEmptyCommand},
		{"blank", "   ", nil, ErrEmptyCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplit_Unbalanced(t *testing.T) {
	_, err := Split(`echo "unterminated`)
	var splitErr *SplitError
	require.True(t, errors.As(err, &splitErr))
	assert.Equal(t, `echo "unterminated`, splitErr.Command)
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("hook tests rely on POSIX utilities")
	}
}

func TestExecRunner_RunsInCwd(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	before, err := os.Getwd()
	require.NoError(t, err)

	r := &ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	require.NoError(t, r.Run(context.Background(), "touch 'created by hook.txt'", dir))

	_, err = os.Stat(filepath.Join(dir, "created by hook.txt"))
	assert.NoError(t, err)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after, "process working directory must not change")
}

func TestExecRunner_CapturesStdout(t *testing.T) {
	skipOnWindows(t)
	var out bytes.Buffer
	r := &ExecRunner{Stdout: &out, Stderr: &bytes.Buffer{}}
	require.NoError(t, r.Run(context.Background(), `echo "hi there"`, t.TempDir()))
	assert.Equal(t, "hi there\n", out.String())
}

func TestExecRunner_ExitError(t *testing.T) {
	skipOnWindows(t)
	r := &ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), "false", t.TempDir())

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "false", exitErr.Command)
	assert.Equal(t, []string{"false"}, exitErr.Argv)
	assert.NotZero(t, exitErr.ExitCode)
}

func TestExecRunner_SpawnError(t *testing.T) {
	r := &ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), "definitely-not-a-real-program-7f3a", t.TempDir())

	var spawnErr *SpawnError
	require.True(t, errors.As(err, &spawnErr))
	assert.Equal(t, []string{"definitely-not-a-real-program-7f3a"}, spawnErr.Argv)
}

func TestExecRunner_EmptyCommand(t *testing.T) {
	r := NewExecRunner()
	assert.ErrorIs(t, r.Run(context.Background(), "  ", t.TempDir()), ErrEmptyCommand)
}

func TestTail(t *testing.T) {
	var buf bytes.Buffer
	w := &tail{buf: &buf, max: 4}
	n, err := w.Write([]byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "cdef", buf.String())
}
