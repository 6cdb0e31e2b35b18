package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/tacogips/scaffold/internal/template/generator"
)

var (
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"}).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "166", Dark: "214"})
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Bold(true)
	progressStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "31", Dark: "44"})
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "248", Dark: "240"})
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "91", Dark: "177"}).Bold(true)
)

const separator = "────────────────────────────────────────"

// Output writes user-facing messages.
type Output struct {
	Out io.Writer
	Err io.Writer
	// Color enables styling.
	Color bool
	// Quiet suppresses everything except errors.
	Quiet bool
	// Markdown renders notes with glamour.
	Markdown bool
}

// NewOutput creates an Output on the process stdout and stderr. Notes are
// rendered as markdown only when stdout is a terminal.
func NewOutput(color, quiet bool) *Output {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return &Output{
		Out:      os.Stdout,
		Err:      os.Stderr,
		Color:    color,
		Quiet:    quiet,
		Markdown: tty && color,
	}
}

func (o *Output) style(s lipgloss.Style, text string) string {
	if !o.Color {
		return text
	}
	return s.Render(text)
}

func (o *Output) println(text string) {
	if o.Quiet {
		return
	}
	fmt.Fprintln(o.Out, text)
}

// Info prints an informational message.
func (o *Output) Info(msg string) {
	o.println(msg)
}

// Success prints a success message.
func (o *Output) Success(msg string) {
	o.println(o.style(successStyle, "✓") + " " + msg)
}

// Warning prints a warning message.
func (o *Output) Warning(msg string) {
	o.println(o.style(warningStyle, "⚠") + " " + msg)
}

// Progress prints a progress indicator.
func (o *Output) Progress(msg string) {
	o.println(o.style(progressStyle, "→") + " " + msg)
}

// Header prints a section header.
func (o *Output) Header(title string) {
	o.println("\n" + o.style(headerStyle, "=== "+title+" ==="))
}

// Separator prints a separator line.
func (o *Output) Separator() {
	o.println(o.style(separatorStyle, separator))
}

// ErrorLine prints a failure line to the error stream. Quiet does not
// suppress it.
func (o *Output) ErrorLine(msg string) {
	fmt.Fprintln(o.Err, o.style(errorStyle, "✗")+" "+msg)
}

// Error prints the final error of a command as "Error: <stage>: <message>".
func (o *Output) Error(err error) {
	fmt.Fprintf(o.Err, "%s %s: %v\n", o.style(errorStyle, "Error:"), errorStage(err), err)
}

// Notes prints rendered notes between separators.
func (o *Output) Notes(notes string) {
	if o.Quiet || strings.TrimSpace(notes) == "" {
		return
	}
	o.Separator()
	o.println(strings.TrimRight(o.markdown(notes), "\n"))
	o.Separator()
}

func (o *Output) markdown(text string) string {
	if !o.Markdown {
		return text
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return text
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return rendered
}

// OnEvent prints progress of a generation run.
func (o *Output) OnEvent(e generator.Event) {
	switch e.Kind {
	case generator.EventStageStarted:
		switch e.Stage {
		case generator.StageResolveTarget:
			o.Progress(fmt.Sprintf("Creating directory %s", e.Path))
		case generator.StagePreHooks:
			o.Progress("Triggering pre-hooks…")
		case generator.StageFiles:
			o.Progress("Templating files…")
		case generator.StagePostHooks:
			o.Progress("Triggering post-hooks…")
		}
	case generator.EventHookStarted:
		o.println("  $ " + e.Command)
	case generator.EventFileSkipped:
		o.println("  " + o.style(warningStyle, "skip") + " " + e.Path)
	}
}

var _ generator.Observer = (*Output)(nil)
