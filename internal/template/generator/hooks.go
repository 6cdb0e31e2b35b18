package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/tacogips/scaffold/internal/hook"
)

// runHooks renders and runs commands one after another in the target
// directory. The first failure aborts.
func (r *run) runHooks(ctx context.Context, stage Stage, commands []string) error {
	if len(commands) == 0 {
		return nil
	}
	r.emit(Event{Kind: EventStageStarted, Stage: stage})

	for i, raw := range commands {
		name := fmt.Sprintf("%s[%d]", stage, i)
		commandLine, err := r.g.renderer.Render(name, raw, r.params)
		if err != nil {
			e := newRenderError(RenderHook, name, err)
			e.Command = raw
			return e
		}

		r.emit(Event{Kind: EventHookStarted, Stage: stage, Command: commandLine})
		if err := r.g.runner.Run(ctx, commandLine, r.target); err != nil {
			return hookFailure(commandLine, err)
		}
		r.result.HooksRun++
	}
	return nil
}

func hookFailure(commandLine string, cause error) *GeneratorError {
	e := &GeneratorError{Type: HookFailure, Command: commandLine, ExitCode: -1, Cause: cause}
	var exitErr *hook.ExitError
	if errors.As(cause, &exitErr) {
		e.ExitCode = exitErr.ExitCode
	}
	return e
}
