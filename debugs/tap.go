package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/stepscript/controls"
	"github.com/reusee/stepscript/interps"
	"github.com/reusee/stepscript/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a starlark REPL on stdin with globals bound.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}

// BreakTap returns a listener that taps the breaks a control script asks for.
// Ticks skipped by wait are not tapped.
// The REPL sees the script variables as vars, set(name, text) to assign one,
// and end() to stop the script.
type BreakTap func(ctx context.Context, script string) interps.Listener

func (Module) BreakTap(
	tap Tap,
) BreakTap {
	return func(ctx context.Context, script string) interps.Listener {
		return &interps.ListenerFuncs{
			OnBroke: func(interp *interps.Interpreter) {
				if !interp.BreakArmed() {
					return
				}
				control, ok := controls.Of(interp)
				if !ok {
					return
				}
				line := 0
				if command := interp.CurrentContext().Command(); command != nil {
					line = command.LineNumber
				}
				tap(ctx, script, map[string]any{
					"script": script,
					"line":   line,
					"vars":   control.Variables(),
					"set": func(name string, text string) {
						control.SetVariable(name, controls.ParseValue(text))
					},
					"end": func() {
						control.ClearWait()
						interp.SetNextCommandIndex(-1)
					},
				})
			},
		}
	}
}
