package engines

import (
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/stepscript/controls"
	"github.com/reusee/stepscript/logs"
	"github.com/reusee/stepscript/scriptconfigs"
)

type Module struct {
	dscope.Module
}

// Output receives what control scripts print.
type Output io.Writer

func (Module) Output() Output {
	return os.Stdout
}

func (Module) Engine(
	logger logs.Logger,
	newInstance logs.NewInstance,
	limit scriptconfigs.RunawayLimit,
	types scriptconfigs.Types,
	waitMode controls.WaitMode,
	output Output,
) *Engine {
	engine := New(
		WithHooks(LogHooks{
			Logger: logger,
		}),
		WithInstanceIDs(newInstance),
		WithRunawayLimit(int(limit)),
	)
	factory := controls.Factory(
		controls.WithWaitMode(waitMode),
		controls.WithOutput(output),
	)
	for _, typ := range types {
		engine.SetInterpreterType(typ, factory)
	}
	return engine
}
