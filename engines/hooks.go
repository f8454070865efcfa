package engines

import (
	"context"

	"github.com/reusee/stepscript/interps"
	"github.com/reusee/stepscript/logs"
)

// Hooks observes instance lifecycles. Freed follows every fault.
type Hooks interface {
	Instantiated(ctx context.Context, instance *Instance)
	Freed(ctx context.Context, instance *Instance)
	RunawayFault(ctx context.Context, instance *Instance, err *interps.RunawayError)
	RuntimeFault(ctx context.Context, instance *Instance, err *interps.RuntimeError)
	Fault(ctx context.Context, instance *Instance, err error)
}

type NopHooks struct{}

var _ Hooks = NopHooks{}

func (NopHooks) Instantiated(context.Context, *Instance) {}

func (NopHooks) Freed(context.Context, *Instance) {}

func (NopHooks) RunawayFault(context.Context, *Instance, *interps.RunawayError) {}

func (NopHooks) RuntimeFault(context.Context, *Instance, *interps.RuntimeError) {}

func (NopHooks) Fault(context.Context, *Instance, error) {}

type LogHooks struct {
	Logger logs.Logger
}

var _ Hooks = LogHooks{}

func (l LogHooks) Instantiated(ctx context.Context, instance *Instance) {
	l.Logger.DebugContext(ctx, "script instantiated",
		"script", instance.Name,
	)
}

func (l LogHooks) Freed(ctx context.Context, instance *Instance) {
	l.Logger.DebugContext(ctx, "script freed",
		"script", instance.Name,
		"commands", instance.Interpreter.CommandCount(),
	)
}

func (l LogHooks) RunawayFault(ctx context.Context, instance *Instance, err *interps.RunawayError) {
	l.Logger.WarnContext(ctx, "runaway script",
		"script", instance.Name,
		"limit", err.Limit,
		"error", err,
	)
}

func (l LogHooks) RuntimeFault(ctx context.Context, instance *Instance, err *interps.RuntimeError) {
	l.Logger.ErrorContext(ctx, "script runtime error",
		"script", instance.Name,
		"error", err,
	)
}

func (l LogHooks) Fault(ctx context.Context, instance *Instance, err error) {
	l.Logger.ErrorContext(ctx, "script fault",
		"script", instance.Name,
		"error", err,
	)
}
