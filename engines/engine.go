package engines

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reusee/stepscript/interps"
	"github.com/reusee/stepscript/logs"
	"github.com/reusee/stepscript/scripts"
)

// MetadataKey names the program metadata that selects an interpreter type.
const MetadataKey = "type"

// Factory creates an interpreter positioned at the start of program.
type Factory func(program *scripts.Program) (*interps.Interpreter, error)

// Instance is one running script.
type Instance struct {
	ID          logs.Instance
	Name        string
	Interpreter *interps.Interpreter

	ctx context.Context
}

func (i *Instance) Context() context.Context {
	return i.ctx
}

// Engine runs many scripts, giving each active instance one batch per tick.
// Like an interpreter, it is driven by a single goroutine.
type Engine struct {
	scripts      map[string]*scripts.Program
	types        map[string]Factory
	active       []*Instance
	pending      []*Instance
	ticking      bool
	hooks        Hooks
	newInstance  logs.NewInstance
	runawayLimit int
	listeners    []func(*Instance) interps.Listener
}

type Option func(*Engine)

func WithHooks(hooks Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRunawayLimit overrides the runaway limit of every instance created.
func WithRunawayLimit(limit int) Option {
	return func(e *Engine) {
		e.runawayLimit = limit
	}
}

// WithInstanceIDs tags instance contexts with ids from newInstance.
func WithInstanceIDs(newInstance logs.NewInstance) Option {
	return func(e *Engine) {
		e.newInstance = newInstance
	}
}

// WithListeners attaches a listener made by fn to each instance created.
func WithListeners(fn func(*Instance) interps.Listener) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, fn)
	}
}

func New(options ...Option) *Engine {
	e := &Engine{
		scripts: make(map[string]*scripts.Program),
		types:   make(map[string]Factory),
		hooks:   NopHooks{},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// AttachListener makes fn's listener part of every instance created from now on.
func (e *Engine) AttachListener(fn func(*Instance) interps.Listener) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) AddScript(name string, program *scripts.Program) {
	e.scripts[scripts.FoldKey(name)] = program
}

func (e *Engine) Script(name string) *scripts.Program {
	return e.scripts[scripts.FoldKey(name)]
}

func (e *Engine) RemoveScript(name string) *scripts.Program {
	key := scripts.FoldKey(name)
	program := e.scripts[key]
	delete(e.scripts, key)
	return program
}

// SetInterpreterType binds a type metadata value to a factory. A nil factory removes the binding.
func (e *Engine) SetInterpreterType(typ string, factory Factory) {
	key := scripts.FoldKey(typ)
	if factory == nil {
		delete(e.types, key)
		return
	}
	e.types[key] = factory
}

// CallScript starts an instance of the named script, at label if not empty.
// It reports false without error when the script or its type is unknown.
// Instances started during a tick first run in the next one.
func (e *Engine) CallScript(ctx context.Context, name string, label string) (bool, error) {
	program := e.Script(name)
	if program == nil {
		return false, nil
	}
	factory, ok := e.types[scripts.FoldKey(program.Metadata(MetadataKey))]
	if !ok {
		return false, nil
	}

	interp, err := factory(program)
	if err != nil {
		return false, fmt.Errorf("instantiate %s: %w", name, err)
	}
	if label != "" {
		if err := interp.SetNextCommandIndexByLabel(label); err != nil {
			return false, fmt.Errorf("call %s: %w", name, err)
		}
	}
	if e.runawayLimit > 0 {
		interp.SetRunawayLimit(e.runawayLimit)
	}

	instance := &Instance{
		Name:        name,
		Interpreter: interp,
		ctx:         ctx,
	}
	if e.newInstance != nil {
		instance.ctx, instance.ID = e.newInstance(ctx, name)
	}
	for _, fn := range e.listeners {
		interp.AddListener(fn(instance))
	}

	if e.ticking {
		e.pending = append(e.pending, instance)
	} else {
		e.active = append(e.active, instance)
	}
	e.hooks.Instantiated(instance.ctx, instance)
	return true, nil
}

// Tick runs one batch of every active instance, in the order they were started,
// and retires the ones that finished or failed.
func (e *Engine) Tick() {
	if len(e.active) == 0 && len(e.pending) == 0 {
		return
	}
	e.ticking = true
	next := make([]*Instance, 0, len(e.active))
	for _, instance := range e.active {
		if e.run(instance) {
			next = append(next, instance)
		}
	}
	e.ticking = false
	e.active = append(next, e.pending...)
	e.pending = nil
}

func (e *Engine) run(instance *Instance) (keep bool) {
	ctx := instance.ctx
	defer func() {
		if p := recover(); p != nil {
			e.hooks.Fault(ctx, instance, logs.WrapInstance(ctx, fmt.Errorf("panic: %v", p)))
			e.hooks.Freed(ctx, instance)
			keep = false
		}
	}()

	if err := instance.Interpreter.Go(); err != nil {
		var runaway *interps.RunawayError
		var runtimeErr *interps.RuntimeError
		switch {
		case errors.As(err, &runaway):
			e.hooks.RunawayFault(ctx, instance, runaway)
		case errors.As(err, &runtimeErr):
			e.hooks.RuntimeFault(ctx, instance, runtimeErr)
		default:
			e.hooks.Fault(ctx, instance, logs.WrapInstance(ctx, err))
		}
		e.hooks.Freed(ctx, instance)
		return false
	}

	if !instance.Interpreter.IsActive() {
		e.hooks.Freed(ctx, instance)
		return false
	}
	return true
}

// Active returns the number of live instances, including those waiting to join.
func (e *Engine) Active() int {
	return len(e.active) + len(e.pending)
}

func (e *Engine) Instances() []*Instance {
	ret := make([]*Instance, 0, e.Active())
	ret = append(ret, e.active...)
	return append(ret, e.pending...)
}

// Run ticks every interval until no instance is left or ctx is done.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		e.Tick()
		if e.Active() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
