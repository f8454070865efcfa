package interps

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/reusee/stepscript/scripts"
)

// Executor gives commands their meaning.
// It reports false for a command name it does not recognize.
type Executor interface {
	ExecuteCommand(interp *Interpreter, command *scripts.Command) (bool, error)
}

type ExecutorFunc func(interp *Interpreter, command *scripts.Command) (bool, error)

var _ Executor = ExecutorFunc(nil)

func (e ExecutorFunc) ExecuteCommand(interp *Interpreter, command *scripts.Command) (bool, error) {
	return e(interp, command)
}

// Waiter is implemented by executors that keep their own suspension state,
// like a wait countdown.
type Waiter interface {
	// Waiting reports whether the next step should be skipped
	Waiting() bool
	// Waited is called once for each skipped step and decides how the wait decays
	Waited()
}

// Interpreter steps through programs one command at a time.
// It is driven by a single caller and does no locking.
type Interpreter struct {
	contexts     []*Context
	executor     Executor
	runawayLimit int
	commandCount int
	doBreak      bool
	breakArmed   bool
	listeners    []*registration
}

type registration struct {
	Listener
}

type Option func(*Interpreter)

// WithRunawayLimit sets how many commands may run between count resets; 0 is unlimited.
func WithRunawayLimit(limit int) Option {
	return func(i *Interpreter) {
		i.runawayLimit = limit
	}
}

func WithListeners(listeners ...Listener) Option {
	return func(i *Interpreter) {
		for _, listener := range listeners {
			i.listeners = append(i.listeners, &registration{listener})
		}
	}
}

// New returns an interpreter that starts at the first command of program.
func New(program *scripts.Program, executor Executor, options ...Option) *Interpreter {
	i := &Interpreter{
		executor: executor,
	}
	for _, option := range options {
		option(i)
	}
	i.SetProgram(program, 0)
	return i
}

// NewAtLabel returns an interpreter that starts at label.
func NewAtLabel(program *scripts.Program, label string, executor Executor, options ...Option) (*Interpreter, error) {
	index := program.LabelIndex(label)
	if index == -1 {
		return nil, Errorf("invalid label requested by script: '%s'", label)
	}
	i := New(program, executor, options...)
	i.SetProgram(program, index)
	return i, nil
}

func (i *Interpreter) Executor() Executor {
	return i.executor
}

// SetProgram clears the context stack and the break flag, then pushes a root
// context for program that will start at index.
func (i *Interpreter) SetProgram(program *scripts.Program, index int) {
	i.doBreak = false
	i.commandCount = 0
	i.contexts = i.contexts[:0]
	i.PushContext(program, ScriptStart, index)
}

// AddListener registers listener and returns a func that removes this registration.
func (i *Interpreter) AddListener(listener Listener) (remove func()) {
	r := &registration{listener}
	i.listeners = append(i.listeners, r)
	return func() {
		i.listeners = slices.DeleteFunc(i.listeners, func(l *registration) bool {
			return l == r
		})
	}
}

// RemoveListener removes every registration equal to listener.
// Listeners holding values that cannot be compared are never matched here;
// use the func returned by AddListener for those.
func (i *Interpreter) RemoveListener(listener Listener) {
	if listener == nil || !reflect.ValueOf(listener).Comparable() {
		return
	}
	i.listeners = slices.DeleteFunc(i.listeners, func(l *registration) bool {
		return reflect.ValueOf(l.Listener).Comparable() && l.Listener == listener
	})
}

func (i *Interpreter) PushContext(program *scripts.Program, startIndex int, nextIndex int) {
	i.contexts = append(i.contexts, &Context{
		Program:      program,
		CurrentIndex: startIndex,
		NextIndex:    nextIndex,
	})
}

// PushSubroutine pushes a context sharing the current program, continuing at nextIndex.
func (i *Interpreter) PushSubroutine(nextIndex int) {
	i.PushContext(i.CurrentContext().Program, 0, nextIndex)
}

// PopContext returns false and leaves the stack alone when only the root context remains.
func (i *Interpreter) PopContext() bool {
	if len(i.contexts) <= 1 {
		return false
	}
	i.contexts[len(i.contexts)-1] = nil
	i.contexts = i.contexts[:len(i.contexts)-1]
	return true
}

func (i *Interpreter) Depth() int {
	return len(i.contexts)
}

func (i *Interpreter) CurrentContext() *Context {
	if len(i.contexts) == 0 {
		return nil
	}
	return i.contexts[len(i.contexts)-1]
}

func (i *Interpreter) SetNextCommandIndex(index int) {
	i.CurrentContext().NextIndex = index
}

func (i *Interpreter) SetNextCommandIndexByLabel(label string) error {
	index := i.CommandIndexByLabel(label)
	if index == -1 {
		return Errorf("invalid label requested by script: '%s'", label)
	}
	i.CurrentContext().NextIndex = index
	return nil
}

// CommandIndexByLabel resolves label in the current program, -1 if absent.
func (i *Interpreter) CommandIndexByLabel(label string) int {
	return i.CurrentContext().Program.LabelIndex(label)
}

func (i *Interpreter) SetRunawayLimit(limit int) {
	i.runawayLimit = limit
}

func (i *Interpreter) RunawayLimit() int {
	return i.runawayLimit
}

func (i *Interpreter) ResetCommandCount() {
	i.commandCount = 0
}

func (i *Interpreter) CommandCount() int {
	return i.commandCount
}

// SetBreak suspends the next step.
func (i *Interpreter) SetBreak() {
	i.doBreak = true
}

// BreakArmed reports whether the last break taken came from SetBreak,
// as opposed to a Waiter still waiting.
func (i *Interpreter) BreakArmed() bool {
	return i.breakArmed
}

func (i *Interpreter) ShouldBreak() bool {
	if i.doBreak {
		return true
	}
	if waiter, ok := i.executor.(Waiter); ok {
		return waiter.Waiting()
	}
	return false
}

func (i *Interpreter) ResetBreak() {
	if i.doBreak {
		i.doBreak = false
		return
	}
	if waiter, ok := i.executor.(Waiter); ok {
		waiter.Waited()
	}
}

// StepForward executes at most one command.
// It returns false when there is nothing more to do this round: the script
// ended or a break was taken. Errors are *RuntimeError or *RunawayError.
func (i *Interpreter) StepForward() (bool, error) {
	if len(i.contexts) == 0 {
		i.fire(Listener.Ended)
		return false, nil
	}

	if i.ShouldBreak() {
		i.breakArmed = i.doBreak
		i.ResetBreak()
		i.fire(Listener.Broke)
		return false, nil
	}

	context := i.CurrentContext()
	if i.runawayLimit > 0 && i.commandCount >= i.runawayLimit {
		return false, &RunawayError{
			Limit:   i.runawayLimit,
			Command: context.Command(),
		}
	}

	if context.CurrentIndex == ScriptStart {
		i.fire(Listener.Started)
	}
	context.CurrentIndex = context.NextIndex
	context.NextIndex++
	i.fire(Listener.SteppedForward)

	command := context.Command()
	if command == nil {
		i.fire(Listener.Ended)
		return false, nil
	}

	ok, err := i.executor.ExecuteCommand(i, command)
	if err != nil {
		return false, asRuntimeError(err, command)
	}
	if !ok {
		return false, &RuntimeError{
			Message: fmt.Sprintf("unknown or unsupported command '%s'", command.Name),
			Command: command,
		}
	}
	i.commandCount++
	return true, nil
}

func asRuntimeError(err error, command *scripts.Command) error {
	var runaway *RunawayError
	if errors.As(err, &runaway) {
		return err
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		if runtimeErr.Command == nil {
			runtimeErr.Command = command
		}
		return err
	}
	return &RuntimeError{
		Command: command,
		Err:     err,
	}
}

// IsActive reports whether the current context sits on a real command.
func (i *Interpreter) IsActive() bool {
	context := i.CurrentContext()
	if context == nil {
		return false
	}
	return context.Command() != nil
}

// Go resets the command count and steps until a step reports no more work.
func (i *Interpreter) Go() error {
	i.ResetCommandCount()
	for {
		ok, err := i.StepForward()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func (i *Interpreter) fire(event func(Listener, *Interpreter)) {
	for _, listener := range i.listeners {
		event(listener.Listener, i)
	}
}
