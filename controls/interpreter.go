package controls

import (
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"time"

	"github.com/reusee/stepscript/interps"
	"github.com/reusee/stepscript/scripts"
)

type WaitMode uint8

const (
	// WaitMillis makes wait count wall-clock milliseconds
	WaitMillis WaitMode = iota
	// WaitTicks makes wait count suspended batches
	WaitTicks
)

func (w WaitMode) String() string {
	if w == WaitTicks {
		return "ticks"
	}
	return "millis"
}

// Interpreter runs control scripts.
// Identifiers in argument positions are variables.
type Interpreter struct {
	*interps.Interpreter

	variables map[string]Value
	output    io.Writer
	waitMode  WaitMode
	now       func() time.Time

	waitTime  int64
	breakTime time.Time
}

var _ interps.Executor = new(Interpreter)

var _ interps.Waiter = new(Interpreter)

type Option func(*Interpreter)

func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.output = w
	}
}

func WithWaitMode(mode WaitMode) Option {
	return func(i *Interpreter) {
		i.waitMode = mode
	}
}

func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) {
		i.now = now
	}
}

func WithInterpreterOptions(options ...interps.Option) Option {
	return func(i *Interpreter) {
		for _, option := range options {
			option(i.Interpreter)
		}
	}
}

func New(program *scripts.Program, options ...Option) *Interpreter {
	i := &Interpreter{
		variables: make(map[string]Value),
		output:    os.Stdout,
		now:       time.Now,
	}
	i.Interpreter = interps.New(program, i)
	for _, option := range options {
		option(i)
	}
	return i
}

func NewAtLabel(program *scripts.Program, label string, options ...Option) (*Interpreter, error) {
	i := New(program, options...)
	index := program.LabelIndex(label)
	if index == -1 {
		return nil, interps.Errorf("invalid label requested by script: '%s'", label)
	}
	i.SetProgram(program, index)
	return i, nil
}

// Factory returns a constructor for control interpreters, usable as an engine interpreter type.
func Factory(options ...Option) func(*scripts.Program) (*interps.Interpreter, error) {
	return func(program *scripts.Program) (*interps.Interpreter, error) {
		return New(program, options...).Interpreter, nil
	}
}

// Of returns the control interpreter executing for interp, if any.
func Of(interp *interps.Interpreter) (*Interpreter, bool) {
	i, ok := interp.Executor().(*Interpreter)
	return i, ok
}

func (i *Interpreter) WaitMode() WaitMode {
	return i.waitMode
}

func (i *Interpreter) SetWaitMode(mode WaitMode) {
	i.waitMode = mode
}

// Variable reads a float 0 for names never set.
func (i *Interpreter) Variable(name string) Value {
	v, ok := i.variables[scripts.FoldKey(name)]
	if !ok {
		return FloatValue(0)
	}
	return v
}

func (i *Interpreter) SetVariable(name string, value Value) {
	i.variables[scripts.FoldKey(name)] = value
}

// Variables returns a copy of the variable table, keyed by folded names.
func (i *Interpreter) Variables() map[string]Value {
	return maps.Clone(i.variables)
}

// ArgumentValue resolves identifiers as variables and literals as themselves.
func (i *Interpreter) ArgumentValue(arg scripts.Argument) Value {
	switch arg.Kind {
	case scripts.ArgumentIdentifier:
		return i.Variable(arg.Value)
	case scripts.ArgumentString:
		return StringValue(arg.Value)
	case scripts.ArgumentInteger:
		return IntValue(arg.Int())
	}
	return FloatValue(arg.Float())
}

func (i *Interpreter) ExecuteCommand(interp *interps.Interpreter, command *scripts.Command) (bool, error) {
	fn, ok := commands[scripts.FoldKey(command.Name)]
	if !ok {
		return false, nil
	}
	if err := fn(i, interp, command); err != nil {
		return true, err
	}
	return true, nil
}

func (i *Interpreter) Waiting() bool {
	if i.waitTime > 0 {
		if i.breakTime.IsZero() {
			i.breakTime = i.now()
		}
		return true
	}
	return false
}

func (i *Interpreter) Waited() {
	if i.waitMode == WaitTicks {
		i.waitTime--
		return
	}
	now := i.now()
	i.waitTime -= now.Sub(i.breakTime).Milliseconds()
	if i.waitTime <= 0 {
		i.breakTime = time.Time{}
	} else {
		i.breakTime = now
	}
}

// ClearWait cancels a pending wait.
func (i *Interpreter) ClearWait() {
	i.waitTime = 0
	i.breakTime = time.Time{}
}

type commandFunc = func(i *Interpreter, interp *interps.Interpreter, command *scripts.Command) error

var commands = map[string]commandFunc{
	"goto":     (*Interpreter).doGoto,
	"gosub":    (*Interpreter).doGosub,
	"return":   (*Interpreter).doReturn,
	"end":      (*Interpreter).doEnd,
	"print":    (*Interpreter).doPrint,
	"println":  (*Interpreter).doPrintln,
	"set":      (*Interpreter).doSet,
	"inc":      (*Interpreter).doInc,
	"dec":      (*Interpreter).doDec,
	"goless":   jumpIf(func(c int) bool { return c < 0 }),
	"gogtr":    jumpIf(func(c int) bool { return c > 0 }),
	"goeq":     jumpIf(func(c int) bool { return c == 0 }),
	"goneq":    jumpIf(func(c int) bool { return c != 0 }),
	"golesseq": jumpIf(func(c int) bool { return c <= 0 }),
	"gogtreq":  jumpIf(func(c int) bool { return c >= 0 }),
	"break":    (*Interpreter).doBreak,
	"wait":     (*Interpreter).doWait,
}

func checkArguments(command *scripts.Command, n int) error {
	if len(command.Args) < n {
		return interps.Errorf("expected %d arguments for command '%s', got %d", n, command.Name, len(command.Args))
	}
	return nil
}

func labelIndex(interp *interps.Interpreter, arg scripts.Argument) (int, error) {
	if !arg.IsIdentifier() {
		return 0, interps.Errorf("argument is not an identifier: '%s'", arg.Value)
	}
	index := interp.CommandIndexByLabel(arg.Value)
	if index == -1 {
		return 0, interps.Errorf("invalid label requested by script: '%s'", arg.Value)
	}
	return index, nil
}

func (i *Interpreter) doGoto(interp *interps.Interpreter, command *scripts.Command) error {
	if err := checkArguments(command, 1); err != nil {
		return err
	}
	index, err := labelIndex(interp, command.Args[0])
	if err != nil {
		return err
	}
	interp.SetNextCommandIndex(index)
	return nil
}

func (i *Interpreter) doGosub(interp *interps.Interpreter, command *scripts.Command) error {
	if err := checkArguments(command, 1); err != nil {
		return err
	}
	index, err := labelIndex(interp, command.Args[0])
	if err != nil {
		return err
	}
	interp.PushSubroutine(index)
	return nil
}

func (i *Interpreter) doReturn(interp *interps.Interpreter, command *scripts.Command) error {
	if !interp.PopContext() {
		return interps.Errorf("return without gosub")
	}
	return nil
}

func (i *Interpreter) doEnd(interp *interps.Interpreter, command *scripts.Command) error {
	interp.SetNextCommandIndex(-1)
	return nil
}

func (i *Interpreter) doPrint(interp *interps.Interpreter, command *scripts.Command) error {
	if err := checkArguments(command, 1); err != nil {
		return err
	}
	if _, err := io.WriteString(i.output, i.ArgumentValue(command.Args[0]).String()); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (i *Interpreter) doPrintln(interp *interps.Interpreter, command *scripts.Command) error {
	if err := checkArguments(command, 1); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(i.output, i.ArgumentValue(command.Args[0]).String()); err != nil {
		return fmt.Errorf("println: %w", err)
	}
	return nil
}

func (i *Interpreter) doSet(interp *interps.Interpreter, command *scripts.Command) error {
	if err := checkArguments(command, 2); err != nil {
		return err
	}
	if !command.Args[0].IsIdentifier() {
		return interps.Errorf("attempted set on a non-variable")
	}
	i.SetVariable(command.Args[0].Value, i.ArgumentValue(command.Args[1]))
	return nil
}

func (i *Interpreter) doInc(interp *interps.Interpreter, command *scripts.Command) error {
	return i.step(command, 1)
}

func (i *Interpreter) doDec(interp *interps.Interpreter, command *scripts.Command) error {
	return i.step(command, -1)
}

func (i *Interpreter) step(command *scripts.Command, delta int64) error {
	if err := checkArguments(command, 1); err != nil {
		return err
	}
	arg := command.Args[0]
	if !arg.IsIdentifier() {
		return interps.Errorf("attempted %s on a non-variable", command.Name)
	}
	key := scripts.FoldKey(arg.Value)
	v, ok := i.variables[key]
	switch {
	case !ok:
		v = IntValue(delta)
	case v.Kind() == KindInteger:
		v = v.Add(delta)
	default:
		v = v.AddFloat(float64(delta))
	}
	i.variables[key] = v
	return nil
}

func jumpIf(cond func(int) bool) commandFunc {
	return func(i *Interpreter, interp *interps.Interpreter, command *scripts.Command) error {
		if err := checkArguments(command, 3); err != nil {
			return err
		}
		index, err := labelIndex(interp, command.Args[2])
		if err != nil {
			return err
		}
		a := i.ArgumentValue(command.Args[0])
		b := i.ArgumentValue(command.Args[1])
		if cond(a.Compare(b)) {
			interp.SetNextCommandIndex(index)
		}
		return nil
	}
}

func (i *Interpreter) doBreak(interp *interps.Interpreter, command *scripts.Command) error {
	interp.SetBreak()
	return nil
}

func (i *Interpreter) doWait(interp *interps.Interpreter, command *scripts.Command) error {
	if err := checkArguments(command, 1); err != nil {
		return err
	}
	f := i.ArgumentValue(command.Args[0]).Float()
	if math.IsNaN(f) {
		return interps.Errorf("wait requires a numeric value, got '%s'", command.Args[0].Value)
	}
	i.waitTime = truncate(f)
	i.breakTime = time.Time{}
	return nil
}
