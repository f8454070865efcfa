package interps

import (
	"errors"
	"testing"

	"github.com/reusee/stepscript/scripts"
)

// testExecutor understands a handful of control commands.
type testExecutor struct {
	executed []string
}

func (e *testExecutor) ExecuteCommand(interp *Interpreter, command *scripts.Command) (bool, error) {
	e.executed = append(e.executed, command.Name)
	switch command.Name {
	case "nop":
	case "jump":
		return true, interp.SetNextCommandIndexByLabel(command.Args[0].Value)
	case "call":
		index := interp.CommandIndexByLabel(command.Args[0].Value)
		if index == -1 {
			return true, Errorf("no label %s", command.Args[0].Value)
		}
		interp.PushSubroutine(index)
	case "ret":
		if !interp.PopContext() {
			return true, Errorf("return without call")
		}
	case "stop":
		interp.SetNextCommandIndex(-1)
	case "pause":
		interp.SetBreak()
	case "fail":
		return true, errors.New("failed")
	default:
		return false, nil
	}
	return true, nil
}

func mustParse(t *testing.T, source string) *scripts.Program {
	t.Helper()
	program, err := scripts.ParseString(t.Name(), source)
	if err != nil {
		t.Fatal(err)
	}
	return program
}

func TestGo(t *testing.T) {
	program := mustParse(t, `
nop
call sub
nop
stop
:sub
nop
ret
`)
	executor := new(testExecutor)
	interp := New(program, executor)
	if interp.IsActive() {
		t.Fatal("should not be active before start")
	}
	if err := interp.Go(); err != nil {
		t.Fatal(err)
	}
	want := []string{"nop", "call", "nop", "ret", "nop", "stop"}
	if len(executor.executed) != len(want) {
		t.Fatalf("got %v", executor.executed)
	}
	for i, name := range want {
		if executor.executed[i] != name {
			t.Fatalf("got %v", executor.executed)
		}
	}
	if interp.IsActive() {
		t.Fatal("should be inactive")
	}
	if interp.Depth() != 1 {
		t.Fatalf("got %d", interp.Depth())
	}
	if interp.CommandCount() != 6 {
		t.Fatalf("got %d", interp.CommandCount())
	}
}

func TestRootContextNeverPopped(t *testing.T) {
	program := mustParse(t, "ret\n")
	interp := New(program, new(testExecutor))
	err := interp.Go()
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("got %v", err)
	}
	if runtimeErr.Command == nil || runtimeErr.Command.Name != "ret" {
		t.Fatalf("got %v", runtimeErr.Command)
	}
	if interp.Depth() != 1 {
		t.Fatalf("got %d", interp.Depth())
	}
	if interp.PopContext() {
		t.Fatal("root context popped")
	}
}

func TestRunawayLimit(t *testing.T) {
	program := mustParse(t, `
:top
jump top
`)
	executor := new(testExecutor)
	interp := New(program, executor, WithRunawayLimit(10))
	err := interp.Go()
	var runaway *RunawayError
	if !errors.As(err, &runaway) {
		t.Fatalf("got %v", err)
	}
	if runaway.Limit != 10 {
		t.Fatalf("got %d", runaway.Limit)
	}
	if len(executor.executed) != 10 {
		t.Fatalf("got %d", len(executor.executed))
	}

	// a fresh batch resets the count
	executor.executed = nil
	err = interp.Go()
	if !errors.As(err, &runaway) {
		t.Fatalf("got %v", err)
	}
	if len(executor.executed) != 10 {
		t.Fatalf("got %d", len(executor.executed))
	}
}

func TestBreak(t *testing.T) {
	program := mustParse(t, `
nop
pause
nop
`)
	executor := new(testExecutor)
	var broke, started, ended, stepped int
	interp := New(program, executor, WithListeners(&ListenerFuncs{
		OnStarted: func(*Interpreter) {
			started++
		},
		OnEnded: func(*Interpreter) {
			ended++
		},
		OnSteppedForward: func(*Interpreter) {
			stepped++
		},
		OnBroke: func(*Interpreter) {
			broke++
		},
	}))

	// the break set by pause suspends the rest of this batch
	if err := interp.Go(); err != nil {
		t.Fatal(err)
	}
	if len(executor.executed) != 2 {
		t.Fatalf("got %v", executor.executed)
	}
	if broke != 1 {
		t.Fatalf("got %d", broke)
	}
	if !interp.IsActive() || interp.ShouldBreak() {
		t.Fatal("should be active and resumable")
	}

	if err := interp.Go(); err != nil {
		t.Fatal(err)
	}
	if len(executor.executed) != 3 {
		t.Fatalf("got %v", executor.executed)
	}
	if interp.IsActive() {
		t.Fatal("should be inactive")
	}
	if started != 1 || ended != 1 || stepped != 4 {
		t.Fatalf("got %d %d %d", started, ended, stepped)
	}
}

func TestUnknownCommand(t *testing.T) {
	program := mustParse(t, "bogus 1 2\n")
	interp := New(program, new(testExecutor))
	err := interp.Go()
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("got %v", err)
	}
	if err.Error() != "line 1: unknown or unsupported command 'bogus'" {
		t.Fatalf("got %v", err)
	}
}

func TestExecutorErrorWrapped(t *testing.T) {
	program := mustParse(t, "nop\nfail\n")
	interp := New(program, new(testExecutor))
	err := interp.Go()
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("got %v", err)
	}
	if runtimeErr.Command.LineNumber != 2 {
		t.Fatalf("got %d", runtimeErr.Command.LineNumber)
	}
	if err.Error() != "line 2: failed" {
		t.Fatalf("got %v", err)
	}
}

func TestNewAtLabel(t *testing.T) {
	program := mustParse(t, `
nop
:second
stop
`)
	executor := new(testExecutor)
	interp, err := NewAtLabel(program, "SECOND", executor)
	if err != nil {
		t.Fatal(err)
	}
	if err := interp.Go(); err != nil {
		t.Fatal(err)
	}
	if len(executor.executed) != 1 || executor.executed[0] != "stop" {
		t.Fatalf("got %v", executor.executed)
	}

	_, err = NewAtLabel(program, "missing", executor)
	if err == nil {
		t.Fatal("should fail")
	}
}

func TestSharedProgram(t *testing.T) {
	program := mustParse(t, `
nop
pause
nop
`)
	a := new(testExecutor)
	b := new(testExecutor)
	interpA := New(program, a)
	interpB := New(program, b)
	if err := interpA.Go(); err != nil {
		t.Fatal(err)
	}
	if _, err := interpB.StepForward(); err != nil {
		t.Fatal(err)
	}
	if len(a.executed) != 2 || len(b.executed) != 1 {
		t.Fatalf("got %v %v", a.executed, b.executed)
	}
	if interpA.CurrentContext().CurrentIndex != 1 || interpB.CurrentContext().CurrentIndex != 0 {
		t.Fatal("contexts should be independent")
	}
}

func TestListenerRemove(t *testing.T) {
	program := mustParse(t, "nop\n")
	var n int
	listener := &ListenerFuncs{
		OnSteppedForward: func(*Interpreter) {
			n++
		},
	}
	interp := New(program, new(testExecutor))
	interp.AddListener(listener)
	interp.RemoveListener(listener)
	if err := interp.Go(); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("got %d", n)
	}
}

type taggedListener struct {
	*ListenerFuncs
	tags []string
}

func TestListenerRemoveUncomparable(t *testing.T) {
	program := mustParse(t, "nop\nnop\n")
	var n int
	listener := taggedListener{
		ListenerFuncs: &ListenerFuncs{
			OnSteppedForward: func(*Interpreter) {
				n++
			},
		},
		tags: []string{"a"},
	}
	interp := New(program, new(testExecutor))
	remove := interp.AddListener(listener)
	// not comparable, left in place
	interp.RemoveListener(listener)
	if _, err := interp.StepForward(); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("got %d", n)
	}
	remove()
	if err := interp.Go(); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("got %d", n)
	}
}
