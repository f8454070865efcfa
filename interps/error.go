package interps

import (
	"fmt"

	"github.com/reusee/stepscript/scripts"
)

// RuntimeError is fatal to the interpreter that raised it.
type RuntimeError struct {
	Message string
	// Command is the command executing when the error was raised, if any
	Command *scripts.Command
	Err     error
}

func Errorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Message: fmt.Sprintf(format, args...),
	}
}

func (r *RuntimeError) Error() string {
	message := r.Message
	if message == "" && r.Err != nil {
		message = r.Err.Error()
	}
	if r.Command != nil {
		return fmt.Sprintf("line %d: %s", r.Command.LineNumber, message)
	}
	return message
}

func (r *RuntimeError) Unwrap() error {
	return r.Err
}

// RunawayError reports an interpreter that hit its runaway limit.
type RunawayError struct {
	Limit   int
	Command *scripts.Command
}

func (r *RunawayError) Error() string {
	if r.Command != nil {
		return fmt.Sprintf("caught runaway script after %d steps, near line %d", r.Limit, r.Command.LineNumber)
	}
	return fmt.Sprintf("caught runaway script after %d steps", r.Limit)
}
