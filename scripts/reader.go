package scripts

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reusee/stepscript/procs"
)

// Parse reads a whole script.
// With no descriptors any command name is accepted; otherwise each command must
// match an entry in one of them, first match wins.
// All diagnostics are reported together as a *ParseError.
func Parse(name string, source io.Reader, descriptors ...Descriptors) (*Program, error) {
	r := &reader{
		name:        name,
		tokenizer:   NewTokenizer(source),
		descriptors: descriptors,
		program:     NewProgram(),
	}
	if err := procs.Drive(r, next(stateStart)); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(r.diagnostics) > 0 {
		return nil, &ParseError{
			Diagnostics: r.diagnostics,
		}
	}
	return r.program, nil
}

func ParseString(name string, source string, descriptors ...Descriptors) (*Program, error) {
	return Parse(name, strings.NewReader(source), descriptors...)
}

func ParseFile(path string, descriptors ...Descriptors) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f, descriptors...)
}

type reader struct {
	name        string
	tokenizer   *Tokenizer
	descriptors []Descriptors
	program     *Program
	diagnostics []Diagnostic

	// index of the next command
	index int

	// command being read
	commandToken *Token
	entry        *Entry
	args         []Argument
}

type state = procs.Proc[*reader]

func next(fn func(*reader) (state, error)) state {
	return procs.Func[*reader](fn)
}

func (r *reader) report(token *Token, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if token.Kind == TokenIllegal && token.Message != "" {
		message += ": " + token.Message
	}
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Source:   r.name,
		Line:     token.Line,
		LineText: token.LineText,
		Message:  message,
	})
}

func stateStart(r *reader) (state, error) {
	token, err := r.tokenizer.Current()
	if err != nil {
		return nil, err
	}

	switch token.Kind {

	case TokenEOF:
		return nil, nil

	case TokenColon:
		r.tokenizer.Consume()
		return next(stateLabel), nil

	case TokenBang:
		r.tokenizer.Consume()
		return next(stateMetadata), nil

	case TokenNewline, TokenComment:
		r.tokenizer.Consume()
		return next(stateStart), nil

	case TokenIdentifier:
		r.commandToken = token
		r.entry = nil
		r.args = nil
		if len(r.descriptors) > 0 {
			for _, descriptors := range r.descriptors {
				if entry, ok := descriptors.Entry(token.Text); ok {
					r.entry = &entry
					break
				}
			}
			if r.entry == nil {
				r.report(token, "expected valid command, got %q", token.Text)
				return nil, nil
			}
		}
		r.tokenizer.Consume()
		return next(stateCommand), nil

	}

	r.report(token, "expected command or label declaration")
	return nil, nil
}

func stateLabel(r *reader) (state, error) {
	token, err := r.tokenizer.Current()
	if err != nil {
		return nil, err
	}
	if token.Kind != TokenIdentifier {
		r.report(token, "expected identifier for label declaration")
		return nil, nil
	}
	r.program.SetLabel(token.Text, r.index)
	r.tokenizer.Consume()
	return next(stateLabelEnd), nil
}

func stateLabelEnd(r *reader) (state, error) {
	token, err := r.tokenizer.Current()
	if err != nil {
		return nil, err
	}
	if token.Kind != TokenNewline {
		r.report(token, "expected end-of-line after label")
		return nil, nil
	}
	r.tokenizer.Consume()
	return next(stateStart), nil
}

func stateCommand(r *reader) (state, error) {
	token, err := r.tokenizer.Current()
	if err != nil {
		return nil, err
	}

	switch token.Kind {

	case TokenNumber, TokenFloat:
		r.checkArgument(token)
		kind := ArgumentNumber
		if isDecimalInteger(token.Text) {
			kind = ArgumentInteger
		}
		r.args = append(r.args, Argument{
			Value: token.Text,
			Kind:  kind,
		})
		r.tokenizer.Consume()
		return next(stateCommand), nil

	case TokenString:
		r.checkArgument(token)
		r.args = append(r.args, Argument{
			Value: token.Text,
			Kind:  ArgumentString,
		})
		r.tokenizer.Consume()
		return next(stateCommand), nil

	case TokenIdentifier:
		r.checkArgument(token)
		r.args = append(r.args, Argument{
			Value: token.Text,
			Kind:  ArgumentIdentifier,
		})
		r.tokenizer.Consume()
		return next(stateCommand), nil

	case TokenComment:
		r.tokenizer.Consume()
		return next(stateCommand), nil

	case TokenNewline:
		name := r.commandToken.Text
		if entry := r.entry; entry != nil {
			n := len(r.args)
			if entry.Strict && n != entry.Arguments {
				r.report(token, "expected %d arguments for command '%s', got %d", entry.Arguments, name, n)
				return nil, nil
			}
			if !entry.Strict && n < entry.Arguments {
				r.report(token, "expected at least %d arguments for command '%s', got %d", entry.Arguments, name, n)
				return nil, nil
			}
		}
		r.program.AddCommand(&Command{
			Name:       name,
			Args:       r.args,
			Line:       r.commandToken.LineText,
			LineNumber: r.commandToken.Line,
		})
		r.index++
		r.tokenizer.Consume()
		return next(stateStart), nil

	}

	r.report(token, "expected valid argument token")
	return nil, nil
}

func stateMetadata(r *reader) (state, error) {
	token, err := r.tokenizer.Current()
	if err != nil {
		return nil, err
	}
	if token.Kind != TokenIdentifier {
		r.report(token, "expected identifier for metadata key")
		return nil, nil
	}
	key := token.Text
	r.tokenizer.Consume()

	token, err = r.tokenizer.Current()
	if err != nil {
		return nil, err
	}
	if token.Kind != TokenColon {
		r.report(token, "expected ':' after metadata key")
		return nil, nil
	}
	r.tokenizer.Consume()

	token, err = r.tokenizer.Current()
	if err != nil {
		return nil, err
	}
	switch token.Kind {
	case TokenIdentifier, TokenString, TokenNumber, TokenFloat:
	default:
		r.report(token, "expected identifier, string, or numeric metadata value")
		return nil, nil
	}
	value := token.Text
	r.tokenizer.Consume()

	token, err = r.tokenizer.Current()
	if err != nil {
		return nil, err
	}
	if token.Kind != TokenNewline {
		r.report(token, "expected end-of-line after metadata value")
		return nil, nil
	}
	r.tokenizer.Consume()

	r.program.SetMetadata(key, value)
	return next(stateStart), nil
}

// checkArgument records a diagnostic for a type mismatch but lets the scan go on,
// so every bad argument on the line gets reported.
func (r *reader) checkArgument(token *Token) {
	if r.entry == nil {
		return
	}
	position := len(r.args)
	if position >= len(r.entry.Types) {
		return
	}
	name := r.commandToken.Text

	switch r.entry.Types[position] {

	case ArgumentInteger:
		if !token.Kind.IsNumeric() {
			r.report(token, "expected integer numeric argument for command '%s'", name)
		} else if !isDecimalInteger(token.Text) {
			r.report(token, "expected integer numeric argument for command '%s'", name)
		}

	case ArgumentNumber:
		if !token.Kind.IsNumeric() {
			r.report(token, "expected numeric argument for command '%s'", name)
		}

	case ArgumentIdentifier:
		if token.Kind != TokenIdentifier {
			r.report(token, "expected identifier argument for command '%s'", name)
		}

	case ArgumentString:
		if token.Kind != TokenString {
			r.report(token, "expected string argument for command '%s'", name)
		}

	}
}
