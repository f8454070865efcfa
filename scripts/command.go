package scripts

import (
	"math"
	"strconv"
	"strings"
)

type ArgumentKind uint8

const (
	// ArgumentAny is only meaningful as a descriptor constraint
	ArgumentAny ArgumentKind = iota
	ArgumentIdentifier
	ArgumentInteger
	ArgumentNumber
	ArgumentString
)

func (k ArgumentKind) String() string {
	switch k {
	case ArgumentIdentifier:
		return "IDENTIFIER"
	case ArgumentInteger:
		return "INTEGER"
	case ArgumentNumber:
		return "NUMBER"
	case ArgumentString:
		return "STRING"
	}
	return "ANY"
}

type Argument struct {
	Value string
	Kind  ArgumentKind
}

func (a Argument) IsIdentifier() bool {
	return a.Kind == ArgumentIdentifier
}

func (a Argument) IsString() bool {
	return a.Kind == ArgumentString
}

func (a Argument) IsNumber() bool {
	return a.Kind == ArgumentInteger || a.Kind == ArgumentNumber
}

func (a Argument) IsInteger() bool {
	return a.Kind == ArgumentInteger
}

func (a Argument) IsFloat() bool {
	return a.Kind == ArgumentNumber
}

// Int returns the argument as an integer, accepting 0x hex.
// Non-numeric arguments and unparsable values give 0.
func (a Argument) Int() int64 {
	if !a.IsNumber() {
		return 0
	}
	n, _ := parseInteger(a.Value)
	return n
}

// isDecimalInteger reports whether s is a signed base-10 literal that fits in 64 bits.
// Only these are read as INTEGER arguments.
func isDecimalInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// parseInteger reads a signed decimal or 0x hex literal that fits in 64 bits.
func parseInteger(s string) (int64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 {
		return 0, false
	}
	negative := strings.HasPrefix(s, "-")
	base := 10
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
		base = 16
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		if u > 1<<63 {
			return 0, false
		}
		return -int64(u), true
	}
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

// Float returns the argument as a float, NaN when it is not numeric.
func (a Argument) Float() float64 {
	if !a.IsNumber() {
		return math.NaN()
	}
	if a.IsInteger() {
		return float64(a.Int())
	}
	f, err := strconv.ParseFloat(a.Value, 64)
	if err != nil {
		if n, ok := parseInteger(a.Value); ok {
			return float64(n)
		}
		return math.NaN()
	}
	return f
}

func (a Argument) String() string {
	if a.Kind == ArgumentString {
		return strconv.Quote(a.Value)
	}
	return a.Value
}

type Command struct {
	Name       string
	Args       []Argument
	Line       string
	LineNumber int
}

func (c *Command) String() string {
	var sb strings.Builder
	sb.WriteString(c.Line)
	sb.WriteString("\t// ")
	sb.WriteString(c.Name)
	for _, arg := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(arg.Kind.String())
	}
	return sb.String()
}
