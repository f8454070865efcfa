package controls

import (
	"math"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindInteger Kind = iota
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	}
	return "string"
}

// Value is a variable or argument value.
// The zero Value is integer 0.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func IntValue(i int64) Value {
	return Value{
		kind: KindInteger,
		i:    i,
	}
}

func FloatValue(f float64) Value {
	return Value{
		kind: KindFloat,
		f:    f,
	}
}

func StringValue(s string) Value {
	return Value{
		kind: KindString,
		s:    s,
	}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNumeric() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

// Int truncates floats. Strings that do not parse as numbers give 0.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return truncate(v.f)
	}
	s := strings.TrimSpace(v.s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return truncate(f)
	}
	return 0
}

func truncate(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(f)
}

// Float gives NaN for strings that do not parse as numbers.
func (v Value) Float() float64 {
	switch v.kind {
	case KindInteger:
		return float64(v.i)
	case KindFloat:
		return v.f
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return v.s
}

// Compare orders two numeric values by their float value and anything else
// by the text they render to.
func (v Value) Compare(other Value) int {
	if v.IsNumeric() && other.IsNumeric() {
		a, b := v.Float(), other.Float()
		switch {
		case a == b:
			return 0
		case a < b:
			return -1
		}
		return 1
	}
	return strings.Compare(v.String(), other.String())
}

// Add keeps integers integral and appends to strings.
func (v Value) Add(n int64) Value {
	switch v.kind {
	case KindInteger:
		return IntValue(v.i + n)
	case KindFloat:
		return FloatValue(v.f + float64(n))
	}
	return StringValue(v.s + strconv.FormatInt(n, 10))
}

// AddFloat turns integers into floats and appends to strings.
func (v Value) AddFloat(f float64) Value {
	switch v.kind {
	case KindInteger:
		return FloatValue(float64(v.i) + f)
	case KindFloat:
		return FloatValue(v.f + f)
	}
	return StringValue(v.s + strconv.FormatFloat(f, 'g', -1, 64))
}

// ParseValue reads text the way a literal argument would be read:
// integers, then floats, otherwise a string.
func ParseValue(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f)
	}
	return StringValue(s)
}
