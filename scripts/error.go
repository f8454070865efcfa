package scripts

import (
	"fmt"
	"strings"
)

type Diagnostic struct {
	Source   string
	Line     int
	LineText string
	Message  string
}

func (d Diagnostic) String() string {
	if d.Source == "" {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("%s:%d: %s", d.Source, d.Line, d.Message)
}

// ParseError carries every diagnostic collected while reading one script.
type ParseError struct {
	Diagnostics []Diagnostic
}

func (p *ParseError) Error() string {
	var sb strings.Builder
	for i, d := range p.Diagnostics {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}
