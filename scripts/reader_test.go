package scripts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const loopScript = `
:start
set x 0
:loop
inc x
goless x 5 loop
println x
end
`

func TestParse(t *testing.T) {
	program, err := ParseString("loop", loopScript)
	if err != nil {
		t.Fatal(err)
	}
	if program.Len() != 5 {
		t.Fatalf("got %d commands", program.Len())
	}
	if i := program.LabelIndex("start"); i != 0 {
		t.Fatalf("got %d", i)
	}
	if i := program.LabelIndex("LOOP"); i != 1 {
		t.Fatalf("got %d", i)
	}
	if i := program.LabelIndex("nope"); i != -1 {
		t.Fatalf("got %d", i)
	}

	command := program.Command(2)
	if command.Name != "goless" {
		t.Fatalf("got %v", command.Name)
	}
	if command.LineNumber != 6 {
		t.Fatalf("got %d", command.LineNumber)
	}
	if command.Line != "goless x 5 loop" {
		t.Fatalf("got %q", command.Line)
	}
	if len(command.Args) != 3 {
		t.Fatalf("got %v", command.Args)
	}
	if !command.Args[0].IsIdentifier() || !command.Args[1].IsInteger() || !command.Args[2].IsIdentifier() {
		t.Fatalf("got %v", command.Args)
	}
	if program.Command(5) != nil || program.Command(-1) != nil {
		t.Fatal("out of range commands should be nil")
	}
}

func TestParseArgumentKinds(t *testing.T) {
	program, err := ParseString("kinds", `cmd 1 2.5 99999999999999999999 "s" 'q' ident 0x1F +5`)
	if err != nil {
		t.Fatal(err)
	}
	args := program.Command(0).Args
	expected := []ArgumentKind{
		ArgumentInteger,
		ArgumentNumber,
		// overflows int64, falls back to floating
		ArgumentNumber,
		ArgumentString,
		ArgumentString,
		ArgumentIdentifier,
		// only base 10 literals are integers
		ArgumentNumber,
		ArgumentInteger,
	}
	if len(args) != len(expected) {
		t.Fatalf("got %v", args)
	}
	for i, kind := range expected {
		if args[i].Kind != kind {
			t.Fatalf("argument %d: expected %v, got %v", i, kind, args[i].Kind)
		}
	}
}

func TestParseMetadata(t *testing.T) {
	program, err := ParseString("meta", `
! type: demo
!Author:"someone"
!version:2
!ratio:0.5
noop
`)
	if err != nil {
		t.Fatal(err)
	}
	if v := program.Metadata("TYPE"); v != "demo" {
		t.Fatalf("got %q", v)
	}
	if v := program.Metadata("author"); v != "someone" {
		t.Fatalf("got %q", v)
	}
	if v := program.Metadata("version"); v != "2" {
		t.Fatalf("got %q", v)
	}
	if v := program.Metadata("ratio"); v != "0.5" {
		t.Fatalf("got %q", v)
	}
	if program.Len() != 1 {
		t.Fatalf("got %d", program.Len())
	}
}

func testDescriptor() *Descriptor {
	return NewDescriptor().
		Set("pair", 2, true).
		Set("some", 1, false).
		Set("typed", 4, true, ArgumentInteger, ArgumentNumber, ArgumentIdentifier, ArgumentString).
		Set("jump", 1, true, ArgumentIdentifier)
}

func parseErrors(t *testing.T, src string, descriptors ...Descriptors) []Diagnostic {
	t.Helper()
	_, err := ParseString("test", src, descriptors...)
	if err == nil {
		t.Fatalf("expected error for %q", src)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %T %v", err, err)
	}
	return parseErr.Diagnostics
}

func TestParseArity(t *testing.T) {
	diags := parseErrors(t, "!type:demo\npair 1\n", testDescriptor())
	if len(diags) != 1 {
		t.Fatalf("got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "'pair'") ||
		!strings.Contains(diags[0].Message, "expected 2 arguments") {
		t.Fatalf("got %v", diags[0].Message)
	}
	if diags[0].Line != 2 {
		t.Fatalf("got %d", diags[0].Line)
	}

	diags = parseErrors(t, "some\n", testDescriptor())
	if !strings.Contains(diags[0].Message, "at least 1") {
		t.Fatalf("got %v", diags[0].Message)
	}

	// non-strict accepts more than the minimum
	if _, err := ParseString("test", "some 1 2 3\npair a b\n", testDescriptor()); err != nil {
		t.Fatal(err)
	}
}

func TestParseArgumentTypesAccumulate(t *testing.T) {
	diags := parseErrors(t, `typed 1.5 "x" 3 ident`+"\n", testDescriptor())
	if len(diags) != 4 {
		t.Fatalf("got %v", diags)
	}
	for i, want := range []string{
		"expected integer numeric argument",
		"expected numeric argument",
		"expected identifier argument",
		"expected string argument",
	} {
		if !strings.Contains(diags[i].Message, want) {
			t.Fatalf("diagnostic %d: got %v", i, diags[i].Message)
		}
	}

	if _, err := ParseString("test", `typed 1 1.5 ident "s"`, testDescriptor()); err != nil {
		t.Fatal(err)
	}
}

func TestParseHexFailsIntegerConstraint(t *testing.T) {
	descriptor := NewDescriptor().Set("cmd", 1, false, ArgumentInteger)
	diags := parseErrors(t, "cmd 0x10\n", descriptor)
	if len(diags) != 1 {
		t.Fatalf("got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "expected integer numeric argument for command 'cmd'") {
		t.Fatalf("got %q", diags[0].Message)
	}
	if _, err := ParseString("test", "cmd 16\ncmd -3\n", descriptor); err != nil {
		t.Fatal(err)
	}
}

func TestParseErrorsAcrossLines(t *testing.T) {
	diags := parseErrors(t, "jump 1\njump \"a\"\n", testDescriptor())
	if len(diags) != 2 {
		t.Fatalf("got %v", diags)
	}
	if diags[0].Line != 1 || diags[1].Line != 2 {
		t.Fatalf("got %v", diags)
	}
	_, err := ParseString("test", "jump 1\njump \"a\"\n", testDescriptor())
	if got := err.Error(); got != "test:1: expected identifier argument for command 'jump'\ntest:2: expected identifier argument for command 'jump'" {
		t.Fatalf("got %q", got)
	}
}

func TestParseStructureErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{"bogus\n", "expected valid command"},
		{":\n", "expected identifier for label declaration"},
		{":a b\n", "expected end-of-line after label"},
		{"5 a\n", "expected command or label declaration"},
		{"\"str\"\n", "expected command or label declaration"},
		{"pair a :\n", "expected valid argument token"},
		{"pair a 12abc\n", "malformed number"},
		{"!5:a\n", "expected identifier for metadata key"},
		{"!k a\n", "expected ':' after metadata key"},
		{"!k:\n", "expected identifier, string, or numeric metadata value"},
		{"!k:v w\n", "expected end-of-line after metadata value"},
		{"pair a b /* open\n", "unterminated block comment"},
	}
	for _, test := range tests {
		diags := parseErrors(t, test.src, testDescriptor())
		if !strings.Contains(diags[len(diags)-1].Message, test.message) {
			t.Fatalf("src %q: got %v", test.src, diags)
		}
	}
}

func TestParseStopsOnStructureError(t *testing.T) {
	diags := parseErrors(t, ":a b\nbogus\nbogus\n", testDescriptor())
	if len(diags) != 1 {
		t.Fatalf("got %v", diags)
	}
}

func TestParseWithoutDescriptors(t *testing.T) {
	program, err := ParseString("free", "anything goes here\nAND here 1 2\n")
	if err != nil {
		t.Fatal(err)
	}
	if program.Len() != 2 {
		t.Fatalf("got %d", program.Len())
	}
}

func TestParseDescriptorOrder(t *testing.T) {
	first := NewDescriptor().Set("cmd", 1, true)
	second := NewDescriptor().Set("cmd", 2, true).Set("other", 0, true)
	if _, err := ParseString("order", "cmd a\nother\n", first, second); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseString("order", "cmd a b\n", first, second); err == nil {
		t.Fatal("first matching descriptor should win")
	}
}

func TestParseLastLineWithoutNewline(t *testing.T) {
	program, err := ParseString("tail", "a\nb 1")
	if err != nil {
		t.Fatal(err)
	}
	if program.Len() != 2 {
		t.Fatalf("got %d", program.Len())
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")
	if err := os.WriteFile(path, []byte(loopScript), 0644); err != nil {
		t.Fatal(err)
	}
	program, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if program.Len() != 5 {
		t.Fatalf("got %d", program.Len())
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("should error")
	}
}
