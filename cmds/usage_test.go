package cmds

import (
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
		}).Desc("BAR"),
		"baz": Sub(map[string]*Command{
			"qux": Func(func() {}).Desc("QUX"),
		}).Desc("BAZ"),
	}).Desc("FOO"))
	buf := new(strings.Builder)
	executor.WriteUsage(buf)
	usage := buf.String()
	for _, want := range []string{"FOO", "  bar", "    qux", "-h, help"} {
		if !strings.Contains(usage, want) {
			t.Fatalf("missing %q in %s", want, usage)
		}
	}
	// aliases are listed once
	if strings.Count(usage, "print this usage") != 1 {
		t.Fatalf("got %s", usage)
	}
}
