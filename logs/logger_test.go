package logs

import (
	"log/slog"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/stepscript/cmds"
	"github.com/reusee/stepscript/modes"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
}

func TestLevelFlags(t *testing.T) {
	defer level.Set(level.Level())
	for _, test := range []struct {
		args     []string
		expected slog.Level
	}{
		{[]string{"-log", "warn"}, slog.LevelWarn},
		{[]string{"-log-debug"}, slog.LevelDebug},
		{[]string{"-log", "error"}, slog.LevelError},
		{[]string{"-log-info"}, slog.LevelInfo},
	} {
		if err := cmds.Execute(test.args); err != nil {
			t.Fatal(err)
		}
		if l := level.Level(); l != test.expected {
			t.Fatalf("%v: got %v", test.args, l)
		}
	}
}
