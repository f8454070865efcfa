package logs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/stepscript/modes"
)

func TestNewInstance(t *testing.T) {
	buf := new(bytes.Buffer)
	level.Set(slog.LevelDebug)
	defer level.Set(slog.LevelInfo)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		newInstance NewInstance,
	) {
		ctx := context.Background()

		ctx1, instance1 := newInstance(ctx, "foo")
		ctx2, instance2 := newInstance(ctx1, "bar")

		if InstanceOf(ctx2) != instance2 {
			t.Fatalf("got %v", InstanceOf(ctx2))
		}

		lines := strings.Split(buf.String(), "\n")
		if !strings.Contains(lines[0], "logs.instance="+string(instance1)) {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[0], "script=foo") {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[1], "logs.instance="+string(instance2)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[1], "creator="+string(instance1)) {
			t.Fatalf("got %v", lines[1])
		}

		err := WrapInstance(ctx1, errors.New("foo"))
		if !strings.Contains(err.Error(), "instance: "+string(instance1)) {
			t.Fatalf("got %v", err)
		}
		if err := WrapInstance(ctx, errors.New("foo")); err.Error() != "foo" {
			t.Fatalf("got %v", err)
		}
	})
}
