package logs

import (
	"context"
	"crypto/rand"
)

// Instance identifies one running script instance in logs and errors.
type Instance string

type instanceKey struct{}

var InstanceKey instanceKey

func InstanceOf(ctx context.Context) Instance {
	if v := ctx.Value(InstanceKey); v != nil {
		return v.(Instance)
	}
	return ""
}

type NewInstance func(ctx context.Context, script string) (context.Context, Instance)

func (Module) NewInstance(
	logger Logger,
) NewInstance {
	return func(ctx context.Context, script string) (context.Context, Instance) {

		// caller
		creator := InstanceOf(ctx)

		instance := Instance(rand.Text())
		ctx = context.WithValue(ctx, InstanceKey, instance)

		args := []any{
			"script", script,
		}
		if creator != "" {
			args = append(args, "creator", creator)
		}
		logger.DebugContext(ctx, "new instance", args...)

		return ctx, instance
	}
}
