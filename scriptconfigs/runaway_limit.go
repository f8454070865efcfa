package scriptconfigs

import (
	"github.com/reusee/stepscript/cmds"
	"github.com/reusee/stepscript/configs"
)

// RunawayLimit caps the commands one script instance may run per tick.
// 0 is unlimited.
type RunawayLimit int

const DefaultRunawayLimit = 100_000

var _ configs.Configurable = RunawayLimit(0)

func (RunawayLimit) ConfigPath() string {
	return "runaway_limit"
}

// repeated flags: the last one wins
var runawayLimitFlags = cmds.Collect[int]("-runaway-limit")

func (Module) RunawayLimit(
	loader configs.Loader,
) RunawayLimit {
	if flags := *runawayLimitFlags; len(flags) > 0 {
		return RunawayLimit(flags[len(flags)-1])
	}
	if limit, ok := configs.Lookup[RunawayLimit](loader); ok {
		return limit
	}
	return DefaultRunawayLimit
}
