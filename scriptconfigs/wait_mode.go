package scriptconfigs

import (
	"fmt"

	"github.com/reusee/stepscript/cmds"
	"github.com/reusee/stepscript/configs"
	"github.com/reusee/stepscript/controls"
)

var waitTicksFlag = cmds.Switch("-wait-ticks")

func (Module) WaitMode(
	loader configs.Loader,
) controls.WaitMode {
	if *waitTicksFlag {
		return controls.WaitTicks
	}
	switch mode := configs.First[string](loader, "wait_mode"); mode {
	case "ticks":
		return controls.WaitTicks
	case "millis", "":
		return controls.WaitMillis
	default:
		// the schema only admits the values above
		panic(fmt.Errorf("bad wait mode: %s", mode))
	}
}
