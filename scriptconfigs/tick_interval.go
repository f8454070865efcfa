package scriptconfigs

import (
	"fmt"
	"time"

	"github.com/reusee/stepscript/cmds"
	"github.com/reusee/stepscript/configs"
	"github.com/reusee/stepscript/vars"
)

type TickInterval time.Duration

const DefaultTickInterval = TickInterval(50 * time.Millisecond)

type tickIntervalConfig string

func (tickIntervalConfig) ConfigPath() string {
	return "tick_interval"
}

var tickIntervalFlag = cmds.Var[time.Duration]("-tick")

func (Module) TickInterval(
	loader configs.Loader,
) TickInterval {
	if *tickIntervalFlag < 0 {
		panic(fmt.Errorf("bad -tick: %v is not positive", *tickIntervalFlag))
	}
	var fromConfig time.Duration
	if str := configs.Get[tickIntervalConfig](loader); str != "" {
		d, err := time.ParseDuration(string(str))
		if err != nil {
			panic(fmt.Errorf("bad tick_interval: %w", err))
		}
		if d <= 0 {
			panic(fmt.Errorf("bad tick_interval: %v is not positive", d))
		}
		fromConfig = d
	}
	return TickInterval(vars.FirstNonZero(
		*tickIntervalFlag,
		fromConfig,
		time.Duration(DefaultTickInterval),
	))
}
