package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/stepscript/cmds"
	"github.com/reusee/stepscript/debugs"
	"github.com/reusee/stepscript/engines"
	"github.com/reusee/stepscript/interps"
	"github.com/reusee/stepscript/logs"
	"github.com/reusee/stepscript/modes"
	"github.com/reusee/stepscript/scriptconfigs"
)

var (
	callName  = cmds.Var[string]("-call")
	callLabel = cmds.Var[string]("-label")
	checkOnly = cmds.Switch("-check")
	tapBreaks = cmds.Switch("-tap")
)

func main() {
	ce(cmds.Execute(os.Args[1:]))
	files := expandFiles(*filePatterns)
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no script file, use -file PATH")
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		engine *engines.Engine,
		descriptor scriptconfigs.Descriptor,
		interval scriptconfigs.TickInterval,
		breakTap debugs.BreakTap,
	) {

		names, err := loadScripts(engine, files, descriptor)
		ce(err)
		if *checkOnly {
			logger.InfoContext(ctx, "scripts ok", "scripts", names)
			return
		}

		if *tapBreaks {
			engine.AttachListener(func(instance *engines.Instance) interps.Listener {
				return breakTap(instance.Context(), instance.Name)
			})
		}

		label := ""
		if *callName != "" {
			names = []string{*callName}
			label = *callLabel
		}
		for _, name := range names {
			ok, err := engine.CallScript(ctx, name, label)
			ce(err)
			if !ok {
				logger.WarnContext(ctx, "script not started",
					"script", name,
				)
			}
		}

		if err := engine.Run(ctx, time.Duration(interval)); err != nil && ctx.Err() == nil {
			ce(err)
		}
	})
}

func ce(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
