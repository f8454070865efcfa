package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/stepscript/debugs"
	"github.com/reusee/stepscript/engines"
	"github.com/reusee/stepscript/logs"
	"github.com/reusee/stepscript/scriptconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs scriptconfigs.Module
	Engines engines.Module
	Debugs  debugs.Module
}
