package scriptconfigs

import (
	"slices"

	"github.com/reusee/stepscript/configs"
)

// ControlType is the type metadata value of control scripts.
const ControlType = "control"

// Types lists the type metadata values run by the control interpreter.
type Types []string

func (Module) Types(
	loader configs.Loader,
) Types {
	types := Types{ControlType}
	for list := range configs.All[[]string](loader, "types") {
		for _, t := range list {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	return types
}
