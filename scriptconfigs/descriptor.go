package scriptconfigs

import (
	"github.com/reusee/stepscript/configs"
	"github.com/reusee/stepscript/controls"
	"github.com/reusee/stepscript/scripts"
)

type descriptorConfig struct {
	Arguments int      `json:"arguments"`
	Strict    bool     `json:"strict"`
	Types     []string `json:"types"`
}

var argumentKinds = map[string]scripts.ArgumentKind{
	"any":        scripts.ArgumentAny,
	"identifier": scripts.ArgumentIdentifier,
	"integer":    scripts.ArgumentInteger,
	"number":     scripts.ArgumentNumber,
	"string":     scripts.ArgumentString,
}

// Descriptor validates scripts at load time: the control commands plus any
// configured entries. Entries from more local config files win.
type Descriptor struct {
	*scripts.Descriptor
}

var _ scripts.Descriptors = Descriptor{}

func (Module) Descriptor(
	loader configs.Loader,
) Descriptor {
	descriptor := controls.NewDescriptor()
	var tables []map[string]descriptorConfig
	for table := range configs.All[map[string]descriptorConfig](loader, "descriptors") {
		tables = append(tables, table)
	}
	// apply the least local first
	for i := len(tables) - 1; i >= 0; i-- {
		for name, entry := range tables[i] {
			var kinds []scripts.ArgumentKind
			for _, t := range entry.Types {
				kinds = append(kinds, argumentKinds[t])
			}
			descriptor.Set(name, entry.Arguments, entry.Strict, kinds...)
		}
	}
	return Descriptor{
		Descriptor: descriptor,
	}
}
