package scriptconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/stepscript/configs"
	"github.com/reusee/stepscript/logs"
)

//go:embed schema.cue
var schema string

var filenames = []string{
	"stepscript.cue",
	".stepscript.cue",
}

// ConfigPaths lists the config files found, most local first.
type ConfigPaths []string

func (Module) ConfigPaths() ConfigPaths {
	var paths []string

	// working directory
	if workingDir, err := os.Getwd(); err == nil {
		paths = append(paths, existing(workingDir)...)
	}

	// user config dir
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, existing(configDir)...)
	}

	// system wide dir
	paths = append(paths, existing("/etc")...)

	return paths
}

func existing(dir string) (ret []string) {
	for _, filename := range filenames {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			ret = append(ret, path)
		}
	}
	return
}

func (Module) ConfigsLoader(
	paths ConfigPaths,
	logger logs.Logger,
) configs.Loader {
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, schema)
}
