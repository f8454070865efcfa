package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/reusee/stepscript/cmds"
	"github.com/reusee/stepscript/engines"
	"github.com/reusee/stepscript/scripts"
)

var filePatterns = cmds.Collect[string]("-file")

// expandFiles globs each pattern, skipping directories.
// A pattern matching nothing is kept as is so loading reports it.
func expandFiles(patterns []string) (files []string) {
	for _, pattern := range patterns {
		paths, err := filepath.Glob(pattern)
		if err != nil || len(paths) == 0 {
			files = append(files, pattern)
			continue
		}
		for _, path := range paths {
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}
			files = append(files, path)
		}
	}
	return
}

// loadScripts adds every file to engine, reporting all failures together.
func loadScripts(engine *engines.Engine, paths []string, descriptors ...scripts.Descriptors) (names []string, err error) {
	var errs []error
	for _, path := range paths {
		name, err := engine.LoadFile(path, descriptors...)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		names = append(names, name)
	}
	return names, errors.Join(errs...)
}
