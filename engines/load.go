package engines

import (
	"path/filepath"
	"strings"

	"github.com/reusee/stepscript/scripts"
)

// LoadFile parses the script at path and adds it under its base name without extension.
func (e *Engine) LoadFile(path string, descriptors ...scripts.Descriptors) (string, error) {
	program, err := scripts.ParseFile(path, descriptors...)
	if err != nil {
		return "", err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	e.AddScript(name, program)
	return name, nil
}
