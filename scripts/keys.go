package scripts

import "golang.org/x/text/cases"

// FoldKey normalizes a name for case-insensitive lookup.
// Labels, metadata keys, command names and dialect variables all go through it.
func FoldKey(name string) string {
	return cases.Fold().String(name)
}
