package controls

import "github.com/reusee/stepscript/scripts"

// NewDescriptor returns the argument rules of the control commands.
func NewDescriptor() *scripts.Descriptor {
	const (
		anyArg = scripts.ArgumentAny
		ident  = scripts.ArgumentIdentifier
	)
	return scripts.NewDescriptor().
		Set("goto", 1, true, ident).
		Set("gosub", 1, true, ident).
		Set("return", 0, true).
		Set("end", 0, true).
		Set("print", 1, false, anyArg).
		Set("println", 1, false, anyArg).
		Set("set", 2, true, ident, anyArg).
		Set("inc", 1, true, ident).
		Set("dec", 1, true, ident).
		Set("goless", 3, true, anyArg, anyArg, ident).
		Set("gogtr", 3, true, anyArg, anyArg, ident).
		Set("goeq", 3, true, anyArg, anyArg, ident).
		Set("goneq", 3, true, anyArg, anyArg, ident).
		Set("golesseq", 3, true, anyArg, anyArg, ident).
		Set("gogtreq", 3, true, anyArg, anyArg, ident).
		Set("break", 0, true).
		Set("wait", 1, true)
}
