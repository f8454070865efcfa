package interps

import "github.com/reusee/stepscript/scripts"

// ScriptStart marks a context that has not executed its first command yet.
const ScriptStart = -1

// Context is one frame of the context stack.
type Context struct {
	// shared with every other context and interpreter running it
	Program      *scripts.Program
	CurrentIndex int
	NextIndex    int
}

func (c *Context) Command() *scripts.Command {
	return c.Program.Command(c.CurrentIndex)
}
