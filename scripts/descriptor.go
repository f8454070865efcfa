package scripts

// Entry validates one command before execution.
type Entry struct {
	// Arguments is the exact count when Strict, otherwise the minimum
	Arguments int
	Strict    bool
	// Types constrains arguments by position; ArgumentAny or a missing position accepts anything
	Types []ArgumentKind
}

// Descriptors looks up validation entries by command name.
type Descriptors interface {
	Entry(command string) (Entry, bool)
}

type Descriptor struct {
	entries map[string]Entry
}

var _ Descriptors = new(Descriptor)

func NewDescriptor() *Descriptor {
	return &Descriptor{
		entries: make(map[string]Entry),
	}
}

func (d *Descriptor) Set(command string, arguments int, strict bool, types ...ArgumentKind) *Descriptor {
	d.entries[FoldKey(command)] = Entry{
		Arguments: arguments,
		Strict:    strict,
		Types:     types,
	}
	return d
}

func (d *Descriptor) Remove(command string) {
	delete(d.entries, FoldKey(command))
}

func (d *Descriptor) Entry(command string) (Entry, bool) {
	entry, ok := d.entries[FoldKey(command)]
	return entry, ok
}

func (d *Descriptor) Len() int {
	return len(d.entries)
}
