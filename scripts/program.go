package scripts

import (
	"maps"
	"slices"
)

// Program is a parsed script.
// Once handed to an interpreter it must not be modified; many interpreters may share it.
type Program struct {
	commands []*Command
	labels   map[string]int
	metadata map[string]string
}

func NewProgram(commands ...*Command) *Program {
	return &Program{
		commands: slices.Clone(commands),
		labels:   make(map[string]int),
		metadata: make(map[string]string),
	}
}

func (p *Program) Len() int {
	return len(p.commands)
}

// Command returns nil for any index outside the program, negative ones included.
func (p *Program) Command(index int) *Command {
	if index < 0 || index >= len(p.commands) {
		return nil
	}
	return p.commands[index]
}

func (p *Program) Commands() []*Command {
	return slices.Clone(p.commands)
}

func (p *Program) AddCommand(command *Command) {
	p.commands = append(p.commands, command)
}

func (p *Program) InsertCommand(index int, command *Command) {
	p.commands = slices.Insert(p.commands, index, command)
}

func (p *Program) RemoveCommand(index int) {
	p.commands = slices.Delete(p.commands, index, index+1)
}

// SetLabel does not check the index; a label may point at or past the end.
func (p *Program) SetLabel(label string, index int) {
	p.labels[FoldKey(label)] = index
}

func (p *Program) ClearLabel(label string) {
	delete(p.labels, FoldKey(label))
}

// LabelIndex returns -1 for unknown labels.
func (p *Program) LabelIndex(label string) int {
	index, ok := p.labels[FoldKey(label)]
	if !ok {
		return -1
	}
	return index
}

// Labels returns folded label names mapped to command indexes.
func (p *Program) Labels() map[string]int {
	return maps.Clone(p.labels)
}

// SetMetadata removes the key when value is empty.
func (p *Program) SetMetadata(key string, value string) {
	if value == "" {
		delete(p.metadata, FoldKey(key))
		return
	}
	p.metadata[FoldKey(key)] = value
}

func (p *Program) Metadata(key string) string {
	return p.metadata[FoldKey(key)]
}

func (p *Program) AllMetadata() map[string]string {
	return maps.Clone(p.metadata)
}
