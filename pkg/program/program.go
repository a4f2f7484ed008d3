package program

import (
	"fmt"
	"strings"

	"wspace/pkg/lexer"
)

// Program is an immutable sequence of resolved instructions. Every
// jump target inside it is a valid instruction index, so a Program can
// be shared read-only between any number of interpreter instances.
type Program struct {
	insts     []Instruction
	positions []lexer.Position
}

// New creates a Program from a resolved instruction sequence and the
// source position of each instruction. Both slices are copied.
func New(insts []Instruction, positions []lexer.Position) *Program {
	return &Program{
		insts:     append([]Instruction(nil), insts...),
		positions: append([]lexer.Position(nil), positions...),
	}
}

// Len returns the number of instructions in the program
func (p *Program) Len() int {
	return len(p.insts)
}

// At returns the instruction at the given index
func (p *Program) At(idx int) Instruction {
	return p.insts[idx]
}

// PositionAt returns the source position of the instruction at the
// given index
func (p *Program) PositionAt(idx int) lexer.Position {
	return p.positions[idx]
}

// LineAt returns the source line of the instruction at the given index
func (p *Program) LineAt(idx int) int {
	return p.positions[idx].Line
}

// String renders the program as a flat disassembly listing
func (p *Program) String() string {
	var b strings.Builder
	for idx, inst := range p.insts {
		fmt.Fprintf(&b, "%4d: %s\n", idx, inst)
	}

	return b.String()
}
