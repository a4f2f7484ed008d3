package parser

import (
	"wspace/pkg/lexer"
	"wspace/pkg/program"
)

// labelRef records a call/jump instruction waiting for its label
// operand to be resolved into an instruction index.
type labelRef struct {
	idx   int // index of the referencing instruction
	label program.Label
}

// labelMap tracks label definitions and the instructions that
// reference them until the whole program has been decoded.
type labelMap struct {
	defs   map[program.Label]int
	defPos map[program.Label]lexer.Position
	refs   []labelRef
}

func newLabelMap() *labelMap {
	return &labelMap{
		defs:   make(map[program.Label]int),
		defPos: make(map[program.Label]lexer.Position),
	}
}

// define records a label definition at the given instruction index.
// Defining the same label twice fails the whole compilation.
func (m *labelMap) define(label program.Label, idx int, pos lexer.Position) *CompileError {
	if prev, ok := m.defPos[label]; ok {
		return &CompileError{
			Kind:    DuplicateLabel,
			Pos:     pos,
			Label:   label,
			PrevPos: prev,
		}
	}

	m.defs[label] = idx
	m.defPos[label] = pos
	return nil
}

// refer records that the instruction at idx references the given label
func (m *labelMap) refer(idx int, label program.Label) {
	m.refs = append(m.refs, labelRef{idx: idx, label: label})
}

// resolve patches every referencing instruction with the instruction
// index its label was defined at. References to labels that were never
// defined fail the whole compilation.
func (m *labelMap) resolve(insts []program.Instruction, positions []lexer.Position) *CompileError {
	for _, ref := range m.refs {
		target, ok := m.defs[ref.label]
		if !ok {
			return &CompileError{
				Kind:  UndefinedLabel,
				Pos:   positions[ref.idx],
				Label: ref.label,
			}
		}

		insts[ref.idx].Target = target
	}

	return nil
}
