package program

import (
	"fmt"
)

type Opcode string

// List of bytecode operations
const (
	OpPush     Opcode = "push"
	OpDup      Opcode = "dup"
	OpCopy     Opcode = "copy"
	OpSwap     Opcode = "swap"
	OpDiscard  Opcode = "discard"
	OpSlide    Opcode = "slide"
	OpAdd      Opcode = "add"
	OpSub      Opcode = "sub"
	OpMul      Opcode = "mul"
	OpDiv      Opcode = "div"
	OpMod      Opcode = "mod"
	OpStore    Opcode = "store"
	OpRetrieve Opcode = "retrieve"
	OpMark     Opcode = "mark"
	OpCall     Opcode = "call"
	OpJump     Opcode = "jmp"
	OpJumpZero Opcode = "jz"
	OpJumpNeg  Opcode = "jn"
	OpReturn   Opcode = "ret"
	OpEnd      Opcode = "end"
	OpOutChar  Opcode = "outc"
	OpOutNum   Opcode = "outn"
	OpReadChar Opcode = "readc"
	OpReadNum  Opcode = "readn"
)

type Instruction struct {
	Op Opcode

	Arg    int64 // numeric immediate for push, copy and slide
	Target int   // resolved instruction index for the call/jump family
	Label  Label // label operand as written in the source
}

// HasLabel reports whether the instruction carries a label operand
func (i Instruction) HasLabel() bool {
	switch i.Op {
	case OpMark, OpCall, OpJump, OpJumpZero, OpJumpNeg:
		return true
	default:
		return false
	}
}

// String returns a string representation of the instruction
func (i Instruction) String() string {
	switch i.Op {
	case OpPush, OpCopy, OpSlide:
		return fmt.Sprintf("%s %d", i.Op, i.Arg)
	case OpMark:
		return fmt.Sprintf("%s %s", i.Op, i.Label)
	case OpCall, OpJump, OpJumpZero, OpJumpNeg:
		return fmt.Sprintf("%s %s @%d", i.Op, i.Label, i.Target)
	default:
		return string(i.Op)
	}
}
