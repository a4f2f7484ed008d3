package parser

import (
	"fmt"

	"wspace/pkg/lexer"
	"wspace/pkg/program"
)

type ErrorKind int

// What kind of compile error was found
const (
	// The token stream ended before an instruction prefix or an
	// operand literal was complete
	UnexpectedEndOfInput ErrorKind = iota
	// A token prefix does not match any defined instruction
	UnknownPrefix
	// A literal was started with something other than a sign token
	InvalidLiteral
	// The literal is too large to fit in an int64
	LiteralOverflow
	// The same label was defined twice
	DuplicateLabel
	// A call or jump references a label that was never defined
	UndefinedLabel
)

type InstFamily int

// Which instruction family was being decoded when the error was found
const (
	FamilyNone InstFamily = iota
	FamilyStack
	FamilyArithmetic
	FamilyHeap
	FamilyIO
	FamilyFlow
)

// String returns a string representation of the InstFamily
func (f InstFamily) String() string {
	switch f {
	case FamilyStack:
		return "stack manipulation"
	case FamilyArithmetic:
		return "arithmetic"
	case FamilyHeap:
		return "heap access"
	case FamilyIO:
		return "IO"
	case FamilyFlow:
		return "control flow"
	default:
		return "instruction"
	}
}

// CompileError is the single error type produced by compilation.
// Compilation is all-or-nothing: the first CompileError aborts before
// any bytecode is produced.
type CompileError struct {
	Kind   ErrorKind
	Family InstFamily
	Pos    lexer.Position

	Label   program.Label  // offending label for the label error kinds
	PrevPos lexer.Position // first definition site for DuplicateLabel
}

func (e *CompileError) Error() string {
	switch e.Kind {
	case UnexpectedEndOfInput:
		return fmt.Sprintf("[line %d] unexpected end of input", e.Pos.Line)
	case UnknownPrefix:
		return fmt.Sprintf("[line %d] invalid %s instruction prefix", e.Pos.Line, e.Family)
	case InvalidLiteral:
		return fmt.Sprintf("[line %d] invalid literal", e.Pos.Line)
	case LiteralOverflow:
		return fmt.Sprintf("[line %d] literal too large to fit in an int64", e.Pos.Line)
	case DuplicateLabel:
		return fmt.Sprintf("[line %d] duplicate label %s, first defined at line %d",
			e.Pos.Line, e.Label, e.PrevPos.Line)
	case UndefinedLabel:
		return fmt.Sprintf("[line %d] undefined label %s", e.Pos.Line, e.Label)
	default:
		return fmt.Sprintf("[line %d] compile error", e.Pos.Line)
	}
}
