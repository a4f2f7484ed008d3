package interpreter

import (
	"fmt"
	"strings"

	"wspace/pkg/program"
)

type FaultKind int

// What kind of runtime fault halted the program. Every fault is
// terminal: the interpreter stops immediately and reports the call
// stack as it stood at the fault point.
const (
	// A pop or peek was attempted on an empty (or too shallow) stack
	StackUnderflow FaultKind = iota
	// A retrieve read a heap address that was never written
	HeapAddressUnset
	// A division or modulo had a zero right operand
	DivisionByZero
	// An arithmetic result does not fit in an int64
	ArithmeticOverflow
	// A return was executed with no pending call
	ReturnWithoutCall
	// Execution ran past the last instruction without an end
	PrematureEnd
	// Reading or writing one of the IO streams failed
	IOError
	// The input could not be parsed as a valid integer
	InvalidNumber
)

// String returns a string representation of the FaultKind
func (k FaultKind) String() string {
	switch k {
	case StackUnderflow:
		return "the program stack underflowed"
	case HeapAddressUnset:
		return "attempted to access an unset heap address"
	case DivisionByZero:
		return "attempted to divide by zero"
	case ArithmeticOverflow:
		return "arithmetic overflow"
	case ReturnWithoutCall:
		return "return with no pending call"
	case PrematureEnd:
		return "execution ran past the end of the program"
	case IOError:
		return "an unexpected IO error occurred"
	case InvalidNumber:
		return "could not parse input as a valid integer"
	default:
		return fmt.Sprintf("unknown fault (%d)", int(k))
	}
}

// TraceEntry is one captured call frame of a traceback.
type TraceEntry struct {
	Label    program.Label
	ReturnIP int
	Line     int
}

// Traceback is the error value produced by a runtime fault: the fault
// kind plus the call stack captured at the exact point of failure,
// most recently called frame first. It is plain data; rendering for
// display is the caller's concern.
type Traceback struct {
	Kind   FaultKind
	Line   int // source line of the faulting instruction
	Frames []TraceEntry
}

func (t *Traceback) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[line %d] %s", t.Line, t.Kind)
	for _, frame := range t.Frames {
		fmt.Fprintf(&b, "\n  [line %d] in subroutine %s", frame.Line, frame.Label)
	}

	return b.String()
}
