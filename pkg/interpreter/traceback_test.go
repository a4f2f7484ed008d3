package interpreter_test

import (
	"strings"
	"testing"

	"wspace/pkg/interpreter"
	"wspace/pkg/program"
)

func TestUnderflowAtTopLevel(t *testing.T) {
	tb := mustFault(t, "", op(program.OpDiscard))

	if tb.Kind != interpreter.StackUnderflow {
		t.Fatalf("expected StackUnderflow, got %v", tb.Kind)
	}
	if len(tb.Frames) != 0 {
		t.Errorf("top-level fault should carry an empty traceback, got %d frames", len(tb.Frames))
	}
	if tb.Line != 1 {
		t.Errorf("expected fault on line 1, got %d", tb.Line)
	}
}

func TestNestedCallTraceback(t *testing.T) {
	tb := mustFault(t, "",
		program.Instruction{Op: program.OpCall, Target: 2, Label: "1"}, // 0
		op(program.OpEnd),                                              // 1
		program.Instruction{Op: program.OpMark, Label: "1"},            // 2
		program.Instruction{Op: program.OpCall, Target: 5, Label: "10"}, // 3
		op(program.OpReturn),                                            // 4
		program.Instruction{Op: program.OpMark, Label: "10"},            // 5
		op(program.OpDiscard),                                           // 6: faults, stack is empty
	)

	if tb.Kind != interpreter.StackUnderflow {
		t.Fatalf("expected StackUnderflow, got %v", tb.Kind)
	}
	if tb.Line != 7 {
		t.Errorf("fault line: expected 7, got %d", tb.Line)
	}

	if len(tb.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(tb.Frames))
	}

	// most recently called frame first
	inner, outer := tb.Frames[0], tb.Frames[1]
	if inner.Label != program.Label("10") || inner.ReturnIP != 4 {
		t.Errorf("inner frame: expected label 10 returning to 4, got %s returning to %d",
			inner.Label, inner.ReturnIP)
	}
	if outer.Label != program.Label("1") || outer.ReturnIP != 1 {
		t.Errorf("outer frame: expected label 1 returning to 1, got %s returning to %d",
			outer.Label, outer.ReturnIP)
	}

	if inner.Line != 4 || outer.Line != 1 {
		t.Errorf("call lines: expected 4 and 1, got %d and %d", inner.Line, outer.Line)
	}
}

func TestReturnWithoutCall(t *testing.T) {
	tb := mustFault(t, "", op(program.OpReturn))

	if tb.Kind != interpreter.ReturnWithoutCall {
		t.Fatalf("expected ReturnWithoutCall, got %v", tb.Kind)
	}
	if len(tb.Frames) != 0 {
		t.Errorf("expected empty traceback, got %d frames", len(tb.Frames))
	}
}

func TestPrematureEnd(t *testing.T) {
	tb := mustFault(t, "", push(1))

	if tb.Kind != interpreter.PrematureEnd {
		t.Fatalf("expected PrematureEnd, got %v", tb.Kind)
	}
	if len(tb.Frames) != 0 {
		t.Errorf("expected empty traceback, got %d frames", len(tb.Frames))
	}
}

func TestPrematureEndInsideCall(t *testing.T) {
	tb := mustFault(t, "",
		program.Instruction{Op: program.OpCall, Target: 2, Label: "1"}, // 0
		op(program.OpEnd),                                   // 1
		program.Instruction{Op: program.OpMark, Label: "1"}, // 2: runs off the end
	)

	if tb.Kind != interpreter.PrematureEnd {
		t.Fatalf("expected PrematureEnd, got %v", tb.Kind)
	}
	if len(tb.Frames) != 1 || tb.Frames[0].Label != program.Label("1") {
		t.Fatalf("expected the pending call frame in the traceback, got %+v", tb.Frames)
	}
}

func TestTracebackErrorString(t *testing.T) {
	tb := mustFault(t, "",
		program.Instruction{Op: program.OpCall, Target: 2, Label: "101"}, // 0
		op(program.OpEnd),                                    // 1
		program.Instruction{Op: program.OpMark, Label: "101"}, // 2
		op(program.OpDiscard),                                 // 3
	)

	msg := tb.Error()
	if !strings.Contains(msg, "underflowed") {
		t.Errorf("message should name the fault, got %q", msg)
	}
	if !strings.Contains(msg, "101") {
		t.Errorf("message should name the subroutine label, got %q", msg)
	}
	if !strings.Contains(msg, "[line 4]") {
		t.Errorf("message should name the fault line, got %q", msg)
	}
}
