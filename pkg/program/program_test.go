package program_test

import (
	"strings"
	"testing"

	"wspace/pkg/lexer"
	"wspace/pkg/program"
)

func TestInstructionString(t *testing.T) {
	cases := []struct {
		inst program.Instruction
		want string
	}{
		{program.Instruction{Op: program.OpPush, Arg: -7}, "push -7"},
		{program.Instruction{Op: program.OpSlide, Arg: 2}, "slide 2"},
		{program.Instruction{Op: program.OpDup}, "dup"},
		{program.Instruction{Op: program.OpMark, Label: "01"}, "mark 01"},
		{program.Instruction{Op: program.OpCall, Label: "01", Target: 12}, "call 01 @12"},
		{program.Instruction{Op: program.OpEnd}, "end"},
	}

	for _, tc := range cases {
		if got := tc.inst.String(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestEmptyLabelString(t *testing.T) {
	if got := program.Label("").String(); got != "<empty>" {
		t.Errorf("expected <empty>, got %q", got)
	}
}

func TestProgramIsACopy(t *testing.T) {
	insts := []program.Instruction{{Op: program.OpEnd}}
	positions := []lexer.Position{lexer.NewPosition(1, 1, 0)}

	prog := program.New(insts, positions)
	insts[0] = program.Instruction{Op: program.OpPush, Arg: 1}

	if prog.At(0).Op != program.OpEnd {
		t.Error("mutating the source slice must not affect the program")
	}
}

func TestDisassembly(t *testing.T) {
	prog := program.New([]program.Instruction{
		{Op: program.OpPush, Arg: 72},
		{Op: program.OpOutChar},
		{Op: program.OpEnd},
	}, []lexer.Position{
		lexer.NewPosition(1, 1, 0),
		lexer.NewPosition(1, 5, 4),
		lexer.NewPosition(2, 1, 8),
	})

	listing := prog.String()
	for _, want := range []string{"0: push 72", "1: outc", "2: end"} {
		if !strings.Contains(listing, want) {
			t.Errorf("listing should contain %q:\n%s", want, listing)
		}
	}

	if prog.LineAt(2) != 2 {
		t.Errorf("expected line 2, got %d", prog.LineAt(2))
	}
}
