package interpreter_test

import (
	"math"
	"testing"

	"wspace/pkg/interpreter"
	"wspace/pkg/program"
)

func TestArithmetic(t *testing.T) {
	cases := []struct {
		name  string
		left  int64
		right int64
		op    program.Opcode
		want  string
	}{
		{"add", 2, 3, program.OpAdd, "5"},
		{"sub", 7, 2, program.OpSub, "5"},
		{"sub negative result", 2, 7, program.OpSub, "-5"},
		{"mul", 6, 7, program.OpMul, "42"},

		// division and modulo use floor semantics: the quotient is
		// rounded toward negative infinity and the remainder takes
		// the sign of the divisor
		{"div", 5, 2, program.OpDiv, "2"},
		{"div negative dividend", -5, 2, program.OpDiv, "-3"},
		{"div negative divisor", 5, -2, program.OpDiv, "-3"},
		{"div both negative", -5, -2, program.OpDiv, "2"},
		{"div exact", -6, 2, program.OpDiv, "-3"},
		{"mod", 5, 2, program.OpMod, "1"},
		{"mod negative dividend", -5, 2, program.OpMod, "1"},
		{"mod negative divisor", 5, -2, program.OpMod, "-1"},
		{"mod both negative", -5, -2, program.OpMod, "-1"},
		{"mod exact", -6, 2, program.OpMod, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := mustRun(t, "",
				push(tc.left), push(tc.right),
				op(tc.op),
				op(program.OpOutNum),
				op(program.OpEnd),
			)
			if out != tc.want {
				t.Errorf("%d %s %d: expected %s, got %s",
					tc.left, tc.op, tc.right, tc.want, out)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, o := range []program.Opcode{program.OpDiv, program.OpMod} {
		tb := mustFault(t, "", push(1), push(0), op(o))
		if tb.Kind != interpreter.DivisionByZero {
			t.Errorf("%s: expected DivisionByZero, got %v", o, tb.Kind)
		}
	}
}

func TestArithmeticOverflow(t *testing.T) {
	cases := []struct {
		name  string
		left  int64
		right int64
		op    program.Opcode
	}{
		{"add past max", math.MaxInt64, 1, program.OpAdd},
		{"add past min", math.MinInt64, -1, program.OpAdd},
		{"sub past max", math.MaxInt64, -1, program.OpSub},
		{"sub past min", math.MinInt64, 1, program.OpSub},
		{"mul past max", math.MaxInt64, 2, program.OpMul},
		{"mul min by minus one", math.MinInt64, -1, program.OpMul},
		{"div min by minus one", math.MinInt64, -1, program.OpDiv},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tb := mustFault(t, "", push(tc.left), push(tc.right), op(tc.op))
			if tb.Kind != interpreter.ArithmeticOverflow {
				t.Errorf("expected ArithmeticOverflow, got %v", tb.Kind)
			}
		})
	}
}

func TestArithmeticAtTheEdge(t *testing.T) {
	// results that exactly fit must not trap
	cases := []struct {
		left  int64
		right int64
		op    program.Opcode
		want  string
	}{
		{math.MaxInt64 - 1, 1, program.OpAdd, "9223372036854775807"},
		{math.MinInt64 + 1, 1, program.OpSub, "-9223372036854775808"},
		{math.MinInt64, 1, program.OpDiv, "-9223372036854775808"},
		{math.MinInt64, -1, program.OpMod, "0"},
	}

	for _, tc := range cases {
		out := mustRun(t, "",
			push(tc.left), push(tc.right),
			op(tc.op),
			op(program.OpOutNum),
			op(program.OpEnd),
		)
		if out != tc.want {
			t.Errorf("%d %s %d: expected %s, got %s", tc.left, tc.op, tc.right, tc.want, out)
		}
	}
}
