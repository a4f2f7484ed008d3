package interpreter

import (
	"bufio"
	"errors"
	"io"
	"os"

	"wspace/pkg/program"
)

// Interpreter executes a resolved program on a stack machine: an
// operand stack, a sparse heap and a call stack, all exclusively owned
// by this instance. The program itself is immutable and can be shared
// between instances.
type Interpreter struct {
	prog *program.Program
	ip   int // instruction pointer

	stack  []int64         // operand stack
	heap   map[int64]int64 // sparse heap (addr -> value)
	frames []Frame         // call stack

	in  *bufio.Reader // input stream for readc/readn
	out io.Writer     // output stream for outc/outn

	maxSteps int  // maximum steps (0 = unlimited)
	steps    int  // steps executed
	halted   bool // end instruction reached or fault raised
}

type Option func(*Interpreter)

// WithInput sets the input stream read by the read instructions
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) { i.in = bufio.NewReader(r) }
}

// WithOutput sets the output stream written by the output instructions
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithMaxSteps sets a maximum number of interpreter steps before Step
// returns ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// New creates a new Interpreter instance for the given program
func New(prog *program.Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		prog:  prog,
		stack: make([]int64, 0, 8),
		heap:  make(map[int64]int64),
	}

	for _, o := range opts {
		o(it)
	}

	if it.in == nil {
		it.in = bufio.NewReader(os.Stdin)
	}
	if it.out == nil {
		it.out = os.Stdout
	}

	return it
}

// Reset clears runtime state (stack, heap, call stack, IP, counters)
func (i *Interpreter) Reset() {
	i.ip = 0
	i.stack = i.stack[:0]
	i.heap = make(map[int64]int64)
	i.frames = i.frames[:0]
	i.steps = 0
	i.halted = false
}

// Program returns the program being executed
func (i *Interpreter) Program() *program.Program {
	return i.prog
}

// Step executes a single instruction, returning (halted, error).
// A returned *Traceback means the program faulted and is halted; the
// sentinel ErrMaxStepsExceeded means the step budget ran out and the
// caller may keep stepping or give up.
func (i *Interpreter) Step() (bool, error) {
	if i.halted {
		return true, nil
	}

	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return false, ErrMaxStepsExceeded
	}

	halted, err := step(i)
	i.steps++

	if halted {
		i.halted = true
	}
	return halted, err
}

// Run executes until the program halts or faults
func (i *Interpreter) Run() error {
	for {
		halted, err := i.Step()
		if err != nil {
			return err
		}

		if halted {
			return nil
		}
	}
}

// push adds a value to the operand stack
func (i *Interpreter) push(v int64) {
	i.stack = append(i.stack, v)
}

// pop removes and returns the top of the operand stack
func (i *Interpreter) pop(line int) (int64, *Traceback) {
	if len(i.stack) == 0 {
		return 0, i.fault(StackUnderflow, line)
	}

	v := i.stack[len(i.stack)-1]
	i.stack = i.stack[:len(i.stack)-1]
	return v, nil
}

// peek returns the top of the operand stack without removing it
func (i *Interpreter) peek(line int) (int64, *Traceback) {
	if len(i.stack) == 0 {
		return 0, i.fault(StackUnderflow, line)
	}

	return i.stack[len(i.stack)-1], nil
}

// fault captures the call stack as it stands right now, most recently
// called frame first, and pairs it with the fault kind
func (i *Interpreter) fault(kind FaultKind, line int) *Traceback {
	tb := &Traceback{Kind: kind, Line: line}
	for idx := len(i.frames) - 1; idx >= 0; idx-- {
		f := i.frames[idx]
		tb.Frames = append(tb.Frames, TraceEntry{
			Label:    f.Label,
			ReturnIP: f.ReturnIP,
			Line:     f.CallLine,
		})
	}

	return tb
}

// ErrMaxStepsExceeded reports that the step budget given with
// WithMaxSteps ran out. It is a supervision signal, not a program
// fault, and carries no traceback.
var ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
