package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"wspace/pkg/program"
)

// step is the main single-step execution function.
// It returns (halted, error).
func step(i *Interpreter) (bool, error) {
	pc := i.ip
	if pc < 0 || pc >= i.prog.Len() {
		// ran off the end without an end instruction
		line := 0
		if n := i.prog.Len(); n > 0 {
			line = i.prog.LineAt(n - 1)
		}
		return true, i.fault(PrematureEnd, line)
	}

	inst := i.prog.At(pc)
	line := i.prog.LineAt(pc)
	i.ip = pc + 1

	switch inst.Op {
	case program.OpPush:
		i.push(inst.Arg)

	case program.OpDup:
		v, fault := i.peek(line)
		if fault != nil {
			return true, fault
		}
		i.push(v)

	case program.OpCopy:
		n := inst.Arg
		if n < 0 || n >= int64(len(i.stack)) {
			return true, i.fault(StackUnderflow, line)
		}
		i.push(i.stack[int64(len(i.stack))-1-n])

	case program.OpSwap:
		if len(i.stack) < 2 {
			return true, i.fault(StackUnderflow, line)
		}
		last := len(i.stack) - 1
		i.stack[last], i.stack[last-1] = i.stack[last-1], i.stack[last]

	case program.OpDiscard:
		if _, fault := i.pop(line); fault != nil {
			return true, fault
		}

	case program.OpSlide:
		n := inst.Arg
		if n < 0 || n+1 > int64(len(i.stack)) {
			return true, i.fault(StackUnderflow, line)
		}
		top := i.stack[len(i.stack)-1]
		i.stack = i.stack[:int64(len(i.stack))-1-n]
		i.push(top)

	case program.OpAdd, program.OpSub, program.OpMul:
		right, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		left, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}

		var result int64
		var ok bool
		switch inst.Op {
		case program.OpAdd:
			result, ok = addChecked(left, right)
		case program.OpSub:
			result, ok = subChecked(left, right)
		case program.OpMul:
			result, ok = mulChecked(left, right)
		}
		if !ok {
			return true, i.fault(ArithmeticOverflow, line)
		}
		i.push(result)

	case program.OpDiv, program.OpMod:
		right, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		if right == 0 {
			return true, i.fault(DivisionByZero, line)
		}
		left, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}

		if inst.Op == program.OpDiv {
			result, ok := divChecked(left, right)
			if !ok {
				return true, i.fault(ArithmeticOverflow, line)
			}
			i.push(result)
		} else {
			i.push(floorMod(left, right))
		}

	case program.OpStore:
		addr, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		value, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		i.heap[addr] = value

	case program.OpRetrieve:
		addr, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		value, ok := i.heap[addr]
		if !ok {
			return true, i.fault(HeapAddressUnset, line)
		}
		i.push(value)

	case program.OpMark:
		// labels are resolved at compile time, nothing to do

	case program.OpCall:
		i.frames = append(i.frames, Frame{
			Label:    inst.Label,
			ReturnIP: pc + 1,
			CallLine: line,
		})
		i.ip = inst.Target

	case program.OpJump:
		i.ip = inst.Target

	case program.OpJumpZero:
		v, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		if v == 0 {
			i.ip = inst.Target
		}

	case program.OpJumpNeg:
		v, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		if v < 0 {
			i.ip = inst.Target
		}

	case program.OpReturn:
		if len(i.frames) == 0 {
			return true, i.fault(ReturnWithoutCall, line)
		}
		frame := i.frames[len(i.frames)-1]
		i.frames = i.frames[:len(i.frames)-1]
		i.ip = frame.ReturnIP

	case program.OpEnd:
		return true, nil

	case program.OpOutChar:
		v, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		if _, err := fmt.Fprintf(i.out, "%c", rune(v)); err != nil {
			return true, i.fault(IOError, line)
		}

	case program.OpOutNum:
		v, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		if _, err := fmt.Fprintf(i.out, "%d", v); err != nil {
			return true, i.fault(IOError, line)
		}

	case program.OpReadChar:
		addr, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		b, err := i.in.ReadByte()
		if err != nil {
			return true, i.fault(IOError, line)
		}
		i.heap[addr] = int64(b)

	case program.OpReadNum:
		addr, fault := i.pop(line)
		if fault != nil {
			return true, fault
		}
		text, err := i.in.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			return true, i.fault(IOError, line)
		}
		value, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return true, i.fault(InvalidNumber, line)
		}
		i.heap[addr] = value
	}

	return false, nil
}
