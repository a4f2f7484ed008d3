package parser

import (
	"math"
	"strings"

	"wspace/pkg/lexer"
	"wspace/pkg/program"
)

// Parser decodes the token stream into instructions following the
// Whitespace prefix grammar, then resolves every label reference into
// an instruction index. The result is an immutable program; any error
// in either phase aborts compilation before bytecode is produced.
type Parser struct {
	lex   *lexer.Lexer
	curr  lexer.Token
	start lexer.Position // position of the current instruction's first token

	insts     []program.Instruction
	positions []lexer.Position
	labels    *labelMap
}

// NewParser creates a new Parser instance
func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{
		lex:    l,
		labels: newLabelMap(),
	}
}

// Parse decodes and resolves the whole token stream
func (p *Parser) Parse() (*program.Program, error) {
	p.next()

	for p.curr.Type != lexer.EOF {
		p.start = p.curr.Pos

		var err *CompileError
		switch {
		case p.match(lexer.SPACE):
			err = p.parseStackInst()
		case p.match(lexer.TAB):
			switch {
			case p.match(lexer.SPACE):
				err = p.parseArithInst()
			case p.match(lexer.TAB):
				err = p.parseHeapInst()
			case p.match(lexer.LINEFEED):
				err = p.parseIOInst()
			default:
				// only EOF can follow, the lexer yields nothing else
				err = p.compileError(UnexpectedEndOfInput, FamilyNone)
			}
		case p.match(lexer.LINEFEED):
			err = p.parseFlowInst()
		}

		if err != nil {
			return nil, err
		}
	}

	if err := p.labels.resolve(p.insts, p.positions); err != nil {
		return nil, err
	}

	return program.New(p.insts, p.positions), nil
}

// next advances to the next token
func (p *Parser) next() {
	p.curr = p.lex.NextToken()
}

// match consumes the current token if it has the given type
func (p *Parser) match(t lexer.TokenType) bool {
	if p.curr.Type == t {
		p.next()
		return true
	}

	return false
}

// nextTwo consumes the next two tokens of an instruction prefix.
// Errors if the stream ends before both are available.
func (p *Parser) nextTwo() (lexer.TokenType, lexer.TokenType, *CompileError) {
	first := p.curr.Type
	p.next()
	second := p.curr.Type
	p.next()

	if first == lexer.EOF || second == lexer.EOF {
		return lexer.EOF, lexer.EOF, p.compileError(UnexpectedEndOfInput, FamilyNone)
	}

	return first, second, nil
}

// emit appends an instruction tagged with the current instruction's
// source position
func (p *Parser) emit(inst program.Instruction) {
	p.insts = append(p.insts, inst)
	p.positions = append(p.positions, p.start)
}

// compileError builds a CompileError at the current token
func (p *Parser) compileError(kind ErrorKind, family InstFamily) *CompileError {
	return &CompileError{
		Kind:   kind,
		Family: family,
		Pos:    p.curr.Pos,
	}
}

// parseStackInst decodes the [Space] instruction family
func (p *Parser) parseStackInst() *CompileError {
	if p.match(lexer.SPACE) {
		num, err := p.parseNumber()
		if err != nil {
			return err
		}

		p.emit(program.Instruction{Op: program.OpPush, Arg: num})
		return nil
	}

	first, second, err := p.nextTwo()
	if err != nil {
		return err
	}

	switch {
	case first == lexer.TAB && second == lexer.SPACE:
		num, err := p.parseNumber()
		if err != nil {
			return err
		}
		p.emit(program.Instruction{Op: program.OpCopy, Arg: num})
	case first == lexer.TAB && second == lexer.LINEFEED:
		num, err := p.parseNumber()
		if err != nil {
			return err
		}
		p.emit(program.Instruction{Op: program.OpSlide, Arg: num})
	case first == lexer.LINEFEED && second == lexer.SPACE:
		p.emit(program.Instruction{Op: program.OpDup})
	case first == lexer.LINEFEED && second == lexer.TAB:
		p.emit(program.Instruction{Op: program.OpSwap})
	case first == lexer.LINEFEED && second == lexer.LINEFEED:
		p.emit(program.Instruction{Op: program.OpDiscard})
	default:
		return p.compileError(UnknownPrefix, FamilyStack)
	}

	return nil
}

// parseArithInst decodes the [Tab Space] instruction family
func (p *Parser) parseArithInst() *CompileError {
	first, second, err := p.nextTwo()
	if err != nil {
		return err
	}

	switch {
	case first == lexer.SPACE && second == lexer.SPACE:
		p.emit(program.Instruction{Op: program.OpAdd})
	case first == lexer.SPACE && second == lexer.TAB:
		p.emit(program.Instruction{Op: program.OpSub})
	case first == lexer.SPACE && second == lexer.LINEFEED:
		p.emit(program.Instruction{Op: program.OpMul})
	case first == lexer.TAB && second == lexer.SPACE:
		p.emit(program.Instruction{Op: program.OpDiv})
	case first == lexer.TAB && second == lexer.TAB:
		p.emit(program.Instruction{Op: program.OpMod})
	default:
		return p.compileError(UnknownPrefix, FamilyArithmetic)
	}

	return nil
}

// parseHeapInst decodes the [Tab Tab] instruction family
func (p *Parser) parseHeapInst() *CompileError {
	switch {
	case p.match(lexer.SPACE):
		p.emit(program.Instruction{Op: program.OpStore})
	case p.match(lexer.TAB):
		p.emit(program.Instruction{Op: program.OpRetrieve})
	case p.match(lexer.LINEFEED):
		return p.compileError(UnknownPrefix, FamilyHeap)
	default:
		return p.compileError(UnexpectedEndOfInput, FamilyHeap)
	}

	return nil
}

// parseIOInst decodes the [Tab Linefeed] instruction family
func (p *Parser) parseIOInst() *CompileError {
	first, second, err := p.nextTwo()
	if err != nil {
		return err
	}

	switch {
	case first == lexer.SPACE && second == lexer.SPACE:
		p.emit(program.Instruction{Op: program.OpOutChar})
	case first == lexer.SPACE && second == lexer.TAB:
		p.emit(program.Instruction{Op: program.OpOutNum})
	case first == lexer.TAB && second == lexer.SPACE:
		p.emit(program.Instruction{Op: program.OpReadChar})
	case first == lexer.TAB && second == lexer.TAB:
		p.emit(program.Instruction{Op: program.OpReadNum})
	default:
		return p.compileError(UnknownPrefix, FamilyIO)
	}

	return nil
}

// parseFlowInst decodes the [Linefeed] instruction family
func (p *Parser) parseFlowInst() *CompileError {
	first, second, err := p.nextTwo()
	if err != nil {
		return err
	}

	switch {
	case first == lexer.SPACE && second == lexer.SPACE:
		label, err := p.parseLabel()
		if err != nil {
			return err
		}
		if err := p.labels.define(label, len(p.insts), p.start); err != nil {
			return err
		}
		p.emit(program.Instruction{Op: program.OpMark, Label: label})
	case first == lexer.SPACE && second == lexer.TAB:
		return p.parseLabelRef(program.OpCall)
	case first == lexer.SPACE && second == lexer.LINEFEED:
		return p.parseLabelRef(program.OpJump)
	case first == lexer.TAB && second == lexer.SPACE:
		return p.parseLabelRef(program.OpJumpZero)
	case first == lexer.TAB && second == lexer.TAB:
		return p.parseLabelRef(program.OpJumpNeg)
	case first == lexer.TAB && second == lexer.LINEFEED:
		p.emit(program.Instruction{Op: program.OpReturn})
	case first == lexer.LINEFEED && second == lexer.LINEFEED:
		p.emit(program.Instruction{Op: program.OpEnd})
	default:
		return p.compileError(UnknownPrefix, FamilyFlow)
	}

	return nil
}

// parseLabelRef decodes the label operand of a call/jump instruction
// and records it for resolution once the whole program is decoded
func (p *Parser) parseLabelRef(op program.Opcode) *CompileError {
	label, err := p.parseLabel()
	if err != nil {
		return err
	}

	p.labels.refer(len(p.insts), label)
	p.emit(program.Instruction{Op: op, Label: label})
	return nil
}

// parseNumber reads a sign+magnitude number literal: the sign token
// (space positive, tab negative) followed by big-endian binary digits
// (space 0, tab 1), terminated by a linefeed. The full int64 range is
// representable, including math.MinInt64.
func (p *Parser) parseNumber() (int64, *CompileError) {
	var negative bool
	switch {
	case p.match(lexer.SPACE):
		negative = false
	case p.match(lexer.TAB):
		negative = true
	case p.match(lexer.LINEFEED):
		return 0, p.compileError(InvalidLiteral, FamilyNone)
	default:
		return 0, p.compileError(UnexpectedEndOfInput, FamilyNone)
	}

	var mag uint64
	for {
		var bit uint64
		switch {
		case p.match(lexer.SPACE):
			bit = 0
		case p.match(lexer.TAB):
			bit = 1
		case p.match(lexer.LINEFEED):
			if negative {
				if mag > 1<<63 {
					return 0, p.compileError(LiteralOverflow, FamilyNone)
				}
				if mag == 1<<63 {
					return math.MinInt64, nil
				}
				return -int64(mag), nil
			}
			if mag > math.MaxInt64 {
				return 0, p.compileError(LiteralOverflow, FamilyNone)
			}
			return int64(mag), nil
		default:
			return 0, p.compileError(UnexpectedEndOfInput, FamilyNone)
		}

		if mag&(1<<63) != 0 {
			return 0, p.compileError(LiteralOverflow, FamilyNone)
		}
		mag = mag<<1 | bit
	}
}

// parseLabel reads a label literal: an arbitrary bit sequence
// terminated by a linefeed, kept verbatim as an opaque key
func (p *Parser) parseLabel() (program.Label, *CompileError) {
	var bits strings.Builder
	for {
		switch {
		case p.match(lexer.SPACE):
			bits.WriteByte('0')
		case p.match(lexer.TAB):
			bits.WriteByte('1')
		case p.match(lexer.LINEFEED):
			return program.Label(bits.String()), nil
		default:
			return "", p.compileError(UnexpectedEndOfInput, FamilyNone)
		}
	}
}
