package lexer

import (
	"fmt"
)

type TokenType int

type Token struct {
	Type TokenType // Type of the token
	Pos  Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, pos Position) Token {
	return Token{
		Type: tokenType,
		Pos:  pos,
	}
}

// The three significant bytes of a Whitespace program. Every other
// byte is a comment and never becomes a token.
const (
	EOF TokenType = iota // End of input

	SPACE    // ' '
	TAB      // '\t'
	LINEFEED // '\n'
)

// Byte returns the source byte a token type is read from
func (t TokenType) Byte() byte {
	switch t {
	case SPACE:
		return ' '
	case TAB:
		return '\t'
	case LINEFEED:
		return '\n'
	default:
		return 0
	}
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	switch t {
	case SPACE:
		return "space"
	case TAB:
		return "tab"
	case LINEFEED:
		return "linefeed"
	case EOF:
		return "$"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(t))
	}
}

// String returns a string representation of the Token
func (t Token) String() string {
	return fmt.Sprintf("T_{%s, %s}", t.Type, t.Pos.String())
}
