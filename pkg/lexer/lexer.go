package lexer

type Lexer struct {
	input    []byte // raw source bytes to be tokenized
	length   int    // length of the input
	position int    // current position in the input
	line     int    // current line number for error reporting
	column   int    // current column number for error reporting
}

// Create a new lexer instance
func NewLexer(src []byte) *Lexer {
	return &Lexer{
		input:    src,
		length:   len(src),
		position: 0,
		line:     1,
		column:   1,
	}
}

// Get the next token from the input. Bytes other than space, tab and
// linefeed are comments and are skipped without error.
func (l *Lexer) NextToken() Token {
	for l.position < l.length {
		ch := l.input[l.position]
		pos := l.currentPosition()
		l.advance()

		switch ch {
		case ' ':
			return NewToken(SPACE, pos)
		case '\t':
			return NewToken(TAB, pos)
		case '\n':
			return NewToken(LINEFEED, pos)
		}
	}

	return NewToken(EOF, l.currentPosition())
}

// View next token without advancing the position
func (l *Lexer) Peek() Token {
	// save state
	cpos := l.position
	cline := l.line
	ccol := l.column

	token := l.NextToken()

	// restore state
	l.position = cpos
	l.line = cline
	l.column = ccol

	return token
}

// Check if there are more characters to read
func (l *Lexer) HasMore() bool {
	for i := l.position; i < l.length; i++ {
		switch l.input[i] {
		case ' ', '\t', '\n':
			return true
		}
	}

	return false
}

// Reset rewinds the lexer to the start of the input
func (l *Lexer) Reset() {
	l.position = 0
	l.line = 1
	l.column = 1
}

// Line returns the current line number
func (l *Lexer) Line() int {
	return l.line
}

// Advance the lexer position by one byte
func (l *Lexer) advance() {
	if l.position >= l.length {
		return
	}

	if l.input[l.position] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.position++
}

// Get the current position of the lexer
func (l *Lexer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}
