package compiler

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: Tokenizer for tally source text
// ---------------------------------------------------------------------------

// ErrorKind classifies a lexical failure.
type ErrorKind int

const (
	ErrUnexpectedEOF ErrorKind = iota
	ErrUnexpectedCharacter
	ErrInvalidNumericLit
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedEOF:
		return "unexpected end of input"
	case ErrUnexpectedCharacter:
		return "unexpected character"
	case ErrInvalidNumericLit:
		return "invalid numeric literal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a lexical error at a source position. The first invalid
// character aborts the whole scan; the lexer does no local recovery.
type Error struct {
	Kind ErrorKind
	Char string // offending text, empty for EOF errors
	Pos  Position
}

func (e *Error) Error() string {
	if e.Char == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%s %q at %s", e.Kind, e.Char, e.Pos)
}

// Lexer scans tally source text into tokens.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current character
	row     int  // current row (1-based)
	col     int  // current column (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		row:   1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar reads the next character, tracking row and column.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		l.col++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size

	if r == '\n' {
		l.row++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// position returns the current position.
func (l *Lexer) position() Position {
	return Position{Row: l.row, Col: l.col}
}

// Tokenize scans the whole input in one left-to-right pass and returns
// the token sequence, always terminated by a synthesized EOF token.
// The first invalid character aborts the scan with an *Error.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// next returns the next token.
func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()

	pos := l.position()

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Literal: "", Pos: pos}, nil

	case l.ch == ';':
		l.readChar()
		return Token{Type: TokenSemicolon, Literal: ";", Pos: pos}, nil

	case l.ch == '(':
		l.readChar()
		return Token{Type: TokenLParen, Literal: "(", Pos: pos}, nil

	case l.ch == ')':
		l.readChar()
		return Token{Type: TokenRParen, Literal: ")", Pos: pos}, nil

	case l.ch == '+':
		l.readChar()
		return Token{Type: TokenPlus, Literal: "+", Pos: pos}, nil

	case l.ch == '-':
		l.readChar()
		return Token{Type: TokenMinus, Literal: "-", Pos: pos}, nil

	case l.ch == '/':
		l.readChar()
		return Token{Type: TokenSlash, Literal: "/", Pos: pos}, nil

	case l.ch == '*':
		l.readChar()
		return Token{Type: TokenStar, Literal: "*", Pos: pos}, nil

	case l.ch == '=':
		l.readChar()
		return Token{Type: TokenEquals, Literal: "=", Pos: pos}, nil

	case isDigit(l.ch):
		return l.readNumber(pos)

	case unicode.IsControl(l.ch):
		return Token{}, &Error{Kind: ErrUnexpectedCharacter, Char: string(l.ch), Pos: pos}

	default:
		return l.readIdentifierOrKeyword(pos), nil
	}
}

// skipWhitespace skips spaces, tabs and newlines.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readNumber reads a numeric literal: a run of digits with at most one
// decimal point. A second '.' inside the run is an error.
func (l *Lexer) readNumber(pos Position) (Token, error) {
	start := l.pos
	sawDot := false

	for {
		switch {
		case isDigit(l.ch):
			l.readChar()
		case l.ch == '.':
			if sawDot {
				return Token{}, &Error{Kind: ErrInvalidNumericLit, Char: ".", Pos: l.position()}
			}
			sawDot = true
			l.readChar()
		default:
			return Token{Type: TokenNumber, Literal: l.input[start:l.pos], Pos: pos}, nil
		}
	}
}

// readIdentifierOrKeyword reads a run of characters up to the next
// whitespace or operator character. The literal keyword "let" lexes as
// a keyword token; anything else is an identifier.
func (l *Lexer) readIdentifierOrKeyword(pos Position) Token {
	start := l.pos

	for l.ch != 0 && !isSpace(l.ch) && !IsOperatorChar(l.ch) {
		l.readChar()
	}

	literal := l.input[start:l.pos]
	if tokType, ok := reservedWords[literal]; ok {
		return Token{Type: tokType, Literal: literal, Pos: pos}
	}
	return Token{Type: TokenIdentifier, Literal: literal, Pos: pos}
}

// Helper functions

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
