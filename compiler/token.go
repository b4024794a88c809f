package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Token types for the tally lexer
// ---------------------------------------------------------------------------

// TokenType represents the type of a token.
type TokenType int

const (
	// Delimiters
	TokenEOF TokenType = iota
	TokenSemicolon

	// Operators
	TokenLParen
	TokenRParen
	TokenPlus
	TokenMinus
	TokenSlash
	TokenStar
	TokenEquals

	// Atoms
	TokenNumber // 42, 3.14
	TokenIdentifier

	// Keywords
	TokenLet
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenSemicolon:  ";",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenSlash:      "/",
	TokenStar:       "*",
	TokenEquals:     "=",
	TokenNumber:     "NUMBER",
	TokenIdentifier: "IDENTIFIER",
	TokenLet:        "let",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", t)
}

// Position represents a source location.
type Position struct {
	Row int // 1-based row number
	Col int // 1-based column number
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Token represents a lexical token. Tokens are created once by the lexer
// and read-only from then on.
type Token struct {
	Type    TokenType
	Literal string   // the raw text
	Pos     Position // start position
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}

// Reserved words mapped to their token types.
var reservedWords = map[string]TokenType{
	"let": TokenLet,
}

// IsOperatorChar returns true if r lexes as a single-character
// operator or delimiter token.
func IsOperatorChar(r rune) bool {
	switch r {
	case ';', '(', ')', '+', '-', '/', '*', '=':
		return true
	}
	return false
}

// IsTerminator returns true for token types that end an expression:
// the statement separator and end-of-input.
func (t TokenType) IsTerminator() bool {
	return t == TokenSemicolon || t == TokenEOF
}
