package compiler

import (
	"fmt"
	"strconv"
)

// ---------------------------------------------------------------------------
// Parser: Pratt expression parser with a statement layer
// ---------------------------------------------------------------------------
//
// The parser runs in recovery mode: a local failure synthesizes an
// ErrorNode in place of the malformed subtree, records it in a side
// error list, resynchronizes to the next semicolon and keeps going.
// The parse as a whole succeeds only if the error list stays empty.

// ParseErrorKind classifies a syntax failure.
type ParseErrorKind int

const (
	ParseErrUnexpectedEnd ParseErrorKind = iota
	ParseErrExpectedExpression
	ParseErrExpectedOperator
	ParseErrUnclosedExpression
	ParseErrUnexpectedToken
	ParseErrUnexpectedUnaryOperator
)

func (k ParseErrorKind) String() string {
	switch k {
	case ParseErrUnexpectedEnd:
		return "unexpected end of input"
	case ParseErrExpectedExpression:
		return "expected expression"
	case ParseErrExpectedOperator:
		return "expected operator"
	case ParseErrUnclosedExpression:
		return "unclosed expression"
	case ParseErrUnexpectedToken:
		return "unexpected token"
	case ParseErrUnexpectedUnaryOperator:
		return "unexpected unary operator"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// infixBindingPower returns the (left, right) binding-power pair for an
// infix operator. The pair for minus is the historical (8.1, 11.0); see
// DESIGN.md for why it is preserved rather than normalized.
func infixBindingPower(t TokenType) (left, right float32, ok bool) {
	switch t {
	case TokenStar:
		return 10.1, 10.0, true
	case TokenSlash:
		return 9.1, 9.0, true
	case TokenMinus:
		return 8.1, 11.0, true
	case TokenPlus:
		return 7.1, 7.0, true
	}
	return 0, 0, false
}

// unaryRightBindingPower is the binding power a prefix minus parses its
// operand at: the right binding power of binary minus.
func unaryRightBindingPower() float32 {
	_, right, _ := infixBindingPower(TokenMinus)
	return right
}

// Parser parses a token sequence into an AST.
type Parser struct {
	tokens []Token
	pos    int
	errors []*ErrorNode
}

// NewParser creates a parser over a token sequence. The sequence must
// end with an EOF token, as produced by Tokenize.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes nothing itself; it runs the parser over tokens and
// returns the tree along with the collected syntax errors. The tree is
// only meaningful when the error list is empty.
func Parse(tokens []Token) (Node, []*ErrorNode) {
	p := NewParser(tokens)
	root := p.ParseProgram()
	return root, p.Errors()
}

// Errors returns the syntax errors collected during the parse. Each
// node in the list is also linked from its position in the tree.
func (p *Parser) Errors() []*ErrorNode {
	return p.errors
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // the EOF token
	}
	return p.tokens[p.pos]
}

// consume returns the current token and advances past it. The EOF
// token is never advanced past.
func (p *Parser) consume() Token {
	tok := p.peek()
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

// curIs checks the current token type.
func (p *Parser) curIs(t TokenType) bool {
	return p.peek().Type == t
}

// errorNode records a syntax error and returns the placeholder node
// that marks it in the tree.
func (p *Parser) errorNode(kind ParseErrorKind, tok Token) *ErrorNode {
	n := &ErrorNode{Kind: kind, Token: tok}
	p.errors = append(p.errors, n)
	return n
}

// expect consumes a token of the given type, or records an error and
// returns its placeholder node.
func (p *Parser) expect(t TokenType) (Token, *ErrorNode) {
	tok := p.peek()
	if tok.Type == t {
		return p.consume(), nil
	}
	if tok.Type == TokenEOF {
		return tok, p.errorNode(ParseErrUnexpectedEnd, tok)
	}
	return tok, p.errorNode(ParseErrUnexpectedToken, tok)
}

// recover skips forward to just past the next semicolon (or to
// end-of-input), the statement-level resynchronization point.
func (p *Parser) recover() {
	for !p.curIs(TokenSemicolon) && !p.curIs(TokenEOF) {
		p.consume()
	}
	if p.curIs(TokenSemicolon) {
		p.consume()
	}
}

// ---------------------------------------------------------------------------
// Top-level parsing
// ---------------------------------------------------------------------------

// ParseProgram parses one complete submission:
//
//	program   := (statement | expression ";"?)* end-of-input
//	statement := "let" identifier "=" expression ";"
func (p *Parser) ParseProgram() Node {
	first := p.peek()
	if first.Type == TokenEOF {
		return &Empty{Token: first}
	}

	prog := &Program{Token: first}
	for !p.curIs(TokenEOF) {
		var n Node
		if p.curIs(TokenLet) {
			n = p.parseLetStmt()
		} else {
			n = p.parseExprElement()
		}
		prog.Nodes = append(prog.Nodes, n)

		if _, failed := n.(*ErrorNode); failed {
			p.recover()
		}
	}
	return prog
}

// parseLetStmt parses a "let" statement. The statement's token is the
// target identifier.
func (p *Parser) parseLetStmt() Node {
	p.consume() // "let"

	identTok, errNode := p.expect(TokenIdentifier)
	if errNode != nil {
		return errNode
	}
	if _, errNode = p.expect(TokenEquals); errNode != nil {
		return errNode
	}

	value := p.parseExpr(0)

	if _, semiErr := p.expect(TokenSemicolon); semiErr != nil {
		if _, failed := value.(*ErrorNode); !failed {
			return semiErr
		}
	}

	return &LetStmt{Token: identTok, Identifier: identTok.Literal, Value: value}
}

// parseExprElement parses an expression in statement position, with an
// optional trailing semicolon.
func (p *Parser) parseExprElement() Node {
	n := p.parseExpr(0)

	switch p.peek().Type {
	case TokenSemicolon:
		p.consume()
	case TokenEOF:
	default:
		if _, failed := n.(*ErrorNode); !failed {
			return p.errorNode(ParseErrUnexpectedToken, p.peek())
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Pratt expression parsing
// ---------------------------------------------------------------------------

// parseExpr parses an expression by precedence climbing: parse a
// primary, then keep folding infix operators whose left binding power
// is at least minBP, parsing each right operand at the operator's right
// binding power.
func (p *Parser) parseExpr(minBP float32) Node {
	lhs := p.parsePrimary()
	if _, failed := lhs.(*ErrorNode); failed {
		return lhs
	}

	for {
		opTok := p.peek()
		if opTok.Type.IsTerminator() {
			break
		}

		leftBP, rightBP, isInfix := infixBindingPower(opTok.Type)
		if !isInfix {
			switch opTok.Type {
			case TokenRParen, TokenEquals:
				// Closed by an enclosing context.
			default:
				return p.errorNode(ParseErrExpectedOperator, opTok)
			}
			break
		}
		if leftBP < minBP {
			break
		}

		opTok = p.consume()
		rhs := p.parseExpr(rightBP)
		lhs = &BinaryExpr{Token: opTok, Left: lhs, Right: rhs}
		if _, failed := rhs.(*ErrorNode); failed {
			break
		}
	}

	return lhs
}

// parsePrimary parses the start of an expression:
//
//	primary := NUMBER | IDENTIFIER | "-" expression | "(" expression ")"
func (p *Parser) parsePrimary() Node {
	tok := p.peek()

	switch tok.Type {
	case TokenNumber:
		p.consume()
		return p.parseNumberLit(tok)

	case TokenIdentifier:
		p.consume()
		return &VariableAccess{Token: tok, Identifier: tok.Literal}

	case TokenMinus:
		p.consume()
		operand := p.parseExpr(unaryRightBindingPower())
		return &UnaryExpr{Token: tok, Operand: operand}

	case TokenLParen:
		return p.parseParenExpr()

	case TokenPlus, TokenSlash, TokenStar, TokenEquals:
		p.consume()
		return p.errorNode(ParseErrUnexpectedUnaryOperator, tok)

	case TokenEOF:
		return p.errorNode(ParseErrUnexpectedEnd, tok)

	case TokenSemicolon, TokenRParen:
		// Left unconsumed so the statement layer can resynchronize on it.
		return p.errorNode(ParseErrExpectedExpression, tok)

	default:
		p.consume()
		return p.errorNode(ParseErrUnexpectedToken, tok)
	}
}

// parseNumberLit converts a numeric-literal token into a node. The
// lexer guarantees the literal is digits with at most one dot, all of
// which strconv accepts.
func (p *Parser) parseNumberLit(tok Token) Node {
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return p.errorNode(ParseErrUnexpectedToken, tok)
	}
	return &NumberLit{Token: tok, Value: value}
}

// parseParenExpr parses "(" expression ")". A group that is not closed
// by a matching right paren fails as unclosed-expression referencing
// the opening paren; if the input simply ran out, the error is
// unexpected-end so the host can ask for more input.
func (p *Parser) parseParenExpr() Node {
	openTok := p.consume() // "("

	inner := p.parseExpr(0)
	if _, failed := inner.(*ErrorNode); failed {
		return inner
	}

	switch p.peek().Type {
	case TokenRParen:
		p.consume()
		return &ParenExpr{Token: openTok, Inner: inner}
	case TokenEOF:
		return p.errorNode(ParseErrUnexpectedEnd, openTok)
	default:
		return p.errorNode(ParseErrUnclosedExpression, openTok)
	}
}
