package compiler

// ---------------------------------------------------------------------------
// AST: Abstract syntax tree for tally programs
// ---------------------------------------------------------------------------

// Node is the interface implemented by all AST nodes. The set of
// implementations is closed; consumers switch over it exhaustively.
type Node interface {
	Tok() Token // the token the node originates from
	node()      // marker method
}

// Empty represents a blank submission: no tokens before end-of-input.
type Empty struct {
	Token Token // the EOF token
}

func (n *Empty) Tok() Token { return n.Token }
func (n *Empty) node()      {}

// Program represents one complete submission: a sequence of statements
// and expressions, each terminated by a semicolon.
type Program struct {
	Token Token // first token of the submission
	Nodes []Node
}

func (n *Program) Tok() Token { return n.Token }
func (n *Program) node()      {}

// LetStmt represents a variable assignment statement
// ("let" identifier "=" expression ";"). Executing it leaves no value
// on the operand stack.
type LetStmt struct {
	Token      Token // the identifier token
	Identifier string
	Value      Node
}

func (n *LetStmt) Tok() Token { return n.Token }
func (n *LetStmt) node()      {}

// ParenExpr represents a parenthesized expression. It compiles
// transparently; the wrapper token is the opening paren.
type ParenExpr struct {
	Token Token // the '(' token
	Inner Node
}

func (n *ParenExpr) Tok() Token { return n.Token }
func (n *ParenExpr) node()      {}

// BinaryExpr represents an infix operator application.
type BinaryExpr struct {
	Token Token // the operator token
	Left  Node
	Right Node
}

func (n *BinaryExpr) Tok() Token { return n.Token }
func (n *BinaryExpr) node()      {}

// UnaryExpr represents a prefix operator application. Negation is the
// only unary operator the grammar produces.
type UnaryExpr struct {
	Token   Token // the operator token
	Operand Node
}

func (n *UnaryExpr) Tok() Token { return n.Token }
func (n *UnaryExpr) node()      {}

// NumberLit represents a numeric literal.
type NumberLit struct {
	Token Token
	Value float64
}

func (n *NumberLit) Tok() Token { return n.Token }
func (n *NumberLit) node()      {}

// VariableAccess represents a read of a variable by name.
type VariableAccess struct {
	Token      Token
	Identifier string
}

func (n *VariableAccess) Tok() Token { return n.Token }
func (n *VariableAccess) node()      {}

// ErrorNode marks a malformed subtree in recovery mode. The same node
// is referenced from its parent position in the tree and from the
// parser's error list.
type ErrorNode struct {
	Kind  ParseErrorKind
	Token Token // offending token
}

func (n *ErrorNode) Tok() Token { return n.Token }
func (n *ErrorNode) node()      {}
