package bytecode

import (
	"fmt"

	"tally/compiler"
)

// CompileErrorKind classifies an AST shape the emitter cannot lower.
// A well-formed parse never produces such shapes, so every one of these
// signals an implementation bug rather than a user input error.
type CompileErrorKind int

const (
	CompileErrUnsupportedToken CompileErrorKind = iota
	CompileErrUnsupportedBinaryOperator
	CompileErrExpectedOperatorNode
)

func (k CompileErrorKind) String() string {
	switch k {
	case CompileErrUnsupportedToken:
		return "unsupported token"
	case CompileErrUnsupportedBinaryOperator:
		return "unsupported binary operator"
	case CompileErrExpectedOperatorNode:
		return "expected operator node"
	default:
		return fmt.Sprintf("CompileErrorKind(%d)", int(k))
	}
}

// CompileError is a defensive lowering failure.
type CompileError struct {
	Kind  CompileErrorKind
	Token compiler.Token
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s %q at %s", e.Kind, e.Token.Literal, e.Token.Pos)
}

// Compile lowers an AST into a chunk by a post-order walk. Every
// emitted instruction is tagged with its originating token.
func Compile(root compiler.Node) (*Chunk, error) {
	chunk := NewChunk()
	if err := emit(chunk, root); err != nil {
		return nil, err
	}
	return chunk, nil
}

func emit(chunk *Chunk, node compiler.Node) error {
	switch n := node.(type) {
	case *compiler.Empty:
		// A blank submission compiles to an empty stream.
		return nil

	case *compiler.Program:
		for _, child := range n.Nodes {
			if err := emit(chunk, child); err != nil {
				return err
			}
		}
		return nil

	case *compiler.NumberLit:
		idx := chunk.AddConstant(NumberValue(n.Value))
		chunk.EmitWithOperand(OpConstant, idx, n.Token)
		return nil

	case *compiler.VariableAccess:
		idx := chunk.AddConstant(NameValue(n.Identifier))
		chunk.EmitWithOperand(OpGetVar, idx, n.Token)
		return nil

	case *compiler.LetStmt:
		// Value first, then the store; the store pops it, so an
		// executed statement leaves nothing on the operand stack.
		if err := emit(chunk, n.Value); err != nil {
			return err
		}
		idx := chunk.AddConstant(NameValue(n.Identifier))
		chunk.EmitWithOperand(OpSetVar, idx, n.Token)
		return nil

	case *compiler.ParenExpr:
		// The wrapper itself emits nothing.
		return emit(chunk, n.Inner)

	case *compiler.UnaryExpr:
		if n.Token.Type != compiler.TokenMinus {
			return &CompileError{Kind: CompileErrUnsupportedToken, Token: n.Token}
		}
		if err := emit(chunk, n.Operand); err != nil {
			return err
		}
		chunk.Emit(OpNegate, n.Token)
		return nil

	case *compiler.BinaryExpr:
		if err := emit(chunk, n.Left); err != nil {
			return err
		}
		if err := emit(chunk, n.Right); err != nil {
			return err
		}
		var op Opcode
		switch n.Token.Type {
		case compiler.TokenPlus:
			op = OpAdd
		case compiler.TokenMinus:
			op = OpSubtract
		case compiler.TokenStar:
			op = OpMultiply
		case compiler.TokenSlash:
			op = OpDivide
		default:
			return &CompileError{Kind: CompileErrUnsupportedBinaryOperator, Token: n.Token}
		}
		chunk.Emit(op, n.Token)
		return nil

	case *compiler.ErrorNode:
		// Reaching the emitter with a recovery placeholder means the
		// caller ignored a non-empty parse error list.
		return &CompileError{Kind: CompileErrUnsupportedToken, Token: n.Token}

	default:
		return &CompileError{Kind: CompileErrExpectedOperatorNode, Token: node.Tok()}
	}
}
