package bytecode

import (
	"fmt"

	"tally/compiler"
)

// instrToken maps an instruction's start offset to its source token.
type instrToken struct {
	Offset int
	Token  compiler.Token
}

// Chunk is the compiled bytecode unit for one program: an instruction
// stream of opcode words interleaved with operand indices, an
// append-only constant pool, and a parallel provenance table tagging
// each instruction with the token it was compiled from.
type Chunk struct {
	Code      []uint16
	Constants []Value

	tokens []instrToken // sorted by offset, one entry per instruction
}

// NewChunk creates a new empty chunk.
func NewChunk() *Chunk {
	return &Chunk{
		Code:      make([]uint16, 0, 32),
		Constants: make([]Value, 0, 8),
	}
}

// AddConstant appends a value to the constant pool and returns its
// index. An identical existing constant is reused instead.
func (c *Chunk) AddConstant(value Value) uint16 {
	for i, v := range c.Constants {
		if v == value {
			return uint16(i)
		}
	}
	idx := uint16(len(c.Constants))
	c.Constants = append(c.Constants, value)
	return idx
}

// Constant returns the pool entry at the given index.
func (c *Chunk) Constant(index uint16) (Value, bool) {
	if int(index) >= len(c.Constants) {
		return Value{}, false
	}
	return c.Constants[index], true
}

// Emit appends an operand-less instruction tagged with its originating
// token and returns the instruction's offset.
func (c *Chunk) Emit(op Opcode, tok compiler.Token) int {
	offset := len(c.Code)
	c.Code = append(c.Code, uint16(op))
	c.tokens = append(c.tokens, instrToken{Offset: offset, Token: tok})
	return offset
}

// EmitWithOperand appends an instruction with one operand word.
func (c *Chunk) EmitWithOperand(op Opcode, operand uint16, tok compiler.Token) int {
	offset := c.Emit(op, tok)
	c.Code = append(c.Code, operand)
	return offset
}

// TokenAt returns the source token for the instruction starting at the
// given offset.
func (c *Chunk) TokenAt(offset int) (compiler.Token, bool) {
	for i := len(c.tokens) - 1; i >= 0; i-- {
		if c.tokens[i].Offset == offset {
			return c.tokens[i].Token, true
		}
	}
	return compiler.Token{}, false
}

// CodeLen returns the length of the instruction stream in words.
func (c *Chunk) CodeLen() int {
	return len(c.Code)
}

// ConstantCount returns the number of constants in the pool.
func (c *Chunk) ConstantCount() int {
	return len(c.Constants)
}

// Validate walks the instruction stream and checks the chunk
// invariants: the stream never ends mid-operand, and every operand that
// indexes the constant pool is in range.
func (c *Chunk) Validate() error {
	offset := 0
	for offset < len(c.Code) {
		op := Opcode(c.Code[offset])
		if !op.IsValid() {
			return fmt.Errorf("invalid opcode %d at offset %d", c.Code[offset], offset)
		}
		if op.OperandLen() > 0 {
			if offset+1 >= len(c.Code) {
				return fmt.Errorf("instruction stream ends mid-operand at offset %d (%s)", offset, op)
			}
			operand := c.Code[offset+1]
			if int(operand) >= len(c.Constants) {
				return fmt.Errorf("operand %d at offset %d indexes past the constant pool (size %d)",
					operand, offset, len(c.Constants))
			}
		}
		offset += op.InstructionLen()
	}
	return nil
}
