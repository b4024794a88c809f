package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable bytecode listing for the chunk.
func (c *Chunk) Disassemble() string {
	return c.DisassembleWithName("")
}

// DisassembleWithName returns a listing with a name header.
func (c *Chunk) DisassembleWithName(name string) string {
	var sb strings.Builder

	if name != "" {
		sb.WriteString(fmt.Sprintf("; === %s ===\n", name))
	}

	if len(c.Constants) > 0 {
		sb.WriteString("; Constants:\n")
		for i, v := range c.Constants {
			sb.WriteString(fmt.Sprintf(";   [%3d] %s %s\n", i, v.Kind, v))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("; Code:\n")
	offset := 0
	for offset < len(c.Code) {
		line, instrLen := c.disassembleInstruction(offset)
		if tok, ok := c.TokenAt(offset); ok {
			sb.WriteString(fmt.Sprintf("%04d  %-24s ; %s\n", offset, line, tok.Pos))
		} else {
			sb.WriteString(fmt.Sprintf("%04d  %s\n", offset, line))
		}
		offset += instrLen
	}

	return sb.String()
}

// disassembleInstruction formats a single instruction at the given
// offset and returns its length in words.
func (c *Chunk) disassembleInstruction(offset int) (string, int) {
	op := Opcode(c.Code[offset])
	if !op.IsValid() || op.OperandLen() == 0 {
		return op.String(), 1
	}

	if offset+1 >= len(c.Code) {
		return fmt.Sprintf("%s <truncated>", op), 1
	}

	idx := c.Code[offset+1]
	if v, ok := c.Constant(idx); ok {
		return fmt.Sprintf("%s %d (%s)", op, idx, v), op.InstructionLen()
	}
	return fmt.Sprintf("%s %d (out of range)", op, idx), op.InstructionLen()
}
