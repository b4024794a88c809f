package bytecode

import "fmt"

// Opcode represents a bytecode instruction word. The instruction set is
// closed: eight opcodes, dispatched exhaustively by the VM.
type Opcode uint16

const (
	OpConstant Opcode = iota // Push constant from pool: OpConstant <index>
	OpAdd                    // Pop right then left, push left + right
	OpSubtract               // Pop right then left, push left - right
	OpMultiply               // Pop right then left, push left * right
	OpDivide                 // Pop right then left, push left / right
	OpNegate                 // Pop one, push its arithmetic negation
	OpSetVar                 // Pop value, bind to name constant: OpSetVar <index>
	OpGetVar                 // Push value bound to name constant: OpGetVar <index>
)

// OpcodeInfo provides metadata about each opcode for the disassembler
// and for validation.
type OpcodeInfo struct {
	Name       string // Human-readable name
	StackPop   int    // Values popped from the operand stack
	StackPush  int    // Values pushed to the operand stack
	OperandLen int    // Operand words following the opcode
}

var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpConstant: {"CONSTANT", 0, 1, 1},
	OpAdd:      {"ADD", 2, 1, 0},
	OpSubtract: {"SUBTRACT", 2, 1, 0},
	OpMultiply: {"MULTIPLY", 2, 1, 0},
	OpDivide:   {"DIVIDE", 2, 1, 0},
	OpNegate:   {"NEGATE", 1, 1, 0},
	OpSetVar:   {"SET_VAR", 1, 0, 1},
	OpGetVar:   {"GET_VAR", 0, 1, 1},
}

// GetOpcodeInfo returns metadata for an opcode.
// Unrecognized opcodes get a synthetic UNKNOWN entry.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(%d)", uint16(op))}
}

// IsValid reports whether op is one of the defined opcodes.
func (op Opcode) IsValid() bool {
	_, ok := opcodeInfoTable[op]
	return ok
}

// String returns the human-readable name of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// OperandLen returns the number of operand words for this opcode.
func (op Opcode) OperandLen() int {
	return GetOpcodeInfo(op).OperandLen
}

// InstructionLen returns the total instruction length in words.
func (op Opcode) InstructionLen() int {
	return 1 + op.OperandLen()
}

// AllOpcodes returns all defined opcodes.
// Useful for testing that every opcode has metadata.
func AllOpcodes() []Opcode {
	opcodes := make([]Opcode, 0, len(opcodeInfoTable))
	for op := range opcodeInfoTable {
		opcodes = append(opcodes, op)
	}
	return opcodes
}
