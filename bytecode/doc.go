// Package bytecode provides the compiled form of tally programs and the
// stack-based virtual machine that executes them.
//
// The pipeline hands a parsed AST (package compiler) to Compile, which
// lowers it into a Chunk: a flat stream of opcode words interleaved with
// operand indices, an append-only constant pool of numbers and name
// strings, and a provenance table mapping every instruction back to the
// source token it came from. The VM executes chunks against a variable
// environment that it owns exclusively and that survives across calls
// until an explicit reset.
//
// Two invariants hold for every chunk Compile produces:
//
//   - every operand word that indexes the constant pool is in range
//   - the instruction stream never ends in the middle of an operand
//
// The VM still checks both defensively, because Execute accepts any
// chunk, not just ones Compile built.
package bytecode
