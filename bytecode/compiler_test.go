package bytecode

import (
	"errors"
	"testing"

	"tally/compiler"
)

// compileSource runs source text through the full front end and the
// emitter, failing the test on any stage error.
func compileSource(t *testing.T, input string) *Chunk {
	t.Helper()
	tokens, err := compiler.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", input, err)
	}
	root, parseErrs := compiler.Parse(tokens)
	if len(parseErrs) != 0 {
		t.Fatalf("Parse(%q) failed: %v", input, parseErrs)
	}
	chunk, err := Compile(root)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", input, err)
	}
	return chunk
}

func TestCompileCodeSequences(t *testing.T) {
	tests := []struct {
		input string
		want  []uint16
	}{
		{"7;", []uint16{uint16(OpConstant), 0}},
		{"1 + 2;", []uint16{uint16(OpConstant), 0, uint16(OpConstant), 1, uint16(OpAdd)}},
		{"-5;", []uint16{uint16(OpConstant), 0, uint16(OpNegate)}},
		{"(3);", []uint16{uint16(OpConstant), 0}},
		{"let x = 5;", []uint16{uint16(OpConstant), 0, uint16(OpSetVar), 1}},
		{"x;", []uint16{uint16(OpGetVar), 0}},
		{"", nil},
	}

	for _, tc := range tests {
		chunk := compileSource(t, tc.input)
		if len(chunk.Code) != len(tc.want) {
			t.Errorf("Compile(%q): code = %v, want %v", tc.input, chunk.Code, tc.want)
			continue
		}
		for i, word := range tc.want {
			if chunk.Code[i] != word {
				t.Errorf("Compile(%q): code[%d] = %d, want %d", tc.input, i, chunk.Code[i], word)
			}
		}
	}
}

func TestCompileOperandOrder(t *testing.T) {
	// Post-order: left subtree, right subtree, operator. The stream for
	// a subtraction must push the minuend before the subtrahend.
	chunk := compileSource(t, "10 - 4;")

	wantOps := []Opcode{OpConstant, OpConstant, OpSubtract}
	offset := 0
	for i, want := range wantOps {
		if offset >= len(chunk.Code) {
			t.Fatalf("stream too short: %v", chunk.Code)
		}
		op := Opcode(chunk.Code[offset])
		if op != want {
			t.Fatalf("instruction %d = %s, want %s", i, op, want)
		}
		offset += op.InstructionLen()
	}

	first, _ := chunk.Constant(chunk.Code[1])
	second, _ := chunk.Constant(chunk.Code[3])
	if first.Num != 10 || second.Num != 4 {
		t.Errorf("operand order = %s, %s; want 10, 4", first, second)
	}
}

func TestCompileConstantPoolSharing(t *testing.T) {
	chunk := compileSource(t, "2 + 2 + 2;")
	if chunk.ConstantCount() != 1 {
		t.Errorf("pool size = %d, want 1 shared constant", chunk.ConstantCount())
	}
}

func TestCompileLetUsesNameConstant(t *testing.T) {
	chunk := compileSource(t, "let width = 80;")

	idx := chunk.Code[len(chunk.Code)-1]
	name, ok := chunk.Constant(idx)
	if !ok {
		t.Fatalf("SET_VAR operand %d not in pool", idx)
	}
	if name.Kind != ValueName || name.Name != "width" {
		t.Errorf("SET_VAR operand = %s %s, want name width", name.Kind, name)
	}
}

func TestCompileValidates(t *testing.T) {
	for _, input := range []string{"1 + 2 * 3;", "let x = 5; x + 1;", "-(2 - 1);"} {
		chunk := compileSource(t, input)
		if err := chunk.Validate(); err != nil {
			t.Errorf("Compile(%q) emits invalid chunk: %v", input, err)
		}
	}
}

func TestCompileRejectsErrorNode(t *testing.T) {
	// The emitter is the backstop for a caller that ignores parse
	// errors: a recovery placeholder in the tree must fail compilation.
	tokens, err := compiler.Tokenize("1 +;")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	root, parseErrs := compiler.Parse(tokens)
	if len(parseErrs) == 0 {
		t.Fatal("expected parse errors")
	}

	_, err = Compile(root)
	if err == nil {
		t.Fatal("expected compile error")
	}
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("error type = %T, want *CompileError", err)
	}
	if compileErr.Kind != CompileErrUnsupportedToken {
		t.Errorf("kind = %v, want %v", compileErr.Kind, CompileErrUnsupportedToken)
	}
}
