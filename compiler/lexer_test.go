package compiler

import (
	"testing"
)

func TestTokenizeBasicTokens(t *testing.T) {
	input := `; ( ) + - / * =`
	expected := []struct {
		typ TokenType
		lit string
	}{
		{TokenSemicolon, ";"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenSlash, "/"},
		{TokenStar, "*"},
		{TokenEquals, "="},
		{TokenEOF, ""},
	}

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", input, err)
	}
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(expected))
	}
	for i, exp := range expected {
		if tokens[i].Type != exp.typ {
			t.Errorf("token[%d] type = %v, want %v", i, tokens[i].Type, exp.typ)
		}
		if tokens[i].Literal != exp.lit {
			t.Errorf("token[%d] literal = %q, want %q", i, tokens[i].Literal, exp.lit)
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"0", "0"},
		{"3.14", "3.14"},
		{"0.5", "0.5"},
		{"12.", "12."},
	}

	for _, tc := range tests {
		tokens, err := Tokenize(tc.input)
		if err != nil {
			t.Errorf("Tokenize(%q) failed: %v", tc.input, err)
			continue
		}
		if tokens[0].Type != TokenNumber {
			t.Errorf("Tokenize(%q): type = %v, want NUMBER", tc.input, tokens[0].Type)
		}
		if tokens[0].Literal != tc.want {
			t.Errorf("Tokenize(%q): literal = %q, want %q", tc.input, tokens[0].Literal, tc.want)
		}
	}
}

func TestTokenizeSecondDotIsInvalid(t *testing.T) {
	_, err := Tokenize("1.2.3")
	if err == nil {
		t.Fatal("expected invalid numeric literal error")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if lexErr.Kind != ErrInvalidNumericLit {
		t.Errorf("kind = %v, want %v", lexErr.Kind, ErrInvalidNumericLit)
	}
	if lexErr.Pos.Row != 1 || lexErr.Pos.Col != 4 {
		t.Errorf("pos = %s, want 1:4", lexErr.Pos)
	}
}

func TestTokenizeLetAndIdentifiers(t *testing.T) {
	tokens, err := Tokenize("let x = 5;")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	expected := []struct {
		typ TokenType
		lit string
	}{
		{TokenLet, "let"},
		{TokenIdentifier, "x"},
		{TokenEquals, "="},
		{TokenNumber, "5"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(expected))
	}
	for i, exp := range expected {
		if tokens[i].Type != exp.typ || tokens[i].Literal != exp.lit {
			t.Errorf("token[%d] = %v, want %v(%q)", i, tokens[i], exp.typ, exp.lit)
		}
	}
}

func TestTokenizeIdentifierStopsAtOperators(t *testing.T) {
	tokens, err := Tokenize("x+width*2")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := []TokenType{TokenIdentifier, TokenPlus, TokenIdentifier, TokenStar, TokenNumber, TokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token[%d] type = %v, want %v", i, tokens[i].Type, typ)
		}
	}
	if tokens[2].Literal != "width" {
		t.Errorf("token[2] literal = %q, want %q", tokens[2].Literal, "width")
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("1 +\n22;")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := []Position{
		{Row: 1, Col: 1}, // 1
		{Row: 1, Col: 3}, // +
		{Row: 2, Col: 1}, // 22
		{Row: 2, Col: 3}, // ;
		{Row: 2, Col: 4}, // EOF
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, pos := range want {
		if tokens[i].Pos != pos {
			t.Errorf("token[%d] pos = %s, want %s", i, tokens[i].Pos, pos)
		}
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("1 + \x01")
	if err == nil {
		t.Fatal("expected unexpected character error")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if lexErr.Kind != ErrUnexpectedCharacter {
		t.Errorf("kind = %v, want %v", lexErr.Kind, ErrUnexpectedCharacter)
	}
}

func TestTokenizeAlwaysEndsWithEOF(t *testing.T) {
	for _, input := range []string{"", "   ", "1 + 2", "let x = 5;"} {
		tokens, err := Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q) failed: %v", input, err)
		}
		if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
			t.Errorf("Tokenize(%q) does not end with EOF", input)
		}
	}
}
