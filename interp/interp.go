// Package interp ties the pipeline together behind the single
// evaluate(text) contract the host loop uses: lexer, parser and
// bytecode compiler are created fresh for every call, while the VM and
// its variable environment live as long as the Interpreter.
package interp

import (
	"fmt"
	"strings"

	"tally/bytecode"
	"tally/compiler"
)

// Stage names the pipeline stage a failure came from.
type Stage int

const (
	StageLexical Stage = iota
	StageSyntax
	StageCompile
	StageRuntime
)

func (s Stage) String() string {
	switch s {
	case StageLexical:
		return "lexical error"
	case StageSyntax:
		return "syntax error"
	case StageCompile:
		return "compile error"
	case StageRuntime:
		return "runtime error"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Diagnostic is one failure report: a message plus, where applicable,
// the offending token's text and position. Recovery-mode parses can
// produce several per call.
type Diagnostic struct {
	Message  string
	Token    compiler.Token
	HasToken bool
}

func (d Diagnostic) String() string {
	if d.HasToken {
		if d.Token.Type == compiler.TokenEOF {
			return fmt.Sprintf("%s at %s", d.Message, d.Token.Pos)
		}
		return fmt.Sprintf("%s: %q at %s", d.Message, d.Token.Literal, d.Token.Pos)
	}
	return d.Message
}

// EvalError is the structured error surface of Evaluate.
type EvalError struct {
	Stage       Stage
	Diagnostics []Diagnostic
}

func (e *EvalError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Stage.String())
	for i, d := range e.Diagnostics {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

// Result is the success outcome of one Evaluate call.
type Result struct {
	// Output is the displayable result, empty when the submission was a
	// pure assignment (or was incomplete and retained).
	Output string

	// Retain tells the host to keep its pending-input buffer: the
	// submission ran out of input mid-expression and the next line
	// should be appended to it. When false the buffer is cleared.
	Retain bool
}

// Interpreter owns the VM whose variable environment persists across
// Evaluate calls on the same instance.
type Interpreter struct {
	vm *bytecode.VM
}

// New creates an interpreter with an empty environment.
func New() *Interpreter {
	return &Interpreter{vm: bytecode.NewVM()}
}

// Reset discards all variable bindings. Nothing else resets the
// environment.
func (i *Interpreter) Reset() {
	i.vm.ResetGlobals()
}

// SetTrace toggles per-instruction VM tracing.
func (i *Interpreter) SetTrace(on bool) {
	i.vm.Trace = on
}

// Global reports the current binding for a variable name.
func (i *Interpreter) Global(name string) (bytecode.Value, bool) {
	return i.vm.Global(name)
}

// Evaluate runs one logical submission through lexer, parser, compiler
// and VM. It returns a displayable result plus the buffer instruction,
// or a stage-tagged *EvalError. Incomplete input — the scan or parse
// ran out of tokens mid-construct — is not an error: it returns
// Retain=true so the host can collect more lines.
func (i *Interpreter) Evaluate(source string) (Result, error) {
	tokens, err := compiler.Tokenize(source)
	if err != nil {
		lexErr := err.(*compiler.Error)
		if lexErr.Kind == compiler.ErrUnexpectedEOF {
			return Result{Retain: true}, nil
		}
		return Result{}, &EvalError{
			Stage: StageLexical,
			Diagnostics: []Diagnostic{{
				Message:  lexErr.Kind.String(),
				Token:    compiler.Token{Literal: lexErr.Char, Pos: lexErr.Pos},
				HasToken: lexErr.Char != "",
			}},
		}
	}

	root, parseErrs := compiler.Parse(tokens)
	if len(parseErrs) > 0 {
		if ranOutOfInput(parseErrs) {
			return Result{Retain: true}, nil
		}
		diags := make([]Diagnostic, len(parseErrs))
		for n, pe := range parseErrs {
			diags[n] = Diagnostic{Message: pe.Kind.String(), Token: pe.Token, HasToken: true}
		}
		return Result{}, &EvalError{Stage: StageSyntax, Diagnostics: diags}
	}

	chunk, err := bytecode.Compile(root)
	if err != nil {
		ce := err.(*bytecode.CompileError)
		return Result{}, &EvalError{
			Stage: StageCompile,
			Diagnostics: []Diagnostic{{
				Message:  ce.Kind.String(),
				Token:    ce.Token,
				HasToken: true,
			}},
		}
	}

	value, hasResult, err := i.vm.Execute(chunk)
	if err != nil {
		re := err.(*bytecode.RuntimeError)
		return Result{}, &EvalError{
			Stage: StageRuntime,
			Diagnostics: []Diagnostic{{
				Message:  re.Kind.String(),
				Token:    re.Token,
				HasToken: re.HasToken,
			}},
		}
	}

	if !hasResult {
		return Result{}, nil
	}
	return Result{Output: value.String()}, nil
}

// CompileOnly lexes, parses and lowers a submission without executing
// it. The disassembler command uses it.
func CompileOnly(source string) (*bytecode.Chunk, error) {
	tokens, err := compiler.Tokenize(source)
	if err != nil {
		return nil, err
	}
	root, parseErrs := compiler.Parse(tokens)
	if len(parseErrs) > 0 {
		diags := make([]Diagnostic, len(parseErrs))
		for n, pe := range parseErrs {
			diags[n] = Diagnostic{Message: pe.Kind.String(), Token: pe.Token, HasToken: true}
		}
		return nil, &EvalError{Stage: StageSyntax, Diagnostics: diags}
	}
	return bytecode.Compile(root)
}

// ranOutOfInput reports whether every collected parse error is the
// input simply ending too early. A submission that also contains real
// syntax mistakes is reported as an error, not retained.
func ranOutOfInput(errs []*compiler.ErrorNode) bool {
	for _, e := range errs {
		if e.Kind != compiler.ParseErrUnexpectedEnd {
			return false
		}
	}
	return true
}
