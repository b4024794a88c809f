package bytecode

import (
	"fmt"

	"tally/compiler"
)

// RuntimeErrorKind classifies an execution failure.
type RuntimeErrorKind int

const (
	RunErrInvalidOpcode RuntimeErrorKind = iota
	RunErrInvalidBinaryOperator
	RunErrIncompleteExpression
	RunErrInvalidIdentifier
	RunErrExpectedOperand
	RunErrExpectedExpression
	RunErrUninitialisedVariable
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case RunErrInvalidOpcode:
		return "invalid opcode"
	case RunErrInvalidBinaryOperator:
		return "invalid binary operator"
	case RunErrIncompleteExpression:
		return "incomplete expression"
	case RunErrInvalidIdentifier:
		return "invalid identifier"
	case RunErrExpectedOperand:
		return "expected operand"
	case RunErrExpectedExpression:
		return "expected expression"
	case RunErrUninitialisedVariable:
		return "uninitialised variable"
	default:
		return fmt.Sprintf("RuntimeErrorKind(%d)", int(k))
	}
}

// RuntimeError is an execution failure, tagged with the source token of
// the failing instruction when the chunk carries provenance for it.
type RuntimeError struct {
	Kind     RuntimeErrorKind
	Token    compiler.Token
	HasToken bool
}

func (e *RuntimeError) Error() string {
	if e.HasToken {
		return fmt.Sprintf("%s: %q at %s", e.Kind, e.Token.Literal, e.Token.Pos)
	}
	return e.Kind.String()
}

// VM is a stack machine executing chunks against a persistent variable
// environment. The environment is the one piece of state that outlives
// a single Execute call; it belongs to this VM alone and is reset only
// by an explicit ResetGlobals, never implicitly.
type VM struct {
	stack []Value
	ip    int

	globals map[string]Value

	// Trace prints each instruction before dispatch.
	Trace bool
}

// NewVM creates a VM with an empty variable environment.
func NewVM() *VM {
	return &VM{
		stack:   make([]Value, 0, 64),
		globals: make(map[string]Value),
	}
}

// Global returns the current binding for a name.
func (vm *VM) Global(name string) (Value, bool) {
	v, ok := vm.globals[name]
	return v, ok
}

// GlobalCount returns the number of bound variables.
func (vm *VM) GlobalCount() int {
	return len(vm.globals)
}

// ResetGlobals discards every variable binding.
func (vm *VM) ResetGlobals() {
	vm.globals = make(map[string]Value)
}

// Execute runs a chunk to completion. The operand stack and the
// instruction pointer are reset for the call; the variable environment
// is reused. It returns the single residual value if the stream left
// one, hasResult=false for the valid no-result outcome of a pure
// assignment, and a *RuntimeError on failure.
func (vm *VM) Execute(chunk *Chunk) (result Value, hasResult bool, err error) {
	vm.stack = vm.stack[:0]
	vm.ip = 0

	for vm.ip < len(chunk.Code) {
		at := vm.ip
		op := Opcode(chunk.Code[vm.ip])
		vm.ip++

		if vm.Trace {
			fmt.Printf("[%04d] %-10s stack=%d\n", at, op, len(vm.stack))
		}

		switch op {
		case OpConstant:
			value, opErr := vm.constantOperand(chunk, at)
			if opErr != nil {
				return Value{}, false, opErr
			}
			vm.push(value)

		case OpNegate:
			operand, ok := vm.pop()
			if !ok {
				return Value{}, false, vm.runtimeError(chunk, at, RunErrExpectedOperand)
			}
			if operand.Kind != ValueNumber {
				return Value{}, false, vm.runtimeError(chunk, at, RunErrExpectedOperand)
			}
			vm.push(NumberValue(-operand.Num))

		case OpAdd, OpSubtract, OpMultiply, OpDivide:
			if opErr := vm.binaryOp(chunk, at, op); opErr != nil {
				return Value{}, false, opErr
			}

		case OpSetVar:
			value, ok := vm.pop()
			if !ok {
				return Value{}, false, vm.runtimeError(chunk, at, RunErrExpectedExpression)
			}
			name, opErr := vm.nameOperand(chunk, at)
			if opErr != nil {
				return Value{}, false, opErr
			}
			// Last write wins.
			vm.globals[name] = value

		case OpGetVar:
			name, opErr := vm.nameOperand(chunk, at)
			if opErr != nil {
				return Value{}, false, opErr
			}
			value, bound := vm.globals[name]
			if !bound {
				return Value{}, false, vm.runtimeError(chunk, at, RunErrUninitialisedVariable)
			}
			vm.push(value)

		default:
			return Value{}, false, vm.runtimeError(chunk, at, RunErrInvalidOpcode)
		}
	}

	switch len(vm.stack) {
	case 0:
		// A pure assignment leaves nothing behind.
		return Value{}, false, nil
	case 1:
		return vm.stack[0], true, nil
	default:
		return Value{}, false, &RuntimeError{Kind: RunErrIncompleteExpression}
	}
}

// binaryOp dispatches one of the four arithmetic opcodes. The right
// operand is popped first, then the left; the pop order is the reverse
// of evaluation order, and subtraction and division depend on it.
func (vm *VM) binaryOp(chunk *Chunk, at int, op Opcode) error {
	right, ok := vm.pop()
	if !ok {
		return vm.runtimeError(chunk, at, RunErrExpectedOperand)
	}
	left, ok := vm.pop()
	if !ok {
		return vm.runtimeError(chunk, at, RunErrExpectedOperand)
	}
	if left.Kind != ValueNumber || right.Kind != ValueNumber {
		return vm.runtimeError(chunk, at, RunErrExpectedOperand)
	}

	var result float64
	switch op {
	case OpAdd:
		result = left.Num + right.Num
	case OpSubtract:
		result = left.Num - right.Num
	case OpMultiply:
		result = left.Num * right.Num
	case OpDivide:
		result = left.Num / right.Num
	default:
		return vm.runtimeError(chunk, at, RunErrInvalidBinaryOperator)
	}

	vm.push(NumberValue(result))
	return nil
}

// constantOperand fetches the operand word of the instruction at `at`
// and resolves it in the constant pool, advancing past the operand.
func (vm *VM) constantOperand(chunk *Chunk, at int) (Value, error) {
	if vm.ip >= len(chunk.Code) {
		return Value{}, vm.runtimeError(chunk, at, RunErrInvalidOpcode)
	}
	idx := chunk.Code[vm.ip]
	vm.ip++

	value, ok := chunk.Constant(idx)
	if !ok {
		return Value{}, vm.runtimeError(chunk, at, RunErrInvalidOpcode)
	}
	return value, nil
}

// nameOperand resolves the instruction's operand as a string constant.
func (vm *VM) nameOperand(chunk *Chunk, at int) (string, error) {
	value, err := vm.constantOperand(chunk, at)
	if err != nil {
		return "", err
	}
	if value.Kind != ValueName {
		return "", vm.runtimeError(chunk, at, RunErrInvalidIdentifier)
	}
	return value.Name, nil
}

func (vm *VM) push(v Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() (Value, bool) {
	if len(vm.stack) == 0 {
		return Value{}, false
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, true
}

// runtimeError builds a RuntimeError tagged with the provenance token
// of the instruction at the given offset, when the chunk has one.
func (vm *VM) runtimeError(chunk *Chunk, at int, kind RuntimeErrorKind) *RuntimeError {
	if tok, ok := chunk.TokenAt(at); ok {
		return &RuntimeError{Kind: kind, Token: tok, HasToken: true}
	}
	return &RuntimeError{Kind: kind}
}
