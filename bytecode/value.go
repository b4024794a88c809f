package bytecode

import (
	"fmt"
	"strconv"
)

// ValueKind tags the two value variants the language has.
type ValueKind int

const (
	// ValueNumber is a plain 64-bit float.
	ValueNumber ValueKind = iota

	// ValueName is an immutable variable-name string. Name values only
	// ever live in the constant pool as operands of SetVar/GetVar; the
	// operand stack holds numbers.
	ValueName
)

func (k ValueKind) String() string {
	switch k {
	case ValueNumber:
		return "number"
	case ValueName:
		return "name"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a tally value: a number or a name string. The variant set is
// closed and switched over exhaustively.
type Value struct {
	Kind ValueKind
	Num  float64
	Name string
}

// NumberValue wraps a float as a Value.
func NumberValue(f float64) Value {
	return Value{Kind: ValueNumber, Num: f}
}

// NameValue wraps a variable name as a Value.
func NameValue(name string) Value {
	return Value{Kind: ValueName, Name: name}
}

// String renders the value the way the REPL displays results: numbers
// in their shortest exact decimal form, names verbatim.
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueName:
		return v.Name
	default:
		return fmt.Sprintf("Value(%d)", int(v.Kind))
	}
}
