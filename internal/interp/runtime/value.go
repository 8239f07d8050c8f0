// Package runtime holds the value model, lexical environments and the
// copy-on-write array/string machinery the evaluator runs against.
package runtime

import "fmt"

// Value is the tagged-union of every value a script expression can produce.
// Go has no built-in sum type, so this is the idiomatic substitute: one
// interface, one concrete struct per variant (§9 design note — "a sum type
// with per-variant methods" over a literal ported union).
type Value interface {
	Type() string
	String() string
}

// None is the singleton "none" value.
type None struct{}

func (None) Type() string   { return "none" }
func (None) String() string { return "none" }

// NoneValue is the single shared instance; none carries no data so every
// none in a running program can share it.
var NoneValue Value = None{}

// Int is a 64-bit signed integer value.
type Int struct{ Value int64 }

func (Int) Type() string        { return "int" }
func (i Int) String() string    { return fmt.Sprintf("%d", i.Value) }

// Float is a 64-bit floating point value.
type Float struct{ Value float64 }

func (Float) Type() string     { return "float" }
func (f Float) String() string { return formatFloat(f.Value) }

func formatFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}

// Builtin wraps a registered built-in function so it can flow through the
// value system like any other callable (§4.6). Fn is declared `any` to
// avoid an import cycle: the real signature (taking unevaluated
// *ast.Expression arguments) lives in internal/interp/evaluator, which
// type-asserts it back on every call; see evaluator.NewBuiltinValue.
type Builtin struct {
	Name string
	Fn   any
}

func (Builtin) Type() string      { return "builtin" }
func (b Builtin) String() string  { return "<builtin " + b.Name + ">" }

// Undefined is the sentinel the undef() built-in stores in a variable's
// cell. The evaluator raises "undefined variable" when it reads a cell
// holding it, and defined() reports false for it; assigning to the name
// replaces it. A lookup of a name with no binding at all never yields this
// value: the evaluator raises the error directly.
type Undefined struct{ Name string }

func (Undefined) Type() string     { return "undefined" }
func (u Undefined) String() string { return "<undefined " + u.Name + ">" }

// IsTrue implements the language's truthiness rule (§4.4): none and the
// zero value of int/float/string/array/dict are false, everything else is
// true.
func IsTrue(v Value) bool {
	switch x := v.(type) {
	case None:
		return false
	case Int:
		return x.Value != 0
	case Float:
		return x.Value != 0
	case *StringValue:
		return x.Len() != 0
	case *ArrayValue:
		return x.Size() != 0
	case *DictValue:
		return x.Len() != 0
	case Undefined:
		return false
	default:
		return true
	}
}
