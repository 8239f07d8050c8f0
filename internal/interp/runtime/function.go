package runtime

import "strings"

// Function is a user-defined function value: its parameter list, body
// (opaque to this package — the evaluator owns the AST type), and the
// environment it closes over.
//
// Body is declared as `any` to avoid an import cycle with internal/ast;
// the evaluator type-asserts it back to *ast.Block when it calls the
// function. Pure functions capture only the const root environment
// (§4.3/§4.6: "capture environment restricted to the const root"), so Env
// for a pure function is always the program's root scope rather than
// whatever scope the literal was written in.
type Function struct {
	Name    string
	Params  []string
	Body    any
	Env     *Environment
	IsPure  bool
}

func (*Function) Type() string { return "function" }

func (f *Function) String() string {
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	pure := ""
	if f.IsPure {
		pure = "pure "
	}
	return pure + "func " + name + "(" + strings.Join(f.Params, ", ") + ")"
}

// Caller is the narrow surface a built-in needs to invoke a script-level
// callback value (e.g. a comparator passed to `sort`), kept as an
// interface here so this package never imports the evaluator.
type Caller interface {
	CallValue(fn Value, args []Value) (Value, error)
}
