// Package evaluator tree-walks the syntax tree produced by internal/parser
// against an internal/interp/runtime.Environment.
package evaluator

import (
	"fmt"

	"github.com/cwbudde/go-script/internal/ast"
	ierrors "github.com/cwbudde/go-script/internal/interp/errors"
	"github.com/cwbudde/go-script/internal/interp/runtime"
	"github.com/cwbudde/go-script/internal/lexer"
)

// ThrownError wraps a script-level exception value as a Go error so it
// propagates through ordinary `if err != nil { return err }` chains while
// still being catchable: try/catch unwraps it and matches Exc.Name against
// the catch clause's name list (§7: "runtime errors unwind through
// try/catch frames").
type ThrownError struct {
	Exc *runtime.Exception
}

func (e *ThrownError) Error() string { return e.Exc.String() }

func raise(kind ierrors.Kind, pos lexer.Position, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return &ThrownError{Exc: runtime.NewException(string(kind), runtime.NewString(msg))}
}

// Raise exposes raise to internal/builtins, which needs to report the same
// §7 error catalog a built-in's unevaluated-argument handling can violate
// (wrong arity, wrong argument type, out-of-bounds index, ...).
func Raise(kind ierrors.Kind, pos lexer.Position, format string, args ...any) error {
	return raise(kind, pos, format, args...)
}

// NewThrownError returns an error carrying a new script-level exception
// with the given name and payload, which try/catch unwinds exactly like a
// value raised by `throw` (§7).
func NewThrownError(name string, payload runtime.Value) error {
	return &ThrownError{Exc: runtime.NewException(name, payload)}
}

// BuiltinFunc is the contract a built-in implements: it receives the
// unevaluated argument expressions so it controls its own evaluation order
// and strictness (§4.5 "hand the unevaluated argument list node to the
// built-in"), plus the calling environment and the evaluator itself so it
// can invoke a script-level callback (e.g. a comparator passed to `sort`).
type BuiltinFunc func(ev *Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error)

// NewBuiltinValue wraps fn as a runtime.Value the environment can bind a
// name to. runtime.Builtin.Fn is declared `any` there to avoid an import
// cycle; this is the one place that type survives the round trip.
func NewBuiltinValue(name string, fn BuiltinFunc) runtime.Value {
	return runtime.Builtin{Name: name, Fn: fn}
}

// Evaluator holds the handled-exception stack `rethrow` consults; it is
// otherwise stateless, matching the teacher's single long-lived
// Interpreter but without any globally mutable signal fields (replaced by
// the explicit `signal` result type and the ThrownError error chain).
type Evaluator struct {
	handling []*runtime.Exception
}

func New() *Evaluator { return &Evaluator{} }

// Run executes every top-level statement in order against env.
func (ev *Evaluator) Run(prog *ast.Program, env *runtime.Environment) error {
	for _, stmt := range prog.Statements {
		sig, err := ev.evalStmt(stmt, env)
		if err != nil {
			return err
		}
		// A bare `return`/`break`/`continue` at the top level ends the
		// program the way falling off the end of `main` would.
		if !sig.isNone() {
			return nil
		}
	}
	return nil
}

// EvalExpr evaluates a single expression against env — the entry point
// internal/parser's const-folding pass uses (§4.3) as well as the main
// evaluation path.
func (ev *Evaluator) EvalExpr(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	return ev.evalExpr(expr, env)
}

// CallValue implements runtime.Caller so built-ins (e.g. `sort`'s
// comparator argument) can invoke a script-level function value.
func (ev *Evaluator) CallValue(fn runtime.Value, args []runtime.Value) (runtime.Value, error) {
	f, ok := fn.(*runtime.Function)
	if !ok {
		return nil, raise(ierrors.NotCallable, lexer.Position{}, "value of type %s is not callable", fn.Type())
	}
	return ev.callFunction(f, args, lexer.Position{})
}

func (ev *Evaluator) callFunction(fn *runtime.Function, args []runtime.Value, pos lexer.Position) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, raise(ierrors.InvalidArgument, pos, "function %q expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	child := runtime.NewEnclosedEnvironment(fn.Env)
	for i, p := range fn.Params {
		if _, err := child.Define(p, runtime.CopyForStorage(args[i]), false); err != nil {
			return nil, raise(ierrors.AlreadyDefined, pos, "%s", err.Error())
		}
	}
	body, ok := fn.Body.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("internal error: function %q has no body", fn.Name)
	}
	sig, err := ev.evalStmt(body, child)
	if err != nil {
		if fn.IsPure {
			if te, ok := err.(*ThrownError); ok && te.Exc.Name == string(ierrors.UndefinedVariable) {
				// Re-flag so the caller sees "in pure function" context.
				return nil, &ThrownError{Exc: runtime.NewException(te.Exc.Name, runtime.NewString(te.Exc.Payload.String()+" (in pure function)"))}
			}
		}
		return nil, err
	}
	switch sig.kind {
	case signalReturn:
		return sig.value, nil
	default:
		return runtime.NoneValue, nil
	}
}
