package builtins

import (
	"github.com/cwbudde/go-script/internal/ast"
	ierrors "github.com/cwbudde/go-script/internal/interp/errors"
	"github.com/cwbudde/go-script/internal/interp/evaluator"
	"github.com/cwbudde/go-script/internal/interp/runtime"
)

// builtinDefined reports whether its sole argument — which must be a bare
// identifier — currently resolves to a real value rather than the
// undefined-identifier sentinel (§4.5). Like undef(), and unlike the other
// built-ins, it must NOT evaluate its argument through the normal path, since reading an
// unbound name that way raises undefined-variable before defined() ever
// gets a chance to answer.
func builtinDefined(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("defined", args, 1); err != nil {
		return nil, err
	}
	id, ok := args[0].(*ast.Identifier)
	if !ok {
		return nil, typeError(argsPos(args), "defined() expects an identifier, got %T", args[0])
	}
	cell, ok := env.Lookup(id.Name)
	if !ok {
		return boolValue(false), nil
	}
	_, isUndef := cell.Get().(runtime.Undefined)
	return boolValue(!isUndef), nil
}

// builtinUndef rebinds its identifier argument back to the
// undefined-identifier sentinel, the inverse of a declaration — a
// subsequent plain read of the name raises undefined-variable again, and
// defined() on it reports false.
func builtinUndef(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("undef", args, 1); err != nil {
		return nil, err
	}
	id, ok := args[0].(*ast.Identifier)
	if !ok {
		return nil, typeError(argsPos(args), "undef() expects an identifier, got %T", args[0])
	}
	cell, ok := env.Lookup(id.Name)
	if !ok {
		return nil, evaluator.Raise(ierrors.UndefinedVariable, argsPos(args), "undefined variable %q", id.Name)
	}
	if err := cell.Set(runtime.Undefined{Name: id.Name}); err != nil {
		return nil, evaluator.Raise(ierrors.CannotChangeConst, argsPos(args), "%s", err.Error())
	}
	return runtime.NoneValue, nil
}

func builtinLen(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("len", args, 1); err != nil {
		return nil, err
	}
	v, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	n, lerr := runtime.Len(v)
	if lerr != nil {
		return nil, typeError(args[0].Start(), "len() does not apply to type %s", v.Type())
	}
	return runtime.Int{Value: int64(n)}, nil
}

func builtinStr(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("str", args, 1); err != nil {
		return nil, err
	}
	v, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	return runtime.NewString(runtime.ToString(v)), nil
}

func builtinClone(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("clone", args, 1); err != nil {
		return nil, err
	}
	v, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	return runtime.Clone(v), nil
}

func builtinHash(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("hash", args, 1); err != nil {
		return nil, err
	}
	v, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	hk, ok := runtime.Hash(v)
	if !ok {
		return nil, typeError(args[0].Start(), "value of type %s is not hashable", v.Type())
	}
	return runtime.NewString(hk), nil
}

func builtinIntptr(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("intptr", args, 1); err != nil {
		return nil, err
	}
	v, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case *runtime.ArrayValue:
		return runtime.Int{Value: x.IntPtr()}, nil
	default:
		return runtime.Int{Value: 0}, nil
	}
}

// builtinAssert implements `assert(cond[, message])` (§7 "assertion
// failure"): a false condition raises an assertion-failure exception
// instead of returning a boolean, matching original_source's assert().
func builtinAssert(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, evaluator.Raise(ierrors.InvalidArgument, argsPos(args), "assert() expects 1 or 2 arguments, got %d", len(args))
	}
	cond, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	if runtime.IsTrue(cond) {
		return runtime.NoneValue, nil
	}
	msg := "assertion failed"
	if len(args) == 2 {
		mv, err := evalArg(ev, env, args, 1)
		if err != nil {
			return nil, err
		}
		msg = runtime.ToString(mv)
	}
	return nil, evaluator.Raise(ierrors.AssertionFailure, args[0].Start(), "%s", msg)
}

func boolValue(b bool) runtime.Value {
	if b {
		return runtime.Int{Value: 1}
	}
	return runtime.Int{Value: 0}
}
