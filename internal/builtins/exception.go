package builtins

import (
	"github.com/cwbudde/go-script/internal/ast"
	"github.com/cwbudde/go-script/internal/interp/evaluator"
	"github.com/cwbudde/go-script/internal/interp/runtime"
)

// builtinException implements `exception(name, payload)`, the canonical
// constructor used by spec.md §8 scenario 4 and grounded in
// original_source/src/exceptionobj.h. name is stringified so a caller may
// pass any value (though scripts conventionally pass a string literal).
func builtinException(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("exception", args, 2); err != nil {
		return nil, err
	}
	name, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	payload, err := evalArg(ev, env, args, 1)
	if err != nil {
		return nil, err
	}
	return runtime.NewException(runtime.ToString(name), runtime.CopyForStorage(payload)), nil
}

// builtinExdata returns an exception value's payload.
func builtinExdata(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("exdata", args, 1); err != nil {
		return nil, err
	}
	v, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	exc, ok := v.(*runtime.Exception)
	if !ok {
		return nil, typeError(args[0].Start(), "exdata() expects an exception, got %s", v.Type())
	}
	if exc.Payload == nil {
		return runtime.NoneValue, nil
	}
	return exc.Payload, nil
}
