package builtins

import (
	"github.com/cwbudde/go-script/internal/ast"
	"github.com/cwbudde/go-script/internal/interp/evaluator"
	"github.com/cwbudde/go-script/internal/interp/runtime"
)

// builtinDict implements `dict(pairs)` (§8 scenario 6 and
// original_source's src/builtins/dict.cpp.h): pairs is an array of
// 2-element [key, value] arrays.
func builtinDict(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("dict", args, 1); err != nil {
		return nil, err
	}
	arr, err := asArrayArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	d := runtime.NewDict()
	n := arr.Size()
	for i := 0; i < n; i++ {
		elem, _ := arr.Get(i)
		pair, ok := elem.(*runtime.ArrayValue)
		if !ok || pair.Size() != 2 {
			return nil, typeError(args[0].Start(), "dict() expects an array of 2-element [key, value] arrays")
		}
		k, _ := pair.Get(0)
		v, _ := pair.Get(1)
		if !d.Set(k, runtime.CopyForStorage(v)) {
			return nil, typeError(args[0].Start(), "value of type %s is not a valid dictionary key", k.Type())
		}
	}
	return d, nil
}

func asDictArg(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression, i int) (*runtime.DictValue, error) {
	v, err := evalArg(ev, env, args, i)
	if err != nil {
		return nil, err
	}
	d, ok := v.(*runtime.DictValue)
	if !ok {
		return nil, typeError(args[i].Start(), "expected a dictionary, got %s", v.Type())
	}
	return d, nil
}

// builtinKeys returns a dictionary's keys as an array, in insertion order.
func builtinKeys(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("keys", args, 1); err != nil {
		return nil, err
	}
	d, err := asDictArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	return runtime.NewArray(d.Keys()), nil
}

// builtinValues returns a dictionary's stored values as an array, in
// insertion order.
func builtinValues(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("values", args, 1); err != nil {
		return nil, err
	}
	d, err := asDictArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	pairs := d.Pairs()
	out := make([]runtime.Value, len(pairs))
	for i, p := range pairs {
		out[i] = p[1]
	}
	return runtime.NewArray(out), nil
}

// builtinKVPairs returns an array of 2-element [key, value] arrays, the
// inverse of dict() — `dict(kvpairs(d)) == d` for any dictionary d.
func builtinKVPairs(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("kvpairs", args, 1); err != nil {
		return nil, err
	}
	d, err := asDictArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	pairs := d.Pairs()
	out := make([]runtime.Value, len(pairs))
	for i, p := range pairs {
		out[i] = runtime.NewArray([]runtime.Value{p[0], p[1]})
	}
	return runtime.NewArray(out), nil
}
