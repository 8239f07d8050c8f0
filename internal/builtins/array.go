package builtins

import (
	"sort"

	"github.com/maruel/natural"

	"github.com/cwbudde/go-script/internal/ast"
	ierrors "github.com/cwbudde/go-script/internal/interp/errors"
	"github.com/cwbudde/go-script/internal/interp/evaluator"
	"github.com/cwbudde/go-script/internal/interp/runtime"
)

// builtinArray implements `array(n)` (§8 invariant 4): an array of n
// `none` elements.
func builtinArray(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("array", args, 1); err != nil {
		return nil, err
	}
	v, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	n, ok := v.(runtime.Int)
	if !ok {
		return nil, typeError(args[0].Start(), "array() expects an int length, got %s", v.Type())
	}
	if n.Value < 0 {
		return nil, evaluator.Raise(ierrors.InvalidArgument, args[0].Start(), "array() length must be non-negative, got %d", n.Value)
	}
	elems := make([]runtime.Value, n.Value)
	for i := range elems {
		elems[i] = runtime.NoneValue
	}
	return runtime.NewArray(elems), nil
}

// builtinAppend mutates its first argument in place (it must evaluate to
// an *ArrayValue; since array values carry their shared backing by
// pointer, mutating the evaluated value is visible through every other
// reference to the same variable — no explicit l-value resolution needed)
// and returns the (now longer) array.
func builtinAppend(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if len(args) < 1 {
		return nil, evaluator.Raise(ierrors.InvalidArgument, argsPos(args), "append() expects at least 1 argument")
	}
	arr, err := asArrayArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i++ {
		v, err := evalArg(ev, env, args, i)
		if err != nil {
			return nil, err
		}
		arr.Append(runtime.CopyForStorage(v))
	}
	return arr, nil
}

// builtinPop removes and returns the last element.
func builtinPop(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("pop", args, 1); err != nil {
		return nil, err
	}
	arr, err := asArrayArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	v, ok := arr.Pop()
	if !ok {
		return nil, evaluator.Raise(ierrors.OutOfBounds, args[0].Start(), "pop() on an empty array")
	}
	return v, nil
}

// builtinTop peeks at the last element without removing it.
func builtinTop(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("top", args, 1); err != nil {
		return nil, err
	}
	arr, err := asArrayArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	v, ok := arr.Get(arr.Size() - 1)
	if !ok {
		return nil, evaluator.Raise(ierrors.OutOfBounds, args[0].Start(), "top() on an empty array")
	}
	return v, nil
}

// builtinErase removes the element at the given index and returns it.
func builtinErase(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("erase", args, 2); err != nil {
		return nil, err
	}
	arr, err := asArrayArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	idx, err := intArg(ev, env, args, 1, "erase")
	if err != nil {
		return nil, err
	}
	v, ok := arr.Get(int(idx))
	if !ok {
		return nil, evaluator.Raise(ierrors.OutOfBounds, args[1].Start(), "index %d out of bounds (size %d)", idx, arr.Size())
	}
	arr.Erase(int(idx))
	return v, nil
}

// builtinInsert inserts value before index, returning the mutated array.
func builtinInsert(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("insert", args, 3); err != nil {
		return nil, err
	}
	arr, err := asArrayArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	idx, err := intArg(ev, env, args, 1, "insert")
	if err != nil {
		return nil, err
	}
	v, err := evalArg(ev, env, args, 2)
	if err != nil {
		return nil, err
	}
	if !arr.Insert(int(idx), runtime.CopyForStorage(v)) {
		return nil, evaluator.Raise(ierrors.OutOfBounds, args[1].Start(), "insert index %d out of bounds (size %d)", idx, arr.Size())
	}
	return arr, nil
}

// builtinFind returns the first index at which an element equals the
// target (by `==`), or -1 if none matches.
func builtinFind(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("find", args, 2); err != nil {
		return nil, err
	}
	arr, err := asArrayArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	target, err := evalArg(ev, env, args, 1)
	if err != nil {
		return nil, err
	}
	return runtime.Int{Value: int64(arr.IndexOf(target, runtime.Equal))}, nil
}

// builtinMap applies fn to every element, returning a fresh array of the
// results.
func builtinMap(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("map", args, 2); err != nil {
		return nil, err
	}
	arr, err := asArrayArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	fn, err := evalArg(ev, env, args, 1)
	if err != nil {
		return nil, err
	}
	n := arr.Size()
	out := make([]runtime.Value, n)
	for i := 0; i < n; i++ {
		elem, _ := arr.Get(i)
		v, err := ev.CallValue(fn, []runtime.Value{elem})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return runtime.NewArray(out), nil
}

// builtinFilter keeps only the elements for which fn returns a truthy
// value, returning a fresh array.
func builtinFilter(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("filter", args, 2); err != nil {
		return nil, err
	}
	arr, err := asArrayArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	fn, err := evalArg(ev, env, args, 1)
	if err != nil {
		return nil, err
	}
	n := arr.Size()
	var out []runtime.Value
	for i := 0; i < n; i++ {
		elem, _ := arr.Get(i)
		v, err := ev.CallValue(fn, []runtime.Value{elem})
		if err != nil {
			return nil, err
		}
		if runtime.IsTrue(v) {
			out = append(out, elem)
		}
	}
	return runtime.NewArray(out), nil
}

// builtinSort returns a freshly sorted copy of its array argument. With no
// comparator, strings sort by natural (human) order via maruel/natural and
// everything else by §4.4's Compare; a caller-supplied comparator
// (`func(a, b) => a < b`, as in spec.md §8 scenario 6) overrides both.
func builtinSort(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, evaluator.Raise(ierrors.InvalidArgument, argsPos(args), "sort() expects 1 or 2 arguments, got %d", len(args))
	}
	arr, err := asArrayArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	n := arr.Size()
	out := make([]runtime.Value, n)
	for i := 0; i < n; i++ {
		out[i], _ = arr.Get(i)
	}

	if len(args) == 2 {
		cmp, err := evalArg(ev, env, args, 1)
		if err != nil {
			return nil, err
		}
		var sortErr error
		sort.SliceStable(out, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			v, err := ev.CallValue(cmp, []runtime.Value{out[i], out[j]})
			if err != nil {
				sortErr = err
				return false
			}
			return runtime.IsTrue(v)
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return runtime.NewArray(out), nil
	}

	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		si, iIsStr := out[i].(*runtime.StringValue)
		sj, jIsStr := out[j].(*runtime.StringValue)
		if iIsStr && jIsStr {
			return natural.Less(si.Value, sj.Value)
		}
		c, cerr := runtime.Compare(out[i], out[j])
		if cerr != nil {
			sortErr = typeError(args[0].Start(), "sort() cannot compare elements of type %s and %s without a comparator", out[i].Type(), out[j].Type())
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return runtime.NewArray(out), nil
}

func asArrayArg(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression, i int) (*runtime.ArrayValue, error) {
	v, err := evalArg(ev, env, args, i)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*runtime.ArrayValue)
	if !ok {
		return nil, typeError(args[i].Start(), "expected an array, got %s", v.Type())
	}
	return arr, nil
}

func intArg(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression, i int, name string) (int64, error) {
	v, err := evalArg(ev, env, args, i)
	if err != nil {
		return 0, err
	}
	n, ok := v.(runtime.Int)
	if !ok {
		return 0, typeError(args[i].Start(), "%s() expects an int argument, got %s", name, v.Type())
	}
	return n.Value, nil
}
