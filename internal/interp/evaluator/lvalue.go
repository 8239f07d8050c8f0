package evaluator

import (
	"github.com/cwbudde/go-script/internal/ast"
	ierrors "github.com/cwbudde/go-script/internal/interp/errors"
	"github.com/cwbudde/go-script/internal/interp/runtime"
)

// EvalLValue exposes evalLValue to other packages. No built-in calls it:
// append() and erase() work on their evaluated array argument instead.
func (ev *Evaluator) EvalLValue(expr ast.Expression, env *runtime.Environment) (*runtime.LValue, error) {
	return ev.evalLValue(expr, env)
}

// evalLValue resolves expr to a mutable cell: a plain identifier's scope
// binding, an array element (back-linked to its container for the COW
// protocol, entirely inside runtime.ArrayValue.Put), or a dictionary entry
// (autovivified on first touch). Anything else is not-an-lvalue.
func (ev *Evaluator) evalLValue(expr ast.Expression, env *runtime.Environment) (*runtime.LValue, error) {
	switch n := expr.(type) {
	case *ast.Identifier:
		cell, ok := env.Lookup(n.Name)
		if !ok {
			return nil, raise(ierrors.UndefinedVariable, n.Start(), "undefined variable %q", n.Name)
		}
		return cell, nil

	case *ast.Subscript:
		obj, err := ev.evalExpr(n.Object, env)
		if err != nil {
			return nil, err
		}
		idxVal, err := ev.evalExpr(n.Index, env)
		if err != nil {
			return nil, err
		}
		switch container := obj.(type) {
		case *runtime.ArrayValue:
			idx, ok := idxVal.(runtime.Int)
			if !ok {
				return nil, raise(ierrors.TypeError, n.Index.Start(), "array index must be an int")
			}
			i := int(idx.Value)
			if i < 0 {
				i += container.Size()
			}
			if i < 0 || i >= container.Size() {
				return nil, raise(ierrors.OutOfBounds, n.Start(), "index %d out of bounds (size %d)", idx.Value, container.Size())
			}
			return runtime.ArrayElemCell(container, i), nil
		case *runtime.DictValue:
			return runtime.DictElemCell(container, idxVal), nil
		case *runtime.StringValue:
			return nil, raise(ierrors.NotAnLValue, n.Start(), "string elements are not assignable")
		default:
			return nil, raise(ierrors.TypeError, n.Start(), "value of type %s is not subscriptable", obj.Type())
		}

	case *ast.MemberAccess:
		obj, err := ev.evalExpr(n.Object, env)
		if err != nil {
			return nil, err
		}
		d, ok := obj.(*runtime.DictValue)
		if !ok {
			return nil, raise(ierrors.TypeError, n.Start(), "member access requires a dictionary, got %s", obj.Type())
		}
		return runtime.DictElemCell(d, runtime.NewString(n.Name)), nil

	default:
		return nil, raise(ierrors.NotAnLValue, expr.Start(), "expression is not assignable")
	}
}
