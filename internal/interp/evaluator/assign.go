package evaluator

import (
	"github.com/cwbudde/go-script/internal/ast"
	ierrors "github.com/cwbudde/go-script/internal/interp/errors"
	"github.com/cwbudde/go-script/internal/interp/runtime"
	"github.com/cwbudde/go-script/internal/lexer"
)

func (ev *Evaluator) evalAssignment(n *ast.Assignment, env *runtime.Environment) (runtime.Value, error) {
	rhs, err := ev.evalExpr(n.Value, env)
	if err != nil {
		return nil, err
	}
	pieces := distribute(rhs, len(n.Targets))

	if n.Declare {
		for i, target := range n.Targets {
			ident, ok := target.(*ast.Identifier)
			if !ok {
				return nil, raise(ierrors.NotAnLValue, target.Start(), "declaration target must be a name")
			}
			if _, err := env.Define(ident.Name, runtime.CopyForStorage(pieces[i]), false); err != nil {
				return nil, raise(ierrors.AlreadyDefined, ident.Start(), "%s", err.Error())
			}
		}
		return rhs, nil
	}

	for i, target := range n.Targets {
		lv, err := ev.evalLValue(target, env)
		if err != nil {
			return nil, err
		}
		piece := runtime.CopyForStorage(pieces[i])
		newVal := piece
		if n.Op != ast.AssignSet {
			old := lv.Get()
			newVal, err = ev.applyCompound(n.Op, old, piece, n.Start())
			if err != nil {
				return nil, err
			}
		}
		if err := lv.Set(newVal); err != nil {
			if ident, ok := target.(*ast.Identifier); ok {
				return nil, raise(ierrors.CannotRebindConst, target.Start(), "cannot assign to const %q", ident.Name)
			}
			return nil, raise(ierrors.CannotChangeConst, target.Start(), "%s", err.Error())
		}
	}
	return rhs, nil
}

// distribute implements the multi-target distribution rule (§4.3): if rhs
// is an array, elements go out positionally (missing -> none, extras
// dropped); otherwise every target gets the same value.
func distribute(rhs runtime.Value, n int) []runtime.Value {
	out := make([]runtime.Value, n)
	if arr, ok := rhs.(*runtime.ArrayValue); ok && n > 1 {
		for i := 0; i < n; i++ {
			if v, ok := arr.Get(i); ok {
				out[i] = v
			} else {
				out[i] = runtime.NoneValue
			}
		}
		return out
	}
	for i := range out {
		out[i] = rhs
	}
	return out
}

func (ev *Evaluator) applyCompound(op ast.AssignOp, old, rhs runtime.Value, pos lexer.Position) (runtime.Value, error) {
	switch op {
	case ast.AssignAdd:
		return ev.applyBinaryOp(lexer.OpPlus, old, rhs, pos)
	case ast.AssignSub:
		return ev.applyBinaryOp(lexer.OpMinus, old, rhs, pos)
	case ast.AssignMul:
		return ev.applyBinaryOp(lexer.OpStar, old, rhs, pos)
	case ast.AssignDiv:
		return ev.applyBinaryOp(lexer.OpSlash, old, rhs, pos)
	case ast.AssignMod:
		return ev.applyBinaryOp(lexer.OpPercent, old, rhs, pos)
	default:
		return rhs, nil
	}
}
