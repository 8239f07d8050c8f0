package evaluator

import (
	"github.com/cwbudde/go-script/internal/ast"
	ierrors "github.com/cwbudde/go-script/internal/interp/errors"
	"github.com/cwbudde/go-script/internal/interp/runtime"
	"github.com/cwbudde/go-script/internal/lexer"
)

// evalExpr evaluates expr for its value. Reading a bare identifier raises
// undefined-variable both when the name is unbound and when its cell holds
// the Undefined sentinel left by undef(); assignment targets are resolved
// through evalLValue instead and may rebind such a cell (§4.5).
func (ev *Evaluator) evalExpr(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return runtime.Int{Value: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.Float{Value: n.Value}, nil
	case *ast.NoneLiteral:
		return runtime.NoneValue, nil
	case *ast.StringLiteral:
		return runtime.NewString(n.Value), nil
	case *ast.Identifier:
		cell, ok := env.Lookup(n.Name)
		if !ok {
			return nil, raise(ierrors.UndefinedVariable, n.Start(), "undefined variable %q", n.Name)
		}
		v := cell.Get()
		if _, isUndef := v.(runtime.Undefined); isUndef {
			return nil, raise(ierrors.UndefinedVariable, n.Start(), "undefined variable %q", n.Name)
		}
		return v, nil
	case *ast.ArrayLiteral:
		return ev.evalArrayLiteral(n, env)
	case *ast.DictLiteral:
		return ev.evalDictLiteral(n, env)
	case *ast.Subscript:
		obj, err := ev.evalExpr(n.Object, env)
		if err != nil {
			return nil, err
		}
		if s, ok := obj.(*runtime.StringValue); ok {
			idxVal, err := ev.evalExpr(n.Index, env)
			if err != nil {
				return nil, err
			}
			idx, ok := idxVal.(runtime.Int)
			if !ok {
				return nil, raise(ierrors.TypeError, n.Index.Start(), "string index must be an int")
			}
			i := int(idx.Value)
			if i < 0 {
				i += s.Len()
			}
			if i < 0 || i >= s.Len() {
				return nil, raise(ierrors.OutOfBounds, n.Start(), "index %d out of bounds (size %d)", idx.Value, s.Len())
			}
			lo, hi := i, i+1
			return s.Slice(&lo, &hi), nil
		}
		lv, err := ev.evalLValue(expr, env)
		if err != nil {
			return nil, err
		}
		return lv.Get(), nil
	case *ast.MemberAccess:
		lv, err := ev.evalLValue(expr, env)
		if err != nil {
			return nil, err
		}
		return lv.Get(), nil
	case *ast.SliceExpr:
		return ev.evalSliceExpr(n, env)
	case *ast.CallExpr:
		return ev.evalCall(n, env)
	case *ast.UnaryExpr:
		return ev.evalUnary(n, env)
	case *ast.BinaryChain:
		return ev.evalBinaryChain(n, env)
	case *ast.Assignment:
		return ev.evalAssignment(n, env)
	case *ast.FuncLiteral:
		return ev.evalFuncLiteral(n, env)
	default:
		return nil, raise(ierrors.TypeError, expr.Start(), "cannot evaluate node of type %T", expr)
	}
}

func (ev *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral, env *runtime.Environment) (runtime.Value, error) {
	elems := make([]runtime.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := ev.evalExpr(e, env)
		if err != nil {
			return nil, err
		}
		elems[i] = runtime.CopyForStorage(v)
	}
	return runtime.NewArray(elems), nil
}

func (ev *Evaluator) evalDictLiteral(n *ast.DictLiteral, env *runtime.Environment) (runtime.Value, error) {
	d := runtime.NewDict()
	for _, entry := range n.Entries {
		k, err := ev.evalExpr(entry.Key, env)
		if err != nil {
			return nil, err
		}
		v, err := ev.evalExpr(entry.Value, env)
		if err != nil {
			return nil, err
		}
		if !d.Set(k, runtime.CopyForStorage(v)) {
			return nil, raise(ierrors.TypeError, entry.Key.Start(), "value of type %s is not a valid dictionary key", k.Type())
		}
	}
	return d, nil
}

func (ev *Evaluator) evalSliceExpr(n *ast.SliceExpr, env *runtime.Environment) (runtime.Value, error) {
	obj, err := ev.evalExpr(n.Object, env)
	if err != nil {
		return nil, err
	}
	start, end, err := ev.resolveSliceBounds(n, env)
	if err != nil {
		return nil, err
	}
	switch x := obj.(type) {
	case *runtime.ArrayValue:
		return x.Slice(start, end), nil
	case *runtime.StringValue:
		return x.Slice(start, end), nil
	default:
		return nil, raise(ierrors.TypeError, n.Start(), "value of type %s cannot be sliced", obj.Type())
	}
}

func (ev *Evaluator) resolveSliceBounds(n *ast.SliceExpr, env *runtime.Environment) (*int, *int, error) {
	var start, end *int
	if n.StartIndex != nil {
		v, err := ev.evalExpr(n.StartIndex, env)
		if err != nil {
			return nil, nil, err
		}
		i, ok := v.(runtime.Int)
		if !ok {
			return nil, nil, raise(ierrors.TypeError, n.StartIndex.Start(), "slice bound must be an int")
		}
		iv := int(i.Value)
		start = &iv
	}
	if n.EndIndex != nil {
		v, err := ev.evalExpr(n.EndIndex, env)
		if err != nil {
			return nil, nil, err
		}
		i, ok := v.(runtime.Int)
		if !ok {
			return nil, nil, raise(ierrors.TypeError, n.EndIndex.Start(), "slice bound must be an int")
		}
		iv := int(i.Value)
		end = &iv
	}
	return start, end, nil
}

func (ev *Evaluator) evalUnary(n *ast.UnaryExpr, env *runtime.Environment) (runtime.Value, error) {
	v, err := ev.evalExpr(n.Operand, env)
	if err != nil {
		return nil, err
	}
	var res runtime.Value
	switch n.Op {
	case lexer.OpMinus:
		res, err = runtime.Neg(v)
	case lexer.OpNot:
		return boolValue(!runtime.IsTrue(v)), nil
	case lexer.OpTilde:
		res, err = runtime.BitNot(v)
	default:
		return nil, raise(ierrors.TypeError, n.Start(), "unsupported unary operator %s", n.Op)
	}
	if err != nil {
		return nil, raise(ierrors.TypeError, n.Start(), "%s", err.Error())
	}
	return res, nil
}

// boolValue represents the script's boolean results as int 0/1: the
// language has no distinct boolean tag (§3 trivial tags list none, int,
// float, built-in) — comparisons and logical operators yield int.
func boolValue(b bool) runtime.Value {
	if b {
		return runtime.Int{Value: 1}
	}
	return runtime.Int{Value: 0}
}

func (ev *Evaluator) evalBinaryChain(n *ast.BinaryChain, env *runtime.Environment) (runtime.Value, error) {
	acc, err := ev.evalExpr(n.Elements[0].Operand, env)
	if err != nil {
		return nil, err
	}
	for _, el := range n.Elements[1:] {
		switch el.Op {
		case lexer.OpAndAnd:
			if !runtime.IsTrue(acc) {
				acc = boolValue(false)
				continue
			}
			rhs, err := ev.evalExpr(el.Operand, env)
			if err != nil {
				return nil, err
			}
			acc = boolValue(runtime.IsTrue(rhs))
			continue
		case lexer.OpOrOr:
			if runtime.IsTrue(acc) {
				acc = boolValue(true)
				continue
			}
			rhs, err := ev.evalExpr(el.Operand, env)
			if err != nil {
				return nil, err
			}
			acc = boolValue(runtime.IsTrue(rhs))
			continue
		}
		rhs, err := ev.evalExpr(el.Operand, env)
		if err != nil {
			return nil, err
		}
		acc, err = ev.applyBinaryOp(el.Op, acc, rhs, n.Start())
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (ev *Evaluator) applyBinaryOp(op lexer.Op, l, r runtime.Value, pos lexer.Position) (runtime.Value, error) {
	var res runtime.Value
	var err error
	switch op {
	case lexer.OpPlus:
		res, err = runtime.Add(l, r)
	case lexer.OpMinus:
		res, err = runtime.Sub(l, r)
	case lexer.OpStar:
		res, err = runtime.Mult(l, r)
	case lexer.OpSlash:
		res, err = runtime.Div(l, r)
	case lexer.OpPercent:
		res, err = runtime.Mod(l, r)
	case lexer.OpEq:
		return boolValue(runtime.Equal(l, r)), nil
	case lexer.OpNotEq:
		return boolValue(!runtime.Equal(l, r)), nil
	case lexer.OpLess, lexer.OpGreater, lexer.OpLessEq, lexer.OpGreaterEq:
		c, cerr := runtime.Compare(l, r)
		if cerr != nil {
			return nil, raise(ierrors.TypeError, pos, "%s", cerr.Error())
		}
		switch op {
		case lexer.OpLess:
			return boolValue(c < 0), nil
		case lexer.OpGreater:
			return boolValue(c > 0), nil
		case lexer.OpLessEq:
			return boolValue(c <= 0), nil
		default:
			return boolValue(c >= 0), nil
		}
	case lexer.OpAmp:
		res, err = intOnly(l, r, func(a, b int64) int64 { return a & b })
	case lexer.OpPipe:
		res, err = intOnly(l, r, func(a, b int64) int64 { return a | b })
	default:
		return nil, raise(ierrors.TypeError, pos, "unsupported binary operator %s", op)
	}
	if err == runtime.ErrDivByZero {
		return nil, raise(ierrors.DivisionByZero, pos, "division by zero")
	}
	if err != nil {
		return nil, raise(ierrors.TypeError, pos, "%s", err.Error())
	}
	return res, nil
}

func intOnly(l, r runtime.Value, f func(a, b int64) int64) (runtime.Value, error) {
	li, ok1 := l.(runtime.Int)
	ri, ok2 := r.(runtime.Int)
	if !ok1 || !ok2 {
		return nil, &runtime.ArithError{Op: "bitwise", Left: l.Type(), Right: r.Type()}
	}
	return runtime.Int{Value: f(li.Value, ri.Value)}, nil
}

func (ev *Evaluator) evalCall(n *ast.CallExpr, env *runtime.Environment) (runtime.Value, error) {
	callee, err := ev.evalExpr(n.Callee, env)
	if err != nil {
		return nil, err
	}
	switch fn := callee.(type) {
	case runtime.Builtin:
		bf, ok := fn.Fn.(BuiltinFunc)
		if !ok {
			return nil, raise(ierrors.NotCallable, n.Start(), "built-in %q is not invokable", fn.Name)
		}
		return bf(ev, env, n.Args)
	case *runtime.Function:
		args := make([]runtime.Value, len(n.Args))
		for i, a := range n.Args {
			v, err := ev.evalExpr(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return ev.callFunction(fn, args, n.Start())
	default:
		return nil, raise(ierrors.NotCallable, n.Start(), "value of type %s is not callable", callee.Type())
	}
}

func (ev *Evaluator) evalFuncLiteral(n *ast.FuncLiteral, env *runtime.Environment) (runtime.Value, error) {
	captureEnv := env
	if n.IsPure {
		captureEnv = rootOf(env)
	} else if n.HasCaptureList {
		// An explicit capture list snapshots named values into a fresh
		// scope rooted at the program's root, rather than closing over
		// the full lexical chain (§4.3 "the closure snapshots their
		// current values").
		snap := runtime.NewEnclosedEnvironment(rootOf(env))
		for _, name := range n.Captures {
			cell, ok := env.Lookup(name)
			if !ok {
				return nil, raise(ierrors.UndefinedVariable, n.Start(), "undefined variable %q in capture list", name)
			}
			if _, err := snap.Define(name, cell.Get(), false); err != nil {
				return nil, raise(ierrors.AlreadyDefined, n.Start(), "%s", err.Error())
			}
		}
		captureEnv = snap
	}
	fn := &runtime.Function{Name: n.Name, Params: append([]string(nil), n.Params...), Body: n.Body, Env: captureEnv, IsPure: n.IsPure}
	return fn, nil
}

func rootOf(env *runtime.Environment) *runtime.Environment {
	for env.Outer() != nil {
		env = env.Outer()
	}
	return env
}
