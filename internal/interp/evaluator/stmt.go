package evaluator

import (
	"github.com/cwbudde/go-script/internal/ast"
	ierrors "github.com/cwbudde/go-script/internal/interp/errors"
	"github.com/cwbudde/go-script/internal/interp/runtime"
)

func (ev *Evaluator) evalStmt(stmt ast.Statement, env *runtime.Environment) (signal, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return ev.evalBlock(s, env)
	case *ast.VarDecl:
		return ev.evalVarDecl(s, env)
	case *ast.ConstDecl:
		return ev.evalConstDecl(s, env)
	case *ast.ExprStmt:
		if _, err := ev.evalExpr(s.Expr, env); err != nil {
			return noSignal, err
		}
		return noSignal, nil
	case *ast.IfStmt:
		return ev.evalIf(s, env)
	case *ast.WhileStmt:
		return ev.evalWhile(s, env)
	case *ast.ForStmt:
		return ev.evalFor(s, env)
	case *ast.ForeachStmt:
		return ev.evalForeach(s, env)
	case *ast.BreakStmt:
		return breakSignal(), nil
	case *ast.ContinueStmt:
		return continueSignal(), nil
	case *ast.ReturnStmt:
		if s.Value == nil {
			return returnSignal(runtime.NoneValue), nil
		}
		v, err := ev.evalExpr(s.Value, env)
		if err != nil {
			return noSignal, err
		}
		return returnSignal(v), nil
	case *ast.ThrowStmt:
		v, err := ev.evalExpr(s.Value, env)
		if err != nil {
			return noSignal, err
		}
		return noSignal, ev.throwValue(v)
	case *ast.RethrowStmt:
		if len(ev.handling) == 0 {
			return noSignal, raise(ierrors.NotAnLValue, s.Start(), "rethrow is only legal inside a catch body")
		}
		cur := ev.handling[len(ev.handling)-1]
		return noSignal, &ThrownError{Exc: cur}
	case *ast.TryStmt:
		return ev.evalTry(s, env)
	case *ast.FuncDeclStmt:
		fn, err := ev.evalFuncLiteral(s.Func, env)
		if err != nil {
			return noSignal, err
		}
		if _, err := env.Define(s.Func.Name, fn, false); err != nil {
			return noSignal, raise(ierrors.AlreadyDefined, s.Start(), "%s", err.Error())
		}
		return noSignal, nil
	case *ast.NopStmt:
		return noSignal, nil
	default:
		return noSignal, raise(ierrors.TypeError, stmt.Start(), "cannot evaluate statement of type %T", stmt)
	}
}

// throwValue wraps any script value as a thrown error. A value that is
// already an *runtime.Exception carries its own name; anything else is
// wrapped under the name "exception" so `catch` can still match a bare
// `throw 5;`.
func (ev *Evaluator) throwValue(v runtime.Value) error {
	if exc, ok := v.(*runtime.Exception); ok {
		return &ThrownError{Exc: exc}
	}
	return &ThrownError{Exc: runtime.NewException("exception", v)}
}

func (ev *Evaluator) evalBlock(b *ast.Block, env *runtime.Environment) (signal, error) {
	child := runtime.NewEnclosedEnvironment(env)
	for _, stmt := range b.Statements {
		sig, err := ev.evalStmt(stmt, child)
		if err != nil {
			return noSignal, err
		}
		if !sig.isNone() {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (ev *Evaluator) evalVarDecl(s *ast.VarDecl, env *runtime.Environment) (signal, error) {
	var v runtime.Value = runtime.NoneValue
	if s.Value != nil {
		var err error
		v, err = ev.evalExpr(s.Value, env)
		if err != nil {
			return noSignal, err
		}
	}
	if _, err := env.Define(s.Name, runtime.CopyForStorage(v), false); err != nil {
		return noSignal, raise(ierrors.AlreadyDefined, s.Start(), "%s", err.Error())
	}
	return noSignal, nil
}

func (ev *Evaluator) evalConstDecl(s *ast.ConstDecl, env *runtime.Environment) (signal, error) {
	v, err := ev.evalExpr(s.Value, env)
	if err != nil {
		return noSignal, err
	}
	if _, err := env.Define(s.Name, runtime.CopyForStorage(v), true); err != nil {
		return noSignal, raise(ierrors.AlreadyDefined, s.Start(), "%s", err.Error())
	}
	return noSignal, nil
}

func (ev *Evaluator) evalIf(s *ast.IfStmt, env *runtime.Environment) (signal, error) {
	cond, err := ev.evalExpr(s.Cond, env)
	if err != nil {
		return noSignal, err
	}
	if runtime.IsTrue(cond) {
		return ev.evalStmt(s.Then, env)
	}
	if s.Else != nil {
		return ev.evalStmt(s.Else, env)
	}
	return noSignal, nil
}

func (ev *Evaluator) evalWhile(s *ast.WhileStmt, env *runtime.Environment) (signal, error) {
	for {
		cond, err := ev.evalExpr(s.Cond, env)
		if err != nil {
			return noSignal, err
		}
		if !runtime.IsTrue(cond) {
			return noSignal, nil
		}
		sig, err := ev.evalStmt(s.Body, env)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalContinue, signalNone:
			continue
		default:
			return sig, nil
		}
	}
}

func (ev *Evaluator) evalFor(s *ast.ForStmt, env *runtime.Environment) (signal, error) {
	loopEnv := runtime.NewEnclosedEnvironment(env)
	if s.Init != nil {
		if _, err := ev.evalStmt(s.Init, loopEnv); err != nil {
			return noSignal, err
		}
	}
	for {
		if s.Cond != nil {
			cond, err := ev.evalExpr(s.Cond, loopEnv)
			if err != nil {
				return noSignal, err
			}
			if !runtime.IsTrue(cond) {
				return noSignal, nil
			}
		}
		sig, err := ev.evalStmt(s.Body, loopEnv)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalContinue, signalNone:
			// fall through to post
		default:
			return sig, nil
		}
		if s.Post != nil {
			if _, err := ev.evalStmt(s.Post, loopEnv); err != nil {
				return noSignal, err
			}
		}
	}
}

func (ev *Evaluator) evalForeach(s *ast.ForeachStmt, env *runtime.Environment) (signal, error) {
	iterable, err := ev.evalExpr(s.Iterable, env)
	if err != nil {
		return noSignal, err
	}
	items, err := foreachItems(iterable)
	if err != nil {
		return noSignal, raise(ierrors.TypeError, s.Iterable.Start(), "%s", err.Error())
	}
	for idx, components := range items {
		iterEnv := runtime.NewEnclosedEnvironment(env)
		names := s.Idents
		if s.Indexed {
			if len(names) > 0 {
				if _, err := iterEnv.Define(names[0], runtime.Int{Value: int64(idx)}, false); err != nil {
					return noSignal, err
				}
				names = names[1:]
			}
		}
		for i, name := range names {
			var v runtime.Value = runtime.NoneValue
			if i < len(components) {
				v = components[i]
			}
			if _, err := iterEnv.Define(name, runtime.CopyForStorage(v), false); err != nil {
				return noSignal, err
			}
		}
		sig, err := ev.evalStmt(s.Body, iterEnv)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalContinue, signalNone:
			continue
		default:
			return sig, nil
		}
	}
	return noSignal, nil
}

// foreachItems flattens an iterable into one []Value "component list" per
// iteration: one element for arrays, a one-character slice for strings,
// (key, value) for dicts (§4.3 "dict iteration binds two values").
func foreachItems(v runtime.Value) ([][]runtime.Value, error) {
	switch x := v.(type) {
	case *runtime.ArrayValue:
		out := make([][]runtime.Value, x.Size())
		for i := range out {
			elem, _ := x.Get(i)
			out[i] = []runtime.Value{elem}
		}
		return out, nil
	case *runtime.StringValue:
		n := x.Len()
		out := make([][]runtime.Value, n)
		for i := 0; i < n; i++ {
			lo, hi := i, i+1
			out[i] = []runtime.Value{x.Slice(&lo, &hi)}
		}
		return out, nil
	case *runtime.DictValue:
		pairs := x.Pairs()
		out := make([][]runtime.Value, len(pairs))
		for i, p := range pairs {
			out[i] = []runtime.Value{p[0], p[1]}
		}
		return out, nil
	default:
		return nil, &runtime.ArithError{Op: "foreach", Left: v.Type(), Right: ""}
	}
}

func (ev *Evaluator) evalTry(s *ast.TryStmt, env *runtime.Environment) (signal, error) {
	sig, err := ev.evalStmt(s.Try, env)

	if te, ok := err.(*ThrownError); ok {
		handled := false
		for _, clause := range s.Catches {
			if !catchMatches(clause, te.Exc.Name) {
				continue
			}
			handled = true
			catchEnv := runtime.NewEnclosedEnvironment(env)
			if clause.As != "" {
				if _, derr := catchEnv.Define(clause.As, te.Exc, false); derr != nil {
					return ev.runFinally(s, env, noSignal, raise(ierrors.AlreadyDefined, s.Start(), "%s", derr.Error()))
				}
			}
			ev.handling = append(ev.handling, te.Exc)
			sig, err = ev.evalStmt(clause.Body, catchEnv)
			ev.handling = ev.handling[:len(ev.handling)-1]
			break
		}
		if !handled {
			return ev.runFinally(s, env, noSignal, err)
		}
	}

	return ev.runFinally(s, env, sig, err)
}

func catchMatches(clause ast.CatchClause, name string) bool {
	if len(clause.Names) == 0 {
		return true
	}
	for _, n := range clause.Names {
		if n == name {
			return true
		}
	}
	return false
}

// runFinally runs s.Finally (if present) after the try/catch body has
// produced (sig, err); per §7/§8 invariant 7, finally always runs, and
// innermost finally blocks run before outer ones since each TryStmt's
// finally executes as this call returns up the recursive evalStmt stack.
// A finally that itself exits abnormally (return/throw/break/continue)
// overrides whatever the try/catch body produced.
func (ev *Evaluator) runFinally(s *ast.TryStmt, env *runtime.Environment, sig signal, err error) (signal, error) {
	if s.Finally == nil {
		return sig, err
	}
	fsig, ferr := ev.evalStmt(s.Finally, env)
	if ferr != nil {
		return noSignal, ferr
	}
	if !fsig.isNone() {
		return fsig, nil
	}
	return sig, err
}
