package builtins

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-script/internal/ast"
	"github.com/cwbudde/go-script/internal/interp/evaluator"
	"github.com/cwbudde/go-script/internal/interp/runtime"
)

// writeArgs stringifies every argument (§4.4 to_string) and writes them to
// os.Stdout back to back, optionally followed by a newline. This is the
// one place the reference built-in set performs I/O — the core evaluator
// itself never writes to stdout/stderr (§6: that belongs to the external
// driver/built-ins).
func writeArgs(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression, newline bool) (runtime.Value, error) {
	for i := range args {
		v, err := evalArg(ev, env, args, i)
		if err != nil {
			return nil, err
		}
		fmt.Fprint(os.Stdout, runtime.ToString(v))
	}
	if newline {
		fmt.Fprintln(os.Stdout)
	}
	return runtime.NoneValue, nil
}

func builtinPrint(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	return writeArgs(ev, env, args, false)
}

func builtinPrintln(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	return writeArgs(ev, env, args, true)
}

func builtinWrite(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	return writeArgs(ev, env, args, false)
}

func builtinWriteln(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	return writeArgs(ev, env, args, true)
}
