// Package builtins implements the reference built-in function set
// (§4.5/§4.6): the fixed, non-overridable names every script can call
// without an import. Each built-in receives its argument list unevaluated
// (§4.5 "hand the unevaluated argument list node to the built-in"), so it
// controls its own evaluation order, strictness, and l-value access.
package builtins

import (
	"github.com/cwbudde/go-script/internal/ast"
	ierrors "github.com/cwbudde/go-script/internal/interp/errors"
	"github.com/cwbudde/go-script/internal/interp/evaluator"
	"github.com/cwbudde/go-script/internal/interp/runtime"
	"github.com/cwbudde/go-script/internal/lexer"
)

// All lists the reference built-ins by name, grounded mostly in
// original_source/src/builtins/*.cpp.h with a few additions the pack's
// other example repos model (sort, json_encode/json_decode).
var All = map[string]evaluator.BuiltinFunc{
	"defined":     builtinDefined,
	"undef":       builtinUndef,
	"len":         builtinLen,
	"str":         builtinStr,
	"clone":       builtinClone,
	"hash":        builtinHash,
	"intptr":      builtinIntptr,
	"assert":      builtinAssert,
	"array":       builtinArray,
	"append":      builtinAppend,
	"pop":         builtinPop,
	"top":         builtinTop,
	"erase":       builtinErase,
	"insert":      builtinInsert,
	"find":        builtinFind,
	"map":         builtinMap,
	"filter":      builtinFilter,
	"sort":        builtinSort,
	"dict":        builtinDict,
	"keys":        builtinKeys,
	"values":      builtinValues,
	"kvpairs":     builtinKVPairs,
	"exception":   builtinException,
	"exdata":      builtinExdata,
	"print":       builtinPrint,
	"println":     builtinPrintln,
	"write":       builtinWrite,
	"writeln":     builtinWriteln,
	"json_encode": builtinJSONEncode,
	"json_decode": builtinJSONDecode,
}

// Register installs every built-in as a const binding in env (normally the
// program's root scope), the same way the parser's const-eval environment
// is pre-seeded so folding can see them (§4.3).
func Register(env *runtime.Environment) {
	for name, fn := range All {
		env.DefineBuiltin(name, evaluator.NewBuiltinValue(name, fn))
	}
}

// RegisterSelected installs only the named subset of All, for drivers that
// restrict the built-in surface via config (internal/config.Config.Builtins).
// A nil/empty set behaves exactly like Register.
func RegisterSelected(env *runtime.Environment, names map[string]bool) {
	if len(names) == 0 {
		Register(env)
		return
	}
	for name := range names {
		fn, ok := All[name]
		if !ok {
			continue
		}
		env.DefineBuiltin(name, evaluator.NewBuiltinValue(name, fn))
	}
}

func arity(name string, args []ast.Expression, n int) error {
	if len(args) != n {
		return evaluator.Raise(ierrors.InvalidArgument, argsPos(args), "%s() expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func argsPos(args []ast.Expression) lexer.Position {
	if len(args) == 0 {
		return lexer.Position{}
	}
	return args[0].Start()
}

func evalArg(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression, i int) (runtime.Value, error) {
	return ev.EvalExpr(args[i], env)
}

func typeError(pos lexer.Position, format string, args ...any) error {
	return evaluator.Raise(ierrors.TypeError, pos, format, args...)
}
