package cmd

import (
	"fmt"

	"github.com/cwbudde/go-script/internal/builtins"
	"github.com/cwbudde/go-script/internal/config"
	"github.com/cwbudde/go-script/internal/interp/evaluator"
	"github.com/cwbudde/go-script/internal/interp/runtime"
	"github.com/cwbudde/go-script/internal/parser"
)

// newParser builds a Parser for source honoring cfg's const-folding and
// built-in selection. The parser's const-eval pass (§4.3) folds in a child
// scope of the root Environment that the evaluation run then uses, so it
// sees the same built-ins and args, while the root itself is left for the
// run's own const declarations.
func newParser(source string, cfg *config.Config) (*parser.Parser, *runtime.Environment, error) {
	env := runtime.NewEnvironment()
	builtins.RegisterSelected(env, cfg.BuiltinSet())
	argv := make([]runtime.Value, len(cfg.Args))
	for i, a := range cfg.Args {
		argv[i] = runtime.NewString(a)
	}
	env.DefineBuiltin("args", runtime.NewArray(argv))

	var opts []parser.Option
	if !cfg.DisableConstEval {
		opts = append(opts, parser.WithConstEnv(env))
	}

	// parser.New's ev parameter must stay a true nil interface (not a
	// typed nil pointer) when folding is disabled, or the parser's
	// "p.ev == nil" checks would miss it — hence the two explicit calls
	// below instead of assigning nil to an *evaluator.Evaluator first.
	if cfg.DisableConstEval {
		p, err := parser.New(source, nil, opts...)
		return p, env, err
	}
	e := evaluator.New()
	p, err := parser.New(source, e, opts...)
	return p, env, err
}

func runSource(source, name string, cfg *config.Config) error {
	p, env, err := newParser(source, cfg)
	if err != nil {
		return fmt.Errorf("lexing %s: %w", name, err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	ev := evaluator.New()
	if err := ev.Run(prog, env); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}
