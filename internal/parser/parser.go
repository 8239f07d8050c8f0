// Package parser implements the recursive-descent, one-token-lookahead
// parser described in spec.md §4.3: it turns a token stream into an
// *ast.Program, folding parse-time-constant subexpressions as it goes.
package parser

import (
	"strings"

	"github.com/cwbudde/go-script/internal/ast"
	"github.com/cwbudde/go-script/internal/interp/runtime"
	"github.com/cwbudde/go-script/internal/lexer"
)

// Parser walks a flat token stream (every source line lexed independently
// via lexer.Lex and concatenated, per §4.1's "single logical line" input
// contract) building the syntax tree.
type Parser struct {
	tokens []lexer.Token
	pos    int

	// constEnv is the chained const-eval environment the folding pass
	// consults and extends (§4.3): built-ins marked const plus every
	// `const` declaration seen so far.
	constEnv *runtime.Environment
	ev       constEvaluator
}

// constEvaluator is the narrow surface the const-folding pass needs from
// internal/interp/evaluator, expressed as an interface here so this
// package doesn't import evaluator directly — callers of New and Parse
// pass in the real evaluator (or nil).
type constEvaluator interface {
	EvalExpr(expr ast.Expression, env *runtime.Environment) (runtime.Value, error)
}

// Option configures a Parser constructed via New.
type Option func(*Parser)

// WithConstEnv makes the const-eval environment a child scope of env, so
// the built-ins registered there (marked const) are visible to folding.
// Parse-time const declarations go into that child scope; env itself is
// not modified.
func WithConstEnv(env *runtime.Environment) Option {
	return func(p *Parser) { p.constEnv = runtime.NewEnclosedEnvironment(env) }
}

// New tokenizes source (one call to lexer.Lex per physical line, per
// §4.1) and returns a Parser ready to run ParseProgram. ev performs the
// const-folding evaluations (§4.3); pass nil to disable folding entirely.
func New(source string, ev constEvaluator, opts ...Option) (*Parser, error) {
	var tokens []lexer.Token
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lineNo := i + 1
		toks, err := lexer.Lex(line, lineNo)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, toks...)
	}
	tokens = append(tokens, lexer.Token{Kind: lexer.EOF})

	p := &Parser{tokens: tokens, ev: ev}
	for _, opt := range opts {
		opt(p)
	}
	if p.constEnv == nil {
		p.constEnv = runtime.NewEnvironment()
	}
	return p, nil
}

// Parse runs New then ParseProgram, the common case for callers that don't
// need to pre-seed the const environment.
func Parse(source string, ev constEvaluator) (*ast.Program, error) {
	p, err := New(source, ev)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) atEnd() bool       { return p.cur().Kind == lexer.EOF }
func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) checkOp(op lexer.Op) bool {
	t := p.cur()
	return t.Kind == lexer.Operator && t.Op == op
}

func (p *Parser) checkKw(kw lexer.Kw) bool {
	t := p.cur()
	return t.Kind == lexer.Keyword && t.Kw == kw
}

func (p *Parser) acceptOp(op lexer.Op) (lexer.Token, bool) {
	if p.checkOp(op) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) acceptKw(kw lexer.Kw) (lexer.Token, bool) {
	if p.checkKw(kw) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) expectOp(op lexer.Op) (lexer.Token, error) {
	if t, ok := p.acceptOp(op); ok {
		return t, nil
	}
	return lexer.Token{}, p.syntaxErrorf("expected %q", op.String())
}

func (p *Parser) expectKw(kw lexer.Kw) (lexer.Token, error) {
	if t, ok := p.acceptKw(kw); ok {
		return t, nil
	}
	return lexer.Token{}, p.syntaxErrorf("expected keyword %q", kw.String())
}

func (p *Parser) expectIdentifier() (lexer.Token, error) {
	t := p.cur()
	if t.Kind != lexer.Identifier {
		return lexer.Token{}, p.syntaxErrorf("expected identifier, got %s", t.String())
	}
	return p.advance(), nil
}

// ParseProgram parses a full source file: a sequence of statements until
// end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}
