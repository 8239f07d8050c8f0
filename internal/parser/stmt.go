package parser

import (
	"github.com/cwbudde/go-script/internal/ast"
	"github.com/cwbudde/go-script/internal/interp/runtime"
	"github.com/cwbudde/go-script/internal/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	t := p.cur()
	if t.Kind == lexer.Operator && t.Op == lexer.OpLBrace {
		return p.parseBlock()
	}
	if t.Kind == lexer.Operator && t.Op == lexer.OpSemicolon {
		p.advance()
		return &ast.NopStmt{}, nil
	}
	if t.Kind == lexer.Keyword {
		switch t.Kw {
		case lexer.KwVar:
			return p.parseVarDecl()
		case lexer.KwConst:
			return p.parseConstDecl()
		case lexer.KwIf:
			return p.parseIf()
		case lexer.KwWhile:
			return p.parseWhile()
		case lexer.KwFor:
			return p.parseFor()
		case lexer.KwForeach:
			return p.parseForeach()
		case lexer.KwBreak:
			p.advance()
			return p.finishSimple(&ast.BreakStmt{})
		case lexer.KwContinue:
			p.advance()
			return p.finishSimple(&ast.ContinueStmt{})
		case lexer.KwReturn:
			return p.parseReturn()
		case lexer.KwThrow:
			return p.parseThrow()
		case lexer.KwRethrow:
			p.advance()
			return p.finishSimple(&ast.RethrowStmt{})
		case lexer.KwTry:
			return p.parseTry()
		case lexer.KwFunc, lexer.KwPure:
			return p.parseFuncDecl()
		}
	}
	return p.parseExprStatement()
}

// finishSimple consumes the trailing `;` for statements with no payload.
func (p *Parser) finishSimple(s ast.Statement) (ast.Statement, error) {
	if _, err := p.expectOp(lexer.OpSemicolon); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expectOp(lexer.OpLBrace); err != nil {
		return nil, err
	}
	b := &ast.Block{}
	for !p.checkOp(lexer.OpRBrace) && !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, stmt)
	}
	if _, err := p.expectOp(lexer.OpRBrace); err != nil {
		return nil, err
	}
	return b, nil
}

// parseBody parses a statement body for if/while/for/foreach: either a
// brace block or a single statement, matching the grammar's `s` nonterminal.
func (p *Parser) parseBody() (ast.Statement, error) {
	return p.parseStatement()
}

func (p *Parser) parseVarDecl() (ast.Statement, error) {
	p.advance() // `var`
	first, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var names []string
	names = append(names, first.Text)
	for {
		if _, ok := p.acceptOp(lexer.OpComma); !ok {
			break
		}
		id, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, id.Text)
	}

	var value ast.Expression
	if _, ok := p.acceptOp(lexer.OpAssign); ok {
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectOp(lexer.OpSemicolon); err != nil {
		return nil, err
	}

	if len(names) == 1 {
		return &ast.VarDecl{Name: names[0], Value: value}, nil
	}
	if value == nil {
		value = ast.NewNoneLiteral(first.Start, first.End)
	}
	targets := make([]ast.Expression, len(names))
	for i, n := range names {
		targets[i] = ast.NewIdentifier(n, first.Start, first.End)
	}
	assign := &ast.Assignment{Targets: targets, Op: ast.AssignSet, Value: value, Declare: true}
	return &ast.ExprStmt{Expr: assign}, nil
}

func (p *Parser) parseConstDecl() (ast.Statement, error) {
	p.advance() // `const`
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(lexer.OpAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(lexer.OpSemicolon); err != nil {
		return nil, err
	}
	if err := p.requireConst(value); err != nil {
		return nil, err
	}
	if err := p.defineConstInFoldEnv(name.Text, value); err != nil {
		return nil, err
	}
	return &ast.ConstDecl{Name: name.Text, Value: value}, nil
}

func (p *Parser) requireConst(e ast.Expression) error {
	if !e.IsConst() {
		return p.syntaxErrorf("expression is not const")
	}
	return nil
}

// defineConstInFoldEnv extends the parser's const-eval environment with
// name's folded value (§4.3: "stores the result in both the current scope
// and the const-eval environment"), so later `const` declarations and
// folding passes can see it.
func (p *Parser) defineConstInFoldEnv(name string, value ast.Expression) error {
	if p.ev == nil {
		// Without an evaluator the value is never computed; the name is
		// still recorded (holding none) so later references to it count as
		// parse-time constants.
		if _, err := p.constEnv.Define(name, runtime.NoneValue, true); err != nil {
			return p.syntaxErrorf("%s", err.Error())
		}
		return nil
	}
	v, err := p.ev.EvalExpr(value, p.constEnv)
	if err != nil {
		return p.syntaxErrorf("const %q could not be evaluated: %s", name, err.Error())
	}
	if _, err := p.constEnv.Define(name, v, true); err != nil {
		return p.syntaxErrorf("%s", err.Error())
	}
	return nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	p.advance()
	if _, err := p.expectOp(lexer.OpLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(lexer.OpRParen); err != nil {
		return nil, err
	}
	then, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Statement
	if _, ok := p.acceptKw(lexer.KwElse); ok {
		elseStmt, err = p.parseBody()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	p.advance()
	if _, err := p.expectOp(lexer.OpLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(lexer.OpRParen); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	p.advance()
	if _, err := p.expectOp(lexer.OpLParen); err != nil {
		return nil, err
	}
	var initStmt ast.Statement
	if !p.checkOp(lexer.OpSemicolon) {
		var err error
		initStmt, err = p.parseForClause()
		if err != nil {
			return nil, err
		}
	} else {
		p.advance()
	}
	var cond ast.Expression
	if !p.checkOp(lexer.OpSemicolon) {
		var err error
		cond, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectOp(lexer.OpSemicolon); err != nil {
		return nil, err
	}
	var postStmt ast.Statement
	if !p.checkOp(lexer.OpRParen) {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		postStmt = &ast.ExprStmt{Expr: e}
	}
	if _, err := p.expectOp(lexer.OpRParen); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Init: initStmt, Cond: cond, Post: postStmt, Body: body}, nil
}

// parseForClause parses a `for(...)` init clause, which may be a `var`
// binding (without its own trailing semicolon consumed twice) or a bare
// expression, followed by the clause-terminating `;`.
func (p *Parser) parseForClause() (ast.Statement, error) {
	if p.checkKw(lexer.KwVar) {
		return p.parseVarDecl() // consumes its own trailing `;`
	}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(lexer.OpSemicolon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: e}, nil
}

func (p *Parser) parseForeach() (ast.Statement, error) {
	p.advance()
	if _, err := p.expectOp(lexer.OpLParen); err != nil {
		return nil, err
	}
	first, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	names := []string{first.Text}
	for {
		if _, ok := p.acceptOp(lexer.OpComma); !ok {
			break
		}
		id, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, id.Text)
	}
	if _, err := p.expectKw(lexer.KwIn); err != nil {
		return nil, err
	}
	indexed := false
	if _, ok := p.acceptKw(lexer.KwIndexed); ok {
		indexed = true
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(lexer.OpRParen); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.ForeachStmt{Idents: names, Indexed: indexed, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	p.advance()
	if _, ok := p.acceptOp(lexer.OpSemicolon); ok {
		return &ast.ReturnStmt{}, nil
	}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(lexer.OpSemicolon); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: e}, nil
}

func (p *Parser) parseThrow() (ast.Statement, error) {
	p.advance()
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(lexer.OpSemicolon); err != nil {
		return nil, err
	}
	return &ast.ThrowStmt{Value: e}, nil
}

func (p *Parser) parseTry() (ast.Statement, error) {
	p.advance()
	tryBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var catches []ast.CatchClause
	sawCatchAll := false
	for p.checkKw(lexer.KwCatch) {
		p.advance()
		var names []string
		var as string
		if _, ok := p.acceptOp(lexer.OpLParen); ok {
			id, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			names = append(names, id.Text)
			for {
				if _, ok := p.acceptOp(lexer.OpComma); !ok {
					break
				}
				id, err := p.expectIdentifier()
				if err != nil {
					return nil, err
				}
				names = append(names, id.Text)
			}
			if _, ok := p.acceptKw(lexer.KwAs); ok {
				id, err := p.expectIdentifier()
				if err != nil {
					return nil, err
				}
				as = id.Text
			}
			if _, err := p.expectOp(lexer.OpRParen); err != nil {
				return nil, err
			}
		}
		if len(names) == 0 {
			if sawCatchAll {
				return nil, p.syntaxErrorf("at most one catch-anything clause is allowed")
			}
			sawCatchAll = true
		} else if sawCatchAll {
			return nil, p.syntaxErrorf("catch-anything must be the last catch clause")
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		catches = append(catches, ast.CatchClause{Names: names, As: as, Body: body})
	}
	var finallyBody ast.Statement
	if _, ok := p.acceptKw(lexer.KwFinally); ok {
		finallyBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	if len(catches) == 0 && finallyBody == nil {
		return nil, p.syntaxErrorf("try must be followed by at least one catch or a finally")
	}
	return &ast.TryStmt{Try: tryBody, Catches: catches, Finally: finallyBody}, nil
}

func (p *Parser) parseFuncDecl() (ast.Statement, error) {
	lit, err := p.parseFuncLiteralNamed(true)
	if err != nil {
		return nil, err
	}
	fl := lit.(*ast.FuncLiteral)
	return &ast.FuncDeclStmt{Func: fl}, nil
}

func (p *Parser) parseExprStatement() (ast.Statement, error) {
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(lexer.OpSemicolon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: e}, nil
}
