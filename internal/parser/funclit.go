package parser

import (
	"github.com/cwbudde/go-script/internal/ast"
	"github.com/cwbudde/go-script/internal/lexer"
)

// parseFuncLiteral parses a function value appearing in expression position:
// anonymous or named, `pure` optional, arrow-expression or block body
// (§4.3). parsePrimary dispatches here on seeing `func` or `pure`.
func (p *Parser) parseFuncLiteral() (ast.Expression, error) {
	return p.parseFuncLiteralNamed(false)
}

// parseFuncLiteralNamed parses the common function-literal grammar.
// requireName is set by function *declaration* statements, where a name is
// mandatory; expression-position literals may be anonymous.
func (p *Parser) parseFuncLiteralNamed(requireName bool) (ast.Expression, error) {
	start := p.cur().Start
	isPure := false
	if _, ok := p.acceptKw(lexer.KwPure); ok {
		isPure = true
	}
	if _, err := p.expectKw(lexer.KwFunc); err != nil {
		return nil, err
	}

	name := ""
	if p.cur().Kind == lexer.Identifier {
		id, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		name = id.Text
	} else if requireName {
		return nil, p.syntaxErrorf("function declaration requires a name")
	}

	var captures []string
	hasCaptureList := false
	if p.checkOp(lexer.OpLBracket) {
		hasCaptureList = true
		p.advance()
		if !p.checkOp(lexer.OpRBracket) {
			for {
				id, err := p.expectIdentifier()
				if err != nil {
					return nil, err
				}
				captures = append(captures, id.Text)
				if _, ok := p.acceptOp(lexer.OpComma); ok {
					continue
				}
				break
			}
		}
		if _, err := p.expectOp(lexer.OpRBracket); err != nil {
			return nil, err
		}
	}

	if _, err := p.expectOp(lexer.OpLParen); err != nil {
		return nil, err
	}
	var params []string
	if !p.checkOp(lexer.OpRParen) {
		for {
			id, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			params = append(params, id.Text)
			if _, ok := p.acceptOp(lexer.OpComma); ok {
				continue
			}
			break
		}
	}
	end, err := p.expectOp(lexer.OpRParen)
	if err != nil {
		return nil, err
	}

	var body *ast.Block
	if _, ok := p.acceptOp(lexer.OpFatArrow); ok {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body = &ast.Block{Statements: []ast.Statement{&ast.ReturnStmt{Value: e}}}
	} else {
		body, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	_ = end

	lit := &ast.FuncLiteral{
		Name:           name,
		Params:         params,
		Captures:       captures,
		HasCaptureList: hasCaptureList,
		Body:           body,
		IsPure:         isPure,
	}
	ast.SetSpan(lit, start, body.End())
	return lit, nil
}
