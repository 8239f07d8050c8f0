package parser

import (
	"strconv"

	"github.com/cwbudde/go-script/internal/ast"
	"github.com/cwbudde/go-script/internal/lexer"
)

// parseExpression is the entry point for any expression: E14 (assignment)
// down through the precedence ladder to primaries (§4.2).
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// binLevel describes one precedence-ladder rung: the generic left-
// associative template §4.3 calls for, parameterized by the operator set
// it accepts and the next-tighter level to recurse into.
type binLevel struct {
	ops  map[lexer.Op]bool
	next func(*Parser) (ast.Expression, error)
}

func ops(list ...lexer.Op) map[lexer.Op]bool {
	m := make(map[lexer.Op]bool, len(list))
	for _, o := range list {
		m[o] = true
	}
	return m
}

// ladder lists E4..E11 from loosest to tightest, mirroring C's precedence
// for the supported operator subset (§4.2): logical-or, logical-and,
// bitwise-or, bitwise-and, equality, relational, additive, multiplicative.
var ladder = []struct {
	ops map[lexer.Op]bool
}{
	{ops(lexer.OpOrOr)},
	{ops(lexer.OpAndAnd)},
	{ops(lexer.OpPipe)},
	{ops(lexer.OpAmp)},
	{ops(lexer.OpEq, lexer.OpNotEq)},
	{ops(lexer.OpLess, lexer.OpGreater, lexer.OpLessEq, lexer.OpGreaterEq)},
	{ops(lexer.OpPlus, lexer.OpMinus)},
	{ops(lexer.OpStar, lexer.OpSlash, lexer.OpPercent)},
}

func (p *Parser) parseBinaryLevel(level int) (ast.Expression, error) {
	if level >= len(ladder) {
		return p.parseUnary()
	}
	start := p.cur().Start
	first, err := p.parseBinaryLevel(level + 1)
	if err != nil {
		return nil, err
	}
	elems := []ast.BinaryElem{{Op: lexer.OpNone, Operand: first}}
	for {
		t := p.cur()
		if t.Kind != lexer.Operator || !ladder[level].ops[t.Op] {
			break
		}
		p.advance()
		rhs, err := p.parseBinaryLevel(level + 1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, ast.BinaryElem{Op: t.Op, Operand: rhs})
	}
	if len(elems) == 1 {
		return first, nil
	}
	chain := &ast.BinaryChain{Elements: elems}
	node := p.finishConstFold(chain, start)
	return node, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	t := p.cur()
	if t.Kind == lexer.Operator && (t.Op == lexer.OpMinus || t.Op == lexer.OpNot || t.Op == lexer.OpTilde) {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		u := &ast.UnaryExpr{Op: t.Op, Operand: operand}
		ast.SetConst(u, operand.IsConst())
		return p.foldIfConst(u, t.Start), nil
	}
	return p.parsePostfix()
}

// parsePostfix handles member access, subscript, slice, and call chains
// applied to a primary expression, left to right.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	start := p.cur().Start
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.checkOp(lexer.OpDot):
			p.advance()
			name, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberAccess{Object: expr, Name: name.Text}
		case p.checkOp(lexer.OpLBracket):
			p.advance()
			node, err := p.parseSubscriptOrSlice(expr, start)
			if err != nil {
				return nil, err
			}
			expr = node
		case p.checkOp(lexer.OpLParen):
			p.advance()
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Callee: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseSubscriptOrSlice(obj ast.Expression, start lexer.Position) (ast.Expression, error) {
	var startIdx, endIdx ast.Expression
	if !p.checkOp(lexer.OpColon) {
		idx, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		startIdx = idx
	}
	if _, ok := p.acceptOp(lexer.OpColon); ok {
		if !p.checkOp(lexer.OpRBracket) {
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			endIdx = e
		}
		if _, err := p.expectOp(lexer.OpRBracket); err != nil {
			return nil, err
		}
		return &ast.SliceExpr{Object: obj, StartIndex: startIdx, EndIndex: endIdx}, nil
	}
	if _, err := p.expectOp(lexer.OpRBracket); err != nil {
		return nil, err
	}
	return &ast.Subscript{Object: obj, Index: startIdx}, nil
}

func (p *Parser) parseArgList() ([]ast.Expression, error) {
	var args []ast.Expression
	if p.checkOp(lexer.OpRParen) {
		p.advance()
		return args, nil
	}
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if _, ok := p.acceptOp(lexer.OpComma); ok {
			continue
		}
		break
	}
	if _, err := p.expectOp(lexer.OpRParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	t := p.cur()
	switch t.Kind {
	case lexer.Integer:
		p.advance()
		v, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, p.syntaxErrorf("invalid integer literal %q", t.Text)
		}
		return ast.NewIntLiteral(v, t.Start, t.End), nil
	case lexer.Float:
		p.advance()
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, p.syntaxErrorf("invalid float literal %q", t.Text)
		}
		return ast.NewFloatLiteral(v, t.Start, t.End), nil
	case lexer.String:
		p.advance()
		return ast.NewStringLiteral(t.Text, t.Start, t.End), nil
	case lexer.Identifier:
		p.advance()
		ident := ast.NewIdentifier(t.Text, t.Start, t.End)
		// Names bound in the const-eval environment (built-ins marked
		// const, declared `const`s, and prior fold results, §4.3) are
		// themselves parse-time constants, so later const-folding of any
		// chain referencing them can proceed.
		if p.constEnv != nil {
			if _, ok := p.constEnv.Lookup(t.Text); ok {
				ast.SetConst(ident, true)
			}
		}
		return ident, nil
	case lexer.Keyword:
		switch t.Kw {
		case lexer.KwNone_:
			p.advance()
			return ast.NewNoneLiteral(t.Start, t.End), nil
		case lexer.KwTrue:
			p.advance()
			return ast.NewIntLiteral(1, t.Start, t.End), nil
		case lexer.KwFalse:
			p.advance()
			return ast.NewIntLiteral(0, t.Start, t.End), nil
		case lexer.KwFunc, lexer.KwPure:
			return p.parseFuncLiteral()
		}
	case lexer.Operator:
		switch t.Op {
		case lexer.OpLParen:
			p.advance()
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOp(lexer.OpRParen); err != nil {
				return nil, err
			}
			return e, nil
		case lexer.OpLBracket:
			return p.parseArrayLiteral()
		case lexer.OpLBrace:
			return p.parseDictLiteral()
		}
	}
	return nil, p.syntaxErrorf("unexpected token %s", t.String())
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	start, _ := p.expectOp(lexer.OpLBracket)
	var elems []ast.Expression
	allConst := true
	if !p.checkOp(lexer.OpRBracket) {
		for {
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if !e.IsConst() {
				allConst = false
			}
			elems = append(elems, e)
			if _, ok := p.acceptOp(lexer.OpComma); ok {
				continue
			}
			break
		}
	}
	end, err := p.expectOp(lexer.OpRBracket)
	if err != nil {
		return nil, err
	}
	lit := &ast.ArrayLiteral{Elements: elems}
	ast.SetSpan(lit, start.Start, end.End)
	_ = allConst // array literals are never marked const; each element folds on its own
	return lit, nil
}

func (p *Parser) parseDictLiteral() (ast.Expression, error) {
	start, _ := p.expectOp(lexer.OpLBrace)
	var entries []ast.DictEntry
	if !p.checkOp(lexer.OpRBrace) {
		for {
			key, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOp(lexer.OpColon); err != nil {
				return nil, err
			}
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.DictEntry{Key: key, Value: val})
			if _, ok := p.acceptOp(lexer.OpComma); ok {
				continue
			}
			break
		}
	}
	end, err := p.expectOp(lexer.OpRBrace)
	if err != nil {
		return nil, err
	}
	lit := &ast.DictLiteral{Entries: entries}
	ast.SetSpan(lit, start.Start, end.End)
	return lit, nil
}
