package parser

import (
	"github.com/cwbudde/go-script/internal/ast"
	"github.com/cwbudde/go-script/internal/lexer"
)

// assignOps maps an assignment-operator lexeme to its AssignOp tag.
var assignOps = map[lexer.Op]ast.AssignOp{
	lexer.OpAssign:    ast.AssignSet,
	lexer.OpPlusEq:    ast.AssignAdd,
	lexer.OpMinusEq:   ast.AssignSub,
	lexer.OpStarEq:    ast.AssignMul,
	lexer.OpSlashEq:   ast.AssignDiv,
	lexer.OpPercentEq: ast.AssignMod,
}

// parseAssignment is E14 (§4.2): one or more l-value targets separated by
// commas, an assignment operator, and an r-value. When no assignment
// operator follows the first parsed expression, that expression is simply
// returned as-is (a call or other expression statement).
func (p *Parser) parseAssignment() (ast.Expression, error) {
	start := p.cur().Start
	first, err := p.parseBinaryLevel(0)
	if err != nil {
		return nil, err
	}

	targets := []ast.Expression{first}
	listStart := p.pos
	for p.checkOp(lexer.OpComma) && p.isAssignTarget(first) {
		// Tentatively read a comma-separated target list; if no assignment
		// operator follows it, the parser backs up to listStart and the
		// commas are left to the enclosing construct (call arguments, array
		// literals, ...).
		save := p.pos
		p.advance()
		next, err := p.parseBinaryLevel(0)
		if err != nil {
			p.pos = save
			break
		}
		targets = append(targets, next)
		first = next
	}

	t := p.cur()
	assignOp, isAssign := ast.AssignSet, false
	if t.Kind == lexer.Operator {
		assignOp, isAssign = assignOps[t.Op], false
		if _, ok := assignOps[t.Op]; ok {
			isAssign = true
		}
	}
	if !isAssign {
		if len(targets) > 1 {
			p.pos = listStart
		}
		return targets[0], nil
	}

	p.advance()
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	for _, tgt := range targets {
		if !p.isAssignTarget(tgt) {
			return nil, p.syntaxErrorf("invalid assignment target")
		}
	}
	if len(targets) > 1 && assignOp != ast.AssignSet {
		return nil, p.syntaxErrorf("compound assignment does not support multiple targets")
	}
	a := &ast.Assignment{Targets: targets, Op: assignOp, Value: value}
	ast.SetSpan(a, start, value.End())
	return a, nil
}

// isAssignTarget reports whether expr is syntactically valid as an l-value:
// an identifier, a subscript, or a member access (§4.5).
func (p *Parser) isAssignTarget(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.Subscript, *ast.MemberAccess:
		return true
	default:
		return false
	}
}
