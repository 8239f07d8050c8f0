// Package ast defines the syntax tree node types produced by the parser.
package ast

import (
	"strings"

	"github.com/cwbudde/go-script/internal/lexer"
)

// Node is the base interface every syntax tree node implements. Every node
// carries a start/end source span (§4.2) used only for diagnostics.
type Node interface {
	Start() lexer.Position
	End() lexer.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
	// IsConst reports whether the parser proved this subtree's value is
	// known at parse time (§4.3 const-folding).
	IsConst() bool
	setConst(bool)
}

// Statement is any node that performs an action but does not itself
// produce a value.
type Statement interface {
	Node
	statementNode()
}

// base carries the span and const-flag fields shared by every expression
// node, the way the teacher's AST nodes share a common position-bearing
// embed.
type base struct {
	start, end lexer.Position
	isConst    bool
}

func (b base) Start() lexer.Position { return b.start }
func (b base) End() lexer.Position   { return b.end }
func (b base) IsConst() bool         { return b.isConst }
func (b *base) setConst(v bool)      { b.isConst = v }
func (b *base) setSpan(start, end lexer.Position) {
	b.start, b.end = start, end
}

// SetConst marks an expression as const-folded. Exported so the parser's
// folding pass (a different package) can flip the flag after proving a
// subtree constant.
func SetConst(e Expression, v bool) { e.setConst(v) }

// spanSetter is implemented by every expression node via the embedded
// base. Exported through SetSpan so the parser can stamp a literal's
// source span after building it (e.g. array/dict literals, whose opening
// and closing tokens aren't known until the whole construct is parsed).
type spanSetter interface {
	setSpan(start, end lexer.Position)
}

// SetSpan sets an expression's start/end source span.
func SetSpan(e Expression, start, end lexer.Position) {
	if s, ok := e.(spanSetter); ok {
		s.setSpan(start, end)
	}
}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Start() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Start()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) End() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[len(p.Statements)-1].End()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// joinExprs renders a comma-separated expression list for String() methods.
func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
