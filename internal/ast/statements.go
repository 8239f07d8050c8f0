package ast

import (
	"strings"

	"github.com/cwbudde/go-script/internal/lexer"
)

// stmtBase carries the span every statement node needs.
type stmtBase struct {
	start, end lexer.Position
}

func (s stmtBase) Start() lexer.Position { return s.start }
func (s stmtBase) End() lexer.Position   { return s.end }

func (*Block) statementNode()       {}
func (*VarDecl) statementNode()     {}
func (*ConstDecl) statementNode()   {}
func (*ExprStmt) statementNode()    {}
func (*IfStmt) statementNode()      {}
func (*WhileStmt) statementNode()   {}
func (*ForStmt) statementNode()     {}
func (*ForeachStmt) statementNode() {}
func (*BreakStmt) statementNode()   {}
func (*ContinueStmt) statementNode() {}
func (*ReturnStmt) statementNode()   {}
func (*ThrowStmt) statementNode()    {}
func (*RethrowStmt) statementNode()  {}
func (*TryStmt) statementNode()      {}
func (*FuncDeclStmt) statementNode() {}
func (*NopStmt) statementNode()     {}

// Block is `{ stmt; stmt; ... }`, a fresh lexical scope (§4.3, §5).
type Block struct {
	stmtBase
	Statements []Statement
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString(indent(s.String()))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// VarDecl is `var name [= expr]`: introduces a mutable binding, default
// value `none` if Value is nil.
type VarDecl struct {
	stmtBase
	Name  string
	Value Expression // nil means "default to none"
}

func (v *VarDecl) String() string {
	if v.Value == nil {
		return "var " + v.Name + ";"
	}
	return "var " + v.Name + " = " + v.Value.String() + ";"
}

// ConstDecl is `const name = expr`, where expr must be parse-time const.
type ConstDecl struct {
	stmtBase
	Name  string
	Value Expression
}

func (c *ConstDecl) String() string {
	return "const " + c.Name + " = " + c.Value.String() + ";"
}

// ExprStmt is an expression evaluated for effect (assignment, call, ...).
type ExprStmt struct {
	stmtBase
	Expr Expression
}

func (e *ExprStmt) String() string { return e.Expr.String() + ";" }

// IfStmt is `if (cond) then [else elseStmt]`.
type IfStmt struct {
	stmtBase
	Cond Expression
	Then Statement
	Else Statement // nil if no else clause
}

func (s *IfStmt) String() string {
	out := "if (" + s.Cond.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	stmtBase
	Cond Expression
	Body Statement
}

func (s *WhileStmt) String() string { return "while (" + s.Cond.String() + ") " + s.Body.String() }

// ForStmt is `for (init; cond; post) body`. Init and Post may be nil.
type ForStmt struct {
	stmtBase
	Init Statement
	Cond Expression
	Post Statement
	Body Statement
}

func (s *ForStmt) String() string {
	init, cond, post := "", "", ""
	if s.Init != nil {
		init = s.Init.String()
	}
	if s.Cond != nil {
		cond = s.Cond.String()
	}
	if s.Post != nil {
		post = s.Post.String()
	}
	return "for (" + init + "; " + cond + "; " + post + ") " + s.Body.String()
}

// ForeachStmt is `foreach (ids in [indexed] expr) body`. One or more
// identifiers bind per iteration; `indexed` prepends the zero-based index
// (§4.3, §4.5).
type ForeachStmt struct {
	stmtBase
	Idents   []string
	Indexed  bool
	Iterable Expression
	Body     Statement
}

func (s *ForeachStmt) String() string {
	idx := ""
	if s.Indexed {
		idx = "indexed "
	}
	return "foreach (" + strings.Join(s.Idents, ", ") + " in " + idx + s.Iterable.String() + ") " + s.Body.String()
}

// BreakStmt is `break;`.
type BreakStmt struct{ stmtBase }

func (*BreakStmt) String() string { return "break;" }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ stmtBase }

func (*ContinueStmt) String() string { return "continue;" }

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	stmtBase
	Value Expression // nil means "return none"
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// ThrowStmt is `throw expr;`.
type ThrowStmt struct {
	stmtBase
	Value Expression
}

func (s *ThrowStmt) String() string { return "throw " + s.Value.String() + ";" }

// RethrowStmt is `rethrow;`, legal only inside a catch body (§4.3).
type RethrowStmt struct{ stmtBase }

func (*RethrowStmt) String() string { return "rethrow;" }

// CatchClause is `catch (Name1, Name2, ... [as id]) body` or a no-list
// `catch body` (catch-anything). Names is empty for catch-anything.
type CatchClause struct {
	Names []string
	As    string // empty if no `as id` binding
	Body  Statement
}

// TryStmt is `try body catch... [finally body]`. At least one catch or a
// finally must follow `try` (§4.3).
type TryStmt struct {
	stmtBase
	Try     Statement
	Catches []CatchClause
	Finally Statement // nil if no finally clause
}

func (s *TryStmt) String() string {
	var sb strings.Builder
	sb.WriteString("try " + s.Try.String())
	for _, c := range s.Catches {
		if len(c.Names) == 0 {
			sb.WriteString(" catch " + c.Body.String())
			continue
		}
		sb.WriteString(" catch (" + strings.Join(c.Names, ", "))
		if c.As != "" {
			sb.WriteString(" as " + c.As)
		}
		sb.WriteString(") " + c.Body.String())
	}
	if s.Finally != nil {
		sb.WriteString(" finally " + s.Finally.String())
	}
	return sb.String()
}

// FuncDeclStmt is a named function declaration: `func name(params) body`.
type FuncDeclStmt struct {
	stmtBase
	Func *FuncLiteral
}

func (s *FuncDeclStmt) String() string { return s.Func.String() }

// NopStmt is an empty statement (a bare `;`).
type NopStmt struct{ stmtBase }

func (*NopStmt) String() string { return ";" }
