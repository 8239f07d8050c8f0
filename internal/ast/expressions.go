package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-script/internal/lexer"
)

func (*Identifier) expressionNode()     {}
func (*IntLiteral) expressionNode()     {}
func (*FloatLiteral) expressionNode()   {}
func (*NoneLiteral) expressionNode()    {}
func (*StringLiteral) expressionNode()  {}
func (*ArrayLiteral) expressionNode()   {}
func (*DictLiteral) expressionNode()    {}
func (*MemberAccess) expressionNode()   {}
func (*Subscript) expressionNode()      {}
func (*SliceExpr) expressionNode()      {}
func (*CallExpr) expressionNode()       {}
func (*BinaryChain) expressionNode()    {}
func (*Assignment) expressionNode()     {}
func (*FuncLiteral) expressionNode()    {}
func (*IdentifierList) expressionNode() {}

// Identifier is a bare name reference.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(name string, start, end lexer.Position) *Identifier {
	return &Identifier{base: base{start: start, end: end}, Name: name}
}

func (i *Identifier) String() string { return i.Name }

// IdentifierList is a comma-separated name list: multi-target assignment
// targets, function parameter lists, and capture lists.
type IdentifierList struct {
	base
	Names []string
}

func (l *IdentifierList) String() string { return strings.Join(l.Names, ", ") }

// IntLiteral is an integer literal or the folded result of a const integer
// expression.
type IntLiteral struct {
	base
	Value int64
}

func NewIntLiteral(v int64, start, end lexer.Position) *IntLiteral {
	return &IntLiteral{base: base{start: start, end: end, isConst: true}, Value: v}
}

func (l *IntLiteral) String() string { return strconv.FormatInt(l.Value, 10) }

// FloatLiteral is a float literal or the folded result of a const float
// expression.
type FloatLiteral struct {
	base
	Value float64
}

func NewFloatLiteral(v float64, start, end lexer.Position) *FloatLiteral {
	return &FloatLiteral{base: base{start: start, end: end, isConst: true}, Value: v}
}

func (l *FloatLiteral) String() string { return strconv.FormatFloat(l.Value, 'g', -1, 64) }

// NoneLiteral is the `none` literal.
type NoneLiteral struct{ base }

func NewNoneLiteral(start, end lexer.Position) *NoneLiteral {
	return &NoneLiteral{base{start: start, end: end, isConst: true}}
}

func (l *NoneLiteral) String() string { return "none" }

// StringLiteral is a string literal or the folded result of a const string
// expression. Value is the already-unescaped body.
type StringLiteral struct {
	base
	Value string
}

func NewStringLiteral(v string, start, end lexer.Position) *StringLiteral {
	return &StringLiteral{base: base{start: start, end: end, isConst: true}, Value: v}
}

func (l *StringLiteral) String() string { return strconv.Quote(l.Value) }

// ArrayLiteral is an `[e1, e2, ...]` constructor. It always stays a
// constructor node and is never marked const, so it is not accepted as a
// const declaration's value (§4.3); its elements still fold individually.
// The evaluator builds a fresh array value each time it runs.
type ArrayLiteral struct {
	base
	Elements []Expression
}

func (l *ArrayLiteral) String() string { return "[" + joinExprs(l.Elements) + "]" }

// DictEntry is one `key: value` pair inside a dictionary literal.
type DictEntry struct {
	Key, Value Expression
}

// DictLiteral is a `{k1: v1, k2: v2, ...}` constructor.
type DictLiteral struct {
	base
	Entries []DictEntry
}

func (l *DictLiteral) String() string {
	parts := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MemberAccess is `x.id`, sugar for `x["id"]` as an l-value (§4.5).
type MemberAccess struct {
	base
	Object Expression
	Name   string
}

func (m *MemberAccess) String() string { return m.Object.String() + "." + m.Name }

// Subscript is `x[index]`.
type Subscript struct {
	base
	Object Expression
	Index  Expression
}

func (s *Subscript) String() string { return s.Object.String() + "[" + s.Index.String() + "]" }

// SliceExpr is `x[start:end]`; Start and/or End may be nil, meaning
// "unspecified" (defaults to 0 / length).
type SliceExpr struct {
	base
	Object     Expression
	StartIndex Expression
	EndIndex   Expression
}

func (s *SliceExpr) String() string {
	start, end := "", ""
	if s.StartIndex != nil {
		start = s.StartIndex.String()
	}
	if s.EndIndex != nil {
		end = s.EndIndex.String()
	}
	return s.Object.String() + "[" + start + ":" + end + "]"
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	base
	Callee Expression
	Args   []Expression
}

func (c *CallExpr) String() string {
	return c.Callee.String() + "(" + joinExprs(c.Args) + ")"
}

// BinaryElem is one `(op, operand)` pair in a precedence-ladder chain. The
// first element of a BinaryChain always carries Op == lexer.OpNone,
// meaning "just the operand" (§4.2).
type BinaryElem struct {
	Op      lexer.Op
	Operand Expression
}

// BinaryChain represents one binary precedence level: a left-associative
// sequence of operands separated by operators drawn from a single fixed
// set, exactly as spec.md §4.2 describes. A level with a single operand
// yields that operand itself, not a length-1 chain; unary prefix operators
// (-, !, ~) build a UnaryExpr instead.
type BinaryChain struct {
	base
	Elements []BinaryElem
}

func (c *BinaryChain) String() string {
	var sb strings.Builder
	for i, el := range c.Elements {
		if i > 0 {
			sb.WriteString(" " + el.Op.String() + " ")
		}
		sb.WriteString(el.Operand.String())
	}
	return sb.String()
}

func (*UnaryExpr) expressionNode() {}

// UnaryExpr is a prefix unary operator applied to an operand: `-x`, `!x`,
// `~x`.
type UnaryExpr struct {
	base
	Op      lexer.Op
	Operand Expression
}

func (u *UnaryExpr) String() string { return u.Op.String() + u.Operand.String() }

// AssignOp identifies the assignment operator in an Assignment node.
type AssignOp int

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
)

func (o AssignOp) String() string {
	switch o {
	case AssignSet:
		return "="
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignMod:
		return "%="
	default:
		return "?="
	}
}

// Assignment is E14: one or more l-value targets, an assignment operator,
// and an r-value. `a, b = expr` distributes expr's elements positionally
// if expr is an array, else broadcasts the same value to every target
// (§4.3).
type Assignment struct {
	base
	Targets []Expression
	Op      AssignOp
	Value   Expression
	// Declare marks `var`/multi-target declarations that introduce new
	// bindings rather than assigning to existing ones.
	Declare bool
}

func (a *Assignment) String() string {
	return fmt.Sprintf("%s %s %s", joinExprs(a.Targets), a.Op, a.Value.String())
}

// FuncLiteral is a function value: named (`func name(...) {...}`) or
// anonymous (`func(...) => expr` / `func(...) {...}`), optionally with an
// explicit capture list and/or the `pure` qualifier (§4.3).
type FuncLiteral struct {
	base
	Name           string // empty for anonymous functions
	Params         []string
	Captures       []string // nil means "no explicit capture list was given"
	HasCaptureList bool
	Body           *Block
	IsPure         bool
}

func (f *FuncLiteral) String() string {
	name := f.Name
	pure := ""
	if f.IsPure {
		pure = "pure "
	}
	return fmt.Sprintf("%sfunc %s(%s) %s", pure, name, strings.Join(f.Params, ", "), f.Body.String())
}
