package parser

import (
	"github.com/cwbudde/go-script/internal/ast"
	"github.com/cwbudde/go-script/internal/interp/runtime"
	"github.com/cwbudde/go-script/internal/lexer"
)

// foldIfConst is the generic const-folding hook (§4.3): "after parsing a
// subexpression, if all of its operands are is_const, the parser invokes
// the evaluator on the const environment and, on success, replaces the
// subtree with the corresponding literal node."
func (p *Parser) foldIfConst(expr ast.Expression, start lexer.Position) ast.Expression {
	if p.ev == nil || !expr.IsConst() {
		return expr
	}
	v, err := p.ev.EvalExpr(expr, p.constEnv)
	if err != nil {
		// A constant subexpression that fails to evaluate (e.g. `1/0`)
		// is left unfolded; the same failure resurfaces at runtime.
		return expr
	}
	if lit, ok := toLiteral(v, start, expr.End()); ok {
		return lit
	}
	return expr
}

// finishConstFold is foldIfConst specialized for a freshly built
// BinaryChain: it first checks every element's operand for constness
// (a chain is const iff all its operands are) before attempting the fold.
func (p *Parser) finishConstFold(chain *ast.BinaryChain, start lexer.Position) ast.Expression {
	allConst := true
	for _, el := range chain.Elements {
		if !el.Operand.IsConst() {
			allConst = false
			break
		}
	}
	ast.SetConst(chain, allConst)
	if !allConst {
		return chain
	}
	return p.foldIfConst(chain, start)
}

// toLiteral converts a folded runtime value back into a literal AST node.
// Only int, float, none and string values convert. Array and dictionary
// literals are never marked const, so they do not reach this point and are
// not accepted as a const declaration's value; their elements still fold
// individually.
func toLiteral(v runtime.Value, start, end lexer.Position) (ast.Expression, bool) {
	switch x := v.(type) {
	case runtime.Int:
		return ast.NewIntLiteral(x.Value, start, end), true
	case runtime.Float:
		return ast.NewFloatLiteral(x.Value, start, end), true
	case runtime.None:
		return ast.NewNoneLiteral(start, end), true
	case *runtime.StringValue:
		return ast.NewStringLiteral(x.Value, start, end), true
	default:
		return nil, false
	}
}
