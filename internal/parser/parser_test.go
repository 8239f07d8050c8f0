package parser_test

import (
	"testing"

	"github.com/cwbudde/go-script/internal/ast"
	"github.com/cwbudde/go-script/internal/interp/evaluator"
	"github.com/cwbudde/go-script/internal/parser"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	ev := evaluator.New()
	prog, err := parser.Parse(src, ev)
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, src)
	}
	return prog
}

func parseExprStmt(t *testing.T, src string) ast.Expression {
	t.Helper()
	prog := parseProgram(t, src)
	if len(prog.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Statements))
	}
	es, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("want *ast.ExprStmt, got %T", prog.Statements[0])
	}
	return es.Expr
}

func TestOperatorPrecedenceLadder(t *testing.T) {
	// Multiplicative binds tighter than additive: "1 + 2 * 3" parses as a
	// single additive chain whose second element's operand is itself a
	// multiplicative chain, not a flat three-element chain. Folding is off
	// (nil evaluator) so the all-const tree is not replaced by the literal 7.
	prog, err := parser.Parse("1 + 2 * 3;", nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	expr := prog.Statements[0].(*ast.ExprStmt).Expr
	chain, ok := expr.(*ast.BinaryChain)
	if !ok {
		t.Fatalf("want *ast.BinaryChain, got %T", expr)
	}
	if len(chain.Elements) != 2 {
		t.Fatalf("want 2 elements in additive chain, got %d", len(chain.Elements))
	}
	if _, ok := chain.Elements[0].Operand.(*ast.IntLiteral); !ok {
		t.Errorf("first operand should be the literal 1, got %T", chain.Elements[0].Operand)
	}
	inner, ok := chain.Elements[1].Operand.(*ast.BinaryChain)
	if !ok {
		t.Fatalf("second operand should be a nested multiplicative chain, got %T", chain.Elements[1].Operand)
	}
	if len(inner.Elements) != 2 {
		t.Errorf("want 2 elements in nested multiplicative chain, got %d", len(inner.Elements))
	}
}

func TestOperatorPrecedenceLogicalVsRelational(t *testing.T) {
	// "a < b && c < d" should group the relational comparisons tighter
	// than &&.
	expr := parseExprStmt(t, "a < b && c < d;")
	chain, ok := expr.(*ast.BinaryChain)
	if !ok {
		t.Fatalf("want *ast.BinaryChain, got %T", expr)
	}
	if len(chain.Elements) != 2 {
		t.Fatalf("want 2 elements in && chain, got %d", len(chain.Elements))
	}
	for i, el := range chain.Elements {
		if _, ok := el.Operand.(*ast.BinaryChain); !ok {
			t.Errorf("element %d operand should be a relational chain, got %T", i, el.Operand)
		}
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	expr := parseExprStmt(t, "(1 + 2) * 3;")
	// The whole thing is const, so it should fold straight down to the
	// literal 9 rather than leaving a tree around.
	lit, ok := expr.(*ast.IntLiteral)
	if !ok {
		t.Fatalf("want folded *ast.IntLiteral, got %T", expr)
	}
	if lit.Value != 9 {
		t.Errorf("want 9, got %d", lit.Value)
	}
}

func TestConstFoldingVisibleToLaterConst(t *testing.T) {
	// §8 invariant 8: "const k = 2; const p = k * 3;" folds p to the
	// literal 6, and later references to p in const position see the
	// literal too.
	prog := parseProgram(t, "const k = 2; const p = k * 3;")
	if len(prog.Statements) != 2 {
		t.Fatalf("want 2 statements, got %d", len(prog.Statements))
	}
	cd, ok := prog.Statements[1].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("want *ast.ConstDecl, got %T", prog.Statements[1])
	}
	lit, ok := cd.Value.(*ast.IntLiteral)
	if !ok {
		t.Fatalf("want p's value folded to *ast.IntLiteral, got %T", cd.Value)
	}
	if lit.Value != 6 {
		t.Errorf("want p folded to 6, got %d", lit.Value)
	}
}

func TestConstFoldingDisabledByNilEvaluator(t *testing.T) {
	p, err := parser.New("const k = 2; const p = k * 3;", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	cd := prog.Statements[1].(*ast.ConstDecl)
	if _, ok := cd.Value.(*ast.IntLiteral); ok {
		t.Errorf("const fold should not happen without an evaluator, got folded literal")
	}
}

func TestConstDeclRejectsNonConstExpression(t *testing.T) {
	_, err := parser.Parse("var x = 1; const p = x + 1;", evaluator.New())
	if err == nil {
		t.Fatalf("want error declaring const from a non-const expression")
	}
}

func TestMultiTargetVarDeclaresBothNames(t *testing.T) {
	prog := parseProgram(t, "var a, b = 1;")
	if len(prog.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Statements))
	}
	es, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("want *ast.ExprStmt wrapping the desugared assignment, got %T", prog.Statements[0])
	}
	assign, ok := es.Expr.(*ast.Assignment)
	if !ok {
		t.Fatalf("want *ast.Assignment, got %T", es.Expr)
	}
	if !assign.Declare {
		t.Errorf("multi-name var decl should set Declare=true")
	}
	if len(assign.Targets) != 2 {
		t.Fatalf("want 2 targets, got %d", len(assign.Targets))
	}
}

func TestMultiTargetAssignWithoutVarIsPlainAssignment(t *testing.T) {
	expr := parseExprStmt(t, "a, b = f();")
	assign, ok := expr.(*ast.Assignment)
	if !ok {
		t.Fatalf("want *ast.Assignment, got %T", expr)
	}
	if assign.Declare {
		t.Errorf("bare multi-target assignment (no var) should have Declare=false")
	}
	if len(assign.Targets) != 2 {
		t.Fatalf("want 2 targets, got %d", len(assign.Targets))
	}
}

func TestCompoundAssignRejectsMultipleTargets(t *testing.T) {
	_, err := parser.Parse("a, b += 1;", evaluator.New())
	if err == nil {
		t.Fatalf("want error: compound assignment does not support multiple targets")
	}
}

func TestFunctionLiteralAnonymousArrowBody(t *testing.T) {
	prog := parseProgram(t, "var f = func(x) => x + 1;")
	vd := prog.Statements[0].(*ast.VarDecl)
	lit, ok := vd.Value.(*ast.FuncLiteral)
	if !ok {
		t.Fatalf("want *ast.FuncLiteral, got %T", vd.Value)
	}
	if lit.Name != "" {
		t.Errorf("anonymous literal should have empty name, got %q", lit.Name)
	}
	if len(lit.Body.Statements) != 1 {
		t.Fatalf("arrow body should desugar to a single return statement, got %d", len(lit.Body.Statements))
	}
	if _, ok := lit.Body.Statements[0].(*ast.ReturnStmt); !ok {
		t.Errorf("arrow body statement should be *ast.ReturnStmt, got %T", lit.Body.Statements[0])
	}
}

func TestFunctionDeclRequiresName(t *testing.T) {
	prog := parseProgram(t, "func add(a, b) { return a + b; }")
	fd, ok := prog.Statements[0].(*ast.FuncDeclStmt)
	if !ok {
		t.Fatalf("want *ast.FuncDeclStmt, got %T", prog.Statements[0])
	}
	if fd.Func.Name != "add" {
		t.Errorf("want name add, got %q", fd.Func.Name)
	}
	if len(fd.Func.Params) != 2 {
		t.Errorf("want 2 params, got %d", len(fd.Func.Params))
	}
}

func TestAnonymousFuncLiteralCannotOmitNameAsDeclaration(t *testing.T) {
	_, err := parser.Parse("func (a, b) { return a + b; }", evaluator.New())
	if err == nil {
		t.Fatalf("want error: function declaration requires a name")
	}
}

func TestPureFunctionWithCaptureList(t *testing.T) {
	prog := parseProgram(t, "var f = pure func [a, b](x) => a + b + x;")
	vd := prog.Statements[0].(*ast.VarDecl)
	lit, ok := vd.Value.(*ast.FuncLiteral)
	if !ok {
		t.Fatalf("want *ast.FuncLiteral, got %T", vd.Value)
	}
	if !lit.IsPure {
		t.Errorf("want IsPure true")
	}
	if !lit.HasCaptureList {
		t.Errorf("want HasCaptureList true")
	}
	if len(lit.Captures) != 2 || lit.Captures[0] != "a" || lit.Captures[1] != "b" {
		t.Errorf("want captures [a b], got %v", lit.Captures)
	}
}

func TestFunctionLiteralNoCaptureListLeavesCapturesNil(t *testing.T) {
	prog := parseProgram(t, "var f = func(x) => x;")
	vd := prog.Statements[0].(*ast.VarDecl)
	lit := vd.Value.(*ast.FuncLiteral)
	if lit.HasCaptureList {
		t.Errorf("want HasCaptureList false when no [...] given")
	}
	if lit.Captures != nil {
		t.Errorf("want nil Captures when no [...] given, got %v", lit.Captures)
	}
}

func TestTryCatchFinallyStructural(t *testing.T) {
	prog := parseProgram(t, `
try {
	throw "boom";
} catch (RangeError as e) {
	var x = e;
} catch {
	var y = 1;
} finally {
	var z = 2;
}
`)
	ts, ok := prog.Statements[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("want *ast.TryStmt, got %T", prog.Statements[0])
	}
	if len(ts.Catches) != 2 {
		t.Fatalf("want 2 catch clauses, got %d", len(ts.Catches))
	}
	if ts.Catches[0].Names[0] != "RangeError" || ts.Catches[0].As != "e" {
		t.Errorf("first catch should be (RangeError as e), got %+v", ts.Catches[0])
	}
	if len(ts.Catches[1].Names) != 0 {
		t.Errorf("second catch should be catch-anything, got names %v", ts.Catches[1].Names)
	}
	if ts.Finally == nil {
		t.Errorf("want a finally clause")
	}
}

func TestTryRejectsSecondCatchAnything(t *testing.T) {
	_, err := parser.Parse(`
try {
	throw "x";
} catch {
	var a = 1;
} catch {
	var b = 2;
}
`, evaluator.New())
	if err == nil {
		t.Fatalf("want error: at most one catch-anything clause is allowed")
	}
}

func TestTryRejectsCatchAnythingBeforeNamedCatch(t *testing.T) {
	_, err := parser.Parse(`
try {
	throw "x";
} catch {
	var a = 1;
} catch (RangeError) {
	var b = 2;
}
`, evaluator.New())
	if err == nil {
		t.Fatalf("want error: catch-anything must be the last catch clause")
	}
}

func TestTryRequiresCatchOrFinally(t *testing.T) {
	_, err := parser.Parse(`try { var a = 1; }`, evaluator.New())
	if err == nil {
		t.Fatalf("want error: try must be followed by at least one catch or a finally")
	}
}

func TestTryWithOnlyFinallyIsLegal(t *testing.T) {
	prog := parseProgram(t, `try { var a = 1; } finally { var b = 2; }`)
	ts := prog.Statements[0].(*ast.TryStmt)
	if len(ts.Catches) != 0 {
		t.Errorf("want 0 catches, got %d", len(ts.Catches))
	}
	if ts.Finally == nil {
		t.Errorf("want a finally clause")
	}
}

func TestForeachPlain(t *testing.T) {
	prog := parseProgram(t, `foreach (x in arr) { var y = x; }`)
	fs, ok := prog.Statements[0].(*ast.ForeachStmt)
	if !ok {
		t.Fatalf("want *ast.ForeachStmt, got %T", prog.Statements[0])
	}
	if fs.Indexed {
		t.Errorf("want Indexed false")
	}
	if len(fs.Idents) != 1 || fs.Idents[0] != "x" {
		t.Errorf("want idents [x], got %v", fs.Idents)
	}
}

func TestForeachIndexedWithTwoNames(t *testing.T) {
	prog := parseProgram(t, `foreach (i, x in indexed arr) { var y = x; }`)
	fs, ok := prog.Statements[0].(*ast.ForeachStmt)
	if !ok {
		t.Fatalf("want *ast.ForeachStmt, got %T", prog.Statements[0])
	}
	if !fs.Indexed {
		t.Errorf("want Indexed true")
	}
	if len(fs.Idents) != 2 || fs.Idents[0] != "i" || fs.Idents[1] != "x" {
		t.Errorf("want idents [i x], got %v", fs.Idents)
	}
}

func TestSliceExpressionOpenEnds(t *testing.T) {
	expr := parseExprStmt(t, "a[1:];")
	se, ok := expr.(*ast.SliceExpr)
	if !ok {
		t.Fatalf("want *ast.SliceExpr, got %T", expr)
	}
	if se.StartIndex == nil {
		t.Errorf("want a start index")
	}
	if se.EndIndex != nil {
		t.Errorf("want a nil end index, got %v", se.EndIndex)
	}
}

func TestMemberAccessIsSugarForSubscript(t *testing.T) {
	expr := parseExprStmt(t, "x.id;")
	ma, ok := expr.(*ast.MemberAccess)
	if !ok {
		t.Fatalf("want *ast.MemberAccess, got %T", expr)
	}
	if ma.Name != "id" {
		t.Errorf("want name id, got %q", ma.Name)
	}
}

func TestTrueFalseFoldToIntLiterals(t *testing.T) {
	// §4.3's boolean-as-int decision: `true`/`false` parse straight to
	// int literals 1/0, there is no distinct boolean tag.
	expr := parseExprStmt(t, "true;")
	lit, ok := expr.(*ast.IntLiteral)
	if !ok || lit.Value != 1 {
		t.Fatalf("want IntLiteral(1), got %#v", expr)
	}
	expr = parseExprStmt(t, "false;")
	lit, ok = expr.(*ast.IntLiteral)
	if !ok || lit.Value != 0 {
		t.Fatalf("want IntLiteral(0), got %#v", expr)
	}
}

func TestAssignTargetMustBeLValue(t *testing.T) {
	_, err := parser.Parse("1 = 2;", evaluator.New())
	if err == nil {
		t.Fatalf("want error: invalid assignment target")
	}
}
