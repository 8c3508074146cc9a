package lower

import (
	"errors"
	"strings"
	"testing"

	"benda/ast"
	"benda/bend"
	"benda/report"
)

// AST builders for the tests of this package.  Nodes built here carry no
// position information.

func name(id string) *ast.Name { return &ast.Name{Id: id} }

func num(n int64) *ast.Constant { return &ast.Constant{Kind: ast.ConstInt, Int: n} }

func float(f float64) *ast.Constant { return &ast.Constant{Kind: ast.ConstFloat, Float: f} }

func str(s string) *ast.Constant { return &ast.Constant{Kind: ast.ConstStr, Str: s} }

func call(fun ast.Expr, args ...ast.Expr) *ast.Call { return &ast.Call{Func: fun, Args: args} }

func attr(value ast.Expr, a string) *ast.Attribute { return &ast.Attribute{Value: value, Attr: a} }

func bin(lhs ast.Expr, op ast.BinOpKind, rhs ast.Expr) *ast.BinOp {
	return &ast.BinOp{Left: lhs, Op: op, Right: rhs}
}

func cmp(lhs ast.Expr, op ast.CmpOpKind, rhs ast.Expr) *ast.Compare {
	return &ast.Compare{Left: lhs, Ops: []ast.CmpOpKind{op}, Comparators: []ast.Expr{rhs}}
}

func neg(operand ast.Expr) *ast.UnaryOp { return &ast.UnaryOp{Op: ast.USub, Operand: operand} }

func assign(target string, value ast.Expr) *ast.Assign {
	return &ast.Assign{Targets: []ast.Expr{name(target)}, Value: value}
}

func ret(value ast.Expr) *ast.Return { return &ast.Return{Value: value} }

func exprStmt(value ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Value: value} }

func ifElse(test ast.Expr, body, orElse []ast.Stmt) *ast.If {
	return &ast.If{Test: test, Body: body, OrElse: orElse}
}

func block(stmts ...ast.Stmt) []ast.Stmt { return stmts }

func match(subject ast.Expr, cases ...*ast.MatchCase) *ast.Match {
	return &ast.Match{Subject: subject, Cases: cases}
}

func arm(patt ast.Pattern, body ...ast.Stmt) *ast.MatchCase {
	return &ast.MatchCase{Pattern: patt, Body: body}
}

// pclass builds a class pattern: an empty capture name is a wildcard.
func pclass(cls string, captures ...string) *ast.MatchClass {
	patts := make([]ast.Pattern, len(captures))
	for i, c := range captures {
		patts[i] = &ast.MatchAs{Name: c}
	}

	return &ast.MatchClass{Cls: name(cls), Patterns: patts}
}

func pvalue(value ast.Expr) *ast.MatchValue { return &ast.MatchValue{Value: value} }

func pwild() *ast.MatchAs { return &ast.MatchAs{} }

func fdef(fun string, params []string, body ...ast.Stmt) *ast.FunctionDef {
	return &ast.FunctionDef{Name: fun, Params: params, Body: body}
}

func dataclass(cls string, fields ...string) *ast.ClassDef {
	body := make([]ast.Stmt, len(fields))
	for i, f := range fields {
		body[i] = &ast.AnnAssign{Target: name(f), Annotation: name("int")}
	}

	return &ast.ClassDef{Name: cls, Body: body, Decorators: []ast.Expr{name("dataclass")}}
}

func module(stmts ...ast.Stmt) *ast.Module { return &ast.Module{Path: "test.py", Body: stmts} }

// -----------------------------------------------------------------------------

func newLowerer() *Lowerer {
	return NewLowerer(bend.NewBookWithBuiltins(), DefaultOptions())
}

// shapeLowerer returns a lowerer whose book holds `Shape = Circle | Square`.
func shapeLowerer(t *testing.T) *Lowerer {
	t.Helper()

	l := newLowerer()
	mustCollect(t, l, module(
		dataclass("Circle", "r"),
		dataclass("Square", "s"),
		assign("Shape", bin(name("Circle"), ast.BitOr, name("Square"))),
	))

	return l
}

func mustCollect(t *testing.T, l *Lowerer, mod *ast.Module) {
	t.Helper()

	if err := l.CollectDecls(mod); err != nil {
		t.Fatalf("CollectDecls: %v", err)
	}
}

func mustLowerExpr(t *testing.T, l *Lowerer, expr ast.Expr) bend.Expr {
	t.Helper()

	result, err := l.LowerExpr(expr)
	if err != nil {
		t.Fatalf("LowerExpr: %v", err)
	}

	form, ok := result.(ExprForm)
	if !ok {
		t.Fatalf("LowerExpr produced %T, want ExprForm", result)
	}

	return form.Expr
}

func mustLowerBlock(t *testing.T, l *Lowerer, stmts ...ast.Stmt) string {
	t.Helper()

	stmt, err := l.LowerBlock(stmts)
	if err != nil {
		t.Fatalf("LowerBlock: %v", err)
	}

	return bend.StmtString(stmt)
}

// wantCompileError checks that err is a compile error of the given kind whose
// message contains `fragment`.
func wantCompileError(t *testing.T, err error, kind report.ErrorKind, fragment string) {
	t.Helper()

	var cerr *report.CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("got error %v, want compile error", err)
	}

	if cerr.Kind != kind || !strings.Contains(cerr.Message, fragment) {
		t.Fatalf("got %s error %q, want %s error containing %q", cerr.Kind, cerr.Message, kind, fragment)
	}
}

func wantDef(t *testing.T, book *bend.Book, fun, want string) {
	t.Helper()

	def, ok := book.Def(fun)
	if !ok {
		t.Fatalf("no definition for `%s`", fun)
	}

	if got := def.String(); got != want {
		t.Errorf("\nwant:\n%s\ngot:\n%s", want, got)
	}
}
