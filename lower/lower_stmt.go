package lower

import (
	"benda/ast"
	"benda/bend"
	"benda/report"
)

// lowerNext lowers the statements of a block starting at `ndx` into a single
// statement chain.  An exhausted block lowers to End.
func (l *Lowerer) lowerNext(stmts []ast.Stmt, ndx int) bend.Stmt {
	switch v := l.lowerBlock(stmts, ndx).(type) {
	case nil:
		return &bend.End{}
	case StmtForm:
		return v.Stmt
	default:
		report.ReportICE("statement lowered to %T", v)
		return nil
	}
}

// lowerBlock lowers the statement at `ndx` together with every statement
// after it: each lowered statement's continuation is the lowering of the
// statements following it.  It returns nil if there are no statements left.
func (l *Lowerer) lowerBlock(stmts []ast.Stmt, ndx int) FromExpr {
	if ndx >= len(stmts) {
		return nil
	}

	switch v := stmts[ndx].(type) {
	case *ast.Assign:
		return l.lowerAssign(stmts, ndx, v)
	case *ast.If:
		return l.lowerIf(stmts, ndx, v)
	case *ast.Return:
		if v.Value == nil {
			l.unsupported(v, "return without a value")
		}

		return StmtForm{&bend.Return{Val: l.lowerValue(v.Value)}}
	case *ast.ExprStmt:
		if f := l.mainFrame(); f != nil && l.isTracedCall(f, v.Value) {
			return StmtForm{&bend.Return{Val: l.lowerValue(v.Value)}}
		}

		// expression statements have no effect on the result: docstrings and
		// calls such as `print(...)` are dropped
		return l.lowerBlock(stmts, ndx+1)
	case *ast.Match:
		return l.lowerMatch(stmts, ndx, v)
	case *ast.FunctionDef, *ast.ClassDef, *ast.Import, *ast.Pass:
		if l.mainFrame() != nil {
			return l.lowerBlock(stmts, ndx+1)
		}
	}

	l.unsupported(stmts[ndx], "unsupported statement: %s", ast.StmtKind(stmts[ndx]))
	return nil
}

// lowerAssign lowers an assignment of a single name.
func (l *Lowerer) lowerAssign(stmts []ast.Stmt, ndx int, assign *ast.Assign) FromExpr {
	if len(assign.Targets) != 1 {
		l.unsupported(assign, "chained assignment is not supported")
	}

	target, ok := assign.Targets[0].(*ast.Name)
	if !ok {
		l.unsupported(assign.Targets[0], "only assignment to a single name is supported")
	}

	if f := l.mainFrame(); f != nil {
		if l.isTracedCall(f, assign.Value) {
			return StmtForm{&bend.Return{Val: l.lowerValue(assign.Value)}}
		}

		// only the arguments of the traced call are relevant to the entry
		if !f.binds(target.Id) {
			return l.lowerBlock(stmts, ndx+1)
		}
	}

	value := l.lowerValue(assign.Value)
	if isSwitchCall(value) {
		return l.lowerSwitch(stmts, ndx, target.Id)
	}

	return StmtForm{&bend.Assign{
		Name: target.Id,
		Val:  value,
		Next: l.lowerNext(stmts, ndx+1),
	}}
}

// lowerIf lowers a two-way conditional.  Every conditional must have an else
// branch since both branches of the target conditional are required.
func (l *Lowerer) lowerIf(stmts []ast.Stmt, ndx int, ifStmt *ast.If) FromExpr {
	if len(ifStmt.OrElse) == 0 {
		l.unsupported(ifStmt, "if statement must have an else branch")
	}

	return StmtForm{&bend.If{
		Cond: l.lowerValue(ifStmt.Test),
		Then: l.lowerNext(ifStmt.Body, 0),
		Else: l.lowerNext(ifStmt.OrElse, 0),
		Next: l.lowerNext(stmts, ndx+1),
	}}
}

// isTracedCall returns whether the expression is a call to the function traced
// by the main frame.
func (l *Lowerer) isTracedCall(f *frame, expr ast.Expr) bool {
	if call, ok := expr.(*ast.Call); ok {
		if fun, ok := call.Func.(*ast.Name); ok {
			return fun.Id == f.fun
		}
	}

	return false
}
