package ast

// Inspect traverses the AST rooted at node in depth-first order.  It calls f
// for each node: if f returns true, Inspect continues into the children of
// that node.  Nil nodes are skipped.
func Inspect(node ASTNode, f func(ASTNode) bool) {
	if node == nil || !f(node) {
		return
	}

	switch v := node.(type) {
	case *Assign:
		inspectExprs(v.Targets, f)
		inspectExpr(v.Value, f)
	case *AnnAssign:
		inspectExpr(v.Target, f)
		inspectExpr(v.Annotation, f)
		inspectExpr(v.Value, f)
	case *If:
		inspectExpr(v.Test, f)
		inspectStmts(v.Body, f)
		inspectStmts(v.OrElse, f)
	case *Return:
		inspectExpr(v.Value, f)
	case *ExprStmt:
		inspectExpr(v.Value, f)
	case *Match:
		inspectExpr(v.Subject, f)
		for _, mcase := range v.Cases {
			Inspect(mcase, f)
		}
	case *MatchCase:
		inspectPattern(v.Pattern, f)
		inspectExpr(v.Guard, f)
		inspectStmts(v.Body, f)
	case *FunctionDef:
		inspectExprs(v.Decorators, f)
		inspectStmts(v.Body, f)
	case *ClassDef:
		inspectExprs(v.Decorators, f)
		inspectStmts(v.Body, f)
	case *BinOp:
		inspectExpr(v.Left, f)
		inspectExpr(v.Right, f)
	case *Compare:
		inspectExpr(v.Left, f)
		inspectExprs(v.Comparators, f)
	case *UnaryOp:
		inspectExpr(v.Operand, f)
	case *Call:
		inspectExpr(v.Func, f)
		inspectExprs(v.Args, f)
	case *Attribute:
		inspectExpr(v.Value, f)
	case *MatchValue:
		inspectExpr(v.Value, f)
	case *MatchClass:
		inspectExpr(v.Cls, f)
		for _, sub := range v.Patterns {
			inspectPattern(sub, f)
		}
	case *MatchAs:
		inspectPattern(v.Pattern, f)
	}
}

func inspectStmts(stmts []Stmt, f func(ASTNode) bool) {
	for _, stmt := range stmts {
		Inspect(stmt, f)
	}
}

func inspectExprs(exprs []Expr, f func(ASTNode) bool) {
	for _, expr := range exprs {
		inspectExpr(expr, f)
	}
}

func inspectExpr(expr Expr, f func(ASTNode) bool) {
	if expr != nil {
		Inspect(expr, f)
	}
}

func inspectPattern(patt Pattern, f func(ASTNode) bool) {
	if patt != nil {
		Inspect(patt, f)
	}
}
