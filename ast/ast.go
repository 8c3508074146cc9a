package ast

import "benda/report"

// ASTNode is the abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// ASTBase is a utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	ASTNode

	stmtNode()
}

// Expr is implemented by all expression nodes.
type Expr interface {
	ASTNode

	exprNode()
}

// Pattern is implemented by all match pattern nodes.
type Pattern interface {
	ASTNode

	patternNode()
}

// Module is a decoded source module: the ordered top-level statements of one
// source file.
type Module struct {
	// The path to the source file, if known.  It is only used for display.
	Path string

	// The top-level statements.
	Body []Stmt
}
