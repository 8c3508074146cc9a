package ast

// Assign represents an assignment statement: `a = b = value`.
type Assign struct {
	ASTBase

	Targets []Expr
	Value   Expr
}

// AnnAssign represents an annotated assignment.  They only appear as dataclass
// field declarations in the supported subset.
type AnnAssign struct {
	ASTBase

	Target     Expr
	Annotation Expr
	Value      Expr
}

// If represents an if statement.  An `elif` chain is represented as a nested
// If which is the only statement of the OrElse block.
type If struct {
	ASTBase

	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

// Return represents a return statement.  Value is nil for a bare `return`.
type Return struct {
	ASTBase

	Value Expr
}

// ExprStmt represents a bare expression used as a statement.
type ExprStmt struct {
	ASTBase

	Value Expr
}

// Match represents a structural match statement.
type Match struct {
	ASTBase

	Subject Expr
	Cases   []*MatchCase
}

// MatchCase is a single `case` arm of a match statement.
type MatchCase struct {
	ASTBase

	Pattern Pattern
	Guard   Expr
	Body    []Stmt
}

// FunctionDef represents a function definition.
type FunctionDef struct {
	ASTBase

	Name       string
	Params     []string
	Body       []Stmt
	Decorators []Expr

	// HasVarArgs indicates whether the function takes `*args`, `**kwargs`, or
	// keyword-only parameters.
	HasVarArgs bool
}

// ClassDef represents a class definition.
type ClassDef struct {
	ASTBase

	Name       string
	Body       []Stmt
	Decorators []Expr
}

// Import represents an `import` or `from ... import` statement.
type Import struct {
	ASTBase
}

// Pass represents a `pass` statement.
type Pass struct {
	ASTBase
}

// UnsupportedStmt represents any statement outside the supported subset.  Kind
// is the name of the Python node type: eg. `While`.
type UnsupportedStmt struct {
	ASTBase

	Kind string
}

func (*Assign) stmtNode()          {}
func (*AnnAssign) stmtNode()       {}
func (*If) stmtNode()              {}
func (*Return) stmtNode()          {}
func (*ExprStmt) stmtNode()        {}
func (*Match) stmtNode()           {}
func (*FunctionDef) stmtNode()     {}
func (*ClassDef) stmtNode()        {}
func (*Import) stmtNode()          {}
func (*Pass) stmtNode()            {}
func (*UnsupportedStmt) stmtNode() {}

// StmtKind returns the Python name of a statement's node type.
func StmtKind(stmt Stmt) string {
	switch v := stmt.(type) {
	case *Assign:
		return "Assign"
	case *AnnAssign:
		return "AnnAssign"
	case *If:
		return "If"
	case *Return:
		return "Return"
	case *ExprStmt:
		return "Expr"
	case *Match:
		return "Match"
	case *FunctionDef:
		return "FunctionDef"
	case *ClassDef:
		return "ClassDef"
	case *Import:
		return "Import"
	case *Pass:
		return "Pass"
	case *UnsupportedStmt:
		return v.Kind
	}

	return "?"
}
