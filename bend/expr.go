package bend

// Expr represents an expression in the target IR.  All expression nodes
// implement the `Expr` interface.
type Expr interface {
	// String returns the Bend source text of the expression.
	String() string

	exprNode()
}

// Var is a reference to a variable or definition.  Field projections on a
// matched value are represented as a single dotted name: `tree.left`.
type Var struct {
	Name string
}

// Str is a string literal.
type Str struct {
	Value string
}

// Call is a function call.
type Call struct {
	Fun  Expr
	Args []Expr
}

// Ctr is a constructor application.  Name is the full constructor name.
type Ctr struct {
	Name string
	Args []Expr
}

// Bin is a binary operator application.
type Bin struct {
	Op  Op
	Lhs Expr
	Rhs Expr
}

func (*Var) exprNode()  {}
func (*Num) exprNode()  {}
func (*Str) exprNode()  {}
func (*Call) exprNode() {}
func (*Ctr) exprNode()  {}
func (*Bin) exprNode()  {}

// -----------------------------------------------------------------------------

// Op is a binary operator of the target IR.
type Op int

// Enumeration of operators.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpShl
	OpShr
	OpOr
	OpXor
	OpAnd

	OpEq
	OpNeq
	OpLt
	OpGt
)

var opSymbols = [...]string{"+", "-", "*", "/", "**", "<<", ">>", "|", "^", "&", "==", "!=", "<", ">"}

func (op Op) String() string {
	return opSymbols[op]
}

// IsComparison returns whether the operator is a comparison.
func (op Op) IsComparison() bool {
	return op >= OpEq
}
