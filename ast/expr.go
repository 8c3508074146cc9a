package ast

// BinOp represents a binary arithmetic or bitwise operator application.
type BinOp struct {
	ASTBase

	Left  Expr
	Op    BinOpKind
	Right Expr
}

// Compare represents a comparison.  Python allows chains (`a < b < c`) which
// are stored as parallel operator and comparator lists.
type Compare struct {
	ASTBase

	Left        Expr
	Ops         []CmpOpKind
	Comparators []Expr
}

// UnaryOp represents a unary operator application.
type UnaryOp struct {
	ASTBase

	Op      UnaryOpKind
	Operand Expr
}

// Call represents a function call.  Keyword arguments are not part of the
// supported subset and are only counted so they can be rejected.
type Call struct {
	ASTBase

	Func     Expr
	Args     []Expr
	NKeyword int
}

// Attribute represents an attribute access: `value.attr`.
type Attribute struct {
	ASTBase

	Value Expr
	Attr  string
}

// Name represents a reference to a named value.
type Name struct {
	ASTBase

	Id string
}

// Constant represents a literal constant.  Only the payload field matching
// Kind is meaningful.
type Constant struct {
	ASTBase

	Kind  ConstKind
	Int   int64
	Float float64
	Str   string
}

// UnsupportedExpr represents any expression outside the supported subset. Kind
// is the name of the Python node type: eg. `Lambda`.
type UnsupportedExpr struct {
	ASTBase

	Kind string
}

func (*BinOp) exprNode()           {}
func (*Compare) exprNode()         {}
func (*UnaryOp) exprNode()         {}
func (*Call) exprNode()            {}
func (*Attribute) exprNode()       {}
func (*Name) exprNode()            {}
func (*Constant) exprNode()        {}
func (*UnsupportedExpr) exprNode() {}

// ExprKind returns the Python name of an expression's node type.
func ExprKind(expr Expr) string {
	switch v := expr.(type) {
	case *BinOp:
		return "BinOp"
	case *Compare:
		return "Compare"
	case *UnaryOp:
		return "UnaryOp"
	case *Call:
		return "Call"
	case *Attribute:
		return "Attribute"
	case *Name:
		return "Name"
	case *Constant:
		return "Constant"
	case *UnsupportedExpr:
		return v.Kind
	}

	return "?"
}

// -----------------------------------------------------------------------------

// ConstKind enumerates the kinds of literal constants.
type ConstKind int

// Enumeration of constant kinds.
const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstStr
	ConstBool
	ConstNone
	ConstBytes
	ConstEllipsis
	ConstComplex
)

var constKindNames = [...]string{"int", "float", "str", "bool", "None", "bytes", "Ellipsis", "complex"}

func (kind ConstKind) String() string {
	return constKindNames[kind]
}

// BinOpKind enumerates the binary operators.
type BinOpKind int

// Enumeration of binary operators.  The names match Python's `ast` operator
// node names.
const (
	Add BinOpKind = iota
	Sub
	Mult
	MatMult
	Div
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	FloorDiv
)

var binOpNames = [...]string{"Add", "Sub", "Mult", "MatMult", "Div", "Mod", "Pow", "LShift", "RShift", "BitOr", "BitXor", "BitAnd", "FloorDiv"}

func (op BinOpKind) String() string {
	return binOpNames[op]
}

// CmpOpKind enumerates the comparison operators.
type CmpOpKind int

// Enumeration of comparison operators.
const (
	Eq CmpOpKind = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var cmpOpNames = [...]string{"Eq", "NotEq", "Lt", "LtE", "Gt", "GtE", "Is", "IsNot", "In", "NotIn"}

func (op CmpOpKind) String() string {
	return cmpOpNames[op]
}

// UnaryOpKind enumerates the unary operators.
type UnaryOpKind int

// Enumeration of unary operators.
const (
	UAdd UnaryOpKind = iota
	USub
	Not
	Invert
)

var unaryOpNames = [...]string{"UAdd", "USub", "Not", "Invert"}

func (op UnaryOpKind) String() string {
	return unaryOpNames[op]
}
