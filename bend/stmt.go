package bend

// Stmt represents a statement in the target IR.  Every statement that can be
// followed by further code carries its continuation in a required `Next`
// field; the end of a block is the explicit `End` statement rather than nil.
type Stmt interface {
	stmtNode()
}

// Assign binds the value of an expression to a name.
type Assign struct {
	Name string
	Val  Expr
	Next Stmt
}

// If is a two-way conditional.  Both branches are required.
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt
	Next Stmt
}

// Match is a tagged-case statement over the constructors of an ADT.  Bind is
// the name the matched value is addressable by inside the arms: fields of the
// matched constructor are projected as `<Bind>.<field>`.  Bind may be empty.
type Match struct {
	Arg  Expr
	Bind string
	Arms []*MatchArm
	Next Stmt
}

// MatchArm is a single arm of a Match.  Ctr is the full constructor name.
type MatchArm struct {
	Ctr  string
	Body Stmt
}

// Switch is a tagged-case statement over a number.  Arms are selected by
// position: arm `i` handles the value `i` except for the last arm which
// handles every remaining value, with `<Bind>-1` bound to the predecessor.
type Switch struct {
	Arg  Expr
	Bind string
	Arms []Stmt
	Next Stmt
}

// Return yields the value of a block.  It never has a continuation.
type Return struct {
	Val Expr
}

// End marks the end of a block of statements.
type End struct{}

func (*Assign) stmtNode() {}
func (*If) stmtNode()     {}
func (*Match) stmtNode()  {}
func (*Switch) stmtNode() {}
func (*Return) stmtNode() {}
func (*End) stmtNode()    {}

// -----------------------------------------------------------------------------

// Definition is a function definition.
type Definition struct {
	Name   string
	Params []string
	Body   Stmt

	// Entry indicates whether this is the program's entry definition.
	Entry bool
}

// Arity returns the number of parameters of the definition.
func (def *Definition) Arity() int {
	return len(def.Params)
}
