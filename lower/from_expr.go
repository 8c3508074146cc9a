package lower

import "benda/bend"

// FromExpr is the result of lowering a source expression or statement.  It is
// one of CtrFieldList, ExprForm, or StmtForm.  Lowering results are never
// stored in the book.
type FromExpr interface {
	fromExpr()
}

// CtrFieldList is the result of lowering a union of type names: `A | B`.  Each
// field names one of the unioned types.
type CtrFieldList []bend.CtrField

// ExprForm is the result of lowering an ordinary expression.
type ExprForm struct {
	Expr bend.Expr
}

// StmtForm is the result of lowering a statement together with its
// continuation.
type StmtForm struct {
	Stmt bend.Stmt
}

func (CtrFieldList) fromExpr() {}
func (ExprForm) fromExpr()     {}
func (StmtForm) fromExpr()     {}
