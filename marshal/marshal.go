package marshal

import (
	"fmt"

	"benda/bend"
)

// ArityError is returned when a function is invoked with a number of arguments
// that differs from the number of parameters it declares.
type ArityError struct {
	Func string
	Want int
	Got  int
}

func (ae *ArityError) Error() string {
	return fmt.Sprintf("function %s has arity %d and received %d arguments", ae.Func, ae.Want, ae.Got)
}

// CheckArity checks that `got` arguments can be passed to the definition.
func CheckArity(def *bend.Definition, got int) error {
	if def.Arity() != got {
		return &ArityError{Func: def.Name, Want: def.Arity(), Got: got}
	}

	return nil
}

// -----------------------------------------------------------------------------

// ToExpr marshals a host value into a target expression.  Records are
// marshalled field by field in the order of their constructor's fields using
// the types registered in the book.
func ToExpr(book *bend.Book, v Value) (bend.Expr, error) {
	switch v := v.(type) {
	case U24:
		return bend.NewU24(uint32(v)), nil
	case I24:
		return bend.NewI24(int32(v)), nil
	case F24:
		return bend.NewF24(float32(v)), nil
	case *Term:
		return v.Expr, nil
	case *Record:
		return recordToExpr(book, v)
	}

	return nil, fmt.Errorf("cannot marshal value of type %T", v)
}

func recordToExpr(book *bend.Book, rec *Record) (bend.Expr, error) {
	ctrName, ok := book.FindCtr(rec.Tag)
	if !ok {
		return nil, fmt.Errorf("unknown constructor `%s`", rec.Tag)
	}

	ctr, _ := book.Ctr(ctrName)
	for name := range rec.Fields {
		if ctr.FieldIndex(name) == -1 {
			return nil, fmt.Errorf("constructor `%s` has no field `%s`", ctrName, name)
		}
	}

	args := make([]bend.Expr, len(ctr.Fields))
	for i, field := range ctr.Fields {
		fv, ok := rec.Fields[field.Name]
		if !ok {
			// unset fields hold the base case of the record's type
			owner, _ := book.CtrOwner(ctrName)
			zero, ok := book.ZeroCtr(owner)
			if !ok {
				return nil, fmt.Errorf("missing field `%s` of `%s`", field.Name, ctrName)
			}

			args[i] = &bend.Ctr{Name: zero.Name}
			continue
		}

		arg, err := ToExpr(book, fv)
		if err != nil {
			return nil, fmt.Errorf("field `%s` of `%s`: %w", field.Name, ctrName, err)
		}

		args[i] = arg
	}

	return &bend.Ctr{Name: ctrName, Args: args}, nil
}

// FromTerm reads a result term back into a host value.  Terms which are not
// numbers or fully applied constructors are returned as Terms.
func FromTerm(book *bend.Book, expr bend.Expr) Value {
	switch v := expr.(type) {
	case *bend.Num:
		switch v.Kind {
		case bend.U24:
			return U24(v.U24())
		case bend.I24:
			return I24(v.I24())
		default:
			return F24(v.F24())
		}
	case *bend.Ctr:
		ctr, ok := book.Ctr(v.Name)
		if !ok || len(ctr.Fields) != len(v.Args) {
			break
		}

		rec := &Record{Tag: v.Name, Fields: make(map[string]Value, len(v.Args))}
		for i, arg := range v.Args {
			rec.Fields[ctr.Fields[i].Name] = FromTerm(book, arg)
		}

		return rec
	}

	return &Term{Expr: expr}
}
