package lower

import (
	"benda/ast"
	"benda/bend"
	"benda/common"
	"benda/report"
)

// binOps maps the supported source binary operators onto target operators.
var binOps = map[ast.BinOpKind]bend.Op{
	ast.Add:    bend.OpAdd,
	ast.Sub:    bend.OpSub,
	ast.Mult:   bend.OpMul,
	ast.Div:    bend.OpDiv,
	ast.Pow:    bend.OpPow,
	ast.LShift: bend.OpShl,
	ast.RShift: bend.OpShr,
	ast.BitOr:  bend.OpOr,
	ast.BitXor: bend.OpXor,
	ast.BitAnd: bend.OpAnd,
}

// cmpOps maps the supported source comparison operators onto target operators.
var cmpOps = map[ast.CmpOpKind]bend.Op{
	ast.Eq:    bend.OpEq,
	ast.NotEq: bend.OpNeq,
	ast.Lt:    bend.OpLt,
	ast.Gt:    bend.OpGt,
}

// conversions maps the names of the numeric conversion functions onto the kind
// of literal they produce.
var conversions = map[string]bend.NumKind{
	"u24": bend.U24,
	"i24": bend.I24,
	"f24": bend.F24,
}

// lowerExpr lowers a single source expression.
func (l *Lowerer) lowerExpr(expr ast.Expr) FromExpr {
	switch v := expr.(type) {
	case *ast.Attribute:
		return l.lowerAttribute(v)
	case *ast.Compare:
		return l.lowerCompare(v)
	case *ast.BinOp:
		return l.lowerBinOp(v)
	case *ast.Constant:
		return l.lowerConstant(v)
	case *ast.Name:
		return ExprForm{&bend.Var{Name: l.resolveName(v.Id)}}
	case *ast.Call:
		return l.lowerCall(v)
	}

	l.unsupported(expr, "unsupported expression form: %s", ast.ExprKind(expr))
	return nil
}

// lowerValue lowers an expression which must produce a value.
func (l *Lowerer) lowerValue(expr ast.Expr) bend.Expr {
	return l.valueOf(expr, l.lowerExpr(expr))
}

// valueOf extracts the value of an already lowered expression.
func (l *Lowerer) valueOf(expr ast.Expr, result FromExpr) bend.Expr {
	switch v := result.(type) {
	case ExprForm:
		return v.Expr
	case CtrFieldList:
		l.unsupported(expr, "a union of types can only be declared by a top-level type alias")
	default:
		report.ReportICE("expression lowered to %T", result)
	}

	return nil
}

// lowerValues lowers a list of expressions which must produce values.
func (l *Lowerer) lowerValues(exprs []ast.Expr) []bend.Expr {
	values := make([]bend.Expr, len(exprs))
	for i, expr := range exprs {
		values[i] = l.lowerValue(expr)
	}

	return values
}

// -----------------------------------------------------------------------------

// lowerAttribute lowers an attribute access.  The only supported attribute is
// the switch marker.
func (l *Lowerer) lowerAttribute(attr *ast.Attribute) FromExpr {
	if l.isSwitchMarker(attr) {
		return ExprForm{&bend.Call{Fun: &bend.Var{Name: common.SwitchName}}}
	}

	if lib, ok := attr.Value.(*ast.Name); ok {
		l.unsupported(attr, "unsupported attribute access: `%s.%s`", lib.Id, attr.Attr)
	}

	l.unsupported(attr, "unsupported attribute access: `.%s`", attr.Attr)
	return nil
}

// isSwitchMarker returns whether the attribute names the switch marker.
func (l *Lowerer) isSwitchMarker(attr *ast.Attribute) bool {
	lib, ok := attr.Value.(*ast.Name)
	return ok && lib.Id == l.opts.SwitchModule && attr.Attr == l.opts.SwitchFunction
}

// lowerCompare lowers a single comparison.
func (l *Lowerer) lowerCompare(cmp *ast.Compare) FromExpr {
	if len(cmp.Ops) != 1 {
		l.unsupported(cmp, "chained comparisons are not supported")
	}

	op, ok := cmpOps[cmp.Ops[0]]
	if !ok {
		l.unsupported(cmp, "unsupported comparison operator: %s", cmp.Ops[0])
	}

	return ExprForm{&bend.Bin{
		Op:  op,
		Lhs: l.lowerValue(cmp.Left),
		Rhs: l.lowerValue(cmp.Comparators[0]),
	}}
}

// lowerBinOp lowers a binary operator application.  A `|` between two names of
// known types declares a union of those types rather than a bitwise or.
func (l *Lowerer) lowerBinOp(bin *ast.BinOp) FromExpr {
	lhs := l.lowerExpr(bin.Left)
	rhs := l.lowerExpr(bin.Right)

	if bin.Op == ast.BitOr {
		if rname, ok := l.typeRef(rhs); ok {
			switch v := lhs.(type) {
			case CtrFieldList:
				return append(v[:len(v):len(v)], bend.CtrField{Name: rname})
			case ExprForm:
				if lname, ok := l.typeRef(lhs); ok {
					return CtrFieldList{{Name: lname}, {Name: rname}}
				}
			}
		}
	}

	op, ok := binOps[bin.Op]
	if !ok {
		l.unsupported(bin, "unsupported binary operator: %s", bin.Op)
	}

	return ExprForm{&bend.Bin{
		Op:  op,
		Lhs: l.valueOf(bin.Left, lhs),
		Rhs: l.valueOf(bin.Right, rhs),
	}}
}

// typeRef returns the name of the type referenced by a lowered expression if
// it is a bare reference to a known ADT.
func (l *Lowerer) typeRef(result FromExpr) (string, bool) {
	if e, ok := result.(ExprForm); ok {
		if v, ok := e.Expr.(*bend.Var); ok && l.book.IsAdt(v.Name) {
			return v.Name, true
		}
	}

	return "", false
}

// lowerConstant lowers a literal constant.
func (l *Lowerer) lowerConstant(c *ast.Constant) FromExpr {
	switch c.Kind {
	case ast.ConstInt:
		if c.Int < 0 {
			l.unsupported(c, "negative integer literal: use `i24(%d)`", c.Int)
		}
		return ExprForm{bend.NewU24(uint32(c.Int))}
	case ast.ConstFloat:
		return ExprForm{bend.NewF24(float32(c.Float))}
	case ast.ConstStr:
		// strings naming a type are forward references to the type
		if l.book.IsAdt(c.Str) {
			return ExprForm{&bend.Var{Name: c.Str}}
		}
		return ExprForm{&bend.Str{Value: c.Str}}
	}

	l.unsupported(c, "unsupported constant of type %s", c.Kind)
	return nil
}

// lowerCall lowers a function call, constructor application, or numeric
// conversion.
func (l *Lowerer) lowerCall(call *ast.Call) FromExpr {
	if call.NKeyword > 0 {
		l.unsupported(call, "keyword arguments are not supported")
	}

	if kind, ok := l.conversionKind(call.Func); ok {
		return ExprForm{l.lowerConversion(call, kind)}
	}

	callee := l.lowerValue(call.Func)
	if isSwitchCall(callee) {
		return ExprForm{callee}
	}

	args := l.lowerValues(call.Args)

	if fun, ok := callee.(*bend.Var); ok {
		if ctr, ok := l.book.FindCtr(fun.Name); ok {
			return ExprForm{&bend.Ctr{Name: ctr, Args: args}}
		}
	}

	return ExprForm{&bend.Call{Fun: callee, Args: args}}
}

// conversionKind returns the kind of number produced if the callee names a
// numeric conversion: `u24`, `i24`, `f24`, or any of those qualified by the
// switch module (`benda.u24`).
func (l *Lowerer) conversionKind(callee ast.Expr) (bend.NumKind, bool) {
	switch v := callee.(type) {
	case *ast.Name:
		if _, isCtr := l.book.FindCtr(v.Id); isCtr {
			return 0, false
		}

		kind, ok := conversions[v.Id]
		return kind, ok
	case *ast.Attribute:
		if lib, ok := v.Value.(*ast.Name); ok && lib.Id == l.opts.SwitchModule {
			kind, ok := conversions[v.Attr]
			return kind, ok
		}
	}

	return 0, false
}

// lowerConversion lowers a numeric conversion.  Conversions of literals become
// typed literals; any other conversion is the converted value itself.
func (l *Lowerer) lowerConversion(call *ast.Call, kind bend.NumKind) bend.Expr {
	if len(call.Args) != 1 {
		l.unsupported(call, "%s conversion takes exactly one argument", kind)
	}

	c, negate, ok := literalOperand(call.Args[0])
	if !ok {
		return l.lowerValue(call.Args[0])
	}

	switch c.Kind {
	case ast.ConstInt:
		n := c.Int
		if negate {
			n = -n
		}

		switch kind {
		case bend.U24:
			return bend.NewU24(uint32(n))
		case bend.I24:
			return bend.NewI24(int32(n))
		default:
			return bend.NewF24(float32(n))
		}
	case ast.ConstFloat:
		if kind != bend.F24 {
			l.unsupported(call, "%s conversion of a float literal", kind)
		}

		f := c.Float
		if negate {
			f = -f
		}
		return bend.NewF24(float32(f))
	}

	l.unsupported(call, "%s conversion of a %s literal", kind, c.Kind)
	return nil
}

// literalOperand matches a numeric literal optionally preceded by a sign.
func literalOperand(expr ast.Expr) (c *ast.Constant, negate bool, ok bool) {
	if unary, isUnary := expr.(*ast.UnaryOp); isUnary {
		switch unary.Op {
		case ast.USub:
			negate = true
		case ast.UAdd:
		default:
			return nil, false, false
		}

		expr = unary.Operand
	}

	c, ok = expr.(*ast.Constant)
	return c, negate, ok
}
