package bend

import (
	"strconv"
	"strings"

	"benda/report"
)

func (v *Var) String() string {
	return v.Name
}

func (s *Str) String() string {
	return strconv.Quote(s.Value)
}

func (c *Call) String() string {
	return c.Fun.String() + "(" + joinExprs(c.Args) + ")"
}

func (c *Ctr) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}

	return c.Name + "(" + joinExprs(c.Args) + ")"
}

func (b *Bin) String() string {
	return "(" + b.Lhs.String() + " " + b.Op.String() + " " + b.Rhs.String() + ")"
}

func joinExprs(exprs []Expr) string {
	strs := make([]string, len(exprs))
	for i, expr := range exprs {
		strs[i] = expr.String()
	}

	return strings.Join(strs, ", ")
}

// -----------------------------------------------------------------------------

// String returns the full Bend source text of the book.  Built-in types are
// omitted.
func (b *Book) String() string {
	sb := strings.Builder{}

	for _, adt := range b.Adts() {
		if adt.Builtin {
			continue
		}

		writeAdt(&sb, adt)
		sb.WriteRune('\n')
	}

	for _, def := range b.Defs() {
		writeDef(&sb, def)
		sb.WriteRune('\n')
	}

	return sb.String()
}

// String returns the Bend source text of the definition.
func (def *Definition) String() string {
	sb := strings.Builder{}
	writeDef(&sb, def)
	return sb.String()
}

// StmtString returns the Bend source text of a statement chain.
func StmtString(stmt Stmt) string {
	sb := strings.Builder{}
	writeStmt(&sb, stmt, 0)
	return sb.String()
}

func writeAdt(sb *strings.Builder, adt *Adt) {
	if adt.IsObject() {
		sb.WriteString("object ")
		sb.WriteString(adt.Name)
		writeFields(sb, adt.Ctrs[0].Fields, false)
		sb.WriteRune('\n')
		return
	}

	sb.WriteString("type ")
	sb.WriteString(adt.Name)
	sb.WriteString(":\n")

	prefix := adt.Name + "/"
	for _, ctr := range adt.Ctrs {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimPrefix(ctr.Name, prefix))
		writeFields(sb, ctr.Fields, true)
		sb.WriteRune('\n')
	}
}

func writeFields(sb *strings.Builder, fields []CtrField, allowRec bool) {
	if len(fields) == 0 {
		return
	}

	sb.WriteString(" { ")
	for i, field := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}

		if field.Rec && allowRec {
			sb.WriteRune('~')
		}
		sb.WriteString(field.Name)
	}
	sb.WriteString(" }")
}

func writeDef(sb *strings.Builder, def *Definition) {
	sb.WriteString("def ")
	sb.WriteString(def.Name)
	sb.WriteRune('(')
	sb.WriteString(strings.Join(def.Params, ", "))
	sb.WriteString("):\n")
	writeStmt(sb, def.Body, 1)
}

func writeIndent(sb *strings.Builder, level int) {
	sb.WriteString(strings.Repeat("  ", level))
}

// writeStmt writes a statement and its continuation chain at the given
// indentation level.
func writeStmt(sb *strings.Builder, stmt Stmt, level int) {
	for {
		switch v := stmt.(type) {
		case *Assign:
			writeIndent(sb, level)
			sb.WriteString(v.Name)
			sb.WriteString(" = ")
			sb.WriteString(v.Val.String())
			sb.WriteRune('\n')
			stmt = v.Next
		case *If:
			writeIndent(sb, level)
			sb.WriteString("if ")
			sb.WriteString(v.Cond.String())
			sb.WriteString(":\n")
			writeStmt(sb, v.Then, level+1)
			writeIndent(sb, level)
			sb.WriteString("else:\n")
			writeStmt(sb, v.Else, level+1)
			stmt = v.Next
		case *Match:
			writeIndent(sb, level)
			sb.WriteString("match ")
			writeBinding(sb, v.Bind, v.Arg)
			sb.WriteString(":\n")
			for _, arm := range v.Arms {
				writeIndent(sb, level+1)
				sb.WriteString("case ")
				sb.WriteString(arm.Ctr)
				sb.WriteString(":\n")
				writeStmt(sb, arm.Body, level+2)
			}
			stmt = v.Next
		case *Switch:
			writeIndent(sb, level)
			sb.WriteString("switch ")
			writeBinding(sb, v.Bind, v.Arg)
			sb.WriteString(":\n")
			for i, arm := range v.Arms {
				writeIndent(sb, level+1)
				if i == len(v.Arms)-1 {
					sb.WriteString("case _:\n")
				} else {
					sb.WriteString("case " + strconv.Itoa(i) + ":\n")
				}
				writeStmt(sb, arm, level+2)
			}
			stmt = v.Next
		case *Return:
			writeIndent(sb, level)
			sb.WriteString("return ")
			sb.WriteString(v.Val.String())
			sb.WriteRune('\n')
			return
		case *End:
			return
		default:
			report.ReportICE("printing unknown statement %T", v)
		}
	}
}

// writeBinding writes the scrutinee of a match or switch: `bind = arg`, or just
// `arg` when the binding is redundant.
func writeBinding(sb *strings.Builder, bind string, arg Expr) {
	if v, ok := arg.(*Var); bind != "" && (!ok || v.Name != bind) {
		sb.WriteString(bind)
		sb.WriteString(" = ")
	}

	sb.WriteString(arg.String())
}
