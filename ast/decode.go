package ast

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"benda/report"
)

// Decode reads a module serialized as JSON from Python's `ast` module.  Every
// node is an object carrying its node type under the `_type` key, the node's
// fields under their Python names, and the standard position attributes
// (`lineno`, `col_offset`, `end_lineno`, `end_col_offset`).  Constants carry
// the name of their Python type under `vtype`.  See `scripts/ast2json.py`.
//
// Node types outside the supported subset are decoded into the Unsupported
// node variants so that the compiler can report them with a position.
func Decode(r io.Reader) (mod *Module, err error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding module: %w", err)
	}

	defer func() {
		if x := recover(); x != nil {
			if derr, ok := x.(*DecodeError); ok {
				mod, err = nil, derr
			} else {
				panic(x)
			}
		}
	}()

	root := node(raw)
	if root.typ() != "Module" {
		root.fail("expected a Module node, got %s", root.typ())
	}

	mod = &Module{Body: root.stmts("body")}
	if path, ok := raw["filename"].(string); ok {
		mod.Path = path
	}

	return mod, nil
}

// DecodeError is an error decoding the serialized AST: the JSON is valid but
// not shaped like a Python AST.
type DecodeError struct {
	Message string
}

func (de *DecodeError) Error() string {
	return "malformed AST: " + de.Message
}

// -----------------------------------------------------------------------------

// node is a single decoded JSON object.
type node map[string]interface{}

func (n node) fail(msg string, args ...interface{}) {
	panic(&DecodeError{Message: fmt.Sprintf(msg, args...)})
}

func (n node) typ() string {
	typ, ok := n["_type"].(string)
	if !ok {
		n.fail("node is missing its `_type`")
	}

	return typ
}

func (n node) base() ASTBase {
	line, ok := n.optInt("lineno")
	if !ok {
		return ASTBase{}
	}

	col, _ := n.optInt("col_offset")
	endLine, ok := n.optInt("end_lineno")
	if !ok {
		endLine = line
	}
	endCol, ok := n.optInt("end_col_offset")
	if !ok {
		endCol = col + 1
	}

	return NewASTBaseOn(&report.TextSpan{
		StartLine: line - 1,
		StartCol:  col,
		EndLine:   endLine - 1,
		EndCol:    endCol,
	})
}

func (n node) optInt(key string) (int, bool) {
	num, ok := n[key].(json.Number)
	if !ok {
		return 0, false
	}

	v, err := num.Int64()
	if err != nil {
		n.fail("field `%s` of %s is not an integer", key, n.typ())
	}

	return int(v), true
}

func (n node) str(key string) string {
	s, ok := n[key].(string)
	if !ok {
		n.fail("field `%s` of %s must be a string", key, n.typ())
	}

	return s
}

func (n node) optStr(key string) string {
	s, _ := n[key].(string)
	return s
}

func (n node) obj(key string) node {
	o, ok := n[key].(map[string]interface{})
	if !ok {
		n.fail("field `%s` of %s must be a node", key, n.typ())
	}

	return node(o)
}

func (n node) optObj(key string) (node, bool) {
	o, ok := n[key].(map[string]interface{})
	return node(o), ok
}

func (n node) list(key string) []node {
	switch v := n[key].(type) {
	case nil:
		return nil
	case []interface{}:
		nodes := make([]node, len(v))
		for i, item := range v {
			o, ok := item.(map[string]interface{})
			if !ok {
				n.fail("field `%s` of %s must be a list of nodes", key, n.typ())
			}
			nodes[i] = node(o)
		}
		return nodes
	}

	n.fail("field `%s` of %s must be a list", key, n.typ())
	return nil
}

// -----------------------------------------------------------------------------

func (n node) stmts(key string) []Stmt {
	items := n.list(key)
	stmts := make([]Stmt, len(items))
	for i, item := range items {
		stmts[i] = item.stmt()
	}

	return stmts
}

func (n node) stmt() Stmt {
	base := n.base()

	switch n.typ() {
	case "Assign":
		return &Assign{ASTBase: base, Targets: n.exprs("targets"), Value: n.obj("value").expr()}
	case "AnnAssign":
		aa := &AnnAssign{ASTBase: base, Target: n.obj("target").expr(), Annotation: n.obj("annotation").expr()}
		if value, ok := n.optObj("value"); ok {
			aa.Value = value.expr()
		}
		return aa
	case "If":
		return &If{ASTBase: base, Test: n.obj("test").expr(), Body: n.stmts("body"), OrElse: n.stmts("orelse")}
	case "Return":
		ret := &Return{ASTBase: base}
		if value, ok := n.optObj("value"); ok {
			ret.Value = value.expr()
		}
		return ret
	case "Expr":
		return &ExprStmt{ASTBase: base, Value: n.obj("value").expr()}
	case "Match":
		m := &Match{ASTBase: base, Subject: n.obj("subject").expr()}
		for _, c := range n.list("cases") {
			mc := &MatchCase{ASTBase: c.base(), Pattern: c.obj("pattern").pattern(), Body: c.stmts("body")}
			if guard, ok := c.optObj("guard"); ok {
				mc.Guard = guard.expr()
			}
			m.Cases = append(m.Cases, mc)
		}
		return m
	case "FunctionDef":
		fd := &FunctionDef{ASTBase: base, Name: n.str("name"), Body: n.stmts("body"), Decorators: n.exprs("decorator_list")}
		args := n.obj("args")
		for _, arg := range append(args.list("posonlyargs"), args.list("args")...) {
			fd.Params = append(fd.Params, arg.str("arg"))
		}
		_, hasVarArg := args.optObj("vararg")
		_, hasKwArg := args.optObj("kwarg")
		fd.HasVarArgs = hasVarArg || hasKwArg || len(args.list("kwonlyargs")) > 0
		return fd
	case "ClassDef":
		return &ClassDef{ASTBase: base, Name: n.str("name"), Body: n.stmts("body"), Decorators: n.exprs("decorator_list")}
	case "Import", "ImportFrom":
		return &Import{ASTBase: base}
	case "Pass":
		return &Pass{ASTBase: base}
	}

	return &UnsupportedStmt{ASTBase: base, Kind: n.typ()}
}

// -----------------------------------------------------------------------------

func (n node) exprs(key string) []Expr {
	items := n.list(key)
	exprs := make([]Expr, len(items))
	for i, item := range items {
		exprs[i] = item.expr()
	}

	return exprs
}

func (n node) expr() Expr {
	base := n.base()

	switch n.typ() {
	case "BinOp":
		return &BinOp{ASTBase: base, Left: n.obj("left").expr(), Op: n.obj("op").binOp(), Right: n.obj("right").expr()}
	case "Compare":
		cmp := &Compare{ASTBase: base, Left: n.obj("left").expr(), Comparators: n.exprs("comparators")}
		for _, op := range n.list("ops") {
			cmp.Ops = append(cmp.Ops, op.cmpOp())
		}
		return cmp
	case "UnaryOp":
		return &UnaryOp{ASTBase: base, Op: n.obj("op").unaryOp(), Operand: n.obj("operand").expr()}
	case "Call":
		return &Call{ASTBase: base, Func: n.obj("func").expr(), Args: n.exprs("args"), NKeyword: len(n.list("keywords"))}
	case "Attribute":
		return &Attribute{ASTBase: base, Value: n.obj("value").expr(), Attr: n.str("attr")}
	case "Name":
		return &Name{ASTBase: base, Id: n.str("id")}
	case "Constant":
		return n.constant(base)
	}

	return &UnsupportedExpr{ASTBase: base, Kind: n.typ()}
}

func (n node) constant(base ASTBase) *Constant {
	c := &Constant{ASTBase: base}

	vtype := n.optStr("vtype")
	if vtype == "" {
		switch v := n["value"].(type) {
		case string:
			vtype = "str"
		case bool:
			vtype = "bool"
		case nil:
			vtype = "NoneType"
		case json.Number:
			if strings.ContainsAny(v.String(), ".eE") {
				vtype = "float"
			} else {
				vtype = "int"
			}
		default:
			n.fail("constant has an unknown value type")
		}
	}

	switch vtype {
	case "int":
		num, ok := n["value"].(json.Number)
		if !ok {
			n.fail("int constant must carry a number")
		}
		v, err := num.Int64()
		if err != nil {
			n.fail("integer literal %s is out of range", num)
		}
		c.Kind, c.Int = ConstInt, v
	case "float":
		num, ok := n["value"].(json.Number)
		if !ok {
			n.fail("float constant must carry a number")
		}
		v, err := num.Float64()
		if err != nil {
			n.fail("float literal %s is out of range", num)
		}
		c.Kind, c.Float = ConstFloat, v
	case "str":
		c.Kind, c.Str = ConstStr, n.str("value")
	case "bool":
		c.Kind = ConstBool
	case "NoneType":
		c.Kind = ConstNone
	case "bytes":
		c.Kind = ConstBytes
	case "complex":
		c.Kind = ConstComplex
	case "ellipsis":
		c.Kind = ConstEllipsis
	default:
		n.fail("unknown constant type `%s`", vtype)
	}

	return c
}

func (n node) binOp() BinOpKind {
	typ := n.typ()
	for i, name := range binOpNames {
		if name == typ {
			return BinOpKind(i)
		}
	}

	n.fail("unknown binary operator `%s`", typ)
	return 0
}

func (n node) cmpOp() CmpOpKind {
	typ := n.typ()
	for i, name := range cmpOpNames {
		if name == typ {
			return CmpOpKind(i)
		}
	}

	n.fail("unknown comparison operator `%s`", typ)
	return 0
}

func (n node) unaryOp() UnaryOpKind {
	typ := n.typ()
	for i, name := range unaryOpNames {
		if name == typ {
			return UnaryOpKind(i)
		}
	}

	n.fail("unknown unary operator `%s`", typ)
	return 0
}

// -----------------------------------------------------------------------------

func (n node) pattern() Pattern {
	base := n.base()

	switch n.typ() {
	case "MatchValue":
		return &MatchValue{ASTBase: base, Value: n.obj("value").expr()}
	case "MatchClass":
		mc := &MatchClass{ASTBase: base, Cls: n.obj("cls").expr(), NKeyword: len(n.list("kwd_patterns"))}
		for _, sub := range n.list("patterns") {
			mc.Patterns = append(mc.Patterns, sub.pattern())
		}
		return mc
	case "MatchAs":
		ma := &MatchAs{ASTBase: base, Name: n.optStr("name")}
		if sub, ok := n.optObj("pattern"); ok {
			ma.Pattern = sub.pattern()
		}
		return ma
	}

	return &UnsupportedPattern{ASTBase: base, Kind: n.typ()}
}
