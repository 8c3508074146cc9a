package ast

import (
	"errors"
	"strings"
	"testing"
)

// addModule is the serialized form of:
//
//	def add(x, y):
//	    return x + y
//
//	add(3, 4)
const addModule = `{
  "_type": "Module",
  "filename": "add.py",
  "body": [
    {"_type": "FunctionDef", "name": "add", "lineno": 1, "col_offset": 0, "end_lineno": 2, "end_col_offset": 16,
     "args": {"_type": "arguments", "posonlyargs": [], "args": [{"_type": "arg", "arg": "x"}, {"_type": "arg", "arg": "y"}],
              "vararg": null, "kwonlyargs": [], "kw_defaults": [], "kwarg": null, "defaults": []},
     "body": [{"_type": "Return", "lineno": 2, "col_offset": 4, "end_lineno": 2, "end_col_offset": 16,
               "value": {"_type": "BinOp", "left": {"_type": "Name", "id": "x", "ctx": {"_type": "Load"}},
                         "op": {"_type": "Add"}, "right": {"_type": "Name", "id": "y", "ctx": {"_type": "Load"}}}}],
     "decorator_list": []},
    {"_type": "Expr", "lineno": 4, "col_offset": 0, "end_lineno": 4, "end_col_offset": 9,
     "value": {"_type": "Call", "func": {"_type": "Name", "id": "add"},
               "args": [{"_type": "Constant", "value": 3, "vtype": "int"}, {"_type": "Constant", "value": 4, "vtype": "int"}],
               "keywords": []}}
  ]
}`

func mustDecode(t *testing.T, src string) *Module {
	t.Helper()

	mod, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	return mod
}

func TestDecodeFunctionAndCall(t *testing.T) {
	mod := mustDecode(t, addModule)

	if mod.Path != "add.py" {
		t.Errorf("path = %q", mod.Path)
	}
	if len(mod.Body) != 2 {
		t.Fatalf("got %d top-level statements, want 2", len(mod.Body))
	}

	fd, ok := mod.Body[0].(*FunctionDef)
	if !ok {
		t.Fatalf("first statement is %T", mod.Body[0])
	}
	if fd.Name != "add" || len(fd.Params) != 2 || fd.Params[0] != "x" || fd.Params[1] != "y" {
		t.Errorf("function = %s%v", fd.Name, fd.Params)
	}
	if fd.HasVarArgs {
		t.Errorf("add has no variadic parameters")
	}

	ret := fd.Body[0].(*Return)
	if span := ret.Span(); span == nil || span.StartLine != 1 || span.StartCol != 4 {
		t.Errorf("return span = %v", span)
	}

	bin := ret.Value.(*BinOp)
	if bin.Op != Add {
		t.Errorf("op = %s", bin.Op)
	}

	call := mod.Body[1].(*ExprStmt).Value.(*Call)
	if c := call.Args[1].(*Constant); c.Kind != ConstInt || c.Int != 4 {
		t.Errorf("second argument = %+v", c)
	}
}

func TestDecodeMatchPatterns(t *testing.T) {
	src := `{"_type": "Module", "body": [
	  {"_type": "Match", "subject": {"_type": "Name", "id": "tree"}, "cases": [
	    {"_type": "match_case", "guard": null,
	     "pattern": {"_type": "MatchClass", "cls": {"_type": "Name", "id": "Leaf"},
	                 "patterns": [{"_type": "MatchAs", "pattern": null, "name": "value"}], "kwd_attrs": [], "kwd_patterns": []},
	     "body": [{"_type": "Return", "value": {"_type": "Name", "id": "value"}}]},
	    {"_type": "match_case", "guard": null,
	     "pattern": {"_type": "MatchOr", "patterns": []},
	     "body": [{"_type": "Pass"}]}
	  ]}
	]}`

	m := mustDecode(t, src).Body[0].(*Match)
	if len(m.Cases) != 2 {
		t.Fatalf("got %d cases", len(m.Cases))
	}

	cls := m.Cases[0].Pattern.(*MatchClass)
	if cls.Cls.(*Name).Id != "Leaf" || cls.Patterns[0].(*MatchAs).Name != "value" {
		t.Errorf("class pattern = %+v", cls)
	}

	if kind := PatternKind(m.Cases[1].Pattern); kind != "MatchOr" {
		t.Errorf("unsupported pattern kind = %s", kind)
	}
}

func TestDecodeConstantsAndUnsupported(t *testing.T) {
	src := `{"_type": "Module", "body": [
	  {"_type": "Expr", "value": {"_type": "Constant", "value": 1.5}},
	  {"_type": "Expr", "value": {"_type": "Constant", "value": "Circle", "vtype": "str"}},
	  {"_type": "Expr", "value": {"_type": "Constant", "vtype": "bytes"}},
	  {"_type": "While", "lineno": 7, "col_offset": 0},
	  {"_type": "Expr", "value": {"_type": "Lambda"}}
	]}`

	body := mustDecode(t, src).Body

	if c := body[0].(*ExprStmt).Value.(*Constant); c.Kind != ConstFloat || c.Float != 1.5 {
		t.Errorf("float constant = %+v", c)
	}
	if c := body[1].(*ExprStmt).Value.(*Constant); c.Kind != ConstStr || c.Str != "Circle" {
		t.Errorf("string constant = %+v", c)
	}
	if c := body[2].(*ExprStmt).Value.(*Constant); c.Kind != ConstBytes {
		t.Errorf("bytes constant = %+v", c)
	}
	if w, ok := body[3].(*UnsupportedStmt); !ok || w.Kind != "While" || w.Span().StartLine != 6 {
		t.Errorf("while statement = %+v", body[3])
	}
	if kind := ExprKind(body[4].(*ExprStmt).Value); kind != "Lambda" {
		t.Errorf("lambda kind = %s", kind)
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"_type": "Module", "body": [{"_type": "Return", "value": {"lineno": 1}}]}`))

	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}

	if _, err := Decode(strings.NewReader(`{"_type": "Expression"}`)); err == nil {
		t.Errorf("expected error for non-module root")
	}
}
