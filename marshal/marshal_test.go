package marshal

import (
	"errors"
	"strings"
	"testing"

	"benda/bend"
)

func testBook(t *testing.T) *bend.Book {
	t.Helper()

	b := bend.NewBookWithBuiltins()
	adts := []*bend.Adt{
		{Name: "Point", Ctrs: []*bend.Constructor{
			{Name: "Point", Fields: []bend.CtrField{{Name: "x", Rec: true}, {Name: "y", Rec: true}}},
		}},
		{Name: "Shape", Ctrs: []*bend.Constructor{
			{Name: "Shape/Circle", Fields: []bend.CtrField{{Name: "r", Rec: true}}},
			{Name: "Shape/Square", Fields: []bend.CtrField{{Name: "s", Rec: true}}},
		}},
	}

	for _, adt := range adts {
		if err := b.AddAdt(adt); err != nil {
			t.Fatal(err)
		}
	}

	return b
}

func TestToExpr(t *testing.T) {
	b := testBook(t)

	tests := []struct {
		v    Value
		want string
	}{
		{U24(7), "7"},
		{U24(1<<24 + 1), "1"},
		{I24(-3), "-3"},
		{I24(3), "+3"},
		{F24(1.5), "1.5"},
		{&Record{Tag: "Point", Fields: map[string]Value{"y": U24(2), "x": U24(1)}}, "Point(1, 2)"},
		{&Record{Tag: "Circle", Fields: map[string]Value{"r": U24(5)}}, "Shape/Circle(5)"},
		{&Record{Tag: "Shape/Square", Fields: map[string]Value{"s": F24(2)}}, "Shape/Square(2.0)"},
		{&Record{Tag: "Cons", Fields: map[string]Value{"head": U24(1)}}, "List/Cons(1, List/Nil)"},
		{&Record{Tag: "Cons", Fields: map[string]Value{
			"head": &Record{Tag: "Point", Fields: map[string]Value{"x": U24(1), "y": U24(2)}},
			"tail": &Term{Expr: &bend.Var{Name: "rest"}},
		}}, "List/Cons(Point(1, 2), rest)"},
	}

	for _, test := range tests {
		expr, err := ToExpr(b, test.v)
		if err != nil {
			t.Errorf("%s: %v", test.v, err)
			continue
		}

		if got := expr.String(); got != test.want {
			t.Errorf("%s: got %s, want %s", test.v, got, test.want)
		}
	}
}

func TestToExprErrors(t *testing.T) {
	b := testBook(t)

	tests := []struct {
		v        Value
		fragment string
	}{
		{&Record{Tag: "Triangle"}, "unknown constructor `Triangle`"},
		{&Record{Tag: "Point", Fields: map[string]Value{"x": U24(1)}}, "missing field `y` of `Point`"},
		{&Record{Tag: "Point", Fields: map[string]Value{"x": U24(1), "y": U24(2), "z": U24(3)}}, "has no field `z`"},
		{&Record{Tag: "Circle", Fields: map[string]Value{"r": &Record{Tag: "Nope"}}}, "field `r` of `Shape/Circle`: unknown constructor `Nope`"},
	}

	for _, test := range tests {
		_, err := ToExpr(b, test.v)
		if err == nil || !strings.Contains(err.Error(), test.fragment) {
			t.Errorf("%s: got %v, want error containing %q", test.v, err, test.fragment)
		}
	}
}

func TestFromTerm(t *testing.T) {
	b := testBook(t)

	tests := []struct {
		expr bend.Expr
		want string
	}{
		{bend.NewU24(7), "7"},
		{bend.NewI24(-7), "-7"},
		{bend.NewF24(0.5), "0.5"},
		{&bend.Ctr{Name: "Point", Args: []bend.Expr{bend.NewU24(1), bend.NewU24(2)}}, "Point { x: 1, y: 2 }"},
		{&bend.Ctr{Name: "List/Nil"}, "List/Nil"},
		{&bend.Ctr{Name: "Unknown", Args: []bend.Expr{bend.NewU24(1)}}, "Unknown(1)"},
		{&bend.Var{Name: "λx x"}, "λx x"},
	}

	for _, test := range tests {
		if got := FromTerm(b, test.expr).String(); got != test.want {
			t.Errorf("%s: got %s, want %s", test.expr, got, test.want)
		}
	}

	if _, ok := FromTerm(b, bend.NewI24(-7)).(I24); !ok {
		t.Errorf("signed number not read back as I24")
	}
}

func TestRoundTrip(t *testing.T) {
	b := testBook(t)

	for _, v := range []Value{
		U24(0), U24(1<<24 - 1), I24(-(1 << 23)), I24(1<<23 - 1), F24(-2.5),
		&Record{Tag: "Shape/Circle", Fields: map[string]Value{"r": U24(3)}},
	} {
		expr, err := ToExpr(b, v)
		if err != nil {
			t.Fatal(err)
		}

		if got := FromTerm(b, expr); got.String() != v.String() {
			t.Errorf("%s read back as %s", v, got)
		}
	}
}

func TestCheckArity(t *testing.T) {
	add := &bend.Definition{Name: "add", Params: []string{"x", "y"}}

	if err := CheckArity(add, 2); err != nil {
		t.Errorf("matching arity: %v", err)
	}

	err := CheckArity(add, 3)

	var aerr *ArityError
	if !errors.As(err, &aerr) || aerr.Want != 2 || aerr.Got != 3 {
		t.Fatalf("got %v, want arity error", err)
	}

	if msg := err.Error(); msg != "function add has arity 2 and received 3 arguments" {
		t.Errorf("message = %q", msg)
	}
}
