package bend

import (
	"strings"
	"testing"
)

func pointAdt() *Adt {
	return &Adt{Name: "Point", Ctrs: []*Constructor{
		{Name: "Point", Fields: []CtrField{{Name: "x", Rec: true}, {Name: "y", Rec: true}}},
	}}
}

func TestAddAdtRejectsRedefinition(t *testing.T) {
	b := NewBook()
	if err := b.AddAdt(pointAdt()); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	for i := 0; i < 2; i++ {
		err := b.AddAdt(pointAdt())
		if err == nil || !strings.Contains(err.Error(), "repeated datatype `Point`") {
			t.Fatalf("attempt %d: got %v, want repeated datatype error", i, err)
		}
	}

	if n := len(b.Adts()); n != 1 {
		t.Errorf("book holds %d ADTs, want 1", n)
	}
}

func TestAddAdtRejectsBuiltins(t *testing.T) {
	b := NewBookWithBuiltins()

	err := b.AddAdt(&Adt{Name: "List", Ctrs: []*Constructor{{Name: "MyList"}}})
	if err == nil || !strings.Contains(err.Error(), "built-in datatype") {
		t.Errorf("redefining List: %v", err)
	}

	err = b.AddAdt(&Adt{Name: "Mine", Ctrs: []*Constructor{{Name: "List/Nil"}}})
	if err == nil || !strings.Contains(err.Error(), "built-in constructor") {
		t.Errorf("redefining List/Nil: %v", err)
	}

	if b.IsAdt("Mine") {
		t.Errorf("failed registration must leave the book unchanged")
	}
}

func TestAddAdtRejectsRepeatedConstructor(t *testing.T) {
	b := NewBook()
	if err := b.AddAdt(pointAdt()); err != nil {
		t.Fatal(err)
	}

	err := b.AddAdt(&Adt{Name: "Other", Ctrs: []*Constructor{{Name: "Point"}}})
	if err == nil || !strings.Contains(err.Error(), "repeated constructor `Point`") {
		t.Errorf("got %v", err)
	}
}

func TestRemoveAdtKeepsIndexConsistent(t *testing.T) {
	b := NewBook()
	if err := b.AddAdt(pointAdt()); err != nil {
		t.Fatal(err)
	}

	adt, err := b.RemoveAdt("Point")
	if err != nil || adt.Name != "Point" {
		t.Fatalf("RemoveAdt = %v, %v", adt, err)
	}

	if b.IsAdt("Point") {
		t.Errorf("Point still registered")
	}
	if _, ok := b.CtrOwner("Point"); ok {
		t.Errorf("constructor index still holds Point")
	}
	if _, ok := b.FindCtr("Point"); ok {
		t.Errorf("FindCtr still resolves Point")
	}

	if _, err := NewBookWithBuiltins().RemoveAdt("Tree"); err == nil {
		t.Errorf("removing a built-in type must fail")
	}
}

func TestFindCtr(t *testing.T) {
	b := NewBookWithBuiltins()
	if err := b.AddAdt(&Adt{Name: "Shape", Ctrs: []*Constructor{
		{Name: "Shape/Circle", Fields: []CtrField{{Name: "r", Rec: true}}},
		{Name: "Shape/Leaf"},
	}}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name, want string
		ok         bool
	}{
		{"Shape/Circle", "Shape/Circle", true},
		{"Circle", "Shape/Circle", true},
		{"Node", "Tree/Node", true},
		{"Leaf", "Shape/Leaf", true},
		{"Square", "", false},
	}

	for _, test := range tests {
		got, ok := b.FindCtr(test.name)
		if got != test.want || ok != test.ok {
			t.Errorf("FindCtr(%q) = %q, %v; want %q, %v", test.name, got, ok, test.want, test.ok)
		}
	}
}

func TestAddDefRejectsDuplicate(t *testing.T) {
	b := NewBook()
	def := &Definition{Name: "f", Body: &Return{Val: NewU24(1)}}
	if err := b.AddDef(def); err != nil {
		t.Fatal(err)
	}
	if err := b.AddDef(def); err == nil {
		t.Errorf("expected duplicate definition error")
	}
}

func TestNumLiterals(t *testing.T) {
	for _, n := range []uint32{0, 1, 7, 1 << 23, Mask24} {
		if got := NewU24(n).U24(); got != n {
			t.Errorf("NewU24(%d).U24() = %d", n, got)
		}
	}

	if got := NewU24(1 << 24).U24(); got != 0 {
		t.Errorf("2^24 should truncate to 0, got %d", got)
	}
	if got := NewU24(1<<24 + 5).U24(); got != 5 {
		t.Errorf("2^24+5 should truncate to 5, got %d", got)
	}

	for _, n := range []int32{-8388608, -3, 0, 3, 8388607} {
		if got := NewI24(n).I24(); got != n {
			t.Errorf("NewI24(%d).I24() = %d", n, got)
		}
	}

	if got := NewF24(1.5).F24(); got != 1.5 {
		t.Errorf("NewF24(1.5).F24() = %v", got)
	}

	strs := map[*Num]string{
		NewU24(7):    "7",
		NewI24(3):    "+3",
		NewI24(-3):   "-3",
		NewF24(1.5):  "1.5",
		NewF24(2):    "2.0",
		NewF24(-0.5): "-0.5",
	}
	for num, want := range strs {
		if got := num.String(); got != want {
			t.Errorf("%s literal printed as %q, want %q", num.Kind, got, want)
		}
	}
}
