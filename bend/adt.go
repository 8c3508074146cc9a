package bend

import "strings"

// Adt is an algebraic data type: a named type with an ordered list of
// constructors.  There is no bound on the number of constructors.
type Adt struct {
	Name string
	Ctrs []*Constructor

	// Builtin marks a predefined type which may not be redefined.
	Builtin bool
}

// Constructor is one named variant of an ADT.  Name is the full constructor
// name: `Shape/Circle` for a member of a union, or just the type name for a
// single-constructor record declared as an object.
type Constructor struct {
	Name   string
	Fields []CtrField
}

// CtrField is a single field of a constructor.  Rec marks a field that may
// hold a value of the enclosing type.
type CtrField struct {
	Name string
	Rec  bool
}

// Ctr returns the constructor of the ADT with the given full name.
func (adt *Adt) Ctr(name string) (*Constructor, bool) {
	for _, ctr := range adt.Ctrs {
		if ctr.Name == name {
			return ctr, true
		}
	}

	return nil, false
}

// IsObject returns whether the ADT is a record declared with a single
// constructor sharing the type's name.
func (adt *Adt) IsObject() bool {
	return len(adt.Ctrs) == 1 && adt.Ctrs[0].Name == adt.Name
}

// FieldIndex returns the position of the named field or -1.
func (ctr *Constructor) FieldIndex(name string) int {
	for i, field := range ctr.Fields {
		if field.Name == name {
			return i
		}
	}

	return -1
}

// CtrSuffix returns the bare constructor name: the part after the last `/`.
func CtrSuffix(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}

	return name
}
