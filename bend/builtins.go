package bend

import "benda/report"

// builtinAdts are the predefined Bend types.  They are never printed since the
// Bend compiler already provides them.
var builtinAdts = []*Adt{
	{Name: "List", Ctrs: []*Constructor{
		{Name: "List/Nil"},
		{Name: "List/Cons", Fields: []CtrField{{Name: "head"}, {Name: "tail", Rec: true}}},
	}},
	{Name: "String", Ctrs: []*Constructor{
		{Name: "String/Nil"},
		{Name: "String/Cons", Fields: []CtrField{{Name: "head"}, {Name: "tail", Rec: true}}},
	}},
	{Name: "Nat", Ctrs: []*Constructor{
		{Name: "Nat/Succ", Fields: []CtrField{{Name: "pred", Rec: true}}},
		{Name: "Nat/Zero"},
	}},
	{Name: "Result", Ctrs: []*Constructor{
		{Name: "Result/Ok", Fields: []CtrField{{Name: "val"}}},
		{Name: "Result/Err", Fields: []CtrField{{Name: "val"}}},
	}},
	{Name: "Tree", Ctrs: []*Constructor{
		{Name: "Tree/Node", Fields: []CtrField{{Name: "left", Rec: true}, {Name: "right", Rec: true}}},
		{Name: "Tree/Leaf", Fields: []CtrField{{Name: "value"}}},
	}},
	{Name: "Maybe", Ctrs: []*Constructor{
		{Name: "Maybe/Some", Fields: []CtrField{{Name: "value"}}},
		{Name: "Maybe/None"},
	}},
}

// NewBookWithBuiltins creates a new book preloaded with Bend's built-in types.
func NewBookWithBuiltins() *Book {
	b := NewBook()

	for _, proto := range builtinAdts {
		adt := &Adt{Name: proto.Name, Builtin: true}
		for _, ctr := range proto.Ctrs {
			adt.Ctrs = append(adt.Ctrs, &Constructor{
				Name:   ctr.Name,
				Fields: append([]CtrField(nil), ctr.Fields...),
			})
		}

		if err := b.AddAdt(adt); err != nil {
			report.ReportICE("registering built-in types: %s", err)
		}
	}

	return b
}
