package bend

import "fmt"

// Book is the symbol table of one compilation: the ADTs, the index of
// constructor names to their owning ADT, and the function definitions.  All
// three tables preserve insertion order.  A book is owned by a single
// compilation and must not be shared between concurrent compilations.
type Book struct {
	adts     map[string]*Adt
	adtOrder []string

	// ctrs maps every full constructor name to the name of its ADT.
	ctrs     map[string]string
	ctrOrder []string

	defs     map[string]*Definition
	defOrder []string

	// Entrypoint is the name of the entry definition.  It is empty until an
	// entry has been synthesized.
	Entrypoint string
}

// NewBook creates a new empty book.
func NewBook() *Book {
	return &Book{
		adts: make(map[string]*Adt),
		ctrs: make(map[string]string),
		defs: make(map[string]*Definition),
	}
}

// AddAdt registers an ADT and all of its constructors.  Redefining a built-in
// type or constructor, or any name already present, is an error.  The book is
// unchanged if an error is returned.
func (b *Book) AddAdt(adt *Adt) error {
	if prev, ok := b.adts[adt.Name]; ok {
		if prev.Builtin {
			return fmt.Errorf("`%s` is a built-in datatype and should not be overridden", adt.Name)
		}

		return fmt.Errorf("repeated datatype `%s`", adt.Name)
	}

	seen := make(map[string]struct{}, len(adt.Ctrs))
	for _, ctr := range adt.Ctrs {
		if owner, ok := b.ctrs[ctr.Name]; ok {
			if b.adts[owner].Builtin {
				return fmt.Errorf("`%s` is a built-in constructor and should not be overridden", ctr.Name)
			}

			return fmt.Errorf("repeated constructor `%s`", ctr.Name)
		}

		if _, ok := seen[ctr.Name]; ok {
			return fmt.Errorf("repeated constructor `%s`", ctr.Name)
		}
		seen[ctr.Name] = struct{}{}
	}

	b.adts[adt.Name] = adt
	b.adtOrder = append(b.adtOrder, adt.Name)
	for _, ctr := range adt.Ctrs {
		b.ctrs[ctr.Name] = adt.Name
		b.ctrOrder = append(b.ctrOrder, ctr.Name)
	}

	return nil
}

// RemoveAdt removes an ADT and its constructors from the book and returns it.
// Built-in types cannot be removed.
func (b *Book) RemoveAdt(name string) (*Adt, error) {
	adt, ok := b.adts[name]
	if !ok {
		return nil, fmt.Errorf("undefined datatype `%s`", name)
	} else if adt.Builtin {
		return nil, fmt.Errorf("`%s` is a built-in datatype and cannot be absorbed into a union", name)
	}

	delete(b.adts, name)
	b.adtOrder = removeName(b.adtOrder, name)

	for _, ctr := range adt.Ctrs {
		delete(b.ctrs, ctr.Name)
		b.ctrOrder = removeName(b.ctrOrder, ctr.Name)
	}

	return adt, nil
}

// AddDef registers a function definition.
func (b *Book) AddDef(def *Definition) error {
	if _, ok := b.defs[def.Name]; ok {
		return fmt.Errorf("repeated definition `%s`", def.Name)
	}

	b.defs[def.Name] = def
	b.defOrder = append(b.defOrder, def.Name)
	return nil
}

// SetEntry registers the entry definition and marks it as the entrypoint.
func (b *Book) SetEntry(def *Definition) error {
	def.Entry = true
	if err := b.AddDef(def); err != nil {
		return err
	}

	b.Entrypoint = def.Name
	return nil
}

// -----------------------------------------------------------------------------

// Adt returns the ADT with the given name.
func (b *Book) Adt(name string) (*Adt, bool) {
	adt, ok := b.adts[name]
	return adt, ok
}

// IsAdt returns whether the given name is a registered ADT.
func (b *Book) IsAdt(name string) bool {
	_, ok := b.adts[name]
	return ok
}

// Def returns the definition with the given name.
func (b *Book) Def(name string) (*Definition, bool) {
	def, ok := b.defs[name]
	return def, ok
}

// Entry returns the entry definition, if one has been synthesized.
func (b *Book) Entry() (*Definition, bool) {
	if b.Entrypoint == "" {
		return nil, false
	}

	return b.Def(b.Entrypoint)
}

// Adts returns all ADTs in declaration order.
func (b *Book) Adts() []*Adt {
	adts := make([]*Adt, len(b.adtOrder))
	for i, name := range b.adtOrder {
		adts[i] = b.adts[name]
	}

	return adts
}

// Defs returns all definitions in declaration order.
func (b *Book) Defs() []*Definition {
	defs := make([]*Definition, len(b.defOrder))
	for i, name := range b.defOrder {
		defs[i] = b.defs[name]
	}

	return defs
}

// CtrOwner returns the name of the ADT owning the constructor.
func (b *Book) CtrOwner(ctr string) (string, bool) {
	owner, ok := b.ctrs[ctr]
	return owner, ok
}

// Ctr returns the constructor with the given full name.
func (b *Book) Ctr(name string) (*Constructor, bool) {
	owner, ok := b.ctrs[name]
	if !ok {
		return nil, false
	}

	return b.adts[owner].Ctr(name)
}

// FindCtr resolves a constructor reference to a full constructor name.  An
// exact match on the full name wins; otherwise the name is matched against the
// bare suffix of every constructor, preferring user-defined constructors over
// built-in ones and earlier declarations over later ones.
func (b *Book) FindCtr(name string) (string, bool) {
	if _, ok := b.ctrs[name]; ok {
		return name, true
	}

	var builtinMatch string
	for _, full := range b.ctrOrder {
		if CtrSuffix(full) != name {
			continue
		}

		if !b.adts[b.ctrs[full]].Builtin {
			return full, true
		} else if builtinMatch == "" {
			builtinMatch = full
		}
	}

	return builtinMatch, builtinMatch != ""
}

// ZeroCtr returns the first constructor of the ADT with no fields, if any.
func (b *Book) ZeroCtr(adtName string) (*Constructor, bool) {
	adt, ok := b.adts[adtName]
	if !ok {
		return nil, false
	}

	for _, ctr := range adt.Ctrs {
		if len(ctr.Fields) == 0 {
			return ctr, true
		}
	}

	return nil, false
}

// removeName removes the first occurrence of name from the ordered list.
func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i:i], names[i+1:]...)
		}
	}

	return names
}
