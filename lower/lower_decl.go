package lower

import (
	"unicode"

	"benda/ast"
	"benda/bend"
	"benda/report"
)

// CollectDecls registers every declaration of the module in the book: the
// dataclasses, type aliases, and functions.  Types are collected in file order
// before any function is lowered so functions may reference types declared
// after them.  Type aliases may only reference types declared before them.
func (l *Lowerer) CollectDecls(mod *ast.Module) (err error) {
	defer report.Catch(&err)

	l.collectTypes(mod.Body)
	l.collectFuncs(mod.Body, nil)
	return nil
}

// CollectReachable is CollectDecls except that only the functions reachable
// from the given roots are collected.  Functions around the compiled ones are
// not required to be within the supported subset.
func (l *Lowerer) CollectReachable(mod *ast.Module, roots ...string) (err error) {
	defer report.Catch(&err)

	l.collectTypes(mod.Body)
	l.collectFuncs(mod.Body, Reachable(mod, roots...))
	return nil
}

// -----------------------------------------------------------------------------

// collectTypes registers the dataclasses and type aliases of the module.
func (l *Lowerer) collectTypes(stmts []ast.Stmt) {
	declared := make(map[string]struct{})
	for _, stmt := range stmts {
		if cdef, ok := stmt.(*ast.ClassDef); ok && l.isDataclass(cdef) {
			declared[cdef.Name] = struct{}{}
		}
	}

	for _, stmt := range stmts {
		switch v := stmt.(type) {
		case *ast.ClassDef:
			if l.isDataclass(v) {
				l.collectDataclass(v)
			}
		case *ast.Assign:
			if alias, ok := l.aliasTarget(v); ok {
				l.collectAlias(v, alias, declared)
			}
		}
	}
}

// isDataclass returns whether the class carries the dataclass decorator in any
// of its forms: `@dataclass`, `@dataclasses.dataclass`, or `@dataclass(...)`.
func (l *Lowerer) isDataclass(cdef *ast.ClassDef) bool {
	for _, dec := range cdef.Decorators {
		if call, ok := dec.(*ast.Call); ok {
			dec = call.Func
		}

		switch v := dec.(type) {
		case *ast.Name:
			if v.Id == l.opts.Dataclass {
				return true
			}
		case *ast.Attribute:
			if v.Attr == l.opts.Dataclass {
				return true
			}
		}
	}

	return false
}

// collectDataclass registers a dataclass as a single constructor ADT.  Field
// types are not inspected so every field is marked recursive.
func (l *Lowerer) collectDataclass(cdef *ast.ClassDef) {
	var fields []bend.CtrField
	for _, member := range cdef.Body {
		switch v := member.(type) {
		case *ast.AnnAssign:
			name, ok := v.Target.(*ast.Name)
			if !ok {
				l.unsupported(v.Target, "dataclass fields must be simple names")
			}

			fields = append(fields, bend.CtrField{Name: name.Id, Rec: true})
		case *ast.Pass:
		case *ast.ExprStmt:
			// docstring
			if c, ok := v.Value.(*ast.Constant); !ok || c.Kind != ast.ConstStr {
				l.unsupported(v, "unsupported dataclass member: %s", ast.ExprKind(v.Value))
			}
		default:
			l.unsupported(v, "unsupported dataclass member: %s", ast.StmtKind(v))
		}
	}

	adt := &bend.Adt{
		Name: cdef.Name,
		Ctrs: []*bend.Constructor{{Name: cdef.Name, Fields: fields}},
	}

	if err := l.book.AddAdt(adt); err != nil {
		l.error(cdef, report.SymbolConflict, "%s", err)
	}
}

// aliasTarget returns the name being declared if the assignment has the shape
// of a type alias: a capitalized name bound to a union of names.
func (l *Lowerer) aliasTarget(assign *ast.Assign) (string, bool) {
	if len(assign.Targets) != 1 {
		return "", false
	}

	target, ok := assign.Targets[0].(*ast.Name)
	if !ok || target.Id == "" || !unicode.IsUpper([]rune(target.Id)[0]) {
		return "", false
	}

	bin, ok := assign.Value.(*ast.BinOp)
	return target.Id, ok && bin.Op == ast.BitOr && isUnionShaped(bin)
}

// isUnionShaped returns whether the expression is built only from `|` and
// type references: names or strings.
func isUnionShaped(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.BinOp:
		return v.Op == ast.BitOr && isUnionShaped(v.Left) && isUnionShaped(v.Right)
	case *ast.Name:
		return true
	case *ast.Constant:
		return v.Kind == ast.ConstStr
	}

	return false
}

// collectAlias registers a type alias declaring a union of previously declared
// record types.  The constituent types are absorbed: each is removed from the
// book and its constructor is reinserted as `<alias>/<type>`.  `declared` holds
// every dataclass of the module, including those not yet registered.
func (l *Lowerer) collectAlias(assign *ast.Assign, alias string, declared map[string]struct{}) {
	fields, ok := l.lowerExpr(assign.Value).(CtrFieldList)
	if !ok {
		if l.mentionsType(assign.Value, declared) {
			l.unsupported(assign.Value, "type alias `%s` unions an undeclared type", alias)
		}

		// a union of plain values is an ordinary expression
		return
	}

	adt := &bend.Adt{Name: alias}
	for _, field := range fields {
		old, err := l.book.RemoveAdt(field.Name)
		if err != nil {
			l.error(assign, report.SymbolConflict, "%s", err)
		}

		if len(old.Ctrs) != 1 {
			l.unsupported(assign, "type `%s` has %d constructors and cannot be part of a union", old.Name, len(old.Ctrs))
		}

		adt.Ctrs = append(adt.Ctrs, &bend.Constructor{
			Name:   alias + "/" + old.Name,
			Fields: old.Ctrs[0].Fields,
		})
	}

	if err := l.book.AddAdt(adt); err != nil {
		l.error(assign, report.SymbolConflict, "%s", err)
	}
}

// mentionsType returns whether any name in a union refers to a registered ADT
// or to a dataclass of the module.
func (l *Lowerer) mentionsType(expr ast.Expr, declared map[string]struct{}) (found bool) {
	isType := func(name string) bool {
		_, ok := declared[name]
		return ok || l.book.IsAdt(name)
	}

	ast.Inspect(expr, func(node ast.ASTNode) bool {
		switch v := node.(type) {
		case *ast.Name:
			found = found || isType(v.Id)
		case *ast.Constant:
			found = found || (v.Kind == ast.ConstStr && isType(v.Str))
		}

		return !found
	})

	return
}

// -----------------------------------------------------------------------------

// collectFuncs lowers and registers the function definitions of the module.
// If `only` is non-nil, only the functions it contains are collected.
func (l *Lowerer) collectFuncs(stmts []ast.Stmt, only map[string]bool) {
	for _, stmt := range stmts {
		if fdef, ok := stmt.(*ast.FunctionDef); ok && (only == nil || only[fdef.Name]) {
			l.collectFunc(fdef)
		}
	}
}

// collectFunc lowers a single function definition.
func (l *Lowerer) collectFunc(fdef *ast.FunctionDef) {
	if fdef.HasVarArgs {
		l.unsupported(fdef, "function `%s` has variadic or keyword-only parameters", fdef.Name)
	}

	// function bodies never see the context of the code around them
	saved := l.frames
	l.frames = nil
	body := l.lowerNext(fdef.Body, 0)
	l.frames = saved

	if _, ok := body.(*bend.End); ok {
		l.unsupported(fdef, "function `%s` has no statements", fdef.Name)
	}

	def := &bend.Definition{
		Name:   fdef.Name,
		Params: append([]string(nil), fdef.Params...),
		Body:   body,
	}

	if err := l.book.AddDef(def); err != nil {
		l.error(fdef, report.SymbolConflict, "%s", err)
	}
}
