package lower

import (
	"fmt"

	"benda/ast"
	"benda/bend"
	"benda/common"
	"benda/marshal"
	"benda/report"
)

// SynthesizeEntry registers the entry definition of the program: a definition
// with no parameters returning the application of the function `fun` to the
// given arguments.  Each argument which is not already a variable is bound by
// a helper definition `argN` with no parameters.
func (l *Lowerer) SynthesizeEntry(fun string, args []bend.Expr) (err error) {
	defer report.Catch(&err)

	def, ok := l.book.Def(fun)
	if !ok {
		panic(report.Raise(nil, report.MissingEntry, "function `%s` is not defined", fun))
	}

	if def.Arity() > 0 && len(args) == 0 {
		panic(report.Raise(nil, report.MissingEntry, "no arguments were given for function `%s`", fun))
	}

	if err := marshal.CheckArity(def, len(args)); err != nil {
		return err
	}

	callArgs := make([]bend.Expr, len(args))
	for i, arg := range args {
		if v, ok := arg.(*bend.Var); ok {
			callArgs[i] = v
			continue
		}

		name := l.freshName(fmt.Sprintf("arg%d", i))
		l.addDef(&bend.Definition{Name: name, Body: &bend.Return{Val: arg}})
		callArgs[i] = &bend.Var{Name: name}
	}

	l.setEntry(&bend.Return{Val: &bend.Call{Fun: &bend.Var{Name: fun}, Args: callArgs}})
	return nil
}

// SynthesizeFromScript registers the entry definition of the program by
// finding the first call to the function `fun` in the top-level script of the
// module.  The entry evaluates the assignments binding the names passed to the
// call and then returns the call itself.
func (l *Lowerer) SynthesizeFromScript(fun string, mod *ast.Module) (err error) {
	defer report.Catch(&err)

	script := flattenScript(mod.Body)

	cs, ok := findCallSite(script, fun)
	if !ok {
		panic(report.Raise(nil, report.MissingEntry, "function `%s` is never called", fun))
	}

	def, ok := l.book.Def(fun)
	if !ok {
		panic(report.Raise(cs.call.Span(), report.MissingEntry, "function `%s` is not defined", fun))
	}

	if err := marshal.CheckArity(def, len(cs.call.Args)); err != nil {
		return err
	}

	main := &frame{kind: frameMain, vars: cs.args, fun: fun}
	saved := l.frames
	l.frames = []*frame{main}
	body := l.lowerNext(script, cs.start)
	l.frames = saved

	l.setEntry(body)
	return nil
}

// callSite is the first call to a function in a script.
type callSite struct {
	call *ast.Call

	// site is the index of the statement making the call.
	site int

	// start is the index of the first assignment to one of the names passed
	// to the call, or the site if there is none.
	start int

	// args is the set of names passed to the call.
	args map[string]struct{}
}

// findCallSite finds the first assignment or expression statement in the
// script whose value is a call to the function `fun`.
func findCallSite(script []ast.Stmt, fun string) (*callSite, bool) {
	cs := &callSite{site: -1}
	for i, stmt := range script {
		var value ast.Expr
		switch v := stmt.(type) {
		case *ast.Assign:
			value = v.Value
		case *ast.ExprStmt:
			value = v.Value
		default:
			continue
		}

		if call, ok := value.(*ast.Call); ok {
			if name, ok := call.Func.(*ast.Name); ok && name.Id == fun {
				cs.call, cs.site = call, i
				break
			}
		}
	}

	if cs.site == -1 {
		return nil, false
	}

	var names []string
	for _, arg := range cs.call.Args {
		if name, ok := arg.(*ast.Name); ok {
			names = append(names, name.Id)
		}
	}
	cs.args = nameSet(names)

	cs.start = cs.site
	for i := 0; i < cs.site; i++ {
		if assign, ok := script[i].(*ast.Assign); ok && len(assign.Targets) == 1 {
			if target, ok := assign.Targets[0].(*ast.Name); ok {
				if _, bound := cs.args[target.Id]; bound {
					cs.start = i
					break
				}
			}
		}
	}

	return cs, true
}

// ScriptRoots returns the names the entry synthesized from the script of the
// module may reference: the function `fun` and every name used by the
// statements evaluated by the entry.
func ScriptRoots(mod *ast.Module, fun string) []string {
	roots := []string{fun}

	script := flattenScript(mod.Body)
	cs, ok := findCallSite(script, fun)
	if !ok {
		return roots
	}

	for _, stmt := range script[cs.start : cs.site+1] {
		var value ast.Expr
		switch v := stmt.(type) {
		case *ast.Assign:
			value = v.Value
		case *ast.ExprStmt:
			value = v.Value
		default:
			continue
		}

		ast.Inspect(value, func(node ast.ASTNode) bool {
			if name, ok := node.(*ast.Name); ok {
				roots = append(roots, name.Id)
			}

			return true
		})
	}

	return roots
}

// flattenScript returns the top-level statements of the module with the body
// of any `if __name__ == "__main__":` guard spliced in place of the guard.
func flattenScript(stmts []ast.Stmt) []ast.Stmt {
	var script []ast.Stmt
	for _, stmt := range stmts {
		if ifStmt, ok := stmt.(*ast.If); ok && isMainGuard(ifStmt.Test) {
			script = append(script, flattenScript(ifStmt.Body)...)
		} else {
			script = append(script, stmt)
		}
	}

	return script
}

func isMainGuard(test ast.Expr) bool {
	cmp, ok := test.(*ast.Compare)
	if !ok || len(cmp.Ops) != 1 || cmp.Ops[0] != ast.Eq {
		return false
	}

	name, ok := cmp.Left.(*ast.Name)
	if !ok || name.Id != "__name__" {
		return false
	}

	c, ok := cmp.Comparators[0].(*ast.Constant)
	return ok && c.Kind == ast.ConstStr && c.Str == "__main__"
}

// -----------------------------------------------------------------------------

// freshName returns `base` or, if it is taken, the first of `base_1`, `base_2`,
// and so on which is not.
func (l *Lowerer) freshName(base string) string {
	name := base
	for n := 1; l.taken(name); n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}

	return name
}

func (l *Lowerer) taken(name string) bool {
	if _, ok := l.book.Def(name); ok {
		return true
	}

	_, ok := l.book.Ctr(name)
	return ok || l.book.IsAdt(name)
}

func (l *Lowerer) addDef(def *bend.Definition) {
	if err := l.book.AddDef(def); err != nil {
		panic(report.Raise(nil, report.SymbolConflict, "%s", err))
	}
}

func (l *Lowerer) setEntry(body bend.Stmt) {
	if _, ok := body.(*bend.End); ok {
		report.ReportICE("entry definition synthesized with no statements")
	}

	entry := &bend.Definition{Name: common.EntryName, Body: body, Entry: true}
	if err := l.book.SetEntry(entry); err != nil {
		panic(report.Raise(nil, report.SymbolConflict, "%s", err))
	}
}
