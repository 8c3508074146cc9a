package lower

import "benda/ast"

// Reachable returns the set of top-level functions of the module reachable
// from the given roots through name references, including the roots
// themselves if they are defined.
func Reachable(mod *ast.Module, roots ...string) map[string]bool {
	funcs := make(map[string]*ast.FunctionDef)
	for _, stmt := range mod.Body {
		if fdef, ok := stmt.(*ast.FunctionDef); ok {
			funcs[fdef.Name] = fdef
		}
	}

	seen := make(map[string]bool)
	queue := append([]string(nil), roots...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		fdef, ok := funcs[name]
		if !ok || seen[name] {
			continue
		}

		seen[name] = true
		ast.Inspect(fdef, func(node ast.ASTNode) bool {
			if ref, ok := node.(*ast.Name); ok && !seen[ref.Id] {
				queue = append(queue, ref.Id)
			}

			return true
		})
	}

	return seen
}
