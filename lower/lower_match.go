package lower

import (
	"benda/ast"
	"benda/bend"
	"benda/report"
)

// armPattern is the decomposition of a structural match arm's pattern.
type armPattern struct {
	// head is the constructor reference as written: `Leaf` or `Tree/Leaf`.
	head string

	// captures are the positional sub-pattern names.  Wildcards are stored as
	// empty strings.
	captures []string
}

// lowerMatch lowers a structural match.  Names captured by an arm's pattern
// become projections of the matched subject within that arm.
func (l *Lowerer) lowerMatch(stmts []ast.Stmt, ndx int, match *ast.Match) FromExpr {
	arg := l.lowerValue(match.Subject)

	var bind string
	if subject, ok := match.Subject.(*ast.Name); ok {
		bind = subject.Id
	}

	arms := make([]*bend.MatchArm, len(match.Cases))
	for i, mcase := range match.Cases {
		if mcase.Guard != nil {
			l.unsupported(mcase.Guard, "match guards are not supported")
		}

		patt := l.decomposePattern(mcase.Pattern)

		ctrName, ok := l.book.FindCtr(patt.head)
		if !ok {
			l.error(mcase.Pattern, report.Unsupported, "unknown constructor `%s` in pattern", patt.head)
		}

		var captured []string
		if len(patt.captures) > 0 {
			if bind == "" {
				l.unsupported(mcase.Pattern, "captures require the match subject to be a name")
			}

			captured = l.checkCaptures(mcase.Pattern, ctrName, patt.captures)
		}

		arms[i] = &bend.MatchArm{
			Ctr: ctrName,
			Body: l.lowerArm(mcase.Body, &frame{
				kind:    frameMatch,
				vars:    nameSet(captured),
				subject: bind,
			}),
		}
	}

	return StmtForm{&bend.Match{
		Arg:  arg,
		Bind: bind,
		Arms: arms,
		Next: l.lowerNext(stmts, ndx+1),
	}}
}

// lowerArm lowers the body of an arm within its own translation context.
func (l *Lowerer) lowerArm(body []ast.Stmt, f *frame) bend.Stmt {
	if f == nil {
		return l.lowerNext(body, 0)
	}

	l.pushFrame(f)
	defer l.popFrame()

	return l.lowerNext(body, 0)
}

// decomposePattern splits a structural pattern into its constructor reference
// and its positional captures.
func (l *Lowerer) decomposePattern(patt ast.Pattern) armPattern {
	switch v := patt.(type) {
	case *ast.MatchValue:
		return armPattern{head: l.patternHead(v, v.Value)}
	case *ast.MatchClass:
		if v.NKeyword > 0 {
			l.unsupported(v, "keyword sub-patterns are not supported")
		}

		captures := make([]string, len(v.Patterns))
		for i, sub := range v.Patterns {
			as, ok := sub.(*ast.MatchAs)
			if !ok || as.Pattern != nil {
				l.unsupported(sub, "nested patterns are not supported")
			}

			captures[i] = as.Name
		}

		return armPattern{head: l.patternHead(v, v.Cls), captures: captures}
	case *ast.MatchAs:
		if v.Pattern == nil && v.Name != "" {
			l.unsupported(v, "capture patterns are not supported: use `%s()` to match a constructor", v.Name)
		}

		l.unsupported(v, "wildcard patterns are only supported in a switch")
	}

	l.unsupported(patt, "unsupported pattern: %s", ast.PatternKind(patt))
	return armPattern{}
}

// patternHead returns the constructor reference named by a pattern head.
// Attribute heads name a qualified constructor: `Tree.Leaf` is `Tree/Leaf`.
func (l *Lowerer) patternHead(patt ast.Pattern, head ast.Expr) string {
	switch v := head.(type) {
	case *ast.Name:
		return v.Id
	case *ast.Attribute:
		if adt, ok := v.Value.(*ast.Name); ok {
			return adt.Id + "/" + v.Attr
		}
	case *ast.Constant:
		l.unsupported(patt, "literal patterns require the switch marker")
	}

	l.unsupported(patt, "unsupported pattern head: %s", ast.ExprKind(head))
	return ""
}

// checkCaptures validates the captures of a pattern against the fields of the
// matched constructor and returns the captured names.  Fields are projected by
// name so every capture must be named after the field in its position.
func (l *Lowerer) checkCaptures(patt ast.Pattern, ctrName string, captures []string) []string {
	ctr, _ := l.book.Ctr(ctrName)
	if len(captures) > len(ctr.Fields) {
		l.unsupported(
			patt,
			"constructor `%s` has %d fields but the pattern binds %d",
			ctrName,
			len(ctr.Fields),
			len(captures),
		)
	}

	var captured []string
	for i, name := range captures {
		if name == "" {
			continue
		}

		if name != ctr.Fields[i].Name {
			l.unsupported(
				patt,
				"pattern binds `%s` to field `%s` of `%s`: captures must be named after the fields they bind",
				name,
				ctr.Fields[i].Name,
				ctrName,
			)
		}

		captured = append(captured, name)
	}

	return captured
}

// -----------------------------------------------------------------------------

// lowerSwitch lowers the switch idiom: the assignment of the switch marker at
// `ndx` followed by a match over a number.  The arms of the match select by
// position.  If the marker is not followed by a match, the assignment is inert.
func (l *Lowerer) lowerSwitch(stmts []ast.Stmt, ndx int, bind string) FromExpr {
	if ndx+1 >= len(stmts) {
		return nil
	}

	match, ok := stmts[ndx+1].(*ast.Match)
	if !ok {
		return l.lowerBlock(stmts, ndx+1)
	}

	arg := l.lowerValue(match.Subject)

	arms := make([]bend.Stmt, len(match.Cases))
	for i, mcase := range match.Cases {
		if mcase.Guard != nil {
			l.unsupported(mcase.Guard, "match guards are not supported")
		}

		l.checkSwitchArm(mcase.Pattern, i, i == len(match.Cases)-1)
		arms[i] = l.lowerArm(mcase.Body, nil)
	}

	if len(arms) == 0 {
		l.unsupported(match, "switch must have at least one arm")
	}

	return StmtForm{&bend.Switch{
		Arg:  arg,
		Bind: bind,
		Arms: arms,
		Next: l.lowerNext(stmts, ndx+2),
	}}
}

// checkSwitchArm validates the pattern of the arm at position `n` of a switch.
// Every arm but the last must match the number equal to its position; the last
// arm may instead match every remaining number.
func (l *Lowerer) checkSwitchArm(patt ast.Pattern, n int, last bool) {
	switch v := patt.(type) {
	case *ast.MatchValue:
		if c, ok := v.Value.(*ast.Constant); ok && c.Kind == ast.ConstInt {
			if c.Int != int64(n) {
				l.unsupported(v, "switch arm %d must match `%d`", n, n)
			}

			return
		}
	case *ast.MatchAs:
		if v.Pattern == nil {
			if !last {
				l.unsupported(v, "only the last switch arm may match any value")
			}

			return
		}
	}

	l.unsupported(patt, "switch arms must match a number")
}
