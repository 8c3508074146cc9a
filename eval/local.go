package eval

import (
	"context"
	"fmt"
	"math"
	"strings"

	"benda/bend"
	"benda/report"
)

// DefaultMaxDepth is the default call depth limit of the local evaluator.
const DefaultMaxDepth = 100000

// Local is an in-process reference evaluator.  It walks statement chains
// directly instead of reducing interaction nets.  The runtime selection is
// ignored.
type Local struct {
	// MaxDepth is the call depth limit.  Zero means DefaultMaxDepth.
	MaxDepth int
}

// Run evaluates the entry definition of the book.
func (lc *Local) Run(ctx context.Context, book *bend.Book, rt Runtime) (result *Result, err error) {
	entry, ok := book.Entry()
	if !ok {
		return nil, &report.EvalError{Message: "program has no entry definition"}
	}

	m := &machine{ctx: ctx, book: book, maxDepth: lc.MaxDepth}
	if m.maxDepth == 0 {
		m.maxDepth = DefaultMaxDepth
	}

	defer func() {
		if x := recover(); x != nil {
			if eerr, ok := x.(*report.EvalError); ok {
				result, err = nil, eerr
			} else {
				panic(x)
			}
		}
	}()

	term := m.call(entry, nil)
	return &Result{Term: term, Output: "Result: " + term.String()}, nil
}

// -----------------------------------------------------------------------------

// scope is a persistent environment: binding a name never modifies an existing
// scope so branches can share their parent's bindings.
type scope struct {
	name   string
	val    bend.Expr
	parent *scope
}

func (s *scope) bind(name string, val bend.Expr) *scope {
	return &scope{name: name, val: val, parent: s}
}

func (s *scope) lookup(name string) (bend.Expr, bool) {
	for ; s != nil; s = s.parent {
		if s.name == name {
			return s.val, true
		}
	}

	return nil, false
}

// machine is the state of a single evaluation.
type machine struct {
	ctx      context.Context
	book     *bend.Book
	depth    int
	maxDepth int
}

// fail aborts the evaluation.
func (m *machine) fail(msg string, args ...interface{}) {
	panic(&report.EvalError{Message: fmt.Sprintf(msg, args...)})
}

// call applies a definition to evaluated arguments.
func (m *machine) call(def *bend.Definition, args []bend.Expr) bend.Expr {
	if len(args) != def.Arity() {
		m.fail("function `%s` has arity %d and received %d arguments", def.Name, def.Arity(), len(args))
	}

	if err := m.ctx.Err(); err != nil {
		m.fail("evaluation interrupted: %s", err)
	}

	m.depth++
	if m.depth > m.maxDepth {
		m.fail("maximum call depth of %d exceeded in `%s`", m.maxDepth, def.Name)
	}
	defer func() { m.depth-- }()

	var env *scope
	for i, param := range def.Params {
		env = env.bind(param, args[i])
	}

	val, _, done := m.exec(def.Body, env)
	if !done {
		m.fail("function `%s` ended without returning a value", def.Name)
	}

	return val
}

// exec runs a statement chain.  It returns the returned value if the chain
// returned, or the final scope if it ran to its end.
func (m *machine) exec(stmt bend.Stmt, env *scope) (bend.Expr, *scope, bool) {
	for {
		switch v := stmt.(type) {
		case *bend.Assign:
			env = env.bind(v.Name, m.eval(v.Val, env))
			stmt = v.Next
		case *bend.If:
			branch := v.Else
			if m.truthy(m.eval(v.Cond, env)) {
				branch = v.Then
			}

			val, benv, done := m.exec(branch, env)
			if done {
				return val, nil, true
			}

			env = benv
			stmt = v.Next
		case *bend.Match:
			val, menv, done := m.execMatch(v, env)
			if done {
				return val, nil, true
			}

			env = menv
			stmt = v.Next
		case *bend.Switch:
			val, senv, done := m.execSwitch(v, env)
			if done {
				return val, nil, true
			}

			env = senv
			stmt = v.Next
		case *bend.Return:
			return m.eval(v.Val, env), nil, true
		case *bend.End:
			return nil, env, false
		default:
			report.ReportICE("evaluating unknown statement %T", v)
		}
	}
}

func (m *machine) execMatch(match *bend.Match, env *scope) (bend.Expr, *scope, bool) {
	arg := m.eval(match.Arg, env)

	ctr, ok := arg.(*bend.Ctr)
	if !ok {
		m.fail("cannot match on non-constructor value `%s`", arg)
	}

	if match.Bind != "" {
		env = env.bind(match.Bind, ctr)
	}

	for _, arm := range match.Arms {
		if arm.Ctr == ctr.Name {
			return m.exec(arm.Body, env)
		}
	}

	m.fail("no match arm for constructor `%s`", ctr.Name)
	return nil, nil, false
}

func (m *machine) execSwitch(sw *bend.Switch, env *scope) (bend.Expr, *scope, bool) {
	arg := m.eval(sw.Arg, env)

	n, ok := arg.(*bend.Num)
	if !ok || n.Kind != bend.U24 {
		m.fail("cannot switch on `%s`: switch requires an unsigned number", arg)
	}

	if sw.Bind != "" {
		env = env.bind(sw.Bind, n)
	}

	last := len(sw.Arms) - 1
	if int(n.U24()) < last {
		return m.exec(sw.Arms[n.U24()], env)
	}

	if sw.Bind != "" {
		env = env.bind(fmt.Sprintf("%s-%d", sw.Bind, last), bend.NewU24(n.U24()-uint32(last)))
	}

	return m.exec(sw.Arms[last], env)
}

// -----------------------------------------------------------------------------

// eval evaluates an expression to a value: a number, a string, a fully
// evaluated constructor application, or a reference to a function.
func (m *machine) eval(expr bend.Expr, env *scope) bend.Expr {
	switch v := expr.(type) {
	case *bend.Num, *bend.Str:
		return v
	case *bend.Var:
		return m.evalVar(v.Name, env)
	case *bend.Ctr:
		args := make([]bend.Expr, len(v.Args))
		for i, arg := range v.Args {
			args[i] = m.eval(arg, env)
		}

		return &bend.Ctr{Name: v.Name, Args: args}
	case *bend.Call:
		def := m.callee(v.Fun, env)

		args := make([]bend.Expr, len(v.Args))
		for i, arg := range v.Args {
			args[i] = m.eval(arg, env)
		}

		return m.call(def, args)
	case *bend.Bin:
		return m.evalBin(v.Op, m.eval(v.Lhs, env), m.eval(v.Rhs, env))
	}

	report.ReportICE("evaluating unknown expression %T", expr)
	return nil
}

// callee resolves the function applied by a call.
func (m *machine) callee(fun bend.Expr, env *scope) *bend.Definition {
	if ref, ok := fun.(*bend.Var); ok {
		if _, bound := env.lookup(ref.Name); !bound {
			if def, ok := m.book.Def(ref.Name); ok {
				return def
			}
		}
	}

	val := m.eval(fun, env)
	if ref, ok := val.(*bend.Var); ok {
		if def, ok := m.book.Def(ref.Name); ok {
			return def
		}
	}

	m.fail("cannot call non-function value `%s`", val)
	return nil
}

// evalVar resolves a name: a local binding, a projection `bind.field` of a
// matched constructor, a function, or a constructor with no fields.
func (m *machine) evalVar(name string, env *scope) bend.Expr {
	if val, ok := env.lookup(name); ok {
		return val
	}

	if dot := strings.IndexByte(name, '.'); dot > 0 {
		val := m.evalVar(name[:dot], env)
		return m.project(val, name[dot+1:])
	}

	if def, ok := m.book.Def(name); ok {
		if def.Arity() == 0 {
			return m.call(def, nil)
		}

		return &bend.Var{Name: name}
	}

	if ctr, ok := m.book.Ctr(name); ok && len(ctr.Fields) == 0 {
		return &bend.Ctr{Name: name}
	}

	m.fail("unbound variable `%s`", name)
	return nil
}

// project accesses the (possibly nested) field path of a constructor value.
func (m *machine) project(val bend.Expr, path string) bend.Expr {
	field, rest := path, ""
	if dot := strings.IndexByte(path, '.'); dot > 0 {
		field, rest = path[:dot], path[dot+1:]
	}

	ctr, ok := val.(*bend.Ctr)
	if !ok {
		m.fail("cannot access field `%s` of non-constructor value `%s`", field, val)
	}

	desc, ok := m.book.Ctr(ctr.Name)
	if !ok {
		m.fail("unknown constructor `%s`", ctr.Name)
	}

	ndx := desc.FieldIndex(field)
	if ndx == -1 {
		m.fail("constructor `%s` has no field `%s`", ctr.Name, field)
	}

	if rest == "" {
		return ctr.Args[ndx]
	}

	return m.project(ctr.Args[ndx], rest)
}

func (m *machine) truthy(val bend.Expr) bool {
	n, ok := val.(*bend.Num)
	if !ok {
		m.fail("condition `%s` is not a number", val)
	}

	return n.Bits != 0
}

// -----------------------------------------------------------------------------

// evalBin applies a binary operator to two numbers of the same kind.
func (m *machine) evalBin(op bend.Op, lhs, rhs bend.Expr) bend.Expr {
	a, aok := lhs.(*bend.Num)
	b, bok := rhs.(*bend.Num)
	if !aok || !bok {
		m.fail("operands of `%s` must be numbers: got `%s` and `%s`", op, lhs, rhs)
	}

	if a.Kind != b.Kind {
		m.fail("operands of `%s` have different types: %s and %s", op, a.Kind, b.Kind)
	}

	switch a.Kind {
	case bend.U24:
		return m.evalU24(op, a.U24(), b.U24())
	case bend.I24:
		return m.evalI24(op, a.I24(), b.I24())
	default:
		return m.evalF24(op, a.F24(), b.F24())
	}
}

func boolNum(b bool) *bend.Num {
	if b {
		return bend.NewU24(1)
	}

	return bend.NewU24(0)
}

func (m *machine) evalU24(op bend.Op, a, b uint32) bend.Expr {
	switch op {
	case bend.OpAdd:
		return bend.NewU24(a + b)
	case bend.OpSub:
		return bend.NewU24(a - b)
	case bend.OpMul:
		return bend.NewU24(a * b)
	case bend.OpDiv:
		if b == 0 {
			m.fail("division by zero")
		}
		return bend.NewU24(a / b)
	case bend.OpPow:
		r := uint32(1)
		for ; b > 0; b-- {
			r = (r * a) & bend.Mask24
		}
		return bend.NewU24(r)
	case bend.OpShl:
		return bend.NewU24(a << (b & 31))
	case bend.OpShr:
		return bend.NewU24(a >> (b & 31))
	case bend.OpOr:
		return bend.NewU24(a | b)
	case bend.OpXor:
		return bend.NewU24(a ^ b)
	case bend.OpAnd:
		return bend.NewU24(a & b)
	case bend.OpEq:
		return boolNum(a == b)
	case bend.OpNeq:
		return boolNum(a != b)
	case bend.OpLt:
		return boolNum(a < b)
	case bend.OpGt:
		return boolNum(a > b)
	}

	report.ReportICE("unknown operator %d", op)
	return nil
}

func (m *machine) evalI24(op bend.Op, a, b int32) bend.Expr {
	switch op {
	case bend.OpAdd:
		return bend.NewI24(a + b)
	case bend.OpSub:
		return bend.NewI24(a - b)
	case bend.OpMul:
		return bend.NewI24(a * b)
	case bend.OpDiv:
		if b == 0 {
			m.fail("division by zero")
		}
		return bend.NewI24(a / b)
	case bend.OpPow:
		r := int32(1)
		for ; b > 0; b-- {
			r = bend.NewI24(r * a).I24()
		}
		return bend.NewI24(r)
	case bend.OpShl:
		return bend.NewI24(a << uint32(b&31))
	case bend.OpShr:
		return bend.NewI24(a >> uint32(b&31))
	case bend.OpOr:
		return bend.NewI24(a | b)
	case bend.OpXor:
		return bend.NewI24(a ^ b)
	case bend.OpAnd:
		return bend.NewI24(a & b)
	case bend.OpEq:
		return boolNum(a == b)
	case bend.OpNeq:
		return boolNum(a != b)
	case bend.OpLt:
		return boolNum(a < b)
	case bend.OpGt:
		return boolNum(a > b)
	}

	report.ReportICE("unknown operator %d", op)
	return nil
}

func (m *machine) evalF24(op bend.Op, a, b float32) bend.Expr {
	switch op {
	case bend.OpAdd:
		return bend.NewF24(a + b)
	case bend.OpSub:
		return bend.NewF24(a - b)
	case bend.OpMul:
		return bend.NewF24(a * b)
	case bend.OpDiv:
		return bend.NewF24(a / b)
	case bend.OpPow:
		return bend.NewF24(float32(math.Pow(float64(a), float64(b))))
	case bend.OpEq:
		return boolNum(a == b)
	case bend.OpNeq:
		return boolNum(a != b)
	case bend.OpLt:
		return boolNum(a < b)
	case bend.OpGt:
		return boolNum(a > b)
	}

	m.fail("operator `%s` is not defined on floats", op)
	return nil
}
