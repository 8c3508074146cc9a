package lower

import (
	"benda/ast"
	"benda/bend"
	"benda/common"
	"benda/report"
)

// Options configures the source conventions recognized by the lowerer.
type Options struct {
	// SwitchModule and SwitchFunction name the switch marker: by default the
	// marker is the call `benda.switch()`.
	SwitchModule   string
	SwitchFunction string

	// Dataclass is the name of the decorator marking record classes.
	Dataclass string
}

// DefaultOptions returns the default lowering options.
func DefaultOptions() Options {
	return Options{
		SwitchModule:   "benda",
		SwitchFunction: "switch",
		Dataclass:      "dataclass",
	}
}

// Lowerer is the construct responsible for converting the source AST into the
// target IR.  A lowerer owns the book it populates: the book must not be used
// by any other compilation until lowering is finished.
type Lowerer struct {
	book *bend.Book
	opts Options

	// frames is the stack of translation contexts.  The innermost context is
	// the last element.
	frames []*frame
}

// frameKind is the kind of a translation context.
type frameKind int

const (
	// frameMatch is the context of a structural match arm.
	frameMatch frameKind = iota

	// frameMain is the context of entry synthesis from a script.
	frameMain
)

// frame is a single translation context.
type frame struct {
	kind frameKind

	// vars is the set of names bound by the arm's pattern for a match frame,
	// or the set of names bound as arguments to the traced call for a main
	// frame.
	vars map[string]struct{}

	// subject is the name of the matched value in a match frame.
	subject string

	// fun is the name of the traced function in a main frame.
	fun string
}

func (f *frame) binds(name string) bool {
	_, ok := f.vars[name]
	return ok
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}

// NewLowerer creates a new lowerer populating the given book.
func NewLowerer(book *bend.Book, opts Options) *Lowerer {
	return &Lowerer{book: book, opts: opts}
}

// Book returns the book populated by the lowerer.
func (l *Lowerer) Book() *bend.Book {
	return l.book
}

// -----------------------------------------------------------------------------

// LowerExpr lowers a single expression outside of any declaration.
func (l *Lowerer) LowerExpr(expr ast.Expr) (result FromExpr, err error) {
	defer report.Catch(&err)

	return l.lowerExpr(expr), nil
}

// LowerBlock lowers a block of statements into a single statement chain.
func (l *Lowerer) LowerBlock(stmts []ast.Stmt) (result bend.Stmt, err error) {
	defer report.Catch(&err)

	return l.lowerNext(stmts, 0), nil
}

// -----------------------------------------------------------------------------

// pushFrame pushes a translation context.
func (l *Lowerer) pushFrame(f *frame) {
	l.frames = append(l.frames, f)
}

// popFrame pops the innermost translation context.
func (l *Lowerer) popFrame() {
	l.frames = l.frames[:len(l.frames)-1]
}

// mainFrame returns the innermost translation context if it is a main frame.
func (l *Lowerer) mainFrame() *frame {
	if len(l.frames) > 0 && l.frames[len(l.frames)-1].kind == frameMain {
		return l.frames[len(l.frames)-1]
	}

	return nil
}

// resolveName resolves a name reference against the active match frames.  A
// name bound by an enclosing arm's pattern is a projection of that arm's
// subject.
func (l *Lowerer) resolveName(name string) string {
	for i := len(l.frames) - 1; i >= 0; i-- {
		if f := l.frames[i]; f.kind == frameMatch && f.binds(name) {
			return f.subject + "." + name
		}
	}

	return name
}

// isSwitchCall returns whether the lowered expression is the switch marker.
func isSwitchCall(expr bend.Expr) bool {
	if call, ok := expr.(*bend.Call); ok && len(call.Args) == 0 {
		if fun, ok := call.Fun.(*bend.Var); ok {
			return fun.Name == common.SwitchName
		}
	}

	return false
}

// -----------------------------------------------------------------------------

// error raises a compile error over the given node.
func (l *Lowerer) error(node ast.ASTNode, kind report.ErrorKind, msg string, args ...interface{}) {
	panic(report.Raise(node.Span(), kind, msg, args...))
}

// unsupported raises an unsupported construct error over the given node.
func (l *Lowerer) unsupported(node ast.ASTNode, msg string, args ...interface{}) {
	l.error(node, report.Unsupported, msg, args...)
}
