package build

import (
	"context"

	"benda/ast"
	"benda/bend"
	"benda/config"
	"benda/eval"
	"benda/lower"
	"benda/marshal"
	"benda/report"

	"github.com/kr/pretty"
)

// Compiler drives the compilation of a single function of a source module into
// a Bend program and its evaluation.  Each compilation populates a fresh book
// so a compiler may be reused.
type Compiler struct {
	cfg *config.Config
}

// NewCompiler creates a new compiler with the given configuration.
func NewCompiler(cfg *config.Config) *Compiler {
	return &Compiler{cfg: cfg}
}

// Compile compiles the function `fun` of the module into a program whose entry
// applies it to the given arguments.
func (c *Compiler) Compile(mod *ast.Module, fun string, args []marshal.Value) (*bend.Book, error) {
	l := c.newLowerer()

	if err := runPhase("Collecting", func() error { return c.collect(l, mod, fun) }); err != nil {
		return nil, err
	}

	var exprs []bend.Expr
	err := runPhase("Marshalling", func() error {
		exprs = make([]bend.Expr, len(args))
		for i, arg := range args {
			expr, err := marshal.ToExpr(l.Book(), arg)
			if err != nil {
				return err
			}

			exprs[i] = expr
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := runPhase("Synthesizing", func() error { return l.SynthesizeEntry(fun, exprs) }); err != nil {
		return nil, err
	}

	return l.Book(), nil
}

// CompileScript compiles the function `fun` of the module into a program whose
// entry reproduces the first call to it in the module's script.
func (c *Compiler) CompileScript(mod *ast.Module, fun string) (*bend.Book, error) {
	l := c.newLowerer()

	roots := lower.ScriptRoots(mod, fun)
	if err := runPhase("Collecting", func() error { return c.collect(l, mod, roots...) }); err != nil {
		return nil, err
	}

	if err := runPhase("Synthesizing", func() error { return l.SynthesizeFromScript(fun, mod) }); err != nil {
		return nil, err
	}

	return l.Book(), nil
}

// Run evaluates a compiled program with the configured evaluator.  A program
// which produces no value is an evaluation error.
func (c *Compiler) Run(ctx context.Context, book *bend.Book) (*eval.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var result *eval.Result
	err := runPhase("Evaluating", func() (err error) {
		result, err = c.Evaluator().Run(ctx, book, c.cfg.Runtime)
		if err == nil && result == nil {
			err = &report.EvalError{Message: "program produced no value"}
		}

		return
	})

	return result, err
}

// Evaluator returns the configured evaluator.
func (c *Compiler) Evaluator() eval.Evaluator {
	if c.cfg.Backend == config.BackendBend {
		return &eval.Command{Path: c.cfg.BendPath}
	}

	return &eval.Local{}
}

// Dump returns a structural dump of the types and definitions of a book.
func Dump(book *bend.Book) string {
	return pretty.Sprint(book.Adts()) + "\n" + pretty.Sprint(book.Defs())
}

// -----------------------------------------------------------------------------

func (c *Compiler) newLowerer() *lower.Lowerer {
	book := bend.NewBook()
	if c.cfg.Builtins {
		book = bend.NewBookWithBuiltins()
	}

	return lower.NewLowerer(book, c.cfg.LowerOptions())
}

// runPhase runs a single phase of the compilation.
func runPhase(name string, f func() error) error {
	report.BeginPhase(name)
	err := f()
	report.EndPhase(err == nil)
	return err
}

// collect collects the declarations of the module: only those reachable from
// the roots if pruning is enabled.
func (c *Compiler) collect(l *lower.Lowerer, mod *ast.Module, roots ...string) error {
	if c.cfg.Prune {
		return l.CollectReachable(mod, roots...)
	}

	return l.CollectDecls(mod)
}
