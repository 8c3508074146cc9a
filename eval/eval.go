package eval

import (
	"context"
	"fmt"

	"benda/bend"
)

// Runtime selects how the evaluator executes a program.  The selection has no
// effect on the program itself.
type Runtime int

// Enumeration of runtimes.
const (
	RuntimeRust Runtime = iota // Native runtime.
	RuntimeC                   // Natively compiled runtime.
	RuntimeCuda                // GPU-accelerated runtime.
)

var runtimeNames = [...]string{"rust", "c", "cuda"}

func (rt Runtime) String() string {
	return runtimeNames[rt]
}

// Command returns the name of the evaluator subcommand running the runtime.
func (rt Runtime) Command() string {
	switch rt {
	case RuntimeC:
		return "run-c"
	case RuntimeCuda:
		return "run-cu"
	default:
		return "run-rs"
	}
}

// ParseRuntime parses the name of a runtime.
func ParseRuntime(name string) (Runtime, error) {
	for i, rname := range runtimeNames {
		if rname == name {
			return Runtime(i), nil
		}
	}

	return 0, fmt.Errorf("unknown runtime `%s`", name)
}

// Result is the outcome of a successful evaluation.
type Result struct {
	// Term is the normal form of the program's entry definition.
	Term bend.Expr

	// Output is the raw output of the evaluator.
	Output string

	// Diagnostics are any warnings reported by the evaluator.
	Diagnostics []string
}

// Evaluator runs a compiled program.  Run returns a nil result if the program
// ran but produced no value.  Failures reported by the evaluator itself are
// returned as *report.EvalError.
type Evaluator interface {
	Run(ctx context.Context, book *bend.Book, rt Runtime) (*Result, error)
}
