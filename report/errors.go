package report

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a compile error.
type ErrorKind int

// Enumeration of compile error kinds.
const (
	// Unsupported marks a source construct outside the compiled subset.
	Unsupported ErrorKind = iota

	// SymbolConflict marks a conflicting or illegal redefinition in the book.
	SymbolConflict

	// MissingEntry marks a compiled function with no discoverable invocation.
	MissingEntry
)

func (kind ErrorKind) String() string {
	switch kind {
	case Unsupported:
		return "Unsupported"
	case SymbolConflict:
		return "Symbol"
	case MissingEntry:
		return "Entry"
	}

	return "Unknown"
}

// CompileError is an error in the input program.  A compile error is always
// fatal for the compilation that raised it: no partial book is produced.
type CompileError struct {
	// The kind of the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.  This may be nil if the erroneous
	// node carried no position information.
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	if ce.Span == nil {
		return ce.Message
	}

	return ce.Span.String() + ": " + ce.Message
}

// Raise creates a new compile error.  It is intended to be used as the
// argument to `panic` inside a compilation pass.
func Raise(span *TextSpan, kind ErrorKind, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// Catch catches any compile error thrown by a `panic` during a pass and stores
// it into the error pointed to by `err`.  Any other panic value is a compiler
// bug and is propagated.
// NB: This function must ALWAYS be deferred.
func Catch(err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
		} else {
			panic(x)
		}
	}
}

// -----------------------------------------------------------------------------

// EvalError is an error reported by the evaluator: the program failed to
// normalize or produced no value.  Unlike compile errors, these are expected to
// be reported to the end user rather than treated as bugs.
type EvalError struct {
	// The error message.
	Message string

	// The evaluator's own diagnostics, if any.
	Diagnostics []string
}

func (ee *EvalError) Error() string {
	if len(ee.Diagnostics) == 0 {
		return ee.Message
	}

	return ee.Message + ":\n" + strings.Join(ee.Diagnostics, "\n")
}
