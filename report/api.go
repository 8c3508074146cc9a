package report

import (
	"errors"
	"fmt"
	"os"
)

// ReportICE reports an internal compiler error.  These are errors that
// specifically result from a bug or unexpected condition occurring within the
// compiler.  They are always displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error and exits.  These are expected errors that
// result from invalid configuration: a missing `bend` executable, an
// unreadable config file, etc.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// ReportError reports an error returned by one of the compilation phases.
// Compile errors are displayed with their position and source text; all other
// errors are displayed as tagged messages.  The srcPath may be empty.
func ReportError(srcPath string, err error) {
	if rep.logLevel == LogLevelSilent {
		return
	}

	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true
	displayEndPhase(false)

	var cerr *CompileError
	var eerr *EvalError
	switch {
	case errors.As(err, &cerr):
		displayCompileError(srcPath, cerr)
	case errors.As(err, &eerr):
		PrintErrorMessage("Evaluation Error", eerr)
	default:
		PrintErrorMessage("Error", err)
	}
}

// ReportWarning reports a warning.
func ReportWarning(tag, message string, args ...interface{}) {
	if rep.logLevel > LogLevelError {
		rep.m.Lock()
		defer rep.m.Unlock()

		PrintWarningMessage(tag, fmt.Sprintf(message, args...))
	}
}

// -----------------------------------------------------------------------------
// The phase functions below only display when the log level is verbose.

// BeginPhase reports the beginning of a compilation phase.
func BeginPhase(phase string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayBeginPhase(phase)
	}
}

// EndPhase reports the end of the current compilation phase.
func EndPhase(success bool) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayEndPhase(success)
	}
}
