package report

import (
	"errors"
	"fmt"
	"testing"
)

func raiseUnsupported() (err error) {
	defer Catch(&err)

	panic(Raise(&TextSpan{StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 9}, Unsupported, "unsupported statement: %s", "While"))
}

func TestCatchConvertsCompileError(t *testing.T) {
	err := raiseUnsupported()
	if err == nil {
		t.Fatalf("expected an error")
	}

	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CompileError, got %T", err)
	}

	if cerr.Kind != Unsupported {
		t.Errorf("kind = %v, want %v", cerr.Kind, Unsupported)
	}

	if got, want := err.Error(), "3:5: unsupported statement: While"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCatchPropagatesOtherPanics(t *testing.T) {
	defer func() {
		if x := recover(); x != "boom" {
			t.Fatalf("recovered %v, want boom", x)
		}
	}()

	func() (err error) {
		defer Catch(&err)
		panic("boom")
	}()

	t.Fatalf("panic was swallowed")
}

func TestEvalErrorWrapping(t *testing.T) {
	err := fmt.Errorf("running main: %w", &EvalError{
		Message:     "evaluator exited with status 1",
		Diagnostics: []string{"In definition 'main':", "  Unbound variable 'y'."},
	})

	var eerr *EvalError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected *EvalError in chain")
	}

	if len(eerr.Diagnostics) != 2 {
		t.Errorf("diagnostics = %v", eerr.Diagnostics)
	}
}

func TestLogLevelFromName(t *testing.T) {
	for i, name := range LogLevelNames {
		level, err := LogLevelFromName(name)
		if err != nil || level != i {
			t.Errorf("LogLevelFromName(%q) = %d, %v", name, level, err)
		}
	}

	if _, err := LogLevelFromName("loud"); err == nil {
		t.Errorf("expected error for unknown log level")
	}
}
