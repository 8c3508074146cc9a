package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"benda/ast"
	"benda/bend"
	"benda/config"
	"benda/marshal"
	"benda/report"
)

func loadModule(t *testing.T, name string) *ast.Module {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	mod, err := ast.Decode(f)
	if err != nil {
		t.Fatalf("decoding %s: %v", name, err)
	}

	return mod
}

func mustRun(t *testing.T, c *Compiler, book *bend.Book) string {
	t.Helper()

	result, err := c.Run(context.Background(), book)
	if err != nil {
		t.Fatalf("Run: %v\nprogram:\n%s", err, book)
	}

	return result.Term.String()
}

func compileAndRun(t *testing.T, file, fun string, args ...marshal.Value) string {
	t.Helper()

	c := NewCompiler(config.Default())
	book, err := c.Compile(loadModule(t, file), fun, args)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	return mustRun(t, c, book)
}

func scriptAndRun(t *testing.T, file, fun string) string {
	t.Helper()

	c := NewCompiler(config.Default())
	book, err := c.CompileScript(loadModule(t, file), fun)
	if err != nil {
		t.Fatalf("CompileScript: %v", err)
	}

	return mustRun(t, c, book)
}

// -----------------------------------------------------------------------------

func TestCompileAdd(t *testing.T) {
	if got := compileAndRun(t, "add.json", "add", marshal.U24(3), marshal.U24(4)); got != "7" {
		t.Errorf("add(3, 4) = %s, want 7", got)
	}

	if got := scriptAndRun(t, "add.json", "add"); got != "7" {
		t.Errorf("script add = %s, want 7", got)
	}
}

func TestCompileRecordArgument(t *testing.T) {
	p := &marshal.Record{Tag: "Point", Fields: map[string]marshal.Value{
		"x": marshal.U24(1),
		"y": marshal.U24(2),
	}}

	if got := compileAndRun(t, "point.json", "sum_point", p); got != "3" {
		t.Errorf("sum_point(Point(1, 2)) = %s, want 3", got)
	}

	if got := scriptAndRun(t, "point.json", "sum_point"); got != "3" {
		t.Errorf("script sum_point = %s, want 3", got)
	}
}

func TestCompileUnion(t *testing.T) {
	circle := &marshal.Record{Tag: "Circle", Fields: map[string]marshal.Value{"r": marshal.U24(2)}}
	if got := compileAndRun(t, "shape.json", "area", circle); got != "12" {
		t.Errorf("area(Circle(2)) = %s, want 12", got)
	}

	if got := scriptAndRun(t, "shape.json", "area"); got != "16" {
		t.Errorf("script area = %s, want 16", got)
	}
}

func TestCompileSwitch(t *testing.T) {
	if got := scriptAndRun(t, "fib.json", "fib"); got != "55" {
		t.Errorf("fib(10) = %s, want 55", got)
	}

	if got := compileAndRun(t, "fib.json", "fib", marshal.U24(15)); got != "610" {
		t.Errorf("fib(15) = %s, want 610", got)
	}
}

func TestCompileArityMismatch(t *testing.T) {
	c := NewCompiler(config.Default())
	_, err := c.Compile(loadModule(t, "add.json"), "add", []marshal.Value{marshal.U24(1), marshal.U24(2), marshal.U24(3)})

	var aerr *marshal.ArityError
	if !errors.As(err, &aerr) {
		t.Fatalf("got %v, want arity error", err)
	}

	if aerr.Want != 2 || aerr.Got != 3 {
		t.Errorf("arity error = %+v", aerr)
	}
}

func TestCompileMissingFunction(t *testing.T) {
	c := NewCompiler(config.Default())
	_, err := c.Compile(loadModule(t, "add.json"), "sub", []marshal.Value{marshal.U24(1)})

	var cerr *report.CompileError
	if !errors.As(err, &cerr) || cerr.Kind != report.MissingEntry {
		t.Fatalf("got %v, want missing entry error", err)
	}
}

func TestCompilePrune(t *testing.T) {
	if got := compileAndRun(t, "prune.json", "double", marshal.U24(21)); got != "42" {
		t.Errorf("double(21) = %s, want 42", got)
	}

	cfg := config.Default()
	cfg.Prune = false

	_, err := NewCompiler(cfg).Compile(loadModule(t, "prune.json"), "double", []marshal.Value{marshal.U24(21)})

	var cerr *report.CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want compile error", err)
	}

	if cerr.Kind != report.Unsupported || !strings.Contains(cerr.Message, "While") {
		t.Errorf("error = %v", cerr)
	}

	if cerr.Span == nil || cerr.Span.String() != "6:5" {
		t.Errorf("span = %v, want 6:5", cerr.Span)
	}
}

func TestCompileIsRepeatable(t *testing.T) {
	c := NewCompiler(config.Default())
	mod := loadModule(t, "shape.json")

	for _, n := range []marshal.U24{1, 2} {
		arg := &marshal.Record{Tag: "Shape/Square", Fields: map[string]marshal.Value{"s": n}}
		book, err := c.Compile(mod, "area", []marshal.Value{arg})
		if err != nil {
			t.Fatalf("compile %d: %v", n, err)
		}

		if got, want := mustRun(t, c, book), (n * n).String(); got != want {
			t.Errorf("area(Square(%d)) = %s, want %s", n, got, want)
		}
	}
}

func TestDump(t *testing.T) {
	c := NewCompiler(config.Default())
	book, err := c.Compile(loadModule(t, "point.json"), "sum_point", []marshal.Value{
		&marshal.Record{Tag: "Point", Fields: map[string]marshal.Value{"x": marshal.U24(1), "y": marshal.U24(2)}},
	})
	if err != nil {
		t.Fatal(err)
	}

	dump := Dump(book)
	for _, want := range []string{"Point", "sum_point", "arg0"} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump does not mention %q:\n%s", want, dump)
		}
	}
}

func TestRunNoValue(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "bend")
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho done\n"), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Backend = config.BackendBend
	cfg.BendPath = path

	c := NewCompiler(cfg)
	book, err := c.Compile(loadModule(t, "add.json"), "add", []marshal.Value{marshal.U24(3), marshal.U24(4)})
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Run(context.Background(), book)

	var eerr *report.EvalError
	if !errors.As(err, &eerr) || !strings.Contains(eerr.Message, "no value") {
		t.Errorf("got %v, want no value error", err)
	}
}
