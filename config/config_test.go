package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"benda/common"
	"benda/eval"
	"benda/report"

	"github.com/kr/pretty"
)

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(`
[compile]
switch-module = "bd"
switch-function = "sw"
dataclass-decorator = "record"
builtins = false
prune = false

[runtime]
backend = "bend"
bend-path = "/opt/bend/bin/bend"
runtime = "cuda"
timeout = "2m"

[log]
level = "warn"
`))
	if err != nil {
		t.Fatal(err)
	}

	want := &Config{
		SwitchModule:       "bd",
		SwitchFunction:     "sw",
		DataclassDecorator: "record",
		Builtins:           false,
		Prune:              false,
		Backend:            BackendBend,
		BendPath:           "/opt/bend/bin/bend",
		Runtime:            eval.RuntimeCuda,
		Timeout:            2 * time.Minute,
		LogLevel:           report.LogLevelWarn,
	}

	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("config mismatch:\n%s", strings.Join(pretty.Diff(want, cfg), "\n"))
	}

	opts := cfg.LowerOptions()
	if opts.SwitchModule != "bd" || opts.SwitchFunction != "sw" || opts.Dataclass != "record" {
		t.Errorf("lower options = %+v", opts)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[runtime]\nruntime = \"c\"\n"))
	if err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.Runtime = eval.RuntimeC

	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("config mismatch:\n%s", strings.Join(pretty.Diff(want, cfg), "\n"))
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"[runtime]\nbackend = \"wasm\"\n": "unknown backend",
		"[runtime]\nruntime = \"metal\"\n": "unknown runtime",
		"[runtime]\ntimeout = \"soon\"\n":  "invalid timeout",
		"[runtime]\ntimeout = \"-1s\"\n":   "must be positive",
		"[log]\nlevel = \"loud\"\n":        "loud",
		"[compile\n":                       "",
	}

	for src, fragment := range tests {
		_, err := Parse([]byte(src))
		if err == nil || !strings.Contains(err.Error(), fragment) {
			t.Errorf("%q: got %v, want error containing %q", src, err, fragment)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("missing config file: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("missing config file did not yield defaults")
	}

	path := filepath.Join(dir, common.ConfigFileName)
	if err := os.WriteFile(path, []byte("[compile]\nprune = false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prune {
		t.Errorf("prune option was not loaded")
	}

	if err := os.WriteFile(path, []byte("[runtime]\nbackend = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil || !strings.Contains(err.Error(), common.ConfigFileName) {
		t.Errorf("got %v, want error naming the config file", err)
	}
}
