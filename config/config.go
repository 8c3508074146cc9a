package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"benda/common"
	"benda/eval"
	"benda/lower"
	"benda/report"

	"github.com/pelletier/go-toml"
)

// Enumeration of evaluator backends.
const (
	BackendLocal = "local"
	BackendBend  = "bend"
)

// Config is the compiler configuration.
type Config struct {
	// The source conventions recognized by the lowerer.
	SwitchModule       string
	SwitchFunction     string
	DataclassDecorator string

	// Builtins indicates whether the built-in Bend types are preloaded.
	Builtins bool

	// Prune indicates whether only the functions reachable from the compiled
	// function are lowered.
	Prune bool

	// Backend is the evaluator backend: one of the enumerated backends.
	Backend  string
	BendPath string
	Runtime  eval.Runtime
	Timeout  time.Duration

	LogLevel int
}

// Default returns the default configuration.
func Default() *Config {
	opts := lower.DefaultOptions()

	return &Config{
		SwitchModule:       opts.SwitchModule,
		SwitchFunction:     opts.SwitchFunction,
		DataclassDecorator: opts.Dataclass,
		Builtins:           true,
		Prune:              true,
		Backend:            BackendLocal,
		BendPath:           "bend",
		Runtime:            eval.RuntimeRust,
		Timeout:            30 * time.Second,
		LogLevel:           report.LogLevelVerbose,
	}
}

// LowerOptions returns the lowering options of the configuration.
func (cfg *Config) LowerOptions() lower.Options {
	return lower.Options{
		SwitchModule:   cfg.SwitchModule,
		SwitchFunction: cfg.SwitchFunction,
		Dataclass:      cfg.DataclassDecorator,
	}
}

// -----------------------------------------------------------------------------

// tomlConfigFile represents the config file as it is encoded in TOML.  Every
// field is optional.
type tomlConfigFile struct {
	Compile *tomlCompile `toml:"compile"`
	Runtime *tomlRuntime `toml:"runtime"`
	Log     *tomlLog     `toml:"log"`
}

type tomlCompile struct {
	SwitchModule       string `toml:"switch-module"`
	SwitchFunction     string `toml:"switch-function"`
	DataclassDecorator string `toml:"dataclass-decorator"`
	Builtins           *bool  `toml:"builtins"`
	Prune              *bool  `toml:"prune"`
}

type tomlRuntime struct {
	Backend  string `toml:"backend"`
	BendPath string `toml:"bend-path"`
	Runtime  string `toml:"runtime"`
	Timeout  string `toml:"timeout"`
}

type tomlLog struct {
	Level string `toml:"level"`
}

// Load loads the config file in the directory `dir`.  If there is no config
// file, the default configuration is returned.
func Load(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, common.ConfigFileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// LoadFile loads a config file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(buff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses the contents of a config file.  Unset options keep their
// default values.
func Parse(buff []byte) (*Config, error) {
	tcf := &tomlConfigFile{}
	if err := toml.Unmarshal(buff, tcf); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := validateConfig(cfg, tcf); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks the decoded config file and moves its options over to
// the configuration.
func validateConfig(cfg *Config, tcf *tomlConfigFile) error {
	if c := tcf.Compile; c != nil {
		setString(&cfg.SwitchModule, c.SwitchModule)
		setString(&cfg.SwitchFunction, c.SwitchFunction)
		setString(&cfg.DataclassDecorator, c.DataclassDecorator)

		if c.Builtins != nil {
			cfg.Builtins = *c.Builtins
		}

		if c.Prune != nil {
			cfg.Prune = *c.Prune
		}
	}

	if r := tcf.Runtime; r != nil {
		switch r.Backend {
		case "":
		case BackendLocal, BackendBend:
			cfg.Backend = r.Backend
		default:
			return fmt.Errorf("unknown backend `%s`", r.Backend)
		}

		setString(&cfg.BendPath, r.BendPath)

		if r.Runtime != "" {
			rt, err := eval.ParseRuntime(r.Runtime)
			if err != nil {
				return err
			}

			cfg.Runtime = rt
		}

		if r.Timeout != "" {
			timeout, err := time.ParseDuration(r.Timeout)
			if err != nil {
				return fmt.Errorf("invalid timeout: %w", err)
			} else if timeout <= 0 {
				return errors.New("timeout must be positive")
			}

			cfg.Timeout = timeout
		}
	}

	if l := tcf.Log; l != nil && l.Level != "" {
		level, err := report.LogLevelFromName(l.Level)
		if err != nil {
			return err
		}

		cfg.LogLevel = level
	}

	return nil
}

func setString(dest *string, value string) {
	if value != "" {
		*dest = value
	}
}
