// Package config loads the pijama.toml project configuration file the CLI
// reads before running, building, or executing a program.
package config

import (
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/christianpoveda/pijama/pkg/errs"
)

// Config is the decoded shape of a pijama.toml file. Every field has a
// sensible zero-value default, so an empty or missing file is valid.
type Config struct {
	// Trace makes `run`/`exec` enable vm.VM.Trace by default.
	Trace bool `toml:"trace"`

	// MaxFunctions caps the number of heap slots a single compilation may
	// allocate; 0 means unbounded. Exists so pathological or runaway IR
	// documents (e.g. a malformed generator emitting an Abs in a loop)
	// have a configurable circuit breaker, mirroring the teacher's own
	// practice of surfacing otherwise-implicit resource limits as config.
	MaxFunctions int `toml:"max_functions"`
}

// Default returns the configuration used when no pijama.toml is present.
func Default() Config {
	return Config{}
}

// Load reads and decodes the pijama.toml file at path. A missing file is
// not an error: it yields Default().
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errs.NewToolError("opening %v: %v", path, err)
	}
	defer f.Close()

	return decode(f)
}

func decode(r io.Reader) (Config, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errs.NewToolError("reading config: %v", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, errs.NewToolError("decoding config: %v", err)
	}
	return cfg, nil
}
