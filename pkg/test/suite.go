// Package test runs the TOML-driven end-to-end test suite under testdata:
// each case directory holds a case.toml describing which .pij.toml program
// to compile and run, and the stdout lines it must produce.
package test

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/christianpoveda/pijama/pkg/compiler"
	"github.com/christianpoveda/pijama/pkg/errs"
	"github.com/christianpoveda/pijama/pkg/ir/tomlir"
	"github.com/christianpoveda/pijama/pkg/vm"
)

// config mirrors a case.toml file.
type config struct {
	Program string
	Output  []string
}

// ExecuteSuite runs every case.toml found under suitePath.
func ExecuteSuite(suitePath string) error {
	return filepath.Walk(suitePath, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || path.Base(p) != "case.toml" {
			return nil
		}
		return runCase(p)
	})
}

// runCase compiles and runs the program named by the case.toml at
// configPath, and checks its stdout against the expected output lines.
func runCase(configPath string) error {
	caseDir := path.Dir(configPath)

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return errs.NewToolError("%v: %v", configPath, err)
	}

	var cfg config
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return errs.NewToolError("%v: %v", configPath, err)
	}

	programPath := path.Join(caseDir, cfg.Program)
	f, err := os.Open(programPath)
	if err != nil {
		return errs.NewToolError("%v: %v", programPath, err)
	}
	defer f.Close()

	body, mainSelf, types, err := tomlir.Load(f)
	if err != nil {
		return fmt.Errorf("%v: %w", caseDir, err)
	}

	heap, err := compiler.Compile(mainSelf, body, types, 0)
	if err != nil {
		return fmt.Errorf("%v: %w", caseDir, err)
	}

	var out bytes.Buffer
	theVM := vm.New(&out)
	if err := theVM.Interpret(heap); err != nil {
		return fmt.Errorf("%v: %w", caseDir, err)
	}

	got := splitLines(out.String())
	if len(got) != len(cfg.Output) {
		return fmt.Errorf("%v: expected %d output line(s), got %d: %q", caseDir, len(cfg.Output), len(got), out.String())
	}
	for i, want := range cfg.Output {
		if got[i] != want {
			return fmt.Errorf("%v: line %d: expected %q, got %q", caseDir, i, want, got[i])
		}
	}
	return nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
