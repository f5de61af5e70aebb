package main

import (
	"os"

	"github.com/christianpoveda/pijama/pkg/bytecode"
	"github.com/christianpoveda/pijama/pkg/compiler"
	"github.com/christianpoveda/pijama/pkg/config"
	"github.com/christianpoveda/pijama/pkg/errs"
	"github.com/christianpoveda/pijama/pkg/ir/tomlir"
)

// loadConfig loads ./pijama.toml, falling back to config.Default() if it
// doesn't exist.
func loadConfig() config.Config {
	cfg, err := config.Load("pijama.toml")
	reportAndExitOnError(err)
	return cfg
}

// compileFromIRFile loads and compiles a .pij.toml document, exiting the
// process on any error.
func compileFromIRFile(path string, cfg config.Config) *bytecode.Heap {
	f, err := os.Open(path)
	if err != nil {
		reportAndExit(errs.NewToolError("opening %v: %v", path, err))
	}
	defer f.Close()

	body, mainSelf, types, err := tomlir.Load(f)
	reportAndExitOnError(err)

	heap, err := compiler.Compile(mainSelf, body, types, cfg.MaxFunctions)
	reportAndExitOnError(err)

	return heap
}

// loadHeapFile deserializes a .pbc file previously produced by `build`.
func loadHeapFile(path string) *bytecode.Heap {
	f, err := os.Open(path)
	if err != nil {
		reportAndExit(errs.NewToolError("opening %v: %v", path, err))
	}
	defer f.Close()

	heap, err := bytecode.DeserializeHeap(f)
	if err != nil {
		reportAndExit(errs.NewToolError("reading %v: %v", path, err))
	}
	return heap
}
