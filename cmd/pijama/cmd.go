package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "pijama",
	SilenceUsage: true,
	Short:        "pijama compiles and runs IR programs for a small functional language",
	Long: `pijama is the code generator and stack-based virtual machine for a
small, statically typed, strictly evaluated functional language. It reads
programs encoded as a direct TOML IR tree (see ir/tomlir), compiles them to
bytecode, and executes them.`,
}

func init() {
	rootCmd.AddCommand(runCmd, buildCmd, execCmd, disassembleCmd)
}
