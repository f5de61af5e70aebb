package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/christianpoveda/pijama/pkg/errs"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build <ir-file>",
	Short: "Compiles a .pij.toml IR document to a .pbc bytecode artifact",
	Long:  `Compiles a .pij.toml IR document to a .pbc bytecode artifact, which can later be run with "pijama exec" without recompiling.`,
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		heap := compileFromIRFile(args[0], cfg)

		out := buildOutput
		if out == "" {
			out = "out.pbc"
		}

		f, plainErr := os.Create(out)
		if plainErr != nil {
			reportAndExit(errs.NewToolError("creating %v: %v", out, plainErr))
		}
		defer f.Close()

		if err := heap.Serialize(f); err != nil {
			reportAndExit(errs.NewToolError("writing %v: %v", out, err))
		}
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output .pbc path (default out.pbc)")
}
