package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/christianpoveda/pijama/pkg/vm"
)

var runTrace bool

var runCmd = &cobra.Command{
	Use:   "run <ir-file>",
	Short: "Compiles and runs a .pij.toml IR document in one step",
	Long:  `Compiles and runs a .pij.toml IR document in one step, without producing a .pbc artifact.`,
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		heap := compileFromIRFile(args[0], cfg)

		theVM := vm.New(os.Stdout)
		theVM.Trace = cfg.Trace || runTrace
		err := theVM.Interpret(heap)
		reportAndExit(err)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "trace every instruction dispatch to stderr")
}
