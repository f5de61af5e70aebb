package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/christianpoveda/pijama/pkg/vm"
)

var execTrace bool

var execCmd = &cobra.Command{
	Use:   "exec <pbc-file>",
	Short: "Runs a previously built .pbc bytecode artifact",
	Long:  `Runs a previously built .pbc bytecode artifact, without recompiling.`,
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		heap := loadHeapFile(args[0])

		theVM := vm.New(os.Stdout)
		theVM.Trace = cfg.Trace || execTrace
		err := theVM.Interpret(heap)
		reportAndExit(err)
	},
}

func init() {
	execCmd.Flags().BoolVar(&execTrace, "trace", false, "trace every instruction dispatch to stderr")
}
