package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/christianpoveda/pijama/pkg/bytecode"
)

var disassembleCmd = &cobra.Command{
	Use:   "disassemble <pbc-file>",
	Short: "Disassembles every function in a .pbc bytecode artifact",
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		heap := loadHeapFile(args[0])

		for i := 0; i < heap.Len(); i++ {
			fn := heap.Get(i)
			name := fmt.Sprintf("function %d (arity %d)", i, fn.Arity)
			bytecode.DisassembleChunk(fn.Chunk, name, os.Stdout)
		}
	},
}
