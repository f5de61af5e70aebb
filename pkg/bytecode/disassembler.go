package bytecode

import (
	"fmt"
	"io"
)

// DisassembleChunk disassembles every instruction in chunk to out, prefixed
// with name.
func DisassembleChunk(chunk *Chunk, name string, out io.Writer) {
	fmt.Fprintf(out, "== %v ==\n", name)
	for offset := 0; offset < chunk.Len(); {
		offset = DisassembleInstruction(chunk, out, offset)
	}
}

// DisassembleInstruction disassembles the instruction at the given offset of
// chunk, writes it to out, and returns the offset of the next instruction.
func DisassembleInstruction(chunk *Chunk, out io.Writer, offset int) int {
	fmt.Fprintf(out, "%05d ", offset)

	op := OpCode(chunk.Code[offset])

	switch op {
	case OpPush:
		value, consumed := DecodeOperand(chunk.Code[offset+1:])
		fmt.Fprintf(out, "%-14s %v\n", op, value)
		return offset + 1 + consumed

	case OpJumpIfTrue, OpJumpIfFalse, OpSkip:
		delta := DecodeUInt31(chunk.Code[offset+1:])
		target := offset + 1 + 4 + delta
		fmt.Fprintf(out, "%-14s %d -> %d\n", op, delta, target)
		return offset + 5

	case OpLocal, OpCall:
		n := DecodeUInt31(chunk.Code[offset+1:])
		fmt.Fprintf(out, "%-14s %d\n", op, n)
		return offset + 5

	default:
		fmt.Fprintf(out, "%v\n", op)
		return offset + 1
	}
}
