package compiler

import "github.com/christianpoveda/pijama/pkg/bytecode"

// emit appends a single, operand-less opcode.
func (c *compiler) emit(op bytecode.OpCode) {
	c.chunk.Write(byte(op))
}

// emitUInt31 appends an opcode followed by a 4-byte unsigned operand (a
// local index or an argument count).
func (c *compiler) emitUInt31(op bytecode.OpCode, v int) {
	c.chunk.Write(byte(op))
	c.chunk.WriteUInt31(v)
}

// emitPush appends an OpPush carrying v's tag+payload encoding.
func (c *compiler) emitPush(v bytecode.Value) {
	c.chunk.Write(byte(bytecode.OpPush))
	v.WriteOperand(c.chunk)
}

// emitJump appends op followed by a 4-byte placeholder offset, and returns
// the offset of that placeholder so a later patchJump can fill it in. Used
// for OpJumpIfTrue, OpJumpIfFalse, and OpSkip: none of their targets are
// known until the jumped-over region has been fully compiled (spec.md §9,
// "Jump patching").
func (c *compiler) emitJump(op bytecode.OpCode) int {
	c.chunk.Write(byte(op))
	return c.chunk.WriteUInt31(0)
}

// patchJump rewrites the placeholder at pos (as returned by emitJump) with
// the actual forward offset: the number of bytes between the instruction
// immediately following the placeholder and the current end of the chunk.
func (c *compiler) patchJump(pos int) {
	offset := c.chunk.Len() - (pos + 4)
	c.chunk.PatchUInt31(pos, offset)
}
