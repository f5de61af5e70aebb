package bytecode

import (
	"encoding/binary"
	"math"
)

// A Chunk is the bytecode for a single Function. The compiler appends to it
// (and patches previously-emitted jump operands by index); the VM reads it
// sequentially, following relative jumps.
type Chunk struct {
	// Code is the opcode stream, interleaved with the fixed-width operands
	// some opcodes carry.
	Code []uint8
}

// Len returns the number of bytes currently in the chunk.
func (c *Chunk) Len() int {
	return len(c.Code)
}

// Write appends one or more raw bytes to the chunk and returns the offset at
// which the first one landed.
func (c *Chunk) Write(bytes ...byte) int {
	pos := len(c.Code)
	c.Code = append(c.Code, bytes...)
	return pos
}

// EncodeUInt31 encodes an unsigned 31-bit integer into the first four bytes
// of dst. Panics if v does not fit into 31 bits. Used for every fixed-width
// opcode operand (local index, argument count, jump offset).
func EncodeUInt31(dst []byte, v int) {
	if v < 0 || v > math.MaxInt32 {
		panic("bytecode: value does not fit into 31 bits")
	}
	binary.LittleEndian.PutUint32(dst, uint32(v))
}

// DecodeUInt31 decodes an unsigned 31-bit integer from the first four bytes
// of src. Panics if the value read does not fit into 31 bits.
func DecodeUInt31(src []byte) int {
	v := binary.LittleEndian.Uint32(src)
	if v > math.MaxInt32 {
		panic("bytecode: value does not fit into 31 bits")
	}
	return int(v)
}

// WriteUInt31 appends a 4-byte placeholder and immediately encodes v into
// it, returning the offset of the first of the four bytes.
func (c *Chunk) WriteUInt31(v int) int {
	pos := c.Write(0, 0, 0, 0)
	EncodeUInt31(c.Code[pos:], v)
	return pos
}

// PatchUInt31 overwrites the 4-byte operand at offset pos (as returned by
// WriteUInt31) with a new value. Used exclusively to back-patch jump
// offsets once the jump target is known.
func (c *Chunk) PatchUInt31(pos int, v int) {
	EncodeUInt31(c.Code[pos:], v)
}
