package bytecode

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ValueKind discriminates the two variants a Value can hold.
type ValueKind int

const (
	// ValueInt identifies a 64-bit signed integer. Booleans are encoded as
	// 0 (false) / 1 (true); unit is encoded as 0.
	ValueInt ValueKind = iota

	// ValueFuncPtr identifies an index into the function heap.
	ValueFuncPtr
)

// Value is a tagged union: either a 64-bit signed integer or a function
// pointer (a heap index). Runtime type mismatches (e.g. arithmetic on a
// FuncPtr) are fatal per spec.md §3: the IR is assumed well-typed, so any
// mismatch is a bug in an earlier stage.
type Value struct {
	Kind ValueKind
	Int  int64
	Ptr  int
}

// NewInt creates an Int value.
func NewInt(v int64) Value {
	return Value{Kind: ValueInt, Int: v}
}

// NewBool creates the Int encoding of a boolean: 1 for true, 0 for false.
func NewBool(b bool) Value {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}

// NewUnit creates the Int encoding of unit: always 0.
func NewUnit() Value {
	return NewInt(0)
}

// NewFuncPtr creates a FuncPtr value pointing at the given heap index.
func NewFuncPtr(index int) Value {
	return Value{Kind: ValueFuncPtr, Ptr: index}
}

// IsInt reports whether v holds an Int.
func (v Value) IsInt() bool {
	return v.Kind == ValueInt
}

// IsFuncPtr reports whether v holds a FuncPtr.
func (v Value) IsFuncPtr() bool {
	return v.Kind == ValueFuncPtr
}

// IsTruthy reports whether v, read as a boolean/Int, is non-zero. Panics if
// v is not an Int — per spec.md §3, that would be a runtime bug, and the
// caller (the VM) is responsible for turning that panic into an
// errs.Runtime.
func (v Value) IsTruthy() bool {
	if v.Kind != ValueInt {
		panic(fmt.Sprintf("bytecode: expected Int, got %v", v.Kind))
	}
	return v.Int != 0
}

// String renders v for tracing/disassembly/Print purposes.
func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueFuncPtr:
		return fmt.Sprintf("<function at 0x%x>", v.Ptr)
	default:
		return "<unknown value>"
	}
}

// ValuesEqual reports whether a and b are the same kind and value.
func ValuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValueInt:
		return a.Int == b.Int
	case ValueFuncPtr:
		return a.Ptr == b.Ptr
	default:
		return false
	}
}

//
// Serialization
//
// WriteOperand/DecodeOperand are the OpPush operand encoding, used by the
// compiler, the VM and the disassembler. There is no constant pool in this
// VM (every literal is encoded directly in the bytecode stream via OpPush),
// so Heap.Serialize/DeserializeHeap never encode Values themselves: they
// copy each Chunk's raw bytes, operands included.
//

const (
	tagInt     byte = 0
	tagFuncPtr byte = 1
)

// WriteOperand appends v's encoding as an OpPush operand: one tag byte
// followed by 8 bytes (little-endian int64, or a zero-extended FuncPtr).
func (v Value) WriteOperand(c *Chunk) {
	var tag byte
	var payload uint64
	switch v.Kind {
	case ValueInt:
		tag = tagInt
		payload = uint64(v.Int)
	case ValueFuncPtr:
		tag = tagFuncPtr
		payload = uint64(v.Ptr)
	default:
		panic(fmt.Sprintf("bytecode: cannot encode value of kind %v", v.Kind))
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], payload)
	c.Write(tag)
	c.Write(buf[:]...)
}

// DecodeOperand decodes a Value previously written by WriteOperand starting
// at src[0], and returns how many bytes it consumed (always 9).
func DecodeOperand(src []byte) (Value, int) {
	tag := src[0]
	payload := binary.LittleEndian.Uint64(src[1:9])
	switch tag {
	case tagInt:
		return NewInt(int64(payload)), 9
	case tagFuncPtr:
		return NewFuncPtr(int(payload)), 9
	default:
		panic(fmt.Sprintf("bytecode: unknown value tag %d", tag))
	}
}

// Serialize writes v to w in the same tag+payload shape used for OpPush
// operands.
func (v Value) Serialize(w io.Writer) error {
	c := &Chunk{}
	v.WriteOperand(c)
	_, err := w.Write(c.Code)
	return err
}

// DeserializeValue reads a Value previously written by Serialize.
func DeserializeValue(r io.Reader) (Value, error) {
	buf := make([]byte, 9)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Value{}, err
	}
	v, _ := DecodeOperand(buf)
	return v, nil
}
