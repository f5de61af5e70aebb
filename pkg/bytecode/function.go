package bytecode

import (
	"fmt"
	"io"

	"github.com/christianpoveda/pijama/pkg/romutil"
)

// Function is the compiled form of a lambda (or of the top-level main
// term): a parameter count and the chunk that implements its body. Once
// finalized, a Function is never mutated again — except heap slot 0, which
// is overwritten exactly once, at the end of compilation, to install the
// finalized main.
type Function struct {
	// Arity is the number of formal parameters.
	Arity int

	// Chunk is this function's bytecode.
	Chunk *Chunk
}

// Heap is the function heap: an ordered, append-only collection of
// Functions indexed by a stable small-integer handle (the FuncPtr). Index 0
// is reserved for the top-level main function. The heap grows monotonically
// during compilation and never shrinks.
type Heap struct {
	functions []*Function
}

// NewHeap creates a Heap with slot 0 already reserved for main (as an empty
// placeholder Function, to be finalized later by the compiler).
func NewHeap() *Heap {
	h := &Heap{}
	h.functions = append(h.functions, &Function{Chunk: &Chunk{}})
	return h
}

// Reserve appends a new placeholder Function of the given arity and returns
// its FuncPtr. Used by the compiler when it encounters an Abs: the slot is
// reserved before the nested body is compiled, so the body can refer to
// (i.e. recurse into) its own FuncPtr.
func (h *Heap) Reserve(arity int) int {
	h.functions = append(h.functions, &Function{Arity: arity, Chunk: &Chunk{}})
	return len(h.functions) - 1
}

// Set finalizes the Function at the given index. Only ever called once per
// index (including index 0, the reserved main slot).
func (h *Heap) Set(index int, fn *Function) {
	h.functions[index] = fn
}

// Get returns the Function at the given FuncPtr. Panics if ptr is
// out-of-range, which (given a well-formed program) can only happen because
// of a bug upstream of the VM.
func (h *Heap) Get(ptr int) *Function {
	if ptr < 0 || ptr >= len(h.functions) {
		panic(fmt.Sprintf("bytecode: function pointer %d out of range", ptr))
	}
	return h.functions[ptr]
}

// Len returns the number of functions in the heap.
func (h *Heap) Len() int {
	return len(h.functions)
}

//
// Serialization
//
// Produces the .pbc artifact the `build` command writes and `exec` loads.
// No debug info is serialized: nothing upstream of the core provides source
// positions, so there is nothing to round-trip beyond arity + bytecode.
//

// Serialize writes h to w: a function count, then for each function its
// arity and raw chunk bytes, all as little-endian fields.
func (h *Heap) Serialize(w io.Writer) error {
	if err := romutil.SerializeU32(w, uint32(len(h.functions))); err != nil {
		return err
	}
	for _, fn := range h.functions {
		if err := romutil.SerializeU32(w, uint32(fn.Arity)); err != nil {
			return err
		}
		if err := romutil.SerializeU32(w, uint32(len(fn.Chunk.Code))); err != nil {
			return err
		}
		if _, err := w.Write(fn.Chunk.Code); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeHeap reads a Heap previously written by Serialize.
func DeserializeHeap(r io.Reader) (*Heap, error) {
	count, err := romutil.DeserializeU32(r)
	if err != nil {
		return nil, err
	}

	h := &Heap{functions: make([]*Function, 0, count)}
	for i := uint32(0); i < count; i++ {
		arity, err := romutil.DeserializeU32(r)
		if err != nil {
			return nil, err
		}
		codeLen, err := romutil.DeserializeU32(r)
		if err != nil {
			return nil, err
		}
		code := make([]byte, codeLen)
		if _, err := io.ReadFull(r, code); err != nil {
			return nil, err
		}
		h.functions = append(h.functions, &Function{
			Arity: int(arity),
			Chunk: &Chunk{Code: code},
		})
	}
	return h, nil
}
