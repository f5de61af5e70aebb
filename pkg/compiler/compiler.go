// Package compiler translates a closed ir.Term tree into bytecode: one
// bytecode.Function per source lambda, plus one for the top-level program
// (main). See spec.md §4.1.
package compiler

import (
	"fmt"

	"github.com/christianpoveda/pijama/pkg/bytecode"
	"github.com/christianpoveda/pijama/pkg/errs"
	"github.com/christianpoveda/pijama/pkg/ir"
)

// compiler is the state needed to emit one Function's bytecode. A new
// compiler is created for every lambda (and for main): it owns the chunk
// currently being emitted into and the scope stack of locals visible while
// compiling it. heap and types are shared (read/write and read-only,
// respectively) across every nested compiler in a compilation.
type compiler struct {
	// heap is the function heap shared by every nested compiler. Reserve
	// and Set grow and finalize it as lambdas are encountered.
	heap *bytecode.Heap

	// types is the static type side-table, queried only for the argument
	// of a Print application.
	types ir.TypeInfo

	// locals is the lexical scope stack: locals[i] at compile time is
	// operand_stack[bp+i] at run time (spec.md §9). Innermost binding is
	// at the end of the slice.
	locals []ir.LocalID

	// chunk is the bytecode.Chunk currently being emitted into.
	chunk *bytecode.Chunk

	// maxFunctions caps how many heap slots a compilation may allocate; 0
	// means unbounded. Set from config.Config.MaxFunctions.
	maxFunctions int
}

// Compile compiles a whole program: body is the top-level term, mainSelf is
// the LocalID standing for main's own self-reference (slot 0 at runtime,
// per spec.md §9 — main is never literally recursed into by name, but it is
// compiled exactly like any other function body, so it needs a seed local
// like every other compiler does). types supplies the static type of every
// Print argument appearing in body.
//
// On success, Compile returns a fully-populated function heap with main
// installed at index 0. On a violated compile-time invariant (spec.md §7),
// it returns an *errs.CompileBug instead of panicking out of the package.
//
// maxFunctions caps the number of heap slots the compilation may allocate
// (config.Config.MaxFunctions); 0 means unbounded.
func Compile(mainSelf ir.LocalID, body ir.Term, types ir.TypeInfo, maxFunctions int) (heap *bytecode.Heap, err error) {
	heap = bytecode.NewHeap()

	defer func() {
		if r := recover(); r != nil {
			heap = nil
			if e, ok := r.(*errs.CompileBug); ok {
				err = e
				return
			}
			err = errs.NewCompileBug("unexpected panic: %v", r)
		}
	}()

	c := &compiler{
		heap:         heap,
		types:        types,
		locals:       []ir.LocalID{mainSelf},
		chunk:        heap.Get(0).Chunk,
		maxFunctions: maxFunctions,
	}
	c.compileTerm(body)

	heap.Set(0, &bytecode.Function{Arity: 0, Chunk: c.chunk})
	return heap, nil
}

// bug panics with an *errs.CompileBug, to be caught by Compile's recover.
// Every violation listed in spec.md §7 ("unresolved Var, type variable in
// Print type info, PrimFn arity mismatch") goes through this path.
func (c *compiler) bug(format string, a ...any) {
	panic(errs.NewCompileBug(format, a...))
}

// resolveLocal resolves id to a 0-based stack index, scanning locals from
// the top (innermost) down, so that shadowing resolves to the innermost
// binding. Returns -1 if id isn't bound, which is always a compiler bug:
// the IR is assumed closed.
func (c *compiler) resolveLocal(id ir.LocalID) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i] == id {
			return i
		}
	}
	return -1
}

// primOpcode maps every non-short-circuiting, non-Print PrimFn to its
// opcode. And/Or are handled specially by compilePrimApp (short-circuit
// lowering); Print is handled specially too (its opcode depends on the
// static type of its argument).
func primOpcode(fn ir.PrimFn) bytecode.OpCode {
	switch fn {
	case ir.Neg:
		return bytecode.OpNeg
	case ir.Not:
		return bytecode.OpNot
	case ir.Add:
		return bytecode.OpAdd
	case ir.Sub:
		return bytecode.OpSub
	case ir.Mul:
		return bytecode.OpMul
	case ir.Div:
		return bytecode.OpDiv
	case ir.Rem:
		return bytecode.OpRem
	case ir.BitAnd:
		return bytecode.OpBitAnd
	case ir.BitOr:
		return bytecode.OpBitOr
	case ir.BitXor:
		return bytecode.OpBitXor
	case ir.Shr:
		return bytecode.OpShr
	case ir.Shl:
		return bytecode.OpShl
	case ir.Eq:
		return bytecode.OpEq
	case ir.Neq:
		return bytecode.OpNeq
	case ir.Lt:
		return bytecode.OpLt
	case ir.Gt:
		return bytecode.OpGt
	case ir.Lte:
		return bytecode.OpLte
	case ir.Gte:
		return bytecode.OpGte
	default:
		panic(fmt.Sprintf("compiler: %v has no plain opcode", fn))
	}
}
