// Package vm implements the stack-based interpreter that executes a
// bytecode.Heap produced by pkg/compiler. See spec.md §4.2.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/christianpoveda/pijama/pkg/bytecode"
	"github.com/christianpoveda/pijama/pkg/errs"
)

// callFrame is an activation record for one in-progress function call.
type callFrame struct {
	// fn is the function currently executing.
	fn *bytecode.Function

	// ip is the index of the next opcode to execute in fn.Chunk.Code.
	ip int

	// basePtr is the amount by which the operand stack's bp was advanced
	// when this frame was pushed; subtracting it on Return restores the
	// caller's view.
	basePtr int
}

// VM executes a compiled function heap.
type VM struct {
	// Trace, when true, makes the VM print the operand stack and the
	// instruction about to be executed before every dispatch (spec.md
	// §4.2, "Tracing"). A design-level affordance, not load-bearing for
	// correctness.
	Trace bool

	out io.Writer

	heap *bytecode.Heap

	operands stack

	frames []*callFrame
	frame  *callFrame
}

// New returns a VM that sends Print* output to out.
func New(out io.Writer) *VM {
	return &VM{out: out}
}

// Interpret runs heap to completion, starting at function 0 (main), per the
// calling convention in spec.md §3: the operand stack starts with a single
// FuncPtr(0) at index 0, standing for main's own self-reference.
func (vm *VM) Interpret(heap *bytecode.Heap) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*errs.Runtime); ok {
				err = e
				return
			}
			err = errs.NewRuntime("unexpected panic: %v", r)
		}
	}()

	vm.heap = heap
	vm.operands.push(bytecode.NewFuncPtr(0))

	main := heap.Get(0)
	vm.frame = &callFrame{fn: main, ip: 0, basePtr: 0}
	vm.frames = append(vm.frames, vm.frame)

	vm.run()
	return nil
}

// run is the main dispatch loop. It halts when the head frame's ip runs
// past the end of its chunk (spec.md §4.2, "Termination") — there is no
// implicit trailing Return for main.
func (vm *VM) run() {
	for {
		chunk := vm.frame.fn.Chunk
		if vm.frame.ip >= chunk.Len() {
			return
		}

		if vm.Trace {
			vm.traceStep(chunk)
		}

		op := bytecode.OpCode(chunk.Code[vm.frame.ip])
		vm.frame.ip++

		switch op {
		case bytecode.OpPush:
			v, n := bytecode.DecodeOperand(chunk.Code[vm.frame.ip:])
			vm.frame.ip += n
			vm.operands.push(v)

		case bytecode.OpPop:
			vm.operands.pop()

		case bytecode.OpLocal:
			idx := vm.readUInt31(chunk)
			vm.operands.push(vm.operands.local(idx))

		case bytecode.OpNot:
			// x ^ 0 is x: OpNot leaves its operand unchanged rather than
			// negating a boolean (see DESIGN.md's "Open Question decisions").
			x := vm.popInt()
			vm.operands.push(bytecode.NewInt(x ^ 0))

		case bytecode.OpNeg:
			x := vm.popInt()
			vm.operands.push(bytecode.NewInt(-x))

		case bytecode.OpAdd:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewInt(a + b))

		case bytecode.OpSub:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewInt(a - b))

		case bytecode.OpMul:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewInt(a * b))

		case bytecode.OpDiv:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewInt(a / b))

		case bytecode.OpRem:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewInt(a % b))

		case bytecode.OpBitAnd:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewInt(a & b))

		case bytecode.OpBitOr:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewInt(a | b))

		case bytecode.OpBitXor:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewInt(a ^ b))

		case bytecode.OpShr:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewInt(a >> uint(b)))

		case bytecode.OpShl:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewInt(a << uint(b)))

		case bytecode.OpAnd:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewBool(a != 0 && b != 0))

		case bytecode.OpOr:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewBool(a != 0 || b != 0))

		case bytecode.OpEq:
			b, a := vm.operands.pop(), vm.operands.pop()
			vm.operands.push(bytecode.NewBool(bytecode.ValuesEqual(a, b)))

		case bytecode.OpNeq:
			b, a := vm.operands.pop(), vm.operands.pop()
			vm.operands.push(bytecode.NewBool(!bytecode.ValuesEqual(a, b)))

		case bytecode.OpLt:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewBool(a < b))

		case bytecode.OpGt:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewBool(a > b))

		case bytecode.OpLte:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewBool(a <= b))

		case bytecode.OpGte:
			b, a := vm.popInt(), vm.popInt()
			vm.operands.push(bytecode.NewBool(a >= b))

		case bytecode.OpPrintInt:
			x := vm.popInt()
			fmt.Fprintf(vm.out, "%d\n", x)
			vm.operands.push(bytecode.NewUnit())

		case bytecode.OpPrintBool:
			x := vm.popInt()
			if x != 0 {
				fmt.Fprint(vm.out, "true\n")
			} else {
				fmt.Fprint(vm.out, "false\n")
			}
			vm.operands.push(bytecode.NewUnit())

		case bytecode.OpPrintUnit:
			x := vm.popInt()
			if x != 0 {
				vm.runtimeError("OpPrintUnit: expected 0, got %d", x)
			}
			fmt.Fprint(vm.out, "unit\n")
			vm.operands.push(bytecode.NewUnit())

		case bytecode.OpPrintFunc:
			p := vm.operands.pop()
			if !p.IsFuncPtr() {
				vm.runtimeError("OpPrintFunc: expected FuncPtr, got %v", p.Kind)
			}
			fmt.Fprintf(vm.out, "<function at 0x%x>\n", p.Ptr)
			vm.operands.push(bytecode.NewUnit())

		case bytecode.OpCall:
			n := vm.readUInt31(chunk)
			vm.call(n)

		case bytecode.OpReturn:
			vm.doReturn()

		case bytecode.OpJumpIfTrue:
			offset := vm.readUInt31(chunk)
			if vm.operands.peek(0).IsTruthy() {
				vm.frame.ip += offset
			}

		case bytecode.OpJumpIfFalse:
			offset := vm.readUInt31(chunk)
			if !vm.operands.peek(0).IsTruthy() {
				vm.frame.ip += offset
			}

		case bytecode.OpSkip:
			offset := vm.readUInt31(chunk)
			vm.frame.ip += offset

		default:
			vm.runtimeError("unknown opcode %v", op)
		}
	}
}

// readUInt31 reads the 4-byte unsigned operand following the opcode at
// frame.ip and advances ip past it.
func (vm *VM) readUInt31(chunk *bytecode.Chunk) int {
	v := bytecode.DecodeUInt31(chunk.Code[vm.frame.ip:])
	vm.frame.ip += 4
	return v
}

// popInt pops the top of the operand stack and requires it to be an Int.
func (vm *VM) popInt() int64 {
	v := vm.operands.pop()
	if !v.IsInt() {
		vm.runtimeError("expected Int, got %v", v.Kind)
	}
	return v.Int
}

// call implements the calling convention of spec.md §4.2: the callee
// FuncPtr sits n+1 slots below the top of the caller-visible stack,
// followed by n arguments.
func (vm *VM) call(n int) {
	visibleLen := vm.operands.size()
	newBase := visibleLen - n - 1
	if newBase < 0 {
		vm.runtimeError("Call(%d): operand stack has only %d visible value(s)", n, visibleLen)
	}

	ptr := vm.operands.local(newBase)
	if !ptr.IsFuncPtr() {
		vm.runtimeError("Call: callee is not a FuncPtr, got %v", ptr.Kind)
	}

	fn := vm.heap.Get(ptr.Ptr)

	vm.operands.bp += newBase
	vm.frame = &callFrame{fn: fn, ip: 0, basePtr: newBase}
	vm.frames = append(vm.frames, vm.frame)
}

// doReturn implements the return protocol of spec.md §4.2.
func (vm *VM) doReturn() {
	result := vm.operands.pop()

	vm.frames = vm.frames[:len(vm.frames)-1]
	returningFrame := vm.frame
	vm.frame = vm.frames[len(vm.frames)-1]

	vm.operands.truncateToBase()
	vm.operands.bp -= returningFrame.basePtr
	vm.operands.push(result)
}

// runtimeError aborts execution with an errs.Runtime.
func (vm *VM) runtimeError(format string, a ...interface{}) {
	panic(errs.NewRuntime(format, a...))
}

// traceStep writes the current operand stack and the instruction about to
// run to stderr, kept separate from vm.out so tracing never corrupts
// program output (spec.md §4.2, "Tracing").
func (vm *VM) traceStep(chunk *bytecode.Chunk) {
	fmt.Fprint(os.Stderr, "          ")
	for i := vm.operands.bp; i < len(vm.operands.data); i++ {
		fmt.Fprintf(os.Stderr, "[ %v ]", vm.operands.data[i])
	}
	fmt.Fprintln(os.Stderr)
	bytecode.DisassembleInstruction(chunk, os.Stderr, vm.frame.ip)
}
