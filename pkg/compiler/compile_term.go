package compiler

import (
	"github.com/christianpoveda/pijama/pkg/bytecode"
	"github.com/christianpoveda/pijama/pkg/ir"
)

// compileTerm compiles term, leaving its value on top of the operand stack.
// Every construct except Let adds exactly one value; a Let adds two, since
// its binding's slot stays beneath the body's result until the enclosing
// function returns.
func (c *compiler) compileTerm(term ir.Term) {
	switch t := term.(type) {
	case *ir.Lit:
		c.compileLit(t)
	case *ir.Var:
		c.compileVar(t)
	case *ir.PrimApp:
		c.compilePrimApp(t)
	case *ir.Let:
		c.compileLet(t)
	case *ir.App:
		c.compileApp(t)
	case *ir.Cond:
		c.compileCond(t)
	default:
		c.bug("unknown term type %T", term)
	}
}

func (c *compiler) compileLit(lit *ir.Lit) {
	switch lit.Value.Kind {
	case ir.LitBool:
		c.emitPush(bytecode.NewBool(lit.Value.Bool))
	case ir.LitNumber:
		c.emitPush(bytecode.NewInt(lit.Value.Number))
	case ir.LitUnit:
		c.emitPush(bytecode.NewUnit())
	default:
		c.bug("unknown literal kind %v", lit.Value.Kind)
	}
}

func (c *compiler) compileVar(v *ir.Var) {
	idx := c.resolveLocal(v.ID)
	if idx < 0 {
		c.bug("unresolved local %v", v.ID)
	}
	c.emitUInt31(bytecode.OpLocal, idx)
}

func (c *compiler) compilePrimApp(p *ir.PrimApp) {
	if len(p.Args) != p.Fn.Arity() {
		c.bug("primitive %v expects %d argument(s), got %d", p.Fn, p.Fn.Arity(), len(p.Args))
	}

	switch p.Fn {
	case ir.And:
		c.compileShortCircuit(p.Args[0], p.Args[1], bytecode.OpJumpIfFalse)
		return
	case ir.Or:
		c.compileShortCircuit(p.Args[0], p.Args[1], bytecode.OpJumpIfTrue)
		return
	case ir.Print:
		c.compilePrint(p.Args[0])
		return
	}

	for _, arg := range p.Args {
		c.compileTerm(arg)
	}
	c.emit(primOpcode(p.Fn))
}

// compileShortCircuit lowers `a && b` (guardOp = OpJumpIfFalse) and
// `a || b` (guardOp = OpJumpIfTrue) to the jump sequence from spec.md
// §4.1: compile a, conditionally jump past "pop a; compile b", landing
// exactly on the instruction following that sequence so that, when the
// jump is taken, a itself (unpopped) is left as the result.
func (c *compiler) compileShortCircuit(a, b ir.Term, guardOp bytecode.OpCode) {
	c.compileTerm(a)
	guard := c.emitJump(guardOp)
	c.emit(bytecode.OpPop)
	c.compileTerm(b)
	c.patchJump(guard)
}

// compilePrint compiles arg, then emits the Print* opcode matching arg's
// static type. Consulting a type variable here is a compiler bug: an
// earlier, out-of-scope stage is supposed to have resolved every type by
// the time the core sees the IR (spec.md §7).
func (c *compiler) compilePrint(arg ir.Term) {
	c.compileTerm(arg)

	typ, ok := c.types[arg]
	if !ok {
		c.bug("no static type recorded for print argument")
	}

	switch typ.Kind {
	case ir.TypeInt:
		c.emit(bytecode.OpPrintInt)
	case ir.TypeBool:
		c.emit(bytecode.OpPrintBool)
	case ir.TypeUnit:
		c.emit(bytecode.OpPrintUnit)
	case ir.TypeArrow:
		c.emit(bytecode.OpPrintFunc)
	default:
		c.bug("type variable reached print codegen")
	}
}

func (c *compiler) compileLet(l *ir.Let) {
	c.locals = append(c.locals, l.ID)
	c.compileRValue(l.RHS, l.ID)
	c.compileTerm(l.Body)
	c.locals = c.locals[:len(c.locals)-1]
}

// compileRValue compiles the right-hand side of a Let. selfID is the
// LocalID the enclosing Let just bound: when rhs is an Abs, selfID becomes
// that function's own self-reference (spec.md §9).
func (c *compiler) compileRValue(rhs ir.RValue, selfID ir.LocalID) {
	if abs, ok := rhs.(*ir.Abs); ok {
		c.compileAbs(abs, selfID)
		return
	}

	term, ok := rhs.(ir.Term)
	if !ok {
		c.bug("rvalue is neither a Term nor an Abs: %T", rhs)
	}
	c.compileTerm(term)
}

// compileAbs reserves a new heap slot, compiles the lambda's body into it
// with a nested compiler whose locals start with [selfID, params...], and
// pushes the resulting FuncPtr onto the outer chunk.
func (c *compiler) compileAbs(abs *ir.Abs, selfID ir.LocalID) {
	if c.maxFunctions > 0 && c.heap.Len() >= c.maxFunctions {
		c.bug("function heap would exceed configured limit of %d", c.maxFunctions)
	}

	slot := c.heap.Reserve(len(abs.Params))

	nested := &compiler{
		heap:         c.heap,
		types:        c.types,
		locals:       append([]ir.LocalID{selfID}, abs.Params...),
		chunk:        c.heap.Get(slot).Chunk,
		maxFunctions: c.maxFunctions,
	}
	nested.compileTerm(abs.Body)
	nested.emit(bytecode.OpReturn)

	c.heap.Set(slot, &bytecode.Function{Arity: len(abs.Params), Chunk: nested.chunk})
	c.emitPush(bytecode.NewFuncPtr(slot))
}

func (c *compiler) compileApp(a *ir.App) {
	c.compileTerm(a.Fn)
	for _, arg := range a.Args {
		c.compileTerm(arg)
	}
	c.emitUInt31(bytecode.OpCall, len(a.Args))
}

// compileCond implements the exact layout from spec.md §4.1, including the
// subtlety flagged in §9: the Pop that discards the condition on entry to
// the else-branch sits right after the Skip, and is reached only by the
// JumpIfFalse landing there.
func (c *compiler) compileCond(cond *ir.Cond) {
	c.compileTerm(cond.Test)

	jumpToElse := c.emitJump(bytecode.OpJumpIfFalse)
	c.emit(bytecode.OpPop)
	c.compileTerm(cond.Then)

	skipElse := c.emitJump(bytecode.OpSkip)

	c.patchJump(jumpToElse)
	c.emit(bytecode.OpPop)
	c.compileTerm(cond.Else)

	c.patchJump(skipElse)
}
