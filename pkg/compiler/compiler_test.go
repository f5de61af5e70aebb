package compiler_test

import (
	"bytes"
	"testing"

	"github.com/christianpoveda/pijama/pkg/compiler"
	"github.com/christianpoveda/pijama/pkg/ir"
	"github.com/christianpoveda/pijama/pkg/vm"
)

// compileAndRun compiles body (with main's self-reference at id 0 and the
// given type info) and runs it, returning its stdout.
func compileAndRun(t *testing.T, body ir.Term, types ir.TypeInfo) string {
	t.Helper()

	heap, err := compiler.Compile(0, body, types, 0)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var out bytes.Buffer
	if err := vm.New(&out).Interpret(heap); err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	return out.String()
}

func num(v int64) *ir.Lit {
	return &ir.Lit{Value: ir.Literal{Kind: ir.LitNumber, Number: v}}
}

func boolean(b bool) *ir.Lit {
	return &ir.Lit{Value: ir.Literal{Kind: ir.LitBool, Bool: b}}
}

// TestArithmeticScenario covers "print(2 + 3 * 4)" -> "14\n".
func TestArithmeticScenario(t *testing.T) {
	mul := &ir.PrimApp{Fn: ir.Mul, Args: []ir.Term{num(3), num(4)}}
	add := &ir.PrimApp{Fn: ir.Add, Args: []ir.Term{num(2), mul}}
	print := &ir.PrimApp{Fn: ir.Print, Args: []ir.Term{add}}

	got := compileAndRun(t, print, ir.TypeInfo{add: {Kind: ir.TypeInt}})
	if got != "14\n" {
		t.Fatalf("expected %q, got %q", "14\n", got)
	}
}

// TestConditionalScenario covers "print(if true then 1 else 2)" -> "1\n".
func TestConditionalScenario(t *testing.T) {
	cond := &ir.Cond{Test: boolean(true), Then: num(1), Else: num(2)}
	print := &ir.PrimApp{Fn: ir.Print, Args: []ir.Term{cond}}

	got := compileAndRun(t, print, ir.TypeInfo{cond: {Kind: ir.TypeInt}})
	if got != "1\n" {
		t.Fatalf("expected %q, got %q", "1\n", got)
	}
}

// TestConditionalBothBranchesBalanceStack exercises scenario where Then and
// Else are structurally different but both resolve to a single stack value
// (the boundary case from spec.md §8).
func TestConditionalBothBranchesBalanceStack(t *testing.T) {
	then := &ir.PrimApp{Fn: ir.Add, Args: []ir.Term{num(1), num(1)}}
	els := num(99)
	cond := &ir.Cond{Test: boolean(false), Then: then, Else: els}
	print := &ir.PrimApp{Fn: ir.Print, Args: []ir.Term{cond}}

	got := compileAndRun(t, print, ir.TypeInfo{cond: {Kind: ir.TypeInt}})
	if got != "99\n" {
		t.Fatalf("expected %q, got %q", "99\n", got)
	}
}

// TestLetLambdaApplication covers "let f = \x. x+1 in print(f(41))" -> "42\n".
func TestLetLambdaApplication(t *testing.T) {
	const x ir.LocalID = 10
	const f ir.LocalID = 11

	absBody := &ir.PrimApp{Fn: ir.Add, Args: []ir.Term{&ir.Var{ID: x}, num(1)}}
	abs := &ir.Abs{Params: []ir.LocalID{x}, Body: absBody}

	app := &ir.App{Fn: &ir.Var{ID: f}, Args: []ir.Term{num(41)}}
	let := &ir.Let{ID: f, RHS: abs, Body: &ir.PrimApp{Fn: ir.Print, Args: []ir.Term{app}}}

	got := compileAndRun(t, let, ir.TypeInfo{app: {Kind: ir.TypeInt}})
	if got != "42\n" {
		t.Fatalf("expected %q, got %q", "42\n", got)
	}
}

// TestNullaryLambda covers "(\(). 42)()" -> 42.
func TestNullaryLambda(t *testing.T) {
	const f ir.LocalID = 20

	abs := &ir.Abs{Params: nil, Body: num(42)}
	app := &ir.App{Fn: &ir.Var{ID: f}, Args: nil}
	let := &ir.Let{ID: f, RHS: abs, Body: &ir.PrimApp{Fn: ir.Print, Args: []ir.Term{app}}}

	got := compileAndRun(t, let, ir.TypeInfo{app: {Kind: ir.TypeInt}})
	if got != "42\n" {
		t.Fatalf("expected %q, got %q", "42\n", got)
	}
}

// TestRecursiveFactorial covers a self-referential let binding computing
// factorial(5) = 120, proving the callee's own FuncPtr is visible in its
// own body (spec.md §8, §9).
func TestRecursiveFactorial(t *testing.T) {
	const fact ir.LocalID = 30
	const n ir.LocalID = 31

	test := &ir.PrimApp{Fn: ir.Lte, Args: []ir.Term{&ir.Var{ID: n}, num(1)}}
	recCall := &ir.App{
		Fn:   &ir.Var{ID: fact},
		Args: []ir.Term{&ir.PrimApp{Fn: ir.Sub, Args: []ir.Term{&ir.Var{ID: n}, num(1)}}},
	}
	els := &ir.PrimApp{Fn: ir.Mul, Args: []ir.Term{&ir.Var{ID: n}, recCall}}
	body := &ir.Cond{Test: test, Then: num(1), Else: els}
	abs := &ir.Abs{Params: []ir.LocalID{n}, Body: body}

	app := &ir.App{Fn: &ir.Var{ID: fact}, Args: []ir.Term{num(5)}}
	let := &ir.Let{ID: fact, RHS: abs, Body: &ir.PrimApp{Fn: ir.Print, Args: []ir.Term{app}}}

	got := compileAndRun(t, let, ir.TypeInfo{app: {Kind: ir.TypeInt}})
	if got != "120\n" {
		t.Fatalf("expected %q, got %q", "120\n", got)
	}
}

// TestShortCircuitAndDoesNotCallDiverge covers scenario 5: "print(false &&
// diverge())" must print "false" without ever invoking diverge, which would
// recurse forever if called.
func TestShortCircuitAndDoesNotCallDiverge(t *testing.T) {
	const diverge ir.LocalID = 40

	divergeBody := &ir.App{Fn: &ir.Var{ID: diverge}, Args: nil}
	abs := &ir.Abs{Params: nil, Body: divergeBody}

	and := &ir.PrimApp{
		Fn:   ir.And,
		Args: []ir.Term{boolean(false), &ir.App{Fn: &ir.Var{ID: diverge}, Args: nil}},
	}
	let := &ir.Let{ID: diverge, RHS: abs, Body: &ir.PrimApp{Fn: ir.Print, Args: []ir.Term{and}}}

	got := compileAndRun(t, let, ir.TypeInfo{and: {Kind: ir.TypeBool}})
	if got != "false\n" {
		t.Fatalf("expected %q, got %q", "false\n", got)
	}
}

// TestShadowingResolvesInnermost covers "let x=10 in let x=20 in print(x)".
func TestShadowingResolvesInnermost(t *testing.T) {
	const x ir.LocalID = 1 // both lets reuse the same LocalID, as shadowing implies

	inner := &ir.Let{ID: x, RHS: num(20), Body: &ir.PrimApp{Fn: ir.Print, Args: []ir.Term{&ir.Var{ID: x}}}}
	outer := &ir.Let{ID: x, RHS: num(10), Body: inner}

	printArg := inner.Body.(*ir.PrimApp).Args[0]
	got := compileAndRun(t, outer, ir.TypeInfo{printArg: {Kind: ir.TypeInt}})
	if got != "20\n" {
		t.Fatalf("expected %q, got %q", "20\n", got)
	}
}

// TestUnresolvedVarIsCompileBug ensures referencing an unbound LocalID
// aborts compilation with a CompileBug rather than panicking the process.
func TestUnresolvedVarIsCompileBug(t *testing.T) {
	body := &ir.PrimApp{Fn: ir.Print, Args: []ir.Term{&ir.Var{ID: 999}}}

	_, err := compiler.Compile(0, body, ir.TypeInfo{}, 0)
	if err == nil {
		t.Fatal("expected a compile error for an unresolved Var")
	}
}

// TestPrimArityMismatchIsCompileBug ensures a malformed PrimApp (wrong
// argument count) aborts compilation instead of panicking the process.
func TestPrimArityMismatchIsCompileBug(t *testing.T) {
	body := &ir.PrimApp{Fn: ir.Add, Args: []ir.Term{num(1)}}

	_, err := compiler.Compile(0, body, ir.TypeInfo{}, 0)
	if err == nil {
		t.Fatal("expected a compile error for an arity mismatch")
	}
}
