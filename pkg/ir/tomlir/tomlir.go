// Package tomlir decodes a direct, tree-shaped TOML encoding of an IR
// program into pkg/ir's Term/TypeInfo shapes. It is the one external
// interface the core needs to be runnable end to end without a lexer or
// parser (spec.md §1, §6): the TOML document already has the shape of the
// IR tree, so this package only ever walks an already-structured document,
// never scans or parses program text.
package tomlir

import (
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/christianpoveda/pijama/pkg/errs"
	"github.com/christianpoveda/pijama/pkg/ir"
)

// document is the root of a .pij.toml file: the seed LocalID standing for
// main's self-reference, and the top-level term.
type document struct {
	Main int     `toml:"main"`
	Body rawNode `toml:"body"`
}

// rawNode is a single IR node in its TOML shape. Only the fields relevant
// to Kind are populated; the rest are left at their zero value.
type rawNode struct {
	Kind string `toml:"kind"`

	// Lit
	Bool   *bool  `toml:"bool"`
	Number *int64 `toml:"number"`

	// Var
	Local *int `toml:"local"`

	// PrimApp
	Prim string    `toml:"prim"`
	Args []rawNode `toml:"args"`
	Type string    `toml:"type"` // print nodes only: the static type of Args[0]

	// Let
	ID   *int     `toml:"id"`
	RHS  *rawNode `toml:"rhs"`
	Body *rawNode `toml:"body"`

	// Abs (as a Let's RHS)
	Params []int `toml:"params"`

	// App
	Fn   *rawNode  `toml:"fn"`
	Call []rawNode `toml:"call_args"`

	// Cond
	Test *rawNode `toml:"test"`
	Then *rawNode `toml:"then"`
	Else *rawNode `toml:"else"`
}

var primNames = map[string]ir.PrimFn{
	"print":  ir.Print,
	"neg":    ir.Neg,
	"not":    ir.Not,
	"add":    ir.Add,
	"sub":    ir.Sub,
	"mul":    ir.Mul,
	"div":    ir.Div,
	"rem":    ir.Rem,
	"and":    ir.And,
	"or":     ir.Or,
	"bitand": ir.BitAnd,
	"bitor":  ir.BitOr,
	"bitxor": ir.BitXor,
	"shr":    ir.Shr,
	"shl":    ir.Shl,
	"eq":     ir.Eq,
	"neq":    ir.Neq,
	"lt":     ir.Lt,
	"gt":     ir.Gt,
	"lte":    ir.Lte,
	"gte":    ir.Gte,
}

var typeNames = map[string]ir.Type{
	"int":   {Kind: ir.TypeInt},
	"bool":  {Kind: ir.TypeBool},
	"unit":  {Kind: ir.TypeUnit},
	"arrow": {Kind: ir.TypeArrow},
}

// Load reads a .pij.toml document from r and returns its top-level term,
// the seed LocalID for main's self-reference, and the static-type
// side-table for every print argument it encountered.
func Load(r io.Reader) (body ir.Term, mainSelf ir.LocalID, types ir.TypeInfo, err error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, nil, errs.NewToolError("reading IR document: %v", err)
	}

	var doc document
	if err := toml.Unmarshal(bytes, &doc); err != nil {
		return nil, 0, nil, errs.NewToolError("decoding IR document: %v", err)
	}

	d := &decoder{types: ir.TypeInfo{}}
	term, derr := d.term(&doc.Body)
	if derr != nil {
		return nil, 0, nil, derr
	}

	return term, ir.LocalID(doc.Main), d.types, nil
}

// decoder carries the TypeInfo side-table being assembled while walking a
// document; one decoder is used for a whole program.
type decoder struct {
	types ir.TypeInfo
}

func (d *decoder) term(n *rawNode) (ir.Term, error) {
	switch n.Kind {
	case "bool":
		if n.Bool == nil {
			return nil, errs.NewToolError("bool node missing \"bool\" field")
		}
		return &ir.Lit{Value: ir.Literal{Kind: ir.LitBool, Bool: *n.Bool}}, nil

	case "number":
		if n.Number == nil {
			return nil, errs.NewToolError("number node missing \"number\" field")
		}
		return &ir.Lit{Value: ir.Literal{Kind: ir.LitNumber, Number: *n.Number}}, nil

	case "unit":
		return &ir.Lit{Value: ir.Literal{Kind: ir.LitUnit}}, nil

	case "var":
		if n.Local == nil {
			return nil, errs.NewToolError("var node missing \"local\" field")
		}
		return &ir.Var{ID: ir.LocalID(*n.Local)}, nil

	case "prim":
		return d.primApp(n)

	case "let":
		return d.let(n)

	case "app":
		return d.app(n)

	case "cond":
		return d.cond(n)

	default:
		return nil, errs.NewToolError("unknown node kind %q", n.Kind)
	}
}

func (d *decoder) primApp(n *rawNode) (ir.Term, error) {
	fn, ok := primNames[n.Prim]
	if !ok {
		return nil, errs.NewToolError("unknown primitive %q", n.Prim)
	}

	args := make([]ir.Term, len(n.Args))
	for i := range n.Args {
		arg, err := d.term(&n.Args[i])
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	if fn == ir.Print && len(args) == 1 {
		typ, ok := typeNames[n.Type]
		if !ok {
			return nil, errs.NewToolError("print node has unknown or missing \"type\" field %q", n.Type)
		}
		d.types[args[0]] = typ
	}

	return &ir.PrimApp{Fn: fn, Args: args}, nil
}

func (d *decoder) let(n *rawNode) (ir.Term, error) {
	if n.ID == nil || n.RHS == nil || n.Body == nil {
		return nil, errs.NewToolError("let node missing \"id\", \"rhs\", or \"body\"")
	}

	rhs, err := d.rvalue(n.RHS, ir.LocalID(*n.ID))
	if err != nil {
		return nil, err
	}
	body, err := d.term(n.Body)
	if err != nil {
		return nil, err
	}

	return &ir.Let{ID: ir.LocalID(*n.ID), RHS: rhs, Body: body}, nil
}

// rvalue decodes a let's right-hand side, either a plain term or an
// abstraction. selfID is the LocalID the enclosing let just bound,
// threaded through only for documentation — the compiler, not this
// package, is what actually wires it up as the lambda's self-reference.
func (d *decoder) rvalue(n *rawNode, selfID ir.LocalID) (ir.RValue, error) {
	if n.Kind == "abs" {
		params := make([]ir.LocalID, len(n.Params))
		for i, p := range n.Params {
			params[i] = ir.LocalID(p)
		}
		if n.Body == nil {
			return nil, errs.NewToolError("abs node missing \"body\"")
		}
		body, err := d.term(n.Body)
		if err != nil {
			return nil, err
		}
		return &ir.Abs{Params: params, Body: body}, nil
	}

	return d.term(n)
}

func (d *decoder) app(n *rawNode) (ir.Term, error) {
	if n.Fn == nil {
		return nil, errs.NewToolError("app node missing \"fn\"")
	}
	fn, err := d.term(n.Fn)
	if err != nil {
		return nil, err
	}

	args := make([]ir.Term, len(n.Call))
	for i := range n.Call {
		arg, err := d.term(&n.Call[i])
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	return &ir.App{Fn: fn, Args: args}, nil
}

func (d *decoder) cond(n *rawNode) (ir.Term, error) {
	if n.Test == nil || n.Then == nil || n.Else == nil {
		return nil, errs.NewToolError("cond node missing \"test\", \"then\", or \"else\"")
	}

	test, err := d.term(n.Test)
	if err != nil {
		return nil, err
	}
	then, err := d.term(n.Then)
	if err != nil {
		return nil, err
	}
	els, err := d.term(n.Else)
	if err != nil {
		return nil, err
	}

	return &ir.Cond{Test: test, Then: then, Else: els}, nil
}
