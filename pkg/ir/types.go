package ir

// Type is a static type, as reported by the (out-of-scope) type-checking
// stage. The core never infers or checks types; it only queries this set
// for the argument of a Print primitive, to choose the right opcode.
type Type struct {
	Kind TypeKind

	// Arrow fields, meaningful only when Kind is TypeArrow.
	ArrowFrom []Type
	ArrowTo   *Type
}

// TypeKind discriminates the variants of Type.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeBool
	TypeUnit
	TypeArrow

	// TypeVar marks a type variable. The core must never see one at
	// codegen time; encountering it is a compiler bug (see spec.md §7).
	TypeVar
)

func (t Type) String() string {
	switch t.Kind {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeUnit:
		return "unit"
	case TypeArrow:
		return "arrow"
	default:
		return "<type variable>"
	}
}

// TypeInfo is the static-context side-table the compiler queries. Keys are
// the identity of a Term node (the argument of a Print application); the
// compiler never looks up any other kind of term.
type TypeInfo map[Term]Type
