// Package types implements Aura's closed type model: primitives, the
// parametric Tensor type, nominal/applied user types, and refinement
// ranges over integral bases.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the closed Type variant set from §3 of the spec.
type Kind int

const (
	Unknown Kind = iota
	Unit
	Bool
	U32
	String
	Style
	Model
	Tensor
	Named
	Applied
	ConstrainedRange
)

// Type is a tagged variant. Only the fields relevant to Kind are
// meaningful; the zero value is Unknown.
type Type struct {
	Kind Kind

	// Tensor
	Elem  *Type
	Shape []uint64 // nil means "unknown shape"
	HasShape bool

	// Named / Applied
	Name string
	Args []Type

	// ConstrainedRange
	Base *Type
	Lo   uint64
	Hi   uint64
}

func TUnknown() Type { return Type{Kind: Unknown} }
func TUnit() Type    { return Type{Kind: Unit} }
func TBool() Type    { return Type{Kind: Bool} }
func TU32() Type     { return Type{Kind: U32} }
func TString() Type  { return Type{Kind: String} }
func TStyle() Type   { return Type{Kind: Style} }
func TModel() Type   { return Type{Kind: Model} }

func TTensor(elem Type, shape []uint64) Type {
	t := Type{Kind: Tensor, Elem: &elem}
	if shape != nil {
		t.Shape = shape
		t.HasShape = true
	}
	return t
}

// TensorUnknown is the element-agnostic tensor type that intrinsic
// signatures use (tensor::new returns it); no pass narrows its element
// type.
func TensorUnknown() Type {
	return TTensor(TUnknown(), nil)
}

func TNamed(name string) Type {
	return Type{Kind: Named, Name: name}
}

func TApplied(name string, args []Type) Type {
	return Type{Kind: Applied, Name: name, Args: args}
}

func TRange(base Type, lo, hi uint64) Type {
	return Type{Kind: ConstrainedRange, Base: &base, Lo: lo, Hi: hi}
}

// Display renders the type in Aura's surface syntax. Round-tripping this
// through the parser's type grammar for a monomorphic type must yield a
// structurally equal Type (§8).
func (t Type) Display() string {
	switch t.Kind {
	case Unknown:
		return "<unknown>"
	case Unit:
		return "Unit"
	case Bool:
		return "Bool"
	case U32:
		return "U32"
	case String:
		return "String"
	case Style:
		return "Style"
	case Model:
		return "Model"
	case Tensor:
		elem := t.Elem.Display()
		if !t.HasShape {
			return fmt.Sprintf("Tensor<%s>", elem)
		}
		dims := make([]string, len(t.Shape))
		for i, d := range t.Shape {
			dims[i] = fmt.Sprintf("%d", d)
		}
		return fmt.Sprintf("Tensor<%s, [%s]>", elem, strings.Join(dims, ", "))
	case Named:
		return t.Name
	case Applied:
		if len(t.Args) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.Display()
		}
		return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
	case ConstrainedRange:
		return fmt.Sprintf("%s[%d..%d]", t.Base.Display(), t.Lo, t.Hi)
	default:
		return "<?>"
	}
}

// IsCopy reports whether values of this type are copied on every use
// rather than tracked by the capability graph (§3 copy discipline).
func (t Type) IsCopy() bool {
	switch t.Kind {
	case Unit, Bool, U32:
		return true
	case ConstrainedRange:
		return t.Base.IsCopy()
	default:
		return false
	}
}

// IsSubsetRange reports whether [aLo, aHi] ⊆ [bLo, bHi].
func IsSubsetRange(aLo, aHi, bLo, bHi uint64) bool {
	return aLo >= bLo && aHi <= bHi
}

// StructEq is structural equality, used by unification (via Equal) for
// every variant, including ConstrainedRange compared by exact bounds.
func StructEq(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Tensor:
		if a.HasShape != b.HasShape {
			return false
		}
		if a.HasShape {
			if len(a.Shape) != len(b.Shape) {
				return false
			}
			for i := range a.Shape {
				if a.Shape[i] != b.Shape[i] {
					return false
				}
			}
		}
		return StructEq(*a.Elem, *b.Elem)
	case Named:
		return a.Name == b.Name
	case Applied:
		if a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !StructEq(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case ConstrainedRange:
		return a.Lo == b.Lo && a.Hi == b.Hi && StructEq(*a.Base, *b.Base)
	default:
		return true
	}
}
