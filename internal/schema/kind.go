package schema

import "github.com/zclconf/go-cty/cty"

// Kind identifies the value shape a trait accepts.
type Kind int

const (
	Invalid Kind = iota
	Int
	Float
	String
	Bool
	List
	Mapping
	// Component marks a trait whose value names a registered component
	// family; the trait binds to a nested instance of that family rather
	// than to a scalar.
	Component
)

// String returns the kind's name as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Mapping:
		return "mapping"
	case Component:
		return "component"
	default:
		return "invalid"
	}
}

// ctyType returns the cty type a raw value is converted to for this kind.
// Int and Float both land on cty.Number; integer exactness is enforced
// separately during coercion.
func (k Kind) ctyType() cty.Type {
	switch k {
	case Int, Float:
		return cty.Number
	case String, Component:
		return cty.String
	case Bool:
		return cty.Bool
	case List:
		return cty.List(cty.String)
	case Mapping:
		return cty.Map(cty.String)
	default:
		return cty.NilType
	}
}
