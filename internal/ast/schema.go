package ast

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ArgType is the declared type of a schema argument.
type ArgType int

const (
	TypeString ArgType = iota
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeList
	TypeObject
	TypeAny
)

func (t ArgType) String() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeInteger:
		return "INTEGER"
	case TypeFloat:
		return "FLOAT"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeList:
		return "LIST"
	case TypeObject:
		return "OBJECT"
	case TypeAny:
		return "ANY"
	default:
		return "UNKNOWN"
	}
}

// Matches reports whether v's runtime kind is compatible with t. A null
// value passes any type, per §4.4's type compatibility table.
func (t ArgType) Matches(v Value) bool {
	if v.Kind == NullVal {
		return true
	}
	switch t {
	case TypeString:
		return v.Kind == StringVal
	case TypeInteger:
		return v.Kind == IntVal
	case TypeFloat:
		return v.Kind == FloatVal
	case TypeBoolean:
		return v.Kind == BoolVal
	case TypeList:
		return v.Kind == ListVal
	case TypeObject:
		return v.Kind == ObjectVal
	case TypeAny:
		return true
	default:
		return false
	}
}

// ArgumentSpec describes one positional or named argument of a VerbSchema.
type ArgumentSpec struct {
	Name        string
	Type        ArgType
	Required    bool
	Description string

	AllowedValues []Value  // enum constraint; nil means unconstrained
	Pattern       string   // STRING-only regex constraint; empty means unconstrained
	MinValue      *float64 // numeric-only range constraint
	MaxValue      *float64
}

// SchemaError reports a malformed VerbSchema definition (constructor-time,
// not call-time validation).
type SchemaError struct {
	Kind    string
	Message string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("schema error (%v): %v", e.Kind, e.Message)
}

// NewArgumentSpec validates cross-field constraints at construction time:
// pattern is STRING-only, range is numeric-only.
func NewArgumentSpec(spec ArgumentSpec) (ArgumentSpec, error) {
	if spec.Pattern != "" && spec.Type != TypeString {
		return ArgumentSpec{}, SchemaError{
			Kind:    "InvalidConstraint",
			Message: fmt.Sprintf("pattern constraint requires STRING type, got %v", spec.Type),
		}
	}
	numeric := spec.Type == TypeInteger || spec.Type == TypeFloat
	if (spec.MinValue != nil || spec.MaxValue != nil) && !numeric {
		return ArgumentSpec{}, SchemaError{
			Kind:    "InvalidConstraint",
			Message: fmt.Sprintf("range constraint requires a numeric type, got %v", spec.Type),
		}
	}
	return spec, nil
}

// NamedSpecs preserves insertion order over a VerbSchema's named-argument
// specs, so validation failures over them (§4.4: "insertion order") are
// deterministic rather than dependent on Go's randomized map iteration.
type NamedSpecs = orderedmap.OrderedMap[string, ArgumentSpec]

// NewNamedSpecs returns an empty, ready-to-use NamedSpecs.
func NewNamedSpecs() *NamedSpecs {
	return orderedmap.New[string, ArgumentSpec]()
}

// VerbSchema describes the positional and named arguments a verb accepts.
type VerbSchema struct {
	Verb           string
	Positional     []ArgumentSpec
	Named          *NamedSpecs
	AllowExtraArgs bool
}
