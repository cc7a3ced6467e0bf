// Package ast defines the typed message tree that the grammar parses into
// and the minifier renders back out of: Message, Header, the eleven
// Statement variants, and the Value sum type they carry.
package ast

import (
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ValueKind tags which variant a Value holds.
type ValueKind int

const (
	StringVal ValueKind = iota
	IntVal
	FloatVal
	BoolVal
	NullVal
	PathVal
	ListVal
	ObjectVal
)

func (k ValueKind) String() string {
	switch k {
	case StringVal:
		return "string"
	case IntVal:
		return "int"
	case FloatVal:
		return "float"
	case BoolVal:
		return "bool"
	case NullVal:
		return "null"
	case PathVal:
		return "path"
	case ListVal:
		return "list"
	case ObjectVal:
		return "object"
	default:
		return "unknown"
	}
}

// ObjectMap preserves the insertion order of an object literal's keys, as
// required by the minifier's named-arg and object-literal rendering rules.
type ObjectMap = orderedmap.OrderedMap[string, Value]

// NewObjectMap returns an empty, ready-to-use ObjectMap.
func NewObjectMap() *ObjectMap {
	return orderedmap.New[string, Value]()
}

// Value is the tagged union carried by statements and arguments: string,
// signed integer, double, boolean, null, dotted path, list, or object.
type Value struct {
	Kind ValueKind
	S    string
	I    int64
	F    float64
	B    bool
	Path string
	List []Value
	Obj  *ObjectMap
}

func String(s string) Value  { return Value{Kind: StringVal, S: s} }
func Int(i int64) Value      { return Value{Kind: IntVal, I: i} }
func Float(f float64) Value  { return Value{Kind: FloatVal, F: f} }
func Bool(b bool) Value      { return Value{Kind: BoolVal, B: b} }
func Null() Value            { return Value{Kind: NullVal} }
func Path(p string) Value    { return Value{Kind: PathVal, Path: p} }
func List(vs []Value) Value  { return Value{Kind: ListVal, List: vs} }
func Object(o *ObjectMap) Value {
	if o == nil {
		o = NewObjectMap()
	}
	return Value{Kind: ObjectVal, Obj: o}
}

// IsNull reports whether v is the null literal.
func (v Value) IsNull() bool { return v.Kind == NullVal }

// IsNumeric reports whether v is an int or a float.
func (v Value) IsNumeric() bool { return v.Kind == IntVal || v.Kind == FloatVal }

// AsFloat coerces a numeric Value to float64. Callers must check IsNumeric first.
func (v Value) AsFloat() float64 {
	if v.Kind == IntVal {
		return float64(v.I)
	}
	return v.F
}

// Truthy implements the evaluator's truthiness rule (§4.3): bool as-is,
// non-zero numbers true, non-empty strings true, null false, other
// non-null values true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case BoolVal:
		return v.B
	case IntVal:
		return v.I != 0
	case FloatVal:
		return v.F != 0
	case StringVal:
		return v.S != ""
	case NullVal:
		return false
	default:
		return true
	}
}

// Equal implements value-equality: both-null, numeric comparison as
// doubles, and otherwise same-variant structural equality.
func Equal(a, b Value) bool {
	if a.Kind == NullVal && b.Kind == NullVal {
		return true
	}
	if a.IsNumeric() && b.IsNumeric() {
		return a.AsFloat() == b.AsFloat()
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case StringVal:
		return a.S == b.S
	case BoolVal:
		return a.B == b.B
	case NullVal:
		return true
	case PathVal:
		return a.Path == b.Path
	case ListVal:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !Equal(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case ObjectVal:
		if a.Obj == nil || b.Obj == nil {
			return a.Obj == b.Obj
		}
		if a.Obj.Len() != b.Obj.Len() {
			return false
		}
		for pair := a.Obj.Oldest(); pair != nil; pair = pair.Next() {
			bv, ok := b.Obj.Get(pair.Key)
			if !ok || !Equal(pair.Value, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Render produces the canonical wire form of v, matching the minifier's
// literal rules: strings quoted and escaped, numbers in source form
// (integers bare, floats with a decimal point), lists and objects
// comma-separated with no extra whitespace.
func Render(v Value) string {
	switch v.Kind {
	case StringVal:
		return quoteString(v.S)
	case IntVal:
		return strconv.FormatInt(v.I, 10)
	case FloatVal:
		return formatFloat(v.F)
	case BoolVal:
		if v.B {
			return "true"
		}
		return "false"
	case NullVal:
		return "null"
	case PathVal:
		return v.Path
	case ListVal:
		s := "["
		for i, e := range v.List {
			if i > 0 {
				s += ","
			}
			s += Render(e)
		}
		return s + "]"
	case ObjectVal:
		s := "{"
		i := 0
		if v.Obj != nil {
			for pair := v.Obj.Oldest(); pair != nil; pair = pair.Next() {
				if i > 0 {
					s += ","
				}
				s += fmt.Sprintf("%s:%s", pair.Key, Render(pair.Value))
				i++
			}
		}
		return s + "}"
	default:
		return "null"
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s
		}
	}
	return s + ".0"
}

func quoteString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, c)
		}
	}
	out = append(out, '"')
	return string(out)
}
