// Package eval implements the expression evaluator (§4.3): it re-parses
// an expression string with the same grammar the message parser uses,
// then walks that tree against a pluggable Context.
package eval

import (
	"strings"

	"github.com/sagproto/sag/internal/ast"
)

// Context is the pluggable evaluation environment a caller supplies.
// Paths are dot-segmented; intermediate segments that don't resolve to an
// object yield null rather than an error.
type Context interface {
	Get(path string) (ast.Value, bool)
	Has(path string) bool
	Set(path string, v ast.Value)
	AsMap() map[string]ast.Value
}

// MapContext is a flat-map-backed Context, the concrete implementation
// used by the sanitizer's guardrail layer and by tests. Nested paths are
// resolved by walking object values.
type MapContext struct {
	root *ast.ObjectMap
}

// NewMapContext returns an empty, ready-to-use MapContext.
func NewMapContext() *MapContext {
	return &MapContext{root: ast.NewObjectMap()}
}

// NewMapContextFromValues seeds a MapContext from a flat set of top-level
// bindings (the common case: a single fact like {topic_name: value}).
func NewMapContextFromValues(values map[string]ast.Value) *MapContext {
	c := NewMapContext()
	for k, v := range values {
		c.root.Set(k, v)
	}
	return c
}

func (c *MapContext) Get(path string) (ast.Value, bool) {
	segs := strings.Split(path, ".")
	cur := c.root
	for i, seg := range segs {
		v, ok := cur.Get(seg)
		if !ok {
			return ast.Null(), false
		}
		if i == len(segs)-1 {
			return v, true
		}
		if v.Kind != ast.ObjectVal {
			return ast.Null(), false
		}
		cur = v.Obj
	}
	return ast.Null(), false
}

func (c *MapContext) Has(path string) bool {
	_, ok := c.Get(path)
	return ok
}

func (c *MapContext) Set(path string, v ast.Value) {
	segs := strings.Split(path, ".")
	cur := c.root
	for _, seg := range segs[:len(segs)-1] {
		existing, ok := cur.Get(seg)
		if !ok || existing.Kind != ast.ObjectVal {
			existing = ast.Object(ast.NewObjectMap())
			cur.Set(seg, existing)
		}
		cur = existing.Obj
	}
	cur.Set(segs[len(segs)-1], v)
}

func (c *MapContext) AsMap() map[string]ast.Value {
	out := make(map[string]ast.Value, c.root.Len())
	for pair := c.root.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}
