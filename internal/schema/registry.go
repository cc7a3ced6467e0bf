// Package schema implements the verb-schema registry and the Action/Event
// validator that runs against it (§4.4).
package schema

import "github.com/sagproto/sag/internal/ast"

// Registry maps a verb name to its VerbSchema. It is not safe for
// concurrent use without external synchronization, matching the engine's
// own per-agent, single-goroutine-owner convention.
type Registry struct {
	schemas map[string]ast.VerbSchema
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]ast.VerbSchema)}
}

// Register adds or replaces the schema for s.Verb.
func (r *Registry) Register(s ast.VerbSchema) {
	r.schemas[s.Verb] = s
}

// Unregister removes the schema for verb, if any.
func (r *Registry) Unregister(verb string) {
	delete(r.schemas, verb)
}

// Get returns the schema for verb and whether one is registered.
func (r *Registry) Get(verb string) (ast.VerbSchema, bool) {
	s, ok := r.schemas[verb]
	return s, ok
}

// Has reports whether verb has a registered schema.
func (r *Registry) Has(verb string) bool {
	_, ok := r.schemas[verb]
	return ok
}

// Clear removes every registered schema.
func (r *Registry) Clear() {
	r.schemas = make(map[string]ast.VerbSchema)
}

// Size returns the number of registered schemas.
func (r *Registry) Size() int {
	return len(r.schemas)
}
