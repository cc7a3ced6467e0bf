package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagproto/sag/internal/ast"
)

func TestRegistry_RegisterGetHas(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Has("move"))

	r.Register(ast.VerbSchema{Verb: "move"})
	assert.True(t, r.Has("move"))

	s, ok := r.Get("move")
	require.True(t, ok)
	assert.Equal(t, "move", s.Verb)
}

func TestRegistry_UnregisterClearSize(t *testing.T) {
	r := NewRegistry()
	r.Register(ast.VerbSchema{Verb: "move"})
	r.Register(ast.VerbSchema{Verb: "stop"})
	assert.Equal(t, 2, r.Size())

	r.Unregister("move")
	assert.False(t, r.Has("move"))
	assert.Equal(t, 1, r.Size())

	r.Clear()
	assert.Equal(t, 0, r.Size())
}
