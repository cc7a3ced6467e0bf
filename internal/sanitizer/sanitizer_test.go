package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagproto/sag/internal/ast"
	"github.com/sagproto/sag/internal/eval"
	"github.com/sagproto/sag/internal/schema"
)

func baseWire(body string) string {
	return "H v 1 id=m1 src=planner dst=executor ts=1000\n" + body
}

func newAgentReg() *MapAgentRegistry {
	return NewMapAgentRegistry(map[string][]string{
		"planner":  {"executor"},
		"executor": {"planner"},
	})
}

func TestSanitize_ParseFailure(t *testing.T) {
	s := NewSanitizer(schema.NewRegistry(), newAgentReg(), eval.NewMapContext())
	result := s.Sanitize("not a valid message", "")
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "parse", result.Errors[0].Layer)
}

func TestSanitize_RoutingDenied(t *testing.T) {
	reg := NewMapAgentRegistry(map[string][]string{
		"planner":  {"critic"},
		"executor": {"planner"},
	})
	s := NewSanitizer(schema.NewRegistry(), reg, eval.NewMapContext())
	result := s.Sanitize(baseWire("DO move(\"north\");"), "")
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "routing", result.Errors[0].Layer)
	assert.Equal(t, ast.ErrRoutingDenied, result.Errors[0].Code)
}

func TestSanitize_UnknownAgent(t *testing.T) {
	reg := NewMapAgentRegistry(map[string][]string{"planner": {"executor"}})
	s := NewSanitizer(schema.NewRegistry(), reg, eval.NewMapContext())
	result := s.Sanitize(baseWire("DO move(\"north\");"), "")
	assert.False(t, result.Valid)
	assert.Equal(t, ast.ErrRoutingDenied, result.Errors[0].Code)
}

func TestSanitize_SchemaFailure(t *testing.T) {
	reg := schema.NewRegistry()
	dest, err := ast.NewArgumentSpec(ast.ArgumentSpec{Name: "dest", Type: ast.TypeString, Required: true})
	require.NoError(t, err)
	reg.Register(ast.VerbSchema{Verb: "move", Positional: []ast.ArgumentSpec{dest}})

	s := NewSanitizer(reg, newAgentReg(), eval.NewMapContext())
	result := s.Sanitize(baseWire("DO move();"), "")
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "schema", result.Errors[0].Layer)
	assert.Equal(t, ast.ErrMissingArg, result.Errors[0].Code)
}

func TestSanitize_GuardrailFailure(t *testing.T) {
	ctx := eval.NewMapContext()
	ctx.Set("risk", ast.Float(0.9))
	s := NewSanitizer(schema.NewRegistry(), newAgentReg(), ctx)

	result := s.Sanitize(baseWire(`DO move("north") BECAUSE risk < 0.5;`), "")
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "guardrail", result.Errors[0].Layer)
	assert.Equal(t, ast.ErrPreconditionFailed, result.Errors[0].Code)
}

func TestSanitize_AllLayersPass(t *testing.T) {
	ctx := eval.NewMapContext()
	ctx.Set("risk", ast.Float(0.1))
	s := NewSanitizer(schema.NewRegistry(), newAgentReg(), ctx)

	result := s.Sanitize(baseWire(`DO move("north") BECAUSE risk < 0.5;`), "")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Message)
}

func TestSanitize_FromAgentOverridesHeaderSource(t *testing.T) {
	reg := NewMapAgentRegistry(map[string][]string{
		"critic":   {"executor"},
		"executor": {"planner"},
	})
	s := NewSanitizer(schema.NewRegistry(), reg, eval.NewMapContext())
	result := s.Sanitize(baseWire("DO move(\"north\");"), "critic")
	assert.True(t, result.Valid)
}
