package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagproto/sag/internal/ast"
)

func moveSchema(t *testing.T) ast.VerbSchema {
	t.Helper()
	dest, err := ast.NewArgumentSpec(ast.ArgumentSpec{Name: "dest", Type: ast.TypeString, Required: true})
	require.NoError(t, err)

	minV, maxV := 0.0, 100.0
	speed, err := ast.NewArgumentSpec(ast.ArgumentSpec{
		Name: "speed", Type: ast.TypeFloat, MinValue: &minV, MaxValue: &maxV,
	})
	require.NoError(t, err)

	mode, err := ast.NewArgumentSpec(ast.ArgumentSpec{
		Name: "mode", Type: ast.TypeString,
		AllowedValues: []ast.Value{ast.String("walk"), ast.String("run")},
	})
	require.NoError(t, err)

	named := ast.NewNamedSpecs()
	named.Set("speed", speed)
	named.Set("mode", mode)

	return ast.VerbSchema{
		Verb:       "move",
		Positional: []ast.ArgumentSpec{dest},
		Named:      named,
	}
}

func TestValidator_NoSchemaAlwaysPasses(t *testing.T) {
	v := NewValidator(NewRegistry())
	errs := v.ValidateAction(&ast.ActionStatement{Verb: "unregistered"})
	assert.Empty(t, errs)
}

func TestValidator_MissingRequiredPositional(t *testing.T) {
	reg := NewRegistry()
	reg.Register(moveSchema(t))
	v := NewValidator(reg)

	errs := v.ValidateAction(&ast.ActionStatement{Verb: "move"})
	require.Len(t, errs, 1)
	assert.Equal(t, ast.ErrMissingArg, errs[0].Code)
}

func TestValidator_TypeMismatch(t *testing.T) {
	reg := NewRegistry()
	reg.Register(moveSchema(t))
	v := NewValidator(reg)

	errs := v.ValidateAction(&ast.ActionStatement{Verb: "move", Args: []ast.Value{ast.Int(5)}})
	require.Len(t, errs, 1)
	assert.Equal(t, ast.ErrTypeMismatch, errs[0].Code)
}

func TestValidator_TooManyArgs(t *testing.T) {
	reg := NewRegistry()
	reg.Register(moveSchema(t))
	v := NewValidator(reg)

	errs := v.ValidateAction(&ast.ActionStatement{
		Verb: "move", Args: []ast.Value{ast.String("north"), ast.String("extra")},
	})
	require.Len(t, errs, 1)
	assert.Equal(t, ast.ErrTooManyArgs, errs[0].Code)
}

func TestValidator_UnknownNamedArg(t *testing.T) {
	reg := NewRegistry()
	reg.Register(moveSchema(t))
	v := NewValidator(reg)

	named := ast.NewNamedArgs()
	named.Set("bogus", ast.Int(1))
	errs := v.ValidateAction(&ast.ActionStatement{
		Verb: "move", Args: []ast.Value{ast.String("north")}, NamedArgs: named,
	})
	require.Len(t, errs, 1)
	assert.Equal(t, ast.ErrInvalidArgs, errs[0].Code)
}

func TestValidator_EnumConstraint(t *testing.T) {
	reg := NewRegistry()
	reg.Register(moveSchema(t))
	v := NewValidator(reg)

	named := ast.NewNamedArgs()
	named.Set("mode", ast.String("teleport"))
	errs := v.ValidateAction(&ast.ActionStatement{
		Verb: "move", Args: []ast.Value{ast.String("north")}, NamedArgs: named,
	})
	require.Len(t, errs, 1)
	assert.Equal(t, ast.ErrValueNotAllowed, errs[0].Code)
}

func TestValidator_RangeConstraint(t *testing.T) {
	reg := NewRegistry()
	reg.Register(moveSchema(t))
	v := NewValidator(reg)

	named := ast.NewNamedArgs()
	named.Set("speed", ast.Float(150))
	errs := v.ValidateAction(&ast.ActionStatement{
		Verb: "move", Args: []ast.Value{ast.String("north")}, NamedArgs: named,
	})
	require.Len(t, errs, 1)
	assert.Equal(t, ast.ErrValueOutOfRange, errs[0].Code)
}

func TestValidator_PatternConstraint(t *testing.T) {
	reg := NewRegistry()
	idSpec, err := ast.NewArgumentSpec(ast.ArgumentSpec{
		Name: "id", Type: ast.TypeString, Pattern: `^[A-Z]{2}\d{4}$`,
	})
	require.NoError(t, err)
	reg.Register(ast.VerbSchema{Verb: "tag", Positional: []ast.ArgumentSpec{idSpec}})
	v := NewValidator(reg)

	errs := v.ValidateAction(&ast.ActionStatement{Verb: "tag", Args: []ast.Value{ast.String("bad")}})
	require.Len(t, errs, 1)
	assert.Equal(t, ast.ErrPatternMismatch, errs[0].Code)

	errs = v.ValidateAction(&ast.ActionStatement{Verb: "tag", Args: []ast.Value{ast.String("AB1234")}})
	assert.Empty(t, errs)
}

func TestValidator_NullPassesAllConstraints(t *testing.T) {
	reg := NewRegistry()
	reg.Register(moveSchema(t))
	v := NewValidator(reg)

	named := ast.NewNamedArgs()
	named.Set("mode", ast.Null())
	errs := v.ValidateAction(&ast.ActionStatement{
		Verb: "move", Args: []ast.Value{ast.String("north")}, NamedArgs: named,
	})
	assert.Empty(t, errs)
}

func TestValidator_AllowExtraArgs(t *testing.T) {
	reg := NewRegistry()
	reg.Register(ast.VerbSchema{Verb: "free", AllowExtraArgs: true})
	v := NewValidator(reg)

	named := ast.NewNamedArgs()
	named.Set("anything", ast.Int(1))
	errs := v.ValidateAction(&ast.ActionStatement{
		Verb: "free", Args: []ast.Value{ast.Int(1), ast.Int(2)}, NamedArgs: named,
	})
	assert.Empty(t, errs)
}

func TestValidator_MissingRequiredNamedArgsAreOrderedByDeclaration(t *testing.T) {
	reg := NewRegistry()
	a, err := ast.NewArgumentSpec(ast.ArgumentSpec{Name: "a", Type: ast.TypeString, Required: true})
	require.NoError(t, err)
	b, err := ast.NewArgumentSpec(ast.ArgumentSpec{Name: "b", Type: ast.TypeString, Required: true})
	require.NoError(t, err)
	c, err := ast.NewArgumentSpec(ast.ArgumentSpec{Name: "c", Type: ast.TypeString, Required: true})
	require.NoError(t, err)

	named := ast.NewNamedSpecs()
	named.Set("c", c)
	named.Set("a", a)
	named.Set("b", b)
	reg.Register(ast.VerbSchema{Verb: "triple", Named: named})
	v := NewValidator(reg)

	// Repeated calls on the same Validator, to rule out a
	// coincidentally-stable single map iteration.
	for i := 0; i < 5; i++ {
		errs := v.ValidateAction(&ast.ActionStatement{Verb: "triple"})
		require.Len(t, errs, 3)
		assert.Equal(t, "c", errs[0].Field)
		assert.Equal(t, "a", errs[1].Field)
		assert.Equal(t, "b", errs[2].Field)
	}
}

func TestValidator_FloatTypeRejectsInteger(t *testing.T) {
	reg := NewRegistry()
	speed, err := ast.NewArgumentSpec(ast.ArgumentSpec{Name: "speed", Type: ast.TypeFloat, Required: true})
	require.NoError(t, err)
	named := ast.NewNamedSpecs()
	named.Set("speed", speed)
	reg.Register(ast.VerbSchema{Verb: "accelerate", Named: named})
	v := NewValidator(reg)

	na := ast.NewNamedArgs()
	na.Set("speed", ast.Int(5))
	errs := v.ValidateAction(&ast.ActionStatement{Verb: "accelerate", NamedArgs: na})
	require.Len(t, errs, 1)
	assert.Equal(t, ast.ErrTypeMismatch, errs[0].Code)

	na = ast.NewNamedArgs()
	na.Set("speed", ast.Float(5))
	errs = v.ValidateAction(&ast.ActionStatement{Verb: "accelerate", NamedArgs: na})
	assert.Empty(t, errs)
}

func TestValidator_ValidatesEventsToo(t *testing.T) {
	reg := NewRegistry()
	reg.Register(moveSchema(t))
	v := NewValidator(reg)

	errs := v.ValidateEvent(&ast.EventStatement{Name: "move"})
	require.Len(t, errs, 1)
	assert.Equal(t, ast.ErrMissingArg, errs[0].Code)
}
