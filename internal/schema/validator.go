package schema

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/sagproto/sag/internal/ast"
)

// ValidationError is one typed failure produced while validating a single
// Action or Event call against its VerbSchema.
type ValidationError struct {
	Code    ast.ErrorCode
	Field   string // argument name, or positional index as "arg[N]"
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("schema validation (%s) on %s: %s", e.Code, e.Field, e.Message)
}

// Validator checks Action/Event calls against a Registry. A verb with no
// registered schema always passes (§4.4: opt-in policy).
type Validator struct {
	registry *Registry
}

// NewValidator builds a Validator bound to reg.
func NewValidator(reg *Registry) *Validator {
	return &Validator{registry: reg}
}

// ValidateAction checks a's verb, positional args, and named args against
// the registered VerbSchema, if any. Returns every failure found, in
// positional-then-named, insertion order.
func (v *Validator) ValidateAction(a *ast.ActionStatement) []ValidationError {
	schema, ok := v.registry.Get(a.Verb)
	if !ok {
		return nil
	}
	return validateCall(schema, a.Args, a.NamedArgs)
}

// ValidateEvent checks e's name, positional args, and named args against
// the registered VerbSchema, if any.
func (v *Validator) ValidateEvent(e *ast.EventStatement) []ValidationError {
	schema, ok := v.registry.Get(e.Name)
	if !ok {
		return nil
	}
	return validateCall(schema, e.Args, e.NamedArgs)
}

func validateCall(schema ast.VerbSchema, positional []ast.Value, named *ast.NamedArgs) []ValidationError {
	var errs []ValidationError

	for i, spec := range schema.Positional {
		field := fmt.Sprintf("arg[%d]", i)
		if i >= len(positional) {
			if spec.Required {
				errs = append(errs, ValidationError{
					Code: ast.ErrMissingArg, Field: field,
					Message: fmt.Sprintf("missing required positional argument %q", spec.Name),
				})
			}
			continue
		}
		errs = append(errs, validateValue(field, spec, positional[i])...)
	}
	if len(positional) > len(schema.Positional) && !schema.AllowExtraArgs {
		errs = append(errs, ValidationError{
			Code: ast.ErrTooManyArgs, Field: "args",
			Message: fmt.Sprintf("%d positional arguments given, schema allows %d", len(positional), len(schema.Positional)),
		})
	}

	present := make(map[string]bool)
	if named != nil {
		for pair := named.Oldest(); pair != nil; pair = pair.Next() {
			present[pair.Key] = true
			var spec ast.ArgumentSpec
			var ok bool
			if schema.Named != nil {
				spec, ok = schema.Named.Get(pair.Key)
			}
			if !ok {
				if !schema.AllowExtraArgs {
					errs = append(errs, ValidationError{
						Code: ast.ErrInvalidArgs, Field: pair.Key,
						Message: fmt.Sprintf("unknown named argument %q", pair.Key),
					})
				}
				continue
			}
			errs = append(errs, validateValue(pair.Key, spec, pair.Value)...)
		}
	}
	if schema.Named != nil {
		for pair := schema.Named.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Value.Required && !present[pair.Key] {
				errs = append(errs, ValidationError{
					Code: ast.ErrMissingArg, Field: pair.Key,
					Message: fmt.Sprintf("missing required named argument %q", pair.Key),
				})
			}
		}
	}

	return errs
}

// validateValue runs the type check then, in order, the enum, pattern, and
// range constraints (§4.4 step 3). Null values pass every constraint.
func validateValue(field string, spec ast.ArgumentSpec, v ast.Value) []ValidationError {
	if !spec.Type.Matches(v) {
		return []ValidationError{{
			Code: ast.ErrTypeMismatch, Field: field,
			Message: fmt.Sprintf("expected %s, got %s", spec.Type, v.Kind),
		}}
	}
	if v.Kind == ast.NullVal {
		return nil
	}

	if len(spec.AllowedValues) > 0 {
		allowed := false
		for _, av := range spec.AllowedValues {
			if ast.Equal(av, v) {
				allowed = true
				break
			}
		}
		if !allowed {
			return []ValidationError{{
				Code: ast.ErrValueNotAllowed, Field: field,
				Message: fmt.Sprintf("value %s not among allowed values", ast.Render(v)),
			}}
		}
	}

	if spec.Pattern != "" {
		// The pattern must match the whole string, not a substring of it.
		re, err := regexp2.Compile(`\A(?:`+spec.Pattern+`)\z`, 0)
		if err == nil {
			matched, _ := re.MatchString(v.S)
			if !matched {
				return []ValidationError{{
					Code: ast.ErrPatternMismatch, Field: field,
					Message: fmt.Sprintf("value %q does not match pattern %q", v.S, spec.Pattern),
				}}
			}
		}
	}

	if spec.MinValue != nil || spec.MaxValue != nil {
		f := v.AsFloat()
		if spec.MinValue != nil && f < *spec.MinValue {
			return []ValidationError{{
				Code: ast.ErrValueOutOfRange, Field: field,
				Message: fmt.Sprintf("value %v below minimum %v", f, *spec.MinValue),
			}}
		}
		if spec.MaxValue != nil && f > *spec.MaxValue {
			return []ValidationError{{
				Code: ast.ErrValueOutOfRange, Field: field,
				Message: fmt.Sprintf("value %v above maximum %v", f, *spec.MaxValue),
			}}
		}
	}

	return nil
}
