package sanitizer

import (
	"fmt"

	"github.com/sagproto/sag/internal/ast"
	"github.com/sagproto/sag/internal/eval"
	"github.com/sagproto/sag/internal/grammar"
	"github.com/sagproto/sag/internal/schema"
)

// SanitizerError is one typed failure surfaced by a sanitize pass, tagged
// with the layer that produced it.
type SanitizerError struct {
	Layer   string // "parse" | "routing" | "schema" | "guardrail"
	Code    ast.ErrorCode
	Field   string
	Message string
}

func (e SanitizerError) Error() string {
	return fmt.Sprintf("sanitizer[%s] (%s) %s: %s", e.Layer, e.Code, e.Field, e.Message)
}

// SanitizeResult aggregates the outcome of a sanitize pass: the parsed
// message (nil if layer 1 failed) and every error collected across
// layers 2-4.
type SanitizeResult struct {
	Valid   bool
	Message *ast.Message
	Errors  []SanitizerError
}

// Sanitizer runs the four-layer firewall: grammar parse, routing guard,
// schema validate, guardrail check.
type Sanitizer struct {
	schemaReg *schema.Registry
	agentReg  AgentRegistry
	guardCtx  eval.Context
	validator *schema.Validator
}

// NewSanitizer builds a Sanitizer bound to a schema registry, an agent
// routing registry, and the evaluation context used by the guardrail
// layer to check reason expressions.
func NewSanitizer(schemaReg *schema.Registry, agentReg AgentRegistry, guardCtx eval.Context) *Sanitizer {
	return &Sanitizer{
		schemaReg: schemaReg,
		agentReg:  agentReg,
		guardCtx:  guardCtx,
		validator: schema.NewValidator(schemaReg),
	}
}

// Sanitize runs rawText through all four layers. fromAgent, if non-empty,
// overrides the routing guard's source (otherwise the parsed header's
// Source field is used).
func (s *Sanitizer) Sanitize(rawText string, fromAgent string) SanitizeResult {
	msg, err := grammar.Parse(rawText)
	if err != nil {
		return SanitizeResult{
			Valid: false,
			Errors: []SanitizerError{{
				Layer: "parse", Code: ast.ErrParseError, Field: "text", Message: err.Error(),
			}},
		}
	}

	var errs []SanitizerError

	source := fromAgent
	if source == "" {
		source = string(msg.Header.Source)
	}
	destination := string(msg.Header.Destination)
	if !s.agentReg.Knows(source) || !s.agentReg.Knows(destination) || !AllowsDestination(s.agentReg, source, destination) {
		errs = append(errs, SanitizerError{
			Layer: "routing", Code: ast.ErrRoutingDenied, Field: "destination",
			Message: fmt.Sprintf("agent %q may not send to %q", source, destination),
		})
	}

	for i, st := range msg.Statements {
		switch v := st.(type) {
		case *ast.ActionStatement:
			for _, ve := range s.validator.ValidateAction(v) {
				errs = append(errs, SanitizerError{
					Layer: "schema", Code: ve.Code,
					Field:   fmt.Sprintf("statement[%d].%s", i, ve.Field),
					Message: ve.Message,
				})
			}
			if v.Reason != "" && v.ReasonIsExpr {
				result, err := eval.Evaluate(v.Reason, s.guardCtx)
				if err != nil {
					errs = append(errs, SanitizerError{
						Layer: "guardrail", Code: ast.ErrInvalidExpression,
						Field: fmt.Sprintf("statement[%d].reason", i), Message: err.Error(),
					})
				} else if !result.Truthy() {
					errs = append(errs, SanitizerError{
						Layer: "guardrail", Code: ast.ErrPreconditionFailed,
						Field:   fmt.Sprintf("statement[%d].reason", i),
						Message: fmt.Sprintf("guardrail expression %q did not hold", v.Reason),
					})
				}
			}
		case *ast.EventStatement:
			for _, ve := range s.validator.ValidateEvent(v) {
				errs = append(errs, SanitizerError{
					Layer: "schema", Code: ve.Code,
					Field:   fmt.Sprintf("statement[%d].%s", i, ve.Field),
					Message: ve.Message,
				})
			}
		}
	}

	return SanitizeResult{Valid: len(errs) == 0, Message: msg, Errors: errs}
}
