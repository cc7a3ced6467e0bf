// Package sag is the embedded API surface for the SAG wire protocol
// runtime: parse/minify, the expression evaluator, the schema registry
// and validator, the inbound sanitizer, and the per-agent fold,
// correlation, and knowledge engines (§6 "Embedded API").
package sag

import (
	"github.com/sagproto/sag/internal/ast"
	"github.com/sagproto/sag/internal/correlation"
	"github.com/sagproto/sag/internal/eval"
	"github.com/sagproto/sag/internal/fold"
	"github.com/sagproto/sag/internal/grammar"
	"github.com/sagproto/sag/internal/knowledge"
	"github.com/sagproto/sag/internal/minifier"
	"github.com/sagproto/sag/internal/sanitizer"
	"github.com/sagproto/sag/internal/schema"
)

type (
	Message              = ast.Message
	Header               = ast.Header
	Statement            = ast.Statement
	Value                = ast.Value
	AgentID              = ast.AgentID
	VerbSchema           = ast.VerbSchema
	ArgumentSpec         = ast.ArgumentSpec
	ErrorCode            = ast.ErrorCode
	ActionStatement      = ast.ActionStatement
	QueryStatement       = ast.QueryStatement
	AssertStatement      = ast.AssertStatement
	ControlStatement     = ast.ControlStatement
	EventStatement       = ast.EventStatement
	ErrorStatement       = ast.ErrorStatement
	FoldStatement        = ast.FoldStatement
	RecallStatement      = ast.RecallStatement
	SubscribeStatement   = ast.SubscribeStatement
	UnsubscribeStatement = ast.UnsubscribeStatement
	KnowledgeStatement   = ast.KnowledgeStatement

	Registry  = schema.Registry
	Validator = schema.Validator

	AgentRegistry    = sanitizer.AgentRegistry
	MapAgentRegistry = sanitizer.MapAgentRegistry
	Sanitizer        = sanitizer.Sanitizer
	SanitizeResult   = sanitizer.SanitizeResult
	SanitizerError   = sanitizer.SanitizerError

	FoldEngine = fold.Engine

	CorrelationEngine = correlation.Engine

	KnowledgeEngine = knowledge.Engine

	EvalContext = eval.Context
	MapContext  = eval.MapContext
)

// Parse turns wire text into a typed Message.
func Parse(text string) (*Message, error) {
	return grammar.Parse(text)
}

// Minify renders a Message back to its canonical wire text.
func Minify(m *Message) string {
	return minifier.Minify(m)
}

// Evaluate parses and evaluates an expression against ctx.
func Evaluate(expr string, ctx EvalContext) (Value, error) {
	return eval.Evaluate(expr, ctx)
}

// TokenCount is the context-budget heuristic used by callers deciding
// whether to fold a conversation.
func TokenCount(wire string) int {
	return minifier.TokenCount(wire)
}

// String, Int, Float, Bool, and Null build Value literals without callers
// needing to import internal/ast directly.
func String(s string) Value { return ast.String(s) }
func Int(i int64) Value     { return ast.Int(i) }
func Float(f float64) Value { return ast.Float(f) }
func Bool(b bool) Value     { return ast.Bool(b) }
func Null() Value           { return ast.Null() }

// NewRegistry returns an empty schema registry.
func NewRegistry() *Registry {
	return schema.NewRegistry()
}

// NewValidator binds a Validator to reg.
func NewValidator(reg *Registry) *Validator {
	return schema.NewValidator(reg)
}

// NewMapAgentRegistry builds an in-memory agent routing registry.
func NewMapAgentRegistry(allowed map[string][]string) *MapAgentRegistry {
	return sanitizer.NewMapAgentRegistry(allowed)
}

// LoadAgentRegistryYAML loads an agent routing registry from a YAML file.
func LoadAgentRegistryYAML(path string) (*MapAgentRegistry, error) {
	return sanitizer.LoadAgentRegistryYAML(path)
}

// NewSanitizer builds the four-layer inbound firewall.
func NewSanitizer(schemaReg *Registry, agentReg AgentRegistry, guardCtx EvalContext) *Sanitizer {
	return sanitizer.NewSanitizer(schemaReg, agentReg, guardCtx)
}

// NewFoldEngine returns an empty fold archive.
func NewFoldEngine() *FoldEngine {
	return fold.NewEngine()
}

// NewCorrelationEngine returns a correlation engine for one agent.
func NewCorrelationEngine(agentID string) *CorrelationEngine {
	return correlation.NewEngine(agentID)
}

// NewKnowledgeEngine returns a knowledge engine for one agent. budget of 0
// means unbounded fact storage.
func NewKnowledgeEngine(agentID string, budget int) *KnowledgeEngine {
	return knowledge.NewEngine(agentID, budget)
}

// NewMapContext returns an empty evaluation context.
func NewMapContext() *MapContext {
	return eval.NewMapContext()
}
