// Package knowledge implements the per-agent knowledge engine (§4.8):
// versioned fact storage, pattern-based subscriptions, delta computation,
// and budget-triggered auto-folding of the oldest facts.
package knowledge

import (
	"fmt"
	"sort"

	"github.com/sagproto/sag/internal/ast"
	"github.com/sagproto/sag/internal/eval"
	"github.com/sagproto/sag/internal/fold"
	"github.com/sagproto/sag/internal/serialization"
)

type fact struct {
	value   ast.Value
	version uint64
}

type subscriber struct {
	pattern   string
	filter    string
	hasFilter bool
	cursors   map[string]uint64
}

// Engine holds one agent's facts and subscriptions. It is not safe for
// concurrent use, matching the core's single-threaded-per-agent model
// (§5).
type Engine struct {
	agentID    string
	budget     int // 0 means unbounded
	facts      map[string]fact
	subs       map[string]*subscriber
	foldEngine *fold.Engine

	// OnAutoFold, if set, is called whenever AssertFact triggers a
	// budget-driven auto-fold, letting callers log or forward the
	// resulting FoldStatement.
	OnAutoFold func(*ast.FoldStatement)
}

// NewEngine returns an Engine for agentID. budget of 0 means unbounded
// fact storage (no auto-fold ever triggers).
func NewEngine(agentID string, budget int) *Engine {
	return &Engine{
		agentID:    agentID,
		budget:     budget,
		facts:      make(map[string]fact),
		subs:       make(map[string]*subscriber),
		foldEngine: fold.NewEngine(),
	}
}

// AssertFact records a new version of topic's value. If the store now
// exceeds budget, the oldest-by-version facts are folded away until it no
// longer does; the resulting FoldStatement is returned (nil if no fold
// was needed).
func (e *Engine) AssertFact(topic string, value ast.Value) (version uint64, folded *ast.FoldStatement) {
	version = e.facts[topic].version + 1
	e.facts[topic] = fact{value: value, version: version}

	if e.budget > 0 && len(e.facts) > e.budget {
		folded = e.foldOverBudget()
	}
	return version, folded
}

func (e *Engine) foldOverBudget() *ast.FoldStatement {
	type item struct {
		topic string
		f     fact
	}
	items := make([]item, 0, len(e.facts))
	for t, f := range e.facts {
		items = append(items, item{t, f})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].f.version != items[j].f.version {
			return items[i].f.version < items[j].f.version
		}
		return items[i].topic < items[j].topic
	})

	toRemove := len(e.facts) - e.budget
	msgs := make([]ast.Message, 0, toRemove)
	for i := 0; i < toRemove; i++ {
		it := items[i]
		msgs = append(msgs, ast.Message{
			Header: ast.Header{
				Version:     1,
				MessageID:   fmt.Sprintf("%s-autofold-%s-%d", e.agentID, it.topic, it.f.version),
				Source:      ast.AgentID(e.agentID),
				Destination: ast.AgentID(e.agentID),
			},
			Statements: []ast.Statement{
				&ast.KnowledgeStatement{Topic: it.topic, Value: it.f.value, Version: it.f.version},
			},
		})
		delete(e.facts, it.topic)
	}

	summary := fmt.Sprintf("auto-folded %d over-budget facts for %s", len(msgs), e.agentID)
	stmt := e.foldEngine.Fold(msgs, summary, nil)
	if e.OnAutoFold != nil {
		e.OnAutoFold(stmt)
	}
	return stmt
}

// UnfoldAutoFold re-exposes a previously auto-folded batch, letting a
// caller re-apply its facts via ApplyIncoming.
func (e *Engine) UnfoldAutoFold(foldID string) ([]ast.Message, error) {
	return e.foldEngine.Unfold(foldID)
}

// AddSubscriber registers sub_id against pattern (and optional filter
// expression text), initializing its per-topic cursor to zero for every
// currently-matching topic.
func (e *Engine) AddSubscriber(subID, pattern, filter string, hasFilter bool) {
	sub := &subscriber{pattern: pattern, filter: filter, hasFilter: hasFilter, cursors: make(map[string]uint64)}
	for topic := range e.facts {
		if matchTopic(pattern, topic) {
			sub.cursors[topic] = 0
		}
	}
	e.subs[subID] = sub
}

// RemoveSubscriber discards sub_id, if present.
func (e *Engine) RemoveSubscriber(subID string) {
	delete(e.subs, subID)
}

// ComputeDelta returns every KnowledgeStatement sub_id hasn't yet seen:
// topics matching its pattern whose stored version exceeds the
// subscriber's cursor, and whose filter (if any) evaluates truthy or null
// against a context of {topic: value}. Does not advance the cursor; call
// MarkDelivered to commit.
func (e *Engine) ComputeDelta(subID string) ([]*ast.KnowledgeStatement, error) {
	sub, ok := e.subs[subID]
	if !ok {
		return nil, fmt.Errorf("unknown subscriber %q", subID)
	}

	type candidate struct {
		topic string
		f     fact
	}
	var candidates []candidate
	for topic, f := range e.facts {
		if !matchTopic(sub.pattern, topic) {
			continue
		}
		if f.version <= sub.cursors[topic] {
			continue
		}
		if sub.hasFilter {
			ctx := eval.NewMapContext()
			ctx.Set(topic, f.value)
			result, err := eval.Evaluate(sub.filter, ctx)
			if err != nil {
				return nil, err
			}
			if !result.IsNull() && !result.Truthy() {
				continue
			}
		}
		candidates = append(candidates, candidate{topic, f})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].topic != candidates[j].topic {
			return candidates[i].topic < candidates[j].topic
		}
		return candidates[i].f.version < candidates[j].f.version
	})

	out := make([]*ast.KnowledgeStatement, len(candidates))
	for i, c := range candidates {
		out[i] = &ast.KnowledgeStatement{Topic: c.topic, Value: c.f.value, Version: c.f.version}
	}
	return out, nil
}

// MarkDelivered advances sub_id's per-topic cursors to the versions in
// statements, committing a prior ComputeDelta.
func (e *Engine) MarkDelivered(subID string, statements []*ast.KnowledgeStatement) {
	sub, ok := e.subs[subID]
	if !ok {
		return
	}
	for _, s := range statements {
		if s.Version > sub.cursors[s.Topic] {
			sub.cursors[s.Topic] = s.Version
		}
	}
}

// ApplyIncoming accepts each incoming KnowledgeStatement iff its version
// exceeds the currently stored version for its topic (strict
// last-writer-by-version-wins; ties reject the incoming). Returns the
// subset actually applied.
func (e *Engine) ApplyIncoming(statements []*ast.KnowledgeStatement, fromAgent string) []*ast.KnowledgeStatement {
	var applied []*ast.KnowledgeStatement
	for _, s := range statements {
		if s.Version > e.facts[s.Topic].version {
			e.facts[s.Topic] = fact{value: s.Value, version: s.Version}
			applied = append(applied, s)
		}
	}
	return applied
}

// Fact returns the currently stored value and version for topic.
func (e *Engine) Fact(topic string) (ast.Value, uint64, bool) {
	f, ok := e.facts[topic]
	if !ok {
		return ast.Value{}, 0, false
	}
	return f.value, f.version, true
}

// Size returns the number of currently stored facts.
func (e *Engine) Size() int {
	return len(e.facts)
}

// ExportFacts snapshots the current fact table for checkpointing (§6
// "Persisted state": engines expose full-state export/import).
func (e *Engine) ExportFacts() map[string]serialization.Fact {
	out := make(map[string]serialization.Fact, len(e.facts))
	for topic, f := range e.facts {
		out[topic] = serialization.Fact{Value: f.value, Version: f.version}
	}
	return out
}

// ImportFacts restores a previously exported fact table, applying
// last-writer-by-version-wins per topic exactly as ApplyIncoming does.
func (e *Engine) ImportFacts(facts map[string]serialization.Fact) {
	for topic, f := range facts {
		if f.Version > e.facts[topic].version {
			e.facts[topic] = fact{value: f.Value, version: f.Version}
		}
	}
}
