// Package correlation implements the per-agent message-id/correlation
// engine and the static thread-tracing helpers (§4.7).
package correlation

import (
	"fmt"

	"github.com/sagproto/sag/internal/ast"
)

// Engine generates message ids for one agent and builds response headers
// that correlate back to the last message it recorded as incoming.
type Engine struct {
	agentID      string
	counter      uint64
	lastReceived *string
	now          func() int64
}

// NewEngine returns an Engine for agentID using the real wall clock.
func NewEngine(agentID string) *Engine {
	return &Engine{agentID: agentID, now: nowUnix}
}

// newEngineWithClock is used by tests to pin the header timestamp.
func newEngineWithClock(agentID string, clock func() int64) *Engine {
	return &Engine{agentID: agentID, now: clock}
}

// GenerateMessageID returns "<agent-id>-<n>" with n strictly increasing
// across calls on this Engine.
func (e *Engine) GenerateMessageID() string {
	e.counter++
	return fmt.Sprintf("%s-%d", e.agentID, e.counter)
}

// RecordIncoming remembers msg's message-id as "last received", used by
// the next CreateResponseHeader call.
func (e *Engine) RecordIncoming(msg *ast.Message) {
	id := msg.Header.MessageID
	e.lastReceived = &id
}

// CreateResponseHeader builds a new header from src to dst, correlated to
// the last message recorded via RecordIncoming (or uncorrelated if none).
func (e *Engine) CreateResponseHeader(src, dst ast.AgentID) ast.Header {
	h := ast.Header{
		Version:     1,
		MessageID:   e.GenerateMessageID(),
		Source:      src,
		Destination: dst,
		Timestamp:   e.now(),
	}
	if e.lastReceived != nil {
		corr := *e.lastReceived
		h.Correlation = &corr
	}
	return h
}

// CreateHeaderInResponseTo builds a new header from src to dst, correlated
// directly to msg regardless of what RecordIncoming last saw.
func (e *Engine) CreateHeaderInResponseTo(src, dst ast.AgentID, msg *ast.Message) ast.Header {
	corr := msg.Header.MessageID
	return ast.Header{
		Version:     1,
		MessageID:   e.GenerateMessageID(),
		Source:      src,
		Destination: dst,
		Timestamp:   e.now(),
		Correlation: &corr,
	}
}

// Clear resets the last-received slot. The id counter is untouched, so
// generated ids stay unique across a clear.
func (e *Engine) Clear() {
	e.lastReceived = nil
}
