package correlation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagproto/sag/internal/ast"
)

func fixedClock(t int64) func() int64 {
	return func() int64 { return t }
}

func TestEngine_GenerateMessageIDStrictlyIncreasing(t *testing.T) {
	e := newEngineWithClock("planner", fixedClock(1000))
	assert.Equal(t, "planner-1", e.GenerateMessageID())
	assert.Equal(t, "planner-2", e.GenerateMessageID())
	assert.Equal(t, "planner-3", e.GenerateMessageID())
}

func TestEngine_CreateResponseHeaderWithoutIncoming(t *testing.T) {
	e := newEngineWithClock("planner", fixedClock(1000))
	h := e.CreateResponseHeader("planner", "executor")
	assert.Nil(t, h.Correlation)
	assert.Equal(t, int64(1000), h.Timestamp)
	assert.Equal(t, ast.AgentID("planner"), h.Source)
}

func TestEngine_CreateResponseHeaderAfterRecordIncoming(t *testing.T) {
	e := newEngineWithClock("planner", fixedClock(1000))
	e.RecordIncoming(&ast.Message{Header: ast.Header{MessageID: "executor-7"}})

	h := e.CreateResponseHeader("planner", "executor")
	require.NotNil(t, h.Correlation)
	assert.Equal(t, "executor-7", *h.Correlation)
	assert.Nil(t, h.TTL)
}

func TestEngine_CreateHeaderInResponseTo(t *testing.T) {
	e := newEngineWithClock("planner", fixedClock(1000))
	msg := &ast.Message{Header: ast.Header{MessageID: "executor-9"}}
	h := e.CreateHeaderInResponseTo("planner", "executor", msg)
	require.NotNil(t, h.Correlation)
	assert.Equal(t, "executor-9", *h.Correlation)
}

func TestEngine_ClearResetsLastReceivedNotCounter(t *testing.T) {
	e := newEngineWithClock("planner", fixedClock(1000))
	e.RecordIncoming(&ast.Message{Header: ast.Header{MessageID: "executor-1"}})
	e.GenerateMessageID()
	e.Clear()

	h := e.CreateResponseHeader("planner", "executor")
	assert.Nil(t, h.Correlation)
	assert.Equal(t, "planner-2", h.MessageID)
}

func corr(s string) *string { return &s }

func TestFindResponses(t *testing.T) {
	ms := []ast.Message{
		{Header: ast.Header{MessageID: "a-1"}},
		{Header: ast.Header{MessageID: "b-1", Correlation: corr("a-1")}},
		{Header: ast.Header{MessageID: "b-2", Correlation: corr("a-1")}},
		{Header: ast.Header{MessageID: "c-1", Correlation: corr("b-1")}},
	}
	responses := FindResponses(ms, "a-1")
	require.Len(t, responses, 2)
	assert.Equal(t, "b-1", responses[0].Header.MessageID)
	assert.Equal(t, "b-2", responses[1].Header.MessageID)
}

func TestTraceThread(t *testing.T) {
	ms := []ast.Message{
		{Header: ast.Header{MessageID: "a-1"}},
		{Header: ast.Header{MessageID: "b-1", Correlation: corr("a-1")}},
		{Header: ast.Header{MessageID: "c-1", Correlation: corr("b-1")}},
	}
	thread := TraceThread(ms, "c-1")
	require.Len(t, thread, 3)
	assert.Equal(t, []string{"a-1", "b-1", "c-1"}, []string{
		thread[0].Header.MessageID, thread[1].Header.MessageID, thread[2].Header.MessageID,
	})
}

func TestTraceThread_BreaksCycles(t *testing.T) {
	ms := []ast.Message{
		{Header: ast.Header{MessageID: "a-1", Correlation: corr("b-1")}},
		{Header: ast.Header{MessageID: "b-1", Correlation: corr("a-1")}},
	}
	thread := TraceThread(ms, "a-1")
	assert.Len(t, thread, 2)
}

func TestBuildConversationTree(t *testing.T) {
	ms := []ast.Message{
		{Header: ast.Header{MessageID: "a-1"}},
		{Header: ast.Header{MessageID: "b-1", Correlation: corr("a-1")}},
		{Header: ast.Header{MessageID: "b-2", Correlation: corr("a-1")}},
		{Header: ast.Header{MessageID: "c-1", Correlation: corr("b-1")}},
	}
	tree := BuildConversationTree(ms)
	assert.ElementsMatch(t, []string{"b-1", "b-2"}, tree["a-1"])
	assert.ElementsMatch(t, []string{"c-1"}, tree["b-1"])
	_, hasC1Children := tree["c-1"]
	assert.False(t, hasC1Children)
}
