// Package wire holds property-style tests for the parse/minify round-trip
// (§8 property 1) and fold fidelity (§8 property 2) across representative
// messages spanning all eleven statement variants.
package wire

import (
	"testing"

	"github.com/sagproto/sag/internal/ast"
	"github.com/sagproto/sag/internal/fold"
	"github.com/sagproto/sag/internal/grammar"
	"github.com/sagproto/sag/internal/minifier"
)

func strPtr(s string) *string { return &s }
func u32Ptr(n uint32) *uint32 { return &n }

func sampleMessages(t *testing.T) []*ast.Message {
	t.Helper()

	named := ast.NewNamedArgs()
	named.Set("speed", ast.Float(2.5))
	named.Set("mode", ast.String("walk"))

	obj := ast.NewObjectMap()
	obj.Set("retries", ast.Int(3))
	obj.Set("note", ast.String("state snapshot"))

	return []*ast.Message{
		{
			Header: ast.Header{Version: 1, MessageID: "m1", Source: "planner", Destination: "executor", Timestamp: 1000},
			Statements: []ast.Statement{
				&ast.ActionStatement{
					Verb: "move", Args: []ast.Value{ast.String("north")}, NamedArgs: named,
					Policy: &ast.ActionPolicy{ID: "safety", Expr: "risk < 0.5", HasExpr: true},
					Priority: ast.PriorityHigh, Reason: "clear path ahead", ReasonIsExpr: false,
				},
			},
		},
		{
			Header: ast.Header{Version: 1, MessageID: "m2", Source: "planner", Destination: "executor", Timestamp: 1001, Correlation: strPtr("m1"), TTL: u32Ptr(30)},
			Statements: []ast.Statement{
				&ast.QueryStatement{Expression: "sensor.battery", Constraint: "sensor.battery > 0.1", HasConstraint: true},
			},
		},
		{
			Header: ast.Header{Version: 1, MessageID: "m3", Source: "executor", Destination: "planner", Timestamp: 1002},
			Statements: []ast.Statement{
				&ast.AssertStatement{Path: "sensor.battery", Value: ast.Float(0.42)},
			},
		},
		{
			Header: ast.Header{Version: 1, MessageID: "m4", Source: "planner", Destination: "executor", Timestamp: 1003},
			Statements: []ast.Statement{
				&ast.ControlStatement{
					Condition: "sensor.battery < 0.2",
					Then:      &ast.ActionStatement{Verb: "return_to_base", NamedArgs: ast.NewNamedArgs()},
					Else:      &ast.EventStatement{Name: "heartbeat", NamedArgs: ast.NewNamedArgs()},
				},
			},
		},
		{
			Header: ast.Header{Version: 1, MessageID: "m5", Source: "executor", Destination: "planner", Timestamp: 1004},
			Statements: []ast.Statement{
				&ast.EventStatement{Name: "obstacle_detected", Args: []ast.Value{ast.String("rock")}, NamedArgs: ast.NewNamedArgs()},
			},
		},
		{
			Header: ast.Header{Version: 1, MessageID: "m6", Source: "executor", Destination: "planner", Timestamp: 1005},
			Statements: []ast.Statement{
				&ast.ErrorStatement{Code: "ROUTING_DENIED", Message: "destination unknown", HasMessage: true},
			},
		},
		{
			Header: ast.Header{Version: 1, MessageID: "m7", Source: "planner", Destination: "executor", Timestamp: 1006},
			Statements: []ast.Statement{
				&ast.FoldStatement{FoldID: "f-1", Summary: "prior planning exchange", State: obj},
			},
		},
		{
			Header: ast.Header{Version: 1, MessageID: "m8", Source: "planner", Destination: "executor", Timestamp: 1007},
			Statements: []ast.Statement{
				&ast.RecallStatement{FoldID: "f-1"},
			},
		},
		{
			Header: ast.Header{Version: 1, MessageID: "m9", Source: "executor", Destination: "planner", Timestamp: 1008},
			Statements: []ast.Statement{
				&ast.SubscribeStatement{Pattern: "sensor.*", Filter: "sensor.battery < 0.5", HasFilter: true},
			},
		},
		{
			Header: ast.Header{Version: 1, MessageID: "m10", Source: "executor", Destination: "planner", Timestamp: 1009},
			Statements: []ast.Statement{
				&ast.UnsubscribeStatement{Pattern: "sensor.*"},
			},
		},
		{
			Header: ast.Header{Version: 1, MessageID: "m11", Source: "planner", Destination: "executor", Timestamp: 1010},
			Statements: []ast.Statement{
				&ast.KnowledgeStatement{Topic: "plan.status", Value: ast.String("active"), Version: 4},
			},
		},
		{
			// Multi-statement message to exercise the body's ';' separator.
			Header: ast.Header{Version: 1, MessageID: "m12", Source: "planner", Destination: "executor", Timestamp: 1011},
			Statements: []ast.Statement{
				&ast.ActionStatement{Verb: "ping", NamedArgs: ast.NewNamedArgs()},
				&ast.EventStatement{Name: "ack", NamedArgs: ast.NewNamedArgs()},
			},
		},
		{
			// Header-only message with no body statements.
			Header:     ast.Header{Version: 1, MessageID: "m13", Source: "planner", Destination: "executor", Timestamp: 1012},
			Statements: nil,
		},
	}
}

func TestParseMinifyRoundtrip(t *testing.T) {
	for _, want := range sampleMessages(t) {
		wire := minifier.Minify(want)
		got, err := grammar.Parse(wire)
		if err != nil {
			t.Fatalf("message %s: parse(minify(m)) failed: %v\nwire: %s", want.Header.MessageID, err, wire)
		}
		if !want.Equal(*got) {
			t.Errorf("message %s: round-trip mismatch\nwire: %s\nwant: %+v\ngot:  %+v", want.Header.MessageID, wire, want, got)
		}
	}
}

func TestParseMinifyRoundtrip_Idempotent(t *testing.T) {
	for _, want := range sampleMessages(t) {
		wire1 := minifier.Minify(want)
		msg, err := grammar.Parse(wire1)
		if err != nil {
			t.Fatalf("message %s: %v", want.Header.MessageID, err)
		}
		wire2 := minifier.Minify(msg)
		if wire1 != wire2 {
			t.Errorf("message %s: minify not idempotent:\nfirst:  %s\nsecond: %s", want.Header.MessageID, wire1, wire2)
		}
	}
}

func TestFoldFidelity(t *testing.T) {
	engine := fold.NewEngine()
	ms := make([]ast.Message, 0)
	for _, m := range sampleMessages(t) {
		ms = append(ms, *m)
	}

	stmt := engine.Fold(ms, "full conversation archive", nil)
	restored, err := engine.Unfold(stmt.FoldID)
	if err != nil {
		t.Fatalf("Unfold: %v", err)
	}
	if len(restored) != len(ms) {
		t.Fatalf("restored %d messages, want %d", len(restored), len(ms))
	}
	for i := range ms {
		if !ms[i].Equal(restored[i]) {
			t.Errorf("message %d: fold/unfold mismatch\nwant: %+v\ngot:  %+v", i, ms[i], restored[i])
		}
	}
}
