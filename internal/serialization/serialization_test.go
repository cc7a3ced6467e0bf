package serialization

import (
	"bytes"
	"testing"

	"github.com/sagproto/sag/internal/ast"
)

func TestWriteReadFacts_Roundtrip(t *testing.T) {
	facts := map[string]Fact{
		"sensor.battery": {Value: ast.Float(0.75), Version: 3},
		"plan.status":    {Value: ast.String("active"), Version: 1},
		"plan.steps":     {Value: ast.List([]ast.Value{ast.Int(1), ast.Int(2)}), Version: 2},
	}

	var buf bytes.Buffer
	if err := WriteFacts(facts, &buf); err != nil {
		t.Fatalf("WriteFacts: %v", err)
	}

	got, err := ReadFacts(&buf)
	if err != nil {
		t.Fatalf("ReadFacts: %v", err)
	}
	if len(got) != len(facts) {
		t.Fatalf("got %d facts, want %d", len(got), len(facts))
	}
	for topic, want := range facts {
		have, ok := got[topic]
		if !ok {
			t.Fatalf("missing topic %s after roundtrip", topic)
		}
		if have.Version != want.Version {
			t.Errorf("topic %s: version = %d, want %d", topic, have.Version, want.Version)
		}
		if !ast.Equal(have.Value, want.Value) {
			t.Errorf("topic %s: value = %+v, want %+v", topic, have.Value, want.Value)
		}
	}
}

func TestWriteReadFacts_ObjectAndNull(t *testing.T) {
	obj := ast.NewObjectMap()
	obj.Set("retries", ast.Int(2))
	obj.Set("timeout", ast.Null())
	facts := map[string]Fact{
		"agent.config": {Value: ast.Object(obj), Version: 1},
	}

	var buf bytes.Buffer
	if err := WriteFacts(facts, &buf); err != nil {
		t.Fatalf("WriteFacts: %v", err)
	}

	got, err := ReadFacts(&buf)
	if err != nil {
		t.Fatalf("ReadFacts: %v", err)
	}
	if !ast.Equal(got["agent.config"].Value, facts["agent.config"].Value) {
		t.Errorf("object roundtrip mismatch: got %+v", got["agent.config"].Value)
	}
}

func TestReadFacts_InvalidJSON(t *testing.T) {
	_, err := ReadFacts(bytes.NewBufferString("not json"))
	if err == nil {
		t.Fatal("expected an error decoding invalid JSON")
	}
}
