// Package serialization checkpoints engine state to JSON. The wire format
// itself (§6) is the canonical way messages travel between agents, but
// callers that want to persist a knowledge engine's facts across a
// restart need a format that isn't itself a SAG message — this mirrors
// the typed-value marshal/unmarshal idiom the teacher used for its own
// graph persistence, adapted to ast.Value's eight-kind union instead of
// the teacher's four.
package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sagproto/sag/internal/ast"
)

type serializedValue struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value,omitempty"`
}

func marshalValue(v ast.Value) (serializedValue, error) {
	switch v.Kind {
	case ast.StringVal:
		b, err := json.Marshal(v.S)
		return serializedValue{Kind: "string", Value: b}, err
	case ast.IntVal:
		b, err := json.Marshal(v.I)
		return serializedValue{Kind: "int", Value: b}, err
	case ast.FloatVal:
		b, err := json.Marshal(v.F)
		return serializedValue{Kind: "float", Value: b}, err
	case ast.BoolVal:
		b, err := json.Marshal(v.B)
		return serializedValue{Kind: "bool", Value: b}, err
	case ast.NullVal:
		return serializedValue{Kind: "null"}, nil
	case ast.PathVal:
		b, err := json.Marshal(v.Path)
		return serializedValue{Kind: "path", Value: b}, err
	case ast.ListVal:
		items := make([]serializedValue, len(v.List))
		for i, it := range v.List {
			sv, err := marshalValue(it)
			if err != nil {
				return serializedValue{}, fmt.Errorf("list item %d: %w", i, err)
			}
			items[i] = sv
		}
		b, err := json.Marshal(items)
		return serializedValue{Kind: "list", Value: b}, err
	case ast.ObjectVal:
		obj := make(map[string]serializedValue)
		if v.Obj != nil {
			for pair := v.Obj.Oldest(); pair != nil; pair = pair.Next() {
				sv, err := marshalValue(pair.Value)
				if err != nil {
					return serializedValue{}, fmt.Errorf("object field %s: %w", pair.Key, err)
				}
				obj[pair.Key] = sv
			}
		}
		b, err := json.Marshal(obj)
		return serializedValue{Kind: "object", Value: b}, err
	default:
		return serializedValue{}, fmt.Errorf("unknown value kind %v", v.Kind)
	}
}

func unmarshalValue(sv serializedValue) (ast.Value, error) {
	switch sv.Kind {
	case "string":
		var s string
		if err := json.Unmarshal(sv.Value, &s); err != nil {
			return ast.Value{}, fmt.Errorf("decoding string: %w", err)
		}
		return ast.String(s), nil
	case "int":
		var i int64
		if err := json.Unmarshal(sv.Value, &i); err != nil {
			return ast.Value{}, fmt.Errorf("decoding int: %w", err)
		}
		return ast.Int(i), nil
	case "float":
		var f float64
		if err := json.Unmarshal(sv.Value, &f); err != nil {
			return ast.Value{}, fmt.Errorf("decoding float: %w", err)
		}
		return ast.Float(f), nil
	case "bool":
		var b bool
		if err := json.Unmarshal(sv.Value, &b); err != nil {
			return ast.Value{}, fmt.Errorf("decoding bool: %w", err)
		}
		return ast.Bool(b), nil
	case "null":
		return ast.Null(), nil
	case "path":
		var p string
		if err := json.Unmarshal(sv.Value, &p); err != nil {
			return ast.Value{}, fmt.Errorf("decoding path: %w", err)
		}
		return ast.Path(p), nil
	case "list":
		var items []serializedValue
		if err := json.Unmarshal(sv.Value, &items); err != nil {
			return ast.Value{}, fmt.Errorf("decoding list: %w", err)
		}
		vals := make([]ast.Value, len(items))
		for i, it := range items {
			v, err := unmarshalValue(it)
			if err != nil {
				return ast.Value{}, fmt.Errorf("list item %d: %w", i, err)
			}
			vals[i] = v
		}
		return ast.List(vals), nil
	case "object":
		var fields map[string]serializedValue
		if err := json.Unmarshal(sv.Value, &fields); err != nil {
			return ast.Value{}, fmt.Errorf("decoding object: %w", err)
		}
		m := ast.NewObjectMap()
		for k, sv := range fields {
			v, err := unmarshalValue(sv)
			if err != nil {
				return ast.Value{}, fmt.Errorf("object field %s: %w", k, err)
			}
			m.Set(k, v)
		}
		return ast.Object(m), nil
	default:
		return ast.Value{}, fmt.Errorf("unknown serialized value kind %q", sv.Kind)
	}
}

// Fact pairs a stored value with its version, the shape a knowledge
// engine's fact table carries per topic.
type Fact struct {
	Value   ast.Value
	Version uint64
}

type factCheckpoint struct {
	Topic   string          `json:"topic"`
	Value   serializedValue `json:"value"`
	Version uint64          `json:"version"`
}

// WriteFacts encodes topic→Fact pairs to w as JSON, sorted by topic so
// the output is stable across runs.
func WriteFacts(facts map[string]Fact, w io.Writer) error {
	topics := make([]string, 0, len(facts))
	for topic := range facts {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	checkpoints := make([]factCheckpoint, 0, len(facts))
	for _, topic := range topics {
		f := facts[topic]
		sv, err := marshalValue(f.Value)
		if err != nil {
			return fmt.Errorf("topic %s: %w", topic, err)
		}
		checkpoints = append(checkpoints, factCheckpoint{Topic: topic, Value: sv, Version: f.Version})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(checkpoints)
}

// ReadFacts decodes a JSON fact checkpoint from r back into a
// topic→Fact map, ready to replay through a knowledge engine's
// ApplyIncoming as KnowledgeStatements.
func ReadFacts(r io.Reader) (map[string]Fact, error) {
	var checkpoints []factCheckpoint
	if err := json.NewDecoder(r).Decode(&checkpoints); err != nil {
		return nil, fmt.Errorf("decoding fact checkpoint: %w", err)
	}
	out := make(map[string]Fact, len(checkpoints))
	for _, c := range checkpoints {
		v, err := unmarshalValue(c.Value)
		if err != nil {
			return nil, fmt.Errorf("topic %s: %w", c.Topic, err)
		}
		out[c.Topic] = Fact{Value: v, Version: c.Version}
	}
	return out, nil
}

// SaveFacts writes a fact checkpoint to a file at path.
func SaveFacts(facts map[string]Fact, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	defer f.Close()
	return WriteFacts(facts, f)
}

// LoadFacts reads a fact checkpoint from a file at path.
func LoadFacts(path string) (map[string]Fact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()
	return ReadFacts(f)
}

