package correlation

import "github.com/sagproto/sag/internal/ast"

// FindResponses returns every message in ms whose correlation equals id,
// in the order they appear in ms.
func FindResponses(ms []ast.Message, id string) []ast.Message {
	var out []ast.Message
	for _, m := range ms {
		if m.Header.Correlation != nil && *m.Header.Correlation == id {
			out = append(out, m)
		}
	}
	return out
}

// TraceThread follows correlation links backward from startID and returns
// the thread in chronological order (oldest first). A visited set breaks
// any cycle, which would indicate a bug upstream rather than a valid
// thread.
func TraceThread(ms []ast.Message, startID string) []ast.Message {
	byID := make(map[string]ast.Message, len(ms))
	for _, m := range ms {
		byID[m.Header.MessageID] = m
	}

	var reversed []ast.Message
	visited := make(map[string]bool)
	id := startID
	for {
		m, ok := byID[id]
		if !ok || visited[id] {
			break
		}
		visited[id] = true
		reversed = append(reversed, m)
		if m.Header.Correlation == nil {
			break
		}
		id = *m.Header.Correlation
	}

	out := make([]ast.Message, len(reversed))
	for i, m := range reversed {
		out[len(reversed)-1-i] = m
	}
	return out
}

// BuildConversationTree maps each message-id to the ids of messages
// directly correlated to it. Only ids with at least one child appear as
// keys; root ids (null correlation) never appear among the values.
func BuildConversationTree(ms []ast.Message) map[string][]string {
	tree := make(map[string][]string)
	for _, m := range ms {
		if m.Header.Correlation == nil {
			continue
		}
		parent := *m.Header.Correlation
		tree[parent] = append(tree[parent], m.Header.MessageID)
	}
	return tree
}
