// Package minifier renders a Message AST back into its canonical wire
// form (§4.2): no insignificant whitespace, a strict single space between
// header fields, a single newline between header and body, ';'-separated
// statements, and named args following positional args in insertion
// order with a bare ',' separator.
package minifier

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sagproto/sag/internal/ast"
)

// Minify renders m to its canonical wire text.
func Minify(m *ast.Message) string {
	var b strings.Builder
	writeHeader(&b, m.Header)
	b.WriteByte('\n')
	for i, s := range m.Statements {
		if i > 0 {
			b.WriteByte(';')
		}
		writeStatement(&b, s)
	}
	if len(m.Statements) > 0 {
		b.WriteByte(';')
	}
	return b.String()
}

func writeHeader(b *strings.Builder, h ast.Header) {
	b.WriteString("H v ")
	b.WriteString(strconv.FormatUint(uint64(h.Version), 10))
	b.WriteString(" id=")
	b.WriteString(h.MessageID)
	b.WriteString(" src=")
	b.WriteString(string(h.Source))
	b.WriteString(" dst=")
	b.WriteString(string(h.Destination))
	b.WriteString(" ts=")
	b.WriteString(strconv.FormatInt(h.Timestamp, 10))
	if h.Correlation != nil {
		b.WriteString(" corr=")
		b.WriteString(*h.Correlation)
	}
	if h.TTL != nil {
		b.WriteString(" ttl=")
		b.WriteString(strconv.FormatUint(uint64(*h.TTL), 10))
	}
}

// TokenCount is the heuristic used to budget context usage: ceil(len/4).
func TokenCount(wire string) int {
	return (len(wire) + 3) / 4
}

// JSONEquivalent renders m as JSON for size/readability comparison only —
// it is not a wire format and cannot be parsed back by this package.
func JSONEquivalent(m *ast.Message) ([]byte, error) {
	return json.Marshal(jsonMessage(m))
}

func jsonMessage(m *ast.Message) map[string]any {
	stmts := make([]any, len(m.Statements))
	for i, s := range m.Statements {
		stmts[i] = jsonStatement(s)
	}
	hdr := map[string]any{
		"version": m.Header.Version,
		"id":      m.Header.MessageID,
		"src":     m.Header.Source,
		"dst":     m.Header.Destination,
		"ts":      m.Header.Timestamp,
	}
	if m.Header.Correlation != nil {
		hdr["corr"] = *m.Header.Correlation
	}
	if m.Header.TTL != nil {
		hdr["ttl"] = *m.Header.TTL
	}
	return map[string]any{"header": hdr, "statements": stmts}
}

func jsonStatement(s ast.Statement) any {
	var b strings.Builder
	writeStatement(&b, s)
	return b.String()
}

func quote(s string) string { return ast.Render(ast.String(s)) }

func writeArgs(b *strings.Builder, pos []ast.Value, named *ast.NamedArgs) {
	b.WriteByte('(')
	first := true
	for _, v := range pos {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(ast.Render(v))
	}
	if named != nil {
		for pair := named.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			b.WriteString(pair.Key)
			b.WriteByte('=')
			b.WriteString(ast.Render(pair.Value))
		}
	}
	b.WriteByte(')')
}

func writeObjectLiteral(b *strings.Builder, o *ast.ObjectMap) {
	b.WriteString(ast.Render(ast.Object(o)))
}

func writeStatement(b *strings.Builder, s ast.Statement) {
	switch v := s.(type) {
	case *ast.ActionStatement:
		b.WriteString("DO ")
		b.WriteString(v.Verb)
		writeArgs(b, v.Args, v.NamedArgs)
		if v.Policy != nil {
			b.WriteString(" P:")
			b.WriteString(v.Policy.ID)
			if v.Policy.HasExpr {
				b.WriteByte('(')
				b.WriteString(v.Policy.Expr)
				b.WriteByte(')')
			}
		}
		if v.Priority != ast.PriorityUnset {
			b.WriteString(" PRIO=")
			b.WriteString(v.Priority.String())
		}
		if v.Reason != "" {
			b.WriteString(" BECAUSE ")
			if v.ReasonIsExpr {
				b.WriteString(v.Reason)
			} else {
				b.WriteString(quote(v.Reason))
			}
		}

	case *ast.QueryStatement:
		b.WriteString("QUERY ")
		b.WriteString(v.Expression)
		if v.HasConstraint {
			b.WriteString(" WHERE ")
			b.WriteString(v.Constraint)
		}

	case *ast.AssertStatement:
		b.WriteString("ASSERT ")
		b.WriteString(v.Path)
		b.WriteByte('=')
		b.WriteString(ast.Render(v.Value))

	case *ast.ControlStatement:
		b.WriteString("IF ")
		b.WriteString(v.Condition)
		b.WriteString(" THEN ")
		writeStatement(b, v.Then)
		if v.Else != nil {
			b.WriteString(" ELSE ")
			writeStatement(b, v.Else)
		}

	case *ast.EventStatement:
		b.WriteString("EVENT ")
		b.WriteString(v.Name)
		writeArgs(b, v.Args, v.NamedArgs)

	case *ast.ErrorStatement:
		b.WriteString("ERROR ")
		b.WriteString(v.Code)
		if v.HasMessage {
			b.WriteByte(' ')
			b.WriteString(quote(v.Message))
		}

	case *ast.FoldStatement:
		b.WriteString("FOLD ")
		b.WriteString(v.FoldID)
		b.WriteByte(' ')
		b.WriteString(quote(v.Summary))
		if v.State != nil {
			b.WriteByte(' ')
			writeObjectLiteral(b, v.State)
		}

	case *ast.RecallStatement:
		b.WriteString("RECALL ")
		b.WriteString(v.FoldID)

	case *ast.SubscribeStatement:
		b.WriteString("SUB ")
		b.WriteString(v.Pattern)
		if v.HasFilter {
			b.WriteString(" WHERE ")
			b.WriteString(v.Filter)
		}

	case *ast.UnsubscribeStatement:
		b.WriteString("UNSUB ")
		b.WriteString(v.Pattern)

	case *ast.KnowledgeStatement:
		b.WriteString("KNOW ")
		b.WriteString(v.Topic)
		b.WriteByte('=')
		b.WriteString(ast.Render(v.Value))
		b.WriteByte('@')
		b.WriteString(strconv.FormatUint(v.Version, 10))
	}
}
