package grammar

import (
	"strings"

	"github.com/sagproto/sag/internal/ast"
)

func toValue(v *ValueAST) ast.Value {
	switch {
	case v.Str != nil:
		return ast.String(unescapeString(*v.Str))
	case v.Float != nil:
		return ast.Float(*v.Float)
	case v.Int != nil:
		return ast.Int(*v.Int)
	case v.Bool != nil:
		return ast.Bool(*v.Bool == "true")
	case v.Null:
		return ast.Null()
	case v.List != nil:
		items := make([]ast.Value, len(v.List.Items))
		for i, it := range v.List.Items {
			items[i] = toValue(it)
		}
		return ast.List(items)
	case v.Obj != nil:
		m := ast.NewObjectMap()
		for _, p := range v.Obj.Pairs {
			m.Set(p.Key, toValue(p.Value))
		}
		return ast.Object(m)
	case v.Path != nil:
		return ast.Path(renderPath(v.Path))
	default:
		return ast.Null()
	}
}

// unescapeString reverses the lexer's quoting: strips the surrounding
// quotes and resolves the \", \\, \n, \r, \t escapes (§4.1).
func unescapeString(tok string) string {
	inner := tok[1 : len(tok)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(inner[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// operatorSubstrings are the tokens whose presence in a bare (unquoted)
// reason marks it as an expression rather than free text (§4.1, §8
// property 7).
var operatorSubstrings = []string{">=", "<=", "==", "!=", "&&", "||", ">", "<"}

func looksLikeExpression(s string) bool {
	for _, op := range operatorSubstrings {
		if strings.Contains(s, op) {
			return true
		}
	}
	return false
}

func toArgs(list *ArgListAST) ([]ast.Value, *ast.NamedArgs) {
	var positional []ast.Value
	named := ast.NewNamedArgs()
	if list == nil {
		return positional, named
	}
	for _, item := range list.Items {
		if item.Named != nil {
			named.Set(item.Named.Name, toValue(item.Named.Value))
		} else {
			positional = append(positional, toValue(item.Pos))
		}
	}
	return positional, named
}

func toStatement(s *StatementAST) ast.Statement {
	switch {
	case s.Action != nil:
		return toAction(s.Action)
	case s.Query != nil:
		q := &ast.QueryStatement{Expression: RenderExpr(s.Query.Expr)}
		if s.Query.Constraint != nil {
			q.Constraint = RenderExpr(s.Query.Constraint)
			q.HasConstraint = true
		}
		return q
	case s.Assert != nil:
		return &ast.AssertStatement{Path: renderPath(s.Assert.Path), Value: toValue(s.Assert.Value)}
	case s.Control != nil:
		c := &ast.ControlStatement{
			Condition: RenderExpr(s.Control.Condition),
			Then:      toStatement(s.Control.Then),
		}
		if s.Control.Else != nil {
			c.Else = toStatement(s.Control.Else)
		}
		return c
	case s.Event != nil:
		pos, named := toArgs(s.Event.Args)
		return &ast.EventStatement{Name: s.Event.Name, Args: pos, NamedArgs: named}
	case s.Err != nil:
		e := &ast.ErrorStatement{Code: s.Err.Code}
		if s.Err.Message != nil {
			e.Message = unescapeString(*s.Err.Message)
			e.HasMessage = true
		}
		return e
	case s.Fold != nil:
		f := &ast.FoldStatement{FoldID: s.Fold.FoldID, Summary: unescapeString(s.Fold.Summary)}
		if s.Fold.State != nil {
			f.State = toObjectMap(s.Fold.State)
		}
		return f
	case s.Recall != nil:
		return &ast.RecallStatement{FoldID: s.Recall.FoldID}
	case s.Sub != nil:
		sub := &ast.SubscribeStatement{Pattern: renderPattern(s.Sub.Pattern)}
		if s.Sub.Filter != nil {
			sub.Filter = RenderExpr(s.Sub.Filter)
			sub.HasFilter = true
		}
		return sub
	case s.Unsub != nil:
		return &ast.UnsubscribeStatement{Pattern: renderPattern(s.Unsub.Pattern)}
	case s.Know != nil:
		return &ast.KnowledgeStatement{
			Topic:   renderPath(s.Know.Topic),
			Value:   toValue(s.Know.Value),
			Version: uint64(s.Know.Version),
		}
	default:
		return nil
	}
}

func toObjectMap(o *ValueObjAST) *ast.ObjectMap {
	m := ast.NewObjectMap()
	for _, p := range o.Pairs {
		m.Set(p.Key, toValue(p.Value))
	}
	return m
}

func toAction(a *ActionAST) *ast.ActionStatement {
	pos, named := toArgs(a.Args)
	act := &ast.ActionStatement{Verb: a.Verb, Args: pos, NamedArgs: named}

	if a.Policy != nil {
		policy := &ast.ActionPolicy{ID: a.Policy.ID}
		if a.Policy.Expr != nil {
			policy.Expr = RenderExpr(a.Policy.Expr)
			policy.HasExpr = true
		}
		act.Policy = policy
	}

	if a.Prio != nil {
		if p, ok := ast.ParsePriority(*a.Prio); ok {
			act.Priority = p
		}
	}

	if a.Reason != nil {
		switch {
		case a.Reason.Str != nil:
			act.Reason = unescapeString(*a.Reason.Str)
			act.ReasonIsExpr = false
		case a.Reason.Expr != nil:
			text := RenderExpr(a.Reason.Expr)
			act.Reason = text
			act.ReasonIsExpr = looksLikeExpression(text)
		}
	}

	return act
}

func toHeader(h *HeaderAST) ast.Header {
	hdr := ast.Header{
		Version:     uint32(h.Version),
		MessageID:   h.ID,
		Source:      ast.AgentID(h.Src),
		Destination: ast.AgentID(h.Dst),
		Timestamp:   h.Ts,
	}
	if h.Corr != nil {
		corr := *h.Corr
		hdr.Correlation = &corr
	}
	if h.TTL != nil {
		ttl := uint32(*h.TTL)
		hdr.TTL = &ttl
	}
	return hdr
}

// ToValue converts a literal/path/list/object grammar node into its
// ast.Value. Exported for the evaluator, which needs to turn a ValueAST
// leaf into a Value directly (paths still route through Context there,
// not through this function).
func ToValue(v *ValueAST) ast.Value { return toValue(v) }

// PathString renders a parsed dotted path back to its "a.b.c" form.
// Exported for the evaluator, which resolves a path Value against a
// Context using this string form.
func PathString(p *PathAST) string { return renderPath(p) }
