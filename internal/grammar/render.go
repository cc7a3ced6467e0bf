package grammar

import "github.com/sagproto/sag/internal/ast"

// RenderExpr re-serializes a parsed expression AST into the canonical
// string stored verbatim on the owning statement (Query.Expression,
// Control.Condition, Subscribe.Filter, Action.Reason/Policy.Expr). Because
// the ladder structure is unambiguous, the text always re-parses to an
// identical tree, which is what the parse/minify round-trip property
// (§8 property 1) actually needs — byte-identical source text is not.
func RenderExpr(e *OrExprAST) string {
	s := renderAnd(e.Left)
	for _, r := range e.Rest {
		s += "||" + renderAnd(r)
	}
	return s
}

func renderAnd(e *AndExprAST) string {
	s := renderRel(e.Left)
	for _, r := range e.Rest {
		s += "&&" + renderRel(r)
	}
	return s
}

func renderRel(e *RelExprAST) string {
	s := renderAdd(e.Left)
	if e.Tail != nil {
		s += e.Tail.Op + renderAdd(e.Tail.Right)
	}
	return s
}

func renderAdd(e *AddExprAST) string {
	s := renderMul(e.Left)
	for _, op := range e.Ops {
		// Ident admits '-', so an unpadded "a-b" would re-lex as one path.
		if op.Op == "-" {
			s += " - " + renderMul(op.Right)
			continue
		}
		s += op.Op + renderMul(op.Right)
	}
	return s
}

func renderMul(e *MulExprAST) string {
	s := renderPrimary(e.Left)
	for _, op := range e.Ops {
		s += op.Op + renderPrimary(op.Right)
	}
	return s
}

func renderPrimary(e *PrimaryAST) string {
	if e.Paren != nil {
		return "(" + RenderExpr(e.Paren) + ")"
	}
	return renderValueAST(e.Value)
}

func renderValueAST(v *ValueAST) string {
	return ast.Render(toValue(v))
}

func renderPath(p *PathAST) string {
	s := p.Segments[0]
	for _, seg := range p.Segments[1:] {
		s += "." + seg
	}
	return s
}

func renderPattern(p *PatternAST) string {
	s := renderPatternSeg(p.Segments[0])
	for _, seg := range p.Segments[1:] {
		s += "." + renderPatternSeg(seg)
	}
	return s
}

func renderPatternSeg(s *PatternSegAST) string {
	switch {
	case s.DoubleStar:
		return "**"
	case s.SingleStar:
		return "*"
	default:
		return *s.Name
	}
}
