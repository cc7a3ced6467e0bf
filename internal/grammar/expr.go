package grammar

import "github.com/alecthomas/participle/v2"

// The expression grammar implements the precedence ladder from §4.1
// (low→high): ||, &&, relational, additive, multiplicative, primary.
// Each level is a flat left-associative chain rather than classic
// left-recursion, since participle (an LL parser combinator) cannot parse
// left-recursive rules directly — the same restructuring the teacher's own
// grammar.go uses for its comma-separated lists.

type OrExprAST struct {
	Left *AndExprAST   `parser:"@@"`
	Rest []*AndExprAST `parser:"( \"||\" @@ )*"`
}

type AndExprAST struct {
	Left *RelExprAST   `parser:"@@"`
	Rest []*RelExprAST `parser:"( \"&&\" @@ )*"`
}

type RelTailAST struct {
	Op    string      `parser:"@(\"==\" | \"!=\" | \">=\" | \"<=\" | \">\" | \"<\")"`
	Right *AddExprAST `parser:"@@"`
}

type RelExprAST struct {
	Left *AddExprAST `parser:"@@"`
	Tail *RelTailAST `parser:"@@?"`
}

type AddOpAST struct {
	Op    string      `parser:"@(\"+\" | \"-\")"`
	Right *MulExprAST `parser:"@@"`
}

type AddExprAST struct {
	Left *MulExprAST `parser:"@@"`
	Ops  []*AddOpAST `parser:"@@*"`
}

type MulOpAST struct {
	Op    string      `parser:"@(\"*\" | \"/\")"`
	Right *PrimaryAST `parser:"@@"`
}

type MulExprAST struct {
	Left *PrimaryAST `parser:"@@"`
	Ops  []*MulOpAST `parser:"@@*"`
}

// PrimaryAST is either a literal/path value or a parenthesized
// sub-expression.
type PrimaryAST struct {
	Value *ValueAST  `parser:"  @@"`
	Paren *OrExprAST `parser:"| \"(\" @@ \")\""`
}

var exprParser = participle.MustBuild[OrExprAST](
	participle.Lexer(bodyLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseExpr parses a standalone expression string (e.g. one re-loaded from
// a Query.Expression or Subscribe.Filter field) into its AST. Both the
// body grammar and the evaluator use this for the same grammar so that
// evaluation re-parses exactly the language the parser accepted.
func ParseExpr(text string) (*OrExprAST, error) {
	ast, err := exprParser.ParseString("", text)
	if err != nil {
		return nil, enrichParseError(text, err)
	}
	return ast, nil
}
