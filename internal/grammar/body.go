package grammar

import "github.com/alecthomas/participle/v2"

// ArgItemAST is one entry in a call's argument list: either "name=value"
// or a bare positional value. NamedArgAST is tried first so that
// "verb(n=1)" isn't misread as a positional path "n" followed by a stray
// "=1".
type ArgItemAST struct {
	Named *NamedArgAST `parser:"  @@"`
	Pos   *ValueAST    `parser:"| @@"`
}

type NamedArgAST struct {
	Name  string    `parser:"@Ident \"=\""`
	Value *ValueAST `parser:"@@"`
}

type ArgListAST struct {
	Items []*ArgItemAST `parser:"( @@ ( \",\" @@ )* )?"`
}

// PolicyAST is the "<id>[(expr)]" clause following the "P:" marker.
type PolicyAST struct {
	ID   string     `parser:"@Ident"`
	Expr *OrExprAST `parser:"( \"(\" @@ \")\" )?"`
}

// ReasonAST is the clause following "BECAUSE": either a quoted free-text
// string or a bare expression (§3, §8 property 7 decides which at
// conversion time for the bare-expression case).
type ReasonAST struct {
	Str  *string    `parser:"  @String"`
	Expr *OrExprAST `parser:"| @@"`
}

type ActionAST struct {
	Verb   string      `parser:"@Ident"`
	Args   *ArgListAST `parser:"\"(\" @@? \")\""`
	Policy *PolicyAST  `parser:"( \"P\" \":\" @@ )?"`
	Prio   *string     `parser:"( \"PRIO\" \"=\" @Priority )?"`
	Reason *ReasonAST  `parser:"( \"BECAUSE\" @@ )?"`
}

type QueryAST struct {
	Expr       *OrExprAST `parser:"@@"`
	Constraint *OrExprAST `parser:"( \"WHERE\" @@ )?"`
}

type AssertAST struct {
	Path  *PathAST  `parser:"@@"`
	Value *ValueAST `parser:"\"=\" @@"`
}

type ControlAST struct {
	Condition *OrExprAST    `parser:"@@"`
	Then      *StatementAST `parser:"\"THEN\" @@"`
	Else      *StatementAST `parser:"( \"ELSE\" @@ )?"`
}

type EventAST struct {
	Name string      `parser:"@Ident"`
	Args *ArgListAST `parser:"\"(\" @@? \")\""`
}

type ErrorAST struct {
	Code    string  `parser:"@Ident"`
	Message *string `parser:"@String?"`
}

type FoldAST struct {
	FoldID  string       `parser:"@Ident"`
	Summary string       `parser:"@String"`
	State   *ValueObjAST `parser:"@@?"`
}

type RecallAST struct {
	FoldID string `parser:"@Ident"`
}

type SubAST struct {
	Pattern *PatternAST `parser:"@@"`
	Filter  *OrExprAST  `parser:"( \"WHERE\" @@ )?"`
}

type UnsubAST struct {
	Pattern *PatternAST `parser:"@@"`
}

type KnowAST struct {
	Topic   *PathAST  `parser:"@@"`
	Value   *ValueAST `parser:"\"=\" @@"`
	Version int64     `parser:"\"@\" @Int"`
}

// StatementAST dispatches on the leading keyword of a body statement.
type StatementAST struct {
	Action  *ActionAST  `parser:"  \"DO\" @@"`
	Query   *QueryAST   `parser:"| \"QUERY\" @@"`
	Assert  *AssertAST  `parser:"| \"ASSERT\" @@"`
	Control *ControlAST `parser:"| \"IF\" @@"`
	Event   *EventAST   `parser:"| \"EVENT\" @@"`
	Err     *ErrorAST   `parser:"| \"ERROR\" @@"`
	Fold    *FoldAST    `parser:"| \"FOLD\" @@"`
	Recall  *RecallAST  `parser:"| \"RECALL\" @@"`
	Sub     *SubAST     `parser:"| \"SUB\" @@"`
	Unsub   *UnsubAST   `parser:"| \"UNSUB\" @@"`
	Know    *KnowAST    `parser:"| \"KNOW\" @@"`
}

// BodyAST is the full semicolon-separated statement list.
type BodyAST struct {
	Statements []*StatementAST `parser:"@@ ( \";\" @@ )* \";\"?"`
}

var bodyParser = participle.MustBuild[BodyAST](
	participle.Lexer(bodyLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

var statementParser = participle.MustBuild[StatementAST](
	participle.Lexer(bodyLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
