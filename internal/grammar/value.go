package grammar

// ValueAST is the literal-or-path grammar shared by argument values,
// ASSERT/KNOW values, fold state entries, and expression primaries.
type ValueAST struct {
	Str   *string       `parser:"  @String"`
	Float *float64      `parser:"| @Float"`
	Int   *int64        `parser:"| @Int"`
	Bool  *string       `parser:"| @Bool"`
	Null  bool          `parser:"| @Null"`
	List  *ValueListAST `parser:"| @@"`
	Obj   *ValueObjAST  `parser:"| @@"`
	Path  *PathAST      `parser:"| @@"`
}

type ValueListAST struct {
	Items []*ValueAST `parser:"\"[\" ( @@ ( \",\" @@ )* )? \"]\""`
}

type ValuePairAST struct {
	Key   string    `parser:"@Ident \":\""`
	Value *ValueAST `parser:"@@"`
}

type ValueObjAST struct {
	Pairs []*ValuePairAST `parser:"\"{\" ( @@ ( \",\" @@ )* )? \"}\""`
}

// PathAST is a dotted sequence of plain identifiers: "a.b.c".
type PathAST struct {
	Segments []string `parser:"@Ident ( \".\" @Ident )*"`
}

// PatternAST is a dotted sequence of identifier / '*' / '**' segments, used
// by SUB and UNSUB topic patterns.
type PatternAST struct {
	Segments []*PatternSegAST `parser:"@@ ( \".\" @@ )*"`
}

type PatternSegAST struct {
	DoubleStar bool    `parser:"  @\"**\""`
	SingleStar bool    `parser:"| @\"*\""`
	Name       *string `parser:"| @Ident"`
}
