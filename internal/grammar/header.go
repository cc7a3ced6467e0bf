package grammar

import "github.com/alecthomas/participle/v2"

// HeaderAST is the grammar for the single header line (§6):
//
//	H v <INT> id=<IDENT> src=<IDENT> dst=<IDENT> ts=<INT> [corr=<IDENT>|-] [ttl=<INT>]
type HeaderAST struct {
	Version int64   `parser:"\"H\" \"v\" @Int"`
	ID      string  `parser:"\"id\" \"=\" @Ident"`
	Src     string  `parser:"\"src\" \"=\" @Ident"`
	Dst     string  `parser:"\"dst\" \"=\" @Ident"`
	Ts      int64   `parser:"\"ts\" \"=\" @Int"`
	Corr    *string `parser:"( \"corr\" \"=\" ( @Ident | \"-\" ) )?"`
	TTL     *int64  `parser:"( \"ttl\" \"=\" @Int )?"`
}

var headerParser = participle.MustBuild[HeaderAST](
	participle.Lexer(headerLexer),
	participle.Elide("Whitespace"),
)
