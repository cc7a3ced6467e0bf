// Package grammar implements the SAG wire grammar (§4.1, §6) as a pair of
// participle struct-tag grammars — one for the header line, one for the
// statement body — plus a standalone expression grammar that the
// evaluator re-parses at call time. This mirrors the teacher's
// (ritamzico/pgraph) internal/dsl package: a participle.Simple lexer feeding
// a participle.MustBuild parser, with a convert.go pass turning the raw
// grammar AST into the package's own typed tree (here, internal/ast).
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// bodyLexer tokenizes the statement body (everything after the header
// line) and is shared by the body grammar and the standalone expression
// grammar, since expressions are always embedded inside a body statement
// or re-parsed from text captured out of one.
//
// The dot is deliberately NOT part of the body's Ident character class
// (unlike the literal reading of spec.md §4.1, which folds '.' into
// IDENT): topic patterns need '*'/'**' interspersed with literal segments,
// which is far simpler to express as "segment ('.' segment)*" at the
// grammar level than to recover from a greedy dotted-identifier token.
// Dotted paths (ASSERT/KNOW topics, expression paths) and topic patterns
// are reassembled by the parser from "Ident ( '.' Ident )*". The other
// identifier positions in the body (verbs, event names, policy ids,
// named-argument and object keys, fold ids, error codes) take a single
// Ident and so do not accept a '.'. The header lexer keeps '.' in its
// Ident, so agent, message and correlation ids may be dotted.
var bodyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Priority", Pattern: `\b(LOW|NORMAL|HIGH|CRITICAL)\b`},
	{Name: "Bool", Pattern: `\b(true|false)\b`},
	{Name: "Null", Pattern: `\bnull\b`},
	{Name: "Keyword", Pattern: `\b(DO|QUERY|WHERE|ASSERT|IF|THEN|ELSE|EVENT|ERROR|FOLD|RECALL|SUB|UNSUB|KNOW|BECAUSE|PRIO|P)\b`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
	{Name: "Star", Pattern: `\*\*|\*`},
	{Name: "Op", Pattern: `==|!=|>=|<=|&&|\|\||[<>+\-*/]`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_\-]*`},
	{Name: "Punct", Pattern: `[(),{}:;.\[\]@=]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// headerLexer tokenizes the single header line. It is intentionally
// smaller than bodyLexer: the header carries no expressions, strings, or
// topic patterns.
var headerLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_.\-]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[=\-]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})
