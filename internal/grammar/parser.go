package grammar

import (
	"strings"

	"github.com/sagproto/sag/internal/ast"
)

// Parse turns wire text into a typed Message AST. The header line (up to
// the first newline) and the body (everything after it) are parsed with
// separate grammars, matching the wire format's own split (§6: "Message =
// header line \n body").
func Parse(text string) (*ast.Message, error) {
	nl := strings.IndexByte(text, '\n')
	if nl < 0 {
		return nil, ParseError{Line: 1, Column: len(text) + 1, Message: "missing header/body separator newline"}
	}
	headerLine, body := text[:nl], text[nl+1:]

	hAST, err := headerParser.ParseString("", headerLine)
	if err != nil {
		return nil, enrichParseError(headerLine, err)
	}

	msg := &ast.Message{Header: toHeader(hAST)}

	body = strings.TrimSpace(body)
	if body == "" {
		return msg, nil
	}

	bAST, err := bodyParser.ParseString("", body)
	if err != nil {
		return nil, enrichParseError(body, err)
	}

	msg.Statements = make([]ast.Statement, len(bAST.Statements))
	for i, s := range bAST.Statements {
		msg.Statements[i] = toStatement(s)
	}
	return msg, nil
}

// ParseStatement parses a single statement in isolation, for callers
// re-evaluating one recalled statement out of band.
func ParseStatement(text string) (ast.Statement, error) {
	sAST, err := statementParser.ParseString("", text)
	if err != nil {
		return nil, enrichParseError(text, err)
	}
	return toStatement(sAST), nil
}
