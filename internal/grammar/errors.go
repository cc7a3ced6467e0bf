package grammar

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

// ParseError is the typed failure returned for any grammar/lexer problem,
// carrying the line and column participle attached to the offending token
// (§4.1, §7 PARSE_ERROR).
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

func enrichParseError(_ string, err error) error {
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		return ParseError{Line: pos.Line, Column: pos.Column, Message: perr.Message()}
	}
	return ParseError{Line: 0, Column: 0, Message: err.Error()}
}
