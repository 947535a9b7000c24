package parser

import (
	"fmt"

	"github.com/walteh/goliquid/pkg/lexer"
)

// SyntaxError reports a token that no grammar rule could accept. Token is
// the zero value when the input ended where more was expected; Offset then
// points just past the last token.
type SyntaxError struct {
	Token  lexer.Token
	Offset int
}

func (e *SyntaxError) Error() string {
	if e.Token == (lexer.Token{}) {
		return fmt.Sprintf("syntax error: unexpected end of expression at offset %d", e.Offset)
	}
	return fmt.Sprintf("syntax error: unexpected %s", e.Token)
}

// CursorUnderflowError reports a Jump that would move the cursor before the
// first token. Index is the cursor position at the time of the call, Offset
// the requested move.
type CursorUnderflowError struct {
	Index  int
	Offset int
}

func (e *CursorUnderflowError) Error() string {
	return fmt.Sprintf("cursor underflow: jump(%d) from index %d moves before the first token", e.Offset, e.Index)
}

// DepthError reports an expression nested beyond the parser's recursion
// limit.
type DepthError struct {
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("expression too deeply nested (limit %d)", e.Limit)
}
