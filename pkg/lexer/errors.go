package lexer

import "fmt"

// LexicalError reports a character that matches no token pattern and is not
// in the specials table. Offset is the byte offset of the character within
// the lexed input.
type LexicalError struct {
	Char   string
	Offset int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error: unexpected character %q at offset %d", e.Char, e.Offset)
}
