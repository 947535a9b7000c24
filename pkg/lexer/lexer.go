// Package lexer turns the interior of a single template tag into a stream of
// typed tokens. Patterns are tried in priority order at each position, so an
// input like "contains" is always a comparison and never an identifier.
// Characters that match no pattern fall back to a table of single-character
// specials; anything else is a lexical error.
package lexer

import (
	"regexp"

	"github.com/walteh/goliquid/pkg/scanner"
)

var (
	comparisonPattern   = regexp.MustCompile(`^(==|!=|<>|<=?|>=?|contains)`)
	singleStringPattern = regexp.MustCompile(`^'[^']*'`)
	doubleStringPattern = regexp.MustCompile(`^"[^"]*"`)
	numberPattern       = regexp.MustCompile(`^-?\d+(\.\d+)?`)
	identifierPattern   = regexp.MustCompile(`^[a-zA-Z_][\w-]*\??`)
	rangePattern        = regexp.MustCompile(`^\.\.`)
)

// matchers are tried in order. Comparison outranks identifier so that
// "contains" lexes as an operator, number outranks the specials fallback so
// that "-5" is one negative number rather than a dash and a number.
var matchers = []struct {
	pattern *regexp.Regexp
	typ     TokenType
}{
	{comparisonPattern, TokenComparison},
	{singleStringPattern, TokenString},
	{doubleStringPattern, TokenString},
	{numberPattern, TokenNumber},
	{identifierPattern, TokenIdentifier},
	{rangePattern, TokenRange},
}

var specials = map[string]TokenType{
	"|": TokenPipe,
	".": TokenDot,
	":": TokenColon,
	",": TokenComma,
	"[": TokenOpenSquare,
	"]": TokenCloseSquare,
	"(": TokenOpenRound,
	")": TokenCloseRound,
	"?": TokenQuestion,
	"-": TokenDash,
}

// Lexer lexes one tag interior. Tag delimiters are expected to be stripped
// already, see tokenizer.TagInterior.
type Lexer struct {
	scanner *scanner.Scanner
}

func New(source string) *Lexer {
	return &Lexer{scanner: scanner.New(source)}
}

// Tokens returns the token stream over the lexer's input. The stream shares
// the lexer's scanner, so it is not restartable: a second call continues
// where the first left off.
func (l *Lexer) Tokens() *Tokens {
	return &Tokens{scanner: l.scanner}
}

// Tokens is a lazy token stream. Iterate with Scan/Token and inspect Err
// when Scan returns false, in the manner of bufio.Scanner.
type Tokens struct {
	scanner *scanner.Scanner
	current Token
	err     error
	done    bool
}

// Scan advances to the next token. It returns false at the end of the input
// or on a lexical error; Err distinguishes the two.
func (t *Tokens) Scan() bool {
	if t.done || t.err != nil {
		return false
	}

	for _, m := range matchers {
		if !t.scanner.Check(m.pattern) {
			continue
		}
		offset := t.scanner.Position()
		value, _ := t.scanner.Scan(m.pattern)
		t.current = Token{Type: m.typ, Lexeme: value, Offset: offset}
		return true
	}

	// every Check above skips leading whitespace, so the cursor now sits on
	// the unmatched character itself
	if t.scanner.IsEOS() {
		t.done = true
		return false
	}

	offset := t.scanner.Position()
	char, _ := t.scanner.GetChar()
	if typ, ok := specials[char]; ok {
		t.current = Token{Type: typ, Lexeme: char, Offset: offset}
		return true
	}

	t.err = &LexicalError{Char: char, Offset: offset}
	t.done = true
	return false
}

// Token returns the token produced by the last successful Scan.
func (t *Tokens) Token() Token {
	return t.current
}

// Err returns the lexical error that stopped the stream, or nil if the
// input simply ended.
func (t *Tokens) Err() error {
	return t.err
}

// All drains the stream and returns every remaining token, or the lexical
// error that interrupted it.
func (t *Tokens) All() ([]Token, error) {
	var tokens []Token
	for t.Scan() {
		tokens = append(tokens, t.Token())
	}
	if err := t.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
