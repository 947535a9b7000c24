// Package scanner provides a cursor over an immutable source string with
// regex driven matching. It is the shared substrate of the tokenizer and the
// lexer: patterns are anchored at the cursor, surrounding whitespace is
// consumed automatically, and the cursor only ever moves forward.
package scanner

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// Scanner walks a source string one match at a time. A Scanner is not safe
// for concurrent use; each lexing pass owns exactly one.
type Scanner struct {
	source string
	index  int
	length int
}

func New(source string) *Scanner {
	return &Scanner{
		source: source,
		index:  0,
		length: len(source),
	}
}

// Position returns the current byte offset, capped at the source length.
func (s *Scanner) Position() int {
	return min(s.index, s.length)
}

// IsEOS reports whether the cursor is at the end of the source.
func (s *Scanner) IsEOS() bool {
	return s.Position() == s.length
}

// Skip moves the cursor n bytes ahead, clamped to the end of the source.
// Negative counts are ignored, the cursor never moves backward.
func (s *Scanner) Skip(n int) {
	if n < 0 {
		return
	}
	s.index = min(s.Position()+n, s.length)
}

// Rest returns everything from the cursor to the end of the source. The
// second return is false once the scanner is exhausted.
func (s *Scanner) Rest() (string, bool) {
	if s.IsEOS() {
		return "", false
	}
	return s.raw(), true
}

// GetChar consumes and returns the next user-perceived character. Characters
// are grapheme clusters, so multi-byte input advances by more than one byte.
func (s *Scanner) GetChar() (string, bool) {
	if s.IsEOS() {
		return "", false
	}

	rest := s.raw()
	advance, cluster, err := textseg.ScanGraphemeClusters([]byte(rest), true)
	if err != nil || advance == 0 {
		advance, cluster = 1, []byte(rest[:1])
	}
	s.Skip(advance)

	return string(cluster), true
}

// Scan skips leading whitespace and applies pattern at the cursor. On a match
// it consumes the matched text plus any trailing whitespace and returns the
// match. On a miss only the whitespace skip is kept and the cursor is
// otherwise unchanged. Patterns are expected to be anchored with ^.
func (s *Scanner) Scan(pattern *regexp.Regexp) (string, bool) {
	s.skipWhitespace()
	rest := s.raw()

	loc := pattern.FindStringIndex(rest)
	if loc == nil {
		return "", false
	}

	matched := rest[:loc[1]]
	remaining := rest[loc[1]:]
	s.Skip(loc[1] + leadingWhitespace(remaining))

	return matched, true
}

// Check is the non-consuming probe for Scan: it skips leading whitespace and
// reports whether pattern matches at the cursor, leaving the match unread.
func (s *Scanner) Check(pattern *regexp.Regexp) bool {
	s.skipWhitespace()
	return pattern.MatchString(s.raw())
}

func (s *Scanner) skipWhitespace() {
	s.Skip(leadingWhitespace(s.raw()))
}

func (s *Scanner) raw() string {
	return s.source[s.Position():]
}

func leadingWhitespace(str string) int {
	return len(str) - len(strings.TrimLeftFunc(str, unicode.IsSpace))
}
