// Package parser builds normalized expression strings from lexed tokens.
// It is a recursive-descent parser over the grammar
//
//	expression := variable | range | STRING | NUMBER
//	variable   := IDENTIFIER ('[' expression ']')* ('.' variable)?
//	range      := '(' expression '..' expression ')'
//
// The cursor is exposed directly: Consume probes and commits in one step,
// Jump moves relative to the current token, and IsCurrent peeks without
// moving. Hosts drive the parser token by token and call Expression wherever
// the grammar expects a value.
package parser

import (
	"strings"

	"github.com/walteh/goliquid/pkg/lexer"
	"gitlab.com/tozd/go/errors"
)

// maxExpressionDepth bounds recursion across expression, variable and range
// rules so a hostile input cannot exhaust the stack.
const maxExpressionDepth = 150

type Option func(*Parser)

// WithMaxDepth overrides the recursion limit. Values below one are ignored.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parser walks a fully lexed token sequence. It is single use and not safe
// for concurrent access.
type Parser struct {
	tokens   []lexer.Token
	index    int
	depth    int
	maxDepth int
}

// New lexes source eagerly and returns a parser over the resulting tokens.
// A lexical error in the source fails construction.
func New(source string, opts ...Option) (*Parser, error) {
	tokens, err := lexer.New(source).Tokens().All()
	if err != nil {
		return nil, errors.Errorf("lexing expression source: %w", err)
	}
	return NewFromTokens(tokens, opts...), nil
}

// NewFromTokens returns a parser over an already lexed token sequence.
func NewFromTokens(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens:   tokens,
		maxDepth: maxExpressionDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Jump moves the cursor by offset tokens in either direction. Moving past
// the last token is allowed and leaves the parser exhausted; moving before
// the first token fails with a CursorUnderflowError.
func (p *Parser) Jump(offset int) error {
	index := p.index + offset
	if index < 0 {
		return &CursorUnderflowError{Index: p.index, Offset: offset}
	}
	p.index = index
	return nil
}

// Consume returns the current token's lexeme and advances, but only when
// the current token has the given type. On a mismatch the cursor does not
// move, so callers can probe for alternatives.
func (p *Parser) Consume(typ lexer.TokenType) (string, bool) {
	tok, ok := p.tokenAt(p.index)
	if !ok || tok.Type != typ {
		return "", false
	}
	p.index++
	return tok.Lexeme, true
}

// IsCurrent reports whether the current token has the given type.
func (p *Parser) IsCurrent(typ lexer.TokenType) bool {
	return p.IsCurrentOffset(typ, 0)
}

// IsCurrentOffset reports whether the token offset positions away from the
// cursor has the given type. Positions outside the token sequence, on
// either side, report false.
func (p *Parser) IsCurrentOffset(typ lexer.TokenType, offset int) bool {
	index := p.index + offset
	if index < 0 {
		return false
	}
	tok, ok := p.tokenAt(index)
	return ok && tok.Type == typ
}

// Expression parses one expression starting at the cursor and returns its
// normalized string, the grammar lexemes concatenated without whitespace.
// Any token that cannot start an expression, including an exhausted cursor,
// fails with a SyntaxError and leaves no partial result.
func (p *Parser) Expression() (string, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return "", &DepthError{Limit: p.maxDepth}
	}

	tok, ok := p.tokenAt(p.index)
	if !ok {
		return "", p.unexpected()
	}

	switch tok.Type {
	case lexer.TokenIdentifier:
		return p.variable()
	case lexer.TokenOpenRound:
		return p.rangeExpr()
	case lexer.TokenString, lexer.TokenNumber:
		value, _ := p.Consume(tok.Type)
		return value, nil
	default:
		return "", p.unexpected()
	}
}

// Index returns the cursor position within the token sequence.
func (p *Parser) Index() int {
	return p.index
}

// Len returns the number of lexed tokens.
func (p *Parser) Len() int {
	return len(p.tokens)
}

// Tokens returns the underlying token sequence.
func (p *Parser) Tokens() []lexer.Token {
	return p.tokens
}

func (p *Parser) tokenAt(index int) (lexer.Token, bool) {
	if index < 0 || index >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[index], true
}

// unexpected builds a SyntaxError for the current cursor position, either
// the offending token or the end of the sequence.
func (p *Parser) unexpected() error {
	if tok, ok := p.tokenAt(p.index); ok {
		return &SyntaxError{Token: tok, Offset: tok.Offset}
	}
	return &SyntaxError{Offset: p.endOffset()}
}

func (p *Parser) endOffset() int {
	if len(p.tokens) == 0 {
		return 0
	}
	last := p.tokens[len(p.tokens)-1]
	return last.Offset + len(last.Lexeme)
}

func (p *Parser) variable() (string, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return "", &DepthError{Limit: p.maxDepth}
	}

	name, ok := p.Consume(lexer.TokenIdentifier)
	if !ok {
		return "", p.unexpected()
	}

	var value strings.Builder
	value.WriteString(name)

	for p.IsCurrent(lexer.TokenOpenSquare) {
		open, _ := p.Consume(lexer.TokenOpenSquare)
		value.WriteString(open)

		index, err := p.Expression()
		if err != nil {
			return "", err
		}
		value.WriteString(index)

		closing, ok := p.Consume(lexer.TokenCloseSquare)
		if !ok {
			return "", p.unexpected()
		}
		value.WriteString(closing)
	}

	if p.IsCurrent(lexer.TokenDot) {
		dot, _ := p.Consume(lexer.TokenDot)
		value.WriteString(dot)

		rest, err := p.variable()
		if err != nil {
			return "", err
		}
		value.WriteString(rest)
	}

	return value.String(), nil
}

func (p *Parser) rangeExpr() (string, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return "", &DepthError{Limit: p.maxDepth}
	}

	open, ok := p.Consume(lexer.TokenOpenRound)
	if !ok {
		return "", p.unexpected()
	}

	var value strings.Builder
	value.WriteString(open)

	from, err := p.Expression()
	if err != nil {
		return "", err
	}
	value.WriteString(from)

	rangeOp, ok := p.Consume(lexer.TokenRange)
	if !ok {
		return "", p.unexpected()
	}
	value.WriteString(rangeOp)

	to, err := p.Expression()
	if err != nil {
		return "", err
	}
	value.WriteString(to)

	closing, ok := p.Consume(lexer.TokenCloseRound)
	if !ok {
		return "", p.unexpected()
	}
	value.WriteString(closing)

	return value.String(), nil
}
