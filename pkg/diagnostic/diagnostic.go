// Package diagnostic checks whole templates without aborting on the first
// fault. It runs the tokenizer over the source, lexes every tag, parses the
// expressions of output tags, and collects everything it finds as
// position-carrying diagnostics. Hosts that want fail-fast behavior use the
// lexer and parser directly; tooling that wants a report uses this package.
package diagnostic

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/goliquid/pkg/lexer"
	"github.com/walteh/goliquid/pkg/parser"
	"github.com/walteh/goliquid/pkg/position"
	"github.com/walteh/goliquid/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// DiagnosticSeverity represents the severity level of a diagnostic
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
	SeverityHint    DiagnosticSeverity = "hint"
)

// Diagnostic represents a single diagnostic message
type Diagnostic struct {
	Message  string
	Location position.RawPosition
	Range    position.Range
	Severity DiagnosticSeverity
}

// Diagnostics represents diagnostic information that can be formatted in different ways
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Hints    []Diagnostic
}

// HasErrors reports whether any error-severity diagnostics were collected.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// All returns every diagnostic, errors first, then warnings, then hints.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Hints))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Hints...)
	return all
}

// Err folds the error diagnostics into a single error, or nil when the
// template only produced warnings and hints.
func (d *Diagnostics) Err() error {
	var err error
	for _, diag := range d.Errors {
		err = multierr.Append(err, errors.New(diag.Message))
	}
	return err
}

// Checker runs the front end over templates and collects diagnostics.
type Checker struct {
	maxExpressionDepth int
}

type Option func(*Checker)

// WithMaxExpressionDepth overrides the parser recursion limit used while
// checking output expressions.
func WithMaxExpressionDepth(n int) Option {
	return func(c *Checker) {
		c.maxExpressionDepth = n
	}
}

// NewChecker creates a Checker with default limits.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs a default Checker over source.
func Check(ctx context.Context, source string) *Diagnostics {
	return NewChecker().Check(ctx, source)
}

// Check collects diagnostics for one template. Literal slices are always
// clean; every tag slice is lexed, and output tags are additionally parsed
// as an expression with an optional filter pipeline. Check never fails, a
// broken template is a result, not an error.
func (c *Checker) Check(ctx context.Context, source string) *Diagnostics {
	diags := &Diagnostics{
		Errors:   make([]Diagnostic, 0),
		Warnings: make([]Diagnostic, 0),
		Hints:    make([]Diagnostic, 0),
	}
	seen := position.NewPositionsSeenMap()

	slices := tokenizer.New(source).Slices(tokenizer.TemplatePattern)
	for _, slice := range slices {
		if slice.Kind != tokenizer.SliceTag {
			continue
		}
		c.checkTag(slice, source, diags, seen)
	}

	zerolog.Ctx(ctx).Debug().
		Int("slices", len(slices)).
		Int("errors", len(diags.Errors)).
		Int("warnings", len(diags.Warnings)).
		Msg("template check complete")

	return diags
}

func (c *Checker) checkTag(slice tokenizer.Slice, source string, diags *Diagnostics, seen *position.PositionsSeenMap) {
	text := slice.Text

	switch {
	case text == "{{" || text == "{%":
		c.record(diags, seen, source, Diagnostic{
			Message:  fmt.Sprintf("unterminated tag opener %q", text),
			Location: slice.RawPosition,
			Severity: SeverityWarning,
		})
		return
	case strings.HasPrefix(text, "{{") && !strings.HasSuffix(text, "}}"):
		c.record(diags, seen, source, Diagnostic{
			Message:  "output tag closed with a single brace",
			Location: slice.RawPosition,
			Severity: SeverityWarning,
		})
	}

	interior, interiorOffset, ok := tokenizer.TagInterior(text)
	if !ok {
		return
	}
	base := slice.Offset + interiorOffset

	tokens, err := lexer.New(interior).Tokens().All()
	if err != nil {
		var lexErr *lexer.LexicalError
		if errors.As(err, &lexErr) {
			c.record(diags, seen, source, Diagnostic{
				Message:  fmt.Sprintf("unexpected character %q", lexErr.Char),
				Location: position.NewBasicPosition(lexErr.Char, base+lexErr.Offset),
				Severity: SeverityError,
			})
		}
		return
	}

	if strings.HasPrefix(text, "{{") {
		c.checkOutputTag(slice, base, tokens, source, diags, seen)
	}
}

// checkOutputTag validates the content of a {{ ... }} tag: one expression
// followed by any number of filters, each an identifier with optional
// colon-separated arguments. Filter semantics are the host's concern, only
// the shape is checked here.
func (c *Checker) checkOutputTag(slice tokenizer.Slice, base int, tokens []lexer.Token, source string, diags *Diagnostics, seen *position.PositionsSeenMap) {
	if len(tokens) == 0 {
		c.record(diags, seen, source, Diagnostic{
			Message:  "output tag has no expression",
			Location: slice.RawPosition,
			Severity: SeverityHint,
		})
		return
	}

	var opts []parser.Option
	if c.maxExpressionDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(c.maxExpressionDepth))
	}
	p := parser.NewFromTokens(tokens, opts...)

	if _, err := p.Expression(); err != nil {
		c.recordParseError(err, slice, base, source, diags, seen)
		return
	}

	for p.IsCurrent(lexer.TokenPipe) {
		p.Consume(lexer.TokenPipe)

		if _, ok := p.Consume(lexer.TokenIdentifier); !ok {
			c.record(diags, seen, source, Diagnostic{
				Message:  "filter name expected after |",
				Location: c.currentLocation(p, base),
				Severity: SeverityError,
			})
			return
		}

		if _, ok := p.Consume(lexer.TokenColon); ok {
			for {
				if _, err := p.Expression(); err != nil {
					c.recordParseError(err, slice, base, source, diags, seen)
					return
				}
				if _, ok := p.Consume(lexer.TokenComma); !ok {
					break
				}
			}
		}
	}

	if p.Index() < p.Len() {
		tok := p.Tokens()[p.Index()]
		c.record(diags, seen, source, Diagnostic{
			Message:  fmt.Sprintf("unexpected %s %q after expression", tok.Type, tok.Lexeme),
			Location: position.NewBasicPosition(tok.Lexeme, base+tok.Offset),
			Severity: SeverityError,
		})
	}
}

func (c *Checker) recordParseError(err error, slice tokenizer.Slice, base int, source string, diags *Diagnostics, seen *position.PositionsSeenMap) {
	var syntaxErr *parser.SyntaxError
	var depthErr *parser.DepthError

	switch {
	case errors.As(err, &syntaxErr):
		if syntaxErr.Token == (lexer.Token{}) {
			c.record(diags, seen, source, Diagnostic{
				Message:  "unexpected end of output expression",
				Location: position.NewBasicPosition("", base+syntaxErr.Offset),
				Severity: SeverityError,
			})
			return
		}
		c.record(diags, seen, source, Diagnostic{
			Message:  fmt.Sprintf("unexpected %s %q in expression", syntaxErr.Token.Type, syntaxErr.Token.Lexeme),
			Location: position.NewBasicPosition(syntaxErr.Token.Lexeme, base+syntaxErr.Token.Offset),
			Severity: SeverityError,
		})
	case errors.As(err, &depthErr):
		c.record(diags, seen, source, Diagnostic{
			Message:  fmt.Sprintf("expression too deeply nested (limit %d)", depthErr.Limit),
			Location: slice.RawPosition,
			Severity: SeverityError,
		})
	default:
		c.record(diags, seen, source, Diagnostic{
			Message:  err.Error(),
			Location: slice.RawPosition,
			Severity: SeverityError,
		})
	}
}

// currentLocation points at the parser's current token, or just past the
// last token when the cursor is exhausted.
func (c *Checker) currentLocation(p *parser.Parser, base int) position.RawPosition {
	tokens := p.Tokens()
	if p.Index() < len(tokens) {
		tok := tokens[p.Index()]
		return position.NewBasicPosition(tok.Lexeme, base+tok.Offset)
	}
	if len(tokens) == 0 {
		return position.NewBasicPosition("", base)
	}
	last := tokens[len(tokens)-1]
	return position.NewBasicPosition("", base+last.Offset+len(last.Lexeme))
}

func (c *Checker) record(diags *Diagnostics, seen *position.PositionsSeenMap, source string, diag Diagnostic) {
	if seen.Has(diag.Location) {
		return
	}
	seen.Add(diag.Location)

	diag.Range = diag.Location.GetRange(source)

	switch diag.Severity {
	case SeverityError:
		diags.Errors = append(diags.Errors, diag)
	case SeverityWarning:
		diags.Warnings = append(diags.Warnings, diag)
	case SeverityHint:
		diags.Hints = append(diags.Hints, diag)
	}
}
