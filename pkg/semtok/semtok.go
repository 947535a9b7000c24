/*
Package semtok provides semantic tokens for template source.

Core Functions:
-------------

	       Input
	         |
	         v
	  +------------+
	  | Template   |
	  | Text       |
	  +------------+
	         |
	 Tokenize & Lex
	         |
	         v
	  +------------+
	  | Slices &   |
	  | Tag Tokens |
	  +------------+
	         |
	Classify by role
	         |
	         v
	  +------------+
	  | Semantic   |
	  | Tokens     |
	  +------------+

Literal slices become text tokens, tag delimiters become delimiter tokens,
and the lexed contents of each tag are classified by their role: the leading
word of a block tag is a keyword, an identifier after a pipe is a filter
function, everything else keeps its lexical class.
*/
package semtok

import (
	"context"
	"strings"

	"github.com/walteh/goliquid/pkg/lexer"
	"github.com/walteh/goliquid/pkg/position"
	"github.com/walteh/goliquid/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
)

// GetTokensForText returns semantic tokens for the given template text.
// This is the main entry point for semantic token generation.
//
//	Example:
//	   tokens, err := GetTokensForText(ctx, []byte("{{ name }}"))
//	   if err != nil {
//	       return err
//	   }
//	   // Use tokens...
//
// A lexical error anywhere in the template fails the whole call; callers
// that want a tolerant pass use the diagnostic package instead.
func GetTokensForText(ctx context.Context, content []byte) ([]Token, error) {
	source := string(content)

	var tokens []Token
	for _, slice := range tokenizer.New(source).Slices(tokenizer.TemplatePattern) {
		if slice.Kind == tokenizer.SliceLiteral {
			if slice.Text == "" {
				continue
			}
			tokens = append(tokens, Token{
				Type:     TokenText,
				Modifier: ModifierNone,
				Range:    slice.RawPosition,
			})
			continue
		}

		tagTokens, err := tokensForTag(slice)
		if err != nil {
			return nil, errors.Errorf("lexing tag at offset %d: %w", slice.Offset, err)
		}
		tokens = append(tokens, tagTokens...)
	}

	return tokens, nil
}

// GetTokensForRange returns the semantic tokens overlapping one span of the
// template, for clients that highlight incrementally.
func GetTokensForRange(ctx context.Context, content []byte, ranged position.RawPosition) ([]Token, error) {
	all, err := GetTokensForText(ctx, content)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	for _, tok := range all {
		if tok.Range.HasRangeOverlapWith(ranged) {
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

func tokensForTag(slice tokenizer.Slice) ([]Token, error) {
	interior, offset, ok := tokenizer.TagInterior(slice.Text)
	if !ok {
		return nil, nil
	}

	tokens := []Token{{
		Type:     TokenDelimiter,
		Modifier: ModifierNone,
		Range:    position.NewBasicPosition(slice.Text[:2], slice.Offset),
	}}

	lexed, err := lexer.New(interior).Tokens().All()
	if err != nil {
		return nil, err
	}

	isBlock := strings.HasPrefix(slice.Text, "{%")
	for i, tok := range lexed {
		typ := classify(tok.Type)
		if tok.Type == lexer.TokenIdentifier {
			switch {
			case isBlock && i == 0:
				typ = TokenKeyword
			case i > 0 && lexed[i-1].Type == lexer.TokenPipe:
				typ = TokenFunction
			}
		}
		tokens = append(tokens, Token{
			Type:     typ,
			Modifier: ModifierNone,
			Range:    position.NewBasicPosition(tok.Lexeme, slice.Offset+offset+tok.Offset),
		})
	}

	if closing := slice.Text[offset+len(interior):]; closing != "" {
		tokens = append(tokens, Token{
			Type:     TokenDelimiter,
			Modifier: ModifierNone,
			Range:    position.NewBasicPosition(closing, slice.Offset+offset+len(interior)),
		})
	}

	return tokens, nil
}

func classify(typ lexer.TokenType) TokenType {
	switch typ {
	case lexer.TokenIdentifier:
		return TokenVariable
	case lexer.TokenNumber:
		return TokenNumber
	case lexer.TokenString:
		return TokenString
	case lexer.TokenComparison, lexer.TokenRange, lexer.TokenPipe:
		return TokenOperator
	default:
		return TokenPunctuation
	}
}
