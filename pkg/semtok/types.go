/*
Token Types and Modifiers:
------------------------
This file defines the core types used for semantic token generation.

Token Types are represented as follows:

	+-------------+     +-----------+
	| TokenType   | --> | Position  |
	+-------------+     +-----------+
	      |                  |
	      v                  v
	[Variable,        [Offset, Text]
	 Function,         within the
	 Keyword,          template
	 etc.]

Each token carries both its type and position information.
*/
package semtok

import (
	"github.com/walteh/goliquid/pkg/position"
)

// TokenType represents the semantic meaning of a token
type TokenType uint32

const (
	// TokenVariable represents a variable reference (e.g. user.name)
	TokenVariable TokenType = iota + 1

	// TokenFunction represents a filter name (e.g. upcase in name | upcase)
	TokenFunction

	// TokenKeyword represents the leading word of a block tag (e.g. if, endif)
	TokenKeyword

	// TokenOperator represents comparisons, ranges and pipes
	TokenOperator

	// TokenString represents a string literal
	TokenString

	// TokenNumber represents a numeric literal (e.g. 0, 1.5)
	TokenNumber

	// TokenPunctuation represents brackets, dots, colons and other specials
	TokenPunctuation

	// TokenDelimiter represents the tag delimiters {{ }} {% %}
	TokenDelimiter

	// TokenText represents literal template text between tags
	TokenText
)

// TokenModifier represents additional characteristics of a token
type TokenModifier uint32

const (
	// ModifierNone indicates no special characteristics
	ModifierNone TokenModifier = 0

	// ModifierDeclaration indicates first occurrence/declaration
	ModifierDeclaration TokenModifier = 1 << iota

	// ModifierReadonly indicates the token is constant/readonly
	ModifierReadonly
)

// Token represents a semantic token with its type, modifiers, and position
type Token struct {
	// Type indicates the semantic meaning of the token
	Type TokenType

	// Modifier indicates any special characteristics
	Modifier TokenModifier

	// Range indicates the token's position in the source
	Range position.RawPosition
}

// String returns a human-readable representation of the token type
func (t TokenType) String() string {
	switch t {
	case TokenVariable:
		return "variable"
	case TokenFunction:
		return "function"
	case TokenKeyword:
		return "keyword"
	case TokenOperator:
		return "operator"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenPunctuation:
		return "punctuation"
	case TokenDelimiter:
		return "delimiter"
	case TokenText:
		return "text"
	default:
		return "unknown"
	}
}

// String returns a human-readable representation of the token modifier
func (m TokenModifier) String() string {
	switch m {
	case ModifierNone:
		return "none"
	case ModifierDeclaration:
		return "declaration"
	case ModifierReadonly:
		return "readonly"
	default:
		return "unknown"
	}
}
