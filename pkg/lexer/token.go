package lexer

import "fmt"

// TokenType classifies a lexed token. The zero value is not a valid type.
type TokenType int

const (
	// TokenComparison is a comparison operator: ==, !=, <>, <, <=, >, >= or contains.
	TokenComparison TokenType = iota + 1
	// TokenIdentifier is a name: letters, digits, underscores and dashes,
	// optionally ending in a question mark.
	TokenIdentifier
	// TokenNumber is an integer or decimal literal, optionally negative.
	TokenNumber
	// TokenString is a quoted literal, quotes included in the lexeme.
	TokenString
	// TokenRange is the .. operator.
	TokenRange
	// TokenPipe is the | filter separator.
	TokenPipe
	// TokenDot is a single . accessor.
	TokenDot
	// TokenColon separates a filter name from its arguments.
	TokenColon
	// TokenComma separates filter arguments.
	TokenComma
	// TokenOpenSquare is [.
	TokenOpenSquare
	// TokenCloseSquare is ].
	TokenCloseSquare
	// TokenOpenRound is (.
	TokenOpenRound
	// TokenCloseRound is ).
	TokenCloseRound
	// TokenQuestion is a lone ? outside an identifier.
	TokenQuestion
	// TokenDash is a lone - that does not start a number.
	TokenDash
)

func (t TokenType) String() string {
	switch t {
	case TokenComparison:
		return "comparison"
	case TokenIdentifier:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenRange:
		return "range"
	case TokenPipe:
		return "pipe"
	case TokenDot:
		return "dot"
	case TokenColon:
		return "colon"
	case TokenComma:
		return "comma"
	case TokenOpenSquare:
		return "open-square"
	case TokenCloseSquare:
		return "close-square"
	case TokenOpenRound:
		return "open-round"
	case TokenCloseRound:
		return "close-round"
	case TokenQuestion:
		return "question"
	case TokenDash:
		return "dash"
	default:
		return "invalid"
	}
}

// Token is one lexed unit: its type, the exact source text it covers, and
// the byte offset of that text within the lexed input.
type Token struct {
	Type   TokenType
	Lexeme string
	Offset int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)@%d", t.Type, t.Lexeme, t.Offset)
}
