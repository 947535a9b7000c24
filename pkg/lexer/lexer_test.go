package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/goliquid/pkg/lexer"
)

type tok struct {
	typ    lexer.TokenType
	lexeme string
}

func collect(t *testing.T, source string) []tok {
	t.Helper()

	tokens, err := lexer.New(source).Tokens().All()
	require.NoError(t, err, "lexing %q should succeed", source)

	out := make([]tok, 0, len(tokens))
	for _, tk := range tokens {
		out = append(out, tok{tk.Type, tk.Lexeme})
	}
	return out
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []tok
	}{
		{
			name:     "blank string",
			source:   "",
			expected: []tok{},
		},
		{
			name:     "whitespace only string",
			source:   "  \t \n\r ",
			expected: []tok{},
		},
		{
			name:   "identifiers",
			source: "high five?",
			expected: []tok{
				{lexer.TokenIdentifier, "high"},
				{lexer.TokenIdentifier, "five?"},
			},
		},
		{
			name:   "identifiers do not start with numbers",
			source: "2foo 5.0bar",
			expected: []tok{
				{lexer.TokenNumber, "2"},
				{lexer.TokenIdentifier, "foo"},
				{lexer.TokenNumber, "5.0"},
				{lexer.TokenIdentifier, "bar"},
			},
		},
		{
			name:   "string literals keep their quotes",
			source: ` 'this is a test""' "wat 'lol'" `,
			expected: []tok{
				{lexer.TokenString, `'this is a test""'`},
				{lexer.TokenString, `"wat 'lol'"`},
			},
		},
		{
			name:   "integers",
			source: "hi 50",
			expected: []tok{
				{lexer.TokenIdentifier, "hi"},
				{lexer.TokenNumber, "50"},
			},
		},
		{
			name:   "floats",
			source: "hi 5.0",
			expected: []tok{
				{lexer.TokenIdentifier, "hi"},
				{lexer.TokenNumber, "5.0"},
			},
		},
		{
			name:   "comparisons",
			source: "== <> contains",
			expected: []tok{
				{lexer.TokenComparison, "=="},
				{lexer.TokenComparison, "<>"},
				{lexer.TokenComparison, "contains"},
			},
		},
		{
			name:   "remaining comparison operators",
			source: "!= <= >= < >",
			expected: []tok{
				{lexer.TokenComparison, "!="},
				{lexer.TokenComparison, "<="},
				{lexer.TokenComparison, ">="},
				{lexer.TokenComparison, "<"},
				{lexer.TokenComparison, ">"},
			},
		},
		{
			name:   "comparison outranks identifier",
			source: "containsX",
			expected: []tok{
				{lexer.TokenComparison, "contains"},
				{lexer.TokenIdentifier, "X"},
			},
		},
		{
			name:   "range operator",
			source: "1..10",
			expected: []tok{
				{lexer.TokenNumber, "1"},
				{lexer.TokenRange, ".."},
				{lexer.TokenNumber, "10"},
			},
		},
		{
			name:   "float range",
			source: "1.5..9.6",
			expected: []tok{
				{lexer.TokenNumber, "1.5"},
				{lexer.TokenRange, ".."},
				{lexer.TokenNumber, "9.6"},
			},
		},
		{
			name:   "special characters",
			source: "[hi], (| .:) - ?cool",
			expected: []tok{
				{lexer.TokenOpenSquare, "["},
				{lexer.TokenIdentifier, "hi"},
				{lexer.TokenCloseSquare, "]"},
				{lexer.TokenComma, ","},
				{lexer.TokenOpenRound, "("},
				{lexer.TokenPipe, "|"},
				{lexer.TokenDot, "."},
				{lexer.TokenColon, ":"},
				{lexer.TokenCloseRound, ")"},
				{lexer.TokenDash, "-"},
				{lexer.TokenQuestion, "?"},
				{lexer.TokenIdentifier, "cool"},
			},
		},
		{
			name:   "negative number",
			source: "-5",
			expected: []tok{
				{lexer.TokenNumber, "-5"},
			},
		},
		{
			name:   "dash before whitespace is not a sign",
			source: "x - 5",
			expected: []tok{
				{lexer.TokenIdentifier, "x"},
				{lexer.TokenDash, "-"},
				{lexer.TokenNumber, "5"},
			},
		},
		{
			name:   "number swallows an adjacent sign",
			source: "x -5",
			expected: []tok{
				{lexer.TokenIdentifier, "x"},
				{lexer.TokenNumber, "-5"},
			},
		},
		{
			name:   "trailing dot is not part of a number",
			source: "5.",
			expected: []tok{
				{lexer.TokenNumber, "5"},
				{lexer.TokenDot, "."},
			},
		},
		{
			name:   "three dots are a range then a dot",
			source: "...",
			expected: []tok{
				{lexer.TokenRange, ".."},
				{lexer.TokenDot, "."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := collect(t, tt.source)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestTokenOffsets(t *testing.T) {
	tokens, err := lexer.New("  foo == 'bar'").Tokens().All()
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, lexer.Token{Type: lexer.TokenIdentifier, Lexeme: "foo", Offset: 2}, tokens[0])
	assert.Equal(t, lexer.Token{Type: lexer.TokenComparison, Lexeme: "==", Offset: 6}, tokens[1])
	assert.Equal(t, lexer.Token{Type: lexer.TokenString, Lexeme: "'bar'", Offset: 9}, tokens[2])
}

func TestLexicalError(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantChar   string
		wantOffset int
	}{
		{
			name:       "unknown character at the start",
			source:     "%",
			wantChar:   "%",
			wantOffset: 0,
		},
		{
			name:       "unknown character mid stream",
			source:     "foo % bar",
			wantChar:   "%",
			wantOffset: 4,
		},
		{
			name:       "unknown multi byte character",
			source:     "foo é",
			wantChar:   "é",
			wantOffset: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lexer.New(tt.source).Tokens().All()
			require.Error(t, err)

			var lexErr *lexer.LexicalError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.wantChar, lexErr.Char)
			assert.Equal(t, tt.wantOffset, lexErr.Offset)
			assert.Contains(t, lexErr.Error(), "unexpected character")
		})
	}
}

func TestTokensStreamIteration(t *testing.T) {
	stream := lexer.New("hi 50").Tokens()

	require.True(t, stream.Scan())
	assert.Equal(t, lexer.TokenIdentifier, stream.Token().Type)
	assert.Equal(t, "hi", stream.Token().Lexeme)

	require.True(t, stream.Scan())
	assert.Equal(t, lexer.TokenNumber, stream.Token().Type)
	assert.Equal(t, "50", stream.Token().Lexeme)

	assert.False(t, stream.Scan())
	assert.NoError(t, stream.Err(), "a clean end of input is not an error")

	assert.False(t, stream.Scan(), "an exhausted stream must stay exhausted")
}

func TestTokensStreamStopsAtLexicalError(t *testing.T) {
	stream := lexer.New("hi % there").Tokens()

	require.True(t, stream.Scan())
	assert.Equal(t, "hi", stream.Token().Lexeme)

	require.False(t, stream.Scan())
	require.Error(t, stream.Err())

	assert.False(t, stream.Scan(), "a failed stream must not resume")
}

func TestTokensShareTheLexersScanner(t *testing.T) {
	lx := lexer.New("one two")

	first := lx.Tokens()
	require.True(t, first.Scan())
	assert.Equal(t, "one", first.Token().Lexeme)

	second := lx.Tokens()
	require.True(t, second.Scan())
	assert.Equal(t, "two", second.Token().Lexeme, "a second stream continues from the shared cursor")
}
