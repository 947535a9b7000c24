package diagnostic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/goliquid/pkg/diagnostic"
	"github.com/walteh/goliquid/pkg/position"
)

func TestCheckCleanTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{
			name:     "plain text",
			template: "hello world",
		},
		{
			name:     "simple output tag",
			template: "hello {{ name }}!",
		},
		{
			name:     "variable path with index",
			template: "{{ user.addresses[0].street }}",
		},
		{
			name:     "range expression",
			template: "{{ (1..10) }}",
		},
		{
			name:     "filter pipeline",
			template: "{{ name | upcase | truncate: 10, '...' }}",
		},
		{
			name:     "block tags are lexed but not parsed",
			template: "{% if user.age >= 21 %}cheers{% endif %}",
		},
		{
			name:     "empty template",
			template: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := diagnostic.Check(context.Background(), tt.template)

			assert.Empty(t, diags.Errors)
			assert.Empty(t, diags.Warnings)
			assert.False(t, diags.HasErrors())
			assert.NoError(t, diags.Err())
		})
	}
}

func TestCheckReportsLexicalErrorsAtTemplateOffsets(t *testing.T) {
	diags := diagnostic.Check(context.Background(), "hello {{ price % }}")

	require.Len(t, diags.Errors, 1)
	got := diags.Errors[0]

	assert.Equal(t, diagnostic.SeverityError, got.Severity)
	assert.Contains(t, got.Message, `unexpected character "%"`)
	assert.Equal(t, position.NewBasicPosition("%", 15), got.Location, "offset must be template-relative, not tag-relative")
}

func TestCheckReportsLexicalErrorsInBlockTags(t *testing.T) {
	diags := diagnostic.Check(context.Background(), "{% wat & %}")

	require.Len(t, diags.Errors, 1)
	assert.Contains(t, diags.Errors[0].Message, `unexpected character "&"`)
}

func TestCheckWarnsOnSingleClosingBrace(t *testing.T) {
	diags := diagnostic.Check(context.Background(), "oops {{ name } rest")

	assert.Empty(t, diags.Errors, "the tag interior itself is valid")
	require.Len(t, diags.Warnings, 1)
	assert.Contains(t, diags.Warnings[0].Message, "single brace")
	assert.Equal(t, 5, diags.Warnings[0].Location.Offset)
}

func TestCheckWarnsOnUnterminatedOpener(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{
			name:     "output opener",
			template: "text {{",
		},
		{
			name:     "block opener",
			template: "text {%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := diagnostic.Check(context.Background(), tt.template)

			assert.Empty(t, diags.Errors)
			require.Len(t, diags.Warnings, 1)
			assert.Contains(t, diags.Warnings[0].Message, "unterminated tag opener")
		})
	}
}

func TestCheckReportsSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		contains string
	}{
		{
			name:     "expression cannot start with a colon",
			template: "{{ : }}",
			contains: "unexpected colon",
		},
		{
			name:     "trailing tokens after the expression",
			template: "{{ name extra }}",
			contains: `unexpected identifier "extra" after expression`,
		},
		{
			name:     "filter without a name",
			template: "{{ name | }}",
			contains: "filter name expected after |",
		},
		{
			name:     "filter argument missing after colon",
			template: "{{ name | truncate: }}",
			contains: "unexpected end of output expression",
		},
		{
			name:     "unclosed range",
			template: "{{ (1..2 }}",
			contains: "unexpected end of output expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := diagnostic.Check(context.Background(), tt.template)

			require.True(t, diags.HasErrors(), "template %q should produce an error", tt.template)
			assert.Contains(t, diags.Errors[0].Message, tt.contains)
		})
	}
}

func TestCheckHintsOnEmptyOutputTag(t *testing.T) {
	diags := diagnostic.Check(context.Background(), "{{ }}")

	assert.Empty(t, diags.Errors)
	assert.Empty(t, diags.Warnings)
	require.Len(t, diags.Hints, 1)
	assert.Contains(t, diags.Hints[0].Message, "no expression")
}

func TestCheckCollectsAcrossTags(t *testing.T) {
	template := "{{ price % }} middle {{ : }} end {{ ok }}"
	diags := diagnostic.Check(context.Background(), template)

	assert.Len(t, diags.Errors, 2, "a fault in one tag must not stop the check")
	assert.Error(t, diags.Err())
}

func TestCheckExpressionDepthOption(t *testing.T) {
	checker := diagnostic.NewChecker(diagnostic.WithMaxExpressionDepth(3))
	diags := checker.Check(context.Background(), "{{ (1..(2..(3..4))) }}")

	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Errors[0].Message, "too deeply nested")

	diags = diagnostic.Check(context.Background(), "{{ (1..(2..(3..4))) }}")
	assert.False(t, diags.HasErrors(), "the default limit should accept modest nesting")
}

func TestDiagnosticRanges(t *testing.T) {
	diags := diagnostic.Check(context.Background(), "line one\n{{ price % }}")

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, 1, diags.Errors[0].Range.Start.Line)
	assert.Equal(t, 9, diags.Errors[0].Range.Start.Character)
}

func TestTextFormatter(t *testing.T) {
	diags := diagnostic.Check(context.Background(), "line one\n{{ price % }}")

	out, err := diagnostic.NewTextFormatter().Format(diags)
	require.NoError(t, err)
	assert.Contains(t, string(out), "2:10 error: unexpected character")

	_, err = diagnostic.NewTextFormatter().Format(nil)
	assert.Error(t, err)
}

func TestVSCodeFormatter(t *testing.T) {
	diags := diagnostic.Check(context.Background(), "{{ price % }}")

	out, err := diagnostic.NewVSCodeFormatter().Format(diags)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{
			"severity": 1,
			"message": "unexpected character \"%\"",
			"range": {
				"start": {"line": 0, "character": 9},
				"end": {"line": 0, "character": 10}
			}
		}
	]`, string(out))
}

func TestVSCodeFormatterEmptyDiagnostics(t *testing.T) {
	diags := diagnostic.Check(context.Background(), "all good")

	out, err := diagnostic.NewVSCodeFormatter().Format(diags)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(out))
}
