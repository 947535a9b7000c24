package parse

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrintsNormalizedExpressions(t *testing.T) {
	var out bytes.Buffer
	me := &Handler{}

	require.NoError(t, me.Run(context.Background(), &out, "hi[5].wat 'str' (1..2)"))

	assert.Equal(t, "hi[5].wat\n'str'\n(1..2)\n", out.String())
}

func TestRunReportsSyntaxErrors(t *testing.T) {
	var out bytes.Buffer
	me := &Handler{}

	err := me.Run(context.Background(), &out, "== nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestRunHonorsMaxDepth(t *testing.T) {
	var out bytes.Buffer
	me := &Handler{maxDepth: 2}

	err := me.Run(context.Background(), &out, "(1..(2..(3..4)))")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too deeply nested")
}

func TestRunEmptyInput(t *testing.T) {
	var out bytes.Buffer
	me := &Handler{}

	require.NoError(t, me.Run(context.Background(), &out, ""))
	assert.Empty(t, out.String())
}
