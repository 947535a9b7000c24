package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/goliquid/pkg/diff"
)

type widget struct {
	Name  string
	Count int

	secret string
}

func TestDiffExportedOnlyEqualValues(t *testing.T) {
	a := widget{Name: "gear", Count: 3}
	b := widget{Name: "gear", Count: 3}

	assert.Empty(t, diff.DiffExportedOnly(a, b), "equal values should produce no diff")
}

func TestDiffExportedOnlyDifferentValues(t *testing.T) {
	a := widget{Name: "gear", Count: 3}
	b := widget{Name: "gear", Count: 4}

	d := diff.DiffExportedOnly(a, b)
	assert.NotEmpty(t, d, "different values should produce a diff")
	assert.Contains(t, d, "➕")
	assert.Contains(t, d, "➖")
}

func TestDiffExportedOnlyIgnoresUnexportedFields(t *testing.T) {
	a := widget{Name: "gear", Count: 3, secret: "one"}
	b := widget{Name: "gear", Count: 3, secret: "two"}

	assert.Empty(t, diff.DiffExportedOnly(a, b), "unexported fields should not count")
}

func TestRequireKnownValueEqual(t *testing.T) {
	diff.RequireKnownValueEqual(t, widget{Name: "gear"}, widget{Name: "gear"})
}
