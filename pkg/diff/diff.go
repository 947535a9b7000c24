// Package diff renders readable diffs of exported struct state for tests.
package diff

import (
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/require"
)

func DiffExportedOnly[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)
	abc := diff.Diff(printer.Sprint(got), printer.Sprint(want))
	if abc == "" {
		return ""
	}
	str := "\n\n"
	str += "to convert ACTUAL ⏩️ EXPECTED:\n\n"
	str += "add:    ➕\n"
	str += "remove: ➖\n"
	str += "\n"
	str += strings.ReplaceAll(strings.ReplaceAll(abc, "\n-", "\n➖"), "\n+", "\n➕")

	return str
}

type tHelper interface {
	Helper()
}

// RequireKnownValueEqual fails the test with a readable diff when the
// exported state of want and got differs.
func RequireKnownValueEqual[T any](t require.TestingT, want T, got T) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if d := DiffExportedOnly(want, got); d != "" {
		t.Errorf("values differ: %s", d)
		t.FailNow()
	}
}
