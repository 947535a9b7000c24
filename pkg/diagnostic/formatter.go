package diagnostic

import (
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Formatter formats diagnostics into different output formats
type Formatter interface {
	// Format formats diagnostics into a specific output format
	Format(diagnostics *Diagnostics) ([]byte, error)
}

// TextFormatter renders one line per diagnostic with 1-based line and
// column numbers, the way compilers report.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format implements Formatter
func (f *TextFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}

	var out strings.Builder
	for _, diag := range diagnostics.All() {
		fmt.Fprintf(&out, "%d:%d %s: %s\n",
			diag.Range.Start.Line+1,
			diag.Range.Start.Character+1,
			diag.Severity,
			diag.Message,
		)
	}
	return []byte(out.String()), nil
}

// VSCodeFormatter formats diagnostics into VSCode-compatible format
type VSCodeFormatter struct{}

// NewVSCodeFormatter creates a new VSCodeFormatter
func NewVSCodeFormatter() *VSCodeFormatter {
	return &VSCodeFormatter{}
}

type vscodePlace struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type vscodeRange struct {
	Start vscodePlace `json:"start"`
	End   vscodePlace `json:"end"`
}

type vscodeDiagnostic struct {
	Severity int         `json:"severity"`
	Message  string      `json:"message"`
	Range    vscodeRange `json:"range"`
}

// Format implements Formatter. Ranges are 0-based; severities follow the
// editor convention of Error = 1, Warning = 2, Hint = 4.
func (f *VSCodeFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}

	severities := map[DiagnosticSeverity]int{
		SeverityError:   1,
		SeverityWarning: 2,
		SeverityHint:    4,
	}

	result := make([]vscodeDiagnostic, 0, len(diagnostics.Errors)+len(diagnostics.Warnings)+len(diagnostics.Hints))
	for _, diag := range diagnostics.All() {
		result = append(result, vscodeDiagnostic{
			Severity: severities[diag.Severity],
			Message:  diag.Message,
			Range: vscodeRange{
				Start: vscodePlace{Line: diag.Range.Start.Line, Character: diag.Range.Start.Character},
				End:   vscodePlace{Line: diag.Range.End.Line, Character: diag.Range.End.Character},
			},
		})
	}

	return json.Marshal(result)
}
