package check

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/goliquid/pkg/config"
	"github.com/walteh/goliquid/pkg/diagnostic"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	json bool
}

func NewCheckCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "check [glob...]",
		Short: "report diagnostics for template files",
		Long: "Check expands the given globs (or the include patterns from the config\n" +
			"file), runs template diagnostics on every match, and exits non-zero when\n" +
			"any error diagnostics are found.",
	}

	cmd.Flags().BoolVar(&me.json, "json", false, "emit diagnostics as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), cmd.OutOrStdout(), afero.NewOsFs(), args)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, out io.Writer, fs afero.Fs, globs []string) error {
	cfg := config.FromContext(ctx)

	if len(globs) == 0 {
		globs = cfg.Check.Include
	}

	files, err := expandGlobs(fs, globs)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Strs("globs", globs).Int("files", len(files)).Msg("checking templates")

	var opts []diagnostic.Option
	if cfg.Check.MaxExpressionDepth > 0 {
		opts = append(opts, diagnostic.WithMaxExpressionDepth(cfg.Check.MaxExpressionDepth))
	}
	checker := diagnostic.NewChecker(opts...)

	var formatter diagnostic.Formatter = diagnostic.NewTextFormatter()
	if me.json {
		formatter = diagnostic.NewVSCodeFormatter()
	}

	var runErrs *multierror.Error
	errorCount := 0
	for _, path := range files {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			runErrs = multierror.Append(runErrs, errors.Errorf("reading %s: %w", path, err))
			continue
		}

		diags := checker.Check(ctx, string(data))
		errorCount += len(diags.Errors)

		if len(diags.All()) == 0 {
			continue
		}

		if err := me.report(out, path, formatter, diags); err != nil {
			runErrs = multierror.Append(runErrs, errors.Errorf("formatting diagnostics for %s: %w", path, err))
		}
	}

	if err := runErrs.ErrorOrNil(); err != nil {
		return err
	}
	if errorCount > 0 {
		return errors.Errorf("found %d error diagnostics", errorCount)
	}

	return nil
}

func (me *Handler) report(out io.Writer, path string, formatter diagnostic.Formatter, diags *diagnostic.Diagnostics) error {
	formatted, err := formatter.Format(diags)
	if err != nil {
		return err
	}

	if me.json {
		payload := struct {
			File        string          `json:"file"`
			Diagnostics json.RawMessage `json:"diagnostics"`
		}{File: path, Diagnostics: formatted}
		line, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(line))
		return nil
	}

	for _, line := range strings.Split(strings.TrimRight(string(formatted), "\n"), "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintf(out, "%s:%s\n", path, line)
	}
	return nil
}

func expandGlobs(fs afero.Fs, patterns []string) ([]string, error) {
	iofs := afero.NewIOFS(fs)

	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(iofs, pattern)
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}
