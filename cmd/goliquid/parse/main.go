package parse

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/goliquid/pkg/parser"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	maxDepth int
}

func NewParseCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "parse consecutive expressions from input and print their normalized form",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.Flags().IntVar(&me.maxDepth, "max-depth", 0, "override the expression nesting limit")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		source, err := readSource(cmd, args)
		if err != nil {
			return err
		}
		return me.Run(cmd.Context(), cmd.OutOrStdout(), source)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, out io.Writer, source string) error {
	var opts []parser.Option
	if me.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(me.maxDepth))
	}

	p, err := parser.New(source, opts...)
	if err != nil {
		return errors.Errorf("preparing parser: %w", err)
	}

	count := 0
	for p.Index() < p.Len() {
		expr, err := p.Expression()
		if err != nil {
			return errors.Errorf("parsing expression %d: %w", count+1, err)
		}
		fmt.Fprintln(out, expr)
		count++
	}

	zerolog.Ctx(ctx).Debug().Int("expressions", count).Msg("parsed input")

	return nil
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := afero.ReadFile(afero.NewOsFs(), args[0])
	if err != nil {
		return "", errors.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
