package lex

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/goliquid/pkg/lexer"
	"gitlab.com/tozd/go/errors"
)

type Handler struct{}

func NewLexCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "lex input as a single tag interior and print the tokens",
		Args:  cobra.MaximumNArgs(1),
	}

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
	tokens, err := lexer.New(source).Tokens().All()
	if err != nil {
		return errors.Errorf("lexing input: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Int("tokens", len(tokens)).Msg("lexed expression source")

	for _, tok := range tokens {
		fmt.Fprintf(out, "%-12s %4d  %q\n", tok.Type, tok.Offset, tok.Lexeme)
	}

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
