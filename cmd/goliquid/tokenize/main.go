package tokenize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/goliquid/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	json bool
}

func NewTokenizeCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "split a template into literal and tag slices",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.Flags().BoolVar(&me.json, "json", false, "emit slices as JSON")

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
	slices := tokenizer.New(source).Slices(tokenizer.TemplatePattern)

	zerolog.Ctx(ctx).Debug().Int("slices", len(slices)).Msg("tokenized template")

	if me.json {
		type jsonSlice struct {
			Kind   string `json:"kind"`
			Offset int    `json:"offset"`
			Text   string `json:"text"`
		}
		payload := make([]jsonSlice, 0, len(slices))
		for _, s := range slices {
			payload = append(payload, jsonSlice{Kind: s.Kind.String(), Offset: s.Offset, Text: s.Text})
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return errors.Errorf("marshaling slices: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, s := range slices {
		fmt.Fprintf(out, "%-7s %4d  %q\n", s.Kind, s.Offset, s.Text)
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
