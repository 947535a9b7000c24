package main

import (
	"context"
	"os"
	runtimedebug "runtime/debug"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/walteh/goliquid/cmd/goliquid/check"
	"github.com/walteh/goliquid/cmd/goliquid/lex"
	"github.com/walteh/goliquid/cmd/goliquid/parse"
	"github.com/walteh/goliquid/cmd/goliquid/tokenize"
	"github.com/walteh/goliquid/pkg/config"
	"github.com/walteh/goliquid/pkg/debug"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var logLevel, logFormat string

	rootCmd := &cobra.Command{
		Use:   "goliquid",
		Short: "A front end toolkit for liquid style templates",
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("config", "", "path to a goliquid config file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return errors.Errorf("reading config flag: %w", err)
		}

		cfg, err := config.LoadOrDefault(afero.NewOsFs(), configPath)
		if err != nil {
			return err
		}

		level, format := cfg.Log.Level, cfg.Log.Format
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			format = logFormat
		}

		logger := debug.NewLogger(cmd.ErrOrStderr(), level, format)
		ctx := logger.WithContext(cmd.Context())
		cmd.SetContext(config.WithContext(ctx, cfg))

		return nil
	}

	info, ok := runtimedebug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	rootCmd.AddCommand(tokenize.NewTokenizeCommand())
	rootCmd.AddCommand(lex.NewLexCommand())
	rootCmd.AddCommand(parse.NewParseCommand())
	rootCmd.AddCommand(check.NewCheckCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
