package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/config"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
)

type globalOptions struct {
	dbPath   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{dbPath: "crm.db", logLevel: "warn"}
	if cfg, err := config.Load(".env", ".env.local"); err == nil {
		opts.dbPath = cfg.DBPath
	}

	cmd := &cobra.Command{
		Use:           "crmctl",
		Short:         "Preview, import and export retention spreadsheets without the HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", opts.dbPath, "SQLite database path (defaults to DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level written to stderr")

	cmd.AddCommand(newPreviewCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	return cmd
}

func (o *globalOptions) logger(cmd *cobra.Command) (*log.Logger, error) {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return nil, withCode(exitUsage, err)
	}
	return log.New(log.Config{
		Level:     level,
		Format:    "text",
		Component: log.ComponentCLI,
		Output:    cmd.ErrOrStderr(),
	}), nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
