package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/export"
)

type exportOptions struct {
	periodID  string
	outputDir string
	format    string
}

func newExportCmd(global *globalOptions) *cobra.Command {
	opts := exportOptions{format: string(export.CSV)}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a period as the manager's spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(opts.periodID) == "" {
				return withCode(exitUsage, fmt.Errorf("--period is required"))
			}
			if strings.TrimSpace(opts.outputDir) == "" {
				return withCode(exitUsage, fmt.Errorf("--output is required"))
			}
			if !export.Format(opts.format).Valid() {
				return withCode(exitUsage, fmt.Errorf("invalid --format %q: use csv or xlsx", opts.format))
			}
			return runExport(cmd, global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.periodID, "period", "", "Period ID (required)")
	cmd.Flags().StringVar(&opts.outputDir, "output", "", "Output directory (required)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "csv or xlsx")
	_ = cmd.MarkFlagRequired("period")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runExport(cmd *cobra.Command, global *globalOptions, opts exportOptions) error {
	logger, err := global.logger(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(global.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	file, err := export.NewService(st.periods, st.cases, logger).Export(cmd.Context(), opts.periodID, export.Format(opts.format))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return withCode(exitValidation, err)
		}
		return withCode(exitDB, err)
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return withCode(exitIO, err)
	}
	path := filepath.Join(opts.outputDir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return withCode(exitIO, err)
	}

	type exportSummary struct {
		Status   string `json:"status"`
		PeriodID string `json:"period_id"`
		Path     string `json:"path"`
		Bytes    int    `json:"bytes"`
	}
	return writeJSONLine(cmd.OutOrStdout(), exportSummary{
		Status:   "exported",
		PeriodID: opts.periodID,
		Path:     path,
		Bytes:    len(file.Data),
	})
}
