package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/ingestion"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/reconciliation"
)

type importOptions struct {
	file       string
	periodID   string
	importerID string
	year       int
}

type importSummary struct {
	Status      string   `json:"status"`
	File        string   `json:"file"`
	PeriodID    string   `json:"period_id"`
	Total       int      `json:"total"`
	Invalid     int      `json:"invalid"`
	Imported    int      `json:"imported"`
	Warnings    []string `json:"warnings"`
	PeriodCases int      `json:"period_cases"`
}

func newImportCmd(global *globalOptions) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import the valid rows of a manager spreadsheet into a period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = args[0]
			if strings.TrimSpace(opts.periodID) == "" {
				return withCode(exitUsage, fmt.Errorf("--period is required"))
			}
			if strings.TrimSpace(opts.importerID) == "" {
				return withCode(exitUsage, fmt.Errorf("--importer is required"))
			}
			if opts.year < 2000 || opts.year > 2100 {
				return withCode(exitUsage, fmt.Errorf("invalid --year %d", opts.year))
			}
			return runImport(cmd, global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.periodID, "period", "", "Period ID (required)")
	cmd.Flags().StringVar(&opts.importerID, "importer", "", "ID of the user importing the file (required)")
	cmd.Flags().IntVar(&opts.year, "year", time.Now().Year(), "Year for dd/mm dates")
	_ = cmd.MarkFlagRequired("period")
	_ = cmd.MarkFlagRequired("importer")
	return cmd
}

func runImport(cmd *cobra.Command, global *globalOptions, opts importOptions) error {
	logger, err := global.logger(cmd)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return withCode(exitIO, err)
	}

	st, err := openStore(global.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	recon := reconciliation.NewService(st.periods, st.users, st.cities, st.cases, logger)
	svc := ingestion.NewService(recon, logger)

	preview, res, err := svc.Import(cmd.Context(), data, opts.year, opts.periodID, opts.importerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoValidRows),
			errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrUnknownImporter),
			errors.Is(err, domain.ErrInvalidInput):
			return withCode(exitValidation, err)
		default:
			return withCode(exitDB, err)
		}
	}

	count, err := st.cases.CountByPeriod(cmd.Context(), opts.periodID)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("count cases: %w", err))
	}

	return writeJSONLine(cmd.OutOrStdout(), importSummary{
		Status:      "imported",
		File:        opts.file,
		PeriodID:    opts.periodID,
		Total:       preview.Total,
		Invalid:     preview.Invalid,
		Imported:    res.Imported,
		Warnings:    res.Warnings,
		PeriodCases: count,
	})
}
