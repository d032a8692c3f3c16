package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/ingestion"
)

type previewSummary struct {
	Status   string `json:"status"`
	File     string `json:"file"`
	Encoding string `json:"encoding"`
	Total    int    `json:"total"`
	Valid    int    `json:"valid"`
	Invalid  int    `json:"invalid"`
}

func newPreviewCmd(global *globalOptions) *cobra.Command {
	var year int
	var invalidOnly bool

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Parse a manager spreadsheet and print one JSON line per row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if year < 2000 || year > 2100 {
				return withCode(exitUsage, fmt.Errorf("invalid --year %d", year))
			}
			logger, err := global.logger(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return withCode(exitIO, err)
			}

			res := ingestion.NewService(nil, logger).Preview(data, year)
			out := cmd.OutOrStdout()
			for _, row := range res.Rows {
				if invalidOnly && row.Valid() {
					continue
				}
				if err := writeJSONLine(out, row); err != nil {
					return err
				}
			}
			return writeJSONLine(out, previewSummary{
				Status:   "previewed",
				File:     args[0],
				Encoding: res.Encoding,
				Total:    res.Total,
				Valid:    res.Valid,
				Invalid:  res.Invalid,
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Year for dd/mm dates")
	cmd.Flags().BoolVar(&invalidOnly, "invalid-only", false, "Only print rows that carry an error")
	return cmd
}
