package export

import (
	"fmt"
	"strings"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/mapping"
)

const (
	bom  = "\uFEFF"
	crlf = "\r\n"
)

// FormatCSV renders a grid the way the spreadsheet tool expects it: UTF-8
// BOM, semicolons, CRLF after every line.
func FormatCSV(grid [][]string) string {
	var b strings.Builder
	b.WriteString(bom)
	for _, row := range grid {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(escapeField(cell))
		}
		b.WriteString(crlf)
	}
	return b.String()
}

// escapeField quotes a cell only when it holds a delimiter, a quote or a
// line break.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ";\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FileName returns the download name for a period, e.g.
// CRM_Retencao_2024_MARÇO_2024.csv.
func FileName(p *domain.Period, ext string) string {
	return fmt.Sprintf("CRM_Retencao_%d_%s_%d.%s", p.Year, mapping.MonthName(p.Month), p.Year, ext)
}
