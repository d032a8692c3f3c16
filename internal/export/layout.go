package export

import (
	"sort"
	"strconv"
	"strings"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/mapping"
)

// Fixed lines of the manager's template. Blank trailing cells are part of
// the template and must be kept.
const (
	summaryHeaderLine = "META;;REALIZADO FULL TIME organico;SALDO;DIAS úteis;DIAS trabalhados;DIAS RESTANTES;META diaria;META recalculada;REALIZADO FULL TIME inadimplencia;TOTAL EMPRESA;CHURN GERAL fulltime;;;;;;"
	detailHeaderLine  = "QNT;DATA;STATUS;NOME COMPLETO CLIENTE;BAIRRO;CONTATO;CIDADE;REGIÃO;AGENDA RETIRADA;RETIRADA;ATENDENTE;MOTIVO;OBSERVAÇÕES;REGISTRADO IXC;;;;;"

	summaryWidth = 18
	detailWidth  = 19

	noPickupMarker = "sem retirada"
	noPickupLabel  = "Sem retirada"
)

// Grid lays a period out as the manager's sheet: summary header, summary
// values, month name, detail header, then one line per record grouped by
// status (CANCELADO, RETIDO, INADIMPLENCIA) and sorted by registration date.
func Grid(p *domain.Period, records []domain.CaseView) [][]string {
	s := Summarize(p, records)

	grid := make([][]string, 0, len(records)+4)
	grid = append(grid, strings.Split(summaryHeaderLine, ";"))
	grid = append(grid, pad([]string{
		strconv.Itoa(s.Target),
		"",
		strconv.Itoa(s.Cancelled),
		strconv.Itoa(s.Balance),
		strconv.Itoa(s.BusinessDays),
		strconv.Itoa(s.WorkedDays),
		strconv.Itoa(s.RemainingDays),
		strconv.Itoa(s.DailyTarget),
		strconv.Itoa(s.RecalculatedTarget),
		strconv.Itoa(s.Delinquent),
		strconv.Itoa(s.TotalCompany),
		s.Churn,
	}, summaryWidth))
	grid = append(grid, pad([]string{mapping.MonthName(p.Month)}, detailWidth))
	grid = append(grid, strings.Split(detailHeaderLine, ";"))

	sorted := make([]domain.CaseView, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ri, rj := sorted[i].Status.Rank(), sorted[j].Status.Rank(); ri != rj {
			return ri < rj
		}
		return sorted[i].RegisteredAt.Before(sorted[j].RegisteredAt)
	})
	for i := range sorted {
		grid = append(grid, detailRow(&sorted[i]))
	}
	return grid
}

func detailRow(c *domain.CaseView) []string {
	agenda, pickup := "", c.PickupText
	noPickup := strings.Contains(strings.ToLower(c.PickupText), noPickupMarker)
	if noPickup {
		pickup = ""
	}
	switch {
	case c.PickupDate != nil:
		agenda = c.PickupDate.Format("02/01/2006")
	case noPickup:
		agenda = noPickupLabel
	}

	city := c.CityName
	if city == "" {
		city = mapping.CityLabel(c.CityID)
	}

	return pad([]string{
		"1",
		c.RegisteredAt.Format("02/01"),
		mapping.StatusLabel(c.Status),
		c.ClientName,
		c.Neighborhood,
		c.Contact,
		city,
		mapping.RegionLabel(c.Region),
		agenda,
		pickup,
		strings.ToUpper(c.AttendantName),
		mapping.MotiveLabel(c.Motive),
		c.Notes,
		"",
	}, detailWidth)
}

func pad(cells []string, width int) []string {
	for len(cells) < width {
		cells = append(cells, "")
	}
	return cells
}
