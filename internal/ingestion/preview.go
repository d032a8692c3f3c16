package ingestion

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/mapping"
)

const (
	// HeaderMarker starts the detail header line of the manager's sheet.
	HeaderMarker = "QNT;"

	headerScanLimit = 10
	// Exports without a detail header keep the same layout, so data is
	// assumed to start on line 5 (index 4).
	fallbackDataStart = 4
)

// Fixed column positions of the detail block. Extra trailing columns are
// ignored.
const (
	colQuantity = iota
	colDate
	colStatus
	colClientName
	colNeighborhood
	colContact
	colCity
	colRegion
	colPickupAgenda
	colPickupText
	colAttendant
	colMotive
	colNotes
)

var lineBreakRe = regexp.MustCompile(`\r?\n`)

// BuildPreview turns the text of a manager spreadsheet into candidate rows.
// Lines with an unknown status or no client name are not data and are left
// out; every other line comes back, valid or carrying an error, in file
// order. Nothing is persisted.
func BuildPreview(text string, baseYear int) []domain.ImportRow {
	return buildPreview(text, baseYear, time.Now().UTC())
}

func buildPreview(text string, baseYear int, now time.Time) []domain.ImportRow {
	lines := lineBreakRe.Split(strings.TrimPrefix(text, "\uFEFF"), -1)

	start := dataStart(lines)
	rows := make([]domain.ImportRow, 0, len(lines))
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		row, ok := parseLine(i, lines[i], baseYear, now)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// dataStart returns the index of the first data line.
func dataStart(lines []string) int {
	for i := 0; i < len(lines) && i < headerScanLimit; i++ {
		if strings.HasPrefix(lines[i], HeaderMarker) {
			return i + 1
		}
	}
	return fallbackDataStart
}

func parseLine(idx int, line string, baseYear int, now time.Time) (domain.ImportRow, bool) {
	fields := SplitRow(line, Delimiter)
	field := func(col int) string {
		if col < len(fields) {
			return strings.TrimSpace(fields[col])
		}
		return ""
	}

	status, ok := mapping.NormalizeStatus(field(colStatus))
	if !ok {
		return domain.ImportRow{}, false
	}
	clientName := field(colClientName)
	if clientName == "" {
		return domain.ImportRow{}, false
	}

	row := domain.ImportRow{
		Index:         idx,
		Status:        status,
		ClientName:    clientName,
		Neighborhood:  field(colNeighborhood),
		Contact:       field(colContact),
		CityRaw:       field(colCity),
		RegionRaw:     field(colRegion),
		AttendantName: field(colAttendant),
		MotiveRaw:     field(colMotive),
		Notes:         field(colNotes),
	}

	cityOK, regionOK, motiveOK := false, false, false
	row.City, cityOK = mapping.NormalizeCity(row.CityRaw)
	row.Region, regionOK = mapping.NormalizeRegion(row.RegionRaw)
	if row.MotiveRaw != "" {
		row.Motive, motiveOK = mapping.NormalizeMotive(row.MotiveRaw)
	}

	row.RegisteredAt = now
	if d, ok := ParseDate(field(colDate), baseYear); ok {
		row.RegisteredAt = d
	}

	if agenda := field(colPickupAgenda); agenda != "" {
		d, isDate := ParseDate(agenda, baseYear)
		switch {
		case isDate:
			row.PickupDate = &d
		case IsPickupFreeText(agenda):
			row.PickupText = agenda
		default:
			// Malformed dates are not an error; the cell is kept verbatim.
			row.PickupText = agenda
		}
	}
	if pickup := field(colPickupText); pickup != "" && row.PickupText == "" {
		row.PickupText = pickup
	}

	switch {
	case !cityOK:
		row.Error = cityError(row.CityRaw)
	case !regionOK:
		row.Error = fmt.Sprintf("Região %q não reconhecida", row.RegionRaw)
	case status == domain.StatusCancelado && row.MotiveRaw != "" && !motiveOK:
		row.Error = fmt.Sprintf("Motivo %q não reconhecido", row.MotiveRaw)
	}

	return row, true
}

func cityError(raw string) string {
	msg := fmt.Sprintf("Cidade %q não reconhecida", raw)
	if s := mapping.SuggestCity(raw); s != "" {
		msg += fmt.Sprintf(" (sugestão: %s)", s)
	}
	return msg
}
