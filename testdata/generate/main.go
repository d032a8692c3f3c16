package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/export"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/mapping"
)

// Column positions inside a detail line of the sheet.
const (
	colDate   = 1
	colRegion = 7
	colMotive = 11
)

// Spellings actually seen in the manager's sheets, keyed by city code.
var citySpellings = map[string][]string{
	"CACHOEIRINHA":   {"Cachoeirinha", "CACHOEIRINHA - RS", "Cacchoeirinha", "cachoeirina"},
	"NOVO_HAMBURGO":  {"Novo Hamburgo", "Novo Hambuirgo", "NOVO HAMURGO"},
	"ESTANCIA_VELHA": {"Estância Velha", "Estancia velha.", "ESTANCIA"},
	"SAPUCAIA":       {"Sapucaia do Sul", "Sapucaia - RS"},
	"IGREJINHA":      {"Igrejinha", "Igrejnha"},
	"PAROBE":         {"Parobé", "Parpobé"},
	"TRAMANDAI":      {"Tramandaí", "TRAMANDAI"},
	"CANOAS":         {"Canoas"},
	"SAO_LEOPOLDO":   {"São Leopoldo", "SAO LEOPOLDO - RS"},
}

var cityRegion = map[string]domain.Region{
	"CACHOEIRINHA":   domain.RegionMatriz,
	"NOVO_HAMBURGO":  domain.RegionSinos,
	"ESTANCIA_VELHA": domain.RegionSinos,
	"SAPUCAIA":       domain.RegionSinos,
	"IGREJINHA":      domain.RegionSinos,
	"PAROBE":         domain.RegionSinos,
	"TRAMANDAI":      domain.RegionLitoral,
	"CANOAS":         domain.RegionMatriz,
	"SAO_LEOPOLDO":   domain.RegionSinos,
}

var (
	attendants    = []string{"Willian P", "Maria Silva", "Joana", "COBRANÇA"}
	neighborhoods = []string{"Centro", "Lago Azul", "Vila Nova", "Rondônia", "Feitoria"}
	pickupTexts   = []string{"Sem retirada", "Entregou em loja", "Não atendeu"}
	notes         = []string{
		"Sem sinal - CTO.",
		"Retido com 50% OFF na próxima fatura.",
		"Cliente pediu retorno; ligar após 18h",
		`Disse "vou pensar"`,
		"",
	}
)

func main() {
	rng := rand.New(rand.NewSource(42))
	baseDir := findTestdataDir()

	period := &domain.Period{
		Year:                2024,
		Month:               3,
		TargetCancellations: 220,
		TotalActiveBase:     19554,
		BusinessDays:        21,
		WorkedDays:          9,
	}

	records := generateCases(rng, period, 60)
	grid := export.Grid(period, records)
	addTypos(rng, grid[4:])
	grid = append(grid, brokenRows()...)

	text := export.FormatCSV(grid)
	name := fmt.Sprintf("planilha_%s_%d", strings.ToLower(mapping.MonthName(period.Month)), period.Year)

	writeFile(filepath.Join(baseDir, name+".csv"), []byte(text))
	fmt.Printf("Generated %d rows -> %s.csv\n", len(grid)-4, name)

	// Same sheet as Excel saves it on Windows: no BOM, Windows-1252.
	ansi, err := charmap.Windows1252.NewEncoder().String(strings.TrimPrefix(text, "\uFEFF"))
	if err != nil {
		panic(err)
	}
	writeFile(filepath.Join(baseDir, name+"_ansi.csv"), []byte(ansi))
	fmt.Printf("Generated Windows-1252 copy -> %s_ansi.csv\n", name)
}

func generateCases(rng *rand.Rand, p *domain.Period, n int) []domain.CaseView {
	codes := make([]string, 0, len(citySpellings))
	for code := range citySpellings {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	records := make([]domain.CaseView, 0, n)
	for i := 1; i <= n; i++ {
		code := codes[rng.Intn(len(codes))]
		spellings := citySpellings[code]

		// Status distribution: 70% cancelled, 20% retained, 10% delinquent.
		var status domain.Status
		roll := rng.Float64()
		switch {
		case roll < 0.70:
			status = domain.StatusCancelado
		case roll < 0.90:
			status = domain.StatusRetido
		default:
			status = domain.StatusInadimplencia
		}

		c := domain.CaseView{
			RetentionCase: domain.RetentionCase{
				RegisteredAt: start.AddDate(0, 0, rng.Intn(28)),
				Status:       status,
				ClientName:   fmt.Sprintf("Cliente Exemplo %d", i),
				Neighborhood: neighborhoods[rng.Intn(len(neighborhoods))],
				Contact:      fmt.Sprintf("(51) 9%04d-%04d", rng.Intn(10000), rng.Intn(10000)),
				CityID:       code,
				Region:       cityRegion[code],
				Notes:        notes[rng.Intn(len(notes))],
			},
			AttendantName: attendants[rng.Intn(len(attendants))],
			CityName:      spellings[rng.Intn(len(spellings))],
		}
		if status == domain.StatusCancelado {
			c.Motive = domain.Motives[rng.Intn(len(domain.Motives))]
			if rng.Float64() < 0.3 {
				d := c.RegisteredAt.AddDate(0, 0, 2+rng.Intn(5))
				c.PickupDate = &d
			} else {
				c.PickupText = pickupTexts[rng.Intn(len(pickupTexts))]
			}
		}
		records = append(records, c)
	}
	return records
}

// addTypos mimics hand edits: full dates, lower-case regions, the "Litotal"
// slip and motives typed without accents.
func addTypos(rng *rand.Rand, lines [][]string) {
	for _, line := range lines {
		roll := rng.Float64()
		switch {
		case roll < 0.10:
			line[colDate] += "/2024"
		case roll < 0.15 && line[colRegion] == mapping.RegionLabel(domain.RegionLitoral):
			line[colRegion] = "Litotal"
		case roll < 0.25:
			line[colRegion] = strings.ToLower(line[colRegion])
		case roll < 0.35:
			line[colMotive] = stripAccents(line[colMotive])
		}
	}
}

// brokenRows are lines the importer must flag instead of importing.
func brokenRows() [][]string {
	row := func(cells ...string) []string {
		for len(cells) < 19 {
			cells = append(cells, "")
		}
		return cells
	}
	return [][]string{
		row("1", "31/04", "CANCELADO", "Cliente Data Invalida", "Centro", "", "Canoas", "Matriz", "", "Sem retirada", "JOANA", "OUTROS"),
		row("1", "12/03", "RETIDO", "Cliente Cidade Nova", "Centro", "", "Xangri-lá", "Litoral", "", "", "MARIA SILVA"),
		row("1", "13/03", "CANCELADO", "Cliente Sem Motivo", "Centro", "", "Ivoti", "Sinos", "", "", "WILLIAN P"),
		row("", "", "", "", "", "", "", "", "", "", "", "", "linha de rodapé"),
	}
}

func stripAccents(s string) string {
	return strings.NewReplacer("Ç", "C", "Ã", "A", "Ê", "E", "Ó", "O").Replace(s)
}

func writeFile(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		panic(err)
	}
}

func findTestdataDir() string {
	// Look for the testdata directory relative to common locations.
	candidates := []string{
		"testdata",
		"./testdata",
		"../testdata",
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	// Fallback.
	return "testdata"
}
