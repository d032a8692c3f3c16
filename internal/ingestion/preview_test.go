package ingestion

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
)

var previewNow = time.Date(2024, 3, 28, 10, 0, 0, 0, time.UTC)

const summaryBlock = "META;;REALIZADO FULL TIME organico;SALDO;DIAS úteis;DIAS trabalhados;DIAS RESTANTES;META diaria;META recalculada;REALIZADO FULL TIME inadimplencia;TOTAL EMPRESA;CHURN GERAL fulltime;;;;;;\r\n" +
	"220;;5;215;20;15;5;9;170;3;8;0,04%;;;;;;\r\n" +
	"MARÇO;;;;;;;;;;;;;;;;;;\r\n"

const detailHeader = "QNT;DATA;STATUS;NOME COMPLETO CLIENTE;BAIRRO;CONTATO;CIDADE;REGIÃO;AGENDA RETIRADA;RETIRADA;ATENDENTE;MOTIVO;OBSERVAÇÕES;REGISTRADO IXC;;;;;\r\n"

func sheet(lines ...string) string {
	return summaryBlock + detailHeader + strings.Join(lines, "\r\n")
}

func TestBuildPreview_SkipsNonDataLines(t *testing.T) {
	text := sheet(
		"1;05/03;INADIMPLÊNCIA;Fulano de Tal;Centro;51999990000;Cidade Fantasma;Sinos;;;MARIA;;",
		"1;06/03;RETIDO;;Centro;;Canoas;Sinos;;;MARIA;;",
	)

	rows := buildPreview(text, 2024, previewNow)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].Index)
	assert.Equal(t, domain.StatusInadimplencia, rows[0].Status)
	assert.Contains(t, rows[0].Error, "Cidade")
	assert.Contains(t, rows[0].Error, "Cidade Fantasma")
	assert.False(t, rows[0].Valid())
}

func TestBuildPreview_ValidRow(t *testing.T) {
	text := "\uFEFF" + sheet(
		`1;05/03;CANCELADO;Ana Souza;Centro;"51 9999-0000";Novo Hamburgo - RS;Sinos;10/03/2024;;MARIA;Troca de provedor;"foi para concorrente; fibra"`,
	)

	rows := buildPreview(text, 2024, previewNow)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.True(t, row.Valid(), row.Error)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), row.RegisteredAt)
	assert.Equal(t, domain.StatusCancelado, row.Status)
	assert.Equal(t, "Ana Souza", row.ClientName)
	assert.Equal(t, "51 9999-0000", row.Contact)
	assert.Equal(t, "NOVO_HAMBURGO", row.City)
	assert.Equal(t, "Novo Hamburgo - RS", row.CityRaw)
	assert.Equal(t, domain.RegionSinos, row.Region)
	assert.Equal(t, domain.MotiveTrocaProvedor, row.Motive)
	assert.Equal(t, "MARIA", row.AttendantName)
	assert.Equal(t, "foi para concorrente; fibra", row.Notes)
	require.NotNil(t, row.PickupDate)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *row.PickupDate)
	assert.Empty(t, row.PickupText)
}

func TestBuildPreview_FallbackDataStart(t *testing.T) {
	// No QNT header: data is assumed to begin on the fifth line.
	text := "a\nb\nc\nd\n" +
		"1;05/03;RETIDO;Ana;;;Canoas;Sinos;;;MARIA;;\n" +
		"1;06/03;RETIDO;Bia;;;Canoas;Sinos;;;MARIA;;"

	rows := buildPreview(text, 2024, previewNow)
	require.Len(t, rows, 2)
	assert.Equal(t, 4, rows[0].Index)
	assert.Equal(t, "Bia", rows[1].ClientName)

	// Rows before index 4 are lost when the header is missing.
	short := "1;05/03;RETIDO;Ana;;;Canoas;Sinos;;;MARIA;;\n"
	assert.Empty(t, buildPreview(short, 2024, previewNow))
}

func TestBuildPreview_ErrorPrecedence(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"city before region", "1;05/03;CANCELADO;Ana;;;Atlantida;Norte;;;MARIA;Preço;", "Cidade"},
		{"region before motive", "1;05/03;CANCELADO;Ana;;;Canoas;Norte;;;MARIA;Preço;", "Região"},
		{"motive", "1;05/03;CANCELADO;Ana;;;Canoas;Sinos;;;MARIA;Preço;", "Motivo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := buildPreview(sheet(tt.line), 2024, previewNow)
			require.Len(t, rows, 1)
			assert.True(t, strings.HasPrefix(rows[0].Error, tt.want), rows[0].Error)
		})
	}
}

func TestBuildPreview_MotiveRules(t *testing.T) {
	text := sheet(
		// Unknown motive on a retained case is not an error.
		"1;05/03;RETIDO;Ana;;;Canoas;Sinos;;;MARIA;Preço;",
		// Missing motive is left to the commit step.
		"1;05/03;CANCELADO;Bia;;;Canoas;Sinos;;;MARIA;;",
	)
	rows := buildPreview(text, 2024, previewNow)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Valid())
	assert.Empty(t, rows[0].Motive)
	assert.Equal(t, "Preço", rows[0].MotiveRaw)
	assert.True(t, rows[1].Valid())
	assert.Empty(t, rows[1].Motive)
}

func TestBuildPreview_Pickup(t *testing.T) {
	text := sheet(
		"1;05/03;RETIDO;Ana;;;Canoas;Sinos;12/03;;MARIA;;",
		"1;05/03;RETIDO;Bia;;;Canoas;Sinos;Sem retirada;;MARIA;;",
		"1;05/03;RETIDO;Caio;;;Canoas;Sinos;32/03;;MARIA;;",
		"1;05/03;RETIDO;Davi;;;Canoas;Sinos;;Entregou na loja;MARIA;;",
		"1;05/03;RETIDO;Eva;;;Canoas;Sinos;Não atendeu;Ligar depois;MARIA;;",
	)
	rows := buildPreview(text, 2024, previewNow)
	require.Len(t, rows, 5)

	require.NotNil(t, rows[0].PickupDate)
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), *rows[0].PickupDate)

	assert.Nil(t, rows[1].PickupDate)
	assert.Equal(t, "Sem retirada", rows[1].PickupText)

	assert.Nil(t, rows[2].PickupDate)
	assert.Equal(t, "32/03", rows[2].PickupText)
	assert.True(t, rows[2].Valid())

	assert.Equal(t, "Entregou na loja", rows[3].PickupText)
	assert.Equal(t, "Não atendeu", rows[4].PickupText)
}

func TestBuildPreview_Defaults(t *testing.T) {
	text := sheet("1;ontem;retido;Ana;;;sapucaia;LITOTAL")
	rows := buildPreview(text, 2024, previewNow)
	require.Len(t, rows, 1)
	assert.Equal(t, previewNow, rows[0].RegisteredAt)
	assert.Equal(t, domain.StatusRetido, rows[0].Status)
	assert.Equal(t, "SAPUCAIA", rows[0].City)
	assert.Equal(t, domain.RegionLitoral, rows[0].Region)
	assert.Empty(t, rows[0].AttendantName)
}

func TestBuildPreview_UnknownStatusSkipped(t *testing.T) {
	text := sheet(
		"1;05/03;PENDENTE;Ana;;;Canoas;Sinos;;;MARIA;;",
		";;;;;;;;;;;;",
		"",
	)
	assert.Empty(t, buildPreview(text, 2024, previewNow))
}
