package mapping

import (
	"sort"
	"strings"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
)

var statusTable = map[string]domain.Status{
	"CANCELADO":     domain.StatusCancelado,
	"RETIDO":        domain.StatusRetido,
	"INADIMPLENCIA": domain.StatusInadimplencia,
	"INADIMPLÊNCIA": domain.StatusInadimplencia,
}

var statusLabels = map[domain.Status]string{
	domain.StatusCancelado:     "CANCELADO",
	domain.StatusRetido:        "RETIDO",
	domain.StatusInadimplencia: "INADIMPLENCIA",
}

var regionTable = map[string]domain.Region{
	"sinos":   domain.RegionSinos,
	"litoral": domain.RegionLitoral,
	"litotal": domain.RegionLitoral, // frequent typo
	"matriz":  domain.RegionMatriz,
}

var regionLabels = map[domain.Region]string{
	domain.RegionSinos:   "Sinos",
	domain.RegionLitoral: "Litoral",
	domain.RegionMatriz:  "Matriz",
}

var motiveAliases = map[string]domain.Motive{
	"INSATISFAÇÃO C/ ATD":     domain.MotiveInsatisfacaoAtd,
	"INSATISFACAO C/ ATD":     domain.MotiveInsatisfacaoAtd,
	"INSATISFAÇÃO C/ SERVIÇO": domain.MotiveInsatisfacaoServico,
	"INSATISFACAO C/ SERVICO": domain.MotiveInsatisfacaoServico,
	"MUDANÇA DE ENDEREÇO":     domain.MotiveMudancaEndereco,
	"MUDANCA DE ENDERECO":     domain.MotiveMudancaEndereco,
	"MOTIVOS PESSOAIS":        domain.MotiveMotivosPessoais,
	"TROCA DE PROVEDOR":       domain.MotiveTrocaProvedor,
	"PROBLEMAS FINANC":        domain.MotiveProblemasFinanc,
	"PROBLEMAS FINANCEIROS":   domain.MotiveProblemasFinanc,
	"OUTROS":                  domain.MotiveOutros,
	"90 + INADIMPLÊNCIA":      domain.MotiveInadimplencia90,
	"90 + INADIMPLENCIA":      domain.MotiveInadimplencia90,
}

var motiveLabels = map[domain.Motive]string{
	domain.MotiveInsatisfacaoAtd:     "INSATISFAÇÃO C/ ATD",
	domain.MotiveInsatisfacaoServico: "INSATISFAÇÃO C/ SERVIÇO",
	domain.MotiveMudancaEndereco:     "MUDANÇA DE ENDEREÇO",
	domain.MotiveMotivosPessoais:     "MOTIVOS PESSOAIS",
	domain.MotiveTrocaProvedor:       "TROCA DE PROVEDOR",
	domain.MotiveProblemasFinanc:     "PROBLEMAS FINANC",
	domain.MotiveOutros:              "OUTROS",
	domain.MotiveInadimplencia90:     "90 + INADIMPLÊNCIA",
}

// cityAliases lists every spelling seen in the manager's sheets. The "- RS"
// suffix and accents are folded away by cityKey, so only the distinct
// misspellings need an entry.
var cityAliases = map[string]string{
	"cachoeirinha":    "CACHOEIRINHA",
	"cacchoeirinha":   "CACHOEIRINHA",
	"cachoeirina":     "CACHOEIRINHA",
	"cachoeriinha":    "CACHOEIRINHA",
	"cachooeirinha":   "CACHOEIRINHA",
	"gravataí":        "GRAVATAI",
	"tramandaí":       "TRAMANDAI",
	"imbé":            "IMBE",
	"cidreira":        "CIDREIRA",
	"osório":          "OSORIO",
	"são leopoldo":    "SAO_LEOPOLDO",
	"novo hamburgo":   "NOVO_HAMBURGO",
	"novo hambuirgo":  "NOVO_HAMBURGO",
	"novo hamurgo":    "NOVO_HAMBURGO",
	"ivoti":           "IVOTI",
	"taquara":         "TAQUARA",
	"igrejinha":       "IGREJINHA",
	"igrejnha":        "IGREJINHA",
	"parobé":          "PAROBE",
	"parpobé":         "PAROBE",
	"estância velha":  "ESTANCIA_VELHA",
	"estancia velha.": "ESTANCIA_VELHA",
	"estancia":        "ESTANCIA_VELHA",
	"dois irmãos":     "DOIS_IRMAOS",
	"campo bom":       "CAMPO_BOM",
	"sapucaia do sul": "SAPUCAIA",
	"sapucaia":        "SAPUCAIA",
	"esteio":          "ESTEIO",
	"canoas":          "CANOAS",
	"porto alegre":    "PORTO_ALEGRE",
	"viamão":          "VIAMAO",
	"alvorada":        "ALVORADA",
	"sapiranga":       "SAPIRANGA",
	"nova hartz":      "NOVA_HARTZ",
	"araricá":         "ARARICA",
	"indianópolis":    "INDIANOPOLIS",
}

var cityLabels = map[string]string{
	"CACHOEIRINHA":   "Cachoeirinha",
	"GRAVATAI":       "Gravataí",
	"TRAMANDAI":      "Tramandaí",
	"IMBE":           "Imbé",
	"CIDREIRA":       "Cidreira",
	"OSORIO":         "Osório",
	"SAO_LEOPOLDO":   "São Leopoldo",
	"NOVO_HAMBURGO":  "Novo Hamburgo",
	"IVOTI":          "Ivoti",
	"TAQUARA":        "Taquara",
	"IGREJINHA":      "Igrejinha",
	"PAROBE":         "Parobé",
	"ESTANCIA_VELHA": "Estância Velha",
	"DOIS_IRMAOS":    "Dois Irmãos",
	"CAMPO_BOM":      "Campo Bom",
	"SAPUCAIA":       "Sapucaia do Sul",
	"ESTEIO":         "Esteio",
	"CANOAS":         "Canoas",
	"PORTO_ALEGRE":   "Porto Alegre",
	"VIAMAO":         "Viamão",
	"ALVORADA":       "Alvorada",
	"SAPIRANGA":      "Sapiranga",
	"NOVA_HARTZ":     "Nova Hartz",
	"ARARICA":        "Araricá",
	"INDIANOPOLIS":   "Indianópolis",
}

// Folded lookup tables, built once from the alias lists above.
var (
	cityTable   = make(map[string]string, len(cityAliases))
	cityKeys    []string
	motiveTable = make(map[string]domain.Motive, len(motiveAliases))
)

func init() {
	for alias, code := range cityAliases {
		cityTable[cityKey(alias)] = code
	}
	for code, label := range cityLabels {
		cityTable[cityKey(label)] = code
	}
	for k := range cityTable {
		cityKeys = append(cityKeys, k)
	}
	sort.Strings(cityKeys)
	for alias, code := range motiveAliases {
		motiveTable[motiveKey(alias)] = code
	}
}

// NormalizeStatus is an exact, case-insensitive lookup. An unrecognized status
// means the line is not case data at all.
func NormalizeStatus(raw string) (domain.Status, bool) {
	s, ok := statusTable[strings.ToUpper(strings.TrimSpace(raw))]
	return s, ok
}

func NormalizeRegion(raw string) (domain.Region, bool) {
	r, ok := regionTable[strings.ToLower(strings.TrimSpace(raw))]
	return r, ok
}

func NormalizeMotive(raw string) (domain.Motive, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	m, ok := motiveTable[motiveKey(raw)]
	return m, ok
}

// NormalizeCity returns the canonical city code for a spreadsheet spelling.
func NormalizeCity(raw string) (string, bool) {
	key := cityKey(raw)
	if key == "" {
		return "", false
	}
	code, ok := cityTable[key]
	return code, ok
}

// StatusLabel returns the spreadsheet spelling for s, or s itself when unknown.
func StatusLabel(s domain.Status) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func RegionLabel(r domain.Region) string {
	if l, ok := regionLabels[r]; ok {
		return l
	}
	return string(r)
}

func MotiveLabel(m domain.Motive) string {
	if m == "" {
		return ""
	}
	if l, ok := motiveLabels[m]; ok {
		return l
	}
	return string(m)
}

func CityLabel(code string) string {
	if l, ok := cityLabels[code]; ok {
		return l
	}
	return code
}

// CityCodes returns every canonical city code known to the table.
func CityCodes() []string {
	codes := make([]string, 0, len(cityLabels))
	for code := range cityLabels {
		codes = append(codes, code)
	}
	return codes
}
