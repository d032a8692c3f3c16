package domain

import "time"

type Status string

const (
	StatusCancelado     Status = "CANCELADO"
	StatusRetido        Status = "RETIDO"
	StatusInadimplencia Status = "INADIMPLENCIA"
)

// Statuses lists every status in sheet order: the manager groups cancelled
// cases first, then retained, then delinquent.
var Statuses = []Status{StatusCancelado, StatusRetido, StatusInadimplencia}

// Rank is the position of s in Statuses. Unknown statuses sort last.
func (s Status) Rank() int {
	for i, v := range Statuses {
		if s == v {
			return i
		}
	}
	return len(Statuses)
}

func (s Status) Valid() bool {
	switch s {
	case StatusCancelado, StatusRetido, StatusInadimplencia:
		return true
	}
	return false
}

type Region string

const (
	RegionSinos   Region = "SINOS"
	RegionLitoral Region = "LITORAL"
	RegionMatriz  Region = "MATRIZ"
)

var Regions = []Region{RegionSinos, RegionLitoral, RegionMatriz}

func (r Region) Valid() bool {
	switch r {
	case RegionSinos, RegionLitoral, RegionMatriz:
		return true
	}
	return false
}

// Motive is the cancellation reason. Only meaningful for CANCELADO cases.
type Motive string

const (
	MotiveInsatisfacaoAtd     Motive = "INSATISFACAO_ATD"
	MotiveInsatisfacaoServico Motive = "INSATISFACAO_SERVICO"
	MotiveMudancaEndereco     Motive = "MUDANCA_ENDERECO"
	MotiveMotivosPessoais     Motive = "MOTIVOS_PESSOAIS"
	MotiveTrocaProvedor       Motive = "TROCA_PROVEDOR"
	MotiveProblemasFinanc     Motive = "PROBLEMAS_FINANC"
	MotiveOutros              Motive = "OUTROS"
	MotiveInadimplencia90     Motive = "INADIMPLENCIA_90"
)

var Motives = []Motive{
	MotiveInsatisfacaoAtd,
	MotiveInsatisfacaoServico,
	MotiveMudancaEndereco,
	MotiveMotivosPessoais,
	MotiveTrocaProvedor,
	MotiveProblemasFinanc,
	MotiveOutros,
	MotiveInadimplencia90,
}

func (m Motive) Valid() bool {
	for _, v := range Motives {
		if m == v {
			return true
		}
	}
	return false
}

// RetentionCase is one customer interaction logged against a period.
type RetentionCase struct {
	ID           string     `json:"id"`
	PeriodID     string     `json:"period_id"`
	AttendantID  string     `json:"attendant_id"`
	RegisteredAt time.Time  `json:"registered_at"`
	Status       Status     `json:"status"`
	ClientName   string     `json:"client_name"`
	Neighborhood string     `json:"neighborhood,omitempty"`
	Contact      string     `json:"contact,omitempty"`
	CityID       string     `json:"city_id"`
	Region       Region     `json:"region"`
	Motive       Motive     `json:"motive,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	PickupText   string     `json:"pickup_text,omitempty"`
	PickupDate   *time.Time `json:"pickup_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Validate checks the enum fields and the motive rule. City membership is
// checked by the caller against the active city set.
func (c *RetentionCase) Validate() error {
	switch {
	case c.ClientName == "":
		return invalid("client name is required")
	case !c.Status.Valid():
		return invalid("invalid status %q", c.Status)
	case !c.Region.Valid():
		return invalid("invalid region %q", c.Region)
	case c.Motive != "" && !c.Motive.Valid():
		return invalid("invalid motive %q", c.Motive)
	case c.Status == StatusCancelado && c.Motive == "":
		return invalid("motive is required when status is CANCELADO")
	case c.CityID == "":
		return invalid("city is required")
	}
	return nil
}

// CaseView is a stored case joined with the names the export needs.
type CaseView struct {
	RetentionCase
	AttendantName string `json:"attendant_name"`
	CityName      string `json:"city_name"`
}
