package export

import (
	"github.com/shopspring/decimal"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/money"
)

// Summary holds the aggregates of the sheet's summary line.
type Summary struct {
	Target             int    `json:"target"`
	Cancelled          int    `json:"cancelled"`
	Retained           int    `json:"retained"`
	Delinquent         int    `json:"delinquent"`
	TotalCompany       int    `json:"total_company"`
	Balance            int    `json:"balance"`
	BusinessDays       int    `json:"business_days"`
	WorkedDays         int    `json:"worked_days"`
	RemainingDays      int    `json:"remaining_days"`
	DailyTarget        int    `json:"daily_target"`
	RecalculatedTarget int    `json:"recalculated_target"`
	ActiveBase         int    `json:"active_base"`
	Churn              string `json:"churn"`
	Budget             string `json:"budget"`
}

// Summarize counts records by status and derives the period's targets.
// Churn is "" when the period has no active base.
func Summarize(p *domain.Period, records []domain.CaseView) Summary {
	s := Summary{
		Target:       p.TargetCancellations,
		BusinessDays: p.BusinessDays,
		WorkedDays:   p.WorkedDays,
		DailyTarget:  p.DailyManualTarget,
		ActiveBase:   p.TotalActiveBase,
		Budget:       money.FormatCents(p.BudgetCents),
	}
	for i := range records {
		switch records[i].Status {
		case domain.StatusCancelado:
			s.Cancelled++
		case domain.StatusRetido:
			s.Retained++
		case domain.StatusInadimplencia:
			s.Delinquent++
		}
	}

	s.TotalCompany = s.Cancelled + s.Delinquent
	s.Balance = s.Target - s.Cancelled
	s.RemainingDays = s.BusinessDays - s.WorkedDays
	s.RecalculatedTarget = s.Balance
	if s.RemainingDays > 0 {
		s.RecalculatedTarget = s.Balance - s.RemainingDays*s.DailyTarget
	}
	s.Churn = churn(s.TotalCompany, s.ActiveBase)
	return s
}

func churn(lost, base int) string {
	if base <= 0 {
		return ""
	}
	pct := decimal.NewFromInt(int64(lost)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(base)))
	return pct.StringFixed(2) + "%"
}
