package domain

import "time"

// Period is one competência: the monthly target configuration that owns a
// batch of cases.
type Period struct {
	ID                  string    `json:"id"`
	Year                int       `json:"year"`
	Month               int       `json:"month"`
	TargetCancellations int       `json:"target_cancellations"`
	BudgetCents         int64     `json:"budget_cents"`
	TotalActiveBase     int       `json:"total_active_base"`
	BusinessDays        int       `json:"business_days"`
	WorkedDays          int       `json:"worked_days"`
	DailyManualTarget   int       `json:"daily_manual_target"`
	CreatedAt           time.Time `json:"created_at"`
}

// Validate checks the target fields. Zero means "not set" for every one of
// them.
func (p *Period) Validate() error {
	switch {
	case p.TargetCancellations < 0:
		return invalid("target_cancellations must not be negative")
	case p.BudgetCents < 0:
		return invalid("budget must not be negative")
	case p.TotalActiveBase < 0:
		return invalid("total_active_base must not be negative")
	case p.BusinessDays < 0 || p.BusinessDays > 31:
		return invalid("business_days must be between 0 and 31")
	case p.WorkedDays < 0 || p.WorkedDays > p.BusinessDays:
		return invalid("worked_days must be between 0 and business_days")
	case p.DailyManualTarget < 0:
		return invalid("daily_manual_target must not be negative")
	}
	return nil
}
