package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRank(t *testing.T) {
	assert.Equal(t, 0, StatusCancelado.Rank())
	assert.Equal(t, 1, StatusRetido.Rank())
	assert.Equal(t, 2, StatusInadimplencia.Rank())
	assert.Equal(t, 3, Status("ATIVO").Rank())
}

func TestPeriodValidate(t *testing.T) {
	ok := Period{TargetCancellations: 220, BudgetCents: 100, TotalActiveBase: 19554, BusinessDays: 21, WorkedDays: 21}
	assert.NoError(t, ok.Validate())
	assert.NoError(t, (&Period{}).Validate())

	tests := []struct {
		name string
		edit func(p *Period)
	}{
		{"negative target", func(p *Period) { p.TargetCancellations = -1 }},
		{"negative budget", func(p *Period) { p.BudgetCents = -1 }},
		{"negative base", func(p *Period) { p.TotalActiveBase = -1 }},
		{"too many business days", func(p *Period) { p.BusinessDays = 32 }},
		{"worked past business days", func(p *Period) { p.WorkedDays = 22 }},
		{"negative daily target", func(p *Period) { p.DailyManualTarget = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ok
			tt.edit(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
		})
	}
}
