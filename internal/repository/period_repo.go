package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
)

const periodColumns = `id, year, month, target_cancellations, budget_cents, total_active_base,
	business_days, worked_days, daily_manual_target, created_at`

type PeriodRepo struct {
	db *sql.DB
}

func NewPeriodRepo(db *sql.DB) *PeriodRepo {
	return &PeriodRepo{db: db}
}

func (r *PeriodRepo) Create(ctx context.Context, p *domain.Period) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO periods (`+periodColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Year, p.Month, p.TargetCancellations, p.BudgetCents, p.TotalActiveBase,
		p.BusinessDays, p.WorkedDays, p.DailyManualTarget, formatTime(p.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("period %02d/%d: %w", p.Month, p.Year, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("insert period: %w", err)
	}
	return nil
}

func (r *PeriodRepo) GetByID(ctx context.Context, id string) (*domain.Period, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+periodColumns+" FROM periods WHERE id = ?", id)
	p, err := scanPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrPeriodNotFound)
	}
	return p, err
}

// Update stores the target fields of p. Year and month are fixed once the
// period exists.
func (r *PeriodRepo) Update(ctx context.Context, p *domain.Period) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE periods SET
			target_cancellations = ?, budget_cents = ?, total_active_base = ?,
			business_days = ?, worked_days = ?, daily_manual_target = ?
		WHERE id = ?`,
		p.TargetCancellations, p.BudgetCents, p.TotalActiveBase,
		p.BusinessDays, p.WorkedDays, p.DailyManualTarget, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update period: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Errorf("%s: %w", p.ID, domain.ErrPeriodNotFound))
}

type PeriodFilter struct {
	Year  int
	Month int
}

// List returns periods newest first.
func (r *PeriodRepo) List(ctx context.Context, f PeriodFilter) ([]domain.Period, error) {
	where, args := buildPeriodWhere(f)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+periodColumns+" FROM periods"+where+" ORDER BY year DESC, month DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("query periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.Period{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, *p)
	}
	return periods, rows.Err()
}

func (r *PeriodRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM periods").Scan(&count)
	return count, err
}

func buildPeriodWhere(f PeriodFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.Year != 0 {
		clauses = append(clauses, "year = ?")
		args = append(args, f.Year)
	}
	if f.Month != 0 {
		clauses = append(clauses, "month = ?")
		args = append(args, f.Month)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanPeriod(s scanner) (*domain.Period, error) {
	var p domain.Period
	var createdAt string
	err := s.Scan(&p.ID, &p.Year, &p.Month, &p.TargetCancellations, &p.BudgetCents, &p.TotalActiveBase,
		&p.BusinessDays, &p.WorkedDays, &p.DailyManualTarget, &createdAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}
