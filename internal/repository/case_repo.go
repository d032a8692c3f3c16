package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
)

const caseColumns = `id, period_id, attendant_id, registered_at, status, client_name, neighborhood,
	contact, city_id, region, motive, notes, pickup_text, pickup_date, created_at`

const insertCaseSQL = `INSERT INTO retention_cases (` + caseColumns + `)
	VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

// statusRankSQL orders cases the way the manager's sheet groups them.
const statusRankSQL = `CASE c.status WHEN 'CANCELADO' THEN 0 WHEN 'RETIDO' THEN 1 WHEN 'INADIMPLENCIA' THEN 2 ELSE 3 END`

type CaseRepo struct {
	db *sql.DB
}

func NewCaseRepo(db *sql.DB) *CaseRepo {
	return &CaseRepo{db: db}
}

func (r *CaseRepo) Create(ctx context.Context, c *domain.RetentionCase) error {
	if _, err := r.db.ExecContext(ctx, insertCaseSQL, caseArgs(c)...); err != nil {
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

// InsertMany stores all cases in one transaction, forcing each onto
// periodID. Either every case is stored or none is.
func (r *CaseRepo) InsertMany(ctx context.Context, periodID string, cases []domain.RetentionCase) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertCaseSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := range cases {
		c := cases[i]
		c.PeriodID = periodID
		if _, err := stmt.ExecContext(ctx, caseArgs(&c)...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(cases), nil
}

func (r *CaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM retention_cases WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete case: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Errorf("case %s: %w", id, domain.ErrNotFound))
}

type CaseFilter struct {
	PeriodID string
	Status   domain.Status
	CityID   string
}

const selectCaseViewSQL = `
		SELECT c.id, c.period_id, c.attendant_id, c.registered_at, c.status, c.client_name,
		       c.neighborhood, c.contact, c.city_id, c.region, c.motive, c.notes,
		       c.pickup_text, c.pickup_date, c.created_at,
		       COALESCE(u.name, ''), COALESCE(ci.name, '')
		FROM retention_cases c
		LEFT JOIN users u ON u.id = c.attendant_id
		LEFT JOIN cities ci ON ci.id = c.city_id`

// ListViews returns cases with attendant and city names, in export order:
// CANCELADO, RETIDO, INADIMPLENCIA, then registration date.
func (r *CaseRepo) ListViews(ctx context.Context, f CaseFilter) ([]domain.CaseView, error) {
	where, args := buildCaseWhere(f)
	query := selectCaseViewSQL + where + `
		ORDER BY ` + statusRankSQL + `, c.registered_at ASC, c.created_at ASC, c.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}
	defer rows.Close()

	views := []domain.CaseView{}
	for rows.Next() {
		v, err := scanCaseView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		views = append(views, *v)
	}
	return views, rows.Err()
}

func (r *CaseRepo) GetByID(ctx context.Context, id string) (*domain.CaseView, error) {
	row := r.db.QueryRowContext(ctx, selectCaseViewSQL+" WHERE c.id = ?", id)
	v, err := scanCaseView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}
	return v, nil
}

// Update rewrites the editable fields of a case. Period, attendant and
// registration date stay as stored.
func (r *CaseRepo) Update(ctx context.Context, c *domain.RetentionCase) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE retention_cases SET
			client_name = ?, neighborhood = ?, contact = ?, city_id = ?, region = ?,
			status = ?, motive = ?, notes = ?, pickup_text = ?, pickup_date = ?
		WHERE id = ?`,
		c.ClientName, c.Neighborhood, c.Contact, c.CityID, string(c.Region),
		string(c.Status), string(c.Motive), c.Notes, c.PickupText, formatNullableTime(c.PickupDate),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Errorf("case %s: %w", c.ID, domain.ErrNotFound))
}

func (r *CaseRepo) ListByPeriod(ctx context.Context, periodID string) ([]domain.CaseView, error) {
	return r.ListViews(ctx, CaseFilter{PeriodID: periodID})
}

func (r *CaseRepo) CountByPeriod(ctx context.Context, periodID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM retention_cases WHERE period_id = ?", periodID).Scan(&count)
	return count, err
}

func buildCaseWhere(f CaseFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.PeriodID != "" {
		clauses = append(clauses, "c.period_id = ?")
		args = append(args, f.PeriodID)
	}
	if f.Status != "" {
		clauses = append(clauses, "c.status = ?")
		args = append(args, string(f.Status))
	}
	if f.CityID != "" {
		clauses = append(clauses, "c.city_id = ?")
		args = append(args, f.CityID)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanCaseView(s scanner) (*domain.CaseView, error) {
	var v domain.CaseView
	var status, region, motive, registeredAt, createdAt string
	var pickupDate sql.NullString
	err := s.Scan(
		&v.ID, &v.PeriodID, &v.AttendantID, &registeredAt, &status, &v.ClientName,
		&v.Neighborhood, &v.Contact, &v.CityID, &region, &motive, &v.Notes,
		&v.PickupText, &pickupDate, &createdAt,
		&v.AttendantName, &v.CityName,
	)
	if err != nil {
		return nil, err
	}
	v.Status = domain.Status(status)
	v.Region = domain.Region(region)
	v.Motive = domain.Motive(motive)
	v.RegisteredAt = parseTime(registeredAt)
	v.CreatedAt = parseTime(createdAt)
	v.PickupDate = parseNullableTime(pickupDate)
	return &v, nil
}

func caseArgs(c *domain.RetentionCase) []any {
	return []any{
		c.ID, c.PeriodID, c.AttendantID, formatTime(c.RegisteredAt), string(c.Status), c.ClientName,
		c.Neighborhood, c.Contact, c.CityID, string(c.Region), string(c.Motive), c.Notes,
		c.PickupText, formatNullableTime(c.PickupDate), formatTime(c.CreatedAt),
	}
}
