package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
)

type CityRepo struct {
	db *sql.DB
}

func NewCityRepo(db *sql.DB) *CityRepo {
	return &CityRepo{db: db}
}

func (r *CityRepo) Create(ctx context.Context, c *domain.City) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO cities (id, name, active) VALUES (?,?,?)",
		c.ID, c.Name, boolToInt(c.Active),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("city %s: %w", c.ID, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("insert city: %w", err)
	}
	return nil
}

// BulkUpsert inserts cities that are not there yet and leaves existing ones
// untouched. Returns how many were inserted.
func (r *CityRepo) BulkUpsert(ctx context.Context, cities []domain.City) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO cities (id, name, active) VALUES (?,?,?)")
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i := range cities {
		res, err := stmt.ExecContext(ctx, cities[i].ID, cities[i].Name, boolToInt(cities[i].Active))
		if err != nil {
			return 0, fmt.Errorf("insert city %s: %w", cities[i].ID, err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (r *CityRepo) GetByID(ctx context.Context, id string) (*domain.City, error) {
	var c domain.City
	var active int
	err := r.db.QueryRowContext(ctx, "SELECT id, name, active FROM cities WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("city %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	c.Active = active == 1
	return &c, nil
}

func (r *CityRepo) List(ctx context.Context) ([]domain.City, error) {
	return r.query(ctx, "SELECT id, name, active FROM cities ORDER BY name")
}

func (r *CityRepo) ListActive(ctx context.Context) ([]domain.City, error) {
	return r.query(ctx, "SELECT id, name, active FROM cities WHERE active = 1 ORDER BY name")
}

func (r *CityRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE cities SET active = ? WHERE id = ?", boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("update city: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Errorf("city %s: %w", id, domain.ErrNotFound))
}

func (r *CityRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cities").Scan(&count)
	return count, err
}

func (r *CityRepo) query(ctx context.Context, q string) ([]domain.City, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	cities := []domain.City{}
	for rows.Next() {
		var c domain.City
		var active int
		if err := rows.Scan(&c.ID, &c.Name, &active); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		c.Active = active == 1
		cities = append(cities, c)
	}
	return cities, rows.Err()
}
