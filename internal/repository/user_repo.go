package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
)

const userColumns = "id, name, email, password_hash, role, active, created_at"

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?,?,?,?,?,?,?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), boolToInt(u.Active), formatTime(u.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %q: %w", u.Email, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u, err
}

// List returns every user, active or not, by name.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.query(ctx, "SELECT "+userColumns+" FROM users ORDER BY name")
}

func (r *UserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	return r.query(ctx, "SELECT "+userColumns+" FROM users WHERE active = 1 ORDER BY name")
}

func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET active = ? WHERE id = ?", boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Errorf("user %s: %w", id, domain.ErrNotFound))
}

func (r *UserRepo) SetPasswordHash(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, id)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Errorf("user %s: %w", id, domain.ErrNotFound))
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *UserRepo) query(ctx context.Context, q string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var role, createdAt string
	var active int
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &active, &createdAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.Active = active == 1
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}
