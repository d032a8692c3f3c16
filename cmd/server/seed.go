package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/mapping"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/money"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/repository"
)

// seedFile is the layout of testdata/seed.json.
type seedFile struct {
	Cities []string   `json:"cities"`
	Period seedPeriod `json:"period"`
	Users  []seedUser `json:"users"`
}

type seedPeriod struct {
	TargetCancellations int    `json:"target_cancellations"`
	Budget              string `json:"budget"`
	TotalActiveBase     int    `json:"total_active_base"`
	BusinessDays        int    `json:"business_days"`
	WorkedDays          int    `json:"worked_days"`
}

type seedUser struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// seeder fills an empty database with the city catalogue, the current
// month's period and the initial accounts. Each table is only touched
// when it has no rows.
type seeder struct {
	users    *repository.UserRepo
	cities   *repository.CityRepo
	periods  *repository.PeriodRepo
	password string
	logger   *log.Logger
	now      func() time.Time
}

func (s *seeder) Run(ctx context.Context, path string) error {
	data, found, err := readSeedFile(path)
	if err != nil {
		return err
	}
	s.logger.Info("loaded seed file", "path", found)

	var f seedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("unmarshal seed: %w", err)
	}

	if err := s.seedCities(ctx, f.Cities); err != nil {
		return err
	}
	if err := s.seedPeriod(ctx, f.Period); err != nil {
		return err
	}
	return s.seedUsers(ctx, f.Users)
}

// readSeedFile tries the configured path, then the same path next to the
// executable.
func readSeedFile(path string) ([]byte, string, error) {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		if exe, err := os.Executable(); err == nil {
			dir := filepath.Dir(exe)
			candidates = append(candidates,
				filepath.Join(dir, path),
				filepath.Join(dir, "..", "..", path),
			)
		}
	}

	var loadErr error
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		loadErr = err
	}
	return nil, "", fmt.Errorf("could not find seed file in any candidate path: %w", loadErr)
}

func (s *seeder) seedCities(ctx context.Context, codes []string) error {
	count, err := s.cities.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("cities already present, skipping seed", log.FieldRecords, count)
		return nil
	}

	if len(codes) == 0 {
		codes = mapping.CityCodes()
	}
	cities := make([]domain.City, 0, len(codes))
	for _, code := range codes {
		code = mapping.CityCode(code)
		if code == "" {
			continue
		}
		cities = append(cities, domain.City{ID: code, Name: mapping.CityLabel(code), Active: true})
	}

	inserted, err := s.cities.BulkUpsert(ctx, cities)
	if err != nil {
		return fmt.Errorf("seed cities: %w", err)
	}
	s.logger.Info("seeded cities", log.FieldRecords, inserted)
	return nil
}

func (s *seeder) seedPeriod(ctx context.Context, sp seedPeriod) error {
	count, err := s.periods.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("periods already present, skipping seed", log.FieldRecords, count)
		return nil
	}

	var budget int64
	if strings.TrimSpace(sp.Budget) != "" {
		budget, err = money.ParseReaisToCents(sp.Budget)
		if err != nil {
			return fmt.Errorf("seed period budget: %w", err)
		}
	}

	now := s.now()
	p := &domain.Period{
		ID:                  uuid.NewString(),
		Year:                now.Year(),
		Month:               int(now.Month()),
		TargetCancellations: sp.TargetCancellations,
		BudgetCents:         budget,
		TotalActiveBase:     sp.TotalActiveBase,
		BusinessDays:        sp.BusinessDays,
		WorkedDays:          sp.WorkedDays,
		CreatedAt:           now,
	}
	if err := s.periods.Create(ctx, p); err != nil {
		return fmt.Errorf("seed period: %w", err)
	}
	s.logger.Info("seeded period", log.FieldYear, p.Year, log.FieldMonth, p.Month)
	return nil
}

func (s *seeder) seedUsers(ctx context.Context, users []seedUser) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("users already present, skipping seed", log.FieldRecords, count)
		return nil
	}
	if s.password == "" {
		s.logger.Warn("SEED_PASSWORD not set, skipping user seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	inserted := 0
	for _, su := range users {
		role := su.Role
		if role == "" {
			role = domain.RoleAttendant
		}
		if role != domain.RoleAdmin && role != domain.RoleAttendant {
			return fmt.Errorf("seed user %q: unknown role %q", su.Email, su.Role)
		}
		u := &domain.User{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(su.Name),
			Email:        strings.ToLower(strings.TrimSpace(su.Email)),
			PasswordHash: string(hash),
			Role:         role,
			Active:       true,
			CreatedAt:    s.now(),
		}
		if err := s.users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		inserted++
	}
	s.logger.Info("seeded users", log.FieldRecords, inserted)
	return nil
}
