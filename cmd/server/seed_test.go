package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/mapping"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/repository"
)

func newTestSeeder(t *testing.T, password string) *seeder {
	t.Helper()
	db, err := repository.InitDB(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &seeder{
		users:    repository.NewUserRepo(db),
		cities:   repository.NewCityRepo(db),
		periods:  repository.NewPeriodRepo(db),
		password: password,
		logger:   log.Discard(),
		now:      func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSeeder_Run(t *testing.T) {
	s := newTestSeeder(t, "segredo123")
	ctx := context.Background()

	require.NoError(t, s.Run(ctx, filepath.Join("..", "..", "testdata", "seed.json")))

	cities, err := s.cities.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cities, len(mapping.CityCodes()))

	periods, err := s.periods.List(ctx, repository.PeriodFilter{})
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, 2024, periods[0].Year)
	assert.Equal(t, 5, periods[0].Month)
	assert.Equal(t, 220, periods[0].TargetCancellations)
	assert.Equal(t, int64(200000), periods[0].BudgetCents)
	assert.Equal(t, 19554, periods[0].TotalActiveBase)

	users, err := s.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	roles := map[domain.Role]int{}
	for _, u := range users {
		roles[u.Role]++
		assert.True(t, u.Active)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segredo123")))
	}
	assert.Equal(t, 1, roles[domain.RoleAdmin])
	assert.Equal(t, 1, roles[domain.RoleAttendant])
}

func TestSeeder_SkipsPopulatedTables(t *testing.T) {
	s := newTestSeeder(t, "segredo123")
	ctx := context.Background()
	path := writeSeed(t, `{"cities":["Canoas","Novo Hamburgo"],"period":{"target_cancellations":10},"users":[{"name":"Ana","email":"ana@fenix.net"}]}`)

	require.NoError(t, s.Run(ctx, path))
	require.NoError(t, s.Run(ctx, path))

	cities, err := s.cities.List(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Canoas", cities[0].Name)
	assert.Equal(t, "NOVO_HAMBURGO", cities[1].ID)

	n, err := s.periods.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	users, err := s.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleAttendant, users[0].Role)
}

func TestSeeder_NoPasswordSkipsUsers(t *testing.T) {
	s := newTestSeeder(t, "")
	ctx := context.Background()
	path := writeSeed(t, `{"users":[{"name":"Ana","email":"ana@fenix.net","role":"ADMIN"}]}`)

	require.NoError(t, s.Run(ctx, path))

	n, err := s.users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeeder_Errors(t *testing.T) {
	ctx := context.Background()

	s := newTestSeeder(t, "segredo123")
	assert.Error(t, s.Run(ctx, filepath.Join(t.TempDir(), "missing.json")))

	s = newTestSeeder(t, "segredo123")
	assert.Error(t, s.Run(ctx, writeSeed(t, `{not json`)))

	s = newTestSeeder(t, "segredo123")
	assert.Error(t, s.Run(ctx, writeSeed(t, `{"period":{"budget":"abc"}}`)))

	s = newTestSeeder(t, "segredo123")
	assert.Error(t, s.Run(ctx, writeSeed(t, `{"users":[{"name":"X","email":"x@fenix.net","role":"ROOT"}]}`)))
}
