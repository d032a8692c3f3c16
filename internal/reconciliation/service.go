package reconciliation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
)

// CommitResult summarises one import commit. Warnings lists every row that
// was dropped and every substitution made on a row that was kept.
type CommitResult struct {
	Imported int      `json:"importados"`
	Total    int      `json:"total"`
	Warnings []string `json:"erros"`
}

type PeriodReader interface {
	GetByID(ctx context.Context, id string) (*domain.Period, error)
}

type UserLister interface {
	ListActive(ctx context.Context) ([]domain.User, error)
}

type CityLister interface {
	ListActive(ctx context.Context) ([]domain.City, error)
}

// CaseWriter inserts a batch of cases all-or-nothing.
type CaseWriter interface {
	InsertMany(ctx context.Context, periodID string, cases []domain.RetentionCase) (int, error)
}

// Service reconciles reviewed import rows against the current users and
// cities and stores the survivors as one batch.
type Service struct {
	periods PeriodReader
	users   UserLister
	cities  CityLister
	cases   CaseWriter
	logger  *log.Logger
	now     func() time.Time
	newID   func() string
}

func NewService(
	periods PeriodReader,
	users UserLister,
	cities CityLister,
	cases CaseWriter,
	logger *log.Logger,
) *Service {
	return &Service{
		periods: periods,
		users:   users,
		cities:  cities,
		cases:   cases,
		logger:  logger.WithComponent(log.ComponentReconciliation),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Commit re-validates rows and inserts the valid ones into the period.
// Rows are re-checked even though the preview already did it, since the
// preview may be stale. When nothing survives, the result (with its
// warnings) is returned together with domain.ErrNoValidRows.
func (s *Service) Commit(ctx context.Context, periodID, importerID string, rows []domain.ImportRow) (*CommitResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows submitted", domain.ErrInvalidInput)
	}

	period, err := s.periods.GetByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("get period: %w", err)
	}

	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	attendants := newAttendantIndex(users)
	if !attendants.isActive(importerID) {
		return nil, domain.ErrUnknownImporter
	}

	cities, err := s.cities.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	activeCities := make(map[string]bool, len(cities))
	for _, c := range cities {
		activeCities[c.ID] = true
	}

	result := &CommitResult{Total: len(rows), Warnings: []string{}}
	warn := func(num int, format string, args ...any) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Linha %d: ", num)+fmt.Sprintf(format, args...))
	}

	createdAt := s.now()
	cases := make([]domain.RetentionCase, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		num := i + 1

		attendantID, found := attendants.resolve(row.AttendantName)
		if !found {
			attendantID = importerID
			if !isSilentFallback(row.AttendantName) {
				warn(num, "atendente %q não encontrado, atribuído a você.", row.AttendantName)
			}
		}

		if reason := rejectReason(row, activeCities); reason != "" {
			warn(num, "%s, pulando.", reason)
			continue
		}

		registeredAt := row.RegisteredAt
		if registeredAt.IsZero() {
			warn(num, "data de registro ausente, usando hoje.")
			registeredAt = createdAt
		}

		cases = append(cases, domain.RetentionCase{
			ID:           s.newID(),
			PeriodID:     period.ID,
			AttendantID:  attendantID,
			RegisteredAt: registeredAt.UTC(),
			Status:       row.Status,
			ClientName:   strings.TrimSpace(row.ClientName),
			Neighborhood: strings.TrimSpace(row.Neighborhood),
			Contact:      strings.TrimSpace(row.Contact),
			CityID:       row.City,
			Region:       row.Region,
			Motive:       row.Motive,
			Notes:        strings.TrimSpace(row.Notes),
			PickupText:   strings.TrimSpace(row.PickupText),
			PickupDate:   row.PickupDate,
			CreatedAt:    createdAt,
		})
	}

	if len(cases) == 0 {
		s.logger.WarnContext(ctx, "nothing to import",
			log.FieldPeriodID, period.ID, log.FieldRows, len(rows), log.FieldWarnings, len(result.Warnings))
		return result, domain.ErrNoValidRows
	}

	inserted, err := s.cases.InsertMany(ctx, period.ID, cases)
	if err != nil {
		return nil, fmt.Errorf("insert cases: %w", err)
	}
	result.Imported = inserted

	s.logger.InfoContext(ctx, "import committed",
		log.FieldPeriodID, period.ID,
		log.FieldImported, inserted,
		log.FieldRows, len(rows),
		log.FieldWarnings, len(result.Warnings))

	return result, nil
}

// rejectReason returns why a row cannot be stored, or "" when it can.
func rejectReason(row *domain.ImportRow, activeCities map[string]bool) string {
	switch {
	case row.Error != "":
		return fmt.Sprintf("linha com erro (%s)", row.Error)
	case strings.TrimSpace(row.ClientName) == "":
		return "nome do cliente vazio"
	case !row.Status.Valid():
		return fmt.Sprintf("status inválido %q", row.Status)
	case !row.Region.Valid():
		return fmt.Sprintf("região inválida %q", row.Region)
	case !activeCities[row.City]:
		return fmt.Sprintf("cidade %q não cadastrada", row.City)
	case row.Motive != "" && !row.Motive.Valid():
		return fmt.Sprintf("motivo inválido %q", row.Motive)
	case row.Status == domain.StatusCancelado && row.Motive == "":
		return "motivo obrigatório para CANCELADO"
	}
	return ""
}
