package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/mapping"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

func (f Format) Valid() bool {
	return f == CSV || f == XLSX
}

func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// File is a rendered export ready to be sent or saved.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type PeriodReader interface {
	GetByID(ctx context.Context, id string) (*domain.Period, error)
}

// CaseLister returns a period's cases with attendant and city names.
type CaseLister interface {
	ListByPeriod(ctx context.Context, periodID string) ([]domain.CaseView, error)
}

type Service struct {
	periods PeriodReader
	cases   CaseLister
	logger  *log.Logger
}

func NewService(periods PeriodReader, cases CaseLister, logger *log.Logger) *Service {
	return &Service{
		periods: periods,
		cases:   cases,
		logger:  logger.WithComponent(log.ComponentExport),
	}
}

// Export renders a period in the given format.
func (s *Service) Export(ctx context.Context, periodID string, format Format) (*File, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidInput, format)
	}

	period, records, err := s.load(ctx, periodID)
	if err != nil {
		return nil, err
	}
	grid := Grid(period, records)

	var data []byte
	switch format {
	case XLSX:
		var buf bytes.Buffer
		if err := WriteXLSX(&buf, mapping.MonthName(period.Month), grid); err != nil {
			return nil, err
		}
		data = buf.Bytes()
	default:
		data = []byte(FormatCSV(grid))
	}

	s.logger.InfoContext(ctx, "period exported",
		log.FieldPeriodID, period.ID,
		log.FieldFormat, string(format),
		log.FieldRecords, len(records))

	return &File{
		Name:        FileName(period, string(format)),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func (s *Service) Summary(ctx context.Context, periodID string) (*Summary, error) {
	period, records, err := s.load(ctx, periodID)
	if err != nil {
		return nil, err
	}
	sum := Summarize(period, records)
	return &sum, nil
}

func (s *Service) load(ctx context.Context, periodID string) (*domain.Period, []domain.CaseView, error) {
	period, err := s.periods.GetByID(ctx, periodID)
	if err != nil {
		return nil, nil, fmt.Errorf("get period: %w", err)
	}
	records, err := s.cases.ListByPeriod(ctx, period.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list cases: %w", err)
	}
	return period, records, nil
}
