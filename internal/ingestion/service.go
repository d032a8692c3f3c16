package ingestion

import (
	"context"
	"fmt"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/reconciliation"
)

// PreviewResult is what the reviewer sees before committing an upload.
type PreviewResult struct {
	Encoding string             `json:"encoding"`
	Total    int                `json:"total"`
	Valid    int                `json:"valid"`
	Invalid  int                `json:"invalid"`
	Rows     []domain.ImportRow `json:"rows"`
}

// Committer stores reviewed rows. Implemented by reconciliation.Service.
type Committer interface {
	Commit(ctx context.Context, periodID, importerID string, rows []domain.ImportRow) (*reconciliation.CommitResult, error)
}

// Service handles manager spreadsheet uploads: decoding, parsing into
// reviewable rows and, on request, committing them.
type Service struct {
	committer Committer
	logger    *log.Logger
}

func NewService(committer Committer, logger *log.Logger) *Service {
	return &Service{
		committer: committer,
		logger:    logger.WithComponent(log.ComponentIngestion),
	}
}

// Preview decodes an uploaded file and parses it. Short dates take baseYear.
func (s *Service) Preview(data []byte, baseYear int) *PreviewResult {
	text, encoding := DecodeText(data)
	rows := BuildPreview(text, baseYear)

	res := &PreviewResult{Encoding: encoding, Total: len(rows), Rows: rows}
	for i := range rows {
		if rows[i].Valid() {
			res.Valid++
		}
	}
	res.Invalid = res.Total - res.Valid

	s.logger.Info("preview built",
		log.FieldEncoding, encoding,
		log.FieldYear, baseYear,
		log.FieldRows, res.Total,
		log.FieldValid, res.Valid,
		log.FieldInvalid, res.Invalid)
	return res
}

// Commit forwards reviewed rows to the committer unchanged.
func (s *Service) Commit(ctx context.Context, periodID, importerID string, rows []domain.ImportRow) (*reconciliation.CommitResult, error) {
	return s.committer.Commit(ctx, periodID, importerID, rows)
}

// Import previews a file and commits only the rows that came out valid.
// The preview is returned too so callers can report the rejected rows.
func (s *Service) Import(ctx context.Context, data []byte, baseYear int, periodID, importerID string) (*PreviewResult, *reconciliation.CommitResult, error) {
	preview := s.Preview(data, baseYear)

	valid := make([]domain.ImportRow, 0, preview.Valid)
	for _, r := range preview.Rows {
		if r.Valid() {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return preview, nil, domain.ErrNoValidRows
	}

	res, err := s.committer.Commit(ctx, periodID, importerID, valid)
	if err != nil {
		return preview, res, fmt.Errorf("commit: %w", err)
	}
	return preview, res, nil
}
