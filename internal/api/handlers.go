package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/export"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/ingestion"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/repository"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/validation"
)

const (
	defaultMaxUpload = 10 << 20
	maxJSONBody      = 5 << 20

	// UserHeader names the authenticated user. Sessions are handled in front
	// of this service.
	UserHeader = "X-User-ID"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	users        *repository.UserRepo
	cities       *repository.CityRepo
	periods      *repository.PeriodRepo
	cases        *repository.CaseRepo
	ingestionSvc *ingestion.Service
	exportSvc    *export.Service
	validate     *validation.Validator
	logger       *log.Logger
	maxUpload    int64
	now          func() time.Time
}

func NewHandlers(
	users *repository.UserRepo,
	cities *repository.CityRepo,
	periods *repository.PeriodRepo,
	cases *repository.CaseRepo,
	ingestionSvc *ingestion.Service,
	exportSvc *export.Service,
	opts Options,
) *Handlers {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &Handlers{
		users:        users,
		cities:       cities,
		periods:      periods,
		cases:        cases,
		ingestionSvc: ingestionSvc,
		exportSvc:    exportSvc,
		validate:     validation.New(),
		logger:       logger.WithComponent(log.ComponentHTTP),
		maxUpload:    maxUpload,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", log.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors to a status code. Anything unknown
// is logged and reported as 500.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": fieldErr.Fields})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNoValidRows):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownImporter):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads a JSON body into dst and runs its validate tags.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", domain.ErrInvalidInput)
		}
		return fmt.Errorf("%w: malformed JSON: %v", domain.ErrInvalidInput, err)
	}
	return h.validate.Validate(dst)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// --- Health ---

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
