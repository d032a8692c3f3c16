package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
)

// --- PreviewImport ---

func (h *Handlers) PreviewImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	year := h.now().Year()
	if raw := strings.TrimSpace(r.FormValue("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 || y > 2100 {
			writeError(w, http.StatusBadRequest, "year must be between 2000 and 2100")
			return
		}
		year = y
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read file: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.ingestionSvc.Preview(data, year))
}

// --- CommitImport ---

type commitImportRequest struct {
	PeriodID string             `json:"periodId" validate:"required"`
	Rows     []domain.ImportRow `json:"rows" validate:"required,min=1"`
}

func (h *Handlers) CommitImport(w http.ResponseWriter, r *http.Request) {
	importerID := strings.TrimSpace(r.Header.Get(UserHeader))
	if importerID == "" {
		writeError(w, http.StatusUnauthorized, "missing "+UserHeader+" header")
		return
	}

	var req commitImportRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	result, err := h.ingestionSvc.Commit(r.Context(), req.PeriodID, importerID, req.Rows)
	if errors.Is(err, domain.ErrNoValidRows) && result != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":      "Nenhuma linha válida para importar",
			"importados": result.Imported,
			"total":      result.Total,
			"erros":      result.Warnings,
		})
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
