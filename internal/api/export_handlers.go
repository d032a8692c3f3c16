package api

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/export"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
)

// --- ExportPeriod ---

func (h *Handlers) ExportPeriod(w http.ResponseWriter, r *http.Request) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.CSV
	}

	file, err := h.exportSvc.Export(r.Context(), chi.URLParam(r, "id"), format)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		h.logger.WarnContext(r.Context(), "write export", log.FieldError, err)
	}
}

// --- GetPeriodSummary ---

func (h *Handlers) GetPeriodSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.exportSvc.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
