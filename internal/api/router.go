package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/export"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/ingestion"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/repository"
)

// Options carries the HTTP settings that come from configuration.
type Options struct {
	AllowedOrigins []string
	MaxUploadBytes int64
	Logger         *log.Logger
}

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(
	users *repository.UserRepo,
	cities *repository.CityRepo,
	periods *repository.PeriodRepo,
	cases *repository.CaseRepo,
	ingestionSvc *ingestion.Service,
	exportSvc *export.Service,
	opts Options,
) http.Handler {
	h := NewHandlers(users, cities, periods, cases, ingestionSvc, exportSvc, opts)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		// Import.
		r.Post("/import/preview", h.PreviewImport)
		r.Post("/import", h.CommitImport)

		// Periods and export.
		r.Get("/periods", h.ListPeriods)
		r.Post("/periods", h.CreatePeriod)
		r.Get("/periods/{id}", h.GetPeriod)
		r.Patch("/periods/{id}", h.UpdatePeriod)
		r.Get("/periods/{id}/summary", h.GetPeriodSummary)
		r.Get("/periods/{id}/export", h.ExportPeriod)
		r.Get("/periods/{id}/cases", h.ListPeriodCases)

		// Cases.
		r.Post("/cases", h.CreateCase)
		r.Patch("/cases/{id}", h.UpdateCase)
		r.Delete("/cases/{id}", h.DeleteCase)

		// Cities.
		r.Get("/cities", h.ListCities)
		r.Post("/cities", h.CreateCity)
		r.Patch("/cities/{id}/active", h.SetCityActive)

		// Users.
		r.Get("/users", h.ListUsers)
		r.Post("/users", h.CreateUser)
		r.Patch("/users/{id}", h.UpdateUser)
		r.Patch("/users/{id}/active", h.SetUserActive)
	})

	return r
}
