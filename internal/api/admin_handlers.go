package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/ingestion"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/mapping"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/money"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/repository"
)

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

func listAll(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	return v
}

// --- Periods ---

type createPeriodRequest struct {
	Year                int    `json:"year" validate:"gte=2000,lte=2100"`
	Month               int    `json:"month" validate:"min=1,max=12"`
	TargetCancellations int    `json:"target_cancellations" validate:"gte=0"`
	Budget              string `json:"budget"`
	TotalActiveBase     int    `json:"total_active_base" validate:"gte=0"`
	BusinessDays        int    `json:"business_days" validate:"gte=0,lte=31"`
	WorkedDays          int    `json:"worked_days" validate:"gte=0,ltefield=BusinessDays"`
	DailyManualTarget   int    `json:"daily_manual_target" validate:"gte=0"`
}

// updatePeriodRequest changes the targets of an existing period. Fields
// left out keep their value; null or "" resets them to zero.
type updatePeriodRequest struct {
	TargetCancellations optionalInt   `json:"target_cancellations"`
	Budget              optionalCents `json:"budget"`
	TotalActiveBase     optionalInt   `json:"total_active_base"`
	BusinessDays        optionalInt   `json:"business_days"`
	WorkedDays          optionalInt   `json:"worked_days"`
	DailyManualTarget   optionalInt   `json:"daily_manual_target"`
}

func (h *Handlers) ListPeriods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.PeriodFilter{
		Year:  parseIntDefault(q.Get("year"), 0),
		Month: parseIntDefault(q.Get("month"), 0),
	}

	periods, err := h.periods.List(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"periods": periods, "total": len(periods)})
}

func (h *Handlers) GetPeriod(w http.ResponseWriter, r *http.Request) {
	p, err := h.periods.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req createPeriodRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var budget int64
	if strings.TrimSpace(req.Budget) != "" {
		cents, err := money.ParseReaisToCents(req.Budget)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		budget = cents
	}

	p := &domain.Period{
		ID:                  uuid.NewString(),
		Year:                req.Year,
		Month:               req.Month,
		TargetCancellations: req.TargetCancellations,
		BudgetCents:         budget,
		TotalActiveBase:     req.TotalActiveBase,
		BusinessDays:        req.BusinessDays,
		WorkedDays:          req.WorkedDays,
		DailyManualTarget:   req.DailyManualTarget,
		CreatedAt:           h.now(),
	}
	if err := h.periods.Create(r.Context(), p); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.periods.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var req updatePeriodRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	req.TargetCancellations.apply(&p.TargetCancellations)
	req.Budget.apply(&p.BudgetCents)
	req.TotalActiveBase.apply(&p.TotalActiveBase)
	req.BusinessDays.apply(&p.BusinessDays)
	req.WorkedDays.apply(&p.WorkedDays)
	req.DailyManualTarget.apply(&p.DailyManualTarget)

	if err := p.Validate(); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if err := h.periods.Update(ctx, p); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "period updated", log.FieldPeriodID, p.ID)
	writeJSON(w, http.StatusOK, p)
}

// --- Cities ---

type createCityRequest struct {
	Name string `json:"name" validate:"required,max=80"`
	Code string `json:"code" validate:"max=40"`
}

func (h *Handlers) ListCities(w http.ResponseWriter, r *http.Request) {
	var (
		cities []domain.City
		err    error
	)
	if listAll(r) {
		cities, err = h.cities.List(r.Context())
	} else {
		cities, err = h.cities.ListActive(r.Context())
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

func (h *Handlers) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req createCityRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	code := req.Code
	if strings.TrimSpace(code) == "" {
		code = req.Name
	}
	city := &domain.City{ID: mapping.CityCode(code), Name: strings.TrimSpace(req.Name), Active: true}
	if city.ID == "" {
		writeError(w, http.StatusBadRequest, "city code must contain letters or digits")
		return
	}

	if err := h.cities.Create(r.Context(), city); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, city)
}

func (h *Handlers) SetCityActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.cities.SetActive(r.Context(), id, *req.Active); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "active": *req.Active})
}

// --- Users ---

type createUserRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// updateUserRequest toggles the account or sets a new password.
type updateUserRequest struct {
	Active   *bool  `json:"active"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		users []domain.User
		err   error
	)
	if listAll(r) {
		users, err = h.users.List(r.Context())
	} else {
		users, err = h.users.ListActive(r.Context())
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.writeServiceError(w, r, fmt.Errorf("hash password: %w", err))
		return
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         domain.RoleAttendant,
		Active:       true,
		CreatedAt:    h.now(),
	}
	if err := h.users.Create(r.Context(), u); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handlers) SetUserActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.users.SetActive(r.Context(), id, *req.Active); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "active": *req.Active})
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if req.Active != nil && !*req.Active && strings.TrimSpace(r.Header.Get(UserHeader)) == id {
		writeError(w, http.StatusBadRequest, "you cannot deactivate your own account")
		return
	}
	if _, err := h.users.GetByID(ctx, id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if req.Active != nil {
		if err := h.users.SetActive(ctx, id, *req.Active); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.writeServiceError(w, r, fmt.Errorf("hash password: %w", err))
			return
		}
		if err := h.users.SetPasswordHash(ctx, id, string(hash)); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
	}

	u, err := h.users.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// --- Cases ---

type createCaseRequest struct {
	PeriodID     string `json:"period_id" validate:"required"`
	AttendantID  string `json:"attendant_id"`
	RegisteredAt string `json:"registered_at" validate:"required"`
	Status       string `json:"status" validate:"required"`
	ClientName   string `json:"client_name" validate:"required,max=200"`
	Neighborhood string `json:"neighborhood"`
	Contact      string `json:"contact"`
	CityID       string `json:"city_id" validate:"required"`
	Region       string `json:"region" validate:"required"`
	Motive       string `json:"motive"`
	Notes        string `json:"notes"`
	PickupText   string `json:"pickup_text"`
	PickupDate   string `json:"pickup_date"`
}

func (h *Handlers) ListPeriodCases(w http.ResponseWriter, r *http.Request) {
	period, err := h.periods.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	q := r.URL.Query()
	cases, err := h.cases.ListViews(r.Context(), repository.CaseFilter{
		PeriodID: period.ID,
		Status:   domain.Status(strings.ToUpper(q.Get("status"))),
		CityID:   q.Get("city"),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cases": cases, "total": len(cases)})
}

func (h *Handlers) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	ctx := r.Context()

	period, err := h.periods.GetByID(ctx, req.PeriodID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	attendantID := req.AttendantID
	if attendantID == "" {
		attendantID = strings.TrimSpace(r.Header.Get(UserHeader))
	}
	if attendantID == "" {
		writeError(w, http.StatusBadRequest, "attendant_id or "+UserHeader+" is required")
		return
	}
	attendant, err := h.users.GetByID(ctx, attendantID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !attendant.Active {
		writeError(w, http.StatusBadRequest, "attendant is not active")
		return
	}

	city, ok := h.activeCity(w, r, req.CityID)
	if !ok {
		return
	}

	registeredAt, ok := parseDay(req.RegisteredAt, period.Year)
	if !ok {
		writeError(w, http.StatusBadRequest, "registered_at must be YYYY-MM-DD or dd/mm/yyyy")
		return
	}

	c := &domain.RetentionCase{
		ID:           uuid.NewString(),
		PeriodID:     period.ID,
		AttendantID:  attendant.ID,
		RegisteredAt: registeredAt,
		Status:       domain.Status(strings.ToUpper(req.Status)),
		ClientName:   strings.TrimSpace(req.ClientName),
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		Contact:      strings.TrimSpace(req.Contact),
		CityID:       city.ID,
		Region:       domain.Region(strings.ToUpper(req.Region)),
		Motive:       domain.Motive(strings.ToUpper(req.Motive)),
		Notes:        strings.TrimSpace(req.Notes),
		PickupText:   strings.TrimSpace(req.PickupText),
		CreatedAt:    h.now(),
	}
	if req.PickupDate != "" {
		d, ok := parseDay(req.PickupDate, period.Year)
		if !ok {
			writeError(w, http.StatusBadRequest, "pickup_date must be YYYY-MM-DD or dd/mm/yyyy")
			return
		}
		c.PickupDate = &d
	}
	if err := c.Validate(); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if err := h.cases.Create(ctx, c); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// updateCaseRequest replaces the editable fields of a case. Period,
// attendant and registration date cannot change.
type updateCaseRequest struct {
	Status       string `json:"status" validate:"required"`
	ClientName   string `json:"client_name" validate:"required,max=200"`
	Neighborhood string `json:"neighborhood"`
	Contact      string `json:"contact"`
	CityID       string `json:"city_id" validate:"required"`
	Region       string `json:"region" validate:"required"`
	Motive       string `json:"motive"`
	Notes        string `json:"notes"`
	PickupText   string `json:"pickup_text"`
	PickupDate   string `json:"pickup_date"`
}

// UpdateCase lets admins edit any case and attendants only their own.
func (h *Handlers) UpdateCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := strings.TrimSpace(r.Header.Get(UserHeader))
	if userID == "" {
		writeError(w, http.StatusUnauthorized, UserHeader+" is required")
		return
	}
	user, err := h.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !user.Active) {
		writeError(w, http.StatusUnauthorized, "user is not an active user")
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	existing, err := h.cases.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if user.Role != domain.RoleAdmin && existing.AttendantID != user.ID {
		writeError(w, http.StatusForbidden, "only admins can edit another attendant's case")
		return
	}

	var req updateCaseRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	city, ok := h.activeCity(w, r, req.CityID)
	if !ok {
		return
	}

	c := existing.RetentionCase
	c.Status = domain.Status(strings.ToUpper(req.Status))
	c.ClientName = strings.TrimSpace(req.ClientName)
	c.Neighborhood = strings.TrimSpace(req.Neighborhood)
	c.Contact = strings.TrimSpace(req.Contact)
	c.CityID = city.ID
	c.Region = domain.Region(strings.ToUpper(req.Region))
	c.Motive = domain.Motive(strings.ToUpper(req.Motive))
	c.Notes = strings.TrimSpace(req.Notes)
	c.PickupText = strings.TrimSpace(req.PickupText)
	c.PickupDate = nil
	if strings.TrimSpace(req.PickupDate) != "" {
		d, ok := parseDay(req.PickupDate, c.RegisteredAt.Year())
		if !ok {
			writeError(w, http.StatusBadRequest, "pickup_date must be YYYY-MM-DD or dd/mm/yyyy")
			return
		}
		c.PickupDate = &d
	}
	if err := c.Validate(); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if err := h.cases.Update(ctx, &c); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) DeleteCase(w http.ResponseWriter, r *http.Request) {
	if err := h.cases.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// activeCity resolves a case's city. Unknown and inactive cities are the
// caller's mistake; store failures are not.
func (h *Handlers) activeCity(w http.ResponseWriter, r *http.Request, id string) (*domain.City, bool) {
	city, err := h.cities.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound) || (err == nil && !city.Active):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("city %q is not an active city", id))
		return nil, false
	case err != nil:
		h.writeServiceError(w, r, err)
		return nil, false
	}
	return city, true
}

// parseDay accepts ISO dates and the spreadsheet's dd/mm[/yyyy] form.
func parseDay(s string, baseYear int) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err == nil {
		return t, true
	}
	return ingestion.ParseDate(s, baseYear)
}
