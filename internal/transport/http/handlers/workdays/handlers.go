package workdayhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"emimet/internal/domain/auth"
	"emimet/internal/domain/workday"
	"emimet/internal/transport/http/api"
	"emimet/internal/transport/http/middleware"
	"emimet/internal/transport/http/shared"
)

type Handler struct {
	Store *workday.Store
}

func NewHandler(store *workday.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	write := middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)

	r.Get("/", h.handleList)
	r.With(write).Post("/", h.handleCreate)
	r.With(write).Delete("/{workdayID}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	var start, end *time.Time
	if raw := query.Get("startDate"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "startDate must be a valid date", requestID)
			return
		}
		start = &parsed
	}
	if raw := query.Get("endDate"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "endDate must be a valid date", requestID)
			return
		}
		end = &parsed
	}

	workdays, err := h.Store.List(r.Context(), start, end)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workday_list_failed", "failed to list workdays", requestID)
		return
	}
	if workdays == nil {
		workdays = []workday.Workday{}
	}
	api.Success(w, workdays, requestID)
}

type createWorkdayRequest struct {
	EmployeeID string          `json:"employeeId"`
	Date       string          `json:"date"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createWorkdayRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	if payload.Multiplier.IsZero() {
		payload.Multiplier = decimal.NewFromInt(1)
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee is required")
	v.AmountBetween("multiplier", payload.Multiplier, decimal.NewFromInt(1), workday.MaxMultiplier, "multiplier must be between 1 and 2")
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Store.Create(r.Context(), payload.EmployeeID, date, payload.Multiplier)
	if errors.Is(err, workday.ErrDuplicate) {
		api.Fail(w, http.StatusBadRequest, "duplicate_workday", "a workday already exists for this employee and date", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workday_create_failed", "failed to record workday", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Store.Delete(r.Context(), chi.URLParam(r, "workdayID"))
	if errors.Is(err, workday.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "workday_not_found", "workday not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workday_delete_failed", "failed to delete workday", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
