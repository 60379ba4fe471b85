package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"emimet/internal/domain/auth"
	"emimet/internal/domain/employee"
	"emimet/internal/domain/salary"
	"emimet/internal/transport/http/api"
	"emimet/internal/transport/http/middleware"
	"emimet/internal/transport/http/shared"
)

type Handler struct {
	Store  *employee.Store
	Salary *salary.Service
}

func NewHandler(store *employee.Store, salaryService *salary.Service) *Handler {
	return &Handler{Store: store, Salary: salaryService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	write := middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)

	r.Get("/", h.handleList)
	r.With(write).Post("/", h.handleCreate)
	r.Route("/{employeeID}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.With(write).Put("/", h.handleUpdate)
		r.With(write).Patch("/", h.handlePatch)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/", h.handleDelete)
		r.Get("/pdf", h.handlePDF)
		r.Route("/advances", func(r chi.Router) {
			r.Get("/", h.handleListAdvances)
			r.With(write).Post("/", h.handleRecordAdvance)
		})
	})
}

type employeeRequest struct {
	CIN              string          `json:"cin"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	DateOfBirth      string          `json:"dateOfBirth"`
	PhoneNumber      string          `json:"phoneNumber"`
	Address          string          `json:"address"`
	SectorID         string          `json:"sectorId"`
	FunctionID       string          `json:"functionId"`
	DailySalary      decimal.Decimal `json:"dailySalary"`
	AdvanceAmount    decimal.Decimal `json:"advanceAmount"`
	JoinDate         string          `json:"joinDate"`
	EmploymentStatus string          `json:"employmentStatus"`
	Notes            string          `json:"notes"`
	ProfilePhoto     string          `json:"profilePhoto"`
	IDProofPhoto     string          `json:"idProofPhoto"`
}

var validStatuses = []string{employee.StatusActive, employee.StatusInactive}

// decodeEmployee validates the create/update payload and converts it to
// the domain model. The returned employee has no ID or code assigned.
func decodeEmployee(w http.ResponseWriter, r *http.Request) (employee.Employee, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return employee.Employee{}, false
	}

	v := shared.NewValidator()
	v.MinLength("cin", payload.CIN, 5, "cin must be at least 5 characters")
	v.MinLength("firstName", payload.FirstName, 2, "first name must be at least 2 characters")
	v.MinLength("lastName", payload.LastName, 2, "last name must be at least 2 characters")
	v.MinLength("phoneNumber", payload.PhoneNumber, 10, "phone number must be at least 10 characters")
	v.MinLength("address", payload.Address, 5, "address must be at least 5 characters")
	v.Required("sectorId", payload.SectorID, "sector is required")
	v.Required("functionId", payload.FunctionID, "function is required")
	v.PositiveAmount("dailySalary", payload.DailySalary, "daily salary must be positive")
	v.NonNegativeAmount("advanceAmount", payload.AdvanceAmount, "advance amount cannot be negative")
	v.Enum("employmentStatus", payload.EmploymentStatus, validStatuses, "employment status must be ACTIVE or INACTIVE")

	dateOfBirth, _ := v.Date("dateOfBirth", payload.DateOfBirth)
	joinDate, _ := v.Date("joinDate", payload.JoinDate)
	if v.Reject(w, requestID) {
		return employee.Employee{}, false
	}

	status := strings.ToUpper(strings.TrimSpace(payload.EmploymentStatus))
	if status == "" {
		status = employee.StatusActive
	}

	return employee.Employee{
		CIN:              strings.TrimSpace(payload.CIN),
		FirstName:        strings.TrimSpace(payload.FirstName),
		LastName:         strings.TrimSpace(payload.LastName),
		DateOfBirth:      dateOfBirth,
		PhoneNumber:      strings.TrimSpace(payload.PhoneNumber),
		Address:          strings.TrimSpace(payload.Address),
		SectorID:         payload.SectorID,
		FunctionID:       payload.FunctionID,
		DailySalary:      payload.DailySalary,
		AdvanceAmount:    payload.AdvanceAmount,
		JoinDate:         joinDate,
		EmploymentStatus: status,
		Notes:            payload.Notes,
		ProfilePhoto:     payload.ProfilePhoto,
		IDProofPhoto:     payload.IDProofPhoto,
	}, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePage(r)
	query := r.URL.Query()

	filter := employee.ListFilter{
		Search:     query.Get("search"),
		SectorID:   query.Get("sectorId"),
		FunctionID: query.Get("functionId"),
		Status:     strings.ToUpper(strings.TrimSpace(query.Get("status"))),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}

	employees, total, err := h.Store.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	if employees == nil {
		employees = []employee.Employee{}
	}

	api.Success(w, map[string]any{
		"items":      employees,
		"total":      total,
		"page":       page.Number,
		"totalPages": shared.PageCount(total),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	emp, ok := decodeEmployee(w, r)
	if !ok {
		return
	}
	emp.EmployeeCode = employee.NewEmployeeCode()

	created, err := h.Store.Create(r.Context(), emp)
	if errors.Is(err, employee.ErrDuplicateCIN) {
		api.Fail(w, http.StatusBadRequest, "duplicate_cin", "an employee with this CIN already exists", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	emp, ok := decodeEmployee(w, r)
	if !ok {
		return
	}

	updated, err := h.Store.Update(r.Context(), chi.URLParam(r, "employeeID"), emp)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, employee.ErrDuplicateCIN) {
		api.Fail(w, http.StatusBadRequest, "duplicate_cin", "an employee with this CIN already exists", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

type patchRequest struct {
	DailySalary      *decimal.Decimal `json:"dailySalary"`
	AdvanceAmount    *decimal.Decimal `json:"advanceAmount"`
	EmploymentStatus *string          `json:"employmentStatus"`
	Notes            *string          `json:"notes"`
}

func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload patchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	if payload.DailySalary != nil {
		v.PositiveAmount("dailySalary", *payload.DailySalary, "daily salary must be positive")
	}
	if payload.AdvanceAmount != nil {
		v.NonNegativeAmount("advanceAmount", *payload.AdvanceAmount, "advance amount cannot be negative")
	}
	if payload.EmploymentStatus != nil {
		v.Enum("employmentStatus", *payload.EmploymentStatus, validStatuses, "employment status must be ACTIVE or INACTIVE")
	}
	if v.Reject(w, requestID) {
		return
	}

	patch := employee.PartialUpdate{
		DailySalary:   payload.DailySalary,
		AdvanceAmount: payload.AdvanceAmount,
		Notes:         payload.Notes,
	}
	if payload.EmploymentStatus != nil {
		status := strings.ToUpper(strings.TrimSpace(*payload.EmploymentStatus))
		patch.EmploymentStatus = &status
	}

	updated, err := h.Store.UpdatePartial(r.Context(), chi.URLParam(r, "employeeID"), patch)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Store.SoftDelete(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAdvances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	if _, err := h.Store.Get(r.Context(), employeeID); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "advance_list_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	logs, err := h.Store.ListAdvances(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "advance_list_failed", "failed to list advances", middleware.GetRequestID(r.Context()))
		return
	}
	if logs == nil {
		logs = []employee.AdvanceLog{}
	}
	api.Success(w, logs, middleware.GetRequestID(r.Context()))
}

type advanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

func (h *Handler) handleRecordAdvance(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.PositiveAmount("amount", payload.Amount, "amount must be positive")
	if v.Reject(w, requestID) {
		return
	}

	createdBy := ""
	if identity, ok := middleware.GetUser(r.Context()); ok {
		createdBy = identity.Name
	}

	log, err := h.Store.RecordAdvance(r.Context(), chi.URLParam(r, "employeeID"), payload.Amount, payload.Notes, createdBy)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "advance_record_failed", "failed to record advance", requestID)
		return
	}
	api.Created(w, log, requestID)
}
