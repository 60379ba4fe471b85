package reporthandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"emimet/internal/domain/report"
	"emimet/internal/domain/salary"
	"emimet/internal/platform/metrics"
	"emimet/internal/transport/http/api"
	"emimet/internal/transport/http/middleware"
	"emimet/internal/transport/http/shared"
)

// utf8BOM is prepended to the detailed report so Excel opens the
// accented French labels correctly.
const utf8BOM = "\ufeff"

type Handler struct {
	Salary  *salary.Service
	Metrics *metrics.Collector
}

func NewHandler(salaryService *salary.Service, collector *metrics.Collector) *Handler {
	return &Handler{Salary: salaryService, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/csv", h.handleCSV)
	r.Get("/salaries", h.handleSalaries)
	r.Get("/salaries/{employeeID}", h.handleSalary)
	r.Get("/dashboard", h.handleDashboard)
}

// parseRange reads and validates the startDate/endDate query pair.
// Both are required; a bad pair ends the request with a 400.
func parseRange(w http.ResponseWriter, r *http.Request) (start, end time.Time, ok bool) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	rawStart := query.Get("startDate")
	rawEnd := query.Get("endDate")
	if rawStart == "" || rawEnd == "" {
		api.Fail(w, http.StatusBadRequest, "missing_dates", "startDate and endDate are required", requestID)
		return time.Time{}, time.Time{}, false
	}

	start, err := shared.ParseDate(rawStart)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "startDate must be a valid date", requestID)
		return time.Time{}, time.Time{}, false
	}
	end, err = shared.ParseDate(rawEnd)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "endDate must be a valid date", requestID)
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		api.Fail(w, http.StatusBadRequest, "invalid_range", "endDate must be on or after startDate", requestID)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) failCompute(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	var unavailable *salary.DataUnavailableError
	switch {
	case errors.Is(err, salary.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "invalid_range", "endDate must be on or after startDate", requestID)
	case errors.Is(err, salary.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.As(err, &unavailable):
		api.Fail(w, http.StatusServiceUnavailable, "data_unavailable", "salary data is temporarily unavailable", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", requestID)
	}
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "flat"
	}

	var body, filename string
	switch format {
	case "flat":
		calcs, err := h.Salary.CalculateAll(r.Context(), start, end)
		if err != nil {
			h.failCompute(w, r, err)
			return
		}
		body = report.FormatFlat(calcs)
		filename = "salary-report-" + start.Format(salary.DateFormat) + "-" + end.Format(salary.DateFormat) + ".csv"
	case "detailed":
		data, err := h.Salary.DetailedData(r.Context(), start, end)
		if err != nil {
			h.failCompute(w, r, err)
			return
		}
		body = utf8BOM + report.FormatMatrix(data, start, end, time.Now())
		filename = "attendance-report-" + start.Format(salary.DateFormat) + "-" + end.Format(salary.DateFormat) + ".csv"
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be flat or detailed", middleware.GetRequestID(r.Context()))
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordReport()
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(body))
}

func (h *Handler) handleSalaries(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(w, r)
	if !ok {
		return
	}

	calcs, err := h.Salary.CalculateAll(r.Context(), start, end)
	if err != nil {
		h.failCompute(w, r, err)
		return
	}
	if calcs == nil {
		calcs = []salary.SalaryCalculation{}
	}
	api.Success(w, calcs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSalary(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(w, r)
	if !ok {
		return
	}

	calc, err := h.Salary.CalculateOne(r.Context(), start, end, chi.URLParam(r, "employeeID"))
	if err != nil {
		h.failCompute(w, r, err)
		return
	}
	api.Success(w, calc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Salary.ComputeMonthlyStats(r.Context(), time.Now())
	if err != nil {
		h.failCompute(w, r, err)
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}
