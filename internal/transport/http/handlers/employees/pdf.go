package employeehandler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"emimet/internal/domain/employee"
	"emimet/internal/domain/salary"
	"emimet/internal/transport/http/api"
	"emimet/internal/transport/http/middleware"
)

// handlePDF renders the employee record sheet handed out during audits
// and site inspections: identity, assignment, the current month's
// salary figures and the advance history.
func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	emp, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_pdf_failed", "failed to load employee", requestID)
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	calc, err := h.Salary.CalculateOne(r.Context(), monthStart, monthEnd, emp.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_pdf_failed", "failed to compute salary", requestID)
		return
	}

	advances, err := h.Store.ListAdvances(r.Context(), emp.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_pdf_failed", "failed to load advances", requestID)
		return
	}

	var buf bytes.Buffer
	if err := renderEmployeePDF(&buf, emp, calc, advances, now); err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_pdf_failed", "failed to render pdf", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="employee-`+emp.EmployeeCode+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func renderEmployeePDF(buf *bytes.Buffer, emp employee.Employee, calc salary.SalaryCalculation, advances []employee.AdvanceLog, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Record")
	pdf.Ln(12)

	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(55, 8, label)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, value)
		pdf.Ln(7)
	}
	section := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, title)
		pdf.Ln(9)
	}

	field("Employee ID:", emp.EmployeeCode)
	field("Name:", emp.FullName())
	field("CIN:", emp.CIN)
	field("Date of Birth:", emp.DateOfBirth.Format("2006-01-02"))
	field("Phone:", emp.PhoneNumber)
	field("Address:", emp.Address)

	section("Assignment")
	field("Sector:", emp.SectorName)
	field("Function:", emp.FunctionName)
	field("Join Date:", emp.JoinDate.Format("2006-01-02"))
	field("Status:", emp.EmploymentStatus)

	section("Salary (" + now.Format("January 2006") + ")")
	field("Daily Salary:", calc.DailySalary.StringFixed(2)+" MAD")
	field("Worked Days:", strconv.Itoa(calc.WorkedDays))
	field("Gross Salary:", calc.GrossSalary.StringFixed(2)+" MAD")
	field("Total Advances:", calc.AdvanceAmount.StringFixed(2)+" MAD")
	field("Net Salary:", calc.NetSalary.StringFixed(2)+" MAD")

	if len(advances) > 0 {
		section("Advance History")
		pdf.SetFont("Helvetica", "", 11)
		limit := len(advances)
		if limit > 10 {
			limit = 10
		}
		for _, log := range advances[:limit] {
			line := fmt.Sprintf("%s  %s MAD", log.CreatedAt.Format("2006-01-02"), log.Amount.StringFixed(2))
			if log.Notes != "" {
				line += "  " + log.Notes
			}
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
	}

	if emp.Notes != "" {
		section("Notes")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, emp.Notes, "", "L", false)
	}

	return pdf.Output(buf)
}
