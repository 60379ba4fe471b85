package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the read model the salary pipeline consumes; the write
// side lives in the employee domain. AdvanceAmount is the lifetime
// running total snapshotted at read time, never recomputed here.
type Employee struct {
	ID            string
	FirstName     string
	LastName      string
	DailySalary   decimal.Decimal
	AdvanceAmount decimal.Decimal
	Status        string
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Workday carries the employee's daily rate alongside the attendance
// fact so gross pay computes without a second lookup.
type Workday struct {
	EmployeeID  string
	Date        time.Time
	Multiplier  decimal.Decimal
	DailySalary decimal.Decimal
}

// EmployeeAttendance pairs an employee with their in-range workdays,
// ascending by date. Zero workdays is a valid state; roster reports
// still list the employee.
type EmployeeAttendance struct {
	Employee Employee
	Workdays []Workday
}

type SalaryCalculation struct {
	EmployeeID    string          `json:"employeeId"`
	EmployeeName  string          `json:"employeeName"`
	WorkedDays    int             `json:"workedDays"`
	WorkedDates   []string        `json:"workedDates"`
	DailySalary   decimal.Decimal `json:"dailySalary"`
	GrossSalary   decimal.Decimal `json:"grossSalary"`
	AdvanceAmount decimal.Decimal `json:"advanceAmount"`
	NetSalary     decimal.Decimal `json:"netSalary"`
}

// DetailedSalaryData feeds the attendance-matrix report: a sparse map
// from ISO date to the multiplier worked that day. Built per request,
// discarded after serialization.
type DetailedSalaryData struct {
	EmployeeID   string
	EmployeeName string
	DailySalary  decimal.Decimal
	Days         map[string]decimal.Decimal
	WorkedDays   int
	GrossSalary  decimal.Decimal
}

type MonthlyStats struct {
	ActiveEmployees int             `json:"activeEmployees"`
	TotalSalary     decimal.Decimal `json:"totalSalary"`
	TotalAdvances   decimal.Decimal `json:"totalAdvances"`
}

// DateFormat is the wire format for worked dates and matrix map keys.
const DateFormat = "2006-01-02"
