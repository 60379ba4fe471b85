package salary

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Service is the attendance aggregator plus the salary reducer over it.
// It is stateless; every call reads the store fresh.
type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Aggregate collects every non-deleted employee with their workdays in
// [start, end] inclusive. Employees who did not work still appear, with
// an empty workday slice.
func (s *Service) Aggregate(ctx context.Context, start, end time.Time) ([]EmployeeAttendance, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	employees, err := s.Store.FindEmployees(ctx)
	if err != nil {
		return nil, &DataUnavailableError{Err: err}
	}
	workdays, err := s.Store.FindWorkdays(ctx, start, end, "")
	if err != nil {
		return nil, &DataUnavailableError{Err: err}
	}

	byEmployee := make(map[string][]Workday, len(employees))
	for _, wd := range workdays {
		byEmployee[wd.EmployeeID] = append(byEmployee[wd.EmployeeID], wd)
	}

	atts := make([]EmployeeAttendance, 0, len(employees))
	for _, emp := range employees {
		atts = append(atts, EmployeeAttendance{Employee: emp, Workdays: byEmployee[emp.ID]})
	}
	return atts, nil
}

// AggregateOne is the single-employee variant; ErrEmployeeNotFound when
// no matching non-deleted employee exists.
func (s *Service) AggregateOne(ctx context.Context, start, end time.Time, employeeID string) (EmployeeAttendance, error) {
	if err := validateRange(start, end); err != nil {
		return EmployeeAttendance{}, err
	}

	emp, err := s.Store.FindEmployee(ctx, employeeID)
	if errors.Is(err, ErrEmployeeNotFound) {
		return EmployeeAttendance{}, ErrEmployeeNotFound
	}
	if err != nil {
		return EmployeeAttendance{}, &DataUnavailableError{Err: err}
	}

	workdays, err := s.Store.FindWorkdays(ctx, start, end, employeeID)
	if err != nil {
		return EmployeeAttendance{}, &DataUnavailableError{Err: err}
	}
	return EmployeeAttendance{Employee: emp, Workdays: workdays}, nil
}

// CalculateOne returns the computed salary fields for one employee.
func (s *Service) CalculateOne(ctx context.Context, start, end time.Time, employeeID string) (SalaryCalculation, error) {
	att, err := s.AggregateOne(ctx, start, end, employeeID)
	if err != nil {
		return SalaryCalculation{}, err
	}
	return ComputeOne(att), nil
}

// CalculateAll returns the roster-wide calculations in aggregator order.
func (s *Service) CalculateAll(ctx context.Context, start, end time.Time) ([]SalaryCalculation, error) {
	atts, err := s.Aggregate(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return ComputeRoster(atts), nil
}

// DetailedData returns the per-day matrix rows for the detailed report.
func (s *Service) DetailedData(ctx context.Context, start, end time.Time) ([]DetailedSalaryData, error) {
	atts, err := s.Aggregate(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return BuildDetailed(atts), nil
}

// ComputeMonthlyStats derives the dashboard figures for the calendar
// month containing referenceDate. Total salary counts pay for work
// performed in the month regardless of employment status; advances are
// the lifetime totals of all non-deleted employees. The three reads are
// independent; slight skew under concurrent writes is accepted.
func (s *Service) ComputeMonthlyStats(ctx context.Context, referenceDate time.Time) (MonthlyStats, error) {
	monthStart := time.Date(referenceDate.Year(), referenceDate.Month(), 1, 0, 0, 0, 0, referenceDate.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	active, err := s.Store.CountActiveEmployees(ctx)
	if err != nil {
		return MonthlyStats{}, &DataUnavailableError{Err: err}
	}

	workdays, err := s.Store.FindWorkdays(ctx, monthStart, monthEnd, "")
	if err != nil {
		return MonthlyStats{}, &DataUnavailableError{Err: err}
	}
	totalSalary := decimal.Zero
	for _, wd := range workdays {
		totalSalary = totalSalary.Add(wd.DailySalary.Mul(wd.Multiplier))
	}

	employees, err := s.Store.FindEmployees(ctx)
	if err != nil {
		return MonthlyStats{}, &DataUnavailableError{Err: err}
	}
	totalAdvances := decimal.Zero
	for _, emp := range employees {
		totalAdvances = totalAdvances.Add(emp.AdvanceAmount)
	}

	return MonthlyStats{
		ActiveEmployees: active,
		TotalSalary:     totalSalary,
		TotalAdvances:   totalAdvances,
	}, nil
}

func validateRange(start, end time.Time) error {
	if end.Before(start) {
		return ErrInvalidRange
	}
	return nil
}
