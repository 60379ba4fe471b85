package salary

import "github.com/shopspring/decimal"

// ComputeOne folds in-range attendance into the derived salary fields.
// Gross is the exact decimal sum of dailySalary x multiplier per worked
// day; net may go negative when the lifetime advance exceeds gross and
// is deliberately not clamped.
func ComputeOne(att EmployeeAttendance) SalaryCalculation {
	gross := decimal.Zero
	dates := make([]string, 0, len(att.Workdays))
	for _, wd := range att.Workdays {
		gross = gross.Add(att.Employee.DailySalary.Mul(wd.Multiplier))
		dates = append(dates, wd.Date.Format(DateFormat))
	}

	return SalaryCalculation{
		EmployeeID:    att.Employee.ID,
		EmployeeName:  att.Employee.FullName(),
		WorkedDays:    len(att.Workdays),
		WorkedDates:   dates,
		DailySalary:   att.Employee.DailySalary,
		GrossSalary:   gross,
		AdvanceAmount: att.Employee.AdvanceAmount,
		NetSalary:     gross.Sub(att.Employee.AdvanceAmount),
	}
}

// ComputeRoster maps ComputeOne over the roster, preserving the order
// the aggregator produced.
func ComputeRoster(atts []EmployeeAttendance) []SalaryCalculation {
	calcs := make([]SalaryCalculation, 0, len(atts))
	for _, att := range atts {
		calcs = append(calcs, ComputeOne(att))
	}
	return calcs
}

// BuildDetailed shapes attendance into the per-day matrix rows used by
// the detailed report. Absent map key means the employee did not work
// that date.
func BuildDetailed(atts []EmployeeAttendance) []DetailedSalaryData {
	detailed := make([]DetailedSalaryData, 0, len(atts))
	for _, att := range atts {
		gross := decimal.Zero
		days := make(map[string]decimal.Decimal, len(att.Workdays))
		for _, wd := range att.Workdays {
			days[wd.Date.Format(DateFormat)] = wd.Multiplier
			gross = gross.Add(att.Employee.DailySalary.Mul(wd.Multiplier))
		}
		detailed = append(detailed, DetailedSalaryData{
			EmployeeID:   att.Employee.ID,
			EmployeeName: att.Employee.FullName(),
			DailySalary:  att.Employee.DailySalary,
			Days:         days,
			WorkedDays:   len(att.Workdays),
			GrossSalary:  gross,
		})
	}
	return detailed
}
