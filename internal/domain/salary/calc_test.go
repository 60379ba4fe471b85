package salary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(day int) time.Time {
	return time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestComputeOne(t *testing.T) {
	att := EmployeeAttendance{
		Employee: Employee{
			ID:            "e1",
			FirstName:     "Ahmed",
			LastName:      "Benali",
			DailySalary:   mustDecimal(t, "250"),
			AdvanceAmount: mustDecimal(t, "100"),
		},
		Workdays: []Workday{
			{Date: date(3), Multiplier: mustDecimal(t, "1.0"), DailySalary: mustDecimal(t, "250")},
			{Date: date(4), Multiplier: mustDecimal(t, "1.5"), DailySalary: mustDecimal(t, "250")},
			{Date: date(5), Multiplier: mustDecimal(t, "2.0"), DailySalary: mustDecimal(t, "250")},
		},
	}

	calc := ComputeOne(att)

	if calc.EmployeeName != "Ahmed Benali" {
		t.Fatalf("unexpected name: %q", calc.EmployeeName)
	}
	if calc.WorkedDays != 3 {
		t.Fatalf("expected 3 worked days, got %d", calc.WorkedDays)
	}
	if got := calc.GrossSalary.StringFixed(2); got != "1125.00" {
		t.Fatalf("expected gross 1125.00, got %s", got)
	}
	if got := calc.NetSalary.StringFixed(2); got != "1025.00" {
		t.Fatalf("expected net 1025.00, got %s", got)
	}
	want := []string{"2025-03-03", "2025-03-04", "2025-03-05"}
	if len(calc.WorkedDates) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(calc.WorkedDates))
	}
	for i, d := range want {
		if calc.WorkedDates[i] != d {
			t.Fatalf("date %d: expected %s, got %s", i, d, calc.WorkedDates[i])
		}
	}
}

func TestComputeOneZeroWorkdays(t *testing.T) {
	att := EmployeeAttendance{
		Employee: Employee{
			ID:            "e1",
			FirstName:     "Sara",
			LastName:      "Idrissi",
			DailySalary:   mustDecimal(t, "180"),
			AdvanceAmount: mustDecimal(t, "300"),
		},
	}

	calc := ComputeOne(att)

	if calc.WorkedDays != 0 {
		t.Fatalf("expected 0 worked days, got %d", calc.WorkedDays)
	}
	if !calc.GrossSalary.IsZero() {
		t.Fatalf("expected zero gross, got %s", calc.GrossSalary)
	}
	if got := calc.NetSalary.StringFixed(2); got != "-300.00" {
		t.Fatalf("expected net -300.00, got %s", got)
	}
}

func TestComputeOneAvoidsFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style sums must stay exact under decimal arithmetic.
	att := EmployeeAttendance{
		Employee: Employee{DailySalary: mustDecimal(t, "0.1")},
		Workdays: []Workday{
			{Date: date(1), Multiplier: mustDecimal(t, "1")},
			{Date: date(2), Multiplier: mustDecimal(t, "2")},
		},
	}

	calc := ComputeOne(att)
	if !calc.GrossSalary.Equal(mustDecimal(t, "0.3")) {
		t.Fatalf("expected exactly 0.3, got %s", calc.GrossSalary)
	}
}

func TestComputeRosterPreservesOrder(t *testing.T) {
	atts := []EmployeeAttendance{
		{Employee: Employee{ID: "b", FirstName: "B", LastName: "B", DailySalary: decimal.NewFromInt(100)}},
		{Employee: Employee{ID: "a", FirstName: "A", LastName: "A", DailySalary: decimal.NewFromInt(100)}},
	}

	calcs := ComputeRoster(atts)
	if len(calcs) != 2 {
		t.Fatalf("expected 2 calculations, got %d", len(calcs))
	}
	if calcs[0].EmployeeID != "b" || calcs[1].EmployeeID != "a" {
		t.Fatalf("order changed: %s, %s", calcs[0].EmployeeID, calcs[1].EmployeeID)
	}
}

func TestBuildDetailed(t *testing.T) {
	att := EmployeeAttendance{
		Employee: Employee{ID: "e1", FirstName: "Omar", LastName: "Tazi", DailySalary: mustDecimal(t, "200")},
		Workdays: []Workday{
			{Date: date(10), Multiplier: mustDecimal(t, "1")},
			{Date: date(11), Multiplier: mustDecimal(t, "1.5")},
		},
	}

	rows := BuildDetailed([]EmployeeAttendance{att})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.WorkedDays != 2 {
		t.Fatalf("expected 2 worked days, got %d", row.WorkedDays)
	}
	if got := row.GrossSalary.StringFixed(2); got != "500.00" {
		t.Fatalf("expected gross 500.00, got %s", got)
	}
	if m, ok := row.Days["2025-03-11"]; !ok || !m.Equal(mustDecimal(t, "1.5")) {
		t.Fatalf("expected 1.5 multiplier on 2025-03-11, got %v (present=%v)", m, ok)
	}
	if _, ok := row.Days["2025-03-12"]; ok {
		t.Fatal("did not expect an entry for a day off")
	}
}
