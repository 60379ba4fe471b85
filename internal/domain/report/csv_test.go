package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"emimet/internal/domain/salary"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestFormatFlat(t *testing.T) {
	calcs := []salary.SalaryCalculation{
		{
			EmployeeID:    "e1",
			EmployeeName:  "Ahmed Benali",
			WorkedDays:    2,
			WorkedDates:   []string{"2025-03-03", "2025-03-04"},
			DailySalary:   dec(t, "250"),
			GrossSalary:   dec(t, "625"),
			AdvanceAmount: dec(t, "100"),
			NetSalary:     dec(t, "525"),
		},
	}

	out := FormatFlat(calcs)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "Employee Name,Worked Days,Worked Dates,Daily Salary (MAD),Gross Salary (MAD),Advance (MAD),Net Salary (MAD)" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	want := `"Ahmed Benali","2","2025-03-03; 2025-03-04","250.00","625.00","100.00","525.00"`
	if lines[1] != want {
		t.Fatalf("unexpected row:\n got %s\nwant %s", lines[1], want)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatal("document must not end with a newline")
	}
}

func TestFormatFlatNegativeNet(t *testing.T) {
	calcs := []salary.SalaryCalculation{
		{
			EmployeeName:  "Sara Idrissi",
			DailySalary:   dec(t, "180"),
			GrossSalary:   decimal.Zero,
			AdvanceAmount: dec(t, "300"),
			NetSalary:     dec(t, "-300"),
		},
	}

	out := FormatFlat(calcs)
	if !strings.Contains(out, `"-300.00"`) {
		t.Fatalf("expected unclamped negative net in output:\n%s", out)
	}
}

func TestFormatFlatQuoting(t *testing.T) {
	calcs := []salary.SalaryCalculation{
		{
			EmployeeName: `Jean "JJ" Dupont, Jr.`,
			DailySalary:  decimal.Zero,
			GrossSalary:  decimal.Zero,
			NetSalary:    decimal.Zero,
		},
	}

	out := FormatFlat(calcs)
	if !strings.Contains(out, `"Jean ""JJ"" Dupont, Jr."`) {
		t.Fatalf("embedded quotes must be doubled:\n%s", out)
	}
}

func TestFormatFlatEmptyRoster(t *testing.T) {
	out := FormatFlat(nil)
	if strings.Count(out, "\n") != 0 {
		t.Fatalf("expected only the header line, got:\n%s", out)
	}
	if !strings.HasPrefix(out, "Employee Name,") {
		t.Fatalf("unexpected header: %s", out)
	}
}

func matrixFixture(t *testing.T) ([]salary.DetailedSalaryData, time.Time, time.Time) {
	t.Helper()
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)

	data := []salary.DetailedSalaryData{
		{
			EmployeeID:   "e2",
			EmployeeName: "Youssef Alami",
			DailySalary:  dec(t, "200"),
			Days: map[string]decimal.Decimal{
				"2025-03-03": dec(t, "1"),
				"2025-03-05": dec(t, "1.5"),
			},
			WorkedDays:  2,
			GrossSalary: dec(t, "500"),
		},
		{
			EmployeeID:   "e1",
			EmployeeName: "Ahmed Benali",
			DailySalary:  dec(t, "250"),
			Days: map[string]decimal.Decimal{
				"2025-03-03": dec(t, "1"),
			},
			WorkedDays:  1,
			GrossSalary: dec(t, "250"),
		},
	}
	return data, start, end
}

func TestFormatMatrixLayout(t *testing.T) {
	data, start, end := matrixFixture(t)
	generated := time.Date(2025, time.April, 1, 9, 30, 0, 0, time.UTC)

	out := FormatMatrix(data, start, end, generated)
	lines := strings.Split(out, "\n")

	if lines[0] != `"Rapport de présence détaillé - EMIMET"` {
		t.Fatalf("unexpected title: %s", lines[0])
	}
	if lines[1] != `"Période: 03/03/2025 au 07/03/2025"` {
		t.Fatalf("unexpected period line: %s", lines[1])
	}
	if lines[2] != `"Généré le: 01/04/2025 09:30"` {
		t.Fatalf("unexpected generated line: %s", lines[2])
	}
	if lines[3] != `"Nombre d'employés: 2"` {
		t.Fatalf("unexpected count line: %s", lines[3])
	}
	if lines[4] != "" {
		t.Fatalf("expected blank separator, got: %s", lines[4])
	}

	// 5 calendar days: lun..ven.
	if lines[5] != `"","","lun","mar","mer","jeu","ven","",""` {
		t.Fatalf("unexpected day sub-header: %s", lines[5])
	}
	wantHeader := `"N°","Employé","03/03","04/03","05/03","06/03","07/03","Jours travaillés","Salaire brut"`
	if lines[6] != wantHeader {
		t.Fatalf("unexpected header:\n got %s\nwant %s", lines[6], wantHeader)
	}

	// French collation: Ahmed before Youssef.
	if lines[7] != `"1","Ahmed Benali","✓","","","","","1","250.00"` {
		t.Fatalf("unexpected first row: %s", lines[7])
	}
	if lines[8] != `"2","Youssef Alami","✓","","✓ x1.5","","","2","500.00"` {
		t.Fatalf("unexpected second row: %s", lines[8])
	}
}

func TestFormatMatrixTotals(t *testing.T) {
	data, start, end := matrixFixture(t)
	out := FormatMatrix(data, start, end, time.Now())
	lines := strings.Split(out, "\n")

	// Blank line, then TOTAL: 2 worked the 3rd, 1 the 5th, blanks on
	// zero-headcount days.
	if lines[9] != "" {
		t.Fatalf("expected separator before TOTAL, got: %s", lines[9])
	}
	if lines[10] != `"","TOTAL","2","","1","","","3","750.00"` {
		t.Fatalf("unexpected TOTAL row: %s", lines[10])
	}

	summary := lines[13:]
	want := []string{
		`"Nombre total d'employés","2"`,
		`"Total jours travaillés","3"`,
		`"Salaire brut total","750.00"`,
		`"Salaire brut moyen par employé","375.00"`,
		`"Jours travaillés moyens par employé","1.50"`,
	}
	if len(summary) != len(want) {
		t.Fatalf("expected %d summary lines, got %d", len(want), len(summary))
	}
	for i, line := range want {
		if summary[i] != line {
			t.Fatalf("summary line %d:\n got %s\nwant %s", i, summary[i], line)
		}
	}
}

func TestFormatMatrixColumnCount(t *testing.T) {
	data, start, end := matrixFixture(t)
	out := FormatMatrix(data, start, end, time.Now())
	lines := strings.Split(out, "\n")

	// Every tabular row carries exactly 2 + days + 2 columns.
	wantCols := 2 + 5 + 2
	for _, idx := range []int{5, 6, 7, 8, 10} {
		cols := strings.Count(lines[idx], `","`) + 1
		if cols != wantCols {
			t.Fatalf("line %d: expected %d columns, got %d: %s", idx, wantCols, cols, lines[idx])
		}
	}
}

func TestFormatMatrixEmptyRoster(t *testing.T) {
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

	out := FormatMatrix(nil, start, end, time.Now())

	if !strings.Contains(out, `"Nombre d'employés: 0"`) {
		t.Fatalf("expected zero employee count:\n%s", out)
	}
	if !strings.Contains(out, `"Salaire brut moyen par employé","0.00"`) {
		t.Fatalf("averages must be zero on an empty roster:\n%s", out)
	}
	if strings.Contains(out, "\ufeff") {
		t.Fatal("formatter must not emit a BOM")
	}
}

func TestFormatMatrixSingleDay(t *testing.T) {
	day := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	data := []salary.DetailedSalaryData{
		{
			EmployeeName: "Ahmed Benali",
			DailySalary:  dec(t, "250"),
			Days:         map[string]decimal.Decimal{"2025-03-09": dec(t, "2")},
			WorkedDays:   1,
			GrossSalary:  dec(t, "500"),
		},
	}

	out := FormatMatrix(data, day, day, time.Now())
	lines := strings.Split(out, "\n")

	if lines[5] != `"","","dim","",""` {
		t.Fatalf("unexpected sub-header for a Sunday: %s", lines[5])
	}
	if !strings.Contains(lines[7], `"✓ x2"`) {
		t.Fatalf("expected doubled-day marker: %s", lines[7])
	}
}
