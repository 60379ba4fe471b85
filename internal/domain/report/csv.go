// Package report renders computed salary data into CSV payloads. Both
// layouts force-quote every data cell, so spreadsheet imports survive
// names and notes containing commas or quotes.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"emimet/internal/domain/salary"
)

var flatHeaders = []string{
	"Employee Name",
	"Worked Days",
	"Worked Dates",
	"Daily Salary (MAD)",
	"Gross Salary (MAD)",
	"Advance (MAD)",
	"Net Salary (MAD)",
}

// FormatFlat renders one row per salary calculation. Money carries
// exactly two decimals, no currency symbol, no thousands separator.
// Rows are joined with \n and the document has no trailing newline.
func FormatFlat(calcs []salary.SalaryCalculation) string {
	lines := make([]string, 0, len(calcs)+1)
	lines = append(lines, strings.Join(flatHeaders, ","))

	for _, calc := range calcs {
		cells := []string{
			calc.EmployeeName,
			strconv.Itoa(calc.WorkedDays),
			strings.Join(calc.WorkedDates, "; "),
			calc.DailySalary.StringFixed(2),
			calc.GrossSalary.StringFixed(2),
			calc.AdvanceAmount.StringFixed(2),
			calc.NetSalary.StringFixed(2),
		}
		lines = append(lines, joinQuoted(cells))
	}
	return strings.Join(lines, "\n")
}

// French day-of-week abbreviations for the matrix sub-header.
var dayAbbrev = map[time.Weekday]string{
	time.Sunday:    "dim",
	time.Monday:    "lun",
	time.Tuesday:   "mar",
	time.Wednesday: "mer",
	time.Thursday:  "jeu",
	time.Friday:    "ven",
	time.Saturday:  "sam",
}

// FormatMatrix renders the date-by-employee attendance matrix: one
// column per calendar day in [start, end] inclusive, employees sorted
// with French collation, a TOTAL row with per-date headcounts and a
// trailing summary block. The text contains no BOM; transports that
// need one prefix it themselves.
func FormatMatrix(data []salary.DetailedSalaryData, start, end, generatedAt time.Time) string {
	days := calendarDays(start, end)

	sorted := make([]salary.DetailedSalaryData, len(data))
	copy(sorted, data)
	collator := collate.New(language.French)
	sort.SliceStable(sorted, func(i, j int) bool {
		return collator.CompareString(sorted[i].EmployeeName, sorted[j].EmployeeName) < 0
	})

	var lines []string
	addRow := func(cells ...string) {
		lines = append(lines, joinQuoted(cells))
	}

	addRow("Rapport de présence détaillé - EMIMET")
	addRow("Période: " + start.Format("02/01/2006") + " au " + end.Format("02/01/2006"))
	addRow("Généré le: " + generatedAt.Format("02/01/2006 15:04"))
	addRow("Nombre d'employés: " + strconv.Itoa(len(sorted)))
	lines = append(lines, "")

	// Day-of-week sub-header, aligned under the date columns.
	subHeader := []string{"", ""}
	for _, day := range days {
		subHeader = append(subHeader, dayAbbrev[day.Weekday()])
	}
	subHeader = append(subHeader, "", "")
	addRow(subHeader...)

	header := []string{"N°", "Employé"}
	for _, day := range days {
		header = append(header, day.Format("02/01"))
	}
	header = append(header, "Jours travaillés", "Salaire brut")
	addRow(header...)

	totalDays := 0
	totalGross := decimal.Zero
	dateCounts := make([]int, len(days))
	for i, row := range sorted {
		cells := []string{strconv.Itoa(i + 1), row.EmployeeName}
		for d, day := range days {
			key := day.Format(salary.DateFormat)
			multiplier, worked := row.Days[key]
			cells = append(cells, dayCell(multiplier, worked))
			if worked {
				dateCounts[d]++
			}
		}
		cells = append(cells, strconv.Itoa(row.WorkedDays), row.GrossSalary.StringFixed(2))
		addRow(cells...)

		totalDays += row.WorkedDays
		totalGross = totalGross.Add(row.GrossSalary)
	}

	lines = append(lines, "")
	totalRow := []string{"", "TOTAL"}
	for _, count := range dateCounts {
		if count == 0 {
			totalRow = append(totalRow, "")
		} else {
			totalRow = append(totalRow, strconv.Itoa(count))
		}
	}
	totalRow = append(totalRow, strconv.Itoa(totalDays), totalGross.StringFixed(2))
	addRow(totalRow...)

	lines = append(lines, "", "")
	employeeCount := len(sorted)
	avgGross := decimal.Zero
	avgDays := decimal.Zero
	if employeeCount > 0 {
		divisor := decimal.NewFromInt(int64(employeeCount))
		avgGross = totalGross.Div(divisor)
		avgDays = decimal.NewFromInt(int64(totalDays)).Div(divisor)
	}
	addRow("Nombre total d'employés", strconv.Itoa(employeeCount))
	addRow("Total jours travaillés", strconv.Itoa(totalDays))
	addRow("Salaire brut total", totalGross.StringFixed(2))
	addRow("Salaire brut moyen par employé", avgGross.StringFixed(2))
	addRow("Jours travaillés moyens par employé", avgDays.StringFixed(2))

	return strings.Join(lines, "\n")
}

// calendarDays materializes every day of the inclusive range, so the
// matrix keeps a column even for dates nobody worked.
func calendarDays(start, end time.Time) []time.Time {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var days []time.Time
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

func dayCell(multiplier decimal.Decimal, worked bool) string {
	if !worked {
		return ""
	}
	if multiplier.Equal(decimal.NewFromInt(1)) {
		return "✓"
	}
	return "✓ x" + formatMultiplier(multiplier)
}

// formatMultiplier renders 1.5 as "1.5" and 2.00 as "2", dropping the
// storage scale.
func formatMultiplier(multiplier decimal.Decimal) string {
	return strconv.FormatFloat(multiplier.InexactFloat64(), 'f', -1, 64)
}

// joinQuoted applies the shared quoting rule: every cell wrapped in
// double quotes, embedded quotes doubled.
func joinQuoted(cells []string) string {
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		quoted[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
