package workday

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxMultiplier bounds the pay multiplier accepted on entry. The UI
// offers 1.0 (normal), 1.5 (overtime) and 2.0 (holiday), but storage
// treats it as an arbitrary decimal within [1, MaxMultiplier].
var MaxMultiplier = decimal.NewFromInt(2)

type Workday struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	Date         time.Time       `json:"date"`
	Multiplier   decimal.Decimal `json:"multiplier"`
	DailySalary  decimal.Decimal `json:"dailySalary"`
	CreatedAt    time.Time       `json:"createdAt"`
}
