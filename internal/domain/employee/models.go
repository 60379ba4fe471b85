package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID               string          `json:"id"`
	EmployeeCode     string          `json:"employeeId"`
	CIN              string          `json:"cin"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	DateOfBirth      time.Time       `json:"dateOfBirth"`
	PhoneNumber      string          `json:"phoneNumber"`
	Address          string          `json:"address"`
	SectorID         string          `json:"sectorId"`
	SectorName       string          `json:"sectorName"`
	FunctionID       string          `json:"functionId"`
	FunctionName     string          `json:"functionName"`
	DailySalary      decimal.Decimal `json:"dailySalary"`
	AdvanceAmount    decimal.Decimal `json:"advanceAmount"`
	JoinDate         time.Time       `json:"joinDate"`
	EmploymentStatus string          `json:"employmentStatus"`
	Notes            string          `json:"notes,omitempty"`
	ProfilePhoto     string          `json:"profilePhoto,omitempty"`
	IDProofPhoto     string          `json:"idProofPhoto,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// AdvanceLog is one cash advance handed to an employee. The employee
// row's advance_amount is the denormalized running total; it is only
// ever moved forward by Store.RecordAdvance, never recomputed from
// these logs.
type AdvanceLog struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes,omitempty"`
	CreatedBy  string          `json:"createdBy,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type ListFilter struct {
	Search     string
	SectorID   string
	FunctionID string
	Status     string
	Limit      int
	Offset     int
}

// PartialUpdate carries the subset of fields the edit screens patch
// without resubmitting the whole record.
type PartialUpdate struct {
	DailySalary      *decimal.Decimal
	AdvanceAmount    *decimal.Decimal
	EmploymentStatus *string
	Notes            *string
}
