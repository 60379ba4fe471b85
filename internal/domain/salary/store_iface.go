package salary

import (
	"context"
	"time"
)

type StoreAPI interface {
	// FindEmployees returns all non-deleted employees in creation order.
	FindEmployees(ctx context.Context) ([]Employee, error)
	// FindEmployee returns a single non-deleted employee or ErrEmployeeNotFound.
	FindEmployee(ctx context.Context, id string) (Employee, error)
	// FindWorkdays returns workdays with date in [start, end] ascending,
	// optionally limited to one employee when employeeID is non-empty.
	FindWorkdays(ctx context.Context, start, end time.Time, employeeID string) ([]Workday, error)
	// CountActiveEmployees counts non-deleted employees with ACTIVE status.
	CountActiveEmployees(ctx context.Context) (int, error)
}
