package salary

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"emimet/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

var _ StoreAPI = (*Store)(nil)

func (s *Store) FindEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, daily_salary, advance_amount, employment_status
    FROM employees
    WHERE NOT is_deleted
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.DailySalary, &e.AdvanceAmount, &e.Status); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) FindEmployee(ctx context.Context, id string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, daily_salary, advance_amount, employment_status
    FROM employees
    WHERE id = $1 AND NOT is_deleted
  `, id).Scan(&e.ID, &e.FirstName, &e.LastName, &e.DailySalary, &e.AdvanceAmount, &e.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) FindWorkdays(ctx context.Context, start, end time.Time, employeeID string) ([]Workday, error) {
	query := `
    SELECT w.employee_id, w.work_date, w.multiplier, e.daily_salary
    FROM workdays w
    JOIN employees e ON w.employee_id = e.id
    WHERE w.work_date >= $1 AND w.work_date <= $2`
	args := []any{start, end}
	if employeeID != "" {
		query += " AND w.employee_id = $3"
		args = append(args, employeeID)
	}
	query += " ORDER BY w.work_date"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workdays []Workday
	for rows.Next() {
		var w Workday
		if err := rows.Scan(&w.EmployeeID, &w.Date, &w.Multiplier, &w.DailySalary); err != nil {
			return nil, err
		}
		workdays = append(workdays, w)
	}
	return workdays, rows.Err()
}

func (s *Store) CountActiveEmployees(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees
    WHERE NOT is_deleted AND employment_status = 'ACTIVE'
  `).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
