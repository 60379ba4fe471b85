package workday

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"emimet/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

// List returns workdays newest first, joined with the employee so the
// attendance screen renders without per-row lookups. Both range bounds
// are optional and inclusive.
func (s *Store) List(ctx context.Context, start, end *time.Time) ([]Workday, error) {
	query := `
    SELECT w.id, w.employee_id, e.first_name || ' ' || e.last_name,
           w.work_date, w.multiplier, e.daily_salary, w.created_at
    FROM workdays w
    JOIN employees e ON w.employee_id = e.id
    WHERE NOT e.is_deleted`
	args := []any{}

	if start != nil && !start.IsZero() {
		query += " AND w.work_date >= $" + strconv.Itoa(len(args)+1)
		args = append(args, *start)
	}
	if end != nil && !end.IsZero() {
		query += " AND w.work_date <= $" + strconv.Itoa(len(args)+1)
		args = append(args, *end)
	}
	query += " ORDER BY w.work_date DESC, w.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workdays []Workday
	for rows.Next() {
		var w Workday
		if err := rows.Scan(&w.ID, &w.EmployeeID, &w.EmployeeName, &w.Date, &w.Multiplier, &w.DailySalary, &w.CreatedAt); err != nil {
			return nil, err
		}
		workdays = append(workdays, w)
	}
	return workdays, rows.Err()
}

func (s *Store) Create(ctx context.Context, employeeID string, date time.Time, multiplier decimal.Decimal) (Workday, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO workdays (employee_id, work_date, multiplier)
    VALUES ($1, $2, $3)
    RETURNING id
  `, employeeID, date, multiplier).Scan(&id)
	if isUniqueViolation(err) {
		return Workday{}, ErrDuplicate
	}
	if err != nil {
		return Workday{}, err
	}

	var w Workday
	err = s.DB.QueryRow(ctx, `
    SELECT w.id, w.employee_id, e.first_name || ' ' || e.last_name,
           w.work_date, w.multiplier, e.daily_salary, w.created_at
    FROM workdays w
    JOIN employees e ON w.employee_id = e.id
    WHERE w.id = $1
  `, id).Scan(&w.ID, &w.EmployeeID, &w.EmployeeName, &w.Date, &w.Multiplier, &w.DailySalary, &w.CreatedAt)
	if err != nil {
		return Workday{}, err
	}
	return w, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM workdays WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
