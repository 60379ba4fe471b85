package employee

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"emimet/internal/platform/querier"
)

type Store struct {
	DB querier.Beginner
}

func NewStore(db querier.Beginner) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    e.id, e.employee_code, e.cin, e.first_name, e.last_name, e.date_of_birth,
    e.phone_number, e.address, e.sector_id, s.name, e.function_id, f.name,
    e.daily_salary, e.advance_amount, e.join_date, e.employment_status,
    e.notes, e.profile_photo, e.id_proof_photo, e.created_at`

const employeeJoins = `
    FROM employees e
    JOIN sectors s ON e.sector_id = s.id
    JOIN functions f ON e.function_id = f.id`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.CIN, &e.FirstName, &e.LastName, &e.DateOfBirth,
		&e.PhoneNumber, &e.Address, &e.SectorID, &e.SectorName, &e.FunctionID, &e.FunctionName,
		&e.DailySalary, &e.AdvanceAmount, &e.JoinDate, &e.EmploymentStatus,
		&e.Notes, &e.ProfilePhoto, &e.IDProofPhoto, &e.CreatedAt,
	)
	return e, err
}

func buildListQuery(filter ListFilter) (string, []any) {
	query := "SELECT " + employeeColumns + employeeJoins + " WHERE NOT e.is_deleted"
	args := []any{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		idx := strconv.Itoa(len(args) + 1)
		query += " AND (e.first_name ILIKE $" + idx +
			" OR e.last_name ILIKE $" + idx +
			" OR e.cin ILIKE $" + idx +
			" OR e.employee_code ILIKE $" + idx + ")"
		args = append(args, pattern)
	}
	if filter.SectorID != "" {
		query += " AND e.sector_id = $" + strconv.Itoa(len(args)+1)
		args = append(args, filter.SectorID)
	}
	if filter.FunctionID != "" {
		query += " AND e.function_id = $" + strconv.Itoa(len(args)+1)
		args = append(args, filter.FunctionID)
	}
	if filter.Status != "" {
		query += " AND e.employment_status = $" + strconv.Itoa(len(args)+1)
		args = append(args, filter.Status)
	}

	return query, args
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Employee, int, error) {
	query, args := buildListQuery(filter)

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM ("+query+") matched", args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY e.created_at DESC LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+employeeJoins+" WHERE e.id = $1 AND NOT e.is_deleted", id)
	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, e Employee) (Employee, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (
      employee_code, cin, first_name, last_name, date_of_birth, phone_number,
      address, sector_id, function_id, daily_salary, advance_amount, join_date,
      employment_status, notes, profile_photo, id_proof_photo
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    RETURNING id
  `,
		e.EmployeeCode, e.CIN, e.FirstName, e.LastName, e.DateOfBirth, e.PhoneNumber,
		e.Address, e.SectorID, e.FunctionID, e.DailySalary, e.AdvanceAmount, e.JoinDate,
		e.EmploymentStatus, e.Notes, e.ProfilePhoto, e.IDProofPhoto,
	).Scan(&id)
	if isUniqueViolation(err) {
		return Employee{}, ErrDuplicateCIN
	}
	if err != nil {
		return Employee{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id string, e Employee) (Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees SET
      cin = $2, first_name = $3, last_name = $4, date_of_birth = $5,
      phone_number = $6, address = $7, sector_id = $8, function_id = $9,
      daily_salary = $10, advance_amount = $11, join_date = $12,
      employment_status = $13, notes = $14, profile_photo = $15, id_proof_photo = $16
    WHERE id = $1 AND NOT is_deleted
  `,
		id, e.CIN, e.FirstName, e.LastName, e.DateOfBirth,
		e.PhoneNumber, e.Address, e.SectorID, e.FunctionID,
		e.DailySalary, e.AdvanceAmount, e.JoinDate,
		e.EmploymentStatus, e.Notes, e.ProfilePhoto, e.IDProofPhoto,
	)
	if isUniqueViolation(err) {
		return Employee{}, ErrDuplicateCIN
	}
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) UpdatePartial(ctx context.Context, id string, patch PartialUpdate) (Employee, error) {
	sets := []string{}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if patch.DailySalary != nil {
		add("daily_salary", *patch.DailySalary)
	}
	if patch.AdvanceAmount != nil {
		add("advance_amount", *patch.AdvanceAmount)
	}
	if patch.EmploymentStatus != nil {
		add("employment_status", *patch.EmploymentStatus)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if len(sets) == 0 {
		return s.Get(ctx, id)
	}

	tag, err := s.DB.Exec(ctx, "UPDATE employees SET "+strings.Join(sets, ", ")+" WHERE id = $1 AND NOT is_deleted", args...)
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) SoftDelete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListAdvances(ctx context.Context, employeeID string) ([]AdvanceLog, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, amount, notes, created_by, created_at
    FROM advance_logs
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []AdvanceLog
	for rows.Next() {
		var l AdvanceLog
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.Amount, &l.Notes, &l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// RecordAdvance appends an advance log and moves the employee's running
// total forward in the same transaction, so the denormalized amount can
// never drift from the log history on this write path.
func (s *Store) RecordAdvance(ctx context.Context, employeeID string, amount decimal.Decimal, notes, createdBy string) (AdvanceLog, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return AdvanceLog{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE employees SET advance_amount = advance_amount + $2
    WHERE id = $1 AND NOT is_deleted
  `, employeeID, amount)
	if err != nil {
		return AdvanceLog{}, err
	}
	if tag.RowsAffected() == 0 {
		return AdvanceLog{}, ErrNotFound
	}

	var l AdvanceLog
	err = tx.QueryRow(ctx, `
    INSERT INTO advance_logs (employee_id, amount, notes, created_by)
    VALUES ($1, $2, $3, $4)
    RETURNING id, employee_id, amount, notes, created_by, created_at
  `, employeeID, amount, notes, createdBy).Scan(&l.ID, &l.EmployeeID, &l.Amount, &l.Notes, &l.CreatedBy, &l.CreatedAt)
	if err != nil {
		return AdvanceLog{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return AdvanceLog{}, err
	}
	return l, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
