package org

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"emimet/internal/platform/querier"
)

// Sectors and job functions share the same shape; both tables are tiny
// reference data so the queries stay hand-written per table.
type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListSectors(ctx context.Context) ([]Sector, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT s.id, s.name, COUNT(e.id) FILTER (WHERE NOT e.is_deleted), s.created_at
    FROM sectors s
    LEFT JOIN employees e ON e.sector_id = s.id
    GROUP BY s.id
    ORDER BY s.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sectors []Sector
	for rows.Next() {
		var sec Sector
		if err := rows.Scan(&sec.ID, &sec.Name, &sec.EmployeeCount, &sec.CreatedAt); err != nil {
			return nil, err
		}
		sectors = append(sectors, sec)
	}
	return sectors, rows.Err()
}

func (s *Store) CreateSector(ctx context.Context, name string) (Sector, error) {
	var sec Sector
	err := s.DB.QueryRow(ctx, `
    INSERT INTO sectors (name) VALUES ($1)
    RETURNING id, name, created_at
  `, name).Scan(&sec.ID, &sec.Name, &sec.CreatedAt)
	if isUniqueViolation(err) {
		return Sector{}, ErrNameTaken
	}
	if err != nil {
		return Sector{}, err
	}
	return sec, nil
}

func (s *Store) RenameSector(ctx context.Context, id, name string) (Sector, error) {
	var sec Sector
	err := s.DB.QueryRow(ctx, `
    UPDATE sectors SET name = $2 WHERE id = $1
    RETURNING id, name, created_at
  `, id, name).Scan(&sec.ID, &sec.Name, &sec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sector{}, ErrNotFound
	}
	if isUniqueViolation(err) {
		return Sector{}, ErrNameTaken
	}
	if err != nil {
		return Sector{}, err
	}
	return sec, nil
}

func (s *Store) DeleteSector(ctx context.Context, id string) error {
	var inUse int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE sector_id = $1 AND NOT is_deleted", id).Scan(&inUse); err != nil {
		return err
	}
	if inUse > 0 {
		return ErrInUse
	}
	tag, err := s.DB.Exec(ctx, "DELETE FROM sectors WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListFunctions(ctx context.Context) ([]Function, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT f.id, f.name, COUNT(e.id) FILTER (WHERE NOT e.is_deleted), f.created_at
    FROM functions f
    LEFT JOIN employees e ON e.function_id = f.id
    GROUP BY f.id
    ORDER BY f.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var functions []Function
	for rows.Next() {
		var fn Function
		if err := rows.Scan(&fn.ID, &fn.Name, &fn.EmployeeCount, &fn.CreatedAt); err != nil {
			return nil, err
		}
		functions = append(functions, fn)
	}
	return functions, rows.Err()
}

func (s *Store) CreateFunction(ctx context.Context, name string) (Function, error) {
	var fn Function
	err := s.DB.QueryRow(ctx, `
    INSERT INTO functions (name) VALUES ($1)
    RETURNING id, name, created_at
  `, name).Scan(&fn.ID, &fn.Name, &fn.CreatedAt)
	if isUniqueViolation(err) {
		return Function{}, ErrNameTaken
	}
	if err != nil {
		return Function{}, err
	}
	return fn, nil
}

func (s *Store) RenameFunction(ctx context.Context, id, name string) (Function, error) {
	var fn Function
	err := s.DB.QueryRow(ctx, `
    UPDATE functions SET name = $2 WHERE id = $1
    RETURNING id, name, created_at
  `, id, name).Scan(&fn.ID, &fn.Name, &fn.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Function{}, ErrNotFound
	}
	if isUniqueViolation(err) {
		return Function{}, ErrNameTaken
	}
	if err != nil {
		return Function{}, err
	}
	return fn, nil
}

func (s *Store) DeleteFunction(ctx context.Context, id string) error {
	var inUse int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE function_id = $1 AND NOT is_deleted", id).Scan(&inUse); err != nil {
		return err
	}
	if inUse > 0 {
		return ErrInUse
	}
	tag, err := s.DB.Exec(ctx, "DELETE FROM functions WHERE id = $1", id)
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
