package org

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"ems/internal/platform/pgerr"
	"ems/internal/platform/querier"
)

// Store defines the persistence operations the org service needs.
type Store interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	GetDepartment(ctx context.Context, id string) (*Department, error)
	InsertDepartment(ctx context.Context, in DepartmentInput) (string, error)
	UpdateDepartment(ctx context.Context, id string, in DepartmentInput) error
	DeleteDepartment(ctx context.Context, id string) error
	DepartmentNameInUse(ctx context.Context, name, excludeID string) (bool, error)
	DepartmentEmployeeCount(ctx context.Context, id string) (int, error)

	ListJobRoles(ctx context.Context) ([]JobRole, error)
	GetJobRole(ctx context.Context, id string) (*JobRole, error)
	InsertJobRole(ctx context.Context, in JobRoleInput) (string, error)
	UpdateJobRole(ctx context.Context, id string, in JobRoleInput) error
	DeleteJobRole(ctx context.Context, id string) error
	JobRoleTitleInUse(ctx context.Context, title, excludeID string) (bool, error)
	JobRoleEmployeeCount(ctx context.Context, id string) (int, error)
}

type pgStore struct {
	db      querier.Querier
	timeout time.Duration
}

func NewStore(db querier.Querier, timeout time.Duration) Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &pgStore{db: db, timeout: timeout}
}

func (s *pgStore) ListDepartments(ctx context.Context) ([]Department, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.Query(ctx, `
    SELECT d.id, d.name, COALESCE(d.description, ''),
           COUNT(e.id), d.created_at, d.updated_at
    FROM departments d
    LEFT JOIN employees e ON e.department_id = d.id
    GROUP BY d.id
    ORDER BY d.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var dep Department
		if err := rows.Scan(&dep.ID, &dep.Name, &dep.Description, &dep.EmployeeCount, &dep.CreatedAt, &dep.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, rows.Err()
}

func (s *pgStore) GetDepartment(ctx context.Context, id string) (*Department, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var dep Department
	err := s.db.QueryRow(ctx, `
    SELECT d.id, d.name, COALESCE(d.description, ''),
           COUNT(e.id), d.created_at, d.updated_at
    FROM departments d
    LEFT JOIN employees e ON e.department_id = d.id
    WHERE d.id = $1
    GROUP BY d.id
  `, id).Scan(&dep.ID, &dep.Name, &dep.Description, &dep.EmployeeCount, &dep.CreatedAt, &dep.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dep, nil
}

func (s *pgStore) InsertDepartment(ctx context.Context, in DepartmentInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var id string
	err := s.db.QueryRow(ctx, `
    INSERT INTO departments (name, description)
    VALUES ($1, $2)
    RETURNING id
  `, in.Name, nullIfEmpty(in.Description)).Scan(&id)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return "", ErrDuplicateName
		}
		return "", err
	}
	return id, nil
}

func (s *pgStore) UpdateDepartment(ctx context.Context, id string, in DepartmentInput) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `
    UPDATE departments
    SET name = $1, description = $2, updated_at = now()
    WHERE id = $3
  `, in.Name, nullIfEmpty(in.Description), id)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteDepartment(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd, err := s.db.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		// The FK backstops the dependency pre-check losing a race.
		if pgerr.IsForeignKeyViolation(err) {
			return ErrHasEmployees
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) DepartmentNameInUse(ctx context.Context, name, excludeID string) (bool, error) {
	return s.inUse(ctx, "SELECT COUNT(1) FROM departments WHERE name = $1 AND ($2 = '' OR id <> $2::uuid)", name, excludeID)
}

func (s *pgStore) DepartmentEmployeeCount(ctx context.Context, id string) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM employees WHERE department_id = $1", id)
}

func (s *pgStore) ListJobRoles(ctx context.Context) ([]JobRole, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.Query(ctx, `
    SELECT r.id, r.title, COALESCE(r.description, ''),
           COUNT(e.id), r.created_at, r.updated_at
    FROM roles r
    LEFT JOIN employees e ON e.role_id = r.id
    GROUP BY r.id
    ORDER BY r.title
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobRole
	for rows.Next() {
		var role JobRole
		if err := rows.Scan(&role.ID, &role.Title, &role.Description, &role.EmployeeCount, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (s *pgStore) GetJobRole(ctx context.Context, id string) (*JobRole, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var role JobRole
	err := s.db.QueryRow(ctx, `
    SELECT r.id, r.title, COALESCE(r.description, ''),
           COUNT(e.id), r.created_at, r.updated_at
    FROM roles r
    LEFT JOIN employees e ON e.role_id = r.id
    WHERE r.id = $1
    GROUP BY r.id
  `, id).Scan(&role.ID, &role.Title, &role.Description, &role.EmployeeCount, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (s *pgStore) InsertJobRole(ctx context.Context, in JobRoleInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var id string
	err := s.db.QueryRow(ctx, `
    INSERT INTO roles (title, description)
    VALUES ($1, $2)
    RETURNING id
  `, in.Title, nullIfEmpty(in.Description)).Scan(&id)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return "", ErrDuplicateTitle
		}
		return "", err
	}
	return id, nil
}

func (s *pgStore) UpdateJobRole(ctx context.Context, id string, in JobRoleInput) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `
    UPDATE roles
    SET title = $1, description = $2, updated_at = now()
    WHERE id = $3
  `, in.Title, nullIfEmpty(in.Description), id)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrDuplicateTitle
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteJobRole(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd, err := s.db.Exec(ctx, "DELETE FROM roles WHERE id = $1", id)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return ErrHasEmployees
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) JobRoleTitleInUse(ctx context.Context, title, excludeID string) (bool, error) {
	return s.inUse(ctx, "SELECT COUNT(1) FROM roles WHERE title = $1 AND ($2 = '' OR id <> $2::uuid)", title, excludeID)
}

func (s *pgStore) JobRoleEmployeeCount(ctx context.Context, id string) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM employees WHERE role_id = $1", id)
}

func (s *pgStore) inUse(ctx context.Context, sql string, args ...any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var count int
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *pgStore) count(ctx context.Context, sql string, args ...any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var count int
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
