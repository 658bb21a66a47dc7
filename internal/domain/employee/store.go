package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"ems/internal/platform/pgerr"
	"ems/internal/platform/querier"
)

// Store defines the persistence operations the employee service needs.
type Store interface {
	List(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (*Employee, error)
	EmailInUse(ctx context.Context, email, excludeID string) (bool, error)
	DepartmentExists(ctx context.Context, id string) (bool, error)
	RoleExists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, emp Employee) (string, error)
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, id string) error
	UpsertSalary(ctx context.Context, employeeID string, in SalaryInput) error
}

type pgStore struct {
	db      querier.Beginner
	timeout time.Duration
}

func NewStore(db querier.Beginner, timeout time.Duration) Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &pgStore{db: db, timeout: timeout}
}

const employeeSelect = `
    SELECT e.id, e.first_name, e.last_name, e.email,
           COALESCE(e.phone, ''),
           e.hire_date, e.department_id, e.role_id, e.status,
           e.created_at, e.updated_at,
           d.name,
           r.title,
           s.id, s.amount, s.currency, s.effective_date
    FROM employees e
    JOIN departments d ON e.department_id = d.id
    JOIN roles r ON e.role_id = r.id
    LEFT JOIN salaries s ON s.employee_id = e.id`

func (s *pgStore) List(ctx context.Context) ([]Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.Query(ctx, employeeSelect+" ORDER BY e.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *pgStore) GetByID(ctx context.Context, id string) (*Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	emp, err := scanEmployee(s.db.QueryRow(ctx, employeeSelect+" WHERE e.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return emp, nil
}

func (s *pgStore) EmailInUse(ctx context.Context, email, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var count int
	err := s.db.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees
    WHERE email = $1 AND ($2 = '' OR id <> $2::uuid)
  `, email, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *pgStore) DepartmentExists(ctx context.Context, id string) (bool, error) {
	return s.rowExists(ctx, "SELECT COUNT(1) FROM departments WHERE id = $1", id)
}

func (s *pgStore) RoleExists(ctx context.Context, id string) (bool, error) {
	return s.rowExists(ctx, "SELECT COUNT(1) FROM roles WHERE id = $1", id)
}

func (s *pgStore) rowExists(ctx context.Context, sql, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var count int
	if err := s.db.QueryRow(ctx, sql, id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *pgStore) Insert(ctx context.Context, emp Employee) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var id string
	err := s.db.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, phone, hire_date, department_id, role_id, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id
  `, emp.FirstName, emp.LastName, emp.Email, nullIfEmpty(emp.Phone), emp.HireDate,
		emp.DepartmentID, emp.RoleID, emp.Status).Scan(&id)
	if err != nil {
		return "", translateWriteError(err)
	}
	return id, nil
}

func (s *pgStore) Update(ctx context.Context, emp Employee) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        email = $3,
        phone = $4,
        hire_date = $5,
        department_id = $6,
        role_id = $7,
        status = $8,
        updated_at = now()
    WHERE id = $9
  `, emp.FirstName, emp.LastName, emp.Email, nullIfEmpty(emp.Phone), emp.HireDate,
		emp.DepartmentID, emp.RoleID, emp.Status, emp.ID)
	if err != nil {
		return translateWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the salary record first, then the employee, in a single
// transaction. No ON DELETE CASCADE is relied upon.
func (s *pgStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM salaries WHERE employee_id = $1", id); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// UpsertSalary keeps the one-to-one invariant at the store level: the
// unique employee_id constraint makes concurrent upserts converge on a
// single row.
func (s *pgStore) UpsertSalary(ctx context.Context, employeeID string, in SalaryInput) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USD"
	}
	effective := time.Now()
	if in.EffectiveDate != nil {
		effective = *in.EffectiveDate
	}

	_, err := s.db.Exec(ctx, `
    INSERT INTO salaries (employee_id, amount, currency, effective_date)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (employee_id) DO UPDATE
    SET amount = EXCLUDED.amount,
        currency = EXCLUDED.currency,
        effective_date = EXCLUDED.effective_date,
        updated_at = now()
  `, employeeID, in.Amount, currency, effective)
	return err
}

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	var departmentName, roleTitle string
	var salaryID *string
	var salaryAmount *float64
	var salaryCurrency *string
	var salaryEffective *time.Time

	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&emp.HireDate, &emp.DepartmentID, &emp.RoleID, &emp.Status,
		&emp.CreatedAt, &emp.UpdatedAt,
		&departmentName, &roleTitle,
		&salaryID, &salaryAmount, &salaryCurrency, &salaryEffective,
	)
	if err != nil {
		return nil, err
	}

	emp.Department = &DepartmentRef{ID: emp.DepartmentID, Name: departmentName}
	emp.Role = &RoleRef{ID: emp.RoleID, Title: roleTitle}
	if salaryID != nil {
		emp.Salary = &Salary{
			ID:            *salaryID,
			EmployeeID:    emp.ID,
			Amount:        *salaryAmount,
			Currency:      strings.TrimSpace(*salaryCurrency),
			EffectiveDate: *salaryEffective,
		}
	}
	return &emp, nil
}

func translateWriteError(err error) error {
	if pgerr.IsUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if pgerr.IsForeignKeyViolation(err) {
		switch {
		case strings.Contains(pgerr.ConstraintName(err), "department"):
			return ErrDepartmentNotFound
		case strings.Contains(pgerr.ConstraintName(err), "role"):
			return ErrRoleNotFound
		}
	}
	return err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
