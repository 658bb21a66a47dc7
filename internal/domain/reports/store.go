package reports

import (
	"context"
	"time"

	"ems/internal/platform/querier"
)

// Store defines the report queries. Aggregation happens in the service so
// the zero-record guards are plain Go.
type Store interface {
	DepartmentRows(ctx context.Context) ([]DepartmentRow, error)
	SalaryRows(ctx context.Context) ([]SalaryRow, error)
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

func (s *pgStore) DepartmentRows(ctx context.Context) ([]DepartmentRow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.Query(ctx, `
    SELECT d.id, d.name,
           COALESCE(e.id::text, ''),
           COALESCE(e.first_name, ''),
           COALESCE(e.last_name, ''),
           COALESCE(e.email, ''),
           COALESCE(r.title, ''),
           COALESCE(e.status, ''),
           s.amount
    FROM departments d
    LEFT JOIN employees e ON e.department_id = d.id
    LEFT JOIN roles r ON e.role_id = r.id
    LEFT JOIN salaries s ON s.employee_id = e.id
    ORDER BY d.name, e.last_name, e.first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentRow
	for rows.Next() {
		var row DepartmentRow
		if err := rows.Scan(
			&row.DepartmentID, &row.DepartmentName,
			&row.EmployeeID, &row.FirstName, &row.LastName, &row.Email,
			&row.RoleTitle, &row.Status, &row.Salary,
		); err != nil {
			return nil, err
		}
		row.HasEmployee = row.EmployeeID != ""
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *pgStore) SalaryRows(ctx context.Context) ([]SalaryRow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.Query(ctx, `
    SELECT s.amount, TRIM(s.currency),
           e.first_name || ' ' || e.last_name,
           d.name, r.title
    FROM salaries s
    JOIN employees e ON s.employee_id = e.id
    JOIN departments d ON e.department_id = d.id
    JOIN roles r ON e.role_id = r.id
    ORDER BY s.amount DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SalaryRow
	for rows.Next() {
		var row SalaryRow
		if err := rows.Scan(&row.Amount, &row.Currency, &row.EmployeeName, &row.Department, &row.Role); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
