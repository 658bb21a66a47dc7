package reports

import (
	"context"

	"ems/internal/domain/employee"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// DepartmentReport groups employees per department. Departments with no
// employees report zero counts and zero total salary; an employee without
// a salary contributes 0.
func (s *Service) DepartmentReport(ctx context.Context) ([]DepartmentReport, error) {
	rows, err := s.store.DepartmentRows(ctx)
	if err != nil {
		return nil, err
	}
	return buildDepartmentReport(rows), nil
}

func (s *Service) SalaryReport(ctx context.Context) (*SalaryReport, error) {
	rows, err := s.store.SalaryRows(ctx)
	if err != nil {
		return nil, err
	}

	report := &SalaryReport{
		Statistics: computeStatistics(rows),
		Salaries:   make([]SalaryLine, 0, len(rows)),
	}
	for _, row := range rows {
		report.Salaries = append(report.Salaries, SalaryLine{
			EmployeeName: row.EmployeeName,
			Department:   row.Department,
			Role:         row.Role,
			Amount:       row.Amount,
			Currency:     row.Currency,
		})
	}
	return report, nil
}

func buildDepartmentReport(rows []DepartmentRow) []DepartmentReport {
	report := make([]DepartmentReport, 0)
	index := make(map[string]int)

	for _, row := range rows {
		pos, ok := index[row.DepartmentID]
		if !ok {
			pos = len(report)
			index[row.DepartmentID] = pos
			report = append(report, DepartmentReport{
				DepartmentID:   row.DepartmentID,
				DepartmentName: row.DepartmentName,
				Employees:      make([]DepartmentEmployee, 0),
			})
		}
		if !row.HasEmployee {
			continue
		}

		dept := &report[pos]
		dept.TotalEmployees++
		if row.Status == employee.StatusActive {
			dept.ActiveEmployees++
		}
		if row.Salary != nil {
			dept.TotalSalary += *row.Salary
		}
		dept.Employees = append(dept.Employees, DepartmentEmployee{
			ID:     row.EmployeeID,
			Name:   row.FirstName + " " + row.LastName,
			Email:  row.Email,
			Role:   row.RoleTitle,
			Salary: row.Salary,
			Status: row.Status,
		})
	}
	return report
}

// computeStatistics defines mean, max, and min as 0 over an empty set.
func computeStatistics(rows []SalaryRow) SalaryStatistics {
	stats := SalaryStatistics{Count: len(rows)}
	if len(rows) == 0 {
		return stats
	}

	stats.Highest = rows[0].Amount
	stats.Lowest = rows[0].Amount
	for _, row := range rows {
		stats.Total += row.Amount
		if row.Amount > stats.Highest {
			stats.Highest = row.Amount
		}
		if row.Amount < stats.Lowest {
			stats.Lowest = row.Amount
		}
	}
	stats.Average = stats.Total / float64(len(rows))
	return stats
}
