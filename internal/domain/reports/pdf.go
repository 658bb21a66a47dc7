package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// DepartmentReportPDF renders the department report as a PDF document.
func (s *Service) DepartmentReportPDF(ctx context.Context) ([]byte, error) {
	report, err := s.DepartmentReport(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Department Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated "+time.Now().Format("2006-01-02"))
	pdf.Ln(10)

	for _, dept := range report {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, dept.DepartmentName)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Employees: %d (active: %d)", dept.TotalEmployees, dept.ActiveEmployees))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Total salary: %.2f", dept.TotalSalary))
		pdf.Ln(7)

		for _, emp := range dept.Employees {
			line := fmt.Sprintf("  %s - %s (%s)", emp.Name, emp.Role, emp.Status)
			if emp.Salary != nil {
				line += fmt.Sprintf(" %.2f", *emp.Salary)
			}
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	return renderPDF(pdf)
}

// SalaryReportPDF renders the salary statistics report as a PDF document.
func (s *Service) SalaryReportPDF(ctx context.Context) ([]byte, error) {
	report, err := s.SalaryReport(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated "+time.Now().Format("2006-01-02"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	stats := report.Statistics
	pdf.Cell(0, 6, fmt.Sprintf("Salaries: %d", stats.Count))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %.2f", stats.Total))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Average: %.2f", stats.Average))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Highest: %.2f   Lowest: %.2f", stats.Highest, stats.Lowest))
	pdf.Ln(10)

	for _, line := range report.Salaries {
		pdf.Cell(0, 6, fmt.Sprintf("%s - %s / %s: %.2f %s", line.EmployeeName, line.Department, line.Role, line.Amount, line.Currency))
		pdf.Ln(6)
	}

	return renderPDF(pdf)
}

func renderPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
