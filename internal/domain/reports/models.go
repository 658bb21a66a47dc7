package reports

// DepartmentRow is one department-employee pair from the report query.
// Departments without employees appear once with HasEmployee false.
type DepartmentRow struct {
	DepartmentID   string
	DepartmentName string
	HasEmployee    bool
	EmployeeID     string
	FirstName      string
	LastName       string
	Email          string
	RoleTitle      string
	Status         string
	Salary         *float64
}

// SalaryRow is one salary record joined with its employee's department and
// role for the salary report lines.
type SalaryRow struct {
	Amount       float64
	Currency     string
	EmployeeName string
	Department   string
	Role         string
}

type DepartmentReport struct {
	DepartmentID    string               `json:"departmentId"`
	DepartmentName  string               `json:"departmentName"`
	TotalEmployees  int                  `json:"totalEmployees"`
	ActiveEmployees int                  `json:"activeEmployees"`
	TotalSalary     float64              `json:"totalSalary"`
	Employees       []DepartmentEmployee `json:"employees"`
}

type DepartmentEmployee struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   string   `json:"role"`
	Salary *float64 `json:"salary,omitempty"`
	Status string   `json:"status"`
}

type SalaryStatistics struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Highest float64 `json:"highest"`
	Lowest  float64 `json:"lowest"`
	Count   int     `json:"count"`
}

type SalaryLine struct {
	EmployeeName string  `json:"employeeName"`
	Department   string  `json:"department"`
	Role         string  `json:"role"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

type SalaryReport struct {
	Statistics SalaryStatistics `json:"statistics"`
	Salaries   []SalaryLine     `json:"salaries"`
}
