package employee

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var Statuses = []string{StatusActive, StatusInactive}

type Employee struct {
	ID           string         `json:"id"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	HireDate     time.Time      `json:"hireDate"`
	DepartmentID string         `json:"departmentId"`
	RoleID       string         `json:"roleId"`
	Status       string         `json:"status"`
	Department   *DepartmentRef `json:"department,omitempty"`
	Role         *RoleRef       `json:"role,omitempty"`
	Salary       *Salary        `json:"salary,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// DepartmentRef and RoleRef are the joined parent records as they appear
// inside an employee payload.
type DepartmentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoleRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Salary is the employee's single optional salary record.
type Salary struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	EffectiveDate time.Time `json:"effectiveDate"`
}

type SalaryInput struct {
	Amount        float64
	Currency      string
	EffectiveDate *time.Time
}

type CreateInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	HireDate     *time.Time
	DepartmentID string
	RoleID       string
	Status       string
	Salary       *SalaryInput
}

// UpdateInput carries partial semantics: zero-value fields keep the stored
// value, matching the original system's merge-on-update behavior.
type UpdateInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	HireDate     *time.Time
	DepartmentID string
	RoleID       string
	Status       string
	Salary       *SalaryInput
}
