package org

import "time"

type Department struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	EmployeeCount int       `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// JobRole is the job-title entity, unrelated to authorization roles.
type JobRole struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	EmployeeCount int       `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type DepartmentInput struct {
	Name        string
	Description string
}

type JobRoleInput struct {
	Title       string
	Description string
}
