package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ems/internal/auth"
	"ems/internal/config"
	"ems/internal/domain/employee"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Service
	Cfg       config.Config
}

func NewHandler(employees *employee.Service, cfg config.Config) *Handler {
	return &Handler{Employees: employees, Cfg: cfg}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Delete("/{employeeID}", h.handleDelete)
	})
}

type salaryPayload struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	EffectiveDate string  `json:"effectiveDate"`
}

type employeePayload struct {
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	HireDate     string         `json:"hireDate"`
	DepartmentID string         `json:"departmentId"`
	RoleID       string         `json:"roleId"`
	Status       string         `json:"status"`
	Salary       *salaryPayload `json:"salary"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	employees, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", serverMessage(h.Cfg, err, "failed to list employees"), reqID)
		return
	}
	api.SuccessWithCount(w, employees, len(employees), reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	emp, err := h.Employees.GetByID(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", serverMessage(h.Cfg, err, "failed to load employee"), reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "firstName is required")
	v.Required("lastName", payload.LastName, "lastName is required")
	v.Required("email", payload.Email, "email is required")
	v.Email("email", payload.Email)
	v.Phone("phone", payload.Phone)
	v.Required("departmentId", payload.DepartmentID, "departmentId is required")
	v.Required("roleId", payload.RoleID, "roleId is required")
	v.Enum("status", payload.Status, employee.Statuses, "must be active or inactive")

	var hireDate *time.Time
	if payload.HireDate != "" {
		if parsed, ok := v.Date("hireDate", payload.HireDate); ok {
			hireDate = &parsed
		}
	}
	salary := validateSalary(v, payload.Salary)
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Employees.Create(r.Context(), employee.CreateInput{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		HireDate:     hireDate,
		DepartmentID: payload.DepartmentID,
		RoleID:       payload.RoleID,
		Status:       payload.Status,
		Salary:       salary,
	})
	if err != nil {
		h.failWrite(w, err, reqID)
		return
	}
	api.Created(w, emp, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Email("email", payload.Email)
	v.Phone("phone", payload.Phone)
	v.Enum("status", payload.Status, employee.Statuses, "must be active or inactive")

	var hireDate *time.Time
	if payload.HireDate != "" {
		if parsed, ok := v.Date("hireDate", payload.HireDate); ok {
			hireDate = &parsed
		}
	}
	salary := validateSalary(v, payload.Salary)
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Employees.Update(r.Context(), chi.URLParam(r, "employeeID"), employee.UpdateInput{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		HireDate:     hireDate,
		DepartmentID: payload.DepartmentID,
		RoleID:       payload.RoleID,
		Status:       payload.Status,
		Salary:       salary,
	})
	if err != nil {
		h.failWrite(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Employees.Delete(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", serverMessage(h.Cfg, err, "failed to delete employee"), reqID)
		return
	}
	api.SuccessWithMessage(w, "employee deleted", nil, reqID)
}

func validateSalary(v *shared.Validator, payload *salaryPayload) *employee.SalaryInput {
	if payload == nil {
		return nil
	}

	v.Amount("salary.amount", payload.Amount)
	v.Currency("salary.currency", payload.Currency)

	in := &employee.SalaryInput{
		Amount:   payload.Amount,
		Currency: payload.Currency,
	}
	if payload.EffectiveDate != "" {
		if parsed, ok := v.Date("salary.effectiveDate", payload.EffectiveDate); ok {
			in.EffectiveDate = &parsed
		}
	}
	return in
}

func (h *Handler) failWrite(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
	case errors.Is(err, employee.ErrDuplicateEmail):
		api.Fail(w, http.StatusBadRequest, "email_taken", "an employee with this email already exists", reqID)
	case errors.Is(err, employee.ErrDepartmentNotFound):
		api.Fail(w, http.StatusBadRequest, "department_not_found", "department does not exist", reqID)
	case errors.Is(err, employee.ErrRoleNotFound):
		api.Fail(w, http.StatusBadRequest, "role_not_found", "role does not exist", reqID)
	case errors.Is(err, employee.ErrPartialWrite):
		api.Fail(w, http.StatusInternalServerError, "salary_write_failed", "employee saved but salary update failed", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "employee_write_failed", serverMessage(h.Cfg, err, "failed to save employee"), reqID)
	}
}

func serverMessage(cfg config.Config, err error, fallback string) string {
	if cfg.Production() {
		return fallback
	}
	return err.Error()
}
