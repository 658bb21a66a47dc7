package employeehandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"ems/internal/auth"
	"ems/internal/config"
	"ems/internal/domain/employee"
	"ems/internal/transport/http/middleware"
)

type fakeEmployeeStore struct {
	employees   map[string]employee.Employee
	salaries    map[string]employee.SalaryInput
	departments map[string]bool
	roles       map[string]bool
	nextID      int
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{
		employees:   map[string]employee.Employee{},
		salaries:    map[string]employee.SalaryInput{},
		departments: map[string]bool{"dep-1": true},
		roles:       map[string]bool{"role-1": true},
	}
}

func (f *fakeEmployeeStore) List(_ context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(f.employees))
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeEmployeeStore) GetByID(_ context.Context, id string) (*employee.Employee, error) {
	if emp, ok := f.employees[id]; ok {
		return &emp, nil
	}
	return nil, employee.ErrNotFound
}

func (f *fakeEmployeeStore) EmailInUse(_ context.Context, email, excludeID string) (bool, error) {
	for id, emp := range f.employees {
		if emp.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeStore) DepartmentExists(_ context.Context, id string) (bool, error) {
	return f.departments[id], nil
}

func (f *fakeEmployeeStore) RoleExists(_ context.Context, id string) (bool, error) {
	return f.roles[id], nil
}

func (f *fakeEmployeeStore) Insert(_ context.Context, emp employee.Employee) (string, error) {
	f.nextID++
	emp.ID = "emp-" + strconv.Itoa(f.nextID)
	f.employees[emp.ID] = emp
	return emp.ID, nil
}

func (f *fakeEmployeeStore) Update(_ context.Context, emp employee.Employee) error {
	if _, ok := f.employees[emp.ID]; !ok {
		return employee.ErrNotFound
	}
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return employee.ErrNotFound
	}
	delete(f.employees, id)
	delete(f.salaries, id)
	return nil
}

func (f *fakeEmployeeStore) UpsertSalary(_ context.Context, employeeID string, in employee.SalaryInput) error {
	f.salaries[employeeID] = in
	return nil
}

const testSecret = "test-secret"

func newEmployeeRouter(store employee.Store) chi.Router {
	cfg := config.Config{JWTSecret: testSecret, TokenTTL: time.Hour, Environment: "test"}
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(testSecret))
	NewHandler(employee.NewService(store), cfg).RegisterRoutes(router)
	return router
}

func bearerToken(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", Email: "actor@example.com", Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return "Bearer " + token
}

func TestListRequiresAuth(t *testing.T) {
	router := newEmployeeRouter(newFakeEmployeeStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreateForbiddenForEmployeeRole(t *testing.T) {
	router := newEmployeeRouter(newFakeEmployeeStore())

	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{}`))
	req.Header.Set("Authorization", bearerToken(t, auth.RoleEmployee))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestCreateEmployee(t *testing.T) {
	store := newFakeEmployeeStore()
	router := newEmployeeRouter(store)

	body := `{
		"firstName": "Jane",
		"lastName": "Doe",
		"email": "jane@example.com",
		"departmentId": "dep-1",
		"roleId": "role-1",
		"salary": {"amount": 85000, "currency": "USD"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, auth.RoleHR))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(store.employees) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(store.employees))
	}
	if len(store.salaries) != 1 {
		t.Fatal("expected a salary record")
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	router := newEmployeeRouter(newFakeEmployeeStore())

	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"firstName":"Jane"}`))
	req.Header.Set("Authorization", bearerToken(t, auth.RoleHR))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields []struct {
					Field string `json:"field"`
				} `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Code != "validation_error" || len(env.Error.Details.Fields) == 0 {
		t.Fatalf("unexpected error payload: %s", rec.Body.String())
	}
}

func TestCreateEmployeeUnknownDepartment(t *testing.T) {
	router := newEmployeeRouter(newFakeEmployeeStore())

	body := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","departmentId":"ghost","roleId":"role-1"}`
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, auth.RoleHR))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "department_not_found") {
		t.Fatalf("unexpected error payload: %s", rec.Body.String())
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	router := newEmployeeRouter(newFakeEmployeeStore())

	req := httptest.NewRequest(http.MethodGet, "/employees/ghost", nil)
	req.Header.Set("Authorization", bearerToken(t, auth.RoleEmployee))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteRequiresManagingRole(t *testing.T) {
	store := newFakeEmployeeStore()
	store.employees["emp-1"] = employee.Employee{ID: "emp-1", Email: "jane@example.com"}
	router := newEmployeeRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/employees/emp-1", nil)
	req.Header.Set("Authorization", bearerToken(t, auth.RoleEmployee))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/employees/emp-1", nil)
	req.Header.Set("Authorization", bearerToken(t, auth.RoleHR))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(store.employees) != 0 {
		t.Fatal("employee should be deleted")
	}
}
