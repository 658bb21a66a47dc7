package orghandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"ems/internal/auth"
	"ems/internal/config"
	"ems/internal/domain/org"
	"ems/internal/transport/http/middleware"
)

type fakeOrgStore struct {
	departments map[string]org.Department
	roles       map[string]org.JobRole
	headcount   map[string]int
	nextID      int
}

func newFakeOrgStore() *fakeOrgStore {
	return &fakeOrgStore{
		departments: map[string]org.Department{},
		roles:       map[string]org.JobRole{},
		headcount:   map[string]int{},
	}
}

func (f *fakeOrgStore) ListDepartments(_ context.Context) ([]org.Department, error) {
	out := make([]org.Department, 0, len(f.departments))
	for _, dept := range f.departments {
		out = append(out, dept)
	}
	return out, nil
}

func (f *fakeOrgStore) GetDepartment(_ context.Context, id string) (*org.Department, error) {
	if dept, ok := f.departments[id]; ok {
		return &dept, nil
	}
	return nil, org.ErrNotFound
}

func (f *fakeOrgStore) InsertDepartment(_ context.Context, in org.DepartmentInput) (string, error) {
	f.nextID++
	id := "dep-" + strconv.Itoa(f.nextID)
	f.departments[id] = org.Department{ID: id, Name: in.Name, Description: in.Description}
	return id, nil
}

func (f *fakeOrgStore) UpdateDepartment(_ context.Context, id string, in org.DepartmentInput) error {
	dept, ok := f.departments[id]
	if !ok {
		return org.ErrNotFound
	}
	dept.Name = in.Name
	dept.Description = in.Description
	f.departments[id] = dept
	return nil
}

func (f *fakeOrgStore) DeleteDepartment(_ context.Context, id string) error {
	if _, ok := f.departments[id]; !ok {
		return org.ErrNotFound
	}
	delete(f.departments, id)
	return nil
}

func (f *fakeOrgStore) DepartmentNameInUse(_ context.Context, name, excludeID string) (bool, error) {
	for id, dept := range f.departments {
		if dept.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrgStore) DepartmentEmployeeCount(_ context.Context, id string) (int, error) {
	return f.headcount[id], nil
}

func (f *fakeOrgStore) ListJobRoles(_ context.Context) ([]org.JobRole, error) {
	out := make([]org.JobRole, 0, len(f.roles))
	for _, role := range f.roles {
		out = append(out, role)
	}
	return out, nil
}

func (f *fakeOrgStore) GetJobRole(_ context.Context, id string) (*org.JobRole, error) {
	if role, ok := f.roles[id]; ok {
		return &role, nil
	}
	return nil, org.ErrNotFound
}

func (f *fakeOrgStore) InsertJobRole(_ context.Context, in org.JobRoleInput) (string, error) {
	f.nextID++
	id := "role-" + strconv.Itoa(f.nextID)
	f.roles[id] = org.JobRole{ID: id, Title: in.Title, Description: in.Description}
	return id, nil
}

func (f *fakeOrgStore) UpdateJobRole(_ context.Context, id string, in org.JobRoleInput) error {
	role, ok := f.roles[id]
	if !ok {
		return org.ErrNotFound
	}
	role.Title = in.Title
	role.Description = in.Description
	f.roles[id] = role
	return nil
}

func (f *fakeOrgStore) DeleteJobRole(_ context.Context, id string) error {
	if _, ok := f.roles[id]; !ok {
		return org.ErrNotFound
	}
	delete(f.roles, id)
	return nil
}

func (f *fakeOrgStore) JobRoleTitleInUse(_ context.Context, title, excludeID string) (bool, error) {
	for id, role := range f.roles {
		if role.Title == title && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrgStore) JobRoleEmployeeCount(_ context.Context, id string) (int, error) {
	return f.headcount[id], nil
}

const testSecret = "test-secret"

func newOrgRouter(store org.Store) chi.Router {
	cfg := config.Config{JWTSecret: testSecret, TokenTTL: time.Hour, Environment: "test"}
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(testSecret))
	NewHandler(org.NewService(store), cfg).RegisterRoutes(router)
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

func TestCreateDepartment(t *testing.T) {
	store := newFakeOrgStore()
	router := newOrgRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"Engineering"}`))
	req.Header.Set("Authorization", bearerToken(t, auth.RoleHR))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(store.departments) != 1 {
		t.Fatalf("expected 1 department, got %d", len(store.departments))
	}
}

func TestCreateDepartmentDuplicateName(t *testing.T) {
	store := newFakeOrgStore()
	store.departments["dep-0"] = org.Department{ID: "dep-0", Name: "Engineering"}
	router := newOrgRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"Engineering"}`))
	req.Header.Set("Authorization", bearerToken(t, auth.RoleHR))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "department_name_taken") {
		t.Fatalf("unexpected error payload: %s", rec.Body.String())
	}
}

func TestDeleteDepartmentBlockedByEmployees(t *testing.T) {
	store := newFakeOrgStore()
	store.departments["dep-1"] = org.Department{ID: "dep-1", Name: "Engineering"}
	store.headcount["dep-1"] = 3
	router := newOrgRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/departments/dep-1", nil)
	req.Header.Set("Authorization", bearerToken(t, auth.RoleAdmin))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "department_in_use") {
		t.Fatalf("unexpected error payload: %s", rec.Body.String())
	}
	if _, ok := store.departments["dep-1"]; !ok {
		t.Fatal("department must not be deleted")
	}
}

func TestDeleteDepartmentForbiddenForEmployeeRole(t *testing.T) {
	store := newFakeOrgStore()
	store.departments["dep-1"] = org.Department{ID: "dep-1", Name: "Engineering"}
	router := newOrgRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/departments/dep-1", nil)
	req.Header.Set("Authorization", bearerToken(t, auth.RoleEmployee))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRoleLifecycle(t *testing.T) {
	store := newFakeOrgStore()
	router := newOrgRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/roles", strings.NewReader(`{"title":"Engineer"}`))
	req.Header.Set("Authorization", bearerToken(t, auth.RoleAdmin))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var roleID string
	for id := range store.roles {
		roleID = id
	}

	req = httptest.NewRequest(http.MethodPut, "/roles/"+roleID, strings.NewReader(`{"title":"Senior Engineer"}`))
	req.Header.Set("Authorization", bearerToken(t, auth.RoleAdmin))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/roles/"+roleID, nil)
	req.Header.Set("Authorization", bearerToken(t, auth.RoleAdmin))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(store.roles) != 0 {
		t.Fatal("role should be deleted")
	}
}

func TestRolesRequireAuth(t *testing.T) {
	router := newOrgRouter(newFakeOrgStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roles", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
