package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ems/internal/auth"
)

func authedRequest(t *testing.T, secret, role string) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", Email: "jane@example.com", Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRoleAllows(t *testing.T) {
	secret := "test-secret"
	called := false
	handler := Auth(secret)(RequireRole(auth.RoleAdmin, auth.RoleHR)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, secret, auth.RoleHR))
	if !called {
		t.Fatal("handler should have run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	secret := "test-secret"
	handler := Auth(secret)(RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, secret, auth.RoleEmployee))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleUnauthorizedWithoutUser(t *testing.T) {
	handler := RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
