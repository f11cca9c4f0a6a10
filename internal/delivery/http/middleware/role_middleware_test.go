package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-management-server/internal/domain/entity"
)

func requestWithRole(roleID int) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(r.Context(), RoleIDKey, roleID)
	return r.WithContext(ctx)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	called := false
	h := RequireRole(entity.RoleIDAdmin, entity.RoleIDDoctor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, requestWithRole(entity.RoleIDDoctor))

	if !called {
		t.Fatal("expected handler to run for an allowed role")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRequireRole_ForbidsOtherRoles(t *testing.T) {
	h := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a forbidden role")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, requestWithRole(entity.RoleIDPatient))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestRequireRole_UnauthorizedWithoutContext(t *testing.T) {
	h := RequirePatient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without role context")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
