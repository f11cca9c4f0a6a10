package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-management-server/internal/delivery/http/handler"
	"hospital-management-server/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

func setupTestRouter() *mux.Router {
	r := NewRouter(
		&handler.AuthHandler{},
		&handler.AppointmentHandler{},
		&handler.DoctorHandler{},
		&handler.PatientHandler{},
		&handler.MedicalRecordHandler{},
		&handler.InvoiceHandler{},
		&handler.AuditLogHandler{},
		&middleware.AuthMiddleware{},
		&middleware.CORSMiddleware{},
		&middleware.LoggingMiddleware{},
	)
	return r.Setup()
}

func routeExists(router *mux.Router, method, path string) bool {
	var match mux.RouteMatch
	return router.Match(httptest.NewRequest(method, path, nil), &match) && match.MatchErr == nil
}

// Doctor accounts are created by admins only; the public auth surface offers
// patient registration alone.
func TestSetup_DoctorRegistrationIsAdminOnly(t *testing.T) {
	router := setupTestRouter()

	if routeExists(router, http.MethodPost, "/api/v1/auth/register/doctor") {
		t.Fatal("doctor registration must not be publicly routed")
	}
	if !routeExists(router, http.MethodPost, "/api/v1/admin/doctors") {
		t.Fatal("admin doctor creation route missing")
	}
	if !routeExists(router, http.MethodPost, "/api/v1/auth/register/patient") {
		t.Fatal("patient registration route missing")
	}
}
