package http

import (
	"net/http"

	"hospital-management-server/internal/delivery/http/handler"
	"hospital-management-server/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	appointmentHandler   *handler.AppointmentHandler
	doctorHandler        *handler.DoctorHandler
	patientHandler       *handler.PatientHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	invoiceHandler       *handler.InvoiceHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	loggingMiddleware    *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	invoiceHandler *handler.InvoiceHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		appointmentHandler:   appointmentHandler,
		doctorHandler:        doctorHandler,
		patientHandler:       patientHandler,
		medicalRecordHandler: medicalRecordHandler,
		invoiceHandler:       invoiceHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
		loggingMiddleware:    loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/change-password", r.authHandler.ChangePassword).Methods(http.MethodPut)

	// Doctor directory (protected, any role)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("", r.doctorHandler.List).Methods(http.MethodGet)
	doctors.HandleFunc("/me", r.doctorHandler.UpdateOwnProfile).Methods(http.MethodPut)
	doctors.HandleFunc("/{id}", r.doctorHandler.GetByID).Methods(http.MethodGet)

	departments := api.PathPrefix("/departments").Subrouter()
	departments.Use(r.authMiddleware.Authenticate)
	departments.HandleFunc("", r.doctorHandler.ListDepartments).Methods(http.MethodGet)

	// Appointments (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)

	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	appointments.HandleFunc("/candidate-dates", r.appointmentHandler.GetCandidateDates).Methods(http.MethodGet)
	appointments.HandleFunc("/available-slots/{doctorId}", r.appointmentHandler.GetAvailableSlots).Methods(http.MethodGet)
	appointments.HandleFunc("/check-availability", r.appointmentHandler.CheckAvailability).Methods(http.MethodPost)
	appointments.Handle("", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.Book))).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/reschedule", r.appointmentHandler.Reschedule).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPut)
	appointments.Handle("/{id}/complete", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.appointmentHandler.Complete))).Methods(http.MethodPut)
	appointments.Handle("/{id}/no-show", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.appointmentHandler.MarkNoShow))).Methods(http.MethodPut)

	// Patient profile (protected - patient only)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequirePatient)
	patients.HandleFunc("/me", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patients.HandleFunc("/me", r.patientHandler.UpdateProfile).Methods(http.MethodPut)

	// Medical records (protected)
	records := api.PathPrefix("/medical-records").Subrouter()
	records.Use(r.authMiddleware.Authenticate)
	records.Handle("", middleware.RequireDoctor(http.HandlerFunc(r.medicalRecordHandler.Create))).Methods(http.MethodPost)
	records.HandleFunc("", r.medicalRecordHandler.List).Methods(http.MethodGet)
	records.Handle("/patient/{patientId}", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.medicalRecordHandler.ListForPatient))).Methods(http.MethodGet)
	records.HandleFunc("/{id}", r.medicalRecordHandler.GetByID).Methods(http.MethodGet)
	records.Handle("/{id}", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.medicalRecordHandler.Update))).Methods(http.MethodPut)
	records.Handle("/{id}", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.medicalRecordHandler.Delete))).Methods(http.MethodDelete)

	// Invoices (protected)
	invoices := api.PathPrefix("/invoices").Subrouter()
	invoices.Use(r.authMiddleware.Authenticate)
	invoices.Use(middleware.RequireAdminOrPatient)
	invoices.HandleFunc("", r.invoiceHandler.List).Methods(http.MethodGet)
	invoices.HandleFunc("/{id}", r.invoiceHandler.GetByID).Methods(http.MethodGet)
	invoices.Handle("/{id}/pay", middleware.RequirePatient(http.HandlerFunc(r.invoiceHandler.Pay))).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateByID).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Deactivate).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
