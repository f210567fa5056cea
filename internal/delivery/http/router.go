package http

import (
	"net/http"

	"telesalud-admin/internal/delivery/http/handler"
	"telesalud-admin/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	patientHandler    *handler.PatientHandler
	equipmentHandler  *handler.EquipmentHandler
	assignmentHandler *handler.AssignmentHandler
	authMiddleware    *middleware.AuthMiddleware
	sessionMiddleware *middleware.SessionMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	equipmentHandler *handler.EquipmentHandler,
	assignmentHandler *handler.AssignmentHandler,
	authMiddleware *middleware.AuthMiddleware,
	sessionMiddleware *middleware.SessionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		patientHandler:    patientHandler,
		equipmentHandler:  equipmentHandler,
		assignmentHandler: assignmentHandler,
		authMiddleware:    authMiddleware,
		sessionMiddleware: sessionMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/oauth/{provider}", r.authHandler.OAuth).Methods(http.MethodGet)
	auth.HandleFunc("/session", r.authHandler.Session).Methods(http.MethodPost)
	auth.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Admin routes (signed-in users only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.RequireUser)

	// Patients
	admin.HandleFunc("/pacientes/edit-target", r.patientHandler.GetEditTarget).Methods(http.MethodGet)
	admin.HandleFunc("/pacientes/edit-target", r.patientHandler.SetEditTarget).Methods(http.MethodPut)
	admin.HandleFunc("/pacientes/edit-target", r.patientHandler.ResetEditTarget).Methods(http.MethodDelete)
	admin.HandleFunc("/pacientes/edit-target/submit", r.patientHandler.SubmitEditTarget).Methods(http.MethodPost)
	admin.HandleFunc("/pacientes/dni/{dni}", r.patientHandler.LookupDNI).Methods(http.MethodGet)
	admin.HandleFunc("/pacientes", r.patientHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/pacientes", r.patientHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/pacientes/{id:[0-9]+}", r.patientHandler.Update).Methods(http.MethodPut)

	// Equipment
	admin.HandleFunc("/equipos/edit-target", r.equipmentHandler.GetEditTarget).Methods(http.MethodGet)
	admin.HandleFunc("/equipos/edit-target", r.equipmentHandler.SetEditTarget).Methods(http.MethodPut)
	admin.HandleFunc("/equipos/edit-target", r.equipmentHandler.ResetEditTarget).Methods(http.MethodDelete)
	admin.HandleFunc("/equipos/edit-target/submit", r.equipmentHandler.SubmitEditTarget).Methods(http.MethodPost)
	admin.HandleFunc("/equipos", r.equipmentHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/equipos", r.equipmentHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/equipos/{id:[0-9]+}", r.equipmentHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/tipos-equipo", r.equipmentHandler.ListTypes).Methods(http.MethodGet)

	// Assignments
	admin.HandleFunc("/asignaciones", r.assignmentHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/asignaciones", r.assignmentHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/asignaciones/{id:[0-9]+}", r.assignmentHandler.Update).Methods(http.MethodPut)

	// Preflight for every path; the CORS middleware answers it
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {})

	// Outermost first: access log, CORS, then the session cookie
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.sessionMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
