package handler

import (
	"net/http"

	"github.com/Aakib-hotelwala/Job-Tracker/internal/service"
	"github.com/Aakib-hotelwala/Job-Tracker/internal/web"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, jobs *service.JobService, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	jobHandler := NewJobHandler(jobs)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	mux.Handle("POST /jobs", RequireAuth(auth, http.HandlerFunc(jobHandler.HandleCreate)))
	mux.Handle("GET /jobs", RequireAuth(auth, http.HandlerFunc(jobHandler.HandleList)))
	mux.Handle("GET /jobs/stats", RequireAuth(auth, http.HandlerFunc(jobHandler.HandleStats)))
	mux.Handle("GET /jobs/{id}", RequireAuth(auth, http.HandlerFunc(jobHandler.HandleGet)))
	mux.Handle("PUT /jobs/{id}", RequireAuth(auth, http.HandlerFunc(jobHandler.HandleUpdate)))
	mux.Handle("DELETE /jobs/{id}", RequireAuth(auth, http.HandlerFunc(jobHandler.HandleDelete)))

	// The embedded single-page front end serves everything else.
	mux.Handle("GET /", web.Handler())
}
