package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"kycboard/internal/api/handlers"
	"kycboard/internal/auth"
	"kycboard/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(sessions *auth.SessionManager, users services.UserServiceProvider, images services.ImageServiceProvider, maxBodyBytes int64) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(limitBody(maxBodyBytes))
	r.Use(sessions.Middleware(users))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users, sessions)
	dashboardHandler := handlers.NewDashboardHandler(users, images, sessions)
	uploadHandler := handlers.NewUploadHandler(images, sessions)
	adminHandler := handlers.NewAdminHandler(images, sessions)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	r.Get("/register", authHandler.ShowRegister)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.ShowLogin)
	r.Post("/login", authHandler.Login)

	// Everything below requires an authenticated session.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireLogin)
		r.Get("/logout", authHandler.Logout)
		r.Get("/dashboard", dashboardHandler.Show)
		r.Post("/upload", uploadHandler.Upload)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/admin/user/{userID}", adminHandler.ViewUser)
		r.Get("/admin/update_status/{imageID}/{status}", adminHandler.UpdateStatus)
	})

	return r
}

// limitBody caps how much of a request body a handler can read.
func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
