package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"kycboard/internal/auth"
	"kycboard/internal/services"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	users    services.UserServiceProvider
	sessions *auth.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// ShowRegister serves the registration form view.
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"page":    "register",
		"fields":  []string{"name", "mobile", "account_number", "ifsc_code", "bank_name", "password"},
		"notices": h.sessions.TakeFlashes(w, r),
	})
}

// Register handles new account creation. A duplicate mobile number redisplays
// the form with a notice instead of creating a second row.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	mobile := r.FormValue("mobile")
	accountNumber := r.FormValue("account_number")
	ifscCode := r.FormValue("ifsc_code")
	bankName := r.FormValue("bank_name")
	password := r.FormValue("password")

	_, err := h.users.Register(name, mobile, accountNumber, ifscCode, bankName, password)
	if err != nil {
		if errors.Is(err, services.ErrMobileTaken) {
			h.sessions.Flash(w, r, "Mobile number already registered!")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		log.Error().Err(err).Str("mobile", mobile).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(w, r, "Registered successfully! Please login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowLogin serves the login form view.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"page":    "login",
		"fields":  []string{"mobile", "password"},
		"notices": h.sessions.TakeFlashes(w, r),
	})
}

// Login authenticates a user and establishes a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	mobile := r.FormValue("mobile")
	password := r.FormValue("password")

	user, err := h.users.Authenticate(mobile, password)
	if err != nil {
		log.Warn().Str("mobile", mobile).Msg("Failed authentication attempt")
		h.sessions.Flash(w, r, "Invalid mobile number or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.sessions.SignIn(w, r, user)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout tears down the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.SignOut(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
