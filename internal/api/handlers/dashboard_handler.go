package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"kycboard/internal/auth"
	"kycboard/internal/services"
)

// DashboardHandler serves the role-branched dashboard view.
type DashboardHandler struct {
	users    services.UserServiceProvider
	images   services.ImageServiceProvider
	sessions *auth.SessionManager
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(users services.UserServiceProvider, images services.ImageServiceProvider, sessions *auth.SessionManager) *DashboardHandler {
	return &DashboardHandler{users: users, images: images, sessions: sessions}
}

// Show returns the admin's user list, or the user's own images and bank
// details. Pure read, no side effects beyond consuming flashes.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())
	notices := h.sessions.TakeFlashes(w, r)

	if user.IsAdmin {
		users, err := h.users.ListNonAdminUsers()
		if err != nil {
			log.Error().Err(err).Msg("Failed to list users for admin dashboard")
			http.Error(w, "Failed to retrieve users", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"role":    "admin",
			"users":   users,
			"notices": notices,
		})
		return
	}

	images, err := h.images.GetImagesForUser(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list images for dashboard")
		http.Error(w, "Failed to retrieve images", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"role":          "user",
		"images":        images,
		"accountNumber": user.AccountNumber,
		"ifscCode":      user.IFSCCode,
		"bankName":      user.BankName,
		"notices":       notices,
	})
}
