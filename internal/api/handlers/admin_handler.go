package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"kycboard/internal/auth"
	"kycboard/internal/services"
)

// AdminHandler handles the review workflow: listing a user's images and
// moving them between review states.
type AdminHandler struct {
	images   services.ImageServiceProvider
	sessions *auth.SessionManager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(images services.ImageServiceProvider, sessions *auth.SessionManager) *AdminHandler {
	return &AdminHandler{images: images, sessions: sessions}
}

// ViewUser lists all images owned by the given user id. An unknown id yields
// an empty list without error.
func (h *AdminHandler) ViewUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	images, err := h.images.GetImagesForUser(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list images for review")
		http.Error(w, "Failed to retrieve images", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"userId":  userID,
		"images":  images,
		"notices": h.sessions.TakeFlashes(w, r),
	})
}

// UpdateStatus sets an image's review state and redirects back to its
// owner's review page. Unknown images get 404, unrecognized states 400.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageID")
	status := chi.URLParam(r, "status")

	img, err := h.images.UpdateStatus(imageID, status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, "Image not found", http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidStatus):
			http.Error(w, "Invalid status", http.StatusBadRequest)
		default:
			log.Error().Err(err).Str("image_id", imageID).Msg("Failed to update image status")
			http.Error(w, "Failed to update status", http.StatusInternalServerError)
		}
		return
	}

	h.sessions.Flash(w, r, fmt.Sprintf("Image %s!", status))
	http.Redirect(w, r, "/admin/user/"+img.UserID, http.StatusSeeOther)
}
