package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"kycboard/internal/auth"
	"kycboard/internal/services"
)

// uploadMemoryLimit is how much of a multipart body is held in memory before
// spilling to temp files. The overall body size cap is enforced upstream.
const uploadMemoryLimit = 10 << 20

// UploadHandler receives multipart image uploads.
type UploadHandler struct {
	images   services.ImageServiceProvider
	sessions *auth.SessionManager
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(images services.ImageServiceProvider, sessions *auth.SessionManager) *UploadHandler {
	return &UploadHandler{images: images, sessions: sessions}
}

// Upload stores every file sent under the "images" field. The whole batch is
// rejected when it would push the user past the image quota.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.sessions.Flash(w, r, "No file part")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		h.sessions.Flash(w, r, "No file part")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if _, err := h.images.SaveUploads(user.ID, files); err != nil {
		if errors.Is(err, services.ErrQuotaExceeded) {
			h.sessions.Flash(w, r, "You can upload only up to 100 images!")
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to store upload batch")
		http.Error(w, "Failed to store uploads", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(w, r, "Images uploaded successfully!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
