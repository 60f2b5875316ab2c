package models

import "time"

// Review states for an uploaded image. Every image starts out pending and is
// only moved by an admin action.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// ValidStatus reports whether s is one of the recognized review states.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusDenied
}

// Image represents one uploaded file and its review state. The file itself
// lives in the upload directory under Filename.
type Image struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
