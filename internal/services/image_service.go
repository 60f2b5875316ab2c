package services

import (
	"database/sql"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"kycboard/internal/models"
)

// ImageServiceProvider defines the interface for image services.
type ImageServiceProvider interface {
	SaveUploads(userID string, files []*multipart.FileHeader) ([]models.Image, error)
	GetImagesForUser(userID string) ([]models.Image, error)
	CountImagesForUser(userID string) (int, error)
	UpdateStatus(imageID, status string) (models.Image, error)
}

// ImageService provides business logic for uploads and review decisions.
type ImageService struct {
	db         *sql.DB
	uploadDir  string
	maxPerUser int
}

// NewImageService creates a new ImageService. The upload directory is
// created on demand by SaveUploads.
func NewImageService(db *sql.DB, uploadDir string, maxPerUser int) *ImageService {
	return &ImageService{db: db, uploadDir: uploadDir, maxPerUser: maxPerUser}
}

// SaveUploads stores a batch of uploaded files and records one pending row
// per file. The batch is all-or-nothing: if the user's existing count plus
// the batch would exceed the quota, nothing is written. Files are stored
// under their original names; a repeated name overwrites the earlier file on
// disk while still creating a new row.
func (s *ImageService) SaveUploads(userID string, files []*multipart.FileHeader) ([]models.Image, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM images WHERE user_id = ?", userID).Scan(&count); err != nil {
		return nil, err
	}
	if count+len(files) > s.maxPerUser {
		return nil, ErrQuotaExceeded
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO images (id, user_id, filename) VALUES (?, ?, ?)")
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var saved []models.Image
	for _, header := range files {
		filename := filepath.Base(header.Filename)
		if err := s.writeFile(header, filename); err != nil {
			return nil, fmt.Errorf("could not store %s: %w", filename, err)
		}

		img := models.Image{
			ID:       uuid.New().String(),
			UserID:   userID,
			Filename: filename,
			Status:   models.StatusPending,
		}
		if _, err := stmt.Exec(img.ID, img.UserID, img.Filename); err != nil {
			return nil, err
		}
		saved = append(saved, img)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *ImageService) writeFile(header *multipart.FileHeader, filename string) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// GetImagesForUser retrieves all images owned by the given user. An unknown
// user id yields an empty list, not an error.
func (s *ImageService) GetImagesForUser(userID string) ([]models.Image, error) {
	rows, err := s.db.Query("SELECT id, user_id, filename, status, created_at FROM images WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.UserID, &img.Filename, &img.Status, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// CountImagesForUser returns how many images the user currently owns.
func (s *ImageService) CountImagesForUser(userID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM images WHERE user_id = ?", userID).Scan(&count)
	return count, err
}

// UpdateStatus sets an image's review state. Unknown ids return ErrNotFound
// and states outside the recognized set return ErrInvalidStatus; the updated
// row is returned so callers can redirect to the owner's review page.
func (s *ImageService) UpdateStatus(imageID, status string) (models.Image, error) {
	if !models.ValidStatus(status) {
		return models.Image{}, ErrInvalidStatus
	}

	var img models.Image
	row := s.db.QueryRow("SELECT id, user_id, filename, status, created_at FROM images WHERE id = ?", imageID)
	if err := row.Scan(&img.ID, &img.UserID, &img.Filename, &img.Status, &img.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return models.Image{}, ErrNotFound
		}
		return models.Image{}, err
	}

	if _, err := s.db.Exec("UPDATE images SET status = ? WHERE id = ?", status, imageID); err != nil {
		return models.Image{}, err
	}

	img.Status = status
	return img, nil
}
