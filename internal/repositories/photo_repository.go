package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mitul77/gatherly/backend/internal/models"
)

// PhotoRepository defines the interface for profile photo metadata
type PhotoRepository interface {
	CreatePhoto(photo *models.Photo) error
	GetPhotoByID(id string) (*models.Photo, error)
	GetPhotosByUserID(userID string) ([]models.Photo, error)
	SetMainPhoto(photoID, userID string) error
	DeletePhoto(id, userID string) error
}

// PostgresPhotoRepository implements PhotoRepository for PostgreSQL
type PostgresPhotoRepository struct {
	db *gorm.DB
}

// NewPostgresPhotoRepository creates a new PostgresPhotoRepository
func NewPostgresPhotoRepository(db *gorm.DB) *PostgresPhotoRepository {
	return &PostgresPhotoRepository{db: db}
}

// CreatePhoto records an uploaded photo
func (r *PostgresPhotoRepository) CreatePhoto(photo *models.Photo) error {
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	photo.CreatedAt = time.Now().UTC()
	return r.db.Create(photo).Error
}

// GetPhotoByID retrieves a photo by ID
func (r *PostgresPhotoRepository) GetPhotoByID(id string) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.First(&photo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// GetPhotosByUserID lists a user's photos, newest first
func (r *PostgresPhotoRepository) GetPhotosByUserID(userID string) ([]models.Photo, error) {
	var photos []models.Photo
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// SetMainPhoto sets the user's profile image to one of their own photos
func (r *PostgresPhotoRepository) SetMainPhoto(photoID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		if err := tx.First(&photo, "id = ? AND user_id = ?", photoID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("image_url", photo.URL).Error
	})
}

// DeletePhoto deletes a photo owned by the user
func (r *PostgresPhotoRepository) DeletePhoto(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Photo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
