package repository

import (
	"time"

	"github.com/avtonomer/platemarket/app/models"
	"gorm.io/gorm"
)

// topRatingRepository implements the TopRatingRepository interface
type topRatingRepository struct {
	db *gorm.DB
}

// NewTopRatingRepository creates a new top rating repository instance
func NewTopRatingRepository(db *gorm.DB) TopRatingRepository {
	return &topRatingRepository{db: db}
}

// Create stores a promotional rating
func (r *topRatingRepository) Create(rating *models.TopRating) error {
	return r.db.Create(rating).Error
}

// GetActiveByPlateID returns the not-yet-expired ratings of a listing
func (r *topRatingRepository) GetActiveByPlateID(plateID uint) ([]models.TopRating, error) {
	var ratings []models.TopRating
	err := r.db.
		Where("plate_id = ? AND valid_until > ?", plateID, time.Now()).
		Order("points DESC").
		Find(&ratings).Error
	return ratings, err
}
