package repository

import (
	"errors"

	"github.com/avtonomer/platemarket/app/models"
	"gorm.io/gorm"
)

// ErrPlateNotFound is returned by like operations when the referenced
// listing does not exist.
var ErrPlateNotFound = errors.New("license plate not found")

// likeRepository implements the LikeRepository interface
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository instance
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle creates the like row when absent and deletes it when present,
// returning the new state and the plate's total like count.
func (r *likeRepository) Toggle(userID, plateID uint) (bool, int64, error) {
	var liked bool
	var total int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.LicensePlate{}).Where("id = ?", plateID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrPlateNotFound
		}

		var like models.PlateLike
		result := tx.Where("user_id = ? AND plate_id = ?", userID, plateID).First(&like)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return result.Error
			}
			newLike := models.PlateLike{UserID: userID, PlateID: plateID}
			if err := tx.Create(&newLike).Error; err != nil {
				return err
			}
			liked = true
		} else {
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			liked = false
		}

		return tx.Model(&models.PlateLike{}).Where("plate_id = ?", plateID).Count(&total).Error
	})
	if err != nil {
		return false, 0, err
	}

	return liked, total, nil
}

// IsLiked reports whether the user has an active like for the plate
func (r *likeRepository) IsLiked(userID, plateID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PlateLike{}).
		Where("user_id = ? AND plate_id = ?", userID, plateID).
		Count(&count).Error
	return count > 0, err
}

// CountForPlate returns the total number of likes for the plate
func (r *likeRepository) CountForPlate(plateID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PlateLike{}).
		Where("plate_id = ?", plateID).
		Count(&count).Error
	return count, err
}
