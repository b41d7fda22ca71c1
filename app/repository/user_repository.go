package repository

import (
	"fmt"

	"github.com/avtonomer/platemarket/app/models"
	"gorm.io/gorm"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ConsumeFreeListing decrements the free-listing quota with a guarded
// UPDATE. Returns false when no unit was left, so two concurrent creates
// cannot drive the quota below zero.
func (r *userRepository) ConsumeFreeListing(userID uint) (bool, error) {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND remaining_free_listings > 0", userID).
		UpdateColumn("remaining_free_listings", gorm.Expr("remaining_free_listings - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetSellerStats returns the public seller summary for listing detail pages.
func (r *userRepository) GetSellerStats(userID uint) (*SellerStats, error) {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	stats := SellerStats{
		SellerID:     user.ID,
		Name:         user.Name,
		RegisteredAt: user.CreatedAt,
	}

	err := r.db.Model(&models.LicensePlate{}).
		Where("seller_id = ?", userID).
		Count(&stats.ActiveListings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count listings for seller %d: %w", userID, err)
	}

	err = r.db.Model(&models.LicensePlate{}).
		Where("seller_id = ?", userID).
		Select("COALESCE(SUM(views_count), 0)").
		Row().Scan(&stats.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("failed to sum views for seller %d: %w", userID, err)
	}

	return &stats, nil
}
