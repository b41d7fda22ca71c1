package repository

import (
	"github.com/avtonomer/platemarket/app/models"
	"gorm.io/gorm"
)

// priceHistoryRepository implements the PriceHistoryRepository interface
type priceHistoryRepository struct {
	db *gorm.DB
}

// NewPriceHistoryRepository creates a new price history repository instance
func NewPriceHistoryRepository(db *gorm.DB) PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

// Create appends a price history entry
func (r *priceHistoryRepository) Create(entry *models.PriceHistoryEntry) error {
	return r.db.Create(entry).Error
}

// GetByPlateID returns the price log of a listing, oldest entry first
func (r *priceHistoryRepository) GetByPlateID(plateID uint) ([]models.PriceHistoryEntry, error) {
	var entries []models.PriceHistoryEntry
	err := r.db.Where("plate_id = ?", plateID).Order("recorded_at ASC").Find(&entries).Error
	return entries, err
}

// CountByPlateID returns the number of price log entries for a listing
func (r *priceHistoryRepository) CountByPlateID(plateID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PriceHistoryEntry{}).Where("plate_id = ?", plateID).Count(&count).Error
	return count, err
}
