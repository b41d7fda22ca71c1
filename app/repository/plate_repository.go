package repository

import (
	"time"

	"github.com/avtonomer/platemarket/app/models"
	"gorm.io/gorm"
)

// plateRepository implements the PlateRepository interface
type plateRepository struct {
	db *gorm.DB
}

// NewPlateRepository creates a new plate repository instance
func NewPlateRepository(db *gorm.DB) PlateRepository {
	return &plateRepository{db: db}
}

// Create stores a new listing together with its first price history entry.
func (r *plateRepository) Create(plate *models.LicensePlate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plate).Error; err != nil {
			return err
		}
		entry := models.PriceHistoryEntry{
			PlateID: plate.ID,
			Price:   plate.Price,
		}
		return tx.Create(&entry).Error
	})
}

// GetByID retrieves a listing by its ID
func (r *plateRepository) GetByID(id uint) (*models.LicensePlate, error) {
	var plate models.LicensePlate
	err := r.db.First(&plate, id).Error
	if err != nil {
		return nil, err
	}
	return &plate, nil
}

// GetByIDWithRelations retrieves a listing with region, city and seller preloaded
func (r *plateRepository) GetByIDWithRelations(id uint) (*models.LicensePlate, error) {
	var plate models.LicensePlate
	err := r.db.Preload("Region").Preload("City").Preload("Seller").First(&plate, id).Error
	if err != nil {
		return nil, err
	}
	return &plate, nil
}

// GetByUserID retrieves a paginated list of listings owned by the given user
func (r *plateRepository) GetByUserID(userID uint, offset, limit int) ([]models.LicensePlate, error) {
	var plates []models.LicensePlate
	err := r.db.Where("seller_id = ?", userID).Offset(offset).Limit(limit).Find(&plates).Error
	return plates, err
}

// List returns one page of listings matching the filter and the total count
// over the same filter set. Absent filters match everything.
func (r *plateRepository) List(filter PlateFilter, offset, limit int) ([]models.LicensePlate, int64, error) {
	query := r.applyFilter(r.db.Model(&models.LicensePlate{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plates []models.LicensePlate
	err := r.applyFilter(r.db, filter).
		Preload("Region").Preload("City").Preload("Seller").
		Offset(offset).Limit(limit).
		Find(&plates).Error
	if err != nil {
		return nil, 0, err
	}

	return plates, total, nil
}

func (r *plateRepository) applyFilter(query *gorm.DB, filter PlateFilter) *gorm.DB {
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}
	if filter.RegionID != nil {
		query = query.Where("region_id = ?", *filter.RegionID)
	}
	if filter.RatingMin != nil {
		query = query.Where("rating >= ?", *filter.RatingMin)
	}
	return query
}

// GetTop returns listings with an active promotional rating, best first.
func (r *plateRepository) GetTop(limit int, regionID *uint) ([]models.LicensePlate, error) {
	query := r.db.
		Joins("JOIN top_ratings ON top_ratings.plate_id = license_plates.id").
		Where("top_ratings.valid_until > ?", time.Now()).
		Order("top_ratings.points DESC, license_plates.rating DESC").
		Preload("Region").Preload("City")
	if regionID != nil {
		query = query.Where("license_plates.region_id = ?", *regionID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var plates []models.LicensePlate
	err := query.Find(&plates).Error
	return plates, err
}

// GetLikedByUser returns a page of listings the user has liked, in storage order.
func (r *plateRepository) GetLikedByUser(userID uint, offset, limit int) ([]models.LicensePlate, error) {
	var plates []models.LicensePlate
	err := r.db.
		Joins("JOIN plate_likes ON plate_likes.plate_id = license_plates.id").
		Where("plate_likes.user_id = ?", userID).
		Offset(offset).Limit(limit).
		Find(&plates).Error
	return plates, err
}

// IncrementViews bumps the view counter with a single atomic UPDATE so
// concurrent reads cannot lose increments.
func (r *plateRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.LicensePlate{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// Update applies the changed fields and appends a price history entry when
// the price actually changed.
func (r *plateRepository) Update(plate *models.LicensePlate, update PlateUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		priceChanged := false

		if update.Number != nil {
			plate.Number = *update.Number
		}
		if update.Description != nil {
			plate.Description = *update.Description
		}
		if update.RegionID != nil {
			plate.RegionID = *update.RegionID
		}
		if update.CityID != nil {
			plate.CityID = *update.CityID
		}
		if update.Price != nil && *update.Price != plate.Price {
			plate.Price = *update.Price
			priceChanged = true
		}

		if err := tx.Save(plate).Error; err != nil {
			return err
		}

		if priceChanged {
			entry := models.PriceHistoryEntry{
				PlateID: plate.ID,
				Price:   plate.Price,
			}
			return tx.Create(&entry).Error
		}
		return nil
	})
}

// Count returns the total number of listings
func (r *plateRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.LicensePlate{}).Count(&count).Error
	return count, err
}
