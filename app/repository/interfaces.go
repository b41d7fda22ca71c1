package repository

import (
	"time"

	"github.com/avtonomer/platemarket/app/models"
	"gorm.io/gorm"
)

// PlateFilter carries the optional listing filters. A nil field means the
// filter is not applied at all, not an open range.
type PlateFilter struct {
	PriceMin  *float64
	PriceMax  *float64
	RegionID  *uint
	RatingMin *int
}

// PlateUpdate carries the mutable listing fields for a partial update.
type PlateUpdate struct {
	Number      *string
	Price       *float64
	Description *string
	RegionID    *uint
	CityID      *uint
}

// PlateRepository defines the interface for listing-related database operations
type PlateRepository interface {
	// Create stores the listing and its initial price history entry in one
	// transaction.
	Create(plate *models.LicensePlate) error
	GetByID(id uint) (*models.LicensePlate, error)
	GetByIDWithRelations(id uint) (*models.LicensePlate, error)
	GetByUserID(userID uint, offset, limit int) ([]models.LicensePlate, error)
	// List returns one page of listings matching the filter plus the total
	// matching count (the count ignores pagination).
	List(filter PlateFilter, offset, limit int) ([]models.LicensePlate, int64, error)
	GetTop(limit int, regionID *uint) ([]models.LicensePlate, error)
	GetLikedByUser(userID uint, offset, limit int) ([]models.LicensePlate, error)
	IncrementViews(id uint) error
	// Update applies the given fields and appends a price history entry when
	// the price changed, in one transaction.
	Update(plate *models.LicensePlate, update PlateUpdate) error
	Count() (int64, error)
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	// ConsumeFreeListing atomically decrements the free-listing quota and
	// reports whether a unit was available.
	ConsumeFreeListing(userID uint) (bool, error)
	GetSellerStats(userID uint) (*SellerStats, error)
}

// LikeRepository defines the interface for favorite toggling and lookups
type LikeRepository interface {
	// Toggle flips the like state for (user, plate) and returns the new
	// state together with the plate's total like count.
	Toggle(userID, plateID uint) (liked bool, total int64, err error)
	IsLiked(userID, plateID uint) (bool, error)
	CountForPlate(plateID uint) (int64, error)
}

// PriceHistoryRepository defines the interface for the append-only price log
type PriceHistoryRepository interface {
	Create(entry *models.PriceHistoryEntry) error
	GetByPlateID(plateID uint) ([]models.PriceHistoryEntry, error)
	CountByPlateID(plateID uint) (int64, error)
}

// TopRatingRepository defines the interface for promotional ratings
type TopRatingRepository interface {
	Create(rating *models.TopRating) error
	GetActiveByPlateID(plateID uint) ([]models.TopRating, error)
}

// SellerStats is the public seller summary embedded in listing detail
// responses.
type SellerStats struct {
	SellerID       uint      `json:"seller_id"`
	Name           string    `json:"name"`
	RegisteredAt   time.Time `json:"registered_at"`
	ActiveListings int64     `json:"active_listings"`
	TotalViews     int64     `json:"total_views"`
}

// Repositories struct holds all repository instances
type Repositories struct {
	Plate        PlateRepository
	User         UserRepository
	Like         LikeRepository
	PriceHistory PriceHistoryRepository
	TopRating    TopRatingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Plate:        NewPlateRepository(db),
		User:         NewUserRepository(db),
		Like:         NewLikeRepository(db),
		PriceHistory: NewPriceHistoryRepository(db),
		TopRating:    NewTopRatingRepository(db),
	}
}
