package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetPlateRepository returns the plate repository instance
func (f *Factory) GetPlateRepository() PlateRepository {
	return f.GetRepositories().Plate
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetLikeRepository returns the like repository instance
func (f *Factory) GetLikeRepository() LikeRepository {
	return f.GetRepositories().Like
}

// GetPriceHistoryRepository returns the price history repository instance
func (f *Factory) GetPriceHistoryRepository() PriceHistoryRepository {
	return f.GetRepositories().PriceHistory
}

// GetTopRatingRepository returns the top rating repository instance
func (f *Factory) GetTopRatingRepository() TopRatingRepository {
	return f.GetRepositories().TopRating
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
