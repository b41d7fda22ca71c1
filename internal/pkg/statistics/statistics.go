package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/avtonomer/platemarket/app/models"
	"github.com/avtonomer/platemarket/internal/pkg/cache"
	"github.com/avtonomer/platemarket/internal/pkg/database"
)

const (
	CacheKeyPlatesTotal = "statistics:plates:total"
	CacheKeyPlatesDaily = "statistics:plates:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyUsers       = "statistics:users:total"
	CacheExpiration     = 30 * time.Minute
)

// StatisticsData holds the marketplace-wide counters exposed on /api/v1/stats
type StatisticsData struct {
	TodayPlates int `json:"today_plates"`
	TotalPlates int `json:"total_plates"`
	TotalUsers  int `json:"total_users"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached counters are stale
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached counters when they are stale
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Failed to update statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache updates all statistics in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalPlates int64
	if err := db.Model(&models.LicensePlate{}).Count(&totalPlates).Error; err != nil {
		log.Printf("Error counting total plates: %v", err)
		return err
	}

	var todayPlates int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.LicensePlate{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayPlates).Error; err != nil {
		log.Printf("Error counting today's plates: %v", err)
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyPlatesTotal, strconv.FormatInt(totalPlates, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total plates: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyPlatesDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayPlates, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's plates: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}

	return nil
}

// GetTotalPlates returns the total number of listings from cache or database
func GetTotalPlates() int {
	val, err := cache.Get(CacheKeyPlatesTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.LicensePlate{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total plates: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyPlatesTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total plates: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTodayPlates returns the number of listings created today from cache or database
func GetTodayPlates() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyPlatesDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		var count int64
		db := database.GetDB()
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		if err := db.Model(&models.LicensePlate{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
			log.Printf("Error counting today's plates: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's plates: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalUsers returns the total number of users from cache or database
func GetTotalUsers() int {
	val, err := cache.Get(CacheKeyUsers)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total users: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyUsers, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total users: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetStatisticsData returns all statistics data as StatisticsData structure
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TodayPlates: GetTodayPlates(),
		TotalPlates: GetTotalPlates(),
		TotalUsers:  GetTotalUsers(),
	}
}
