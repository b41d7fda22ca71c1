package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PRICING_FREE = "free"
	PRICING_PAID = "paid"
	PRICING_VIP  = "vip"
)

// LicensePlate is a marketplace listing for a vehicle registration number.
type LicensePlate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        string    `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	Number      string    `gorm:"type:varchar(20);not null" json:"number"`
	SellerID    uint      `gorm:"index" json:"seller_id"`
	Seller      User      `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	RegionID    uint      `gorm:"index" json:"region_id"`
	Region      Region    `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	CityID      uint      `gorm:"index" json:"city_id"`
	City        City      `gorm:"foreignKey:CityID" json:"city,omitempty"`
	Price       float64   `gorm:"type:decimal(12,2)" json:"price"`
	Rating      int       `gorm:"default:0" json:"rating"`
	ViewsCount  int       `gorm:"default:0" json:"views_count"`
	Description string    `gorm:"type:text" json:"description"`
	PricingTier string    `gorm:"type:varchar(10);default:'free'" json:"pricing_tier"`
	ValidUntil  time.Time `json:"valid_until"`
	// relations
	PriceHistory []PriceHistoryEntry `gorm:"foreignKey:PlateID" json:"price_history,omitempty"`
	Likes        []PlateLike         `gorm:"foreignKey:PlateID" json:"likes,omitempty"`
	CreatedAt    time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns a public UUID when none is set yet.
func (p *LicensePlate) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}

// IsOwnedBy reports whether the listing belongs to the given user.
func (p *LicensePlate) IsOwnedBy(userID uint) bool {
	return p.SellerID == userID
}
