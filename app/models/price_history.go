package models

import "time"

// PriceHistoryEntry is one row of the append-only price log of a listing.
// The first entry is written together with the listing itself, further
// entries whenever an update changes the price.
type PriceHistoryEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlateID    uint      `gorm:"index" json:"plate_id"`
	Price      float64   `gorm:"type:decimal(12,2)" json:"price"`
	RecordedAt time.Time `gorm:"autoCreateTime" json:"recorded_at"`
}
