package models

import "time"

// TopRating is a time-bounded promotional score a seller buys for a listing.
type TopRating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlateID    uint      `gorm:"index" json:"plate_id"`
	Points     int       `json:"points" validate:"min=1,max=100"`
	ValidUntil time.Time `json:"valid_until"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
