package models

import "time"

// PlateLike marks a listing as a favorite of a user. At most one row exists
// per (user, plate); the row's existence is the "liked" flag.
type PlateLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_plate_likes_user_plate" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PlateID   uint      `gorm:"uniqueIndex:idx_plate_likes_user_plate" json:"plate_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
