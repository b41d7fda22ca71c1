package models

// Region is a federal subject a plate is registered in (code "77", "178", ...).
type Region struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(10);uniqueIndex" json:"code"`
	Name string `gorm:"type:varchar(150)" json:"name"`
}

type City struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RegionID uint   `gorm:"index" json:"region_id"`
	Region   Region `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	Name     string `gorm:"type:varchar(150)" json:"name"`
}
