package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'Cocktail' is a drink served by a player. Ingredients are a JSON array of
 * strings, stored as a JSON column.
 */
type Cocktail struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Ingredients  datatypes.JSON `gorm:"not null" json:"ingredients"`
	Instructions string         `json:"instructions"`
	ServedBy     *uint          `gorm:"index:idx_cocktails_served_by" json:"served_by"`
	ServedDate   string         `gorm:"size:10;not null" json:"served_date"`
	ImageURL     string         `json:"image_url"`
	Notes        string         `json:"notes"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Server *Player `gorm:"foreignKey:ServedBy" json:"server,omitempty"`
}
