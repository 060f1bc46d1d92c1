package postgres

import (
	"time"
)

/*
 * 'CncSession' is one Cocktails & Cards evening. Cocktails served during the
 * session are tracked through CocktailServing rows.
 */
type CncSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionDate string    `gorm:"size:10;not null" json:"session_date"`
	HostID      *uint     `json:"host_id"`
	Theme       string    `gorm:"size:100" json:"theme"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Host     *Player           `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Servings []CocktailServing `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"servings,omitempty"`
}

// CocktailServing links a cocktail to the session it was served at.
type CocktailServing struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  uint      `gorm:"not null;index:idx_servings_session" json:"session_id"`
	CocktailID uint      `gorm:"not null;index:idx_servings_cocktail" json:"cocktail_id"`
	ServedBy   *uint     `json:"served_by"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Cocktail Cocktail `gorm:"foreignKey:CocktailID;constraint:OnDelete:CASCADE;" json:"cocktail"`
	Server   *Player  `gorm:"foreignKey:ServedBy" json:"server,omitempty"`
}
