package postgres

import (
	"time"
)

/*
 * 'Player' is one of the household players. Games and Hands reference
 * players by id but never own them.
 */
type Player struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	AvatarColor string    `gorm:"size:20;default:'#3498db'" json:"avatar_color"`
	Email       *string   `gorm:"size:100;uniqueIndex" json:"email"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
