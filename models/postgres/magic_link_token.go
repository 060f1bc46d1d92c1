package postgres

import (
	"time"
)

/*
 * 'MagicLinkToken' is a single-use sign-in token emailed to a player. The
 * token value itself is a signed JWT; the row exists so a token can only be
 * redeemed once.
 */
type MagicLinkToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"size:100;not null;index:idx_magic_link_tokens_email" json:"email"`
	Token     string     `gorm:"size:512;not null;uniqueIndex:idx_magic_link_tokens_token" json:"-"`
	PlayerID  *uint      `json:"player_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
