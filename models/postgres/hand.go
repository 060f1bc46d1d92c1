package postgres

import (
	"time"
)

/*
 * 'Hand' is one bid-and-play round inside a Game. The per-team score deltas
 * are stored alongside the bid so removing a hand can reverse them exactly.
 */
type Hand struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	GameID         uint      `gorm:"not null;index:idx_hands_game" json:"game_id"`
	HandNumber     int       `gorm:"not null" json:"hand_number"`
	BidderID       uint      `gorm:"not null;index:idx_hands_bidder" json:"bidder_id"`
	BidTricks      int       `json:"bid_tricks"`
	BidSuit        string    `gorm:"size:20;not null" json:"bid_suit"`
	BidWon         bool      `json:"bid_won"`
	PointsWon      int       `json:"points_won"`
	Team1HandScore int       `json:"team1_hand_score"`
	Team2HandScore int       `json:"team2_hand_score"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Filled by the controllers for API responses, never stored
	BidDisplay string `gorm:"-" json:"bid_display,omitempty"`

	Bidder Player `gorm:"foreignKey:BidderID" json:"-"`
}
