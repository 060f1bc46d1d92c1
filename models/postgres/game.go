package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

/*
 * 'Game' is one game of 500 between two fixed partnerships. It owns its
 * ordered sequence of Hands; running scores are updated in lockstep with
 * hand rows inside one transaction.
 */
type Game struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PlayedDate   string    `gorm:"size:10;not null" json:"played_date"`
	Team1Player1 uint      `gorm:"not null;index:idx_games_t1p1" json:"team1_player1"`
	Team1Player2 uint      `gorm:"not null;index:idx_games_t1p2" json:"team1_player2"`
	Team2Player1 uint      `gorm:"not null;index:idx_games_t2p1" json:"team2_player1"`
	Team2Player2 uint      `gorm:"not null;index:idx_games_t2p2" json:"team2_player2"`
	Team1Score   int       `gorm:"default:0" json:"team1_score"`
	Team2Score   int       `gorm:"default:0" json:"team2_score"`
	Completed    bool      `gorm:"default:false;index:idx_games_completed" json:"completed"`
	WinnerTeam   *int      `json:"winner_team"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationship with the hands played in this game
	Hands []Hand `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"hands,omitempty"`
}

// GORM hook to ensure the four seats are occupied by distinct players
func (g *Game) BeforeSave(tx *gorm.DB) error {
	seats := []uint{g.Team1Player1, g.Team1Player2, g.Team2Player1, g.Team2Player2}
	seen := make(map[uint]bool, 4)
	for _, id := range seats {
		if seen[id] {
			return errors.New("all four players must be different")
		}
		seen[id] = true
	}
	return nil
}

// TeamOf returns 1 or 2 for a seated player, 0 for anyone else.
func (g *Game) TeamOf(playerID uint) int {
	switch playerID {
	case g.Team1Player1, g.Team1Player2:
		return 1
	case g.Team2Player1, g.Team2Player2:
		return 2
	}
	return 0
}
