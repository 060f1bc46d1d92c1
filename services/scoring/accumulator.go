package scoring

import (
	"errors"

	"FiveHundred/models/postgres"

	"gorm.io/gorm"
)

// winningScore is the threshold that ends a game of 500 outright.
const winningScore = 500

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameCompleted   = errors.New("game is already completed")
	ErrHandNotFound    = errors.New("hand not found")
	ErrBidderNotInGame = errors.New("bidder is not seated in this game")
)

// HandInput is a bid declaration plus its outcome, as submitted by a client.
type HandInput struct {
	BidderID       uint   `json:"bidder_id"`
	BidTricks      int    `json:"bid_tricks"`
	BidSuit        string `json:"bid_suit"`
	BidWon         bool   `json:"bid_won"`
	OpponentTricks int    `json:"opponent_tricks"`
}

// AddHand records a played hand and moves the game's running scores. The hand
// row and the score columns change inside one transaction so they can never
// diverge.
func AddHand(db *gorm.DB, gameID uint, in HandInput) (*postgres.Game, error) {
	var game postgres.Game
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		if game.Completed {
			return ErrGameCompleted
		}

		outcome, err := ResolveHand(&game, in.BidTricks, in.BidSuit, in.BidderID, in.BidWon, in.OpponentTricks)
		if err != nil {
			return err
		}

		// Hand numbers are max+1; deletions may leave gaps and that is fine.
		var maxNumber int
		err = tx.Model(&postgres.Hand{}).
			Where("game_id = ?", game.ID).
			Select("COALESCE(MAX(hand_number), 0)").
			Scan(&maxNumber).Error
		if err != nil {
			return err
		}

		hand := postgres.Hand{
			GameID:         game.ID,
			HandNumber:     maxNumber + 1,
			BidderID:       in.BidderID,
			BidTricks:      in.BidTricks,
			BidSuit:        in.BidSuit,
			BidWon:         in.BidWon,
			PointsWon:      outcome.BidPoints,
			Team1HandScore: outcome.Team1Delta,
			Team2HandScore: outcome.Team2Delta,
		}
		if err := tx.Create(&hand).Error; err != nil {
			return err
		}

		game.Team1Score += outcome.Team1Delta
		game.Team2Score += outcome.Team2Delta
		return tx.Model(&game).Updates(map[string]interface{}{
			"team1_score": game.Team1Score,
			"team2_score": game.Team2Score,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// RemoveHand deletes a hand and reverses its stored score deltas. Remaining
// hands are not renumbered.
func RemoveHand(db *gorm.DB, gameID uint, handID uint) (*postgres.Game, error) {
	var game postgres.Game
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		if game.Completed {
			return ErrGameCompleted
		}

		var hand postgres.Hand
		err := tx.Where("id = ? AND game_id = ?", handID, gameID).First(&hand).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHandNotFound
			}
			return err
		}

		game.Team1Score -= hand.Team1HandScore
		game.Team2Score -= hand.Team2HandScore
		err = tx.Model(&game).Updates(map[string]interface{}{
			"team1_score": game.Team1Score,
			"team2_score": game.Team2Score,
		}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&hand).Error
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// Complete closes a game and decides the winner. A team wins outright by
// reaching 500 or by its opponents going out backwards at -500; otherwise the
// higher score wins. Equal scores fall to team 2.
func Complete(db *gorm.DB, gameID uint) (*postgres.Game, error) {
	var game postgres.Game
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		if game.Completed {
			return ErrGameCompleted
		}

		var winnerTeam int
		switch {
		case game.Team1Score >= winningScore || game.Team2Score <= -winningScore:
			winnerTeam = 1
		case game.Team2Score >= winningScore || game.Team1Score <= -winningScore:
			winnerTeam = 2
		case game.Team1Score > game.Team2Score:
			winnerTeam = 1
		default:
			winnerTeam = 2
		}

		game.Completed = true
		game.WinnerTeam = &winnerTeam
		return tx.Model(&game).Updates(map[string]interface{}{
			"completed":   true,
			"winner_team": winnerTeam,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}
