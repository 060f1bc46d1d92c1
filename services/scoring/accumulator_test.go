package scoring

import (
	"fmt"
	"sync/atomic"
	"testing"

	"FiveHundred/models/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

// Each test gets its own named in-memory database; cache=shared keeps it
// alive across the pool's connections.
func setupDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:scoring%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(postgres.Player{}, postgres.Game{}, postgres.Hand{}))
	return db
}

func seedGame(t *testing.T, db *gorm.DB) *postgres.Game {
	for i := 1; i <= 4; i++ {
		player := postgres.Player{Name: fmt.Sprintf("Player %d", i)}
		require.NoError(t, db.Create(&player).Error)
	}
	game := postgres.Game{
		PlayedDate:   "2025-06-01",
		Team1Player1: 1,
		Team1Player2: 2,
		Team2Player1: 3,
		Team2Player2: 4,
	}
	require.NoError(t, db.Create(&game).Error)
	return &game
}

func TestAddHand(t *testing.T) {
	db := setupDB(t)
	game := seedGame(t, db)

	updated, err := AddHand(db, game.ID, HandInput{
		BidderID: 1, BidTricks: 6, BidSuit: SuitSpades, BidWon: true, OpponentTricks: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Team1Score)
	assert.Equal(t, 30, updated.Team2Score)

	var hand postgres.Hand
	require.NoError(t, db.Where("game_id = ?", game.ID).First(&hand).Error)
	assert.Equal(t, 1, hand.HandNumber)
	assert.Equal(t, 40, hand.PointsWon)
	assert.Equal(t, 40, hand.Team1HandScore)
	assert.Equal(t, 30, hand.Team2HandScore)

	// Second hand gets the next number
	updated, err = AddHand(db, game.ID, HandInput{
		BidderID: 3, BidTricks: 7, BidSuit: SuitHearts, BidWon: false, OpponentTricks: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 80, updated.Team1Score)
	assert.Equal(t, -170, updated.Team2Score)

	var hands []postgres.Hand
	require.NoError(t, db.Where("game_id = ?", game.ID).Order("hand_number").Find(&hands).Error)
	require.Len(t, hands, 2)
	assert.Equal(t, 2, hands[1].HandNumber)
}

func TestAddHandErrors(t *testing.T) {
	db := setupDB(t)
	game := seedGame(t, db)

	t.Run("Unknown game", func(t *testing.T) {
		_, err := AddHand(db, 999, HandInput{BidderID: 1, BidTricks: 6, BidSuit: SuitSpades})
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Bidder not seated", func(t *testing.T) {
		_, err := AddHand(db, game.ID, HandInput{BidderID: 42, BidTricks: 6, BidSuit: SuitSpades})
		assert.ErrorIs(t, err, ErrBidderNotInGame)

		// Nothing must have been written
		var count int64
		require.NoError(t, db.Model(&postgres.Hand{}).Where("game_id = ?", game.ID).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestRemoveHandReversesScores(t *testing.T) {
	db := setupDB(t)
	game := seedGame(t, db)

	_, err := AddHand(db, game.ID, HandInput{
		BidderID: 1, BidTricks: 8, BidSuit: SuitDiamonds, BidWon: true, OpponentTricks: 2,
	})
	require.NoError(t, err)

	before, err := AddHand(db, game.ID, HandInput{
		BidderID: 4, BidTricks: 0, BidSuit: SuitOpenMisere, BidWon: false, OpponentTricks: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 280, before.Team1Score)
	assert.Equal(t, -480, before.Team2Score)

	var last postgres.Hand
	require.NoError(t, db.Where("game_id = ?", game.ID).Order("hand_number DESC").First(&last).Error)

	after, err := RemoveHand(db, game.ID, last.ID)
	require.NoError(t, err)
	assert.Equal(t, 280, after.Team1Score)
	assert.Equal(t, 20, after.Team2Score)

	var count int64
	require.NoError(t, db.Model(&postgres.Hand{}).Where("game_id = ?", game.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRemoveHandLeavesGaps(t *testing.T) {
	db := setupDB(t)
	game := seedGame(t, db)

	for i := 0; i < 3; i++ {
		_, err := AddHand(db, game.ID, HandInput{
			BidderID: 1, BidTricks: 6, BidSuit: SuitSpades, BidWon: true,
		})
		require.NoError(t, err)
	}

	var second postgres.Hand
	require.NoError(t, db.Where("game_id = ? AND hand_number = ?", game.ID, 2).First(&second).Error)
	_, err := RemoveHand(db, game.ID, second.ID)
	require.NoError(t, err)

	// No renumbering: the next hand is numbered past the old maximum
	updated, err := AddHand(db, game.ID, HandInput{
		BidderID: 1, BidTricks: 6, BidSuit: SuitSpades, BidWon: true,
	})
	require.NoError(t, err)

	var numbers []int
	require.NoError(t, db.Model(&postgres.Hand{}).
		Where("game_id = ?", updated.ID).
		Order("hand_number").
		Pluck("hand_number", &numbers).Error)
	assert.Equal(t, []int{1, 3, 4}, numbers)
}

func TestRemoveHandErrors(t *testing.T) {
	db := setupDB(t)
	game := seedGame(t, db)

	_, err := RemoveHand(db, game.ID, 999)
	assert.ErrorIs(t, err, ErrHandNotFound)

	_, err = RemoveHand(db, 999, 1)
	assert.ErrorIs(t, err, ErrGameNotFound)

	// A hand id from another game is not found either
	other := postgres.Game{
		PlayedDate:   "2025-06-02",
		Team1Player1: 1,
		Team1Player2: 2,
		Team2Player1: 3,
		Team2Player2: 4,
	}
	require.NoError(t, db.Create(&other).Error)
	_, err = AddHand(db, other.ID, HandInput{BidderID: 1, BidTricks: 6, BidSuit: SuitSpades, BidWon: true})
	require.NoError(t, err)

	var hand postgres.Hand
	require.NoError(t, db.Where("game_id = ?", other.ID).First(&hand).Error)
	_, err = RemoveHand(db, game.ID, hand.ID)
	assert.ErrorIs(t, err, ErrHandNotFound)
}

func TestCompleteWinnerDetermination(t *testing.T) {
	cases := []struct {
		name       string
		team1Score int
		team2Score int
		winner     int
	}{
		{"Team 1 reaches 500", 500, 120, 1},
		{"Team 2 goes out backwards", 300, -510, 1},
		{"Team 2 reaches 500", 120, 500, 2},
		{"Team 1 goes out backwards", -510, 0, 2},
		{"Higher score wins below threshold", 320, 180, 1},
		{"Tie falls to team 2", 300, 300, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupDB(t)
			game := seedGame(t, db)
			require.NoError(t, db.Model(game).Updates(map[string]interface{}{
				"team1_score": tc.team1Score,
				"team2_score": tc.team2Score,
			}).Error)

			completed, err := Complete(db, game.ID)
			require.NoError(t, err)
			assert.True(t, completed.Completed)
			require.NotNil(t, completed.WinnerTeam)
			assert.Equal(t, tc.winner, *completed.WinnerTeam)
		})
	}
}

func TestCompletedGameIsFrozen(t *testing.T) {
	db := setupDB(t)
	game := seedGame(t, db)

	_, err := Complete(db, game.ID)
	require.NoError(t, err)

	_, err = AddHand(db, game.ID, HandInput{BidderID: 1, BidTricks: 6, BidSuit: SuitSpades, BidWon: true})
	assert.ErrorIs(t, err, ErrGameCompleted)

	_, err = RemoveHand(db, game.ID, 1)
	assert.ErrorIs(t, err, ErrGameCompleted)

	_, err = Complete(db, game.ID)
	assert.ErrorIs(t, err, ErrGameCompleted)
}

func TestCompleteUnknownGame(t *testing.T) {
	db := setupDB(t)

	_, err := Complete(db, 12345)
	assert.ErrorIs(t, err, ErrGameNotFound)
}
