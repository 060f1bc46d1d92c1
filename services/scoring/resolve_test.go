package scoring

import (
	"testing"

	"FiveHundred/models/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame() *postgres.Game {
	return &postgres.Game{
		ID:           1,
		Team1Player1: 1,
		Team1Player2: 2,
		Team2Player1: 3,
		Team2Player2: 4,
	}
}

func TestResolveHand(t *testing.T) {
	t.Run("Team 1 bidder makes the bid", func(t *testing.T) {
		outcome, err := ResolveHand(testGame(), 6, SuitSpades, 1, true, 3)
		require.NoError(t, err)
		assert.Equal(t, 40, outcome.Team1Delta)
		assert.Equal(t, 30, outcome.Team2Delta)
		assert.Equal(t, 40, outcome.BidPoints)
	})

	t.Run("Team 2 bidder fails a misere", func(t *testing.T) {
		outcome, err := ResolveHand(testGame(), 0, SuitMisere, 4, false, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, outcome.Team1Delta)
		assert.Equal(t, -250, outcome.Team2Delta)
		assert.Equal(t, 250, outcome.BidPoints)
	})

	t.Run("Team 2 bidder makes the bid", func(t *testing.T) {
		outcome, err := ResolveHand(testGame(), 8, SuitHearts, 3, true, 2)
		require.NoError(t, err)
		assert.Equal(t, 20, outcome.Team1Delta)
		assert.Equal(t, 300, outcome.Team2Delta)
	})

	t.Run("Team 1 bidder fails the bid", func(t *testing.T) {
		outcome, err := ResolveHand(testGame(), 7, SuitClubs, 2, false, 5)
		require.NoError(t, err)
		assert.Equal(t, -160, outcome.Team1Delta)
		assert.Equal(t, 50, outcome.Team2Delta)
	})

	t.Run("Negative opponent tricks coerced to zero", func(t *testing.T) {
		outcome, err := ResolveHand(testGame(), 6, SuitSpades, 1, true, -3)
		require.NoError(t, err)
		assert.Equal(t, 0, outcome.Team2Delta)
	})

	t.Run("Bidder outside the game is rejected", func(t *testing.T) {
		_, err := ResolveHand(testGame(), 6, SuitSpades, 99, true, 0)
		assert.ErrorIs(t, err, ErrBidderNotInGame)
	})
}
