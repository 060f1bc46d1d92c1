package scoring

import (
	"FiveHundred/models/postgres"
)

// HandOutcome is the score movement produced by one played hand.
type HandOutcome struct {
	Team1Delta int
	Team2Delta int
	BidPoints  int
}

// ResolveHand computes each team's score delta for a hand. The bidding team
// gains the bid's points when the bid is made and loses them when it is not;
// the defending team always scores ten points per trick taken.
func ResolveHand(game *postgres.Game, tricks int, suit string, bidderID uint, bidWon bool, opponentTricks int) (HandOutcome, error) {
	bidderTeam := game.TeamOf(bidderID)
	if bidderTeam == 0 {
		return HandOutcome{}, ErrBidderNotInGame
	}

	if opponentTricks < 0 {
		opponentTricks = 0
	}

	points := BidPoints(tricks, suit)
	bidderDelta := points
	if !bidWon {
		bidderDelta = -points
	}
	defenderDelta := opponentTricks * 10

	outcome := HandOutcome{BidPoints: points}
	if bidderTeam == 1 {
		outcome.Team1Delta = bidderDelta
		outcome.Team2Delta = defenderDelta
	} else {
		outcome.Team2Delta = bidderDelta
		outcome.Team1Delta = defenderDelta
	}
	return outcome, nil
}
