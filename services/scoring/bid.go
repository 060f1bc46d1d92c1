package scoring

import "strconv"

// Suits in ascending point order, plus the two misère contracts.
const (
	SuitSpades     = "spades"
	SuitClubs      = "clubs"
	SuitDiamonds   = "diamonds"
	SuitHearts     = "hearts"
	SuitNoTrumps   = "no_trumps"
	SuitMisere     = "misere"
	SuitOpenMisere = "open_misere"
)

const (
	miserePoints     = 250
	openMiserePoints = 500
)

var suits = []string{SuitSpades, SuitClubs, SuitDiamonds, SuitHearts, SuitNoTrumps}

// Standard Australian 500 bid values: +20 per suit step, +100 per trick.
var bidPoints = map[int][5]int{
	6:  {40, 60, 80, 100, 120},
	7:  {140, 160, 180, 200, 220},
	8:  {240, 260, 280, 300, 320},
	9:  {340, 360, 380, 400, 420},
	10: {440, 460, 480, 500, 520},
}

func suitIndex(suit string) int {
	for i, s := range suits {
		if s == suit {
			return i
		}
	}
	return -1
}

// BidPoints returns the point value of a bid. Unknown suits and trick counts
// outside 6..10 are worth 0 rather than being an error, so malformed historic
// hands keep scoring the way they always have.
func BidPoints(tricks int, suit string) int {
	if suit == SuitMisere {
		return miserePoints
	}
	if suit == SuitOpenMisere {
		return openMiserePoints
	}

	idx := suitIndex(suit)
	if idx == -1 || tricks < 6 || tricks > 10 {
		return 0
	}

	return bidPoints[tricks][idx]
}

// BidDisplayName formats a bid for display, e.g. "6♠", "10NT", "Misère".
func BidDisplayName(tricks int, suit string) string {
	if suit == SuitMisere {
		return "Misère"
	}
	if suit == SuitOpenMisere {
		return "Open Misère"
	}

	symbols := map[string]string{
		SuitSpades:   "♠",
		SuitClubs:    "♣",
		SuitDiamonds: "♦",
		SuitHearts:   "♥",
		SuitNoTrumps: "NT",
	}

	symbol, ok := symbols[suit]
	if !ok {
		symbol = suit
	}
	return strconv.Itoa(tricks) + symbol
}
