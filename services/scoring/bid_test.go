package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBidPoints(t *testing.T) {
	t.Run("Base bid", func(t *testing.T) {
		assert.Equal(t, 40, BidPoints(6, SuitSpades))
	})

	t.Run("Top bid", func(t *testing.T) {
		assert.Equal(t, 520, BidPoints(10, SuitNoTrumps))
	})

	t.Run("Misere ignores tricks", func(t *testing.T) {
		assert.Equal(t, 250, BidPoints(0, SuitMisere))
		assert.Equal(t, 250, BidPoints(8, SuitMisere))
	})

	t.Run("Open misere", func(t *testing.T) {
		assert.Equal(t, 500, BidPoints(0, SuitOpenMisere))
	})

	t.Run("Out of range tricks score zero", func(t *testing.T) {
		assert.Equal(t, 0, BidPoints(5, SuitSpades))
		assert.Equal(t, 0, BidPoints(11, SuitSpades))
	})

	t.Run("Unknown suit scores zero", func(t *testing.T) {
		assert.Equal(t, 0, BidPoints(6, "bogus"))
		assert.Equal(t, 0, BidPoints(6, ""))
	})
}

// Every cell of the table is 40 + 20 per suit step + 100 per trick above six.
func TestBidPointsTableShape(t *testing.T) {
	for tricks := 6; tricks <= 10; tricks++ {
		for idx, suit := range suits {
			expected := 40 + 20*idx + 100*(tricks-6)
			assert.Equal(t, expected, BidPoints(tricks, suit), "%d %s", tricks, suit)
		}
	}
}

func TestBidDisplayName(t *testing.T) {
	assert.Equal(t, "6♠", BidDisplayName(6, SuitSpades))
	assert.Equal(t, "8♥", BidDisplayName(8, SuitHearts))
	assert.Equal(t, "10NT", BidDisplayName(10, SuitNoTrumps))
	assert.Equal(t, "Misère", BidDisplayName(0, SuitMisere))
	assert.Equal(t, "Open Misère", BidDisplayName(0, SuitOpenMisere))
	assert.Equal(t, "7mystery", BidDisplayName(7, "mystery"))
}
