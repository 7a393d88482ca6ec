package pricing

import (
	"github.com/shopspring/decimal"
)

// BandCount is the number of weight bands in every rate table.
const BandCount = 12

// Band is a 1-based weight band number.
type Band int

var (
	// upper bounds (inclusive) of bands 1..11; band 12 is unbounded.
	bandUpperBounds = [BandCount - 1]decimal.Decimal{
		decimal.NewFromInt(10),
		decimal.NewFromInt(25),
		decimal.NewFromInt(50),
		decimal.NewFromInt(75),
		decimal.NewFromInt(100),
		decimal.NewFromInt(125),
		decimal.NewFromInt(150),
		decimal.NewFromInt(175),
		decimal.NewFromInt(200),
		decimal.NewFromInt(500),
		decimal.NewFromInt(1000),
	}

	cumulativeFrom = decimal.NewFromInt(200)
	band10Span     = decimal.NewFromInt(300)
	band11Span     = decimal.NewFromInt(500)
	band11From     = decimal.NewFromInt(500)
	band12From     = decimal.NewFromInt(1000)
)

// BandFor returns the band a non-negative weight falls in. The lookup is total.
func BandFor(weight decimal.Decimal) Band {
	for i, upper := range bandUpperBounds {
		if weight.LessThanOrEqual(upper) {
			return Band(i + 1)
		}
	}
	return Band(BandCount)
}

// IsCumulative reports whether the band charges per pound over a threshold.
func (b Band) IsCumulative() bool {
	return b >= 10
}

func (b Band) index() int {
	return int(b) - 1
}
