package pricing

import (
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Rate is the amount charged for one band. Set distinguishes a configured
// zero (a free band) from a band that was never specified.
type Rate struct {
	Amount decimal.Decimal
	Set    bool
}

// RateOf returns a present rate.
func RateOf(amount decimal.Decimal) Rate {
	return Rate{Amount: amount, Set: true}
}

// RateTable holds one rate per band. Bands 1-9 are flat amounts, bands 10-12 are per pound.
type RateTable struct {
	rates [BandCount]Rate
}

// NewRateTable builds a complete table from exactly twelve rates, band 1 first.
func NewRateTable(rates ...decimal.Decimal) (RateTable, error) {
	if len(rates) != BandCount {
		return RateTable{}, errs.NewValueIsOutOfRangeError("rates", len(rates), BandCount, BandCount)
	}
	var t RateTable
	for i, r := range rates {
		if r.IsNegative() {
			return RateTable{}, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("rate for band %d", i+1), fmt.Errorf("%s is negative", r))
		}
		t.rates[i] = RateOf(r)
	}
	return t, nil
}

// NewPartialRateTable builds a table where only some bands are specified,
// as customer discounts are stored.
func NewPartialRateTable(rates map[Band]decimal.Decimal) (RateTable, error) {
	var t RateTable
	for band, r := range rates {
		if band < 1 || band > BandCount {
			return RateTable{}, errs.NewValueIsOutOfRangeError("band", int(band), 1, BandCount)
		}
		if r.IsNegative() {
			return RateTable{}, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("rate for band %d", band), fmt.Errorf("%s is negative", r))
		}
		t.rates[band.index()] = RateOf(r)
	}
	return t, nil
}

// Rate returns the rate of a band; Set is false when the band is unspecified.
func (t RateTable) Rate(b Band) Rate {
	if b < 1 || b > BandCount {
		return Rate{}
	}
	return t.rates[b.index()]
}

// IsComplete reports whether every band has a rate.
func (t RateTable) IsComplete() bool {
	for _, r := range t.rates {
		if !r.Set {
			return false
		}
	}
	return true
}

// Overlay returns a table where every band set in override replaces the band
// in t. Unset override bands keep t's rate.
func (t RateTable) Overlay(override RateTable) RateTable {
	out := t
	for i, r := range override.rates {
		if r.Set {
			out.rates[i] = r
		}
	}
	return out
}

// Cost prices a single effective weight against the table. The table must
// hold a rate for the weight's band and for any band the cumulative formula reads.
func (t RateTable) Cost(weight decimal.Decimal) (decimal.Decimal, error) {
	band := BandFor(weight)
	need := []Band{band}
	if band.IsCumulative() {
		need = []Band{9, 10, 11, 12}[:int(band)-8]
	}
	for _, b := range need {
		if !t.Rate(b).Set {
			return decimal.Zero, errs.NewValueIsRequiredError(fmt.Sprintf("rate for band %d", b))
		}
	}

	amount := func(b Band) decimal.Decimal { return t.rates[b.index()].Amount }

	var cost decimal.Decimal
	switch band {
	case 10:
		cost = amount(9).Add(weight.Sub(cumulativeFrom).Mul(amount(10)))
	case 11:
		cost = amount(9).
			Add(band10Span.Mul(amount(10))).
			Add(weight.Sub(band11From).Mul(amount(11)))
	case 12:
		cost = amount(9).
			Add(band10Span.Mul(amount(10))).
			Add(band11Span.Mul(amount(11))).
			Add(weight.Sub(band12From).Mul(amount(12)))
	default:
		cost = amount(band)
	}
	return RoundMoney(cost), nil
}
