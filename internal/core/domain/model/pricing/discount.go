package pricing

import (
	"errors"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ClientDiscount is a per-customer override of the global rates. Any subset of
// bands may be given; the fuel surcharge override is optional too.
type ClientDiscount struct {
	userID        int64
	rates         RateTable
	fuelSurcharge *decimal.Decimal
}

// NewClientDiscount validates an override owned by userID. fuelSurcharge may be nil.
func NewClientDiscount(userID int64, rates RateTable, fuelSurcharge *decimal.Decimal) (*ClientDiscount, error) {
	var problems []error
	if userID <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("userID", userID, 1, "max int64"))
	}
	if fuelSurcharge != nil && fuelSurcharge.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidError("fuelSurcharge"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	var fs *decimal.Decimal
	if fuelSurcharge != nil {
		v := *fuelSurcharge
		fs = &v
	}
	return &ClientDiscount{userID: userID, rates: rates, fuelSurcharge: fs}, nil
}

func (d *ClientDiscount) UserID() int64 {
	return d.userID
}

func (d *ClientDiscount) Rates() RateTable {
	return d.rates
}

// FuelSurcharge returns the override percentage and whether one is set.
func (d *ClientDiscount) FuelSurcharge() (decimal.Decimal, bool) {
	if d == nil || d.fuelSurcharge == nil {
		return decimal.Zero, false
	}
	return *d.fuelSurcharge, true
}
