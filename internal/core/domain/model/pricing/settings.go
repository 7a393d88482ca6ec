package pricing

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultMaxOrderWeight is the heaviest combined order accepted, in pounds.
const DefaultMaxOrderWeight = 2200

// Settings is the global pricing configuration.
type Settings struct {
	Rates          RateTable
	FuelSurcharge  decimal.Decimal
	TaxRate        decimal.Decimal
	TaxLabel       string
	MaxOrderWeight decimal.Decimal
}

func (s Settings) Validate() error {
	var problems []error
	if !s.Rates.IsComplete() {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("rates",
			errors.New("every band needs a global rate")))
	}
	if s.FuelSurcharge.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidError("fuelSurcharge"))
	}
	if s.TaxRate.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidError("taxRate"))
	}
	if !s.MaxOrderWeight.IsPositive() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("maxOrderWeight",
			fmt.Errorf("%s must be positive", s.MaxOrderWeight)))
	}
	return errors.Join(problems...)
}

// Quote is the priced breakdown of an order.
type Quote struct {
	ItemCosts     []decimal.Decimal
	Subtotal      decimal.Decimal
	FuelSurcharge decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
}

// Price quotes parcels with the global settings, applying discount when it is non-nil.
func (s Settings) Price(parcels []Parcel, discount *ClientDiscount) (Quote, error) {
	table := s.Rates
	fuelRate := s.FuelSurcharge
	if discount != nil {
		table = table.Overlay(discount.Rates())
		if rate, ok := discount.FuelSurcharge(); ok {
			fuelRate = rate
		}
	}

	q := Quote{ItemCosts: make([]decimal.Decimal, 0, len(parcels)), Subtotal: decimal.Zero}
	for _, p := range parcels {
		cost, err := ComputeItemCost(p.Weight(), p.Quantity(), table)
		if err != nil {
			return Quote{}, err
		}
		q.ItemCosts = append(q.ItemCosts, cost)
		q.Subtotal = q.Subtotal.Add(cost)
	}
	q.Subtotal = RoundMoney(q.Subtotal)
	q.FuelSurcharge = ComputeFuelSurcharge(q.Subtotal, fuelRate)
	q.Tax = ComputeTax(q.Subtotal, q.FuelSurcharge, s.TaxRate)
	q.Total = ComputeTotal(q.Subtotal, q.FuelSurcharge, q.Tax)
	return q, nil
}
