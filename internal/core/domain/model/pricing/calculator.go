package pricing

import (
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Parcel is one priced line: a unit weight shipped quantity times.
type Parcel interface {
	Weight() decimal.Decimal
	Quantity() int
}

// ComputeItemCost prices one line item. The effective weight is the unit
// weight times quantity and is priced as a single shipment.
func ComputeItemCost(weight decimal.Decimal, quantity int, table RateTable) (decimal.Decimal, error) {
	if weight.IsNegative() {
		return decimal.Zero, errs.NewValueIsOutOfRangeError("weight", weight.String(), 0, "unbounded")
	}
	if quantity < 1 {
		return decimal.Zero, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return table.Cost(weight.Mul(decimal.NewFromInt(int64(quantity))))
}

// ComputeOrderSubtotal sums the item costs of every parcel.
func ComputeOrderSubtotal(parcels []Parcel, table RateTable) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for _, p := range parcels {
		cost, err := ComputeItemCost(p.Weight(), p.Quantity(), table)
		if err != nil {
			return decimal.Zero, err
		}
		subtotal = subtotal.Add(cost)
	}
	return RoundMoney(subtotal), nil
}

// ComputeFuelSurcharge applies a percentage to the subtotal.
func ComputeFuelSurcharge(subtotal, ratePercent decimal.Decimal) decimal.Decimal {
	return RoundMoney(subtotal.Mul(ratePercent).Div(hundred))
}

// ComputeTax applies a percentage to subtotal plus fuel surcharge.
func ComputeTax(subtotal, surcharge, ratePercent decimal.Decimal) decimal.Decimal {
	return RoundMoney(subtotal.Add(surcharge).Mul(ratePercent).Div(hundred))
}

// ComputeTotal adds already rounded components without rounding again.
func ComputeTotal(subtotal, surcharge, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(surcharge).Add(tax)
}
