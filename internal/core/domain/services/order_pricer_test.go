package services_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 18, 16, 30, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func settings(t *testing.T) pricing.Settings {
	t.Helper()
	rates, err := pricing.NewRateTable(
		d("10"), d("15"), d("20"), d("25"), d("30"), d("35"), d("40"), d("45"), d("50"),
		d("0.40"), d("0.30"), d("0.20"),
	)
	require.NoError(t, err)
	return pricing.Settings{
		Rates:          rates,
		FuelSurcharge:  d("10"),
		TaxRate:        d("5"),
		TaxLabel:       "GST",
		MaxOrderWeight: decimal.NewFromInt(pricing.DefaultMaxOrderWeight),
	}
}

func newOrder(t *testing.T, postal string, requested time.Time, lines ...order.ItemFields) *order.Order {
	t.Helper()
	addr := func(code string) kernel.PostalAddress {
		a, err := kernel.NewPostalAddress(kernel.PostalAddressFields{
			AddressLine1: "1 Main St", Locality: "Brandon", AdministrativeArea: "MB",
			PostalCode: code, CountryCode: "CA",
		})
		require.NoError(t, err)
		return a
	}
	items := make([]order.Item, 0, len(lines))
	for _, f := range lines {
		item, err := order.NewItem(f)
		require.NoError(t, err)
		items = append(items, item)
	}
	actor, err := kernel.NewGuest("sess")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), actor, order.Details{
		Items:         items,
		Pickup:        addr("R7A 1A1"),
		Destination:   addr(postal),
		Contact:       order.Contact{UserEmail: "s@example.com", UserPhone: "204"},
		RequestedDate: requested,
	})
	require.NoError(t, err)
	return o
}

func line(weight string, qty int) order.ItemFields {
	return order.ItemFields{Quantity: qty, Weight: d(weight), Length: d("10"), Width: d("10"), Height: d("10")}
}

func TestNewOrderPricer(t *testing.T) {
	_, err := services.NewOrderPricer(pricing.Settings{}, nil)

	require.Error(t, err)
}

func TestOrderPricer_CheckAcceptance(t *testing.T) {
	pricer, err := services.NewOrderPricer(settings(t), []string{" x0a 0h0", "", "T0A1A0"})
	require.NoError(t, err)

	t.Run("should accept an order at the weight limit for today", func(t *testing.T) {
		o := newOrder(t, "R3C 4T3", today, line("500", 4), line("100", 2))

		require.NoError(t, pricer.CheckAcceptance(o, today))
	})

	t.Run("should reject an order over the combined weight", func(t *testing.T) {
		o := newOrder(t, "R3C 4T3", today, line("500", 4), line("100", 2), line("1", 1))

		err := pricer.CheckAcceptance(o, today)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "2200")
	})

	t.Run("should reject a requested date in the past", func(t *testing.T) {
		o := newOrder(t, "R3C 4T3", today.AddDate(0, 0, -1), line("5", 1))

		require.ErrorIs(t, pricer.CheckAcceptance(o, today), errs.ErrValueIsInvalid)
	})

	t.Run("should reject excluded destinations regardless of spacing", func(t *testing.T) {
		o := newOrder(t, "X0A 0H0", today, line("5", 1))

		err := pricer.CheckAcceptance(o, today)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "X0A 0H0")
	})

	t.Run("should reject an unconstructed order", func(t *testing.T) {
		require.ErrorIs(t, pricer.CheckAcceptance(&order.Order{}, today), order.ErrOrderIsNotConstructed)
	})
}

func TestOrderPricer_Price(t *testing.T) {
	pricer, err := services.NewOrderPricer(settings(t), nil)
	require.NoError(t, err)

	t.Run("should price with global rates", func(t *testing.T) {
		o := newOrder(t, "R3C 4T3", today, line("5", 2), line("300", 1))

		require.NoError(t, pricer.Price(o, nil))

		assert.Equal(t, "10.00", o.Items()[0].Cost().StringFixed(2))
		assert.Equal(t, "90.00", o.Items()[1].Cost().StringFixed(2))
		assert.Equal(t, "115.50", o.Costs().Total.StringFixed(2))
	})

	t.Run("should price with a discount", func(t *testing.T) {
		rates, err := pricing.NewPartialRateTable(map[pricing.Band]decimal.Decimal{10: d("0.10")})
		require.NoError(t, err)
		discount, err := pricing.NewClientDiscount(7, rates, nil)
		require.NoError(t, err)
		o := newOrder(t, "R3C 4T3", today, line("300", 1))

		require.NoError(t, pricer.Price(o, discount))

		assert.Equal(t, "60.00", o.Costs().Subtotal.StringFixed(2))
	})
}
