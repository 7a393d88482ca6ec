package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricer(t *testing.T, excluded ...string) services.OrderPricer {
	t.Helper()
	rates, err := pricing.NewRateTable(
		d("10"), d("15"), d("20"), d("25"), d("30"), d("35"), d("40"), d("45"), d("50"),
		d("0.40"), d("0.30"), d("0.20"),
	)
	require.NoError(t, err)
	p, err := services.NewOrderPricer(pricing.Settings{
		Rates:          rates,
		FuelSurcharge:  d("10"),
		TaxRate:        d("5"),
		TaxLabel:       "GST",
		MaxOrderWeight: decimal.NewFromInt(pricing.DefaultMaxOrderWeight),
	}, excluded)
	require.NoError(t, err)
	return p
}

func postal(t *testing.T, code string) kernel.PostalAddress {
	t.Helper()
	a, err := kernel.NewPostalAddress(kernel.PostalAddressFields{
		AddressLine1:       "100 Main St",
		Locality:           "Winnipeg",
		AdministrativeArea: "MB",
		PostalCode:         code,
		CountryCode:        "CA",
	})
	require.NoError(t, err)
	return a
}

// details describes one line of two 40 lb pieces picked up in two days.
func details(t *testing.T, st order.ShippingType) order.Details {
	t.Helper()
	item, err := order.NewItem(order.ItemFields{
		Quantity: 2, Weight: d("40"), Length: d("10"), Width: d("10"), Height: d("10"),
	})
	require.NoError(t, err)
	return order.Details{
		Items:       []order.Item{item},
		Pickup:      postal(t, "R3C 4T3"),
		Destination: postal(t, "R2W 1A1"),
		Contact: order.Contact{
			UserEmail: "shipper@example.com", UserPhone: "204-555-0100",
			DestinationEmail: "consignee@example.com", DestinationPhone: "204-555-0199",
		},
		ShippingType:  st,
		RequestedDate: time.Now().AddDate(0, 0, 2),
	}
}

func guest(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewGuest("sess-1")
	require.NoError(t, err)
	return a
}

func customer(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewCustomer(7, "A-7")
	require.NoError(t, err)
	return a
}

// seedOrder stores an order owned by actor in the given state.
func seedOrder(t *testing.T, store *memStore, actor kernel.Actor, status order.Status, payment order.PaymentRefs) *order.Order {
	t.Helper()
	return seedOrderWith(t, store, actor, func(s *order.Snapshot) {
		s.Status = status
		s.Payment = payment
	})
}

func seedOrderWith(t *testing.T, store *memStore, actor kernel.Actor, change func(*order.Snapshot)) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), actor, details(t, order.Prepaid))
	require.NoError(t, err)
	snap := o.Snapshot()
	snap.Number = 1
	snap.Costs = order.Costs{Subtotal: d("30"), FuelSurcharge: d("3"), Tax: d("1.65"), Total: d("34.65")}
	change(&snap)
	restored, err := order.RestoreOrder(snap)
	require.NoError(t, err)
	store.put(restored)
	return restored
}

func preauthorized() order.PaymentRefs {
	return order.PaymentRefs{
		Ticket: "tkt-1", TicketIssuedAt: time.Now().Add(-time.Minute),
		GatewayOrderNo: "ord-1", GatewayTxnNo: "txn-1",
	}
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
