package pricing_test

import (
	"testing"

	"freight/internal/core/domain/model/pricing"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func globalTable(t *testing.T) pricing.RateTable {
	t.Helper()
	table, err := pricing.NewRateTable(
		d("10"), d("15"), d("20"), d("25"), d("30"), d("35"), d("40"), d("45"), d("50"),
		d("0.40"), d("0.30"), d("0.20"),
	)
	require.NoError(t, err)
	return table
}

type parcel struct {
	weight   decimal.Decimal
	quantity int
}

func (p parcel) Weight() decimal.Decimal {
	return p.weight
}

func (p parcel) Quantity() int {
	return p.quantity
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		weight string
		want   pricing.Band
	}{
		{"0", 1}, {"10", 1}, {"10.01", 2}, {"25", 2}, {"50", 3}, {"75", 4}, {"100", 5},
		{"125", 6}, {"150", 7}, {"175", 8}, {"200", 9}, {"200.01", 10}, {"500", 10},
		{"500.5", 11}, {"1000", 11}, {"1000.01", 12}, {"99999", 12},
	}
	for _, tt := range tests {
		t.Run(tt.weight, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.BandFor(d(tt.weight)))
		})
	}
}

func TestComputeItemCost(t *testing.T) {
	table := globalTable(t)

	tests := []struct {
		name     string
		weight   string
		quantity int
		want     string
	}{
		{"should charge band 1 for combined weight of exactly 10", "5", 2, "10.00"},
		{"should charge band 1 for zero weight", "0", 1, "10.00"},
		{"should charge band 2 just above 10", "10.01", 1, "15.00"},
		{"should charge band 9 at 200", "200", 1, "50.00"},
		{"should add per pound over 200 in band 10", "300", 1, "90.00"},
		{"should price band 10 upper edge", "500", 1, "170.00"},
		{"should accumulate band 11", "600", 1, "200.00"},
		{"should price band 11 upper edge", "1000", 1, "320.00"},
		{"should accumulate band 12", "1200", 1, "360.00"},
		{"should multiply unit weight by quantity", "25", 4, "30.00"},
		{"should round fractional pounds half-up", "200.5", 1, "50.20"},
		{"should round half-up at the third decimal", "200.0125", 1, "50.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.ComputeItemCost(d(tt.weight), tt.quantity, table)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}

	t.Run("should reject negative weight", func(t *testing.T) {
		_, err := pricing.ComputeItemCost(d("-1"), 1, table)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject quantity below one", func(t *testing.T) {
		_, err := pricing.ComputeItemCost(d("1"), 0, table)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail on a table missing the needed bands", func(t *testing.T) {
		partial, err := pricing.NewPartialRateTable(map[pricing.Band]decimal.Decimal{10: d("0.4")})
		require.NoError(t, err)

		_, err = pricing.ComputeItemCost(d("300"), 1, partial)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "band 9")
	})
}

func TestComputeItemCost_IsContinuousAtCumulativeEdges(t *testing.T) {
	table := globalTable(t)

	for _, edge := range []string{"500", "1000"} {
		at, err := pricing.ComputeItemCost(d(edge), 1, table)
		require.NoError(t, err)
		above, err := pricing.ComputeItemCost(d(edge).Add(d("0.01")), 1, table)
		require.NoError(t, err)

		assert.True(t, above.Sub(at).LessThanOrEqual(d("0.01")), "edge %s: %s -> %s", edge, at, above)
	}
}

func TestComputeItemCost_IsMonotonicInWeight(t *testing.T) {
	override, err := pricing.NewPartialRateTable(map[pricing.Band]decimal.Decimal{
		2:  d("12"),
		3:  d("18"),
		10: d("0.35"),
		12: d("0.15"),
	})
	require.NoError(t, err)

	tables := map[string]pricing.RateTable{
		"global":  globalTable(t),
		"overlay": globalTable(t).Overlay(override),
	}
	step := d("0.25")
	limit := d("2500")

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			previous := decimal.Zero
			for weight := decimal.Zero; weight.LessThanOrEqual(limit); weight = weight.Add(step) {
				cost, err := pricing.ComputeItemCost(weight, 1, table)
				require.NoError(t, err)
				require.True(t, cost.GreaterThanOrEqual(previous),
					"cost dropped at %s lb: %s -> %s", weight, previous, cost)
				previous = cost
			}
		})
	}
}

func TestComputeOrderSubtotal(t *testing.T) {
	table := globalTable(t)

	subtotal, err := pricing.ComputeOrderSubtotal([]pricing.Parcel{
		parcel{d("5"), 2},
		parcel{d("300"), 1},
	}, table)

	require.NoError(t, err)
	assert.Equal(t, "100.00", subtotal.StringFixed(2))
}

func TestSurchargeTaxAndTotal(t *testing.T) {
	t.Run("should follow the worked example", func(t *testing.T) {
		subtotal := d("100.00")

		fuel := pricing.ComputeFuelSurcharge(subtotal, d("10"))
		tax := pricing.ComputeTax(subtotal, fuel, d("5"))
		total := pricing.ComputeTotal(subtotal, fuel, tax)

		assert.Equal(t, "10.00", fuel.StringFixed(2))
		assert.Equal(t, "5.50", tax.StringFixed(2))
		assert.Equal(t, "115.50", total.StringFixed(2))
	})

	t.Run("should round half-up", func(t *testing.T) {
		assert.Equal(t, "5.03", pricing.ComputeFuelSurcharge(d("10.05"), d("50")).StringFixed(2))
		assert.Equal(t, "1.92", pricing.ComputeTax(d("33.33"), d("5.00"), d("5")).StringFixed(2))
	})

	t.Run("should not round the final sum", func(t *testing.T) {
		assert.True(t, d("40.25").Equal(pricing.ComputeTotal(d("33.33"), d("5.00"), d("1.92"))))
	})
}

func TestRateTable_Overlay(t *testing.T) {
	global := globalTable(t)

	t.Run("should fall back band by band", func(t *testing.T) {
		override, err := pricing.NewPartialRateTable(map[pricing.Band]decimal.Decimal{
			1:  d("8"),
			10: d("0.25"),
		})
		require.NoError(t, err)

		merged := global.Overlay(override)

		require.True(t, merged.IsComplete())
		assert.Equal(t, "8", merged.Rate(1).Amount.String())
		assert.Equal(t, "15", merged.Rate(2).Amount.String())
		cost, err := merged.Cost(d("300"))
		require.NoError(t, err)
		assert.Equal(t, "75.00", cost.StringFixed(2))
	})

	t.Run("should honour a present zero rate", func(t *testing.T) {
		override, err := pricing.NewPartialRateTable(map[pricing.Band]decimal.Decimal{1: decimal.Zero})
		require.NoError(t, err)

		cost, err := global.Overlay(override).Cost(d("3"))

		require.NoError(t, err)
		assert.True(t, cost.IsZero())
	})
}

func TestNewRateTable(t *testing.T) {
	t.Run("should require twelve rates", func(t *testing.T) {
		_, err := pricing.NewRateTable(d("1"), d("2"))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject negative rates", func(t *testing.T) {
		rates := make([]decimal.Decimal, pricing.BandCount)
		rates[4] = d("-1")

		_, err := pricing.NewRateTable(rates...)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown bands in partial tables", func(t *testing.T) {
		_, err := pricing.NewPartialRateTable(map[pricing.Band]decimal.Decimal{13: d("1")})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
