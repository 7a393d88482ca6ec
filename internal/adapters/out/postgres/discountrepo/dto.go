// Package discountrepo reads per-customer rate overrides.
package discountrepo

import (
	"freight/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// DiscountDTO is one row of client_discounts. A NULL band keeps the global rate;
// a NULL fuel surcharge keeps the global percentage.
type DiscountDTO struct {
	UserID        int64               `gorm:"primaryKey;autoIncrement:false"`
	Band1         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Band2         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Band3         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Band4         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Band5         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Band6         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Band7         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Band8         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Band9         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Band10        decimal.NullDecimal `gorm:"type:numeric(10,4)"`
	Band11        decimal.NullDecimal `gorm:"type:numeric(10,4)"`
	Band12        decimal.NullDecimal `gorm:"type:numeric(10,4)"`
	FuelSurcharge decimal.NullDecimal `gorm:"type:numeric(6,2)"`
}

func (DiscountDTO) TableName() string {
	return "client_discounts"
}

func (dto DiscountDTO) bands() []decimal.NullDecimal {
	return []decimal.NullDecimal{
		dto.Band1, dto.Band2, dto.Band3, dto.Band4, dto.Band5, dto.Band6,
		dto.Band7, dto.Band8, dto.Band9, dto.Band10, dto.Band11, dto.Band12,
	}
}

func toDomain(dto DiscountDTO) (*pricing.ClientDiscount, error) {
	rates := make(map[pricing.Band]decimal.Decimal)
	for i, band := range dto.bands() {
		if band.Valid {
			rates[pricing.Band(i+1)] = band.Decimal
		}
	}
	table, err := pricing.NewPartialRateTable(rates)
	if err != nil {
		return nil, err
	}

	var fuel *decimal.Decimal
	if dto.FuelSurcharge.Valid {
		fuel = &dto.FuelSurcharge.Decimal
	}
	return pricing.NewClientDiscount(dto.UserID, table, fuel)
}

// FromDomain is used to seed overrides; the service itself never writes them.
func FromDomain(d *pricing.ClientDiscount) DiscountDTO {
	band := func(b pricing.Band) decimal.NullDecimal {
		r := d.Rates().Rate(b)
		return decimal.NullDecimal{Decimal: r.Amount, Valid: r.Set}
	}
	dto := DiscountDTO{
		UserID: d.UserID(),
		Band1:  band(1),
		Band2:  band(2),
		Band3:  band(3),
		Band4:  band(4),
		Band5:  band(5),
		Band6:  band(6),
		Band7:  band(7),
		Band8:  band(8),
		Band9:  band(9),
		Band10: band(10),
		Band11: band(11),
		Band12: band(12),
	}
	if fuel, ok := d.FuelSurcharge(); ok {
		dto.FuelSurcharge = decimal.NullDecimal{Decimal: fuel, Valid: true}
	}
	return dto
}
