package order

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("item must be created via NewItem")

// Item limits per line.
const (
	MinItemQuantity = 1
	MaxItemQuantity = 10
)

var (
	maxItemWeight = decimal.NewFromInt(500)
	maxItemLength = decimal.NewFromInt(72)
	maxItemWidth  = decimal.NewFromInt(48)
	maxItemHeight = decimal.NewFromInt(72)
)

// Item is one order line: quantity identical pieces. Weight is per piece in
// pounds, dimensions are in inches. Cost is the line price, set by repricing.
type Item struct {
	description string
	quantity    int
	weight      decimal.Decimal
	length      decimal.Decimal
	width       decimal.Decimal
	height      decimal.Decimal
	cost        decimal.Decimal

	guard guard.ConstructorGuard
}

// ItemFields carries raw line values into NewItem.
type ItemFields struct {
	Description string
	Quantity    int
	Weight      decimal.Decimal
	Length      decimal.Decimal
	Width       decimal.Decimal
	Height      decimal.Decimal
}

func NewItem(f ItemFields) (Item, error) {
	if err := errors.Join(
		checkQuantity(f.Quantity),
		checkMeasure("weight", f.Weight, maxItemWeight),
		checkMeasure("length", f.Length, maxItemLength),
		checkMeasure("width", f.Width, maxItemWidth),
		checkMeasure("height", f.Height, maxItemHeight),
	); err != nil {
		return Item{}, err
	}

	return Item{
		description: strings.TrimSpace(f.Description),
		quantity:    f.Quantity,
		weight:      f.Weight,
		length:      f.Length,
		width:       f.Width,
		height:      f.Height,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem rebuilds a persisted line, cost included, without range checks.
func RestoreItem(f ItemFields, cost decimal.Decimal) Item {
	return Item{
		description: f.Description,
		quantity:    f.Quantity,
		weight:      f.Weight,
		length:      f.Length,
		width:       f.Width,
		height:      f.Height,
		cost:        cost,
		guard:       guard.NewConstructorGuard(),
	}
}

func checkQuantity(q int) error {
	if q < MinItemQuantity || q > MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", q, MinItemQuantity, MaxItemQuantity)
	}
	return nil
}

func checkMeasure(name string, v, maxValue decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(maxValue) {
		return errs.NewValueIsOutOfRangeError(name, v.String(), 0, maxValue.String())
	}
	return nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Description falls back to the piece dimensions when none was entered.
func (i Item) Description() string {
	if i.description != "" {
		return i.description
	}
	return fmt.Sprintf("Piece: %s x %s x %s", i.length, i.width, i.height)
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Weight() decimal.Decimal {
	return i.weight
}

func (i Item) Length() decimal.Decimal {
	return i.length
}

func (i Item) Width() decimal.Decimal {
	return i.width
}

func (i Item) Height() decimal.Decimal {
	return i.height
}

func (i Item) Cost() decimal.Decimal {
	return i.cost
}

func (i Item) EnteredDescription() string {
	return i.description
}

// TotalWeight is the weight of all pieces of the line.
func (i Item) TotalWeight() decimal.Decimal {
	return i.weight.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Fields returns the entered values of the line.
func (i Item) Fields() ItemFields {
	return ItemFields{
		Description: i.description,
		Quantity:    i.quantity,
		Weight:      i.weight,
		Length:      i.length,
		Width:       i.width,
		Height:      i.height,
	}
}

func (i Item) withCost(cost decimal.Decimal) Item {
	i.cost = cost
	return i
}
