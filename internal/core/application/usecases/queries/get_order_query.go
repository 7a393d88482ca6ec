package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")
)

// GetOrderQuery reads one order on behalf of its owner.
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the order as the customer sees it. Amounts are
// already formatted for display.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Number        int64
	Status        order.Status
	ShippingType  order.ShippingType
	RequestedDate time.Time
	Comments      string
	Pickup        kernel.PostalAddress
	Destination   kernel.PostalAddress
	Contact       order.Contact
	Items         []OrderItemView

	Subtotal      string
	FuelSurcharge string
	Tax           string
	Total         string

	LabelID        string
	GatewayOrderNo string
	CreatedAt      time.Time
}

// OrderItemView is one order line with its display description.
type OrderItemView struct {
	Description string
	Quantity    int
	Weight      string
	Length      string
	Width       string
	Height      string
	Cost        string
}
