package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// EditOrderCommand replaces the details of an order that has not entered payment yet.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	details order.Details

	guard guard.ConstructorGuard
}

func NewEditOrderCommand(orderID kernel.UUID, actor kernel.Actor, details order.Details) (EditOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return EditOrderCommand{}, err
	}
	return EditOrderCommand{
		orderID: orderID,
		actor:   actor,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

func (c EditOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c EditOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c EditOrderCommand) Details() order.Details {
	return c.details
}
