package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrFinalizeOrderCommandIsNotConstructed = errors.New(
	"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
)

// FinalizeOrderCommand books the shipment and settles the payment of a paid or collect-billed order.
type FinalizeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewFinalizeOrderCommand(orderID kernel.UUID, actor kernel.Actor) (FinalizeOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FinalizeOrderCommand{}, err
	}
	return FinalizeOrderCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

func (c FinalizeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c FinalizeOrderCommand) Actor() kernel.Actor {
	return c.actor
}
