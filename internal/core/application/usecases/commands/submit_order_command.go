package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand places a new shipment order.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(kernel.NewUUID(), actor, details)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	details order.Details

	guard guard.ConstructorGuard
}

func NewSubmitOrderCommand(orderID kernel.UUID, actor kernel.Actor, details order.Details) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SubmitOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SubmitOrderCommand) Details() order.Details {
	return c.details
}

func (c *SubmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setActor(actor kernel.Actor) error {
	if !actor.IsAuthenticated() {
		return errs.ErrUnauthenticated
	}
	c.actor = actor
	return nil
}
