package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrRetrieveLabelCommandIsNotConstructed = errors.New(
	"RetrieveLabelCommand must be created via NewRetrieveLabelCommand constructor",
)

// RetrieveLabelCommand downloads the shipping label of a booked order.
// It is a command because the first download stores the carrier's copy.
type RetrieveLabelCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewRetrieveLabelCommand(orderID kernel.UUID, actor kernel.Actor) (RetrieveLabelCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RetrieveLabelCommand{}, err
	}
	return RetrieveLabelCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c RetrieveLabelCommand) Validate() error {
	return c.guard.Validate(ErrRetrieveLabelCommandIsNotConstructed)
}

func (c RetrieveLabelCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RetrieveLabelCommand) Actor() kernel.Actor {
	return c.actor
}
