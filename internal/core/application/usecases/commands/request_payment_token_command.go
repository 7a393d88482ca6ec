package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrRequestPaymentTokenCommandIsNotConstructed = errors.New(
	"RequestPaymentTokenCommand must be created via NewRequestPaymentTokenCommand constructor",
)

// RequestPaymentTokenCommand asks for a checkout ticket. TicketExpired is set
// when the checkout page reported that the previous ticket can no longer be used.
type RequestPaymentTokenCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	actor         kernel.Actor
	ticketExpired bool

	guard guard.ConstructorGuard
}

func NewRequestPaymentTokenCommand(
	orderID kernel.UUID, actor kernel.Actor, ticketExpired bool,
) (RequestPaymentTokenCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RequestPaymentTokenCommand{}, err
	}
	return RequestPaymentTokenCommand{
		orderID:       orderID,
		actor:         actor,
		ticketExpired: ticketExpired,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RequestPaymentTokenCommand) Validate() error {
	return c.guard.Validate(ErrRequestPaymentTokenCommandIsNotConstructed)
}

func (c RequestPaymentTokenCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RequestPaymentTokenCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RequestPaymentTokenCommand) TicketExpired() bool {
	return c.ticketExpired
}
