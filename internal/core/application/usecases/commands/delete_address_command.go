package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrDeleteAddressCommandIsNotConstructed = errors.New(
	"DeleteAddressCommand must be created via NewDeleteAddressCommand constructor",
)

// DeleteAddressCommand removes an entry from the caller's address book.
type DeleteAddressCommand struct { //nolint:recvcheck //using for validation
	addressID kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewDeleteAddressCommand(addressID kernel.UUID, actor kernel.Actor) (DeleteAddressCommand, error) {
	if err := addressID.Validate(); err != nil {
		return DeleteAddressCommand{}, err
	}
	return DeleteAddressCommand{addressID: addressID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteAddressCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAddressCommandIsNotConstructed)
}

func (c DeleteAddressCommand) AddressID() kernel.UUID {
	return c.addressID
}

func (c DeleteAddressCommand) Actor() kernel.Actor {
	return c.actor
}
