package queries

import (
	"errors"

	"freight/internal/core/domain/model/address"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrListAddressesQueryIsNotConstructed = errors.New(
		"ListAddressesQuery must be created via NewListAddressesQuery constructor",
	)
)

// ListAddressesQuery reads the caller's address book. Guests have none.
type ListAddressesQuery struct {
	actor       kernel.Actor
	addressType address.Type

	guard guard.ConstructorGuard
}

// NewListAddressesQuery lists every entry when addressType is empty and only
// pickup or destination entries otherwise.
func NewListAddressesQuery(actor kernel.Actor, addressType string) (ListAddressesQuery, error) {
	q := ListAddressesQuery{actor: actor, guard: guard.NewConstructorGuard()}
	if addressType != "" {
		t, err := address.ParseType(addressType)
		if err != nil {
			return ListAddressesQuery{}, err
		}
		q.addressType = t
	}
	return q, nil
}

func (q ListAddressesQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListAddressesQuery) AddressType() address.Type {
	return q.addressType
}

func (q ListAddressesQuery) Validate() error {
	return q.guard.Validate(ErrListAddressesQueryIsNotConstructed)
}

type ListAddressesQueryResponse struct {
	ID     kernel.UUID
	Type   address.Type
	Postal kernel.PostalAddress
	Email  string
	Phone  string
}
