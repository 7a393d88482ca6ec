package address

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Type distinguishes pickup entries from destination entries.
type Type string

const (
	Pickup      Type = "pickup"
	Destination Type = "destination"
)

func ParseType(v string) (Type, error) {
	switch Type(v) {
	case Pickup, Destination:
		return Type(v), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("addressType", fmt.Errorf("%q is not an address type", v))
	}
}

// Address is one address-book entry.
type Address struct {
	id          kernel.UUID
	ownerID     int64
	addressType Type
	postal      kernel.PostalAddress
	email       string
	phone       string

	guard guard.ConstructorGuard
}

// NewAddress creates an entry for the registered customer ownerID.
func NewAddress(
	id kernel.UUID, ownerID int64, addressType Type, postal kernel.PostalAddress, email, phone string,
) (*Address, error) {
	var problems []error
	problems = append(problems, id.Validate(), postal.Validate())
	if ownerID <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("ownerID", ownerID, 1, "max int64"))
	}
	if _, err := ParseType(string(addressType)); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Address{
		id:          id,
		ownerID:     ownerID,
		addressType: addressType,
		postal:      postal,
		email:       strings.TrimSpace(email),
		phone:       strings.TrimSpace(phone),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreAddress rebuilds a persisted entry.
func RestoreAddress(
	id kernel.UUID, ownerID int64, addressType Type, postal kernel.PostalAddress, email, phone string,
) *Address {
	return &Address{
		id:          id,
		ownerID:     ownerID,
		addressType: addressType,
		postal:      postal,
		email:       email,
		phone:       phone,
		guard:       guard.NewConstructorGuard(),
	}
}

func (a *Address) Validate() error {
	if a == nil {
		return ErrAddressIsNotConstructed
	}
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *Address) ID() kernel.UUID {
	return a.id
}

func (a *Address) OwnerID() int64 {
	return a.ownerID
}

func (a *Address) Type() Type {
	return a.addressType
}

func (a *Address) Postal() kernel.PostalAddress {
	return a.postal
}

func (a *Address) Email() string {
	return a.email
}

func (a *Address) Phone() string {
	return a.phone
}

// IsOwnedBy reports whether actor may see or delete the entry.
func (a *Address) IsOwnedBy(actor kernel.Actor) bool {
	return actor.IsAccountHolder() && actor.UserID() == a.ownerID
}
