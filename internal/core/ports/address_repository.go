package ports

import (
	"context"

	"freight/internal/core/domain/model/address"
	"freight/internal/core/domain/model/kernel"
)

// AddressRepository persists address-book entries.
type AddressRepository interface {
	Add(ctx context.Context, aggregate *address.Address) error

	// Get returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*address.Address, error)

	Delete(ctx context.Context, id kernel.UUID) error
}
