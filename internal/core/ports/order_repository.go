package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add stores a new order and assigns its sequence number.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores changes to an existing order. The write only succeeds if
	// the stored version still matches the aggregate's version; otherwise
	// errs.ErrVersionIsInvalid is returned.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by its external identifier or returns errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByStatus loads every order in the given status, oldest first.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
