package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// OrderLocker serializes workflow steps per order.
type OrderLocker interface {
	// Lock returns errs.ErrOrderLocked when another step holds the order.
	// The returned function releases the lock.
	Lock(ctx context.Context, orderID kernel.UUID) (func(), error)
}
