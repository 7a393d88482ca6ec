package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh unit of work per business operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork binds repositories to one transaction. Repositories obtained
// before Begin work outside any transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	AddressRepository() AddressRepository

	DiscountRepository() DiscountRepository
}
