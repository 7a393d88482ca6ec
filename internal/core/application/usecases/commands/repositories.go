// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	DiscountRepoFactory interface {
		DiscountRepository() ports.DiscountRepository
	}

	// OrderUoW serves the steps that only touch the order and read discounts.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		DiscountRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AddressUoW serves address-book maintenance.
	AddressUoW interface {
		TxManager
		AddressRepoFactory
	}

	AddressUoWFactory interface {
		Create() AddressUoW
	}

	// UoW spans orders and the address book, as finalization writes both.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   addresses := uow.AddressRepository()
	//   orders := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		AddressRepoFactory
		DiscountRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
