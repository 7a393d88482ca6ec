package commands_test

import (
	"context"
	"errors"
	"sync"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/address"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

var errNoTransaction = errors.New("no active transaction")

// memStore is an in-memory database shared by every unit of work created from it.
type memStore struct {
	mu         sync.Mutex
	orders     map[string]order.Snapshot
	addresses  map[string]*address.Address
	discounts  map[int64]*pricing.ClientDiscount
	history    []order.Status
	updateErr  error
	nextNumber int64
}

func newMemStore() *memStore {
	return &memStore{
		orders:     map[string]order.Snapshot{},
		addresses:  map[string]*address.Address{},
		discounts:  map[int64]*pricing.ClientDiscount{},
		nextNumber: 1,
	}
}

func (s *memStore) put(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = o.Snapshot()
}

func (s *memStore) status(id kernel.UUID) order.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id.String()].Status
}

func (s *memStore) snapshot(id kernel.UUID) (order.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.orders[id.String()]
	return snap, ok
}

func (s *memStore) addressCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.addresses)
}

// memUoW stages writes made inside a transaction until Commit.
type memUoW struct {
	store  *memStore
	inTx   bool
	staged []func()
}

func (u *memUoW) Begin(_ context.Context) error {
	u.inTx = true
	return nil
}

func (u *memUoW) Commit(_ context.Context) error {
	if !u.inTx {
		return errNoTransaction
	}
	u.store.mu.Lock()
	for _, apply := range u.staged {
		apply()
	}
	u.store.mu.Unlock()
	u.staged, u.inTx = nil, false
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	if !u.inTx {
		return errNoTransaction
	}
	u.staged, u.inTx = nil, false
	return nil
}

func (u *memUoW) write(apply func()) {
	if u.inTx {
		u.staged = append(u.staged, apply)
		return
	}
	u.store.mu.Lock()
	apply()
	u.store.mu.Unlock()
}

func (u *memUoW) OrderRepository() ports.OrderRepository {
	return memOrders{u}
}

func (u *memUoW) AddressRepository() ports.AddressRepository {
	return memAddresses{u}
}

func (u *memUoW) DiscountRepository() ports.DiscountRepository {
	return memDiscounts{u}
}

type memOrders struct{ uow *memUoW }

func (r memOrders) Add(_ context.Context, o *order.Order) error {
	s := r.uow.store
	s.mu.Lock()
	n := s.nextNumber
	s.nextNumber++
	s.mu.Unlock()
	if err := o.AssignNumber(n); err != nil {
		return err
	}
	snap := o.Snapshot()
	r.uow.write(func() {
		s.orders[snap.ID.String()] = snap
		s.history = append(s.history, snap.Status)
	})
	return nil
}

func (r memOrders) Update(_ context.Context, o *order.Order) error {
	s := r.uow.store
	s.mu.Lock()
	stored, ok := s.orders[o.ID().String()]
	failure := s.updateErr
	s.mu.Unlock()
	if failure != nil {
		return failure
	}
	if !ok {
		return errs.NewObjectNotFoundError("orderID", o.ID())
	}
	if stored.Version != o.Version() {
		return errs.NewVersionIsInvalidErrorWithCause("order")
	}
	o.SyncVersion(o.Version() + 1)
	snap := o.Snapshot()
	r.uow.write(func() {
		s.orders[snap.ID.String()] = snap
		s.history = append(s.history, snap.Status)
	})
	return nil
}

func (r memOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	snap, ok := r.uow.store.snapshot(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	snap.Details.Items = append([]order.Item(nil), snap.Details.Items...)
	return order.RestoreOrder(snap)
}

func (r memOrders) ListByStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*order.Order
	for _, snap := range s.orders {
		if snap.Status != status {
			continue
		}
		o, err := order.RestoreOrder(snap)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

type memAddresses struct{ uow *memUoW }

func (r memAddresses) Add(_ context.Context, a *address.Address) error {
	s := r.uow.store
	r.uow.write(func() { s.addresses[a.ID().String()] = a })
	return nil
}

func (r memAddresses) Get(_ context.Context, id kernel.UUID) (*address.Address, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.addresses[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("addressID", id)
	}
	return a, nil
}

func (r memAddresses) Delete(_ context.Context, id kernel.UUID) error {
	s := r.uow.store
	r.uow.write(func() { delete(s.addresses, id.String()) })
	return nil
}

type memDiscounts struct{ uow *memUoW }

func (r memDiscounts) FindByUserID(_ context.Context, userID int64) (*pricing.ClientDiscount, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.discounts[userID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("userID", userID)
	}
	return d, nil
}

type memOrderUoWFactory struct{ store *memStore }

func (f memOrderUoWFactory) Create() commands.OrderUoW {
	return &memUoW{store: f.store}
}

type memUoWFactory struct{ store *memStore }

func (f memUoWFactory) Create() commands.UoW {
	return &memUoW{store: f.store}
}

type memAddressUoWFactory struct{ store *memStore }

func (f memAddressUoWFactory) Create() commands.AddressUoW {
	return &memUoW{store: f.store}
}
