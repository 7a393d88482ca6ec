package commands_test

import (
	"context"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) DiscountRepository() ports.DiscountRepository {
	args := m.Called()
	return args.Get(0).(ports.DiscountRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockLocker struct{ mock.Mock }

func (m *MockLocker) Lock(ctx context.Context, orderID kernel.UUID) (func(), error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// unlockedLocker grants every lock and counts releases.
func unlockedLocker() (*MockLocker, *int) {
	released := 0
	l := new(MockLocker)
	l.On("Lock", mock.Anything, mock.Anything).Return(func() { released++ }, nil)
	return l, &released
}

type MockGateway struct{ mock.Mock }

func (m *MockGateway) Preload(ctx context.Context, o *order.Order) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Receipt(ctx context.Context, ticket string) (ports.Receipt, error) {
	args := m.Called(ctx, ticket)
	return args.Get(0).(ports.Receipt), args.Error(1)
}

func (m *MockGateway) Complete(ctx context.Context, o *order.Order, capture bool) error {
	args := m.Called(ctx, o, capture)
	return args.Error(0)
}

type MockCarrier struct{ mock.Mock }

func (m *MockCarrier) CreateShipment(ctx context.Context, o *order.Order, clientAccount string) ports.Booking {
	args := m.Called(ctx, o, clientAccount)
	return args.Get(0).(ports.Booking)
}

func (m *MockCarrier) FetchLabel(ctx context.Context, labelID string) (ports.LabelDocument, error) {
	args := m.Called(ctx, labelID)
	return args.Get(0).(ports.LabelDocument), args.Error(1)
}

type MockLabelStore struct{ mock.Mock }

func (m *MockLabelStore) Save(ctx context.Context, doc ports.LabelDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockLabelStore) Open(ctx context.Context, filename string) (ports.LabelDocument, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).(ports.LabelDocument), args.Error(1)
}
