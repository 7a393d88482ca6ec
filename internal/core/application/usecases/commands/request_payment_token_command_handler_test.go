package commands_test

import (
	"fmt"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const ticketTTL = 15 * time.Minute

func TestRequestPaymentTokenCommandHandler_Handle(t *testing.T) {
	newHandler := func(store *memStore, gateway *MockGateway) commands.RequestPaymentTokenCommandHandler {
		locker, _ := unlockedLocker()
		return commands.NewRequestPaymentTokenCommandHandler(
			memOrderUoWFactory{store}, locker, gateway, ticketTTL, nopLogger())
	}

	t.Run("should preload a ticket and move the order to pending payment", func(t *testing.T) {
		store := newMemStore()
		actor := guest(t)
		o := seedOrder(t, store, actor, order.OrderCreated, order.PaymentRefs{})
		gateway := new(MockGateway)
		gateway.On("Preload", mock.Anything, mock.AnythingOfType("*order.Order")).Return("tkt-9", nil).Once()

		cmd, err := commands.NewRequestPaymentTokenCommand(o.ID(), actor, false)
		require.NoError(t, err)
		h := newHandler(store, gateway)
		ticket, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "tkt-9", ticket)
		snap, _ := store.snapshot(o.ID())
		assert.Equal(t, order.PendingPayment, snap.Status)
		assert.Equal(t, "tkt-9", snap.Payment.Ticket)
		assert.WithinDuration(t, time.Now(), snap.Payment.TicketIssuedAt, time.Minute)
		gateway.AssertExpectations(t)
	})

	t.Run("should hand out a live ticket again without calling the gateway", func(t *testing.T) {
		store := newMemStore()
		actor := guest(t)
		o := seedOrder(t, store, actor, order.PendingPayment,
			order.PaymentRefs{Ticket: "tkt-live", TicketIssuedAt: time.Now().Add(-time.Minute)})
		gateway := new(MockGateway)

		cmd, err := commands.NewRequestPaymentTokenCommand(o.ID(), actor, false)
		require.NoError(t, err)
		h := newHandler(store, gateway)
		ticket, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "tkt-live", ticket)
		gateway.AssertNotCalled(t, "Preload", mock.Anything, mock.Anything)
	})

	for name, tc := range map[string]struct {
		issued  time.Duration
		expired bool
	}{
		"stale ticket":            {issued: -20 * time.Minute},
		"ticket reported expired": {issued: -time.Minute, expired: true},
	} {
		t.Run("should replace a "+name, func(t *testing.T) {
			store := newMemStore()
			actor := guest(t)
			o := seedOrder(t, store, actor, order.PendingPayment,
				order.PaymentRefs{Ticket: "tkt-old", TicketIssuedAt: time.Now().Add(tc.issued)})
			gateway := new(MockGateway)
			gateway.On("Preload", mock.Anything, mock.Anything).Return("tkt-new", nil).Once()

			cmd, err := commands.NewRequestPaymentTokenCommand(o.ID(), actor, tc.expired)
			require.NoError(t, err)
			h := newHandler(store, gateway)
			ticket, err := h.Handle(t.Context(), cmd)

			require.NoError(t, err)
			assert.Equal(t, "tkt-new", ticket)
			gateway.AssertExpectations(t)
		})
	}

	t.Run("should leave the order untouched when the gateway fails", func(t *testing.T) {
		store := newMemStore()
		actor := guest(t)
		o := seedOrder(t, store, actor, order.OrderCreated, order.PaymentRefs{})
		gateway := new(MockGateway)
		gateway.On("Preload", mock.Anything, mock.Anything).
			Return("", fmt.Errorf("%w: preload timed out", errs.ErrGatewayFailure)).Once()

		cmd, err := commands.NewRequestPaymentTokenCommand(o.ID(), actor, false)
		require.NoError(t, err)
		h := newHandler(store, gateway)
		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrGatewayFailure)
		assert.Equal(t, order.OrderCreated, store.status(o.ID()))
		assert.Empty(t, store.history)
	})

	t.Run("should refuse collect-billed orders", func(t *testing.T) {
		store := newMemStore()
		actor := guest(t)
		o := seedOrder(t, store, actor, order.CollectBilling, order.PaymentRefs{})
		gateway := new(MockGateway)

		cmd, err := commands.NewRequestPaymentTokenCommand(o.ID(), actor, false)
		require.NoError(t, err)
		h := newHandler(store, gateway)
		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidStatus)
		gateway.AssertNotCalled(t, "Preload", mock.Anything, mock.Anything)
	})
}
