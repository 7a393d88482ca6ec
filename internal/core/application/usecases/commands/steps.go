package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/pkg/errs"

	"go.uber.org/zap"
)

// Operation names used in logs and step errors.
const (
	OpSubmitOrder   = "submit_order"
	OpEditOrder     = "edit_order"
	OpRequestToken  = "request_payment_token"
	OpConfirm       = "confirm_payment"
	OpFinalize      = "finalize_order"
	OpRetrieveLabel = "retrieve_label"
	OpDeleteAddress = "delete_address"
)

type orderTx interface {
	TxManager
	OrderRepoFactory
}

// loadOwnedOrder loads an order and checks that actor may act on it.
func loadOwnedOrder(ctx context.Context, repos OrderRepoFactory, id kernel.UUID, actor kernel.Actor) (*order.Order, error) {
	if !actor.IsAuthenticated() {
		return nil, errs.ErrUnauthenticated
	}
	o, err := repos.OrderRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(o.Owner()) {
		return nil, errs.ErrNotOwner
	}
	return o, nil
}

// saveOrder persists one status change in its own transaction so that the
// stored status follows every external call immediately.
func saveOrder(ctx context.Context, uow orderTx, o *order.Order) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// findDiscount returns the actor's rate override, or nil when there is none.
func findDiscount(ctx context.Context, repos DiscountRepoFactory, actor kernel.Actor) (*pricing.ClientDiscount, error) {
	if !actor.IsAccountHolder() {
		return nil, nil //nolint:nilnil // no override for guests
	}
	discount, err := repos.DiscountRepository().FindByUserID(ctx, actor.UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil //nolint:nilnil // no override configured
	}
	return discount, err
}

// stepFailed logs err on a logger from stepLogger and returns it as a StepError.
func stepFailed(log *zap.Logger, orderID kernel.UUID, operation string, err error) error {
	log.Error("order step failed", zap.Error(err))
	return errs.NewStepError(orderID.String(), operation, err)
}

func stepLogger(log *zap.Logger, orderID kernel.UUID, operation string) *zap.Logger {
	return log.With(zap.String("order_id", orderID.String()), zap.String("operation", operation))
}
