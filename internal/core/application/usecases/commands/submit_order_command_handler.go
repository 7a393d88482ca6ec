package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"

	"go.uber.org/zap"
)

// SubmitOrderCommandHandler validates, prices and stores a new order.
// Orders breaking an acceptance rule (combined weight, pickup date, excluded
// destination) are rejected before anything is stored or sent anywhere.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricer     services.OrderPricer
	logger     *zap.Logger
	now        func() time.Time
}

func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory, pricer services.OrderPricer, logger *zap.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
		logger:     logger.With(zap.String("component", "submit_order_handler")),
		now:        time.Now,
	}
}

func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	log := stepLogger(h.logger, cmd.OrderID(), OpSubmitOrder)

	o, err := order.NewOrder(cmd.OrderID(), cmd.Actor(), cmd.Details())
	if err != nil {
		return err
	}
	if err = h.pricer.CheckAcceptance(o, h.now()); err != nil {
		log.Info("order rejected", zap.Error(err))
		return err
	}

	uow := h.uowFactory.Create()
	discount, err := findDiscount(ctx, uow, cmd.Actor())
	if err != nil {
		return stepFailed(log, cmd.OrderID(), OpSubmitOrder, err)
	}
	if err = h.pricer.Price(o, discount); err != nil {
		return stepFailed(log, cmd.OrderID(), OpSubmitOrder, err)
	}

	if err = uow.Begin(ctx); err != nil {
		return stepFailed(log, cmd.OrderID(), OpSubmitOrder, err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return stepFailed(log, cmd.OrderID(), OpSubmitOrder, err)
	}
	if err = uow.Commit(ctx); err != nil {
		return stepFailed(log, cmd.OrderID(), OpSubmitOrder, err)
	}

	log.Info("order submitted",
		zap.String("status", o.Status().Code()),
		zap.String("total", o.Costs().Total.StringFixed(2)))
	return nil
}
