package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"go.uber.org/zap"
)

// EditOrderCommandHandler applies edits while the order is editable and reprices it.
type EditOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	pricer     services.OrderPricer
	logger     *zap.Logger
	now        func() time.Time
}

func NewEditOrderCommandHandler(
	uowFactory OrderUoWFactory, locker ports.OrderLocker, pricer services.OrderPricer, logger *zap.Logger,
) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		pricer:     pricer,
		logger:     logger.With(zap.String("component", "edit_order_handler")),
		now:        time.Now,
	}
}

func (h *EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	log := stepLogger(h.logger, cmd.OrderID(), OpEditOrder)

	unlock, err := h.locker.Lock(ctx, cmd.OrderID())
	if err != nil {
		return stepFailed(log, cmd.OrderID(), OpEditOrder, err)
	}
	defer unlock()

	uow := h.uowFactory.Create()
	o, err := loadOwnedOrder(ctx, uow, cmd.OrderID(), cmd.Actor())
	if err != nil {
		return stepFailed(log, cmd.OrderID(), OpEditOrder, err)
	}
	if err = o.Edit(cmd.Actor(), cmd.Details()); err != nil {
		return stepFailed(log, cmd.OrderID(), OpEditOrder, err)
	}
	if err = h.pricer.CheckAcceptance(o, h.now()); err != nil {
		log.Info("order edit rejected", zap.Error(err))
		return err
	}
	discount, err := findDiscount(ctx, uow, cmd.Actor())
	if err != nil {
		return stepFailed(log, cmd.OrderID(), OpEditOrder, err)
	}
	if err = h.pricer.Price(o, discount); err != nil {
		return stepFailed(log, cmd.OrderID(), OpEditOrder, err)
	}
	if err = saveOrder(ctx, uow, o); err != nil {
		return stepFailed(log, cmd.OrderID(), OpEditOrder, err)
	}

	log.Info("order edited", zap.String("status", o.Status().Code()))
	return nil
}
