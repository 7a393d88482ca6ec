package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"go.uber.org/zap"
)

// ConfirmPaymentCommandHandler records the preauthorization outcome.
// Accepted receipts move the order to preauth_success with the gateway
// references; declines and gateway failures move it to preauth_failed.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	gateway    ports.PaymentGateway
	logger     *zap.Logger
}

func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory, locker ports.OrderLocker, gateway ports.PaymentGateway, logger *zap.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		gateway:    gateway,
		logger:     logger.With(zap.String("component", "confirm_payment_handler")),
	}
}

// Handle returns the status the order ended in. A declined payment is not an error.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}
	log := stepLogger(h.logger, cmd.OrderID(), OpConfirm)

	unlock, err := h.locker.Lock(ctx, cmd.OrderID())
	if err != nil {
		return order.Unknown, stepFailed(log, cmd.OrderID(), OpConfirm, err)
	}
	defer unlock()

	uow := h.uowFactory.Create()
	o, err := loadOwnedOrder(ctx, uow, cmd.OrderID(), cmd.Actor())
	if err != nil {
		return order.Unknown, stepFailed(log, cmd.OrderID(), OpConfirm, err)
	}
	if err = o.ValidateStep(order.StepPayment); err != nil {
		return o.Status(), stepFailed(log, cmd.OrderID(), OpConfirm, err)
	}
	ticket := o.Payment().Ticket
	if ticket == "" {
		err = fmt.Errorf("%w: no payment ticket was issued", errs.ErrInvalidStatus)
		return o.Status(), stepFailed(log, cmd.OrderID(), OpConfirm, err)
	}

	receipt, gatewayErr := h.gateway.Receipt(ctx, ticket)
	if gatewayErr == nil && receipt.Accepted {
		err = o.Authorize(receipt.OrderNo, receipt.TransactionNo)
	} else {
		err = o.Decline()
	}
	if err != nil {
		return o.Status(), stepFailed(log, cmd.OrderID(), OpConfirm, err)
	}
	if err = saveOrder(ctx, uow, o); err != nil {
		return o.Status(), stepFailed(log, cmd.OrderID(), OpConfirm, err)
	}

	if gatewayErr != nil {
		return o.Status(), stepFailed(log, cmd.OrderID(), OpConfirm, gatewayErr)
	}
	log.Info("payment preauthorization recorded",
		zap.String("status", o.Status().Code()),
		zap.String("result", receipt.ResultCode))
	return o.Status(), nil
}
