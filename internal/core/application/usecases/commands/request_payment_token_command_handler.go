package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"go.uber.org/zap"
)

// RequestPaymentTokenCommandHandler issues checkout tickets. It is the only
// idempotent step: a live ticket is returned again without calling the gateway.
type RequestPaymentTokenCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	gateway    ports.PaymentGateway
	ticketTTL  time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewRequestPaymentTokenCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	gateway ports.PaymentGateway,
	ticketTTL time.Duration,
	logger *zap.Logger,
) RequestPaymentTokenCommandHandler {
	return RequestPaymentTokenCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		gateway:    gateway,
		ticketTTL:  ticketTTL,
		logger:     logger.With(zap.String("component", "payment_token_handler")),
		now:        time.Now,
	}
}

// Handle returns the ticket the checkout page should be opened with.
func (h *RequestPaymentTokenCommandHandler) Handle(ctx context.Context, cmd RequestPaymentTokenCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	log := stepLogger(h.logger, cmd.OrderID(), OpRequestToken)

	unlock, err := h.locker.Lock(ctx, cmd.OrderID())
	if err != nil {
		return "", stepFailed(log, cmd.OrderID(), OpRequestToken, err)
	}
	defer unlock()

	uow := h.uowFactory.Create()
	o, err := loadOwnedOrder(ctx, uow, cmd.OrderID(), cmd.Actor())
	if err != nil {
		return "", stepFailed(log, cmd.OrderID(), OpRequestToken, err)
	}
	if err = o.ValidateStep(order.StepPayment); err != nil {
		return "", stepFailed(log, cmd.OrderID(), OpRequestToken, err)
	}

	if !cmd.TicketExpired() {
		if ticket, ok := o.LiveTicket(h.now(), h.ticketTTL); ok {
			log.Info("reusing live payment ticket")
			return ticket, nil
		}
	}

	ticket, err := h.gateway.Preload(ctx, o)
	if err != nil {
		return "", stepFailed(log, cmd.OrderID(), OpRequestToken, err)
	}
	if err = o.AttachPaymentTicket(ticket, h.now()); err != nil {
		return "", stepFailed(log, cmd.OrderID(), OpRequestToken, err)
	}
	if err = saveOrder(ctx, uow, o); err != nil {
		return "", stepFailed(log, cmd.OrderID(), OpRequestToken, err)
	}

	log.Info("payment ticket issued")
	return ticket, nil
}
