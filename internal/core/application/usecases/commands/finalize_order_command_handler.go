package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/address"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"go.uber.org/zap"
)

// FinalizeOrderCommandHandler books the shipment with the carrier and then
// captures or releases the preauthorized payment.
//
// Every status change is stored before the next external call, so a crash
// leaves the order in the last state the providers actually reached.
type FinalizeOrderCommandHandler struct {
	uowFactory UoWFactory
	locker     ports.OrderLocker
	carrier    ports.Carrier
	gateway    ports.PaymentGateway
	logger     *zap.Logger
}

func NewFinalizeOrderCommandHandler(
	uowFactory UoWFactory,
	locker ports.OrderLocker,
	carrier ports.Carrier,
	gateway ports.PaymentGateway,
	logger *zap.Logger,
) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		carrier:    carrier,
		gateway:    gateway,
		logger:     logger.With(zap.String("component", "finalize_order_handler")),
	}
}

// Handle returns the status the order ended in.
//
// Failed bookings report errs.ErrCarrierFailure after the preauthorization has
// been released. A booked order whose capture failed reports
// errs.ErrCaptureInconsistency and is left in capture_failed for reconciliation.
func (h *FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}
	log := stepLogger(h.logger, cmd.OrderID(), OpFinalize)

	unlock, err := h.locker.Lock(ctx, cmd.OrderID())
	if err != nil {
		return order.Unknown, stepFailed(log, cmd.OrderID(), OpFinalize, err)
	}
	defer unlock()

	uow := h.uowFactory.Create()
	o, err := loadOwnedOrder(ctx, uow, cmd.OrderID(), cmd.Actor())
	if err != nil {
		return order.Unknown, stepFailed(log, cmd.OrderID(), OpFinalize, err)
	}
	if err = o.ValidateStep(order.StepFinalize); err != nil {
		return o.Status(), stepFailed(log, cmd.OrderID(), OpFinalize, err)
	}

	if err = h.saveToAddressBook(ctx, uow, o, cmd.Actor()); err != nil {
		return o.Status(), stepFailed(log, cmd.OrderID(), OpFinalize, err)
	}

	booking := h.carrier.CreateShipment(ctx, o, cmd.Actor().AccountNumber())
	if booking.Succeeded {
		err = h.settleBooked(ctx, uow, o, booking, log)
	} else {
		err = h.settleFailed(ctx, uow, o, booking, log)
	}
	if err != nil {
		return o.Status(), stepFailed(log, cmd.OrderID(), OpFinalize, err)
	}

	log.Info("order finalized", zap.String("status", o.Status().Code()), zap.String("label_id", o.LabelID()))
	return o.Status(), nil
}

// saveToAddressBook copies the flagged addresses of a registered customer and
// consumes the flags. Guests have no address book, so their flags are dropped.
func (h *FinalizeOrderCommandHandler) saveToAddressBook(
	ctx context.Context, uow UoW, o *order.Order, actor kernel.Actor,
) error {
	savePickup, saveDestination := o.PendingAddressBookSaves()
	if !savePickup && !saveDestination {
		return nil
	}

	var entries []*address.Address
	if actor.IsAccountHolder() {
		contact := o.Contact()
		if savePickup {
			entry, err := address.NewAddress(kernel.NewUUID(), actor.UserID(), address.Pickup,
				o.Pickup(), contact.UserEmail, contact.UserPhone)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		if saveDestination {
			entry, err := address.NewAddress(kernel.NewUUID(), actor.UserID(), address.Destination,
				o.Destination(), contact.DestinationEmail, contact.DestinationPhone)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
	}
	o.AddressBookSavesDone()

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	for _, entry := range entries {
		if err := uow.AddressRepository().Add(ctx, entry); err != nil {
			return err
		}
	}
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (h *FinalizeOrderCommandHandler) settleBooked(
	ctx context.Context, uow UoW, o *order.Order, booking ports.Booking, log *zap.Logger,
) error {
	if err := o.RecordLabel(booking.LabelID); err != nil {
		return err
	}
	if err := saveOrder(ctx, uow, o); err != nil {
		return err
	}
	log.Info("shipment booked", zap.String("label_id", booking.LabelID))

	if o.IsPreauthorized() {
		if captureErr := h.gateway.Complete(ctx, o, true); captureErr != nil {
			if err := o.FailSettlement(); err != nil {
				return err
			}
			if err := saveOrder(ctx, uow, o); err != nil {
				return err
			}
			return fmt.Errorf("%w: %w", errs.ErrCaptureInconsistency, captureErr)
		}
	}

	if err := o.Capture(); err != nil {
		return err
	}
	return saveOrder(ctx, uow, o)
}

func (h *FinalizeOrderCommandHandler) settleFailed(
	ctx context.Context, uow UoW, o *order.Order, booking ports.Booking, log *zap.Logger,
) error {
	if err := o.RecordBookingFailure(); err != nil {
		return err
	}
	if err := saveOrder(ctx, uow, o); err != nil {
		return err
	}
	log.Warn("shipment booking failed", zap.String("reason", booking.Reason))

	if o.IsPreauthorized() {
		if refundErr := h.gateway.Complete(ctx, o, false); refundErr != nil {
			log.Error("preauthorization release failed", zap.Error(refundErr))
			if err := o.FailSettlement(); err != nil {
				return err
			}
			if err := saveOrder(ctx, uow, o); err != nil {
				return err
			}
		} else {
			if err := o.Refund(); err != nil {
				return err
			}
			if err := saveOrder(ctx, uow, o); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("%w: %s", errs.ErrCarrierFailure, booking.Reason)
}
