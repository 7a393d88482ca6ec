package commands

import (
	"context"

	"freight/internal/pkg/errs"

	"go.uber.org/zap"
)

type DeleteAddressCommandHandler struct {
	uowFactory AddressUoWFactory
	logger     *zap.Logger
}

func NewDeleteAddressCommandHandler(uowFactory AddressUoWFactory, logger *zap.Logger) DeleteAddressCommandHandler {
	return DeleteAddressCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(zap.String("component", "delete_address_handler")),
	}
}

// Handle deletes the entry if it belongs to the caller. Only registered customers have an address book.
func (h *DeleteAddressCommandHandler) Handle(ctx context.Context, cmd DeleteAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().IsAccountHolder() {
		return errs.ErrUnauthenticated
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	entry, err := uow.AddressRepository().Get(ctx, cmd.AddressID())
	if err != nil {
		return err
	}
	if !entry.IsOwnedBy(cmd.Actor()) {
		return errs.ErrNotOwner
	}
	if err = uow.AddressRepository().Delete(ctx, cmd.AddressID()); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("address deleted",
		zap.String("address_id", cmd.AddressID().String()),
		zap.Int64("user_id", cmd.Actor().UserID()))
	return nil
}
