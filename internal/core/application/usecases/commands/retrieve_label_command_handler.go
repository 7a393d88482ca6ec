package commands

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"go.uber.org/zap"
)

const labelContentType = "application/pdf"

// LabelFilename is the stored name of the label with the given carrier id.
func LabelFilename(labelID string) string {
	return labelID + ".pdf"
}

// RetrieveLabelCommandHandler serves stored labels and fetches missing ones from the carrier.
type RetrieveLabelCommandHandler struct {
	uowFactory OrderUoWFactory
	carrier    ports.Carrier
	store      ports.LabelStore
	logger     *zap.Logger
}

func NewRetrieveLabelCommandHandler(
	uowFactory OrderUoWFactory, carrier ports.Carrier, store ports.LabelStore, logger *zap.Logger,
) RetrieveLabelCommandHandler {
	return RetrieveLabelCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		store:      store,
		logger:     logger.With(zap.String("component", "retrieve_label_handler")),
	}
}

func (h *RetrieveLabelCommandHandler) Handle(ctx context.Context, cmd RetrieveLabelCommand) (ports.LabelDocument, error) {
	if err := cmd.Validate(); err != nil {
		return ports.LabelDocument{}, err
	}
	log := stepLogger(h.logger, cmd.OrderID(), OpRetrieveLabel)

	o, err := loadOwnedOrder(ctx, h.uowFactory.Create(), cmd.OrderID(), cmd.Actor())
	if err != nil {
		return ports.LabelDocument{}, stepFailed(log, cmd.OrderID(), OpRetrieveLabel, err)
	}
	if o.LabelID() == "" {
		err = fmt.Errorf("%w: order %s has no shipping label", errs.ErrInvalidStatus, o.ID())
		return ports.LabelDocument{}, stepFailed(log, cmd.OrderID(), OpRetrieveLabel, err)
	}

	filename := LabelFilename(o.LabelID())
	doc, err := h.store.Open(ctx, filename)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return ports.LabelDocument{}, stepFailed(log, cmd.OrderID(), OpRetrieveLabel, err)
	}

	doc, err = h.carrier.FetchLabel(ctx, o.LabelID())
	if err != nil {
		return ports.LabelDocument{}, stepFailed(log, cmd.OrderID(), OpRetrieveLabel, err)
	}
	doc.Filename = filename
	if doc.ContentType == "" {
		doc.ContentType = labelContentType
	}
	if err = h.store.Save(ctx, doc); err != nil {
		// The carrier copy is still served; the next download fetches it again.
		log.Warn("label could not be stored", zap.Error(err))
	}

	log.Info("label fetched from carrier", zap.String("filename", filename))
	return doc, nil
}
