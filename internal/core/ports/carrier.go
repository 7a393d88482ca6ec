package ports

import (
	"context"

	"freight/internal/core/domain/model/order"
)

// Booking is the outcome of a shipment booking.
type Booking struct {
	Succeeded bool
	LabelID   string
	Reason    string
}

// LabelDocument is a shipping label file.
type LabelDocument struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Carrier books shipments with the carrier's tracking system.
type Carrier interface {
	// CreateShipment never fails with an error: transport problems and
	// rejected bookings are logged and reported as an unsuccessful Booking.
	// clientAccount is the caller's own carrier account, possibly empty.
	CreateShipment(ctx context.Context, o *order.Order, clientAccount string) Booking

	// FetchLabel downloads the label of a booked shipment. Failures wrap errs.ErrCarrierFailure.
	FetchLabel(ctx context.Context, labelID string) (LabelDocument, error)
}

// LabelStore keeps downloaded labels for later downloads.
type LabelStore interface {
	Save(ctx context.Context, doc LabelDocument) error

	// Open returns errs.ErrObjectNotFound when no label was stored under filename.
	Open(ctx context.Context, filename string) (LabelDocument, error)
}
