package ports

import (
	"context"

	"freight/internal/core/domain/model/order"
)

// Receipt is the gateway's verdict on a preauthorization.
type Receipt struct {
	Accepted      bool
	ResultCode    string
	OrderNo       string
	TransactionNo string
}

// PaymentGateway talks to the hosted checkout of the payment provider.
// Implementations only perform network calls; status changes are the caller's job.
// Every failure wraps errs.ErrGatewayFailure.
type PaymentGateway interface {
	// Preload requests a checkout ticket for the order total.
	Preload(ctx context.Context, o *order.Order) (string, error)

	// Receipt fetches the outcome of the checkout identified by ticket.
	Receipt(ctx context.Context, ticket string) (Receipt, error)

	// Complete captures the preauthorized total (capture true) or releases the
	// preauthorization with a zero completion (capture false).
	Complete(ctx context.Context, o *order.Order, capture bool) error
}
