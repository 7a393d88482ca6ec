package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetUnreconciledOrdersQueryIsNotConstructed = errors.New(
		"GetUnreconciledOrdersQuery must be created via NewGetUnreconciledOrdersQuery constructor",
	)
)

// GetUnreconciledOrdersQuery lists orders whose payment capture or refund
// failed. Someone has to settle these with the payment gateway by hand.
//
// Example:
//
//	query := NewGetUnreconciledOrdersQuery()
//	handler := NewGetUnreconciledOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list unreconciled orders: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("order %d: gateway txn %s, label %s\n", o.Number, o.GatewayTxnNo, o.LabelID)
//	}
type GetUnreconciledOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUnreconciledOrdersQuery() GetUnreconciledOrdersQuery {
	return GetUnreconciledOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUnreconciledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreconciledOrdersQueryIsNotConstructed)
}

// GetUnreconciledOrdersQueryResponse carries the references needed to find
// the payment at the gateway and the shipment at the carrier.
type GetUnreconciledOrdersQueryResponse struct {
	ID             kernel.UUID
	Number         int64
	Total          decimal.Decimal
	UserEmail      string
	GatewayOrderNo string
	GatewayTxnNo   string
	LabelID        string
}
