package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUnreconciledOrdersQueryHandler reads capture_failed orders straight from
// the orders table.
type GetUnreconciledOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetUnreconciledOrdersQueryHandler(db *gorm.DB) GetUnreconciledOrdersQueryHandler {
	return GetUnreconciledOrdersQueryHandler{db: db}
}

// Handle returns the unreconciled orders, oldest first.
func (h GetUnreconciledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnreconciledOrdersQuery,
) ([]GetUnreconciledOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUnreconciledOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			total,
			user_email,
			gateway_order_no,
			gateway_txn_no,
			label_id
		FROM orders
		WHERE status = ?
		ORDER BY number
	`, order.CaptureFailed.Code()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUnreconciledOrdersQueryResponse
		var id uuid.UUID
		var total decimal.Decimal

		err = rows.Scan(
			&id,
			&resp.Number,
			&total,
			&resp.UserEmail,
			&resp.GatewayOrderNo,
			&resp.GatewayTxnNo,
			&resp.LabelID,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFrom(id)
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Total = total
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
