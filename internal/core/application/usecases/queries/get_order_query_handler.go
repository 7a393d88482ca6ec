package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler builds the customer's view of an order from the orders
// and order_items tables.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ErrUnauthenticated for callers without identity,
// an ObjectNotFoundError for unknown orders and errs.ErrNotOwner when the
// order belongs to someone else.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if !query.Actor().IsAuthenticated() {
		return GetOrderQueryResponse{}, errs.ErrUnauthenticated
	}

	var (
		resp                           GetOrderQueryResponse
		userID                         int64
		guestSession, status, shipping string
		pickup, destination            kernel.PostalAddressFields
		subtotal, fuel, tax, total     decimal.Decimal
		requestedDate, createdAt       time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			user_id,
			guest_session,
			status,
			shipping_type,
			requested_date,
			comments,
			pickup_organization,
			pickup_address_line1,
			pickup_address_line2,
			pickup_locality,
			pickup_administrative_area,
			pickup_postal_code,
			pickup_country_code,
			destination_organization,
			destination_address_line1,
			destination_address_line2,
			destination_locality,
			destination_administrative_area,
			destination_postal_code,
			destination_country_code,
			user_email,
			user_phone,
			destination_email,
			destination_phone,
			subtotal,
			fuel_surcharge,
			tax,
			total,
			label_id,
			gateway_order_no,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Value()).Row()

	err := row.Scan(
		&resp.Number,
		&userID,
		&guestSession,
		&status,
		&shipping,
		&requestedDate,
		&resp.Comments,
		&pickup.Organization,
		&pickup.AddressLine1,
		&pickup.AddressLine2,
		&pickup.Locality,
		&pickup.AdministrativeArea,
		&pickup.PostalCode,
		&pickup.CountryCode,
		&destination.Organization,
		&destination.AddressLine1,
		&destination.AddressLine2,
		&destination.Locality,
		&destination.AdministrativeArea,
		&destination.PostalCode,
		&destination.CountryCode,
		&resp.Contact.UserEmail,
		&resp.Contact.UserPhone,
		&resp.Contact.DestinationEmail,
		&resp.Contact.DestinationPhone,
		&subtotal,
		&fuel,
		&tax,
		&total,
		&resp.LabelID,
		&resp.GatewayOrderNo,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if !query.Actor().Owns(kernel.RestoreOwner(userID, guestSession)) {
		return GetOrderQueryResponse{}, errs.ErrNotOwner
	}

	resp.ID = query.OrderID()
	resp.RequestedDate = requestedDate.UTC()
	resp.CreatedAt = createdAt
	resp.Subtotal = pricing.FormatPrice(subtotal)
	resp.FuelSurcharge = pricing.FormatPrice(fuel)
	resp.Tax = pricing.FormatPrice(tax)
	resp.Total = pricing.FormatPrice(total)

	if resp.Status, err = order.ParseStatus(status); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ShippingType, err = order.ParseShippingType(shipping); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Pickup, err = kernel.NewPostalAddress(pickup); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Destination, err = kernel.NewPostalAddress(destination); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Items, err = h.items(ctx, resp.Number); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) items(ctx context.Context, number int64) ([]OrderItemView, error) {
	items := make([]OrderItemView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			description,
			quantity,
			weight,
			length,
			width,
			height,
			cost
		FROM order_items
		WHERE order_number = ?
		ORDER BY position
	`, number).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var f order.ItemFields
		var cost decimal.Decimal

		if err = rows.Scan(&f.Description, &f.Quantity, &f.Weight, &f.Length, &f.Width, &f.Height, &cost); err != nil {
			return nil, err
		}

		item := order.RestoreItem(f, cost)
		items = append(items, OrderItemView{
			Description: item.Description(),
			Quantity:    item.Quantity(),
			Weight:      item.Weight().String(),
			Length:      item.Length().String(),
			Width:       item.Width().String(),
			Height:      item.Height().String(),
			Cost:        pricing.FormatPrice(item.Cost()),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
