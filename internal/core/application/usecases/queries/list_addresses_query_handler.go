package queries

import (
	"context"

	"freight/internal/core/domain/model/address"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const addressColumns = "id, type, organization, address_line1, address_line2, locality, administrative_area, postal_code, country_code, email, phone"

type ListAddressesQueryHandler struct {
	db *gorm.DB
}

func NewListAddressesQueryHandler(db *gorm.DB) ListAddressesQueryHandler {
	return ListAddressesQueryHandler{db: db}
}

// Handle returns the entries in the order they were saved.
func (h ListAddressesQueryHandler) Handle(
	ctx context.Context,
	query ListAddressesQuery,
) ([]ListAddressesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	actor := query.Actor()
	if !actor.IsAuthenticated() {
		return nil, errs.ErrUnauthenticated
	}

	entries := make([]ListAddressesQueryResponse, 0)
	if !actor.IsAccountHolder() {
		return entries, nil
	}

	stmt := h.db.WithContext(ctx).
		Table("addresses").
		Select(addressColumns).
		Where("user_id = ?", actor.UserID())
	if query.AddressType() != "" {
		stmt = stmt.Where("type = ?", string(query.AddressType()))
	}

	rows, err := stmt.Order("created_at, id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry ListAddressesQueryResponse
		var id uuid.UUID
		var addressType string
		var postal kernel.PostalAddressFields

		err = rows.Scan(
			&id,
			&addressType,
			&postal.Organization,
			&postal.AddressLine1,
			&postal.AddressLine2,
			&postal.Locality,
			&postal.AdministrativeArea,
			&postal.PostalCode,
			&postal.CountryCode,
			&entry.Email,
			&entry.Phone,
		)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFrom(id); err != nil {
			return nil, err
		}
		if entry.Type, err = address.ParseType(addressType); err != nil {
			return nil, err
		}
		if entry.Postal, err = kernel.NewPostalAddress(postal); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
