// Package orderrepo maps order aggregates to the orders and order_items tables.
package orderrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Number is the internal sequence
// the carrier reference is derived from; ID is the external identifier.
type OrderDTO struct {
	Number       int64          `gorm:"primaryKey;autoIncrement"`
	ID           uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	UserID       int64          `gorm:"index;not null;default:0"`
	GuestSession string         `gorm:"type:varchar(128);index"`
	Status       string         `gorm:"type:varchar(32);index;not null"`
	Items        []OrderItemDTO `gorm:"foreignKey:OrderNumber;references:Number;constraint:OnDelete:CASCADE"`
	Pickup       PostalDTO      `gorm:"embedded;embeddedPrefix:pickup_"`
	Destination  PostalDTO      `gorm:"embedded;embeddedPrefix:destination_"`
	Contact      ContactDTO     `gorm:"embedded"`

	ShippingType    string    `gorm:"type:varchar(16);not null"`
	AccountNumber   string    `gorm:"type:varchar(64)"`
	RequestedDate   time.Time `gorm:"not null"`
	Comments        string    `gorm:"type:text"`
	SavePickup      bool
	SaveDestination bool

	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	FuelSurcharge decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	PaymentTicket  string `gorm:"type:varchar(128)"`
	TicketIssuedAt *time.Time
	GatewayOrderNo string `gorm:"type:varchar(64)"`
	GatewayTxnNo   string `gorm:"type:varchar(64)"`
	LabelID        string `gorm:"type:varchar(128)"`
	Version        int    `gorm:"not null;default:0"`
	CreatedAt      time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps the entered order of lines.
type OrderItemDTO struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	OrderNumber int64           `gorm:"index;not null"`
	Position    int             `gorm:"not null"`
	Description string          `gorm:"type:varchar(255)"`
	Quantity    int             `gorm:"not null"`
	Weight      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Length      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Width       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Height      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Cost        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// PostalDTO is an embedded postal address.
type PostalDTO struct {
	Organization       string `gorm:"type:varchar(255)"`
	AddressLine1       string `gorm:"type:varchar(255)"`
	AddressLine2       string `gorm:"type:varchar(255)"`
	Locality           string `gorm:"type:varchar(128)"`
	AdministrativeArea string `gorm:"type:varchar(64)"`
	PostalCode         string `gorm:"type:varchar(16)"`
	CountryCode        string `gorm:"type:char(2)"`
}

type ContactDTO struct {
	UserEmail        string `gorm:"type:varchar(255)"`
	UserPhone        string `gorm:"type:varchar(32)"`
	DestinationEmail string `gorm:"type:varchar(255)"`
	DestinationPhone string `gorm:"type:varchar(32)"`
}

func postalFromDomain(a kernel.PostalAddress) PostalDTO {
	f := a.Fields()
	return PostalDTO{
		Organization:       f.Organization,
		AddressLine1:       f.AddressLine1,
		AddressLine2:       f.AddressLine2,
		Locality:           f.Locality,
		AdministrativeArea: f.AdministrativeArea,
		PostalCode:         f.PostalCode,
		CountryCode:        f.CountryCode,
	}
}

func (p PostalDTO) toDomain() (kernel.PostalAddress, error) {
	return kernel.NewPostalAddress(kernel.PostalAddressFields{
		Organization:       p.Organization,
		AddressLine1:       p.AddressLine1,
		AddressLine2:       p.AddressLine2,
		Locality:           p.Locality,
		AdministrativeArea: p.AdministrativeArea,
		PostalCode:         p.PostalCode,
		CountryCode:        p.CountryCode,
	})
}

// fromDomain converts an order aggregate to its rows. Version is the stored
// version the aggregate was loaded with.
func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	items := make([]OrderItemDTO, 0, len(s.Details.Items))
	for i, item := range s.Details.Items {
		items = append(items, OrderItemDTO{
			OrderNumber: s.Number,
			Position:    i,
			Description: item.EnteredDescription(),
			Quantity:    item.Quantity(),
			Weight:      item.Weight(),
			Length:      item.Length(),
			Width:       item.Width(),
			Height:      item.Height(),
			Cost:        item.Cost(),
		})
	}

	var issuedAt *time.Time
	if !s.Payment.TicketIssuedAt.IsZero() {
		t := s.Payment.TicketIssuedAt
		issuedAt = &t
	}

	return OrderDTO{
		Number:       s.Number,
		ID:           s.ID.Value(),
		UserID:       s.Owner.UserID(),
		GuestSession: s.Owner.GuestSession(),
		Status:       s.Status.Code(),
		Items:        items,
		Pickup:       postalFromDomain(s.Details.Pickup),
		Destination:  postalFromDomain(s.Details.Destination),
		Contact: ContactDTO{
			UserEmail:        s.Details.Contact.UserEmail,
			UserPhone:        s.Details.Contact.UserPhone,
			DestinationEmail: s.Details.Contact.DestinationEmail,
			DestinationPhone: s.Details.Contact.DestinationPhone,
		},
		ShippingType:    string(s.Details.ShippingType),
		AccountNumber:   s.Details.AccountNumber,
		RequestedDate:   s.Details.RequestedDate,
		Comments:        s.Details.Comments,
		SavePickup:      s.Details.SavePickup,
		SaveDestination: s.Details.SaveDestination,
		Subtotal:        s.Costs.Subtotal,
		FuelSurcharge:   s.Costs.FuelSurcharge,
		Tax:             s.Costs.Tax,
		Total:           s.Costs.Total,
		PaymentTicket:   s.Payment.Ticket,
		TicketIssuedAt:  issuedAt,
		GatewayOrderNo:  s.Payment.GatewayOrderNo,
		GatewayTxnNo:    s.Payment.GatewayTxnNo,
		LabelID:         s.LabelID,
		Version:         s.Version,
	}
}

// toDomain rebuilds the aggregate. Items must be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	shippingType, err := order.ParseShippingType(dto.ShippingType)
	if err != nil {
		return nil, err
	}
	pickup, err := dto.Pickup.toDomain()
	if err != nil {
		return nil, err
	}
	destination, err := dto.Destination.toDomain()
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.RestoreItem(order.ItemFields{
			Description: item.Description,
			Quantity:    item.Quantity,
			Weight:      item.Weight,
			Length:      item.Length,
			Width:       item.Width,
			Height:      item.Height,
		}, item.Cost))
	}

	var issuedAt time.Time
	if dto.TicketIssuedAt != nil {
		issuedAt = *dto.TicketIssuedAt
	}

	return order.RestoreOrder(order.Snapshot{
		Number: dto.Number,
		ID:     id,
		Owner:  kernel.RestoreOwner(dto.UserID, dto.GuestSession),
		Status: status,
		Details: order.Details{
			Items:       items,
			Pickup:      pickup,
			Destination: destination,
			Contact: order.Contact{
				UserEmail:        dto.Contact.UserEmail,
				UserPhone:        dto.Contact.UserPhone,
				DestinationEmail: dto.Contact.DestinationEmail,
				DestinationPhone: dto.Contact.DestinationPhone,
			},
			ShippingType:    shippingType,
			AccountNumber:   dto.AccountNumber,
			RequestedDate:   dto.RequestedDate.UTC(),
			Comments:        dto.Comments,
			SavePickup:      dto.SavePickup,
			SaveDestination: dto.SaveDestination,
		},
		Costs: order.Costs{
			Subtotal:      dto.Subtotal,
			FuelSurcharge: dto.FuelSurcharge,
			Tax:           dto.Tax,
			Total:         dto.Total,
		},
		Payment: order.PaymentRefs{
			Ticket:         dto.PaymentTicket,
			TicketIssuedAt: issuedAt,
			GatewayOrderNo: dto.GatewayOrderNo,
			GatewayTxnNo:   dto.GatewayTxnNo,
		},
		LabelID: dto.LabelID,
		Version: dto.Version,
	})
}
