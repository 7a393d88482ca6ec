package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	CustomerScopes = "customer.Scopes"
	GuestScopes    = "guest.Scopes"
)

// Defines values for AddressType.
const (
	Destination AddressType = "destination"
	Pickup      AddressType = "pickup"
)

// Defines values for ShippingType.
const (
	Collect    ShippingType = "collect"
	Prepaid    ShippingType = "prepaid"
	ThirdParty ShippingType = "third_party"
)

// AddressBookEntry defines model for AddressBookEntry.
type AddressBookEntry struct {
	Address PostalAddress      `json:"address"`
	Email   string             `json:"email"`
	Id      openapi_types.UUID `json:"id"`
	Phone   string             `json:"phone"`
	Type    AddressType        `json:"type"`
}

// AddressType defines model for AddressType.
type AddressType string

// Contact defines model for Contact.
type Contact struct {
	DestinationEmail *string `json:"destination_email,omitempty"`
	DestinationPhone *string `json:"destination_phone,omitempty"`
	UserEmail        string  `json:"user_email"`
	UserPhone        string  `json:"user_phone"`
}

// Error defines model for Error.
type Error struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	OrderId *string `json:"order_id,omitempty"`
}

// Item defines model for Item.
type Item struct {
	Description *string `json:"description,omitempty"`
	Height      float64 `json:"height"`
	Length      float64 `json:"length"`
	Quantity    int     `json:"quantity"`
	Weight      float64 `json:"weight"`
	Width       float64 `json:"width"`
}

// Order defines model for Order.
type Order struct {
	Comments       *string            `json:"comments,omitempty"`
	Contact        Contact            `json:"contact"`
	CreatedAt      time.Time          `json:"created_at"`
	Destination    PostalAddress      `json:"destination"`
	FuelSurcharge  string             `json:"fuel_surcharge"`
	GatewayOrderNo *string            `json:"gateway_order_no,omitempty"`
	Id             openapi_types.UUID `json:"id"`
	Items          []OrderLine        `json:"items"`
	LabelId        *string            `json:"label_id,omitempty"`
	Number         int64              `json:"number"`
	Pickup         PostalAddress      `json:"pickup"`
	RequestedDate  openapi_types.Date `json:"requested_date"`
	ShippingType   ShippingType       `json:"shipping_type"`
	Status         string             `json:"status"`
	Subtotal       string             `json:"subtotal"`
	Tax            string             `json:"tax"`
	Total          string             `json:"total"`
}

// OrderLine defines model for OrderLine.
type OrderLine struct {
	Cost        string `json:"cost"`
	Description string `json:"description"`
	Height      string `json:"height"`
	Length      string `json:"length"`
	Quantity    int    `json:"quantity"`
	Weight      string `json:"weight"`
	Width       string `json:"width"`
}

// OrderRequest defines model for OrderRequest.
type OrderRequest struct {
	AccountNumber   *string            `json:"account_number,omitempty"`
	Comments        *string            `json:"comments,omitempty"`
	Contact         Contact            `json:"contact"`
	Destination     PostalAddress      `json:"destination"`
	Items           []Item             `json:"items"`
	Pickup          PostalAddress      `json:"pickup"`
	RequestedDate   openapi_types.Date `json:"requested_date"`
	SaveDestination *bool              `json:"save_destination,omitempty"`
	SavePickup      *bool              `json:"save_pickup,omitempty"`
	ShippingType    *ShippingType      `json:"shipping_type,omitempty"`
}

// PaymentToken defines model for PaymentToken.
type PaymentToken struct {
	Ticket string `json:"ticket"`
}

// PaymentTokenRequest defines model for PaymentTokenRequest.
type PaymentTokenRequest struct {
	TicketExpired *bool `json:"ticket_expired,omitempty"`
}

// PostalAddress defines model for PostalAddress.
type PostalAddress struct {
	AddressLine1       string  `json:"address_line1"`
	AddressLine2       *string `json:"address_line2,omitempty"`
	AdministrativeArea string  `json:"administrative_area"`
	CountryCode        string  `json:"country_code"`
	Locality           string  `json:"locality"`
	Organization       *string `json:"organization,omitempty"`
	PostalCode         string  `json:"postal_code"`
}

// ShippingType defines model for ShippingType.
type ShippingType string

// StepResult defines model for StepResult.
type StepResult struct {
	Status string `json:"status"`
}

// ListAddressesParams defines parameters for ListAddresses.
type ListAddressesParams struct {
	Type *AddressType `form:"type,omitempty" json:"type,omitempty"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = OrderRequest

// UpdateOrderJSONRequestBody defines body for UpdateOrder for application/json ContentType.
type UpdateOrderJSONRequestBody = OrderRequest

// RequestPaymentTokenJSONRequestBody defines body for RequestPaymentToken for application/json ContentType.
type RequestPaymentTokenJSONRequestBody = PaymentTokenRequest
