package http

import (
	"errors"
	"fmt"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

func toDetails(body servers.OrderRequest) (order.Details, error) {
	var problems []error

	items := make([]order.Item, 0, len(body.Items))
	for i, in := range body.Items {
		item, err := order.NewItem(order.ItemFields{
			Description: value(in.Description),
			Quantity:    in.Quantity,
			Weight:      decimal.NewFromFloat(in.Weight),
			Length:      decimal.NewFromFloat(in.Length),
			Width:       decimal.NewFromFloat(in.Width),
			Height:      decimal.NewFromFloat(in.Height),
		})
		if err != nil {
			problems = append(problems, fmt.Errorf("item %d: %w", i+1, err))
			continue
		}
		items = append(items, item)
	}

	pickup, err := fromPostal(body.Pickup)
	if err != nil {
		problems = append(problems, fmt.Errorf("pickup: %w", err))
	}
	destination, err := fromPostal(body.Destination)
	if err != nil {
		problems = append(problems, fmt.Errorf("destination: %w", err))
	}

	shippingType := order.Prepaid
	if body.ShippingType != nil {
		if shippingType, err = order.ParseShippingType(string(*body.ShippingType)); err != nil {
			problems = append(problems, err)
		}
	}

	if err := errors.Join(problems...); err != nil {
		return order.Details{}, err
	}

	return order.Details{
		Items:       items,
		Pickup:      pickup,
		Destination: destination,
		Contact: order.Contact{
			UserEmail:        body.Contact.UserEmail,
			UserPhone:        body.Contact.UserPhone,
			DestinationEmail: value(body.Contact.DestinationEmail),
			DestinationPhone: value(body.Contact.DestinationPhone),
		},
		ShippingType:    shippingType,
		AccountNumber:   value(body.AccountNumber),
		RequestedDate:   body.RequestedDate.Time,
		Comments:        value(body.Comments),
		SavePickup:      body.SavePickup != nil && *body.SavePickup,
		SaveDestination: body.SaveDestination != nil && *body.SaveDestination,
	}, nil
}

func fromPostal(in servers.PostalAddress) (kernel.PostalAddress, error) {
	return kernel.NewPostalAddress(kernel.PostalAddressFields{
		Organization:       value(in.Organization),
		AddressLine1:       in.AddressLine1,
		AddressLine2:       value(in.AddressLine2),
		Locality:           in.Locality,
		AdministrativeArea: in.AdministrativeArea,
		PostalCode:         in.PostalCode,
		CountryCode:        in.CountryCode,
	})
}

func toPostal(a kernel.PostalAddress) servers.PostalAddress {
	return servers.PostalAddress{
		Organization:       optional(a.Organization()),
		AddressLine1:       a.AddressLine1(),
		AddressLine2:       optional(a.AddressLine2()),
		Locality:           a.Locality(),
		AdministrativeArea: a.AdministrativeArea(),
		PostalCode:         a.PostalCode(),
		CountryCode:        a.CountryCode(),
	}
}

func toOrder(view queries.GetOrderQueryResponse) servers.Order {
	items := make([]servers.OrderLine, len(view.Items))
	for i, item := range view.Items {
		items[i] = servers.OrderLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			Weight:      item.Weight,
			Length:      item.Length,
			Width:       item.Width,
			Height:      item.Height,
			Cost:        item.Cost,
		}
	}

	return servers.Order{
		Id:            view.ID.Value(),
		Number:        view.Number,
		Status:        view.Status.Code(),
		ShippingType:  servers.ShippingType(view.ShippingType),
		RequestedDate: openapi_types.Date{Time: view.RequestedDate},
		Comments:      optional(view.Comments),
		Pickup:        toPostal(view.Pickup),
		Destination:   toPostal(view.Destination),
		Contact: servers.Contact{
			UserEmail:        view.Contact.UserEmail,
			UserPhone:        view.Contact.UserPhone,
			DestinationEmail: optional(view.Contact.DestinationEmail),
			DestinationPhone: optional(view.Contact.DestinationPhone),
		},
		Items:          items,
		Subtotal:       view.Subtotal,
		FuelSurcharge:  view.FuelSurcharge,
		Tax:            view.Tax,
		Total:          view.Total,
		LabelId:        optional(view.LabelID),
		GatewayOrderNo: optional(view.GatewayOrderNo),
		CreatedAt:      view.CreatedAt,
	}
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
