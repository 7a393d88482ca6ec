// Package servers holds the HTTP contract of the order API: the OpenAPI
// document, its models and the echo routing that binds requests to a
// ServerInterface implementation.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Remove an address book entry
	// (DELETE /api/v1/addresses/{addressId})
	DeleteAddress(ctx echo.Context, addressId openapi_types.UUID) error
	// List the caller's address book
	// (GET /api/v1/addresses)
	ListAddresses(ctx echo.Context, params ListAddressesParams) error
	// Submit a new order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Read an order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Replace the contents of an order before payment
	// (PUT /api/v1/orders/{orderId})
	UpdateOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Book the shipment and settle the payment
	// (POST /api/v1/orders/{orderId}/finalize)
	FinalizeOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Download the shipping label
	// (GET /api/v1/orders/{orderId}/label)
	GetOrderLabel(ctx echo.Context, orderId openapi_types.UUID) error
	// Record the outcome of the hosted checkout
	// (POST /api/v1/orders/{orderId}/payment/confirm)
	ConfirmPayment(ctx echo.Context, orderId openapi_types.UUID) error
	// Get the ticket the hosted checkout is opened with
	// (POST /api/v1/orders/{orderId}/payment/token)
	RequestPaymentToken(ctx echo.Context, orderId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUIDPathParam(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func setScopes(ctx echo.Context) {
	ctx.Set(CustomerScopes, []string{})
	ctx.Set(GuestScopes, []string{})
}

// DeleteAddress converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteAddress(ctx echo.Context) error {
	addressId, err := bindUUIDPathParam(ctx, "addressId")
	if err != nil {
		return err
	}
	ctx.Set(CustomerScopes, []string{})

	return w.Handler.DeleteAddress(ctx, addressId)
}

// ListAddresses converts echo context to params.
func (w *ServerInterfaceWrapper) ListAddresses(ctx echo.Context) error {
	setScopes(ctx)

	var params ListAddressesParams
	err := runtime.BindQueryParameter("form", true, false, "type", ctx.QueryParams(), &params.Type)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter type: %s", err))
	}

	return w.Handler.ListAddresses(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	setScopes(ctx)
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	setScopes(ctx)

	return w.Handler.GetOrder(ctx, orderId)
}

// UpdateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	setScopes(ctx)

	return w.Handler.UpdateOrder(ctx, orderId)
}

// FinalizeOrder converts echo context to params.
func (w *ServerInterfaceWrapper) FinalizeOrder(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	setScopes(ctx)

	return w.Handler.FinalizeOrder(ctx, orderId)
}

// GetOrderLabel converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderLabel(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	setScopes(ctx)

	return w.Handler.GetOrderLabel(ctx, orderId)
}

// ConfirmPayment converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmPayment(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	setScopes(ctx)

	return w.Handler.ConfirmPayment(ctx, orderId)
}

// RequestPaymentToken converts echo context to params.
func (w *ServerInterfaceWrapper) RequestPaymentToken(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	setScopes(ctx)

	return w.Handler.RequestPaymentToken(ctx, orderId)
}

// EchoRouter is the part of echo.Echo and echo.Group the routes are registered on.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL, which must
// not end with a slash.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.DELETE(baseURL+"/api/v1/addresses/:addressId", wrapper.DeleteAddress)
	router.GET(baseURL+"/api/v1/addresses", wrapper.ListAddresses)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId", wrapper.UpdateOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/finalize", wrapper.FinalizeOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/label", wrapper.GetOrderLabel)
	router.POST(baseURL+"/api/v1/orders/:orderId/payment/confirm", wrapper.ConfirmPayment)
	router.POST(baseURL+"/api/v1/orders/:orderId/payment/token", wrapper.RequestPaymentToken)
}
