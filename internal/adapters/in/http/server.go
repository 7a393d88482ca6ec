package http

import (
	"fmt"
	"net/http"
	"strconv"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

var _ servers.ServerInterface = &Server{}

// Handlers are the use cases the HTTP API exposes.
type Handlers struct {
	SubmitOrder         commands.SubmitOrderCommandHandler
	EditOrder           commands.EditOrderCommandHandler
	RequestPaymentToken commands.RequestPaymentTokenCommandHandler
	ConfirmPayment      commands.ConfirmPaymentCommandHandler
	FinalizeOrder       commands.FinalizeOrderCommandHandler
	RetrieveLabel       commands.RetrieveLabelCommandHandler
	DeleteAddress       commands.DeleteAddressCommandHandler

	GetOrder      queries.GetOrderQueryHandler
	ListAddresses queries.ListAddressesQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With(zap.String("component", "http_server")),
	}
}

// CreateOrder handles POST /api/v1/orders - prices and stores a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}
	details, err := toDetails(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewSubmitOrderCommand(orderID, actor, details)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.handlers.SubmitOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusCreated, orderID, actor)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, orderID, err := s.identify(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID, actor)
}

// UpdateOrder handles PUT /api/v1/orders/{orderId} - replaces the order contents and prices it again.
func (s *Server) UpdateOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, orderID, err := s.identify(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.UpdateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}
	details, err := toDetails(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewEditOrderCommand(orderID, actor, details)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.handlers.EditOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID, actor)
}

// RequestPaymentToken handles POST /api/v1/orders/{orderId}/payment/token.
func (s *Server) RequestPaymentToken(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, orderID, err := s.identify(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.RequestPaymentTokenJSONRequestBody
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return invalidBody(ctx)
		}
	}

	cmd, err := commands.NewRequestPaymentTokenCommand(orderID, actor, body.TicketExpired != nil && *body.TicketExpired)
	if err != nil {
		return s.fail(ctx, err)
	}
	ticket, err := s.handlers.RequestPaymentToken.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.PaymentToken{Ticket: ticket})
}

// ConfirmPayment handles POST /api/v1/orders/{orderId}/payment/confirm. A
// declined card is reported through the resulting status, not as an error.
func (s *Server) ConfirmPayment(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, orderID, err := s.identify(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.StepResult{Status: status.Code()})
}

// FinalizeOrder handles POST /api/v1/orders/{orderId}/finalize.
func (s *Server) FinalizeOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, orderID, err := s.identify(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewFinalizeOrderCommand(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.handlers.FinalizeOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.StepResult{Status: status.Code()})
}

// GetOrderLabel handles GET /api/v1/orders/{orderId}/label - streams the label as an attachment.
func (s *Server) GetOrderLabel(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, orderID, err := s.identify(ctx, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRetrieveLabelCommand(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	doc, err := s.handlers.RetrieveLabel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	header := ctx.Response().Header()
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", orderID.String()+".pdf"))
	header.Set(echo.HeaderContentLength, strconv.Itoa(len(doc.Body)))
	return ctx.Blob(http.StatusOK, doc.ContentType, doc.Body)
}

// ListAddresses handles GET /api/v1/addresses.
func (s *Server) ListAddresses(ctx echo.Context, params servers.ListAddressesParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	addressType := ""
	if params.Type != nil {
		addressType = string(*params.Type)
	}
	query, err := queries.NewListAddressesQuery(actor, addressType)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.handlers.ListAddresses.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.AddressBookEntry, len(entries))
	for i, entry := range entries {
		response[i] = servers.AddressBookEntry{
			Id:      entry.ID.Value(),
			Type:    servers.AddressType(entry.Type),
			Address: toPostal(entry.Postal),
			Email:   entry.Email,
			Phone:   entry.Phone,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteAddress handles DELETE /api/v1/addresses/{addressId}.
func (s *Server) DeleteAddress(ctx echo.Context, addressId openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernel.UUIDFrom(addressId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteAddressCommand(id, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.handlers.DeleteAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) identify(ctx echo.Context, orderId openapi_types.UUID) (kernel.Actor, kernel.UUID, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	orderID, err := kernel.UUIDFrom(orderId)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	return actor, orderID, nil
}

func (s *Server) respondWithOrder(ctx echo.Context, status int, orderID kernel.UUID, actor kernel.Actor) error {
	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(status, toOrder(view))
}

func invalidBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
