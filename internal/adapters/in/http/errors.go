package http

import (
	"errors"
	"net/http"

	"freight/internal/generated/servers"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorClass struct {
	sentinel error
	status   int
}

// errorClasses is checked in order: a capture inconsistency may also wrap
// the gateway failure that caused it.
var errorClasses = []errorClass{
	{errs.ErrCaptureInconsistency, http.StatusBadGateway},
	{errs.ErrGatewayFailure, http.StatusBadGateway},
	{errs.ErrCarrierFailure, http.StatusBadGateway},
	{errs.ErrUnauthenticated, http.StatusUnauthorized},
	{errs.ErrNotOwner, http.StatusForbidden},
	{errs.ErrObjectNotFound, http.StatusNotFound},
	{errs.ErrInvalidStatus, http.StatusConflict},
	{errs.ErrOrderLocked, http.StatusConflict},
	{errs.ErrVersionIsInvalid, http.StatusConflict},
	{errs.ErrValueIsRequired, http.StatusUnprocessableEntity},
	{errs.ErrValueIsInvalid, http.StatusUnprocessableEntity},
	{errs.ErrValueIsOutOfRange, http.StatusUnprocessableEntity},
}

func classify(err error) (int, string) {
	for _, class := range errorClasses {
		if !errors.Is(err, class.sentinel) {
			continue
		}
		if class.status == http.StatusUnprocessableEntity {
			return class.status, err.Error()
		}
		return class.status, class.sentinel.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

// fail writes the error body for err. Validation failures carry the full
// message; everything else only its class.
func (s *Server) fail(ctx echo.Context, err error) error {
	status, message := classify(err)
	body := servers.Error{Code: status, Message: message}

	var stepErr *errs.StepError
	if errors.As(err, &stepErr) {
		body.OrderId = &stepErr.OrderID
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", ctx.Path()), zap.Int("status", status), zap.Error(err))
	}

	return ctx.JSON(status, body)
}
