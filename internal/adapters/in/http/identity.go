package http

import (
	"fmt"
	"strconv"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the authenticating proxy in front of the service.
const (
	HeaderUserID        = "X-User-ID"
	HeaderAccountNumber = "X-Account-Number"
	HeaderGuestSession  = "X-Guest-Session"
)

// actorFrom reads the caller identity. A registered customer wins over a guest
// session; a request carrying neither is anonymous.
func actorFrom(ctx echo.Context) (kernel.Actor, error) {
	header := ctx.Request().Header

	if raw := strings.TrimSpace(header.Get(HeaderUserID)); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			return kernel.Actor{}, fmt.Errorf("%w: malformed %s header", errs.ErrUnauthenticated, HeaderUserID)
		}
		return kernel.NewCustomer(userID, header.Get(HeaderAccountNumber))
	}
	if session := strings.TrimSpace(header.Get(HeaderGuestSession)); session != "" {
		return kernel.NewGuest(session)
	}
	return kernel.Anonymous(), nil
}
