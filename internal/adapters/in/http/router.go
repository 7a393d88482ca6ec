// Package http is the inbound REST adapter. It serves the order API defined
// in the servers package on an echo router.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"freight/internal/generated/servers"
	"freight/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

var registerDocOnce sync.Once

// NewRouter builds the echo instance with request logging, OpenAPI request
// validation, the API routes, /health and /swagger/*.
func NewRouter(server *Server, logger *zap.Logger) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err := registerDoc(swagger); err != nil {
		return nil, err
	}

	// Requests are matched on path only, whatever host they were sent to.
	swagger.Servers = nil
	router, err := legacy.NewRouter(swagger)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.ERROR)
	e.HTTPErrorHandler = errorHandler(e)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(validateRequests(router))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}

// registerDoc publishes the API document for the swagger UI. The registry is
// process wide, so only the first router registers it.
func registerDoc(swagger *openapi3.T) error {
	doc, err := swagger.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(doc),
		})
	})
	return nil
}

// errorHandler renders errors raised outside the handlers, such as unknown
// routes or malformed path parameters, with the API error body.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) {
			httpErr = echo.NewHTTPError(http.StatusInternalServerError)
		}
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		if jsonErr := c.JSON(httpErr.Code, servers.Error{Code: httpErr.Code, Message: message}); jsonErr != nil {
			e.Logger.Error(jsonErr)
		}
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	logger = logger.With(zap.String("component", "http"))
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request error", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}

// requireIdentityHeader accepts a security scheme when its header is present.
// The header values themselves are checked by the handlers.
func requireIdentityHeader(_ context.Context, input *openapi3filter.AuthenticationInput) error {
	scheme := input.SecurityScheme
	if scheme == nil || scheme.Type != "apiKey" || scheme.In != "header" {
		return nil
	}
	if strings.TrimSpace(input.RequestValidationInput.Request.Header.Get(scheme.Name)) == "" {
		return fmt.Errorf("missing %s header", scheme.Name)
	}
	return nil
}

// validateRequests rejects API requests that do not match the OpenAPI
// document. Routes outside the document pass through.
func validateRequests(router routers.Router) echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: requireIdentityHeader,
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err == nil {
				return next(c)
			}

			var securityErr *openapi3filter.SecurityRequirementsError
			if errors.As(err, &securityErr) {
				return c.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: errs.ErrUnauthenticated.Error(),
				})
			}
			return c.JSON(http.StatusBadRequest, servers.Error{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
		}
	}
}
