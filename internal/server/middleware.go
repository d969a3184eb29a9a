package server

import (
	"github.com/labstack/echo/v4"

	"github.com/TheSuperiorStanislav/echo-practice/internal/correlation"
)

// correlationMiddleware copies the request ID assigned by Echo's RequestID
// middleware into the request context, so every log record emitted while
// handling the request carries a correlation_id attribute.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = correlation.NewID()
			}
			ctx := correlation.WithID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
