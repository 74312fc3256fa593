package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"marketplace/internal/pkg/correlation"

	"github.com/labstack/echo/v4"
)

// CorrelationMiddleware ensures every request carries a correlation identifier:
// the client's X-Request-ID when present, a fresh one otherwise. The identifier
// is placed on the request context and echoed in the response.
func CorrelationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id := ctx.Request().Header.Get(correlation.Header)
			if id == "" {
				id = correlation.NewID()
			}

			req := ctx.Request()
			ctx.SetRequest(req.WithContext(correlation.WithID(req.Context(), id)))
			ctx.Response().Header().Set(correlation.Header, id)

			return next(ctx)
		}
	}
}

// BearerAuthMiddleware guards endpoints with a static bearer token. The
// webhook endpoint stays open: the provider cannot carry our token, and the
// webhook handler re-verifies every callback server side anyway.
func BearerAuthMiddleware(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			supplied, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Status:  "error",
					Kind:    "unauthorized",
					Message: "missing or invalid bearer token",
				})
			}
			return next(ctx)
		}
	}
}
