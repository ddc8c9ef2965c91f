package auth

import (
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/apperr"
	"github.com/labstack/echo/v4"
)

// Authenticate stores the caller identity, if any, on the echo context.
func Authenticate(provider Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := provider.Identify(c.Request())
			if err != nil {
				return apperr.Wrap(apperr.Internal, "failed to resolve identity", err)
			}
			if id != nil {
				SetIdentity(c, id)
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects anonymous callers with 401 and non-admins with 403.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := FromContext(c)
			if !ok {
				return apperr.NewUnauthorized("authentication required")
			}
			if !id.IsAdmin {
				return apperr.NewForbidden("administrator access required")
			}
			return next(c)
		}
	}
}
