package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/Narendra3579/ssvteachersapp/core/auth"
)

// loginRequiredMiddleware gates the app endpoints on the store-backed login
// state. No token is involved; the session lives in the shared store.
func loginRequiredMiddleware(svc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !svc.IsLoggedIn() {
				return errNotLoggedIn
			}
			return next(ctx)
		}
	}
}
