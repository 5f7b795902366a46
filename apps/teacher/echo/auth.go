package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Narendra3579/ssvteachersapp/core"
	"github.com/Narendra3579/ssvteachersapp/core/auth"
)

type authApi struct {
	svc   *auth.Service
	alert core.Alerter
}

func registerAuthAPI(g *echo.Group, svc *auth.Service, alert core.Alerter) {
	api := authApi{svc: svc, alert: alert}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (api *authApi) login(ctx echo.Context) error {
	data := new(loginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	if err := api.svc.Login(data.Username, data.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return errInvalidCredentials
		}
		return err
	}
	api.alert.Alert("Logged in successfully!")
	return ctx.JSON(http.StatusOK, echo.Map{"loggedIn": true})
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := api.svc.Logout(); err != nil {
		return err
	}
	api.alert.Alert("Logged out successfully!")
	return ctx.JSON(http.StatusOK, echo.Map{"loggedIn": false})
}
