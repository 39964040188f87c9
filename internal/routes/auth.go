package routes

import (
	"rating-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController) {
	api.POST("/auth/signup", ctrl.Signup)
	api.POST("/auth/email", ctrl.RequestCode)
	api.POST("/auth/token", ctrl.ExchangeCode)
	api.POST("/token/refresh", ctrl.RefreshToken)
}
