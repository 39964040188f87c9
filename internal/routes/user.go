package routes

import (
	"rating-system/internal/controllers"
	"rating-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runUserRouter(api *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	users := api.Group("/users", authMW.Auth)

	// /users/me должен регистрироваться раньше /users/:username.
	users.GET("/me", ctrl.GetMe)
	users.PATCH("/me", ctrl.UpdateMe)

	users.GET("/", ctrl.GetUsers)
	users.POST("/", ctrl.CreateUser)
	users.GET("/:username", ctrl.FindUser)
	users.PATCH("/:username", ctrl.UpdateUser)
	users.DELETE("/:username", ctrl.DeleteUser)
}
