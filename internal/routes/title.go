package routes

import (
	"rating-system/internal/controllers"
	"rating-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runTitleRouter(api *echo.Group, ctrl *controllers.TitleController, authMW *middleware.AuthMiddleware) {
	api.GET("/titles/", ctrl.GetTitles, authMW.OptionalAuth)
	api.GET("/titles/:title_id", ctrl.FindTitle, authMW.OptionalAuth)
	api.POST("/titles/", ctrl.CreateTitle, authMW.Auth)
	api.PATCH("/titles/:title_id", ctrl.UpdateTitle, authMW.Auth)
	api.DELETE("/titles/:title_id", ctrl.DeleteTitle, authMW.Auth)
}
