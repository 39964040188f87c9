package routes

import (
	"rating-system/internal/controllers"
	"rating-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runGenreRouter(api *echo.Group, ctrl *controllers.GenreController, authMW *middleware.AuthMiddleware) {
	api.GET("/genres/", ctrl.GetGenres, authMW.OptionalAuth)
	api.POST("/genres/", ctrl.CreateGenre, authMW.Auth)
	api.DELETE("/genres/:slug", ctrl.DeleteGenre, authMW.Auth)
}
