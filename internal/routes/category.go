package routes

import (
	"rating-system/internal/controllers"
	"rating-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runCategoryRouter(api *echo.Group, ctrl *controllers.CategoryController, authMW *middleware.AuthMiddleware) {
	api.GET("/categories/", ctrl.GetCategories, authMW.OptionalAuth)
	api.POST("/categories/", ctrl.CreateCategory, authMW.Auth)
	api.DELETE("/categories/:slug", ctrl.DeleteCategory, authMW.Auth)
}
