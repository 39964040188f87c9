package routes

import (
	"rating-system/internal/controllers"
	"rating-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runReportRouter(api *echo.Group, ctrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	api.GET("/reports/titles", ctrl.DownloadTitlesReport, authMW.Auth)
}
