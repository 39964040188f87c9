package controllers

import (
	"fmt"
	"net/http"
	"time"

	"rating-system/internal/services"
	"rating-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) DownloadTitlesReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	data, err := c.reportService.BuildTitlesReport(reqCtx)
	if err != nil {
		c.logger.Error("Ошибка при формировании отчёта по произведениям", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filename := fmt.Sprintf("titles_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))

	return ctx.Blob(http.StatusOK, xlsxContentType, data)
}
