package controllers

import (
	"net/http"
	"strconv"

	"rating-system/internal/dto"
	"rating-system/internal/repositories"
	"rating-system/internal/services"
	apperrors "rating-system/pkg/errors"
	"rating-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type TitleController struct {
	titleService services.TitleServiceInterface
	logger       *zap.Logger
}

func NewTitleController(titleService services.TitleServiceInterface, logger *zap.Logger) *TitleController {
	return &TitleController{titleService: titleService, logger: logger}
}

// parseTitleFilter собирает фильтр каталога из query-параметров:
// category и genre — по slug, year — точное совпадение, name — подстрока.
func parseTitleFilter(ctx echo.Context) (repositories.TitleFilter, error) {
	base := utils.ParseFilterFromQuery(ctx.QueryParams())
	filter := repositories.TitleFilter{
		Category: ctx.QueryParam("category"),
		Genre:    ctx.QueryParam("genre"),
		Name:     ctx.QueryParam("name"),
		Limit:    uint64(base.Limit),
		Offset:   uint64(base.Offset),
	}

	if yearStr := ctx.QueryParam("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return filter, apperrors.NewBadRequestError("Некорректный параметр year")
		}
		filter.Year = &year
	}
	return filter, nil
}

func (c *TitleController) GetTitles(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter, err := parseTitleFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	titles, total, err := c.titleService.GetTitles(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка произведений", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, titles, "Список произведений успешно получен", http.StatusOK, total)
}

func (c *TitleController) FindTitle(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("title_id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID произведения"), c.logger)
	}

	res, err := c.titleService.FindTitle(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при поиске произведения", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Произведение успешно найдено", http.StatusOK)
}

func (c *TitleController) CreateTitle(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateTitleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.titleService.CreateTitle(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании произведения", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Произведение успешно создано", http.StatusCreated)
}

func (c *TitleController) UpdateTitle(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("title_id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID произведения"), c.logger)
	}

	var payload dto.UpdateTitleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.titleService.UpdateTitle(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении произведения", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Произведение успешно обновлено", http.StatusOK)
}

func (c *TitleController) DeleteTitle(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("title_id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID произведения"), c.logger)
	}

	if err := c.titleService.DeleteTitle(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при удалении произведения", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}
