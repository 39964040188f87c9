package controllers

import (
	"net/http"

	"rating-system/internal/dto"
	"rating-system/internal/services"
	apperrors "rating-system/pkg/errors"
	"rating-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CategoryController struct {
	categoryService services.CategoryServiceInterface
	logger          *zap.Logger
}

func NewCategoryController(categoryService services.CategoryServiceInterface, logger *zap.Logger) *CategoryController {
	return &CategoryController{categoryService: categoryService, logger: logger}
}

func (c *CategoryController) GetCategories(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	categories, total, err := c.categoryService.GetCategories(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка категорий", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, categories, "Список категорий успешно получен", http.StatusOK, total)
}

func (c *CategoryController) CreateCategory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.CreateCategory(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании категории", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Категория успешно создана", http.StatusCreated)
}

func (c *CategoryController) DeleteCategory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	slug := ctx.Param("slug")

	if err := c.categoryService.DeleteCategory(reqCtx, slug); err != nil {
		c.logger.Error("Ошибка при удалении категории", zap.Error(err), zap.String("slug", slug))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}
