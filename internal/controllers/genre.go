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

type GenreController struct {
	genreService services.GenreServiceInterface
	logger       *zap.Logger
}

func NewGenreController(genreService services.GenreServiceInterface, logger *zap.Logger) *GenreController {
	return &GenreController{genreService: genreService, logger: logger}
}

func (c *GenreController) GetGenres(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	genres, total, err := c.genreService.GetGenres(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка жанров", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, genres, "Список жанров успешно получен", http.StatusOK, total)
}

func (c *GenreController) CreateGenre(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateGenreDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.genreService.CreateGenre(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании жанра", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Жанр успешно создан", http.StatusCreated)
}

func (c *GenreController) DeleteGenre(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	slug := ctx.Param("slug")

	if err := c.genreService.DeleteGenre(reqCtx, slug); err != nil {
		c.logger.Error("Ошибка при удалении жанра", zap.Error(err), zap.String("slug", slug))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}
