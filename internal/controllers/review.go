package controllers

import (
	"net/http"
	"strconv"

	"rating-system/internal/dto"
	"rating-system/internal/services"
	apperrors "rating-system/pkg/errors"
	"rating-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReviewController struct {
	reviewService services.ReviewServiceInterface
	logger        *zap.Logger
}

func NewReviewController(reviewService services.ReviewServiceInterface, logger *zap.Logger) *ReviewController {
	return &ReviewController{reviewService: reviewService, logger: logger}
}

func parsePathID(ctx echo.Context, name, message string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequestError(message)
	}
	return id, nil
}

func (c *ReviewController) GetReviews(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	titleID, err := parsePathID(ctx, "title_id", "Некорректный ID произведения")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	reviews, total, err := c.reviewService.GetReviews(reqCtx, titleID, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка отзывов", zap.Error(err), zap.Uint64("titleID", titleID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, reviews, "Список отзывов успешно получен", http.StatusOK, total)
}

func (c *ReviewController) FindReview(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	titleID, err := parsePathID(ctx, "title_id", "Некорректный ID произведения")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	reviewID, err := parsePathID(ctx, "review_id", "Некорректный ID отзыва")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reviewService.FindReview(reqCtx, titleID, reviewID)
	if err != nil {
		c.logger.Error("Ошибка при поиске отзыва", zap.Error(err), zap.Uint64("reviewID", reviewID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Отзыв успешно найден", http.StatusOK)
}

func (c *ReviewController) CreateReview(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	titleID, err := parsePathID(ctx, "title_id", "Некорректный ID произведения")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateReviewDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reviewService.CreateReview(reqCtx, titleID, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании отзыва", zap.Error(err), zap.Uint64("titleID", titleID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Отзыв успешно создан", http.StatusCreated)
}

func (c *ReviewController) UpdateReview(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	titleID, err := parsePathID(ctx, "title_id", "Некорректный ID произведения")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	reviewID, err := parsePathID(ctx, "review_id", "Некорректный ID отзыва")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateReviewDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reviewService.UpdateReview(reqCtx, titleID, reviewID, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении отзыва", zap.Error(err), zap.Uint64("reviewID", reviewID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Отзыв успешно обновлён", http.StatusOK)
}

func (c *ReviewController) DeleteReview(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	titleID, err := parsePathID(ctx, "title_id", "Некорректный ID произведения")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	reviewID, err := parsePathID(ctx, "review_id", "Некорректный ID отзыва")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.reviewService.DeleteReview(reqCtx, titleID, reviewID); err != nil {
		c.logger.Error("Ошибка при удалении отзыва", zap.Error(err), zap.Uint64("reviewID", reviewID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}
