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

type CommentController struct {
	commentService services.CommentServiceInterface
	logger         *zap.Logger
}

func NewCommentController(commentService services.CommentServiceInterface, logger *zap.Logger) *CommentController {
	return &CommentController{commentService: commentService, logger: logger}
}

func (c *CommentController) parseParents(ctx echo.Context) (titleID, reviewID uint64, err error) {
	titleID, err = parsePathID(ctx, "title_id", "Некорректный ID произведения")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = parsePathID(ctx, "review_id", "Некорректный ID отзыва")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

func (c *CommentController) GetComments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	titleID, reviewID, err := c.parseParents(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	comments, total, err := c.commentService.GetComments(reqCtx, titleID, reviewID, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка комментариев", zap.Error(err), zap.Uint64("reviewID", reviewID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, comments, "Список комментариев успешно получен", http.StatusOK, total)
}

func (c *CommentController) FindComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	titleID, reviewID, err := c.parseParents(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	commentID, err := parsePathID(ctx, "comment_id", "Некорректный ID комментария")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.commentService.FindComment(reqCtx, titleID, reviewID, commentID)
	if err != nil {
		c.logger.Error("Ошибка при поиске комментария", zap.Error(err), zap.Uint64("commentID", commentID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Комментарий успешно найден", http.StatusOK)
}

func (c *CommentController) CreateComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	titleID, reviewID, err := c.parseParents(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateCommentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.commentService.CreateComment(reqCtx, titleID, reviewID, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании комментария", zap.Error(err), zap.Uint64("reviewID", reviewID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Комментарий успешно создан", http.StatusCreated)
}

func (c *CommentController) UpdateComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	titleID, reviewID, err := c.parseParents(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	commentID, err := parsePathID(ctx, "comment_id", "Некорректный ID комментария")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateCommentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.commentService.UpdateComment(reqCtx, titleID, reviewID, commentID, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении комментария", zap.Error(err), zap.Uint64("commentID", commentID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Комментарий успешно обновлён", http.StatusOK)
}

func (c *CommentController) DeleteComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	titleID, reviewID, err := c.parseParents(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	commentID, err := parsePathID(ctx, "comment_id", "Некорректный ID комментария")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.commentService.DeleteComment(reqCtx, titleID, reviewID, commentID); err != nil {
		c.logger.Error("Ошибка при удалении комментария", zap.Error(err), zap.Uint64("commentID", commentID))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}
