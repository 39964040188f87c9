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

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	users, total, err := c.userService.GetUsers(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка пользователей", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, users, "Список пользователей успешно получен", http.StatusOK, total)
}

func (c *UserController) FindUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	username := ctx.Param("username")

	res, err := c.userService.FindUser(reqCtx, username)
	if err != nil {
		c.logger.Error("Ошибка при поиске пользователя", zap.Error(err), zap.String("username", username))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Пользователь успешно найден", http.StatusOK)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.CreateUser(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании пользователя", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Пользователь успешно создан", http.StatusCreated)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	username := ctx.Param("username")

	var payload dto.UpdateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.UpdateUser(reqCtx, username, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении пользователя", zap.Error(err), zap.String("username", username))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Пользователь успешно обновлён", http.StatusOK)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	username := ctx.Param("username")

	if err := c.userService.DeleteUser(reqCtx, username); err != nil {
		c.logger.Error("Ошибка при удалении пользователя", zap.Error(err), zap.String("username", username))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *UserController) GetMe(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.userService.GetMe(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Профиль успешно получен", http.StatusOK)
}

func (c *UserController) UpdateMe(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.UpdateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.UpdateMe(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Профиль успешно обновлён", http.StatusOK)
}
