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

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (c *AuthController) Signup(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.SignupDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.authService.Signup(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при регистрации", zap.Error(err), zap.String("email", payload.Email))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Пользователь успешно зарегистрирован", http.StatusCreated)
}

func (c *AuthController) RequestCode(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.RequestCodeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.authService.RequestCode(reqCtx, payload); err != nil {
		c.logger.Error("Ошибка при запросе кода подтверждения", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Код подтверждения отправлен на email", http.StatusOK)
}

func (c *AuthController) ExchangeCode(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.ExchangeCodeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.authService.ExchangeCode(reqCtx, payload)
	if err != nil {
		c.logger.Warn("Неудачный обмен кода на токены", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Токены успешно выданы", http.StatusOK)
}

func (c *AuthController) RefreshToken(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.RefreshTokenDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.authService.RefreshToken(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Access-токен успешно обновлён", http.StatusOK)
}
