package middleware

import (
	"context"
	"strings"

	"rating-system/pkg/contextkeys"
	apperrors "rating-system/pkg/errors"
	"rating-system/pkg/service"
	"rating-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth — обязательная аутентификация: без валидного access-токена запрос отклоняется.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.claimsFromRequest(c)
		if err != nil {
			m.logger.Warn("AuthMiddleware: отказ в аутентификации", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		m.injectClaims(c, claims)
		return next(c)
	}
}

// OptionalAuth — для публичных маршрутов: токен разбирается, если он есть,
// анонимный запрос проходит дальше без идентичности.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return next(c)
		}

		claims, err := m.claimsFromRequest(c)
		if err != nil {
			// Предъявленный, но негодный токен — это ошибка клиента, а не аноним.
			m.logger.Warn("AuthMiddleware: невалидный токен на публичном маршруте", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		m.injectClaims(c, claims)
		return next(c)
	}
}

func (m *AuthMiddleware) claimsFromRequest(c echo.Context) (*service.JwtCustomClaim, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, apperrors.ErrEmptyAuthHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.ErrInvalidAuthHeader
	}

	claims, err := m.jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil, err
	}

	if claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotAccess
	}

	return claims, nil
}

func (m *AuthMiddleware) injectClaims(c echo.Context, claims *service.JwtCustomClaim) {
	ctx := c.Request().Context()
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, contextkeys.UserRoleKey, claims.Role)
	c.SetRequest(c.Request().WithContext(ctx))
}
